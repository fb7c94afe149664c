// Package notation validates and expands the run-length notation
// count[content], where content is letters and further groups:
//
//	2[b3[a]]        -> baaabaaa
//	2[az1[bb2[c]]]  -> azbbccazbbcc
//
// Parse checks the grammar and returns a Notation that a Decoder will
// accept. Decoders compose groups either with one shared tail (ModeCompat)
// or with one buffer per group (ModeNested); the two agree on chained
// nesting and differ on sibling groups and on text outside any group.
package notation
