package notation

import (
	"fmt"
	"strings"
)

var errUnbalanced = fmt.Errorf("%w: group closed with nothing open", ErrPrecondition)

// tailExpander composes every closed group into one shared tail:
// tail = (segment + tail) * multiplier. Literals outside any group never
// reach the tail, and sibling groups nest into each other.
type tailExpander struct {
	mults stack[int]
	segs  stack[string]
	tail  string
}

func (e *tailExpander) literal(run string) { e.segs.push(run) }

func (e *tailExpander) open(mult int) { e.mults.push(mult) }

func (e *tailExpander) close() error {
	mult, ok := e.mults.pop()
	seg, ok2 := e.segs.pop()
	if !ok || !ok2 {
		return errUnbalanced
	}
	e.tail = strings.Repeat(seg+e.tail, mult)
	return nil
}

func (e *tailExpander) result() string { return e.tail }

// frame holds the output of one open group.
type frame struct {
	mult int
	out  strings.Builder
}

// frameExpander keeps one buffer per open group and appends the repeated
// group to its parent on close.
type frameExpander struct {
	frames stack[*frame]
	root   strings.Builder
}

func (e *frameExpander) current() *strings.Builder {
	if f, ok := e.frames.peek(); ok {
		return &f.out
	}
	return &e.root
}

func (e *frameExpander) literal(run string) { e.current().WriteString(run) }

func (e *frameExpander) open(mult int) { e.frames.push(&frame{mult: mult}) }

func (e *frameExpander) close() error {
	f, ok := e.frames.pop()
	if !ok {
		return errUnbalanced
	}
	e.current().WriteString(strings.Repeat(f.out.String(), f.mult))
	return nil
}

func (e *frameExpander) result() string { return e.root.String() }
