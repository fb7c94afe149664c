package notation

// Notation is an input that passed validation. The zero value is not valid
// and is refused by Decoder.Expand.
type Notation struct {
	src   string
	valid bool
}

// Parse validates s and wraps it for decoding. The returned error is a
// *GrammarError describing the first violation.
func Parse(s string) (Notation, error) {
	if err := check(s); err != nil {
		return Notation{}, err
	}
	return Notation{src: s, valid: true}, nil
}

// Validate reports whether s is well-formed.
func Validate(s string) bool {
	return check(s) == nil
}

func (n Notation) String() string {
	return n.src
}

// Valid reports whether n came from a successful Parse.
func (n Notation) Valid() bool {
	return n.valid
}

// check scans s once keeping the positions of open brackets. It only
// validates bracket structure and adjacency, not the digit runs themselves.
func check(s string) *GrammarError {
	var open stack[int]

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			if i == 0 {
				return &GrammarError{Pos: i, Reason: ReasonLeadingBracket}
			}
			if classify(s[i-1]) != classDigit {
				return &GrammarError{Pos: i, Reason: ReasonMissingMultiplier}
			}
			if i < len(s)-1 && classify(s[i+1]) != classLetter {
				return &GrammarError{Pos: i, Reason: ReasonBadGroupStart}
			}
			open.push(i)

		case ']':
			if _, ok := open.pop(); !ok {
				return &GrammarError{Pos: i, Reason: ReasonUnmatchedClose}
			}
		}
	}

	if pos, ok := open.peek(); ok {
		return &GrammarError{Pos: pos, Reason: ReasonUnclosedGroup}
	}
	return nil
}
