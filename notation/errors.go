package notation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGrammar  = errors.New("invalid notation")
	ErrPrecondition    = errors.New("notation was not validated")
	ErrMultiplierRange = errors.New("multiplier out of range")
	ErrOutputLimit     = errors.New("expanded output too large")
)

// Reason names the grammar rule a notation broke.
type Reason int

const (
	ReasonLeadingBracket Reason = iota + 1
	ReasonMissingMultiplier
	ReasonBadGroupStart
	ReasonUnmatchedClose
	ReasonUnclosedGroup
)

func (r Reason) String() string {
	switch r {
	case ReasonLeadingBracket:
		return "bracket at start of input"
	case ReasonMissingMultiplier:
		return "bracket not preceded by a digit"
	case ReasonBadGroupStart:
		return "group does not start with a letter"
	case ReasonUnmatchedClose:
		return "unmatched closing bracket"
	case ReasonUnclosedGroup:
		return "unclosed group"
	default:
		return "unknown"
	}
}

// GrammarError reports the first violation found by the validator.
type GrammarError struct {
	Pos    int
	Reason Reason
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("%v: %v at position %d", ErrInvalidGrammar, e.Reason, e.Pos)
}

func (e *GrammarError) Unwrap() error {
	return ErrInvalidGrammar
}

// LimitError is returned when the expansion would exceed the configured
// maximum or the int range. Size is math.MaxInt when the length overflowed.
type LimitError struct {
	Size  int
	Limit int
}

func (e *LimitError) Error() string {
	if e.Limit <= 0 {
		return fmt.Sprintf("%v: length overflows int", ErrOutputLimit)
	}
	return fmt.Sprintf("%v: %d bytes, limit %d", ErrOutputLimit, e.Size, e.Limit)
}

func (e *LimitError) Unwrap() error {
	return ErrOutputLimit
}
