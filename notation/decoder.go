package notation

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how closed groups are composed.
type Mode int

const (
	// ModeCompat keeps a single shared tail. Chained nesting decodes
	// correctly, sibling groups interleave and literals outside any group
	// are dropped.
	ModeCompat Mode = iota
	// ModeNested keeps one buffer per open group, so siblings concatenate
	// and outside literals are kept.
	ModeNested
)

func (m Mode) String() string {
	switch m {
	case ModeCompat:
		return "compat"
	case ModeNested:
		return "nested"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compat":
		return ModeCompat, nil
	case "nested":
		return ModeNested, nil
	default:
		return 0, fmt.Errorf("unknown decode mode %q", s)
	}
}

type Option func(*Decoder)

func WithMode(m Mode) Option {
	return func(d *Decoder) { d.mode = m }
}

// WithMaxOutput caps the expanded length in bytes. Zero or less means no cap.
func WithMaxOutput(n int) Option {
	return func(d *Decoder) { d.maxOutput = n }
}

// Decoder expands validated notations. It holds no per-call state and is
// safe for concurrent use.
type Decoder struct {
	mode      Mode
	maxOutput int
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{mode: ModeCompat}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) Mode() Mode { return d.mode }

func (d *Decoder) MaxOutput() int { return d.maxOutput }

// Size returns the length Expand would produce without building it.
// Lengths beyond math.MaxInt saturate.
func (d *Decoder) Size(n Notation) (int, error) {
	if !n.valid {
		return 0, ErrPrecondition
	}

	switch d.mode {
	case ModeNested:
		var s frameSizer
		if err := scan(n.src, &s); err != nil {
			return 0, err
		}
		return s.result(), nil
	default:
		var s tailSizer
		if err := scan(n.src, &s); err != nil {
			return 0, err
		}
		return s.result(), nil
	}
}

// Expand decodes a validated notation. The output length is checked
// before anything is built.
func (d *Decoder) Expand(n Notation) (string, error) {
	size, err := d.Size(n)
	if err != nil {
		return "", err
	}
	if size == math.MaxInt {
		return "", &LimitError{Size: size}
	}
	if d.maxOutput > 0 && size > d.maxOutput {
		return "", &LimitError{Size: size, Limit: d.maxOutput}
	}

	switch d.mode {
	case ModeNested:
		var e frameExpander
		if err := scan(n.src, &e); err != nil {
			return "", err
		}
		return e.result(), nil
	default:
		var e tailExpander
		if err := scan(n.src, &e); err != nil {
			return "", err
		}
		return e.result(), nil
	}
}

// Decode validates s and expands it. Invalid input yields a *GrammarError
// and no output.
func (d *Decoder) Decode(s string) (string, error) {
	n, err := Parse(s)
	if err != nil {
		return "", err
	}
	return d.Expand(n)
}

var defaultDecoder = NewDecoder()

// Decode uses a ModeCompat decoder with no output cap.
func Decode(s string) (string, error) {
	return defaultDecoder.Decode(s)
}
