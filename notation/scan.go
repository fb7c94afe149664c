package notation

import (
	"fmt"
	"strconv"
)

type scanState uint8

const (
	stateIdle scanState = iota
	stateLetters
	stateDigits
)

// handler receives the events produced by scan.
type handler interface {
	literal(run string)
	open(mult int)
	close() error
}

// scan walks a validated notation left to right. A letter run is flushed
// when a digit or ']' arrives, a digit run becomes a multiplier at '['.
// Digits followed by a letter stay in the same run as literal text.
// Bytes outside the grammar alphabet are skipped.
func scan(src string, h handler) error {
	var (
		buf   []byte
		state = stateIdle
	)

	flush := func() {
		if len(buf) > 0 {
			h.literal(string(buf))
			buf = buf[:0]
		}
	}

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch classify(c) {
		case classLetter:
			state = stateLetters
			buf = append(buf, c)

		case classDigit:
			if state == stateLetters {
				flush()
			}
			state = stateDigits
			buf = append(buf, c)

		case classOpen:
			if state != stateDigits {
				return fmt.Errorf("%w: group at position %d has no multiplier", ErrPrecondition, i)
			}
			mult, err := strconv.Atoi(string(buf))
			if err != nil {
				return fmt.Errorf("%w: %q at position %d", ErrMultiplierRange, buf, i-len(buf))
			}
			buf = buf[:0]
			state = stateIdle
			h.open(mult)

		case classClose:
			flush()
			state = stateIdle
			if err := h.close(); err != nil {
				return fmt.Errorf("%w: position %d", err, i)
			}
		}
	}

	flush()
	return nil
}
