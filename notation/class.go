package notation

type class uint8

const (
	classOther class = iota
	classDigit
	classLetter
	classOpen
	classClose
)

// classify maps one byte of input to its grammar class. Only ASCII digits
// and letters are recognised.
func classify(c byte) class {
	switch {
	case c >= '0' && c <= '9':
		return classDigit
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return classLetter
	case c == '[':
		return classOpen
	case c == ']':
		return classClose
	default:
		return classOther
	}
}
