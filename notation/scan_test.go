package notation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []string
}

func (r *recorder) literal(run string) { r.events = append(r.events, "lit:"+run) }
func (r *recorder) open(mult int)      { r.events = append(r.events, "open:"+strconv.Itoa(mult)) }
func (r *recorder) close() error {
	r.events = append(r.events, "close")
	return nil
}

func TestScanEvents(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"ab", []string{"lit:ab"}},
		{"4[ab]", []string{"open:4", "lit:ab", "close"}},
		{"2[b3[a]]", []string{"open:2", "lit:b", "open:3", "lit:a", "close", "close"}},
		{"12[a]", []string{"open:12", "lit:a", "close"}},
		{"2[a3b]", []string{"open:2", "lit:a", "lit:3b", "close"}},
		{"x2[y]z", []string{"lit:x", "open:2", "lit:y", "close", "lit:z"}},
		{"2[a-b]", []string{"open:2", "lit:ab", "close"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var r recorder
			require.NoError(t, scan(tt.input, &r))
			assert.Equal(t, tt.want, r.events)
		})
	}
}

func TestScanRefusesGroupWithoutMultiplier(t *testing.T) {
	var r recorder
	err := scan("a[b]", &r)
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, classDigit, classify('0'))
	assert.Equal(t, classDigit, classify('9'))
	assert.Equal(t, classLetter, classify('a'))
	assert.Equal(t, classLetter, classify('Z'))
	assert.Equal(t, classOpen, classify('['))
	assert.Equal(t, classClose, classify(']'))
	assert.Equal(t, classOther, classify(' '))
	assert.Equal(t, classOther, classify(0xc3))
}

func TestStack(t *testing.T) {
	var s stack[string]
	_, ok := s.pop()
	assert.False(t, ok)

	s.push("a")
	s.push("b")
	assert.Equal(t, 2, s.len())

	top, ok := s.peek()
	require.True(t, ok)
	assert.Equal(t, "b", top)

	v, _ := s.pop()
	assert.Equal(t, "b", v)
	v, _ = s.pop()
	assert.Equal(t, "a", v)
	assert.Equal(t, 0, s.len())
}
