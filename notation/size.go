package notation

import "math"

func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func mulSat(a, m int) int {
	if a == 0 || m == 0 {
		return 0
	}
	if a > math.MaxInt/m {
		return math.MaxInt
	}
	return a * m
}

// tailSizer mirrors tailExpander with lengths only.
type tailSizer struct {
	mults stack[int]
	segs  stack[int]
	tail  int
}

func (s *tailSizer) literal(run string) { s.segs.push(len(run)) }

func (s *tailSizer) open(mult int) { s.mults.push(mult) }

func (s *tailSizer) close() error {
	mult, ok := s.mults.pop()
	seg, ok2 := s.segs.pop()
	if !ok || !ok2 {
		return errUnbalanced
	}
	s.tail = mulSat(addSat(seg, s.tail), mult)
	return nil
}

func (s *tailSizer) result() int { return s.tail }

// frameSizer mirrors frameExpander with lengths only.
type frameSizer struct {
	mults stack[int]
	lens  stack[int]
	root  int
}

func (s *frameSizer) add(n int) {
	if top := s.lens.len() - 1; top >= 0 {
		s.lens.items[top] = addSat(s.lens.items[top], n)
		return
	}
	s.root = addSat(s.root, n)
}

func (s *frameSizer) literal(run string) { s.add(len(run)) }

func (s *frameSizer) open(mult int) {
	s.mults.push(mult)
	s.lens.push(0)
}

func (s *frameSizer) close() error {
	mult, ok := s.mults.pop()
	n, ok2 := s.lens.pop()
	if !ok || !ok2 {
		return errUnbalanced
	}
	s.add(mulSat(n, mult))
	return nil
}

func (s *frameSizer) result() int { return s.root }
