package tm

// Stack is one unbounded half of the simulated tape. Cells that were
// never pushed read as zero.
type Stack struct {
	Data []byte
}

func (s *Stack) Push(sym byte) {
	s.Data = append(s.Data, sym)
}

func (s *Stack) Pop() (sym byte, ok bool) {
	sym, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Peek() (sym byte, ok bool) {
	if s.Empty() {
		sym = SYMBOL_ZERO
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
