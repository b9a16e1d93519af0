package reveal

// Sequence hands out narration lines one at a time. It is not safe for
// concurrent use.
type Sequence struct {
	steps []string
	pos   int
}

// NewSequence creates a Sequence over a copy of steps.
func NewSequence(steps []string) *Sequence {
	return &Sequence{steps: append([]string(nil), steps...)}
}

// Next returns the next line and true, or "" and false once drained.
func (s *Sequence) Next() (string, bool) {
	if s.pos >= len(s.steps) {
		return "", false
	}
	line := s.steps[s.pos]
	s.pos++
	return line, true
}

// Len returns the total number of lines.
func (s *Sequence) Len() int {
	return len(s.steps)
}

// Remaining returns how many lines have not been handed out yet.
func (s *Sequence) Remaining() int {
	return len(s.steps) - s.pos
}

// Position returns the zero-based index of the line Next will return.
func (s *Sequence) Position() int {
	return s.pos
}
