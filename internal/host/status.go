package host

// Status is the one-line indicator at the bottom of the screen.
type Status struct {
	text string
	err  bool
}

// Set shows an informational message.
func (s *Status) Set(text string) {
	s.text = text
	s.err = false
}

// SetError shows an error message.
func (s *Status) SetError(text string) {
	s.text = text
	s.err = true
}

// Text returns the current message.
func (s *Status) Text() string {
	return s.text
}

// IsError reports whether the current message is an error.
func (s *Status) IsError() bool {
	return s.err
}
