package memhost

import "strings"

// Sheet collects injected stylesheet text.
type Sheet struct {
	rules   []string
	classes []string
}

// Inject appends the stylesheet text generated for class.
func (s *Sheet) Inject(class, css string) {
	s.classes = append(s.classes, class)
	s.rules = append(s.rules, css)
}

// Classes lists injected class names in injection order.
func (s *Sheet) Classes() []string {
	return s.classes
}

// String returns all injected text concatenated.
func (s *Sheet) String() string {
	return strings.Join(s.rules, "")
}

// Reset forgets everything injected so far.
func (s *Sheet) Reset() {
	s.rules = nil
	s.classes = nil
}
