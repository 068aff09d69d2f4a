package flow

import "fmt"

// Option is one mutually-exclusive choice of a selection step.
type Option struct {
	Title    string
	Selected bool
}

// SelectionReader is the part of a selection the completion gate consults.
type SelectionReader interface {
	IsAnySelected() bool
}

// SelectionView is a read-only view of a selection. Changes go through
// Flow.Select so a finished flow stays unchanged.
type SelectionView interface {
	SelectionReader
	Selected() (int, bool)
	SelectedTitle() string
	Len() int
	Title(i int) string
	Options() []Option
}

// Selection holds single-choice state over a fixed option list.
// At most one option is selected at any time.
type Selection struct {
	options   []Option
	selected  int // -1 when nothing is selected
	observers []func(index int, title string)
}

// NewSelection creates a selection with nothing chosen.
func NewSelection(titles []string) (*Selection, error) {
	if len(titles) == 0 {
		return nil, fmt.Errorf("selection needs at least one option: %w", ErrInvalidConfiguration)
	}

	options := make([]Option, len(titles))
	for i, title := range titles {
		if title == "" {
			return nil, fmt.Errorf("option %d has an empty title: %w", i, ErrInvalidConfiguration)
		}
		options[i] = Option{Title: title}
	}

	return &Selection{options: options, selected: -1}, nil
}

// Select marks option index as the only selected option and notifies
// observers. Selecting the current option again leaves the options untouched
// but still notifies.
func (s *Selection) Select(index int) error {
	if index < 0 || index >= len(s.options) {
		return fmt.Errorf("option index %d out of range [0,%d): %w", index, len(s.options), ErrInvalidArgument)
	}

	if s.selected != index {
		if s.selected >= 0 {
			s.options[s.selected].Selected = false
		}
		s.options[index].Selected = true
		s.selected = index
	}

	title := s.options[index].Title
	for _, fn := range s.observers {
		fn(index, title)
	}
	return nil
}

// IsAnySelected reports whether exactly one option is selected.
func (s *Selection) IsAnySelected() bool {
	count := 0
	for _, o := range s.options {
		if o.Selected {
			count++
		}
	}
	return count == 1
}

// Selected returns the selected option index, if any.
func (s *Selection) Selected() (int, bool) {
	if s.selected < 0 {
		return -1, false
	}
	return s.selected, true
}

// SelectedTitle returns the title of the selected option or "".
func (s *Selection) SelectedTitle() string {
	if s.selected < 0 {
		return ""
	}
	return s.options[s.selected].Title
}

// Len returns the number of options.
func (s *Selection) Len() int {
	return len(s.options)
}

// Title returns the title of option i, or "" when i is out of range.
func (s *Selection) Title(i int) string {
	if i < 0 || i >= len(s.options) {
		return ""
	}
	return s.options[i].Title
}

// Options returns a copy of the options.
func (s *Selection) Options() []Option {
	cp := make([]Option, len(s.options))
	copy(cp, s.options)
	return cp
}

// OnChange registers fn to run after every successful Select.
func (s *Selection) OnChange(fn func(index int, title string)) {
	s.observers = append(s.observers, fn)
}

// Reset clears the selection without notifying observers.
func (s *Selection) Reset() {
	for i := range s.options {
		s.options[i].Selected = false
	}
	s.selected = -1
}
