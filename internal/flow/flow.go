package flow

import (
	"fmt"
	"time"

	"github.com/mark3labs/onboardr/internal/logger"
)

// Definition is the static input a Flow is built from. Options maps a
// catalog position to the option titles of the selection step there.
type Definition struct {
	Steps   []Step
	Options map[int][]string
}

// Snapshot is a read-only view of a flow for presentation.
type Snapshot struct {
	Index         int
	Count         int
	Step          Step
	CanAdvance    bool
	CanRetreat    bool
	Completed     bool
	Complete      bool
	Finished      bool
	SelectedIndex int
	SelectedTitle string
	Options       []Option
}

// Flow wires a catalog, per-step selection state and a navigator together
// and fans their notifications out to observers as Events.
type Flow struct {
	catalog    *Catalog
	nav        *Navigator
	selections map[int]*Selection
	observers  []Observer
	finished   bool
	now        func() time.Time

	queue       []Event
	dispatching bool
}

// New validates def and builds a flow positioned at the first step.
func New(def Definition) (*Flow, error) {
	cat, err := NewCatalog(def.Steps)
	if err != nil {
		return nil, err
	}

	for idx := range def.Options {
		step, err := cat.At(idx)
		if err != nil {
			return nil, fmt.Errorf("options for step %d: %w", idx, ErrInvalidConfiguration)
		}
		if step != StepSelection {
			return nil, fmt.Errorf("options given for %s step at %d: %w", step, idx, ErrInvalidConfiguration)
		}
	}

	f := &Flow{
		catalog:    cat,
		selections: make(map[int]*Selection),
		now:        time.Now,
	}

	for i, step := range cat.steps {
		if step != StepSelection {
			continue
		}
		sel, err := NewSelection(def.Options[i])
		if err != nil {
			return nil, fmt.Errorf("selection step %d: %w", i, err)
		}
		pos := i
		sel.OnChange(func(option int, title string) {
			f.onSelection(pos, option, title)
		})
		f.selections[i] = sel
	}

	f.nav = NewNavigator(cat, f)
	f.nav.OnIndexChange(func(index int) {
		step, _ := cat.At(index)
		f.emit(Event{Kind: EventIndexChanged, Index: index, Step: step})
	})

	return f, nil
}

// Subscribe registers o for every future event.
func (f *Flow) Subscribe(o Observer) {
	f.observers = append(f.observers, o)
}

// SelectionAt implements StateLookup.
func (f *Flow) SelectionAt(index int) SelectionReader {
	sel, ok := f.selections[index]
	if !ok {
		return nil
	}
	return sel
}

// Selection returns a read-only view of the selection at index, or nil.
func (f *Flow) Selection(index int) SelectionView {
	sel, ok := f.selections[index]
	if !ok {
		return nil
	}
	return selectionView{sel}
}

// selectionView hides Select and OnChange of the wrapped selection.
type selectionView struct {
	sel *Selection
}

func (v selectionView) IsAnySelected() bool   { return v.sel.IsAnySelected() }
func (v selectionView) Selected() (int, bool) { return v.sel.Selected() }
func (v selectionView) SelectedTitle() string { return v.sel.SelectedTitle() }
func (v selectionView) Len() int              { return v.sel.Len() }
func (v selectionView) Title(i int) string    { return v.sel.Title(i) }
func (v selectionView) Options() []Option     { return v.sel.Options() }

// Catalog returns the flow's step catalog.
func (f *Flow) Catalog() *Catalog {
	return f.catalog
}

// Advance moves forward when the current step is complete.
func (f *Flow) Advance() (Outcome, error) {
	if f.finished {
		return OutcomeAtBoundary, ErrFinished
	}
	return f.nav.Advance(), nil
}

// Retreat moves back one step.
func (f *Flow) Retreat() (Outcome, error) {
	if f.finished {
		return OutcomeAtBoundary, ErrFinished
	}
	return f.nav.Retreat(), nil
}

// JumpTo moves directly to index.
func (f *Flow) JumpTo(index int) error {
	if f.finished {
		return ErrFinished
	}
	return f.nav.JumpTo(index)
}

// Select chooses option on the current step.
func (f *Flow) Select(option int) error {
	if f.finished {
		return ErrFinished
	}
	sel, ok := f.selections[f.nav.CurrentIndex()]
	if !ok {
		return fmt.Errorf("%s step at %d: %w", f.nav.CurrentStep(), f.nav.CurrentIndex(), ErrNoSelection)
	}
	return sel.Select(option)
}

// Finish ends the flow. It is only allowed once the last step is showing
// and complete.
func (f *Flow) Finish() error {
	if f.finished {
		return ErrFinished
	}
	if !f.nav.IsComplete() {
		return fmt.Errorf("at step %d of %d: %w", f.nav.CurrentIndex()+1, f.nav.StepCount(), ErrNotComplete)
	}
	f.finished = true
	logger.Info("onboarding flow finished")
	f.emit(Event{Kind: EventFinished, Index: f.nav.CurrentIndex(), Step: f.nav.CurrentStep()})
	return nil
}

// Finished reports whether Finish succeeded.
func (f *Flow) Finished() bool {
	return f.finished
}

// CurrentIndex returns the current position.
func (f *Flow) CurrentIndex() int {
	return f.nav.CurrentIndex()
}

// StepCount returns the number of steps.
func (f *Flow) StepCount() int {
	return f.nav.StepCount()
}

// CurrentStep returns the step being shown.
func (f *Flow) CurrentStep() Step {
	return f.nav.CurrentStep()
}

// CanAdvance reports whether a forward move is currently allowed.
func (f *Flow) CanAdvance() bool {
	return !f.finished && f.nav.CanAdvance()
}

// IsComplete reports whether the flow may be finished.
func (f *Flow) IsComplete() bool {
	return f.nav.IsComplete()
}

// Snapshot captures the current state.
func (f *Flow) Snapshot() Snapshot {
	s := Snapshot{
		Index:         f.nav.CurrentIndex(),
		Count:         f.nav.StepCount(),
		Step:          f.nav.CurrentStep(),
		CanAdvance:    f.CanAdvance(),
		CanRetreat:    !f.finished && f.nav.CanRetreat(),
		Completed:     f.nav.CurrentCompleted(),
		Complete:      f.nav.IsComplete(),
		Finished:      f.finished,
		SelectedIndex: -1,
	}
	if sel, ok := f.selections[s.Index]; ok {
		s.Options = sel.Options()
		if idx, ok := sel.Selected(); ok {
			s.SelectedIndex = idx
			s.SelectedTitle = sel.SelectedTitle()
		}
	}
	return s
}

// onSelection reports the change and re-renders the current page so the
// completion gate is evaluated again.
func (f *Flow) onSelection(pos, option int, title string) {
	logger.Debug("selection at step %d: option %d %q", pos, option, title)
	f.emit(Event{Kind: EventSelectionChanged, Index: pos, Step: StepSelection, Option: option, Title: title})
	if f.nav.CurrentIndex() == pos {
		_ = f.nav.JumpTo(pos)
	}
}

// emit delivers e to observers. Events raised by observers are queued and
// delivered in order once the running observer returns.
func (f *Flow) emit(e Event) {
	e.Time = f.now()
	f.queue = append(f.queue, e)
	if f.dispatching {
		return
	}

	f.dispatching = true
	defer func() {
		f.dispatching = false
		f.queue = nil
	}()
	for len(f.queue) > 0 {
		next := f.queue[0]
		f.queue = f.queue[1:]
		for _, o := range f.observers {
			o.OnEvent(next)
		}
	}
}
