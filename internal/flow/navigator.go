package flow

import (
	"fmt"

	"github.com/mark3labs/onboardr/internal/logger"
)

// Outcome describes what a forward or backward move did.
type Outcome int

const (
	// OutcomeMoved means the index changed and observers were notified.
	OutcomeMoved Outcome = iota
	// OutcomeGated means the current step is incomplete; nothing changed.
	OutcomeGated
	// OutcomeAtBoundary means there is no step in that direction.
	OutcomeAtBoundary
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeGated:
		return "gated"
	case OutcomeAtBoundary:
		return "boundary"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// StateLookup resolves the selection state that belongs to a catalog
// position. It returns nil for positions without one.
type StateLookup interface {
	SelectionAt(index int) SelectionReader
}

// Navigator owns the current position within a Catalog and gates forward
// moves on the completion of the current step.
type Navigator struct {
	catalog   *Catalog
	states    StateLookup
	index     int
	observers []func(index int)

	// pending holds notifications raised while observers are running.
	pending     []int
	dispatching bool
}

// NewNavigator starts at index 0. states may be nil, in which case every
// selection step counts as incomplete.
func NewNavigator(cat *Catalog, states StateLookup) *Navigator {
	return &Navigator{catalog: cat, states: states}
}

// OnIndexChange registers fn to be called with the new index after every
// successful transition.
func (n *Navigator) OnIndexChange(fn func(index int)) {
	n.observers = append(n.observers, fn)
}

// Advance moves one step forward if the current step is complete.
func (n *Navigator) Advance() Outcome {
	if !n.currentCompleted() {
		logger.Debug("advance gated at index %d (%s)", n.index, n.CurrentStep())
		return OutcomeGated
	}
	if n.index+1 >= n.catalog.Len() {
		return OutcomeAtBoundary
	}
	n.set(n.index + 1)
	return OutcomeMoved
}

// Retreat moves one step back. Backward moves are never gated.
func (n *Navigator) Retreat() Outcome {
	if n.index == 0 {
		return OutcomeAtBoundary
	}
	n.set(n.index - 1)
	return OutcomeMoved
}

// JumpTo sets the index directly, skipping the completion gate. Jumping to
// the current index still notifies, which is how the current page is
// re-rendered after a state change.
func (n *Navigator) JumpTo(index int) error {
	if index < 0 || index >= n.catalog.Len() {
		return fmt.Errorf("jump to %d out of range [0,%d): %w", index, n.catalog.Len(), ErrInvalidArgument)
	}
	n.set(index)
	return nil
}

// CurrentIndex returns the current position.
func (n *Navigator) CurrentIndex() int {
	return n.index
}

// StepCount returns the catalog length.
func (n *Navigator) StepCount() int {
	return n.catalog.Len()
}

// CurrentStep returns the step at the current position.
func (n *Navigator) CurrentStep() Step {
	s, _ := n.catalog.At(n.index)
	return s
}

// CanAdvance reports whether Advance would move.
func (n *Navigator) CanAdvance() bool {
	return n.currentCompleted() && n.index+1 < n.catalog.Len()
}

// CanRetreat reports whether Retreat would move.
func (n *Navigator) CanRetreat() bool {
	return n.index > 0
}

// IsAtEnd reports whether the current position is the last step.
func (n *Navigator) IsAtEnd() bool {
	return n.index == n.catalog.Len()-1
}

// IsComplete reports whether the last step is showing and done.
func (n *Navigator) IsComplete() bool {
	return n.IsAtEnd() && n.currentCompleted()
}

// CurrentCompleted reports whether the current step passes the gate.
func (n *Navigator) CurrentCompleted() bool {
	return n.currentCompleted()
}

func (n *Navigator) currentCompleted() bool {
	var sel SelectionReader
	if n.states != nil {
		sel = n.states.SelectionAt(n.index)
	}
	return IsStepCompleted(n.CurrentStep(), sel)
}

// set updates the index and delivers notifications. Observers that call back
// into the navigator have their notifications queued until they return.
func (n *Navigator) set(index int) {
	logger.Debug("navigator index %d -> %d", n.index, index)
	n.index = index
	n.pending = append(n.pending, index)
	if n.dispatching {
		return
	}

	n.dispatching = true
	defer func() {
		n.dispatching = false
		n.pending = nil
	}()
	for len(n.pending) > 0 {
		next := n.pending[0]
		n.pending = n.pending[1:]
		for _, fn := range n.observers {
			fn(next)
		}
	}
}
