package flow

import (
	"fmt"
	"strings"
)

// Step identifies one screen of the onboarding sequence.
type Step int

const (
	StepWelcome Step = iota
	StepHighlight
	StepSelection
	StepCompletion
)

// String returns the canonical lowercase name of the step.
func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepHighlight:
		return "highlight"
	case StepSelection:
		return "selection"
	case StepCompletion:
		return "completion"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Valid reports whether s is one of the known steps.
func (s Step) Valid() bool {
	return s >= StepWelcome && s <= StepCompletion
}

// ParseStep parses a step name. Matching is case-insensitive and accepts a
// few aliases used in older content files.
func ParseStep(name string) (Step, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "welcome":
		return StepWelcome, nil
	case "highlight", "feature", "mix":
		return StepHighlight, nil
	case "selection", "select", "skill":
		return StepSelection, nil
	case "completion", "finale", "done":
		return StepCompletion, nil
	default:
		return 0, fmt.Errorf("unknown step %q: %w", name, ErrInvalidConfiguration)
	}
}
