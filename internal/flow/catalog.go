package flow

import "fmt"

// Catalog is the ordered, immutable list of steps a flow walks through.
// Position is the only identity a step has.
type Catalog struct {
	steps []Step
}

// NewCatalog copies steps into a new catalog. An empty list or an unknown
// step is rejected with ErrInvalidConfiguration.
func NewCatalog(steps []Step) (*Catalog, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("empty step catalog: %w", ErrInvalidConfiguration)
	}
	for i, s := range steps {
		if !s.Valid() {
			return nil, fmt.Errorf("step %d has unknown value %d: %w", i, int(s), ErrInvalidConfiguration)
		}
	}

	cp := make([]Step, len(steps))
	copy(cp, steps)
	return &Catalog{steps: cp}, nil
}

// Len returns the number of steps.
func (c *Catalog) Len() int {
	return len(c.steps)
}

// At returns the step at position i.
func (c *Catalog) At(i int) (Step, error) {
	if i < 0 || i >= len(c.steps) {
		return 0, fmt.Errorf("step index %d out of range [0,%d): %w", i, len(c.steps), ErrInvalidArgument)
	}
	return c.steps[i], nil
}

// Steps returns a copy of the catalog contents.
func (c *Catalog) Steps() []Step {
	cp := make([]Step, len(c.steps))
	copy(cp, c.steps)
	return cp
}
