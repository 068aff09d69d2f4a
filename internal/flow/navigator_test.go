package flow

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookup map[int]SelectionReader

func (l lookup) SelectionAt(index int) SelectionReader {
	return l[index]
}

func newTestNavigator(t *testing.T, steps []Step, states StateLookup) (*Navigator, *[]int) {
	t.Helper()
	cat, err := NewCatalog(steps)
	require.NoError(t, err)

	nav := NewNavigator(cat, states)
	var seen []int
	nav.OnIndexChange(func(i int) { seen = append(seen, i) })
	return nav, &seen
}

var fourSteps = []Step{StepWelcome, StepHighlight, StepSelection, StepCompletion}

func TestNavigator_StartsAtZero(t *testing.T) {
	nav, seen := newTestNavigator(t, fourSteps, nil)
	assert.Equal(t, 0, nav.CurrentIndex())
	assert.Equal(t, 4, nav.StepCount())
	assert.Equal(t, StepWelcome, nav.CurrentStep())
	assert.Empty(t, *seen)
}

func TestNavigator_AdvanceAtLastIsNoop(t *testing.T) {
	nav, seen := newTestNavigator(t, []Step{StepWelcome, StepCompletion}, nil)

	assert.Equal(t, OutcomeMoved, nav.Advance())
	assert.Equal(t, OutcomeAtBoundary, nav.Advance())
	assert.Equal(t, OutcomeAtBoundary, nav.Advance())

	assert.Equal(t, 1, nav.CurrentIndex())
	assert.Equal(t, []int{1}, *seen)
	assert.True(t, nav.IsAtEnd())
	assert.True(t, nav.IsComplete())
}

func TestNavigator_RetreatAtZeroIsNoop(t *testing.T) {
	nav, seen := newTestNavigator(t, fourSteps, nil)

	assert.Equal(t, OutcomeAtBoundary, nav.Retreat())
	assert.Equal(t, 0, nav.CurrentIndex())
	assert.Empty(t, *seen)
	assert.False(t, nav.CanRetreat())
}

func TestNavigator_GateBlocksIncompleteStep(t *testing.T) {
	sel := fixedSelection(false)
	nav, seen := newTestNavigator(t, []Step{StepSelection, StepCompletion}, lookup{0: sel})

	assert.False(t, nav.CanAdvance())
	assert.Equal(t, OutcomeGated, nav.Advance())
	assert.Equal(t, 0, nav.CurrentIndex())
	assert.Empty(t, *seen)
}

func TestNavigator_NilLookupGatesSelection(t *testing.T) {
	nav, _ := newTestNavigator(t, []Step{StepSelection, StepCompletion}, nil)
	assert.Equal(t, OutcomeGated, nav.Advance())
}

func TestNavigator_RetreatIsNeverGated(t *testing.T) {
	nav, seen := newTestNavigator(t, []Step{StepWelcome, StepSelection}, lookup{1: fixedSelection(false)})
	require.Equal(t, OutcomeMoved, nav.Advance())
	require.Equal(t, OutcomeGated, nav.Advance())

	assert.Equal(t, OutcomeMoved, nav.Retreat())
	assert.Equal(t, 0, nav.CurrentIndex())
	assert.Equal(t, []int{1, 0}, *seen)
}

func TestNavigator_JumpTo(t *testing.T) {
	nav, seen := newTestNavigator(t, fourSteps, lookup{2: fixedSelection(false)})

	// Skips the incomplete selection step.
	require.NoError(t, nav.JumpTo(3))
	assert.Equal(t, 3, nav.CurrentIndex())

	// Same index still notifies.
	require.NoError(t, nav.JumpTo(3))
	assert.Equal(t, []int{3, 3}, *seen)
}

func TestNavigator_JumpToOutOfRange(t *testing.T) {
	nav, seen := newTestNavigator(t, fourSteps, nil)
	require.NoError(t, nav.JumpTo(1))

	for _, idx := range []int{5, 4, -1} {
		err := nav.JumpTo(idx)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
	assert.Equal(t, 1, nav.CurrentIndex())
	assert.Equal(t, []int{1}, *seen)
}

func TestNavigator_ReentrantObserverIsQueued(t *testing.T) {
	cat, err := NewCatalog([]Step{StepWelcome, StepHighlight, StepHighlight, StepCompletion})
	require.NoError(t, err)
	nav := NewNavigator(cat, nil)

	var order []int
	depth, maxDepth := 0, 0
	nav.OnIndexChange(func(i int) {
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
		order = append(order, i)
		// Keep moving forward from inside the handler.
		nav.Advance()
		depth--
	})

	assert.Equal(t, OutcomeMoved, nav.Advance())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 3, nav.CurrentIndex())
	assert.Equal(t, 1, maxDepth)
}

func TestNavigator_PanickingObserverDropsPending(t *testing.T) {
	cat, err := NewCatalog([]Step{StepWelcome, StepHighlight, StepHighlight, StepCompletion})
	require.NoError(t, err)
	nav := NewNavigator(cat, nil)

	panicked := false
	var seen []int
	nav.OnIndexChange(func(i int) {
		seen = append(seen, i)
		if !panicked {
			panicked = true
			nav.Advance()
			panic("observer failed")
		}
	})
	assert.Panics(t, func() { nav.Advance() })
	assert.Equal(t, 2, nav.CurrentIndex())

	seen = nil
	require.NoError(t, nav.JumpTo(0))
	assert.Equal(t, []int{0}, seen, "queued index from the failed dispatch is not replayed")
}

func TestNavigator_IndexAlwaysValid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 6; n++ {
		steps := make([]Step, n)
		states := lookup{}
		for i := range steps {
			steps[i] = Step(rng.Intn(4))
			if steps[i] == StepSelection {
				states[i] = fixedSelection(rng.Intn(2) == 0)
			}
		}
		nav, _ := newTestNavigator(t, steps, states)

		for op := 0; op < 200; op++ {
			switch rng.Intn(3) {
			case 0:
				nav.Advance()
			case 1:
				nav.Retreat()
			case 2:
				_ = nav.JumpTo(rng.Intn(n+4) - 2)
			}
			idx := nav.CurrentIndex()
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, n)
		}
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "moved", OutcomeMoved.String())
	assert.Equal(t, "gated", OutcomeGated.String())
	assert.Equal(t, "boundary", OutcomeAtBoundary.String())
}
