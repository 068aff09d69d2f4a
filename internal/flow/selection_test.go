package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var skillTitles = []string{"Beginner", "Intermediate", "Pro"}

type selectionCall struct {
	index int
	title string
}

func newRecordedSelection(t *testing.T) (*Selection, *[]selectionCall) {
	t.Helper()
	sel, err := NewSelection(skillTitles)
	require.NoError(t, err)

	var calls []selectionCall
	sel.OnChange(func(index int, title string) {
		calls = append(calls, selectionCall{index, title})
	})
	return sel, &calls
}

func TestNewSelection_Validation(t *testing.T) {
	_, err := NewSelection(nil)
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewSelection([]string{"ok", ""})
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	sel, err := NewSelection(skillTitles)
	require.NoError(t, err)
	assert.Equal(t, 3, sel.Len())
	assert.False(t, sel.IsAnySelected())
	_, ok := sel.Selected()
	assert.False(t, ok)
}

func TestSelection_CallbackCarriesIndexAndTitle(t *testing.T) {
	sel, calls := newRecordedSelection(t)

	require.NoError(t, sel.Select(0))

	require.Len(t, *calls, 1)
	assert.Equal(t, selectionCall{0, "Beginner"}, (*calls)[0])
}

func TestSelection_LastWriteWins(t *testing.T) {
	sel, calls := newRecordedSelection(t)

	require.NoError(t, sel.Select(0))
	require.NoError(t, sel.Select(2))

	assert.True(t, sel.IsAnySelected())
	idx, ok := sel.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Equal(t, "Pro", sel.SelectedTitle())

	for i, o := range sel.Options() {
		assert.Equal(t, i == 2, o.Selected, "option %d", i)
	}
	assert.Len(t, *calls, 2)
}

func TestSelection_ReselectStillNotifies(t *testing.T) {
	sel, calls := newRecordedSelection(t)

	require.NoError(t, sel.Select(1))
	before := sel.Options()
	require.NoError(t, sel.Select(1))

	assert.Equal(t, before, sel.Options())
	assert.True(t, sel.IsAnySelected())
	idx, _ := sel.Selected()
	assert.Equal(t, 1, idx)
	assert.Equal(t, []selectionCall{{1, "Intermediate"}, {1, "Intermediate"}}, *calls)
}

func TestSelection_OutOfRange(t *testing.T) {
	sel, calls := newRecordedSelection(t)
	require.NoError(t, sel.Select(1))

	for _, idx := range []int{-1, 3, 100} {
		err := sel.Select(idx)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}

	idx, _ := sel.Selected()
	assert.Equal(t, 1, idx)
	assert.Len(t, *calls, 1)
}

func TestSelection_Reset(t *testing.T) {
	sel, calls := newRecordedSelection(t)
	require.NoError(t, sel.Select(0))

	sel.Reset()

	assert.False(t, sel.IsAnySelected())
	assert.Equal(t, "", sel.SelectedTitle())
	assert.Len(t, *calls, 1)
}

func TestSelection_OptionsIsCopy(t *testing.T) {
	sel, _ := newRecordedSelection(t)
	opts := sel.Options()
	opts[0].Selected = true
	assert.False(t, sel.IsAnySelected())
	assert.Equal(t, "", sel.Title(5))
	assert.Equal(t, "Pro", sel.Title(2))
}
