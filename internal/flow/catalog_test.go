package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_RejectsEmpty(t *testing.T) {
	cat, err := NewCatalog(nil)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Nil(t, cat)

	_, err = NewCatalog([]Step{})
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestNewCatalog_RejectsUnknownStep(t *testing.T) {
	_, err := NewCatalog([]Step{StepWelcome, Step(42)})
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	steps := []Step{StepWelcome, StepSelection}
	cat, err := NewCatalog(steps)
	require.NoError(t, err)

	steps[0] = StepCompletion
	got, err := cat.At(0)
	require.NoError(t, err)
	assert.Equal(t, StepWelcome, got)

	out := cat.Steps()
	out[1] = StepHighlight
	got, _ = cat.At(1)
	assert.Equal(t, StepSelection, got)
}

func TestCatalog_At(t *testing.T) {
	cat, err := NewCatalog([]Step{StepWelcome, StepHighlight, StepSelection, StepCompletion})
	require.NoError(t, err)
	assert.Equal(t, 4, cat.Len())

	tests := []struct {
		index   int
		want    Step
		wantErr bool
	}{
		{0, StepWelcome, false},
		{3, StepCompletion, false},
		{-1, 0, true},
		{4, 0, true},
	}
	for _, tt := range tests {
		got, err := cat.At(tt.index)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidArgument, "index %d", tt.index)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestCatalog_AllowsDuplicates(t *testing.T) {
	cat, err := NewCatalog([]Step{StepHighlight, StepHighlight})
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		input   string
		want    Step
		wantErr bool
	}{
		{"welcome", StepWelcome, false},
		{"Highlight", StepHighlight, false},
		{"mix", StepHighlight, false},
		{"SKILL", StepSelection, false},
		{"selection", StepSelection, false},
		{" finale ", StepCompletion, false},
		{"completion", StepCompletion, false},
		{"signup", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStep(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, name string) Step {
	t.Helper()
	s, err := ParseStep(name)
	require.NoError(t, err)
	return s
}
