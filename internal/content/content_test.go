package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/onboardr/internal/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.Len(t, c.Steps, 4)

	want := []flow.Step{flow.StepWelcome, flow.StepHighlight, flow.StepSelection, flow.StepCompletion}
	for i, s := range c.Steps {
		assert.Equal(t, want[i], s.Type(), "step %d", i)
	}
	assert.Equal(t, []string{
		"I'm new to DJing",
		"I've used DJ apps before",
		"I'm a professional DJ",
	}, c.Steps[2].Options)
	assert.Equal(t, "Let's go", c.Steps[2].ButtonLabel())
}

func TestDefinition(t *testing.T) {
	def := Default().Definition()
	assert.Len(t, def.Steps, 4)
	require.Contains(t, def.Options, 2)
	assert.Len(t, def.Options[2], 3)
	assert.NotContains(t, def.Options, 0)

	f, err := Default().NewFlow()
	require.NoError(t, err)
	assert.Equal(t, 4, f.StepCount())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "steps: [:"},
		{"no steps", "steps: []"},
		{"unknown kind", "steps:\n  - kind: signup\n"},
		{"selection without options", "steps:\n  - kind: selection\n"},
		{"options on welcome", "steps:\n  - kind: welcome\n    options: [a]\n"},
		{"empty option", "steps:\n  - kind: selection\n    options: [a, \"\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, flow.ErrInvalidConfiguration)
		})
	}
}

func TestParse_AliasesAndDefaults(t *testing.T) {
	c, err := Parse([]byte("steps:\n  - kind: mix\n  - kind: finale\n"))
	require.NoError(t, err)
	assert.Equal(t, flow.StepHighlight, c.Steps[0].Type())
	assert.Equal(t, flow.StepCompletion, c.Steps[1].Type())
	assert.Equal(t, DefaultButton, c.Steps[0].ButtonLabel())
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Steps, 4)

	path := filepath.Join(t.TempDir(), "steps.yml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - kind: welcome\n    heading: Hi\n"), 0644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Hi", c.Steps[0].Heading)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestMarshalRoundTripKeepsValidity(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default().Steps[3].Emoji, c.Steps[3].Emoji)
}

func TestDefaultYAMLIsCopy(t *testing.T) {
	a := DefaultYAML()
	a[0] = 'X'
	assert.NotEqual(t, a[0], DefaultYAML()[0])
}
