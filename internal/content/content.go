// Package content loads the text shown on each onboarding step and turns it
// into a flow definition.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/mark3labs/onboardr/internal/flow"
	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultYAML []byte

// DefaultButton is used when a step does not name its button.
const DefaultButton = "Continue"

// Step is the presentation content of one step.
type Step struct {
	Kind    string   `yaml:"kind"`
	Heading string   `yaml:"heading,omitempty"`
	Body    string   `yaml:"body,omitempty"`
	Button  string   `yaml:"button,omitempty"`
	Emoji   string   `yaml:"emoji,omitempty"`
	Options []string `yaml:"options,omitempty"`

	step flow.Step
}

// Type returns the parsed step kind.
func (s Step) Type() flow.Step {
	return s.step
}

// ButtonLabel returns the button text, falling back to DefaultButton.
func (s Step) ButtonLabel() string {
	if s.Button == "" {
		return DefaultButton
	}
	return s.Button
}

// Content is an ordered list of steps.
type Content struct {
	Steps []Step `yaml:"steps"`
}

// Default returns the built-in content.
func Default() *Content {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in content is invalid: %v", err))
	}
	return c
}

// DefaultYAML returns the raw built-in content document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// Load reads content from path. An empty path yields Default.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a content document.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing content: %v: %w", err, flow.ErrInvalidConfiguration)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) validate() error {
	if len(c.Steps) == 0 {
		return fmt.Errorf("content has no steps: %w", flow.ErrInvalidConfiguration)
	}
	for i := range c.Steps {
		s := &c.Steps[i]
		kind, err := flow.ParseStep(s.Kind)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		s.step = kind

		switch {
		case kind == flow.StepSelection && len(s.Options) == 0:
			return fmt.Errorf("step %d: selection step needs options: %w", i+1, flow.ErrInvalidConfiguration)
		case kind != flow.StepSelection && len(s.Options) > 0:
			return fmt.Errorf("step %d: only selection steps take options: %w", i+1, flow.ErrInvalidConfiguration)
		}
		for j, opt := range s.Options {
			if opt == "" {
				return fmt.Errorf("step %d: option %d is empty: %w", i+1, j+1, flow.ErrInvalidConfiguration)
			}
		}
	}
	return nil
}

// Definition converts the content into the navigation core's input.
func (c *Content) Definition() flow.Definition {
	def := flow.Definition{
		Steps:   make([]flow.Step, len(c.Steps)),
		Options: make(map[int][]string),
	}
	for i, s := range c.Steps {
		def.Steps[i] = s.step
		if len(s.Options) > 0 {
			def.Options[i] = append([]string(nil), s.Options...)
		}
	}
	return def
}

// NewFlow builds a flow from the content.
func (c *Content) NewFlow() (*flow.Flow, error) {
	return flow.New(c.Definition())
}

// Marshal renders the content as YAML.
func (c *Content) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling content: %w", err)
	}
	return data, nil
}
