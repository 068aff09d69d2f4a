// Package onboarding presents a flow as a full-screen paged TUI.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/gosimple/slug"
	"github.com/mark3labs/onboardr/internal/content"
	"github.com/mark3labs/onboardr/internal/flow"
)

// ErrCancelled is returned by Run when the user quits before finishing.
var ErrCancelled = errors.New("onboarding cancelled")

// Result is what a finished onboarding produced.
type Result struct {
	Finished   bool
	SkillLevel string // Title of the chosen option, empty without a selection step
	SkillSlug  string // URL-safe form of SkillLevel
}

// Options configures Run.
type Options struct {
	// Observers are subscribed to the flow before the program starts.
	Observers []flow.Observer

	// Input and Output override the terminal, mainly for tests.
	Input  io.Reader
	Output io.Writer
}

// Run presents c until the user finishes or cancels.
func Run(ctx context.Context, c *content.Content, opts Options) (*Result, error) {
	f, err := c.NewFlow()
	if err != nil {
		return nil, err
	}
	for _, o := range opts.Observers {
		f.Subscribe(o)
	}

	m := NewModel(f, c)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	finalModel, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		return nil, fmt.Errorf("onboarding failed: %w", err)
	}

	final, ok := finalModel.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	return final.Result()
}

// Result summarizes the model's flow. Returns ErrCancelled if the user left
// before finishing.
func (m *Model) Result() (*Result, error) {
	if m.cancelled || !m.flow.Finished() {
		return nil, ErrCancelled
	}

	res := &Result{Finished: true}
	for i, step := range m.flow.Catalog().Steps() {
		if step != flow.StepSelection {
			continue
		}
		if title := m.flow.Selection(i).SelectedTitle(); title != "" {
			res.SkillLevel = title
			res.SkillSlug = slug.Make(title)
			break
		}
	}
	return res, nil
}
