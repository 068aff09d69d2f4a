package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/onboardr/internal/hooks"
	"github.com/mark3labs/onboardr/internal/journal"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/mark3labs/onboardr/internal/tui/onboarding"
	"github.com/spf13/cobra"
)

var runFlags struct {
	content string
	journal bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the onboarding flow in the terminal",
	Long: `Run the onboarding flow full screen.

enter continues, →/l/tab and ←/h move between pages, ↑/↓ and space or 1-9
choose an option, esc on the first page or ctrl+c quits.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.content, "content", "c", "", "Content file (default: configured or built-in steps)")
	runCmd.Flags().BoolVar(&runFlags.journal, "journal", false, "Record flow events in an in-process JetStream journal")
}

func runRun(cmd *cobra.Command, args []string) error {
	c, err := loadContent(runFlags.content)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	var opts onboarding.Options
	var j *journal.Journal
	if runFlags.journal || cfg.Journal {
		j, err = openJournal(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = j.Close() }()
		opts.Observers = append(opts.Observers, j)
	}

	hookCfg, err := hooks.LoadConfig(".")
	if err != nil {
		return err
	}

	res, err := onboarding.Run(ctx, c, opts)
	vars := hooks.Variables{}
	if j != nil {
		logJournal(ctx, j)
		vars.Flow = j.FlowID()
	}
	if errors.Is(err, onboarding.ErrCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Onboarding cancelled.")
		if hookCfg != nil {
			return runHooks(ctx, cmd.OutOrStdout(), hookCfg.Hooks.OnCancel, vars)
		}
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Onboarding complete.")
	if res.SkillLevel != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Skill level: %s (%s)\n", res.SkillLevel, res.SkillSlug)
	}
	if hookCfg != nil {
		vars.Skill = res.SkillLevel
		vars.SkillSlug = res.SkillSlug
		return runHooks(ctx, cmd.OutOrStdout(), hookCfg.Hooks.OnFinish, vars)
	}
	return nil
}

// runHooks executes hooks from the working directory and prints piped output.
func runHooks(ctx context.Context, out io.Writer, list []*hooks.HookConfig, vars hooks.Variables) error {
	output, err := hooks.ExecuteAllPiped(ctx, list, ".", vars)
	if err != nil {
		return fmt.Errorf("running hooks: %w", err)
	}
	if output != "" {
		fmt.Fprint(out, output)
	}
	return nil
}

// openJournal starts a journal for a new flow run.
func openJournal(ctx context.Context) (*journal.Journal, error) {
	flowID := fmt.Sprintf("run-%d", time.Now().UnixNano())
	j, err := journal.Open(ctx, cfg.DataDir, flowID)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return j, nil
}

// logJournal writes a summary of the recorded events to the log.
func logJournal(ctx context.Context, j *journal.Journal) {
	records, err := j.History(ctx, j.FlowID())
	if err != nil {
		logger.Warn("reading journal: %v", err)
		return
	}
	sum := journal.Summarize(records)
	logger.Info("flow %s: %d events, last step %d, selected %q, finished=%v",
		j.FlowID(), sum.Events, sum.LastIndex, sum.Selected, sum.Finished)
	for idx, n := range sum.Visits {
		logger.Debug("step %d visited %d times", idx, n)
	}
}
