package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/onboardr/internal/config"
	"github.com/mark3labs/onboardr/internal/content"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "onboardr",
	Short: "Paged terminal onboarding with gated navigation",
	Long: `onboardr walks a user through a short sequence of full-screen steps:
a welcome page, a feature highlight, a skill-level choice and a completion
page. Moving forward is refused until the current step is done.

Step text comes from a YAML content file (see 'onboardr init'). The same
flow can be driven headlessly over MCP with 'onboardr serve'.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads configuration and points the logger at it.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(loaded.LogLevel, loaded.LogFile); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	cfg = loaded
	logger.Debug("config loaded: content=%q journal=%v", cfg.Content, cfg.Journal)
	return nil
}

// loadContent loads the content file named by path, or the configured one
// when path is empty.
func loadContent(path string) (*content.Content, error) {
	if path == "" && cfg != nil {
		path = cfg.Content
	}
	c, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	return c, nil
}
