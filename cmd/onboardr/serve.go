package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/onboardr/internal/journal"
	"github.com/mark3labs/onboardr/internal/mcpserver"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	content string
	port    int
	journal bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve one onboarding flow as MCP tools",
	Long: `Serve one onboarding flow over streamable HTTP MCP on 127.0.0.1.

Tools: flow-status, flow-advance, flow-retreat, flow-jump, flow-select,
flow-finish and, with --journal, flow-history. Runs until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.content, "content", "c", "", "Content file (default: configured or built-in steps)")
	serveCmd.Flags().IntVar(&serveFlags.port, "port", -1, "Port to listen on, 0 picks a free port (default: mcp_port from config)")
	serveCmd.Flags().BoolVar(&serveFlags.journal, "journal", false, "Record flow events and enable flow-history")
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := loadContent(serveFlags.content)
	if err != nil {
		return err
	}
	f, err := c.NewFlow()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var j *journal.Journal
	if serveFlags.journal || cfg.Journal {
		j, err = openJournal(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = j.Close() }()
		f.Subscribe(j)
	}

	port := cfg.MCPPort
	if serveFlags.port >= 0 {
		port = serveFlags.port
	}

	srv := mcpserver.New(f, c, j, port)
	if _, err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	defer func() { _ = srv.Stop() }()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving onboarding flow at %s\n", srv.URL())
	<-ctx.Done()
	fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down...")
	if j != nil {
		logJournal(cmd.Context(), j)
	}
	return nil
}
