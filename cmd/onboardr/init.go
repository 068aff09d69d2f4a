package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/mark3labs/onboardr/internal/config"
	"github.com/mark3labs/onboardr/internal/content"
	"github.com/spf13/cobra"
)

// contentFileName is written next to the config file.
const contentFileName = "onboardr-steps.yml"

var initFlags struct {
	project bool
	force   bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create onboardr configuration and a content file",
	Long: `Create an onboardr configuration file and a copy of the built-in step
content to customize.

By default, writes to ~/.config/onboardr/. Use --project to write into the
current directory instead. With --force, existing files are overwritten and
a diff of each change is printed.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initFlags.project, "project", "p", false, "Create files in current directory instead of global location")
	initCmd.Flags().BoolVarP(&initFlags.force, "force", "f", false, "Overwrite existing files")
}

func runInit(cmd *cobra.Command, args []string) error {
	return writeInitFiles(cmd.OutOrStdout(), initFlags.project, initFlags.force)
}

// writeInitFiles writes the config and content files. Without force, an
// existing config is an error.
func writeInitFiles(out io.Writer, project, force bool) error {
	configPath := config.GlobalPath()
	if project {
		configPath = config.ProjectPath()
	}
	contentPath := filepath.Join(filepath.Dir(configPath), contentFileName)

	if !force && fileExists(configPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", configPath)
	}

	newCfg := &config.Config{
		Content:  contentPath,
		LogLevel: "info",
		DataDir:  filepath.Join(os.TempDir(), "onboardr"),
	}
	cfgData, err := config.Marshal(newCfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := replaceFile(out, contentPath, content.DefaultYAML()); err != nil {
		return err
	}
	if err := replaceFile(out, configPath, cfgData); err != nil {
		return err
	}

	fmt.Fprintf(out, "Config written to: %s\n", configPath)
	fmt.Fprintf(out, "Content written to: %s\n\n", contentPath)
	fmt.Fprintln(out, "Edit the steps with 'onboardr content edit', then run 'onboardr run'.")
	return nil
}

// replaceFile writes data to path, printing a unified diff when an existing
// file with different contents is overwritten.
func replaceFile(out io.Writer, path string, data []byte) error {
	old, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("reading %s: %w", path, err)
	default:
		if diff := unifiedDiff(path, string(old), string(data)); diff != "" {
			fmt.Fprintln(out, diff)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// unifiedDiff returns the diff from old to new, or "" when they are equal.
func unifiedDiff(path, old, new string) string {
	if old == new {
		return ""
	}
	return udiff.Unified(path+" (old)", path, old, new)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
