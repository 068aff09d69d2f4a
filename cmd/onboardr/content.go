package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/onboardr/internal/content"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/mark3labs/onboardr/internal/tui/theme"
	"github.com/spf13/cobra"
)

var contentFlags struct {
	plain bool
}

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect or edit the onboarding step content",
}

var contentShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the step content YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, name, err := contentSource()
		if err != nil {
			return err
		}
		if contentFlags.plain {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), highlightYAML(string(data), name))
		return nil
	},
}

var contentEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configured content file in $EDITOR",
	Long: `Open the configured content file in $EDITOR.

The file is edited as a copy. Changes are written back only if the result is
valid step content; the diff is printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil || cfg.Content == "" {
			return fmt.Errorf("no content file configured\n\nRun 'onboardr init' to create one")
		}
		return editContent(cmd.OutOrStdout(), cfg.Content, runEditor)
	},
}

func init() {
	contentShowCmd.Flags().BoolVar(&contentFlags.plain, "plain", false, "Print without syntax highlighting")
	contentCmd.AddCommand(contentShowCmd)
	contentCmd.AddCommand(contentEditCmd)
}

// contentSource returns the configured content file, or the built-in content
// when none is configured.
func contentSource() ([]byte, string, error) {
	if cfg == nil || cfg.Content == "" {
		return content.DefaultYAML(), "default.yml", nil
	}
	data, err := os.ReadFile(cfg.Content)
	if err != nil {
		return nil, "", fmt.Errorf("reading content file: %w", err)
	}
	return data, cfg.Content, nil
}

// highlightYAML applies syntax highlighting to a YAML document and returns
// a string with ANSI color codes for terminal display.
func highlightYAML(source, fileName string) string {
	lexer := lexers.Match(fileName)
	if lexer == nil {
		lexer = lexers.Get("yaml")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Get("terminal256")
	}
	if formatter == nil {
		return source
	}

	baseStyle := styles.Get("catppuccin-mocha")
	if baseStyle == nil {
		baseStyle = styles.Fallback
	}

	// Match token backgrounds to the terminal theme base
	bgColour := chroma.MustParseColour(theme.Current().BgBase)
	style, err := baseStyle.Builder().Transform(func(entry chroma.StyleEntry) chroma.StyleEntry {
		entry.Background = bgColour
		return entry
	}).Build()
	if err != nil {
		style = baseStyle
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return trimToSource(strings.TrimRight(buf.String(), "\n"), source)
}

// trimToSource cuts each highlighted line back to the width of its source
// line. The YAML lexer carries indentation into block scalar tokens, which
// would otherwise show up as trailing spaces inside the block.
func trimToSource(highlighted, source string) string {
	out := strings.Split(highlighted, "\n")
	src := strings.Split(strings.TrimRight(source, "\n"), "\n")
	if len(out) != len(src) {
		return highlighted
	}
	for i, line := range out {
		width := ansi.StringWidth(src[i])
		if ansi.StringWidth(line) > width {
			out[i] = ansi.Truncate(line, width, "") + "\x1b[0m"
		}
	}
	return strings.Join(out, "\n")
}

// editFunc opens path for editing and returns once the user is done.
type editFunc func(path string) error

// runEditor opens path in the user's editor attached to the terminal.
func runEditor(path string) error {
	c, err := editor.Command("onboardr", path)
	if err != nil {
		return fmt.Errorf("preparing editor: %w", err)
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// editContent edits a temporary copy of path and writes it back if it still
// parses as valid content.
func editContent(out io.Writer, path string, edit editFunc) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading content file: %w", err)
	}

	tmpfile, err := os.CreateTemp("", "onboardr-steps-*.yml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write(original); err != nil {
		_ = tmpfile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	_ = tmpfile.Close()

	if err := edit(tmpfile.Name()); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	edited, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		return fmt.Errorf("reading edited content: %w", err)
	}
	if bytes.Equal(original, edited) {
		fmt.Fprintln(out, "No changes.")
		return nil
	}
	if _, err := content.Parse(edited); err != nil {
		return fmt.Errorf("edited content rejected, %s left unchanged: %w", path, err)
	}

	logger.Info("content file %s updated", path)
	return replaceFile(out, path, edited)
}
