package onboarding

import (
	"strings"

	"charm.land/glamour/v2"
	"github.com/charmbracelet/x/ansi"
)

// renderMarkdown renders a step body with glamour.
// Falls back to plain word wrapping if rendering fails.
func renderMarkdown(body string, width int) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return ansi.Wordwrap(body, width, "")
	}

	rendered, err := r.Render(body)
	if err != nil {
		return ansi.Wordwrap(body, width, "")
	}

	// Glamour pads with blank lines above and below
	return strings.Trim(rendered, "\n")
}
