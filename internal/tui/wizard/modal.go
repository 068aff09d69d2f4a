package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/onboardr/internal/tui/theme"
)

const (
	minModalWidth = 40
	maxModalWidth = 80
)

// ModalWidth returns the modal width for a terminal of the given width.
// Leaves margins for visual spacing and caps the width for readability.
func ModalWidth(termWidth int) int {
	w := termWidth - 10
	if w < minModalWidth {
		w = minModalWidth
	}
	if w > maxModalWidth {
		w = maxModalWidth
	}
	return w
}

// ContentWidth is the usable width inside a modal of width modalWidth
// (border plus horizontal padding).
func ContentWidth(modalWidth int) int {
	return modalWidth - 6
}

// RenderModal wraps sections in the modal container and centers it on a
// termWidth x termHeight screen. An empty title is omitted.
func RenderModal(title string, sections []string, termWidth, termHeight int) string {
	s := theme.Current().S()
	width := ModalWidth(termWidth)

	var parts []string
	if title != "" {
		parts = append(parts, s.ModalTitle.Width(ContentWidth(width)).Align(lipgloss.Center).Render(title), "")
	}
	parts = append(parts, sections...)

	modal := s.ModalContainer.Width(width).Render(strings.Join(parts, "\n"))
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, modal)
}
