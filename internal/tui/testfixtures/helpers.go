// Package testfixtures provides shared setup and helpers for TUI tests.
package testfixtures

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
)

// Initialize test environment
func init() {
	// Set Ascii profile to disable color output for consistent assertions across CI/platforms
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// WindowSize returns a resize message for the canonical terminal size.
func WindowSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: TestTermWidth, Height: TestTermHeight}
}

var namedKeys = map[string]rune{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"space":     tea.KeySpace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
}

// Key builds a key press for a keystroke name such as "enter", "ctrl+c",
// "space" or a single printable character.
func Key(name string) tea.KeyPressMsg {
	if strings.HasPrefix(name, "ctrl+") {
		r := []rune(strings.TrimPrefix(name, "ctrl+"))
		return tea.KeyPressMsg{Code: r[0], Mod: tea.ModCtrl}
	}
	if code, ok := namedKeys[name]; ok {
		if code == tea.KeySpace {
			return tea.KeyPressMsg{Code: code, Text: " "}
		}
		return tea.KeyPressMsg{Code: code}
	}
	r := []rune(name)
	return tea.KeyPressMsg{Code: r[0], Text: name}
}

// Plain strips ANSI sequences and trailing spaces from each line.
func Plain(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// Contains checks if a string contains a substring.
// This is a simple helper to make test assertions more readable.
func Contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
