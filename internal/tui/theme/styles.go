package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style
	Emoji          lipgloss.Style

	OptionNormal   lipgloss.Style
	OptionCursor   lipgloss.Style
	OptionSelected lipgloss.Style

	DotActive   lipgloss.Style
	DotInactive lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style
}
