package onboarding

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Continue key.Binding
	Forward  key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h", "esc"),
			key.WithHelp("←", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑↓", "choose"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		Select: key.NewBinding(
			key.WithKeys("space", " "),
			key.WithHelp("space", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
