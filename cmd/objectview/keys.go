package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines objectview's keyboard shortcuts as key.Binding values
// rather than raw string matching, so help text and matching share one
// source of truth.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Enter    key.Binding
	Tab      key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Left:     key.NewBinding(key.WithKeys("left", "h")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Home:     key.NewBinding(key.WithKeys("home", "g")),
		End:      key.NewBinding(key.WithKeys("end", "G")),
		Enter:    key.NewBinding(key.WithKeys("enter")),
		Tab:      key.NewBinding(key.WithKeys("tab")),
		Help:     key.NewBinding(key.WithKeys("?")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}
