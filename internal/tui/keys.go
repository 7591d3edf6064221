package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit key.Binding
	Next key.Binding
	Lock key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Next: key.NewBinding(key.WithKeys(" ", "right", "n"), key.WithHelp("space", "next symbol")),
	Lock: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lock symbol")),
}
