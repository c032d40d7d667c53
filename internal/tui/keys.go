package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding the app responds to. Plain characters are
// left to the focused input.
type keyMap struct {
	Next         key.Binding
	Prev         key.Binding
	Submit       key.Binding
	ToggleMode   key.Binding
	Reset        key.Binding
	ClearHistory key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:         key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:         key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "simulate")),
		ToggleMode:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "mode")),
		Reset:        key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset inputs")),
		ClearHistory: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear history")),
		Help:         key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:         key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// shortHelp is the subset shown in the status bar.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.ToggleMode, k.Reset, k.Help, k.Quit}
}

func (k keyMap) fullHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.ToggleMode, k.Reset, k.ClearHistory, k.Help, k.Quit}
}
