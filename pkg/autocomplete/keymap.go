package autocomplete

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the key bindings the widget intercepts. Every other key goes to
// the text input and re-runs filtering.
type KeyMap struct {
	Accept key.Binding
	Cancel key.Binding
	Up     key.Binding
	Down   key.Binding
}

// DefaultKeyMap is the default set of key bindings for the menu.
var DefaultKeyMap = KeyMap{
	Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close menu")),
	Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
	Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Accept, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
