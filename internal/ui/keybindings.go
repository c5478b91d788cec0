package ui

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap lists the bindings of the card list.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Size   key.Binding
	Add    key.Binding
	Drop   key.Binding
	Quit   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the vim-style defaults.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Size:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle size")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add label")),
		Drop:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drop last label")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit: key.NewBinding(key.WithKeys("enter")),
		Cancel: key.NewBinding(key.WithKeys("esc")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Size, k.Add, k.Drop, k.Quit}
}

func helpLine(k KeyMap) string {
	out := ""
	for i, b := range k.ShortHelp() {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
