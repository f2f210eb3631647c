package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Reset  key.Binding
	Next   key.Binding
	Prev   key.Binding
	Random key.Binding
	Quit   key.Binding
}

func newKeyMap(textMenu bool) keyMap {
	k := keyMap{
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Next:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next text")),
		Prev:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev text")),
		Random: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "random text")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
	k.Next.SetEnabled(textMenu)
	k.Prev.SetEnabled(textMenu)
	k.Random.SetEnabled(textMenu)
	return k
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Prev, k.Next, k.Random, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
