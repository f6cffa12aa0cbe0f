package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle  key.Binding
	Start   key.Binding
	Back    key.Binding
	Forward key.Binding
	Restart key.Binding
	Quit    key.Binding
	Erase   key.Binding
	Resume  key.Binding
	RowUp   key.Binding
	RowDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "play/pause")),
		Start:   key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "play/pause when idle")),
		Back:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "rewind")),
		Forward: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "forward")),
		Restart: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		Erase:   key.NewBinding(key.WithKeys("backspace", "delete")),
		Resume:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "resume")),
		RowUp:   key.NewBinding(key.WithKeys("up", "k")),
		RowDown: key.NewBinding(key.WithKeys("down", "j")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Start, k.Back, k.Forward, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
