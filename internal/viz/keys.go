package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause    key.Binding
	Rest     key.Binding
	Grid     key.Binding
	Tangents key.Binding
	Theme    key.Binding
	Stiffer  key.Binding
	Softer   key.Binding
	MoreDamp key.Binding
	LessDamp key.Binding
	Snapshot key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Pause:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
	Rest:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rest")),
	Grid:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid")),
	Tangents: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tangents")),
	Theme:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "theme")),
	Stiffer:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "stiffer")),
	Softer:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "softer")),
	MoreDamp: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "more damping")),
	LessDamp: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "less damping")),
	Snapshot: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "svg snapshot")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Rest, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Rest, k.Grid, k.Tangents, k.Theme, k.Snapshot},
		{k.Stiffer, k.Softer, k.MoreDamp, k.LessDamp, k.Help, k.Quit},
	}
}
