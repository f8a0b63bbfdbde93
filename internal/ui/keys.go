package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the presenter bindings shown in the help view. Navigation
// keys themselves are resolved by the deck dispatcher.
type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	First  key.Binding
	Last   key.Binding
	Goto   key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("right", "enter", " ", "pgdown", "down"), key.WithHelp("→/space", "next")),
		Prev:   key.NewBinding(key.WithKeys("left", "backspace", "pgup", "up"), key.WithHelp("←/⌫", "prev")),
		First:  key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		Last:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Goto:   key.NewBinding(key.WithKeys("g", "ctrl+p"), key.WithHelp("g", "go to")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Goto, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last},
		{k.Goto, k.Reload, k.Help, k.Quit},
	}
}
