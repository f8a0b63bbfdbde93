package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"deckctl/internal/htmldeck"
)

// Run presents doc in the terminal until the user quits and returns the
// location fragment of the last slide shown.
func Run(doc *htmldeck.Document, opts Options) (string, error) {
	// Initialize global bubblezone manager for mouse-aware zones.
	zone.NewGlobal()
	final, err := tea.NewProgram(newModel(doc, opts), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	m, ok := final.(model)
	if ok {
		m.closeWatch()
	}
	if err != nil {
		return "", err
	}
	if ok {
		return m.Fragment(), nil
	}
	return opts.Hash, nil
}
