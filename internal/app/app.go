package app

import (
	"fmt"
	"strings"

	"deckctl/internal/config"
	"deckctl/internal/deck"
	"deckctl/internal/htmldeck"
	"deckctl/internal/system"
	"deckctl/internal/ui"
)

// SplitTarget splits "deck.html#3" into the file path and its fragment.
func SplitTarget(target string) (path, hash string) {
	if i := strings.LastIndex(target, "#"); i >= 0 {
		return target[:i], target[i:]
	}
	return target, ""
}

// PresentOptions configures Present.
type PresentOptions struct {
	Config  *config.Config
	Watch   bool
	LogFile string
}

// Present runs the terminal presenter for target and prints the final
// position ("deck.html#n") so it can be resumed.
func Present(target string, opts PresentOptions) error {
	path, hash := SplitTarget(target)
	doc, err := htmldeck.Load(path)
	if err != nil {
		return err
	}
	if len(doc.Slides()) == 0 {
		return fmt.Errorf("%s: %w", path, deck.ErrNoSlides)
	}

	// The alt screen owns the terminal; keep log lines out of it.
	restore, err := system.OpenLogFile(opts.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	frag, runErr := ui.Run(doc, ui.Options{Path: path, Hash: hash, Config: opts.Config, Watch: opts.Watch})
	restore()
	if runErr != nil {
		return runErr
	}
	fmt.Println(path + frag)
	return nil
}
