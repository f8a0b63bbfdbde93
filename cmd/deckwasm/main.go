//go:build js && wasm

// Command deckwasm runs the slide engine in the browser. Build with
//
//	GOOS=js GOARCH=wasm go build -o deck.wasm ./cmd/deckwasm
//
// and serve it with `deckctl serve --wasm-dir`.
package main

import (
	"errors"

	"deckctl/internal/deck"
	"deckctl/internal/domhost"
	"deckctl/internal/system"
)

func main() {
	if _, err := domhost.Start(deck.Options{}); err != nil {
		if errors.Is(err, deck.ErrNoSlides) {
			system.Logger.Warn("nothing to present", "err", err)
		} else {
			system.Logger.Error("deck failed to start", "err", err)
		}
		return
	}
	// keep callbacks alive for the life of the page
	select {}
}
