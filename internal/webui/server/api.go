package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"deckctl/internal/htmldeck"
	"deckctl/internal/system"
	appver "deckctl/internal/version"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func versionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": appver.AppVersion})
}

func (s *Server) outlineHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := htmldeck.Load(s.DeckPath)
	if err != nil {
		writeJSON(w, loadStatus(err), errJSON(err))
		return
	}
	writeJSON(w, http.StatusOK, htmldeck.Check(doc))
}

// deckHandler serves the deck with the default stylesheet, the engine
// bootstrap and the live-reload client injected as configured. The file is
// re-read on every request so edits show up on reload.
func (s *Server) deckHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := htmldeck.Load(s.DeckPath)
	if err != nil {
		http.Error(w, err.Error(), loadStatus(err))
		return
	}
	if err := s.inject(doc); err != nil {
		system.Logger.Error("inject deck assets", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := doc.Render(w); err != nil {
		system.Logger.Warn("render deck", "err", err)
	}
}

func (s *Server) inject(doc *htmldeck.Document) error {
	if !doc.HasStylesheet() {
		if err := doc.AppendHead(`<link rel="stylesheet" href="/_deck/deck.css">`); err != nil {
			return err
		}
	}
	if s.WasmDir == "" && !s.Watch {
		return nil
	}
	boot := fmt.Sprintf(`<script>window.deckctl = {wasm: %q, live: %t};</script>`, s.wasmURL(), s.Watch)
	if s.WasmDir != "" {
		boot += `<script src="/assets/wasm_exec.js"></script>`
	}
	boot += `<script src="/_deck/boot.js"></script>`
	return doc.AppendBody(boot)
}

func (s *Server) wasmURL() string {
	if s.WasmDir == "" {
		return ""
	}
	return "/assets/deck.wasm"
}

func loadStatus(err error) int {
	if errors.Is(err, os.ErrNotExist) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err, ok := v.(error); ok {
		_ = json.NewEncoder(w).Encode(map[string]any{"error": err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func errJSON(err error) map[string]string { return map[string]string{"error": err.Error()} }
