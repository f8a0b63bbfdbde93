package ui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	fsnotify "github.com/fsnotify/fsnotify"

	"deckctl/internal/htmldeck"
	"deckctl/internal/system"
)

// ---------- fsnotify integration ----------

// startWatchCmd watches the directory holding path; editors often replace
// files instead of writing in place, so watching the file alone misses
// saves. The watcher runs until the stop func carried by watchStartedMsg is
// called, which also closes the change channel.
func startWatchCmd(path string) tea.Cmd {
	return func() tea.Msg {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			system.Logger.Warn("file watching unavailable", "err", err)
			return nil
		}
		if err := w.Add(filepath.Dir(path)); err != nil {
			system.Logger.Warn("cannot watch deck", "path", path, "err", err)
			_ = w.Close()
			return nil
		}
		name := filepath.Base(path)
		ch := make(chan struct{}, 1)
		go func() {
			defer close(ch)
			for {
				select {
				case ev, ok := <-w.Events:
					if !ok {
						return
					}
					if filepath.Base(ev.Name) != name || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
						continue
					}
					select {
					case ch <- struct{}{}:
					default:
					}
				case err, ok := <-w.Errors:
					if !ok {
						return
					}
					system.Logger.Debug("watch error", "err", err)
				}
			}
		}()
		return watchStartedMsg{ch: ch, stop: func() { _ = w.Close() }}
	}
}

func watchSubscribeCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		if _, ok := <-ch; !ok {
			return nil
		}
		// let the writer finish before re-reading
		time.Sleep(120 * time.Millisecond)
		return fileChangedMsg{}
	}
}

func reloadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return noticeMsg("nothing to reload")
		}
		doc, err := htmldeck.Load(path)
		return reloadMsg{doc: doc, err: err}
	}
}
