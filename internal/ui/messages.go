package ui

import "deckctl/internal/htmldeck"

// Bubble Tea messages

// taskMsg carries a deferred engine task back onto the event loop.
type taskMsg struct{ run func() }

// generic notifications
type noticeMsg string

// deck file changed on disk
type fileChangedMsg struct{}

// reloaded deck document (or the error that prevented it)
type reloadMsg struct {
	doc *htmldeck.Document
	err error
}

// watcher started; ch fires on every change, stop closes the watcher
type watchStartedMsg struct {
	ch   chan struct{}
	stop func()
}
