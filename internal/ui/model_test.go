package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"deckctl/internal/config"
	"deckctl/internal/deck"
	"deckctl/internal/htmldeck"
)

const testDeck = `<html><body><section class="slides">
<article><h1>Welcome</h1><ul class="build"><li>alpha</li><li>beta</li></ul></article>
<article><h2>Architecture overview</h2><p>boxes</p></article>
<article><h2>Roadmap</h2><iframe src="https://r.example/"></iframe></article>
</section></body></html>`

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, hash string) model {
	t.Helper()
	doc, err := htmldeck.Parse(strings.NewReader(testDeck))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := config.Default()
	cfg.Theme = "notty"
	return newModel(doc, Options{Hash: hash, Config: cfg})
}

func send(m model, msg tea.Msg) model {
	next, _ := m.Update(msg)
	return next.(model)
}

func TestModel_KeysDriveDeck(t *testing.T) {
	m := newTestModel(t, "")
	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.deck.Current() != 0 || m.deck.Builds().Pending(0) != 1 {
		t.Fatalf("first right should reveal a build item")
	}
	if !strings.Contains(m.vp.View(), "alpha") || strings.Contains(m.vp.View(), "beta") {
		t.Fatalf("viewport not refreshed after build:\n%s", m.vp.View())
	}
	m = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.deck.Current() != 1 || m.Fragment() != "#2" {
		t.Fatalf("current %d fragment %q", m.deck.Current(), m.Fragment())
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.deck.Current() != 0 {
		t.Fatalf("left did not go back")
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEnd})
	if m.deck.Current() != 2 || m.positionLabel() != "3/3" {
		t.Fatalf("end key: %s", m.positionLabel())
	}
}

func TestModel_TaskMessagesRunDeferredWork(t *testing.T) {
	m := newTestModel(t, "#3")
	if !m.deck.Frames().Loaded(2) {
		t.Fatalf("frame of the current slide not loaded")
	}
	ran := false
	m = send(m, taskMsg{run: func() { ran = true }})
	if !ran {
		t.Fatalf("task message not executed")
	}
}

func TestModel_PaletteGoto(t *testing.T) {
	m := newTestModel(t, "")
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if !m.paletteOpen || len(m.matches) != 3 {
		t.Fatalf("palette open=%v matches=%d", m.paletteOpen, len(m.matches))
	}
	for _, r := range "road" {
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if len(m.matches) == 0 || m.matches[0].Label != "Roadmap" {
		t.Fatalf("matches = %+v", m.matches)
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.paletteOpen || m.deck.Current() != 2 {
		t.Fatalf("enter did not jump: open=%v current=%d", m.paletteOpen, m.deck.Current())
	}
}

func TestRefreshMatches_Number(t *testing.T) {
	m := newTestModel(t, "")
	m.ti.SetValue("2")
	m.refreshMatches()
	if len(m.matches) == 0 || m.matches[0].Ordinal != 1 {
		t.Fatalf("numeric match = %+v", m.matches)
	}
	m.ti.SetValue("zzzz")
	m.refreshMatches()
	if len(m.matches) != 0 || m.sel != 0 {
		t.Fatalf("expected no matches, got %+v", m.matches)
	}
}

func TestModel_ViewShowsChrome(t *testing.T) {
	m := newTestModel(t, "#2")
	m = send(m, tea.WindowSizeMsg{Width: 90, Height: 30})
	v := m.View()
	for _, want := range []string{"Architecture overview", "2/3", "#2", "prev", "next"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, "")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !next.(model).quitting || cmd == nil {
		t.Fatalf("q did not quit")
	}
	if next.(model).View() != "" {
		t.Fatalf("view after quit should be empty")
	}
}

func TestTeaScheduler_Drain(t *testing.T) {
	s := &teaScheduler{}
	if s.drain() != nil {
		t.Fatalf("empty drain should be nil")
	}
	s.AfterFunc(time.Millisecond, func() {})
	s.AfterFunc(time.Millisecond, func() {})
	if s.drain() == nil || len(s.pending) != 0 {
		t.Fatalf("drain did not collect ticks")
	}
	var _ deck.Scheduler = s
}

func TestModel_QuitStopsWatcher(t *testing.T) {
	m := newTestModel(t, "")
	stopped := 0
	m = send(m, watchStartedMsg{ch: make(chan struct{}), stop: func() { stopped++ }})
	if m.stopWatch == nil {
		t.Fatalf("watcher not kept on the model")
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if stopped != 1 {
		t.Fatalf("watcher stopped %d times on quit, want 1", stopped)
	}
	final := next.(model)
	final.closeWatch()
	if stopped != 1 {
		t.Fatalf("watcher stopped again after quit")
	}
}

func TestStartWatch_StopClosesChannel(t *testing.T) {
	p := filepath.Join(t.TempDir(), "talk.md")
	if err := os.WriteFile(p, []byte("# A\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg, ok := startWatchCmd(p)().(watchStartedMsg)
	if !ok {
		t.Fatalf("watcher did not start")
	}
	msg.stop()
	select {
	case _, open := <-msg.ch:
		if open {
			// a pending change notification may be delivered once
			if _, open = <-msg.ch; open {
				t.Fatalf("change channel still open after stop")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watch goroutine did not exit after stop")
	}
	if got := watchSubscribeCmd(msg.ch)(); got != nil {
		t.Fatalf("subscribe on a stopped watcher = %#v, want nil", got)
	}
}
