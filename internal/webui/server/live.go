package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"deckctl/internal/system"
)

// wsUpgrader upgrades HTTP connections to WebSocket.
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The server binds to localhost by default.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// reloadDebounce coalesces editor save bursts into one reload.
const reloadDebounce = 120 * time.Millisecond

type reloadMessage struct {
	Action string `json:"action"`
	Path   string `json:"path"`
}

// hub tracks live-reload connections.
type hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func newHub() *hub { return &hub{conns: map[*websocket.Conn]bool{}} }

func (h *hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		system.Logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	h.mu.Lock()
	h.conns[conn] = true
	n := len(h.conns)
	h.mu.Unlock()
	system.Logger.Debug("live-reload client connected", "clients", n)

	// Drain reads so close frames are handled; clients never send data.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// broadcast sends a reload message to every client and drops the ones that
// fail.
func (h *hub) broadcast(path string) {
	data, err := json.Marshal(reloadMessage{Action: "reload", Path: path})
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			system.Logger.Debug("drop live-reload client", "err", err)
			delete(h.conns, conn)
			_ = conn.Close()
		}
	}
}

func (h *hub) clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

// debouncer runs fn once a burst of triggers has been quiet for delay.
// After stop returns, fn is neither running nor going to run.
type debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// fire holds the lock while fn runs so stop waits for it.
func (d *debouncer) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.fn()
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

// watch broadcasts a reload whenever the deck file is written. The parent
// directory is watched so editors that replace the file are seen too. The
// returned stop cancels any pending reload before closing the watcher and
// may be called more than once.
func (h *hub) watch(path string) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	name := filepath.Base(path)
	reload := newDebouncer(reloadDebounce, func() {
		system.Logger.Info("deck changed", "path", path)
		h.broadcast(path)
	})
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != name || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				reload.trigger()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				system.Logger.Warn("watch error", "err", err)
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			reload.stop()
			_ = w.Close()
		})
	}, nil
}
