package server

import (
	"context"
	"io/fs"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"deckctl/internal/system"
	webembed "deckctl/internal/webui/embed"
)

// Server serves one deck to browsers.
type Server struct {
	Addr string
	// DeckPath is the HTML or markdown deck served at "/".
	DeckPath string
	// WasmDir holds wasm_exec.js and deck.wasm. When empty the page is
	// served without the engine.
	WasmDir string
	// Watch pushes reload notifications over /api/ws when the deck changes.
	Watch bool

	hub *hub
}

// Handler builds the gin engine without starting any watcher.
func (s *Server) Handler() http.Handler {
	if s.hub == nil {
		s.hub = newHub()
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	mountAPIGin(r, s)
	mountStaticGin(r, s)
	r.GET("/", gin.WrapF(s.deckHandler))
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Status(http.StatusNotFound)
			return
		}
		c.String(http.StatusNotFound, "not found")
	})
	return r
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	h := s.Handler()
	stopWatch := func() {}
	if s.Watch {
		stop, err := s.hub.watch(s.DeckPath)
		if err != nil {
			return err
		}
		stopWatch = stop
		defer stop()
	}
	srv := &http.Server{Addr: s.Addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		stopWatch()
		s.hub.closeAll()
		_ = srv.Shutdown(context.Background())
	}()
	system.Logger.Info("deck server listening", "addr", s.Addr, "deck", s.DeckPath)
	return srv.ListenAndServe()
}

// OpenBrowser tries to open a URL in the system browser.
func OpenBrowser(url string) error {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}
	return exec.Command(cmd, args...).Start()
}

func mountAPIGin(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	api.GET("/health", gin.WrapF(healthHandler))
	api.GET("/version", gin.WrapF(versionHandler))
	api.GET("/outline", gin.WrapF(s.outlineHandler))
	api.GET("/ws", gin.WrapF(s.hub.serveWS))
}

// mountStaticGin serves the embedded stylesheet and boot script under
// /_deck/ and the wasm build under /assets/.
func mountStaticGin(r *gin.Engine, s *Server) {
	if dist, err := fs.Sub(webembed.DistFS, "dist"); err == nil {
		r.StaticFS("/_deck", http.FS(dist))
	} else {
		system.Logger.Warn("embedded assets missing", "err", err)
	}
	if s.WasmDir != "" {
		r.Static("/assets", s.WasmDir)
	}
}
