package system

import (
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger for CLI output.
// It prints to stderr with timestamps enabled for better UX.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "deckctl",
})

// SetLevel sets the logger level by name (debug, info, warn, error).
// Unknown names leave the level unchanged and are reported as a warning.
func SetLevel(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	lvl, err := clog.ParseLevel(name)
	if err != nil {
		Logger.Warn("unknown log level", "level", name)
		return
	}
	Logger.SetLevel(lvl)
}

// SetOutput redirects the logger, e.g. away from the terminal while a
// full-screen program owns it.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// OpenLogFile redirects the logger to path and returns a function restoring
// stderr. An empty path discards log output instead.
func OpenLogFile(path string) (restore func(), err error) {
	if strings.TrimSpace(path) == "" {
		Logger.SetOutput(io.Discard)
		return func() { Logger.SetOutput(os.Stderr) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return func() {}, err
	}
	Logger.SetOutput(f)
	return func() {
		Logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
