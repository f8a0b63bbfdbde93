package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"deckctl/internal/deck"
	tu "deckctl/internal/testutil"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	tmp := t.TempDir()
	defer tu.WithEnv(t, "XDG_CONFIG_HOME", tmp)()

	c, err := LoadDefault()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *c != *Default() {
		t.Fatalf("expected defaults, got %+v", c)
	}
	p, err := Path()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if p != filepath.Join(tmp, "deckctl", "config.yaml") {
		t.Fatalf("path = %q", p)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := Default()
	in.FrameWindow = 3
	in.TransitionDelay = Duration(450 * time.Millisecond)
	in.Theme = "light"
	if err := in.Save(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "transition_delay: 450ms") {
		t.Fatalf("duration not written as text:\n%s", b)
	}
	out, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *out != *in {
		t.Fatalf("round trip: got %+v want %+v", out, in)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := tu.WriteFile(t, "config.yaml", "frame_window: 4\ntheme: light\n")
	defer tu.WithEnv(t, "DECKCTL_FRAME_WINDOW", "1")()
	defer tu.WithEnv(t, "DECKCTL_FOCUS_SETTLE_DELAY", "250ms")()

	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.FrameWindow != 1 {
		t.Fatalf("env did not override file: frame_window=%d", c.FrameWindow)
	}
	if c.Theme != "light" {
		t.Fatalf("file value lost: theme=%q", c.Theme)
	}
	if time.Duration(c.FocusSettleDelay) != 250*time.Millisecond {
		t.Fatalf("focus_settle_delay = %v", c.FocusSettleDelay)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"window":   "frame_window: 0\n",
		"theme":    "theme: neon\n",
		"touch":    "touch_sensitivity: 0\n",
		"duration": "transition_delay: soon\n",
	}
	for name, body := range cases {
		p := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(p); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestEngineOptions(t *testing.T) {
	c := Default()
	c.FrameWindow = 1
	o := c.EngineOptions()
	if o.FrameWindow != 1 || o.TransitionDelay != deck.DefaultTransitionDelay ||
		o.BlankSrc != deck.DefaultBlankSrc || o.TouchSensitivity != deck.DefaultTouchSensitivity {
		t.Fatalf("options = %+v", o)
	}
}

func TestSchema(t *testing.T) {
	b, err := MarshalSchema(Schema())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc struct {
		Title      string                     `json:"title"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Title != "deckctl config" {
		t.Fatalf("title = %q", doc.Title)
	}
	for _, k := range []string{"touch_sensitivity", "transition_delay", "frame_window", "theme", "addr"} {
		if _, ok := doc.Properties[k]; !ok {
			t.Fatalf("schema missing %q: %s", k, b)
		}
	}
	if !strings.Contains(string(doc.Properties["transition_delay"]), `"string"`) {
		t.Fatalf("duration should be a string: %s", doc.Properties["transition_delay"])
	}
}
