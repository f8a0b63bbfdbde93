package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"deckctl/internal/deck"
)

// EnvPrefix prefixes environment overrides, e.g. DECKCTL_FRAME_WINDOW.
const EnvPrefix = "DECKCTL_"

// Config holds presenter and engine settings.
type Config struct {
	TouchSensitivity float64  `yaml:"touch_sensitivity" koanf:"touch_sensitivity" json:"touch_sensitivity" jsonschema:"minimum=1" jsonschema_description:"Minimum horizontal swipe distance in device pixels."`
	TransitionDelay  Duration `yaml:"transition_delay" koanf:"transition_delay" json:"transition_delay" jsonschema_description:"Delay before frames of slides that left the window are blanked; match the slide animation."`
	FocusSettleDelay Duration `yaml:"focus_settle_delay" koanf:"focus_settle_delay" json:"focus_settle_delay" jsonschema_description:"Delay before a focused slide drops its temporary tabindex."`
	FrameWindow      int      `yaml:"frame_window" koanf:"frame_window" json:"frame_window" jsonschema:"minimum=1" jsonschema_description:"Slides within this distance of the current slide keep their frames loaded."`
	BlankSrc         string   `yaml:"blank_src" koanf:"blank_src" json:"blank_src" jsonschema_description:"Source assigned to unloaded frames."`
	Theme            string   `yaml:"theme" koanf:"theme" json:"theme" jsonschema:"enum=dark,enum=light,enum=notty,enum=auto" jsonschema_description:"Terminal rendering style."`
	LogLevel         string   `yaml:"log_level" koanf:"log_level" json:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Addr             string   `yaml:"addr" koanf:"addr" json:"addr" jsonschema_description:"Listen address for deckctl serve."`
}

// Default returns a Config with built-in defaults.
func Default() *Config {
	return &Config{
		TouchSensitivity: deck.DefaultTouchSensitivity,
		TransitionDelay:  Duration(deck.DefaultTransitionDelay),
		FocusSettleDelay: Duration(deck.DefaultFocusSettleDelay),
		FrameWindow:      deck.DefaultFrameWindow,
		BlankSrc:         deck.DefaultBlankSrc,
		Theme:            "dark",
		LogLevel:         "info",
		Addr:             "127.0.0.1:8787",
	}
}

// Load reads configuration from path, then overlays DECKCTL_* environment
// variables. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the config at Path().
func LoadDefault() (*Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), nil
	}
	return Load(p)
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validThemes = map[string]bool{"dark": true, "light": true, "notty": true, "auto": true}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.TouchSensitivity < 1 {
		return fmt.Errorf("touch_sensitivity must be at least 1, got %v", c.TouchSensitivity)
	}
	if c.TransitionDelay < 0 {
		return fmt.Errorf("transition_delay must be non-negative")
	}
	if c.FocusSettleDelay < 0 {
		return fmt.Errorf("focus_settle_delay must be non-negative")
	}
	if c.FrameWindow < 1 {
		return fmt.Errorf("frame_window must be at least 1, got %d", c.FrameWindow)
	}
	if c.Theme != "" && !validThemes[c.Theme] {
		return fmt.Errorf("invalid theme %q: must be one of dark, light, notty, auto", c.Theme)
	}
	return nil
}

// EngineOptions maps the config onto deck options.
func (c *Config) EngineOptions() deck.Options {
	return deck.Options{
		TransitionDelay:  time.Duration(c.TransitionDelay),
		FocusSettleDelay: time.Duration(c.FocusSettleDelay),
		FrameWindow:      c.FrameWindow,
		BlankSrc:         c.BlankSrc,
		TouchSensitivity: c.TouchSensitivity,
	}
}
