package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	cfg "deckctl/internal/config"
)

// values holds the form's string-bound fields.
type values struct {
	Theme            string
	LogLevel         string
	TouchSensitivity string
	TransitionDelay  string
	FocusSettleDelay string
	FrameWindow      string
	BlankSrc         string
	Addr             string
}

func fromConfig(c *cfg.Config) values {
	return values{
		Theme:            c.Theme,
		LogLevel:         c.LogLevel,
		TouchSensitivity: strconv.FormatFloat(c.TouchSensitivity, 'f', -1, 64),
		TransitionDelay:  c.TransitionDelay.String(),
		FocusSettleDelay: c.FocusSettleDelay.String(),
		FrameWindow:      strconv.Itoa(c.FrameWindow),
		BlankSrc:         c.BlankSrc,
		Addr:             c.Addr,
	}
}

// apply parses v into a copy of base and validates the result.
func (v values) apply(base *cfg.Config) (*cfg.Config, error) {
	out := *base
	out.Theme = v.Theme
	out.LogLevel = v.LogLevel
	out.BlankSrc = strings.TrimSpace(v.BlankSrc)
	out.Addr = strings.TrimSpace(v.Addr)

	ts, err := strconv.ParseFloat(strings.TrimSpace(v.TouchSensitivity), 64)
	if err != nil {
		return nil, fmt.Errorf("touch sensitivity: %w", err)
	}
	out.TouchSensitivity = ts
	if out.TransitionDelay, err = parseDuration(v.TransitionDelay); err != nil {
		return nil, fmt.Errorf("transition delay: %w", err)
	}
	if out.FocusSettleDelay, err = parseDuration(v.FocusSettleDelay); err != nil {
		return nil, fmt.Errorf("focus settle delay: %w", err)
	}
	if out.FrameWindow, err = strconv.Atoi(strings.TrimSpace(v.FrameWindow)); err != nil {
		return nil, fmt.Errorf("frame window: %w", err)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func parseDuration(s string) (cfg.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	return cfg.Duration(d), err
}

func validateFloat(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 1 {
		return fmt.Errorf("enter a number ≥ 1")
	}
	return nil
}

func validateInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a whole number ≥ 1")
	}
	return nil
}

func validateDuration(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d < 0 {
		return fmt.Errorf("enter a duration like 300ms")
	}
	return nil
}

// Run launches an interactive form seeded from current and writes the
// edited config to path on submit.
func Run(current *cfg.Config, path string) error {
	if current == nil {
		current = cfg.Default()
	}
	v := fromConfig(current)

	// Light theme tweaks inspired by freeze/interactive.go
	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(20).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(20).Foreground(green).Bold(true)
	theme.Blurred.SelectedOption = theme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base.BorderForeground(green)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Presenter").Description("Terminal rendering and logging"),
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions("dark", "light", "notty", "auto")...).
				Value(&v.Theme),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&v.LogLevel),
			huh.NewInput().Title("Serve address").Value(&v.Addr),
		),
		huh.NewGroup(
			huh.NewNote().Title("Engine").Description("Navigation and frame timing"),
			huh.NewInput().Title("Touch sensitivity").Value(&v.TouchSensitivity).Validate(validateFloat),
			huh.NewInput().Title("Transition delay").Value(&v.TransitionDelay).Validate(validateDuration),
			huh.NewInput().Title("Focus settle delay").Value(&v.FocusSettleDelay).Validate(validateDuration),
			huh.NewInput().Title("Frame window").Value(&v.FrameWindow).Validate(validateInt),
			huh.NewInput().Title("Blank frame source").Value(&v.BlankSrc),
		),
	).WithTheme(theme).WithWidth(60)

	if err := form.Run(); err != nil {
		return err // form canceled or failed
	}

	next, err := v.apply(current)
	if err != nil {
		return err
	}
	if err := next.Save(path); err != nil {
		return err
	}
	fmt.Printf("\n✓ saved %s\n\n", path)
	return nil
}
