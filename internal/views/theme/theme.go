package theme

import "strings"

// Mode is the visitor's appearance preference.
type Mode string

const (
	Light  Mode = "light"
	Dark   Mode = "dark"
	System Mode = "system"

	// DefaultMode applies when no preference has been recorded.
	DefaultMode = System
)

// Parse normalises s into a Mode. The boolean is false for unknown values.
func Parse(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	case System:
		return System, true
	}
	return "", false
}

// Toggle flips between light and dark. System resolves to dark because the
// explicit choice replaces the inherited one.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) String() string {
	return string(m)
}

// Option represents a selectable mode exposed to the UI.
type Option struct {
	Value Mode
	Label string
}

// Palette contains resolved styling primitives for one mode. Renderers take
// it as a parameter instead of reading the mode themselves.
type Palette struct {
	Mode             Mode
	HTMLClass        string
	BodyClass        string
	SurfaceClass     string
	SoftSurfaceClass string
	BorderClass      string
	AccentTextClass  string
	MutedTextClass   string
	SubtleTextClass  string
	ToggleLabel      string
	ToggleIcon       string
}

var catalogue = map[Mode]Palette{
	Light: {
		Mode:             Light,
		HTMLClass:        "light",
		BodyClass:        "min-h-screen bg-white text-gray-900",
		SurfaceClass:     "folio-surface",
		SoftSurfaceClass: "folio-surface-soft",
		BorderClass:      "folio-border",
		AccentTextClass:  "folio-accent",
		MutedTextClass:   "folio-muted",
		SubtleTextClass:  "folio-subtle",
		ToggleLabel:      "Switch to dark mode",
		ToggleIcon:       "moon",
	},
	Dark: {
		Mode:             Dark,
		HTMLClass:        "dark",
		BodyClass:        "min-h-screen bg-gray-950 text-gray-100",
		SurfaceClass:     "folio-surface",
		SoftSurfaceClass: "folio-surface-soft",
		BorderClass:      "folio-border",
		AccentTextClass:  "folio-accent",
		MutedTextClass:   "folio-muted",
		SubtleTextClass:  "folio-subtle",
		ToggleLabel:      "Switch to light mode",
		ToggleIcon:       "sun",
	},
	System: {
		Mode:             System,
		HTMLClass:        "system",
		BodyClass:        "min-h-screen",
		SurfaceClass:     "folio-surface",
		SoftSurfaceClass: "folio-surface-soft",
		BorderClass:      "folio-border",
		AccentTextClass:  "folio-accent",
		MutedTextClass:   "folio-muted",
		SubtleTextClass:  "folio-subtle",
		ToggleLabel:      "Switch to dark mode",
		ToggleIcon:       "moon",
	},
}

var options = []Option{
	{Value: Light, Label: "Light"},
	{Value: Dark, Label: "Dark"},
	{Value: System, Label: "System"},
}

// Resolve returns the palette for mode, falling back to the default mode.
func Resolve(mode Mode) Palette {
	if value, ok := catalogue[mode]; ok {
		return value
	}
	return catalogue[DefaultMode]
}

// Options exposes the available modes for rendering in a form control.
func Options() []Option {
	return options
}
