package components

import (
	"strconv"
	"time"

	"github.com/a-h/templ"

	"folio/internal/views/theme"
)

// NavLink is an in-page anchor shown in the navbar and the mobile menu.
type NavLink struct {
	Label string
	Href  string
}

// NavLinks lists the sections reachable from the navigation.
var NavLinks = []NavLink{
	{Label: "About", Href: "#about"},
	{Label: "Skills", Href: "#skills"},
	{Label: "Projects", Href: "#projects"},
	{Label: "Timeline", Href: "#timeline"},
	{Label: "Contact", Href: "#contact"},
}

// NavbarData carries what the navbar renders.
type NavbarData struct {
	Brand   string
	Palette theme.Palette
	Menu    MenuState
	Static  bool
}

func toggleAttrs(static bool) templ.Attributes {
	if static {
		return templ.Attributes{"data-appearance-local": true}
	}
	return templ.Attributes{
		"hx-post": "/appearance/toggle",
		"hx-swap": "none",
	}
}

// LoaderTrigger is the htmx trigger that fetches the sections once the gate
// opens.
func LoaderTrigger(remaining time.Duration) string {
	return "load delay:" + LoaderDelay(remaining) + "ms"
}

// LoaderDelay is the delay in whole milliseconds, clamped at zero.
func LoaderDelay(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return strconv.FormatInt(d.Milliseconds(), 10)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
