package components

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// MenuState is the open/closed state of the mobile navigation menu.
type MenuState string

const (
	MenuClosed MenuState = "closed"
	MenuOpen   MenuState = "open"
)

// ParseMenuState reads a state from a URL segment.
func ParseMenuState(s string) (MenuState, bool) {
	switch MenuState(strings.ToLower(strings.TrimSpace(s))) {
	case MenuOpen:
		return MenuOpen, true
	case MenuClosed:
		return MenuClosed, true
	}
	return "", false
}

func (m MenuState) Toggle() MenuState {
	if m == MenuOpen {
		return MenuClosed
	}
	return MenuOpen
}

func (m MenuState) String() string { return string(m) }

// MenuFragmentPath is where the menu fragment for state is served.
func MenuFragmentPath(state MenuState) string {
	return "/fragments/menu/" + state.String() + ".html"
}

// Expansion is the collapsed/expanded state of an expandable description.
type Expansion string

const (
	Collapsed Expansion = "collapsed"
	Expanded  Expansion = "expanded"
)

func ParseExpansion(s string) (Expansion, bool) {
	switch Expansion(strings.ToLower(strings.TrimSpace(s))) {
	case Collapsed:
		return Collapsed, true
	case Expanded:
		return Expanded, true
	}
	return "", false
}

func (e Expansion) Toggle() Expansion {
	if e == Expanded {
		return Collapsed
	}
	return Expanded
}

func (e Expansion) String() string { return string(e) }

// DefaultDescriptionLimit is the number of characters shown before a
// description is cut.
const DefaultDescriptionLimit = 150

// Ellipsis is appended to a cut description.
const Ellipsis = "..."

// Truncate cuts text after limit runes. The cut ignores word boundaries, so
// it may split a word. The boolean reports whether anything was removed.
func Truncate(text string, limit int) (string, bool) {
	if limit <= 0 {
		limit = DefaultDescriptionLimit
	}
	if utf8.RuneCountInString(text) <= limit {
		return text, false
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i], true
		}
		n++
	}
	return text, false
}

// Description is an expandable block of text keyed by the project it belongs to.
type Description struct {
	ID    string
	Text  string
	Limit int
	State Expansion
}

// Truncated reports whether the text is long enough to need a toggle.
func (d Description) Truncated() bool {
	_, cut := Truncate(d.Text, d.Limit)
	return cut
}

// Display returns the visible text for the current state, ellipsis included.
func (d Description) Display() string {
	if d.State == Expanded {
		return d.Text
	}
	text, cut := Truncate(d.Text, d.Limit)
	if cut {
		return text + Ellipsis
	}
	return text
}

// ToggleLabel is the caption of the read more / show less control.
func (d Description) ToggleLabel() string {
	if d.State == Expanded {
		return "Show Less"
	}
	return "Read More"
}

// DescriptionFragmentPath is where the description fragment for a project and
// state is served.
func DescriptionFragmentPath(id string, state Expansion) string {
	return "/fragments/projects/" + url.PathEscape(id) + "/description/" + state.String() + ".html"
}

func descriptionElementID(id string) string {
	return "description-" + id
}
