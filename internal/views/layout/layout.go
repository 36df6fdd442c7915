package layout

import "strconv"

// Meta describes the document around a page body.
type Meta struct {
	Title string
	// Refresh, when positive, reloads the document after that many seconds
	// for visitors without JavaScript.
	Refresh int
}

// DefaultTitle is used when the content names nobody.
const DefaultTitle = "Portfolio"

// TitleFor builds the document title from the hero name and title.
func TitleFor(name, role string) string {
	switch {
	case name == "":
		return DefaultTitle
	case role == "":
		return name
	default:
		return name + " - " + role
	}
}

func refreshContent(seconds int) string {
	return strconv.Itoa(seconds)
}
