package pages

import (
	"math"
	"time"

	"folio/internal/content"
	"folio/internal/views/components"
	"folio/internal/views/layout"
	"folio/internal/views/theme"
)

// View is everything a page needs to render. Handlers and the exporter build
// one per request; nothing in it is shared.
type View struct {
	Portfolio        *content.Portfolio
	Palette          theme.Palette
	Menu             components.MenuState
	Ticker           components.Ticker
	Contact          components.ContactFormData
	DescriptionLimit int
	Year             int
	Static           bool
}

func (v View) portfolio() *content.Portfolio {
	if v.Portfolio == nil {
		return &content.Portfolio{}
	}
	return v.Portfolio
}

func (v View) meta() layout.Meta {
	hero := v.portfolio().Hero
	return layout.Meta{Title: layout.TitleFor(hero.Name, hero.Title)}
}

func (v View) navbar() components.NavbarData {
	menu := v.Menu
	if menu == "" {
		menu = components.MenuClosed
	}
	return components.NavbarData{
		Brand:   v.portfolio().Hero.Name,
		Palette: v.Palette,
		Menu:    menu,
		Static:  v.Static,
	}
}

func (v View) footer() components.FooterData {
	p := v.portfolio()
	year := v.Year
	if year == 0 {
		year = time.Now().Year()
	}
	return components.FooterData{
		Name:  p.Hero.Name,
		Email: p.Contact.Email,
		Links: p.Hero.SocialLinks.List(),
		Year:  year,
	}
}

func (v View) limit() int {
	if v.DescriptionLimit <= 0 {
		return components.DefaultDescriptionLimit
	}
	return v.DescriptionLimit
}

func loadingMeta(v View, remaining time.Duration) layout.Meta {
	meta := v.meta()
	meta.Refresh = int(math.Ceil(remaining.Seconds()))
	if meta.Refresh < 1 {
		meta.Refresh = 1
	}
	return meta
}
