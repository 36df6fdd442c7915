package sections

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"folio/internal/contact"
	"folio/internal/content"
	"folio/internal/views/components"
	"folio/internal/views/theme"
)

func loadPortfolio(t *testing.T) *content.Portfolio {
	t.Helper()
	p, err := content.Load("../../content/testdata/portfolio.json")
	if err != nil {
		t.Fatalf("load portfolio: %v", err)
	}
	return p
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render section: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, out string, tokens ...string) {
	t.Helper()
	for _, token := range tokens {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
}

func TestSectionsRenderRequiredFields(t *testing.T) {
	t.Parallel()

	p := loadPortfolio(t)
	palette := theme.Resolve(theme.Light)
	ticker := components.Ticker{Labels: p.Hero.Skills}

	cases := []struct {
		name   string
		c      templ.Component
		tokens []string
	}{
		{"hero", Hero(p.Hero, palette, ticker), []string{p.Hero.Name, p.Hero.Title, p.Hero.Description, p.Hero.CTA, `href="/resume.pdf"`}},
		{"about", About(p.About, palette), []string{p.About.Title, "<strong>small</strong>", "Clean Code"}},
		{"skills", Skills(p.Skills, palette), []string{p.Skills.Title, "Languages", "TypeScript", "Kubernetes"}},
		{"education", Education(p.Education, palette), []string{p.Education.Title, "BSc Computer Science", "State University", "GPA: 3.8", "2014 - 2018"}},
		{"projects", Projects(p.Projects, palette, 150), []string{"Ledger", "Double-entry bookkeeping service.", "Relay", "Featured", "https://github.com/jrivera/ledger"}},
		{"timeline", Timeline(p.Timeline, palette), []string{p.Timeline.Title, "Senior Engineer", "Acme", "Payments platform.", "Kafka", "data-scroll-progress"}},
		{"contact", Contact(p.Contact, palette, components.ContactFormData{}), []string{"jordan@example.com", "Lisbon, Portugal", `id="contact-form"`}},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertContains(t, render(t, tt.c), tt.tokens...)
		})
	}
}

func TestHeroOmitsOptionalFragments(t *testing.T) {
	t.Parallel()

	out := render(t, Hero(content.Hero{Name: "Sam", CTA: "Download CV"}, theme.Resolve(theme.Dark), components.Ticker{}))
	assertContains(t, out, "Sam")
	for _, token := range []string{"<img", "Download CV", "folio-ticker", "folio-social"} {
		if strings.Contains(out, token) {
			t.Fatalf("expected %q to be omitted: %s", token, out)
		}
	}
}

func TestProjectsOmitMissingLinksAndImages(t *testing.T) {
	t.Parallel()

	out := render(t, Projects([]content.Project{{ID: "bare", Title: "Bare", Description: "No extras."}}, theme.Resolve(theme.Light), 150))
	assertContains(t, out, "Bare", "No extras.")
	for _, token := range []string{"Live Demo", ">Code<", "<img", "Featured"} {
		if strings.Contains(out, token) {
			t.Fatalf("expected %q to be omitted: %s", token, out)
		}
	}
}

func TestProjectsTruncateLongDescriptions(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 40)
	out := render(t, Projects([]content.Project{{ID: "long", Title: "Long", Description: long}}, theme.Resolve(theme.Light), 10))
	assertContains(t, out, ">xxxxxxxxxx...<", "Read More")
	if strings.Contains(out, long) {
		t.Fatalf("expected description to be cut: %s", out)
	}
}

func TestTimelineTypeLabels(t *testing.T) {
	t.Parallel()

	if got := typeLabel(content.EventAchievement); got != "Achievement" {
		t.Fatalf("expected title cased label, got %q", got)
	}
	if got := typeLabel(""); got != "" {
		t.Fatalf("expected empty label, got %q", got)
	}
	if typeClass("unknown") != "folio-event-default" {
		t.Fatal("expected unknown types to use the default class")
	}
}

func TestContactRendersSettledForm(t *testing.T) {
	t.Parallel()

	form := components.ContactFormData{Form: contact.Form{Status: contact.StatusSent, Notice: contact.SentNotice}}
	out := render(t, Contact(content.Contact{}, theme.Resolve(theme.Light), form))
	assertContains(t, out, "<dialog", `data-status="sent"`)
	if strings.Contains(out, "mailto:") {
		t.Fatalf("expected email block to be omitted: %s", out)
	}
}

func TestRendererIsPureForSameInputs(t *testing.T) {
	t.Parallel()

	p := loadPortfolio(t)
	palette := theme.Resolve(theme.Dark)
	first := render(t, Timeline(p.Timeline, palette))
	second := render(t, Timeline(p.Timeline, palette))
	if first != second {
		t.Fatal("expected identical output for identical inputs")
	}
}
