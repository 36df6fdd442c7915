// Package sections renders one slice of the portfolio per component. Every
// renderer is a function of its content, the palette and local UI state.
package sections

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"folio/internal/content"
	applog "folio/internal/log"
)

var titleCase = cases.Title(language.English)

// typeLabel is the display label of a timeline event type.
func typeLabel(t content.EventType) string {
	if t == "" {
		return ""
	}
	return titleCase.String(string(t))
}

func typeClass(t content.EventType) string {
	switch t {
	case content.EventWork, content.EventEducation, content.EventAchievement, content.EventProject:
		return "folio-event-" + string(t)
	default:
		return "folio-event-default"
	}
}

// bio renders the biography markdown, falling back to escaped paragraphs if
// the markdown cannot be rendered.
func bio(a content.About) templ.Component {
	html, err := a.BioHTML()
	if err == nil {
		return templ.Raw(html)
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		applog.Warn(ctx, "biography markdown failed to render", "error", err)
		for _, paragraph := range a.Paragraphs() {
			if _, err := io.WriteString(w, "<p>"+templ.EscapeString(paragraph)+"</p>"); err != nil {
				return err
			}
		}
		return nil
	})
}

func eventID(e content.TimelineEvent) string {
	return "event-" + e.ID
}

func projectID(p content.Project) string {
	return "project-" + p.ID
}

func meta(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
