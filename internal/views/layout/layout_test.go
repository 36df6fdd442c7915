package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"folio/internal/views/theme"
)

func TestTitleFor(t *testing.T) {
	if got := TitleFor("", "Engineer"); got != DefaultTitle {
		t.Fatalf("expected default title, got %q", got)
	}
	if got := TitleFor("Jordan Rivera", ""); got != "Jordan Rivera" {
		t.Fatalf("expected bare name, got %q", got)
	}
	if got := TitleFor("Jordan Rivera", "Backend Engineer"); got != "Jordan Rivera - Backend Engineer" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestLayoutRendersProvidedContent(t *testing.T) {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<main>content</main>"))
		return err
	})

	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), body)
	err := Layout(Meta{Title: "Portfolio"}, theme.Resolve(theme.Dark)).Render(ctx, &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Portfolio</title>") {
		t.Fatalf("expected document title to be rendered: %s", out)
	}
	if !strings.Contains(out, "<main>content</main>") {
		t.Fatalf("expected body content in output: %s", out)
	}
	if !strings.Contains(out, `<html lang="en" class="dark" data-appearance="dark">`) {
		t.Fatalf("expected dark root classes: %s", out)
	}
	if strings.Contains(out, "http-equiv") {
		t.Fatalf("expected no refresh without a delay: %s", out)
	}
}

func TestLayoutAddsNoscriptRefresh(t *testing.T) {
	var buf bytes.Buffer
	if err := Layout(Meta{Title: "Loading", Refresh: 2}, theme.Resolve(theme.System)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	if !strings.Contains(buf.String(), `<meta http-equiv="refresh" content="2">`) {
		t.Fatalf("expected noscript refresh: %s", buf.String())
	}
}
