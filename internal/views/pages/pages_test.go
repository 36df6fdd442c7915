package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"folio/internal/content"
	"folio/internal/views/components"
	"folio/internal/views/theme"
	"folio/models"
)

func testView() View {
	return View{
		Portfolio: &content.Portfolio{
			Hero:     content.Hero{Name: "Jordan Rivera", Title: "Backend Engineer"},
			About:    content.About{Title: "About Me", Bio: "Hello."},
			Skills:   content.Skills{Title: "Skills"},
			Timeline: content.Timeline{Title: "Experience"},
			Contact:  content.Contact{Email: "jordan@example.com"},
		},
		Palette: theme.Resolve(theme.Light),
		Year:    2026,
	}
}

func TestHomeRendersSectionsInOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := Home(testView()).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render home: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<title>Jordan Rivera - Backend Engineer</title>") {
		t.Fatalf("expected title: %s", out)
	}
	if strings.Contains(out, `id="loader"`) {
		t.Fatalf("expected no loader on the settled page: %s", out)
	}

	order := []string{`id="navbar"`, `id="hero"`, `id="about"`, `id="skills"`, `id="education"`, `id="projects"`, `id="timeline"`, `id="contact"`, `id="footer"`}
	last := -1
	for _, marker := range order {
		idx := strings.Index(out, marker)
		if idx < 0 {
			t.Fatalf("expected %s in page: %s", marker, out)
		}
		if idx < last {
			t.Fatalf("expected %s after the previous section", marker)
		}
		last = idx
	}
}

func TestLoadingRendersOnlyLoader(t *testing.T) {
	var buf bytes.Buffer
	if err := Loading(testView(), 1500*time.Millisecond).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render loading: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `id="loader"`) || !strings.Contains(out, "load delay:1500ms") {
		t.Fatalf("expected loader with remaining delay: %s", out)
	}
	for _, marker := range []string{`id="navbar"`, `id="hero"`, `id="footer"`} {
		if strings.Contains(out, marker) {
			t.Fatalf("expected %s to stay unmounted while loading: %s", marker, out)
		}
	}
	if !strings.Contains(out, `content="2"`) {
		t.Fatalf("expected noscript refresh rounded up to whole seconds: %s", out)
	}
}

func TestStaticHomeGate(t *testing.T) {
	var buf bytes.Buffer
	if err := StaticHome(testView(), 0).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render static home: %v", err)
	}
	if out := buf.String(); strings.Contains(out, `id="loader"`) || !strings.Contains(out, `id="hero"`) {
		t.Fatalf("expected zero delay to render the settled page: %s", out)
	}

	buf.Reset()
	if err := StaticHome(testView(), 750*time.Millisecond).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render gated static home: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `data-loading-delay="750"`) || strings.Contains(out, "hx-trigger=\"load") {
		t.Fatalf("expected a script driven loader: %s", out)
	}
	if !strings.Contains(out, `<template id="sections-template">`) {
		t.Fatalf("expected sections to wait in a template: %s", out)
	}
}

func TestSectionsPartialHasNoDocumentShell(t *testing.T) {
	var buf bytes.Buffer
	if err := Sections(testView()).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render sections: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<html") || strings.Contains(out, `id="loader"`) {
		t.Fatalf("expected a bare partial: %s", out)
	}
	if !strings.HasPrefix(out, `<nav id="navbar"`) {
		t.Fatalf("expected partial to start with the navbar: %s", out)
	}
}

func TestViewDefaults(t *testing.T) {
	v := View{}
	if v.limit() != components.DefaultDescriptionLimit {
		t.Fatalf("expected default limit, got %d", v.limit())
	}
	if v.navbar().Menu != components.MenuClosed {
		t.Fatal("expected closed menu by default")
	}
	if v.footer().Year == 0 {
		t.Fatal("expected current year fallback")
	}
	if got := loadingMeta(v, 0).Refresh; got != 1 {
		t.Fatalf("expected refresh of at least one second, got %d", got)
	}
}

func TestInboxListsMessages(t *testing.T) {
	messages := []models.ContactMessage{{
		Model: gorm.Model{ID: 7, CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		Name:  "Ada",
		Email: "ada@example.com",
		Body:  "Hello there",
	}}

	var buf bytes.Buffer
	if err := Inbox(messages, theme.Resolve(theme.Dark)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render inbox: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"Ada", "ada@example.com", "Hello there", `data-message-id="7"`, "2026-03-01T10:00:00Z"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in inbox: %s", token, out)
		}
	}

	buf.Reset()
	if err := Inbox(nil, theme.Resolve(theme.Dark)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render empty inbox: %v", err)
	}
	if !strings.Contains(buf.String(), "No messages yet.") {
		t.Fatalf("expected empty state: %s", buf.String())
	}
}
