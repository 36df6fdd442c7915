package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadSupportedFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file   string
		social string
	}{
		{"portfolio.json", "https://github.com/jrivera"},
		{"portfolio.yaml", "https://gitlab.com/jrivera"},
		{"portfolio.toml", "https://twitter.com/jrivera"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()
			p, err := Load(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatalf("Load(%s) error = %v", tt.file, err)
			}
			if p.Hero.Name != "Jordan Rivera" {
				t.Fatalf("Hero.Name = %q", p.Hero.Name)
			}
			links := p.Hero.SocialLinks.List()
			if len(links) == 0 || links[0].URL != tt.social {
				t.Fatalf("Hero.SocialLinks.List() = %+v, want first %q", links, tt.social)
			}
			if len(p.Projects) == 0 || p.Projects[0].ID != "ledger" {
				t.Fatalf("Projects = %+v", p.Projects)
			}
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	p, err := Load(filepath.Join("testdata", "portfolio.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.About.Title != "About Me" {
		t.Fatalf("About.Title = %q", p.About.Title)
	}
	if len(p.About.Highlights) != len(DefaultHighlights) {
		t.Fatalf("expected %d default highlights, got %d", len(DefaultHighlights), len(p.About.Highlights))
	}
	if p.Timeline.Title == "" || p.Skills.Title == "" || p.Education.Title == "" {
		t.Fatalf("expected section titles to default, got %q %q %q", p.Timeline.Title, p.Skills.Title, p.Education.Title)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join("testdata", "broken.json")); err == nil || !strings.Contains(err.Error(), "decode content") {
		t.Fatalf("expected decode error, got %v", err)
	}
	if _, err := Load(filepath.Join("testdata", "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := Load("content.xml"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestValidateReportsIssues(t *testing.T) {
	t.Parallel()

	p := &Portfolio{
		Projects: []Project{
			{ID: "a", Title: "A"},
			{ID: "a", Title: "Again"},
			{Title: "No id"},
			{ID: "b", GithubLink: "not a url"},
		},
		Timeline: Timeline{Events: []TimelineEvent{
			{ID: "x", Type: "vacation"},
			{ID: "x"},
		}},
		Contact: Contact{Email: "nobody"},
	}

	issues := Validate(p)
	joined := make([]string, 0, len(issues))
	for _, issue := range issues {
		joined = append(joined, issue.String())
	}
	all := strings.Join(joined, "\n")

	for _, want := range []string{
		`projects[1].id: duplicate id "a"`,
		"projects[2].id: missing id",
		"projects[3].githubLink",
		"timeline.events[0].type",
		`timeline.events[1].id: duplicate id "x"`,
		"contact.email",
	} {
		if !strings.Contains(all, want) {
			t.Fatalf("expected issue %q in:\n%s", want, all)
		}
	}
}

func TestValidateCleanDocument(t *testing.T) {
	t.Parallel()

	p, err := Load(filepath.Join("testdata", "portfolio.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if issues := Validate(p); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestBioRendering(t *testing.T) {
	t.Parallel()

	about := About{Bio: "I like **small** programs.\nAnd tests.\n\n<script>alert(1)</script>"}
	html, err := about.BioHTML()
	if err != nil {
		t.Fatalf("BioHTML() error = %v", err)
	}
	if !strings.Contains(html, "<strong>small</strong>") {
		t.Fatalf("expected emphasis in %q", html)
	}
	if !strings.Contains(html, "<br") {
		t.Fatalf("expected hard wrap in %q", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("raw html must be dropped: %q", html)
	}

	paragraphs := about.Paragraphs()
	if len(paragraphs) != 3 || paragraphs[1] != "And tests." {
		t.Fatalf("Paragraphs() = %q", paragraphs)
	}
}

func TestProjectLookup(t *testing.T) {
	t.Parallel()

	p := &Portfolio{Projects: []Project{{ID: "ledger", Title: "Ledger"}}}
	if project, ok := p.Project("ledger"); !ok || project.Title != "Ledger" {
		t.Fatalf("Project(ledger) = %+v, %t", project, ok)
	}
	if _, ok := p.Project("missing"); ok {
		t.Fatal("expected missing project lookup to fail")
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestStoreReloadKeepsSnapshotOnFailure(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "content.json")
	writeFile(t, path, `{"hero": {"name": "First"}}`)

	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	first := store.Current()

	writeFile(t, path, `{"hero": `)
	if err := store.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error for malformed content")
	}
	if store.Current() != first {
		t.Fatal("failed reload replaced the snapshot")
	}

	writeFile(t, path, `{"hero": {"name": "Second"}}`)
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := store.Current().Hero.Name; got != "Second" {
		t.Fatalf("Hero.Name after reload = %q", got)
	}
	if first.Hero.Name != "First" {
		t.Fatal("previous snapshot was mutated")
	}
}

func TestStoreWatchReloadsOnChange(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "content.json")
	writeFile(t, path, `{"hero": {"name": "Before"}}`)

	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	store.Debounce = 10 * time.Millisecond
	reloaded := make(chan *Portfolio, 1)
	store.OnReload = func(p *Portfolio) {
		select {
		case reloaded <- p:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case p := <-reloaded:
			if p.Hero.Name != "After" {
				t.Fatalf("reloaded Hero.Name = %q", p.Hero.Name)
			}
			if store.Current().Hero.Name != "After" {
				t.Fatal("store did not swap to reloaded snapshot")
			}
			return
		case <-tick.C:
			writeFile(t, path, `{"hero": {"name": "After"}}`)
		case <-deadline:
			t.Fatal("timed out waiting for content reload")
		}
	}
}

func TestStaticStore(t *testing.T) {
	t.Parallel()

	p := &Portfolio{Hero: Hero{Name: "Static"}}
	store := NewStatic(p)
	if store.Current() != p {
		t.Fatal("expected static store to serve the given snapshot")
	}
	if err := store.Reload(context.Background()); err == nil {
		t.Fatal("expected reload of static store to fail")
	}
}
