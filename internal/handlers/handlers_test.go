package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/crypto/bcrypt"

	"folio/internal/config"
	"folio/internal/contact"
	"folio/internal/content"
	"folio/internal/db/mock"
	"folio/internal/metrics"
	"folio/internal/resume"
)

func testStore(t *testing.T) *content.Store {
	t.Helper()
	p, err := content.Load(filepath.Join("..", "content", "testdata", "portfolio.json"))
	if err != nil {
		t.Fatalf("load portfolio: %v", err)
	}
	return content.NewStatic(p)
}

func configureForTest(t *testing.T, deps Dependencies) {
	t.Helper()
	if deps.Content == nil {
		deps.Content = testStore(t)
	}
	Configure(deps)
	t.Cleanup(func() { Configure(Dependencies{}) })
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHomeRendersPageWithoutDelay(t *testing.T) {
	configureForTest(t, Dependencies{Metrics: metrics.New()})

	w := httptest.NewRecorder()
	Home(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, token := range []string{`id="hero"`, "Jordan Rivera", `id="contact-form"`} {
		if !strings.Contains(body, token) {
			t.Fatalf("expected %q in page: %s", token, body)
		}
	}
	if strings.Contains(body, `id="loader"`) {
		t.Fatalf("expected no loader without a delay: %s", body)
	}
}

func TestHomeShowsLoaderWhileGateIsClosed(t *testing.T) {
	sm := scs.New()
	configureForTest(t, Dependencies{Sessions: sm, Timing: config.TimingConfig{LoadingDelay: time.Hour}})

	w := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(Home)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	body := w.Body.String()
	if !strings.Contains(body, `id="loader"`) {
		t.Fatalf("expected loader: %s", body)
	}
	if strings.Contains(body, `id="hero"`) {
		t.Fatalf("expected sections to stay unmounted: %s", body)
	}
}

func TestHomeRejectsUnsupportedMethod(t *testing.T) {
	configureForTest(t, Dependencies{})

	w := httptest.NewRecorder()
	Home(w, httptest.NewRequest(http.MethodDelete, "/", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestSectionsReturnsPartialForHTMX(t *testing.T) {
	configureForTest(t, Dependencies{})

	req := httptest.NewRequest(http.MethodGet, "/sections", nil)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	Sections(w, req)

	body := w.Body.String()
	if !strings.HasPrefix(body, `<nav id="navbar"`) {
		t.Fatalf("expected partial starting with the navbar: %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Fatalf("expected no document shell: %s", body)
	}
}

func TestSectionsAbandonedBeforeGateOpens(t *testing.T) {
	sm := scs.New()
	configureForTest(t, Dependencies{Sessions: sm, Timing: config.TimingConfig{LoadingDelay: time.Hour}})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/sections", nil).WithContext(ctx)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(Sections)).ServeHTTP(w, req)

	if strings.Contains(w.Body.String(), `id="hero"`) {
		t.Fatalf("expected nothing rendered after abandonment: %s", w.Body.String())
	}
}

func TestToggleAppearanceResponses(t *testing.T) {
	configureForTest(t, Dependencies{Sessions: scs.New()})

	cases := []struct {
		name   string
		header map[string]string
		code   int
		check  func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:   "htmx",
			header: map[string]string{"HX-Request": "true"},
			code:   http.StatusNoContent,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if w.Header().Get("HX-Refresh") != "true" {
					t.Fatal("expected HX-Refresh header")
				}
			},
		},
		{
			name:   "json",
			header: map[string]string{"Accept": "application/json"},
			code:   http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if !strings.Contains(w.Body.String(), `"mode":"dark"`) {
					t.Fatalf("expected dark mode in response: %s", w.Body.String())
				}
			},
		},
		{
			name: "form",
			code: http.StatusSeeOther,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if w.Header().Get("Location") != "/" {
					t.Fatalf("expected redirect home, got %q", w.Header().Get("Location"))
				}
			},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/appearance/toggle", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			sessionManager.LoadAndSave(http.HandlerFunc(ToggleAppearance)).ServeHTTP(w, req)
			if w.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, w.Code)
			}
			tt.check(t, w)
		})
	}
}

func TestAppearancePersistsAcrossRequests(t *testing.T) {
	sm := scs.New()
	configureForTest(t, Dependencies{Sessions: sm})

	toggle := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(ToggleAppearance)).ServeHTTP(toggle, httptest.NewRequest(http.MethodPost, "/appearance/toggle", nil))
	cookies := toggle.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(Home)).ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `data-appearance="dark"`) {
		t.Fatalf("expected dark appearance after toggle: %s", w.Body.String())
	}

	other := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(Home)).ServeHTTP(other, httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Contains(other.Body.String(), `data-appearance="dark"`) {
		t.Fatalf("expected a fresh session to keep the default: %s", other.Body.String())
	}
}

func TestSetAppearanceRejectsUnknownMode(t *testing.T) {
	configureForTest(t, Dependencies{Sessions: scs.New()})

	w := httptest.NewRecorder()
	req := formRequest(http.MethodPost, "/appearance", url.Values{"mode": {"sepia"}})
	sessionManager.LoadAndSave(http.HandlerFunc(SetAppearance)).ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = formRequest(http.MethodPost, "/appearance", url.Values{"mode": {"light"}})
	req.Header.Set("Accept", "application/json")
	sessionManager.LoadAndSave(http.HandlerFunc(SetAppearance)).ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"mode":"light"`) {
		t.Fatalf("expected light mode to be stored, got %d %s", w.Code, w.Body.String())
	}
}

func TestMenuFragment(t *testing.T) {
	configureForTest(t, Dependencies{})

	cases := []struct {
		file string
		code int
		want string
	}{
		{"open.html", http.StatusOK, `data-state="open"`},
		{"closed.html", http.StatusOK, `data-state="closed"`},
		{"ajar.html", http.StatusNotFound, ""},
	}
	for _, tt := range cases {
		req := httptest.NewRequest(http.MethodGet, "/fragments/menu/"+tt.file, nil)
		req.SetPathValue("file", tt.file)
		w := httptest.NewRecorder()
		MenuFragment(w, req)
		if w.Code != tt.code {
			t.Fatalf("%s: expected %d, got %d", tt.file, tt.code, w.Code)
		}
		if !strings.Contains(w.Body.String(), tt.want) {
			t.Fatalf("%s: expected %q in %s", tt.file, tt.want, w.Body.String())
		}
	}
}

func TestProjectDescriptionFragment(t *testing.T) {
	configureForTest(t, Dependencies{Timing: config.TimingConfig{DescriptionLimit: 10}})

	get := func(id, file string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/fragments/projects/"+id+"/description/"+file, nil)
		req.SetPathValue("id", id)
		req.SetPathValue("file", file)
		w := httptest.NewRecorder()
		ProjectDescription(w, req)
		return w
	}

	collapsed := get("ledger", "collapsed.html")
	if collapsed.Code != http.StatusOK || !strings.Contains(collapsed.Body.String(), "Double-ent...") {
		t.Fatalf("expected truncated description, got %d %s", collapsed.Code, collapsed.Body.String())
	}
	expanded := get("ledger", "expanded.html")
	if !strings.Contains(expanded.Body.String(), "Double-entry bookkeeping service.") || !strings.Contains(expanded.Body.String(), "Show Less") {
		t.Fatalf("expected full description: %s", expanded.Body.String())
	}
	if w := get("missing", "expanded.html"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown project, got %d", w.Code)
	}
	if w := get("ledger", "folded.html"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown state, got %d", w.Code)
	}
}

func TestSkillStreamEmitsRotatingLabels(t *testing.T) {
	configureForTest(t, Dependencies{Timing: config.TimingConfig{RotationInterval: 10 * time.Millisecond}})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/hero/skills/stream", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	SkillStream(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected event stream, got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "event: skill\ndata: <span class=\"folio-ticker-label\" data-skill-label>PostgreSQL</span>\n\n") {
		t.Fatalf("expected the second label first: %q", body)
	}
}

func TestSkillStreamWithoutLabels(t *testing.T) {
	configureForTest(t, Dependencies{Content: content.NewStatic(&content.Portfolio{})})

	w := httptest.NewRecorder()
	SkillStream(w, httptest.NewRequest(http.MethodGet, "/hero/skills/stream", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSubmitContact(t *testing.T) {
	var received []contact.Message
	configureForTest(t, Dependencies{
		Metrics: metrics.New(),
		Submitter: contact.SubmitterFunc(func(ctx context.Context, m contact.Message) error {
			received = append(received, m)
			return nil
		}),
	})

	valid := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello"}}

	req := formRequest(http.MethodPost, "/contact", valid)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	SubmitContact(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "get back to you soon") || strings.Contains(w.Body.String(), "<html") {
		t.Fatalf("expected sent form fragment: %s", w.Body.String())
	}
	if len(received) != 1 || received[0].Body != "Hello" || received[0].Remote == "" {
		t.Fatalf("expected message to reach the submitter, got %+v", received)
	}

	invalid := url.Values{"name": {"Ada"}, "email": {"nope"}, "message": {"Hello"}}
	w = httptest.NewRecorder()
	SubmitContact(w, formRequest(http.MethodPost, "/contact", invalid))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `value="nope"`) || !strings.Contains(w.Body.String(), "<html") {
		t.Fatalf("expected full page with preserved input: %s", w.Body.String())
	}
	if len(received) != 1 {
		t.Fatal("expected invalid message not to be submitted")
	}
}

func TestSubmitContactDeliveryFailure(t *testing.T) {
	configureForTest(t, Dependencies{
		Submitter: contact.SubmitterFunc(func(context.Context, contact.Message) error {
			return errors.New("smtp down")
		}),
	})

	values := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello"}}
	req := formRequest(http.MethodPost, "/contact", values)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	SubmitContact(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), contact.FailedNotice) {
		t.Fatalf("expected failure notice, got %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	SubmitContact(w, formRequest(http.MethodPost, "/contact", values))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestSubmitContactAbandoned(t *testing.T) {
	configureForTest(t, Dependencies{
		Submitter: contact.Delayed{Delay: time.Hour},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	values := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello"}}
	w := httptest.NewRecorder()
	SubmitContact(w, formRequest(http.MethodPost, "/contact", values).WithContext(ctx))
	if w.Body.Len() != 0 {
		t.Fatalf("expected nothing rendered for an abandoned submission: %s", w.Body.String())
	}
}

func TestResumeHandlers(t *testing.T) {
	doc, err := resume.Load(filepath.Join("..", "resume", "testdata", "resume.pdf"))
	if err != nil {
		t.Fatalf("load resume: %v", err)
	}
	configureForTest(t, Dependencies{Resume: doc})

	w := httptest.NewRecorder()
	ResumePDF(w, httptest.NewRequest(http.MethodGet, "/resume.pdf", nil))
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("expected pdf, got %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if w.Body.Len() != len(doc.Data) {
		t.Fatalf("expected %d bytes, got %d", len(doc.Data), w.Body.Len())
	}

	w = httptest.NewRecorder()
	ResumeText(w, httptest.NewRequest(http.MethodGet, "/resume.txt", nil))
	if w.Body.String() != "Jordan Rivera\nBackend Engineer" {
		t.Fatalf("unexpected text %q", w.Body.String())
	}

	Configure(Dependencies{})
	w = httptest.NewRecorder()
	ResumePDF(w, httptest.NewRequest(http.MethodGet, "/resume.pdf", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a resume, got %d", w.Code)
	}
}

func TestInboxRequiresCredentials(t *testing.T) {
	db, err := mock.New(context.Background())
	if err != nil {
		t.Fatalf("mock database: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	configureForTest(t, Dependencies{Database: db, Admin: config.AdminConfig{User: "admin", PasswordHash: string(hash)}})

	w := httptest.NewRecorder()
	Inbox(w, httptest.NewRequest(http.MethodGet, "/admin/messages", nil))
	if w.Code != http.StatusUnauthorized || w.Header().Get("WWW-Authenticate") == "" {
		t.Fatalf("expected basic auth challenge, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	req.SetBasicAuth("admin", "wrong")
	w = httptest.NewRecorder()
	Inbox(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a wrong password, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	req.SetBasicAuth("admin", "s3cret")
	w = httptest.NewRecorder()
	Inbox(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ada@example.com") {
		t.Fatalf("expected seeded messages, got %d %s", w.Code, w.Body.String())
	}
}

func TestInboxHiddenWithoutConfiguration(t *testing.T) {
	configureForTest(t, Dependencies{})

	w := httptest.NewRecorder()
	Inbox(w, httptest.NewRequest(http.MethodGet, "/admin/messages", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
