package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"folio/internal/content"
)

func serveHealth(t *testing.T) (*httptest.ResponseRecorder, healthResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	Health(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}
	var resp healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return w, resp
}

func TestHealth(t *testing.T) {
	configureForTest(t, Dependencies{})

	w, resp := serveHealth(t)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if resp.Status != "ok" {
		t.Fatalf("expected status ok, got %q", resp.Status)
	}
	if resp.Time.IsZero() {
		t.Fatal("expected response time to be populated")
	}
	if !resp.Content.Loaded || resp.Content.Projects == 0 {
		t.Fatalf("expected loaded content with projects, got %+v", resp.Content)
	}
	if resp.Database != "disabled" {
		t.Fatalf("expected database disabled, got %q", resp.Database)
	}
}

func TestHealthPingsDatabase(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:health-ping?mode=memory"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("database handle: %v", err)
	}
	configureForTest(t, Dependencies{Database: db})

	w, resp := serveHealth(t)
	if w.Code != http.StatusOK || resp.Database != "ok" {
		t.Fatalf("expected healthy database, got %d %q", w.Code, resp.Database)
	}

	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close database: %v", err)
	}
	w, resp = serveHealth(t)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 after close, got %d", w.Code)
	}
	if resp.Status != "unavailable" || resp.Database != "unreachable" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHealthWithoutContent(t *testing.T) {
	configureForTest(t, Dependencies{Content: content.NewStatic(nil)})

	w, resp := serveHealth(t)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
	if resp.Content.Loaded {
		t.Fatalf("expected content to be reported missing, got %+v", resp.Content)
	}
}
