package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersAndGauge(t *testing.T) {
	t.Parallel()

	m := New()
	m.PageRendered("home")
	m.PageRendered("home")
	m.ContactSubmitted("sent")
	m.AppearanceChanged("dark")

	if got := testutil.ToFloat64(m.pageRenders.WithLabelValues("home")); got != 2 {
		t.Fatalf("page renders = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.contactSubmit.WithLabelValues("sent")); got != 1 {
		t.Fatalf("contact submissions = %v, want 1", got)
	}

	closed := m.StreamOpened()
	if got := testutil.ToFloat64(m.skillStreams); got != 1 {
		t.Fatalf("active streams = %v, want 1", got)
	}
	closed()
	if got := testutil.ToFloat64(m.skillStreams); got != 0 {
		t.Fatalf("active streams after close = %v, want 0", got)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	t.Parallel()

	m := New()
	m.AppearanceChanged("light")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `folio_appearance_toggles_total{mode="light"} 1`) {
		t.Fatalf("expected toggle counter in output:\n%s", body)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.PageRendered("home")
	m.ContactSubmitted("failed")
	m.AppearanceChanged("dark")
	m.StreamOpened()()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
