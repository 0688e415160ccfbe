package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestMiddleware_countsErrors(t *testing.T) {
	m := New()
	h := RequestMiddleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	for _, p := range []string{"/", "/missing", "/"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	if got := testutil.ToFloat64(m.requestsTotal); got != 3 {
		t.Errorf("requests = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.errorsTotal); got != 1 {
		t.Errorf("errors = %v, want 1", got)
	}
}

func TestMetrics_CarouselRecorder(t *testing.T) {
	m := New()
	m.RecordAdvance("timer")
	m.RecordAdvance("timer")
	m.RecordAdvance("jump")
	m.RecordPlayOutcome("policy_blocked")

	if got := testutil.ToFloat64(m.carouselAdvances.WithLabelValues("timer")); got != 2 {
		t.Errorf("timer advances = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.playOutcomes.WithLabelValues("policy_blocked")); got != 1 {
		t.Errorf("policy_blocked = %v, want 1", got)
	}
}

func TestMetrics_Handler_updatesGauges(t *testing.T) {
	m := New()
	h := m.Handler(func() { m.SetCarouselSessions(4) })

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "site_carousel_sessions_active 4") {
		t.Errorf("gauge not refreshed before scrape:\n%s", rec.Body.String())
	}
}
