package site

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oakwood-site/internal/content"
	"oakwood-site/internal/platform/logger"
)

type stubContent struct {
	home       *content.HomeContent
	homeErr    error
	services   map[string]*content.ServiceContent
	serviceErr error
}

func (s *stubContent) Home(context.Context) (*content.HomeContent, error) {
	return s.home, s.homeErr
}

func (s *stubContent) Navbar(context.Context) *content.NavbarContent {
	idx := 1
	return &content.NavbarContent{MenuItems: []content.MenuItem{
		{Label: "Home", RouterLink: "/"},
		{Label: "Services", RouterLink: "/services", Index: &idx, HasDropdown: true},
	}}
}

func (s *stubContent) Footer(context.Context) *content.FooterSection {
	return &content.FooterSection{Copyright: "© 2025 Oakwood Systems"}
}

func (s *stubContent) Service(_ context.Context, slug string) (*content.ServiceContent, error) {
	if s.serviceErr != nil {
		return nil, s.serviceErr
	}
	svc, ok := s.services[slug]
	if !ok {
		return nil, content.ErrNotFound
	}
	return svc, nil
}

var testBrand = Brand{Name: "Oakwood Systems", URL: "https://oakwoodsys.com"}

func newTestRouter(c Content) http.Handler {
	r := chi.NewRouter()
	NewHandler(c, testBrand, logger.Discard()).Routes(r)
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Home(t *testing.T) {
	c := &stubContent{home: &content.HomeContent{
		VideoURLs: content.ClipList{"/videos/a.mp4", "/videos/b.mp4"},
		Hero: &content.HeroSection{
			Title:       "Build <the> future",
			Description: "We help",
			CTAPrimary:  &content.CTA{Text: "Contact", Link: "/contact-us"},
		},
	}}
	rec := get(t, newTestRouter(c), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Build &lt;the&gt; future | Oakwood Systems</title>")
	assert.Contains(t, body, `<meta name="description" content="We help">`)
	assert.Contains(t, body, `<meta property="og:image" content="https://oakwoodsys.com/og-image.jpg">`)
	assert.Contains(t, body, `<link rel="canonical" href="https://oakwoodsys.com">`)
	assert.Contains(t, body, `type="application/ld+json"`)
	assert.Contains(t, body, `"@type":"Organization"`)
	assert.Contains(t, body, `data-page="home"`)
	assert.NotContains(t, body, "data-interval")
	assert.Contains(t, body, `<video class="video-hero__video" muted playsinline preload="auto" src="/videos/a.mp4">`)
	assert.Contains(t, body, `data-index="1"`)
	assert.Contains(t, body, `href="/contact-us"`)
	assert.Contains(t, body, "© 2025 Oakwood Systems")
	assert.Contains(t, body, "Data &amp; AI Solutions", "catalog dropdown rendered")
}

func TestHandler_Home_contentFailureStillRenders(t *testing.T) {
	rec := get(t, newTestRouter(&stubContent{homeErr: errors.New("both sources down")}), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Oakwood Systems - Microsoft Solutions Partner</title>")
	assert.Contains(t, body, templ.EscapeString(DefaultDescription))
	assert.NotContains(t, body, "og:image")
	assert.NotContains(t, body, "data-carousel")
}

func TestHandler_ServicesIndex_redirects(t *testing.T) {
	rec := get(t, newTestRouter(&stubContent{}), "/services")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, content.MicrosoftServices[0].Link, rec.Header().Get("Location"))
}

func TestHandler_Service(t *testing.T) {
	c := &stubContent{services: map[string]*content.ServiceContent{
		"modern-work": {
			Slug:            "modern-work",
			Title:           "Modern Work",
			Description:     "short",
			BackgroundImage: "https://cdn.example.com/mw.jpg",
			VideoURLs:       content.ClipList{"/v/mw.mp4"},
		},
	}}
	rec := get(t, newTestRouter(c), "/services/modern-work")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Modern Work | Oakwood Systems</title>")
	assert.Contains(t, body, `<link rel="canonical" href="https://oakwoodsys.com/services/modern-work">`)
	assert.Contains(t, body, `<meta property="og:image" content="https://cdn.example.com/mw.jpg">`)
	assert.Contains(t, body, `"@type":"Service"`)
	assert.Contains(t, body, `data-page="service" data-slug="modern-work"`)
	assert.NotContains(t, body, "video-hero__dots", "single clip has no selector")
}

func TestHandler_Service_notFound(t *testing.T) {
	rec := get(t, newTestRouter(&stubContent{}), "/services/quantum")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Service &#34;quantum&#34; not found")
	assert.Contains(t, rec.Body.String(), `<meta name="robots" content="noindex">`)
}

func TestHandler_Service_loadFailure(t *testing.T) {
	rec := get(t, newTestRouter(&stubContent{serviceErr: errors.New("disk gone")}), "/services/modern-work")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load service content")
}

func TestHandler_NotFound(t *testing.T) {
	rec := get(t, newTestRouter(&stubContent{}), "/no/such/page")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
	assert.Contains(t, rec.Body.String(), `class="navbar"`)
}
