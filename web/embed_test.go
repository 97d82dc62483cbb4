package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serve(method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestHandlerServesIndex(t *testing.T) {
	for _, path := range []string{"/", "/index.html", "/candidates/abc"} {
		rr := serve(http.MethodGet, path)

		if rr.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "<title>Interview</title>") {
			t.Errorf("GET %s: expected index page", path)
		}
		if got := rr.Header().Get("Cache-Control"); got != "no-cache" {
			t.Errorf("GET %s: expected no-cache, got %q", path, got)
		}
	}
}

func TestHandlerMissingAssetIs404(t *testing.T) {
	if rr := serve(http.MethodGet, "/assets/app.js"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing asset, got %d", rr.Code)
	}
}

func TestHandlerRejectsWrites(t *testing.T) {
	rr := serve(http.MethodPost, "/")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rr.Code)
	}
	if rr.Header().Get("Allow") != "GET, HEAD" {
		t.Errorf("Expected Allow header, got %q", rr.Header().Get("Allow"))
	}
}
