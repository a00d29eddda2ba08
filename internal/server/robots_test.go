package server

import (
	"net/http"
	"testing"
)

func TestPlainTextRoutes(t *testing.T) {
	s := newTestServer(t, newTestConfig(t))

	cases := []struct {
		path         string
		body         string
		cacheControl string
	}{
		{path: "/robots.txt", body: robotsTxt, cacheControl: "no-store"},
		{path: "/healthz", body: "ok\n"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rr := do(t, s, http.MethodGet, tc.path, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rr.Code)
			}
			if got := rr.Body.String(); got != tc.body {
				t.Fatalf("unexpected body, got %q", got)
			}
			if tc.cacheControl == "" {
				return
			}
			if ct := rr.Header().Get("Content-Type"); ct != "text/plain" {
				t.Fatalf("expected Content-Type text/plain, got %q", ct)
			}
			if cc := rr.Header().Get("Cache-Control"); cc != tc.cacheControl {
				t.Fatalf("expected Cache-Control %q, got %q", tc.cacheControl, cc)
			}
		})
	}
}
