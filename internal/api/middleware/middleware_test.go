package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"X-XSS-Protection":       "0",
	}
	for k, v := range want {
		if got := w.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}

	csp := w.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "script-src 'self'") {
		t.Errorf("Content-Security-Policy missing script-src restriction: %q", csp)
	}
	if !strings.Contains(csp, "img-src 'self' https:") {
		t.Errorf("Content-Security-Policy should allow provider-hosted images: %q", csp)
	}
}

func TestRequestIDAssigned(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if seen == "" {
		t.Fatal("expected a request id in context")
	}
	if got := w.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("response header %q, context value %q", got, seen)
	}
}

func TestRequestIDPreserved(t *testing.T) {
	handler := RequestID(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "upstream-id" {
		t.Errorf("expected inbound id preserved, got %q", got)
	}
}

func TestLoggingScrubsSensitiveQuery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	handler := Logging(logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=radiohead&client_secret=hunter2", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Errorf("secret leaked into log output: %s", out)
	}
	if !strings.Contains(out, "client_secret=REDACTED") {
		t.Errorf("expected redaction marker in log output: %s", out)
	}
	if !strings.Contains(out, "q=radiohead") {
		t.Errorf("expected benign query preserved: %s", out)
	}
}

func TestScrubQuery(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"q=hello", "q=hello"},
		{"token=abc&q=x", "token=REDACTED&q=x"},
		{"Authorization=Bearer+x", "Authorization=REDACTED"},
	}
	for _, c := range cases {
		if got := scrubQuery(c.input); got != c.want {
			t.Errorf("scrubQuery(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}
