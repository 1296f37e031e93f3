package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// =============================================================================
// Request Logging Middleware Tests
// =============================================================================

func newLoggedHandler(status int) (http.Handler, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	mw := NewRequestLoggingMiddleware(logger)
	return mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})), &buf
}

func TestRequestLoggingMiddleware_LogsBasicInfo(t *testing.T) {
	wrapped, buf := newLoggedHandler(http.StatusOK)

	req := httptest.NewRequest("GET", "/booking/slack", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("User-Agent", "Mozilla/5.0 Test")
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	logOutput := buf.String()
	for _, want := range []string{"GET", "/booking/slack", "status=200", "duration_ms", "192.168.1.1", "Mozilla/5.0 Test", "request_id="} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("log should contain %q, got: %s", want, logOutput)
		}
	}
}

func TestRequestLoggingMiddleware_LogsServerErrorsAsWarn(t *testing.T) {
	wrapped, buf := newLoggedHandler(http.StatusInternalServerError)

	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/integrations", nil))

	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("5xx should log at warn, got: %s", buf.String())
	}
}

func TestRequestLoggingMiddleware_LogsClientErrorsAsInfo(t *testing.T) {
	wrapped, buf := newLoggedHandler(http.StatusUnprocessableEntity)

	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/booking/slack", nil))

	if !strings.Contains(buf.String(), "level=INFO") || !strings.Contains(buf.String(), "status=422") {
		t.Errorf("4xx should log at info with status, got: %s", buf.String())
	}
}

func TestRequestLoggingMiddleware_RedactsPersonalDetails(t *testing.T) {
	wrapped, buf := newLoggedHandler(http.StatusOK)

	req := httptest.NewRequest("GET", "/booking/slack?name=Ada&email=ada@example.com&phone=555&csrf_token=abc&ref=home", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	logOutput := buf.String()
	for _, leaked := range []string{"Ada", "ada@example.com", "555", "abc"} {
		if strings.Contains(logOutput, leaked) {
			t.Errorf("log should not contain %q, got: %s", leaked, logOutput)
		}
	}
	if !strings.Contains(logOutput, "ref=home") {
		t.Errorf("log should keep harmless params, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, "[REDACTED]") {
		t.Errorf("log should mark redacted params, got: %s", logOutput)
	}
}

func TestRequestLoggingMiddleware_AssignsRequestID(t *testing.T) {
	var seen string
	mw := NewRequestLoggingMiddleware(discardLogger())
	wrapped := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/integrations", nil))

	if seen == "" {
		t.Fatal("handler should see a request ID")
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("response header %q should match context ID %q", rec.Header().Get(RequestIDHeader), seen)
	}
}

func TestRequestLoggingMiddleware_KeepsIncomingRequestID(t *testing.T) {
	mw := NewRequestLoggingMiddleware(discardLogger())
	wrapped := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/integrations", nil)
	req.Header.Set(RequestIDHeader, "edge-42")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Header().Get(RequestIDHeader) != "edge-42" {
		t.Errorf("expected incoming request ID to be kept, got %q", rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestLoggingMiddleware_PassesRequestThrough(t *testing.T) {
	mw := NewRequestLoggingMiddleware(discardLogger())
	wrapped := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Custom", "value")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("POST", "/booking/slack", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rec.Code)
	}
	if rec.Header().Get("X-Custom") != "value" {
		t.Error("custom header should pass through")
	}
	if rec.Body.String() != "created" {
		t.Errorf("expected body 'created', got %q", rec.Body.String())
	}
}

func TestRequestLoggingMiddleware_SkipsNoisyPaths(t *testing.T) {
	for _, path := range []string{"/health", "/metrics", "/static/app.3f2a.css"} {
		t.Run(path, func(t *testing.T) {
			wrapped, buf := newLoggedHandler(http.StatusOK)
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))

			if buf.Len() != 0 {
				t.Errorf("%s should not be logged, got: %s", path, buf.String())
			}
			if rec.Header().Get(RequestIDHeader) == "" {
				t.Error("skipped paths still get a request ID")
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		path, query, want string
	}{
		{"/integrations", "", "/integrations"},
		{"/booking/slack", "email=a@b.co", "/booking/slack?email=[REDACTED]"},
		{"/booking/slack", "Phone=1&x=2", "/booking/slack?Phone=[REDACTED]&x=2"},
		{"/booking/slack", "novalue", "/booking/slack"},
	}
	for _, tt := range tests {
		if got := sanitizePath(tt.path, tt.query); got != tt.want {
			t.Errorf("sanitizePath(%q, %q) = %q, want %q", tt.path, tt.query, got, tt.want)
		}
	}
}

func TestStack_OrdersOutermostFirst(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Stack(tag("a"), tag("b"), tag("c"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if got := strings.Join(order, ","); got != "a,b,c,handler" {
		t.Errorf("unexpected order: %s", got)
	}
}
