// README: Tests for logging, recovery, rate limiting and CORS middleware.
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"railmate/internal/http/middleware"
)

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": middleware.RequestID(c)})
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func do(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:5555"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogging_AssignsRequestID(t *testing.T) {
	r := newTestRouter(middleware.Logging(zap.NewNop()))
	w := do(r, http.MethodGet, "/test", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("expected a generated request id header")
	}
}

func TestLogging_KeepsCallerRequestID(t *testing.T) {
	r := newTestRouter(middleware.Logging(zap.NewNop()))
	w := do(r, http.MethodGet, "/test", map[string]string{middleware.RequestIDHeader: "abc-123"})
	if got := w.Header().Get(middleware.RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected caller request id, got %q", got)
	}
}

func TestRecovery_ReturnsInternalError(t *testing.T) {
	r := newTestRouter(middleware.Recovery(zap.NewNop()))
	w := do(r, http.MethodGet, "/panic", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	r := newTestRouter(middleware.RateLimit(1, 2, zap.NewNop()))
	for i := 0; i < 2; i++ {
		if w := do(r, http.MethodGet, "/test", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := do(r, http.MethodGet, "/test", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", w.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newTestRouter(middleware.RateLimit(0, 0, zap.NewNop()))
	for i := 0; i < 20; i++ {
		if w := do(r, http.MethodGet, "/test", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	r := newTestRouter(middleware.CORS([]string{"https://form.example"}))
	w := do(r, http.MethodGet, "/test", map[string]string{"Origin": "https://form.example"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://form.example" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}

func TestCORS_Wildcard(t *testing.T) {
	r := newTestRouter(middleware.CORS([]string{"*"}))
	w := do(r, http.MethodGet, "/test", map[string]string{"Origin": "https://anywhere.example"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}
