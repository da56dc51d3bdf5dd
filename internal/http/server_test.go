package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"railmate/internal/ai"
	"railmate/internal/modules/booking"
)

func newTestServer() http.Handler {
	gin.SetMode(gin.TestMode)
	svc := booking.NewService(ai.NewOpenAIProvider("", "", ai.Options{}), nil)
	return NewServer(ServerDeps{Booking: svc, CORSOrigins: []string{"*"}}).Routes()
}

func TestRoutes_Health(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatalf("unexpected health response %d %q", w.Code, w.Body.String())
	}
}

func TestRoutes_HistoryDisabled(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyses/recent", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without history, got %d", w.Code)
	}
}

func TestRoutes_AnalyzeWrongMethod(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))
	if w.Code == http.StatusOK {
		t.Fatal("GET /api/analyze must not succeed")
	}
}
