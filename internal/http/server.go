// README: API gateway; builds the gin engine, middleware chain and routes.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"railmate/internal/http/handlers"
	"railmate/internal/http/middleware"
	"railmate/internal/modules/booking"
	"railmate/internal/modules/history"
)

type ServerDeps struct {
	Booking *booking.Service
	// History is optional; without it the history route is not registered.
	History *history.Service
	Logger  *zap.Logger

	RateLimitPerMinute int
	RateLimitBurst     int
	CORSOrigins        []string
}

type Server struct {
	booking *booking.Service
	history *history.Service
	log     *zap.Logger
	deps    ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		booking: deps.Booking,
		history: deps.History,
		log:     log,
		deps:    deps,
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(
		middleware.Logging(s.log),
		middleware.Recovery(s.log),
		middleware.CORS(s.deps.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.RateLimit(s.deps.RateLimitPerMinute, s.deps.RateLimitBurst, s.log))

	analyzeHandler := handlers.NewAnalyzeHandler(s.booking, s.log)
	api.POST("/analyze", analyzeHandler.Analyze)

	if s.history != nil {
		historyHandler := handlers.NewHistoryHandler(s.history, s.log)
		api.GET("/analyses/recent", historyHandler.Recent)
	}
	return r
}
