// README: Booking analysis handler (validate, analyze, map outcome to status and body).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"railmate/internal/ai"
	"railmate/internal/modules/booking"
)

const (
	msgInvalidBody    = "Invalid request body"
	msgAnalyzeFailure = "Failed to analyze booking options"
)

type AnalyzeHandler struct {
	booking *booking.Service
	log     *zap.Logger
}

func NewAnalyzeHandler(svc *booking.Service, log *zap.Logger) *AnalyzeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnalyzeHandler{booking: svc, log: log}
}

// configRequiredResponse is an AnalysisResult placeholder plus the error text,
// so clients render it like a real analysis.
type configRequiredResponse struct {
	Error string `json:"error"`
	booking.AnalysisResult
}

// Analyze handles POST /api/analyze.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req booking.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Info("rejecting undecodable analyze request", zap.Error(err))
		writeError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	q, err := booking.Validate(req)
	if err != nil {
		var verr *booking.ValidationError
		if errors.As(err, &verr) {
			writeError(c, http.StatusBadRequest, verr.Message)
			return
		}
		h.log.Error("validate analyze request", zap.Error(err))
		writeError(c, http.StatusInternalServerError, msgAnalyzeFailure)
		return
	}

	res, err := h.booking.Analyze(c.Request.Context(), q)
	switch {
	case err == nil:
		writeJSON(c, http.StatusOK, res)
	case errors.Is(err, ai.ErrNotConfigured):
		info := h.booking.Provider()
		h.log.Warn("completion provider not configured", zap.String("provider", info.Name), zap.String("env", info.CredentialEnv))
		msg, placeholder := booking.ConfigurationPlaceholder(info)
		writeJSON(c, http.StatusOK, configRequiredResponse{Error: msg, AnalysisResult: placeholder})
	case c.Request.Context().Err() != nil:
		// Client went away; nobody is left to read a response.
		h.log.Info("analyze request cancelled by client", zap.Error(err))
		c.Abort()
	default:
		h.log.Error("analyze booking", zap.Error(err),
			zap.String("source", q.Source), zap.String("destination", q.Destination))
		writeError(c, http.StatusInternalServerError, msgAnalyzeFailure)
	}
}
