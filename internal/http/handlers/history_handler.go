package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"railmate/internal/modules/history"
)

type HistoryHandler struct {
	history *history.Service
	log     *zap.Logger
}

func NewHistoryHandler(svc *history.Service, log *zap.Logger) *HistoryHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HistoryHandler{history: svc, log: log}
}

// Recent handles GET /api/analyses/recent?limit=N.
func (h *HistoryHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, history.ErrBadLimit) {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("list recent analyses", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"analyses": records})
}
