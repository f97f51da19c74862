package handlers

import (
	"net/http"

	"github.com/chatledger/backend/internal/api/httpx"
	"github.com/chatledger/backend/internal/services"
)

type StatsHandler struct {
	Query *services.QueryService
}

// GET /api/user-stats
func (h *StatsHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Query.AggregateUserStats(r.Context())
	if err != nil {
		httpx.WriteInternal(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}
