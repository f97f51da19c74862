package handlers

import (
	"net/http"
	"strconv"

	"github.com/chatledger/backend/internal/api/httpx"
	"github.com/chatledger/backend/internal/middleware"
	repo "github.com/chatledger/backend/internal/repository"
)

type TransactionHandler struct {
	Transactions repo.Transactions
}

// GET /api/transactions?limit=&offset=
// Lists the authenticated caller's own transaction history, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Missing authentication")
		return
	}

	limit, offset := 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	txns, err := h.Transactions.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		httpx.WriteInternal(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, txns)
}
