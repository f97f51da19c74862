package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/chatledger/backend/internal/api/httpx"
	"github.com/chatledger/backend/internal/auth"
	"github.com/chatledger/backend/internal/services"
)

type AuthHandler struct {
	TM    *auth.TokenManager
	Users *services.UserService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) || errors.Is(err, services.ErrUnauthorized) {
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		httpx.WriteInternal(w, err)
		return
	}

	access, refresh, exp, err := h.TM.GeneratePair(user.ID)
	if err != nil {
		httpx.WriteInternal(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(time.Until(exp).Seconds()),
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	claims, isRefresh, err := h.TM.Parse(req.RefreshToken)
	if err != nil || !isRefresh {
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	access, refresh, exp, err := h.TM.GeneratePair(claims.UserID)
	if err != nil {
		httpx.WriteInternal(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(time.Until(exp).Seconds()),
	})
}
