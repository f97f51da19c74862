package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chatledger/backend/internal/api/httpx"
	"github.com/chatledger/backend/internal/api/validate"
	"github.com/chatledger/backend/internal/services"
)

type UserHandler struct {
	Users *services.UserService
	Query *services.QueryService
}

type createUserRequest struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	EmailVerified *bool  `json:"emailVerified"`
}

type createUserResponse struct {
	Message       string `json:"message"`
	EmailVerified bool   `json:"emailVerified"`
}

// POST /api/create-user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !validate.Required(req.Email) || !validate.Required(req.Name) || !validate.Required(req.Username) {
		httpx.WriteError(w, http.StatusBadRequest, "Email, name, and username are required.")
		return
	}
	if !validate.Email(req.Email) {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	emailVerified := true
	if req.EmailVerified != nil {
		emailVerified = *req.EmailVerified
	}

	user, generated, err := h.Users.Create(r.Context(), services.CreateUserParams{
		Email:         req.Email,
		Name:          req.Name,
		Username:      req.Username,
		Password:      req.Password,
		EmailVerified: emailVerified,
	})
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			httpx.WriteError(w, http.StatusConflict, "A user with that email or username already exists")
			return
		}
		httpx.WriteInternal(w, err)
		return
	}

	if generated != "" {
		// Operator convenience: the temporary password is reported once,
		// in the server log, and stored only as a hash.
		slog.Info("generated temporary password", "user", user.Email)
	}

	httpx.WriteJSON(w, http.StatusCreated, createUserResponse{
		Message:       "User created successfully",
		EmailVerified: user.EmailVerified,
	})
}

// GET /api/user-conversations?email=&password=
func (h *UserHandler) UserConversations(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	password := r.URL.Query().Get("password")

	if email == "" || password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if !validate.Email(email) {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	view, err := h.Query.UserConversations(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "No user with that email was found")
		case errors.Is(err, services.ErrUnauthorized):
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid password")
		default:
			httpx.WriteInternal(w, err)
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}
