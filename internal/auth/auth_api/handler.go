package auth_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/auth"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/logger"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
)

type Handler struct {
	Auth   *auth.AuthService
	Logger *logger.Logger
}

func NewHandler(authService *auth.AuthService, log *logger.Logger) *Handler {
	return &Handler{Auth: authService, Logger: log}
}

// RegisterPublicRoutes mounts the endpoints that must work without a token.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/admin/login", h.Login)
}

// RegisterProtectedRoutes mounts the endpoints that require a valid token.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	token, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.Logger.LogSecurity("LOGIN_FAILED", fmt.Sprintf("rejected login for %s", req.Email))
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Login failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.Logger.LogSecurity("LOGIN", fmt.Sprintf("admin %s logged in", req.Email))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(token)
}

// Logout is stateless: tokens expire on their own. The endpoint exists so
// the dashboard has something to call and the event shows up in the log.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if email := auth.AdminEmail(r.Context()); email != "" {
		h.Logger.LogSecurity("LOGOUT", fmt.Sprintf("admin %s logged out", email))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"message":"logged out"}`))
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	email := auth.AdminEmail(r.Context())
	if email == "" {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	user, err := h.Auth.CurrentUser(r.Context(), email)
	if err != nil {
		http.Error(w, "Failed to fetch user: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
