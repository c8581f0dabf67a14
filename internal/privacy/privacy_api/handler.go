package privacy_api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/logger"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/privacy"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/utils"
)

type Handler struct {
	Privacy *privacy.PrivacyService
	Logger  *logger.Logger
}

func NewHandler(privacyService *privacy.PrivacyService, log *logger.Logger) *Handler {
	return &Handler{Privacy: privacyService, Logger: log}
}

// RegisterPublicRoutes mounts the visitor-facing submission endpoint.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/api/privacy/requests", h.SubmitRequest)
}

// RegisterAdminRoutes mounts the review endpoints; the caller wraps them in
// the auth middleware.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/privacy/requests", h.ListRequests)
	r.Put("/privacy/requests/{requestID}/status", h.SetRequestStatus)
}

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email        string `json:"email"`
		RequestType  string `json:"request_type"`
		AnonymousKey string `json:"anonymous_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	created, err := h.Privacy.Submit(r.Context(), req.Email, req.RequestType, req.AnonymousKey)
	if err != nil {
		if errors.Is(err, privacy.ErrInvalidRequestType) {
			sendEnvelope(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request type", err.Error()))
			return
		}
		http.Error(w, "Failed to submit request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.Logger.Info("PRIVACY", "privacy request submitted: "+created.RequestType)

	sendEnvelope(w, http.StatusCreated, utils.SuccessResponse("Privacy request submitted", created))
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Privacy.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch requests: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(requests)
}

func (h *Handler) SetRequestStatus(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.Privacy.SetStatus(r.Context(), requestID, req.Status)
	if err != nil {
		if errors.Is(err, privacy.ErrInvalidStatus) {
			sendEnvelope(w, http.StatusBadRequest, utils.ErrorResponse("Invalid status", err.Error()))
			return
		}
		http.Error(w, "Failed to update request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if updated == nil {
		http.Error(w, "Request not found", http.StatusNotFound)
		return
	}
	h.Logger.Info("PRIVACY", "privacy request "+requestID+" set to "+req.Status)

	sendEnvelope(w, http.StatusOK, utils.SuccessResponse("Privacy request updated", updated))
}

func sendEnvelope(w http.ResponseWriter, status int, resp utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
