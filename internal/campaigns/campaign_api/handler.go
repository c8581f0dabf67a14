package campaign_api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/analytics"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/campaigns"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/export"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/logger"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/metrics"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/qr"
)

// Handler serves the authenticated admin surface: campaign CRUD, QR asset
// downloads, per-campaign stats and the dashboard rollup.
type Handler struct {
	Campaigns *campaigns.CampaignService
	Analytics *analytics.Service
	QR        *qr.Generator
	Logger    *logger.Logger
}

func NewHandler(campaignService *campaigns.CampaignService, analyticsService *analytics.Service, qrGenerator *qr.Generator, log *logger.Logger) *Handler {
	return &Handler{
		Campaigns: campaignService,
		Analytics: analyticsService,
		QR:        qrGenerator,
		Logger:    log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/campaigns", h.ListCampaigns)
	r.Post("/campaigns", h.CreateCampaign)
	r.Get("/dashboard/stats", h.DashboardStats)
	r.Route("/campaigns/{campaignCode}", func(r chi.Router) {
		r.Get("/", h.GetCampaign)
		r.Put("/", h.UpdateCampaign)
		r.Put("/archive", h.ArchiveCampaign)
		r.Put("/access", h.SetClientAccess)
		r.Get("/stats", h.CampaignStats)
		r.Get("/qr", h.DownloadQR)
		r.Get("/export", h.ExportAnalytics)
	})
}

func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req models.CampaignCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.BusinessName == "" || req.TargetURL == "" {
		http.Error(w, "business_name and target_url are required", http.StatusBadRequest)
		return
	}

	campaign, err := h.Campaigns.Create(r.Context(), req)
	if err != nil {
		http.Error(w, "Failed to create campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.CampaignsCreated.Inc()
	h.Logger.LogCampaign("CREATE", campaign.CampaignCode, fmt.Sprintf("created for %s", campaign.BusinessName))

	sendJSON(w, http.StatusCreated, campaign)
}

func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	list, err := h.Campaigns.List(r.Context(), includeArchived)
	if err != nil {
		http.Error(w, "Failed to fetch campaigns: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusOK, list)
}

func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "campaignCode")

	campaign, err := h.Campaigns.Get(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to fetch campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if campaign == nil {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}

	sendJSON(w, http.StatusOK, campaign)
}

func (h *Handler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "campaignCode")

	var req models.CampaignUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	campaign, err := h.Campaigns.Update(r.Context(), code, req)
	if err != nil {
		http.Error(w, "Failed to update campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if campaign == nil {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}
	h.Logger.LogCampaign("UPDATE", code, "campaign updated")

	sendJSON(w, http.StatusOK, campaign)
}

// ArchiveCampaign soft-deletes. The scan log is retained and the code is
// never reissued.
func (h *Handler) ArchiveCampaign(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "campaignCode")

	campaign, err := h.Campaigns.Archive(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to archive campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if campaign == nil {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}
	h.Logger.LogCampaign("ARCHIVE", code, "campaign archived")

	sendJSON(w, http.StatusOK, campaign)
}

func (h *Handler) SetClientAccess(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "campaignCode")

	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Enabled == nil {
		http.Error(w, "enabled is required", http.StatusBadRequest)
		return
	}

	campaign, err := h.Campaigns.SetClientAccess(r.Context(), code, *req.Enabled)
	if err != nil {
		http.Error(w, "Failed to update client access: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if campaign == nil {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}
	h.Logger.LogCampaign("ACCESS", code, fmt.Sprintf("client access set to %t", *req.Enabled))

	sendJSON(w, http.StatusOK, campaign)
}

func (h *Handler) CampaignStats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "campaignCode")

	stats, err := h.Campaigns.GetCampaignStats(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to fetch stats: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if stats == nil {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}

	sendJSON(w, http.StatusOK, stats)
}

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Campaigns.GetDashboardStats(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch dashboard stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusOK, stats)
}

// DownloadQR returns the campaign's QR code as a PNG attachment. The size
// query parameter is clamped by the generator.
func (h *Handler) DownloadQR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "campaignCode")

	campaign, err := h.Campaigns.Get(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to fetch campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if campaign == nil {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}

	// PNG is the only supported format today.
	if format := r.URL.Query().Get("format"); format != "" && format != "png" {
		http.Error(w, "unsupported format: "+format, http.StatusBadRequest)
		return
	}

	size := qr.DefaultSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "size must be an integer", http.StatusBadRequest)
			return
		}
		size = parsed
	}

	png, err := h.QR.GeneratePNG(code, size)
	if err != nil {
		http.Error(w, "Failed to generate QR code: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "qr-"+code+".png"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// ExportAnalytics streams the campaign's analytics as an xlsx workbook.
// Unlike the client stats endpoint it ignores the client access flag: an
// admin can always export.
func (h *Handler) ExportAnalytics(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "campaignCode")

	campaign, err := h.Campaigns.Get(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to fetch campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if campaign == nil {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}

	stats, err := h.Analytics.CampaignAnalyticsForAdmin(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to compute analytics: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if stats == nil {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}

	workbook, err := export.Workbook(stats)
	if err != nil {
		h.Logger.Error("EXPORT", fmt.Sprintf("failed to build workbook for %s: %v", code, err))
		http.Error(w, "Failed to build export: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("analytics-%s-%s.xlsx", code, time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = bytes.NewReader(workbook).WriteTo(w)
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
