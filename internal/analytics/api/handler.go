package analytics_api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/analytics"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/campaigns"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/logger"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/metrics"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/scans"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/utils"
)

// Handler serves the public surface: the scan-and-redirect hot path, the
// campaign validate probe and the client stats endpoint.
type Handler struct {
	Analytics *analytics.Service
	Scans     *scans.ScanService
	Campaigns *campaigns.CampaignService
	Logger    *logger.Logger
}

func NewHandler(analyticsService *analytics.Service, scanService *scans.ScanService, campaignService *campaigns.CampaignService, log *logger.Logger) *Handler {
	return &Handler{
		Analytics: analyticsService,
		Scans:     scanService,
		Campaigns: campaignService,
		Logger:    log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/scan/{campaignCode}", h.ScanAndRedirect)
	r.Route("/api/campaigns/{campaignCode}", func(r chi.Router) {
		r.Get("/validate", h.ValidateCampaign)
		r.Get("/stats", h.GetCampaignStats)
	})
}

// ScanAndRedirect records the scan best-effort and redirects to the target
// URL. A failed write is logged and swallowed; the visitor is never shown an
// error because logging broke.
func (h *Handler) ScanAndRedirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "campaignCode")

	if !utils.IsValidCampaignCode(code) {
		metrics.RecordScanOutcome("rejected")
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}

	campaign, err := h.Campaigns.Get(r.Context(), code)
	if err != nil {
		h.Logger.Error("SCAN", fmt.Sprintf("campaign lookup failed for %s: %v", code, err))
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}
	if campaign == nil || !campaign.Active || campaign.Archived {
		metrics.RecordScanOutcome("rejected")
		http.Error(w, "Campaign not found or inactive", http.StatusNotFound)
		return
	}

	ip := clientIP(r)
	userAgent := r.Header.Get("User-Agent")

	if _, err := h.Scans.Record(r.Context(), code, ip, userAgent); err != nil {
		// Best-effort logging: the redirect happens regardless.
		metrics.RecordScanOutcome("failed")
		h.Logger.Error("SCAN", fmt.Sprintf("failed to record scan for %s: %v", code, err))
	} else {
		metrics.RecordScanOutcome("recorded")
		h.Logger.LogScan(code, "scan recorded")
	}

	http.Redirect(w, r, campaign.TargetURL, http.StatusFound)
}

// ValidateCampaign lets the client dashboard check whether a code exists and
// is viewable, without exposing anything else.
func (h *Handler) ValidateCampaign(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "campaignCode")

	resp := models.CampaignValidateResponse{}

	campaign, err := h.Campaigns.Get(r.Context(), code)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("validate lookup failed for %s: %v", code, err))
	}
	if campaign != nil {
		resp.Exists = true
		resp.AccessEnabled = campaign.ClientAccessEnabled && !campaign.Archived
		if campaign.ClientAccessEnabled {
			resp.BusinessName = campaign.BusinessName
		}
	}

	sendJSON(w, http.StatusOK, resp)
}

// GetCampaignStats returns the aggregator output, or 404 when the campaign
// is unknown or client access is disabled. The two cases are externally
// indistinguishable.
func (h *Handler) GetCampaignStats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "campaignCode")

	start := time.Now()
	stats, err := h.Analytics.CampaignAnalytics(r.Context(), code)
	if err != nil {
		metrics.RecordAnalyticsDuration("failure", time.Since(start).Seconds())
		h.Logger.Error("ANALYTICS", fmt.Sprintf("failed to compute analytics for %s: %v", code, err))
		http.Error(w, "Failed to compute analytics", http.StatusInternalServerError)
		return
	}
	if stats == nil {
		metrics.RecordAnalyticsDuration("absent", time.Since(start).Seconds())
		http.Error(w, "Campaign not found or access disabled", http.StatusNotFound)
		return
	}
	metrics.RecordAnalyticsDuration("success", time.Since(start).Seconds())

	sendJSON(w, http.StatusOK, stats)
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
