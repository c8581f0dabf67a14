package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Campaign struct {
	bun.BaseModel `bun:"table:campaigns"`

	ID                  string     `bun:"id,pk" json:"id"`
	CampaignCode        string     `bun:"campaign_code,unique,notnull" json:"campaign_code"`
	BusinessName        string     `bun:"business_name,notnull" json:"business_name"`
	TargetURL           string     `bun:"target_url,notnull" json:"target_url"`
	Description         string     `bun:"description,nullzero" json:"description,omitempty"`
	CreatedAt           time.Time  `bun:"created_at,notnull" json:"created_at"`
	Active              bool       `bun:"active" json:"active"`
	ClientAccessEnabled bool       `bun:"client_access_enabled" json:"client_access_enabled"`
	Archived            bool       `bun:"archived" json:"archived"`
	ArchivedAt          *time.Time `bun:"archived_at,nullzero" json:"archived_at,omitempty"`
}

type CampaignCreateRequest struct {
	BusinessName string `json:"business_name"`
	TargetURL    string `json:"target_url"`
	Description  string `json:"description,omitempty"`
}

// CampaignUpdateRequest carries a partial update. Pointer fields distinguish
// "not supplied" from zero values.
type CampaignUpdateRequest struct {
	BusinessName        *string `json:"business_name,omitempty"`
	TargetURL           *string `json:"target_url,omitempty"`
	Description         *string `json:"description,omitempty"`
	Active              *bool   `json:"active,omitempty"`
	ClientAccessEnabled *bool   `json:"client_access_enabled,omitempty"`
}

type CampaignValidateResponse struct {
	Exists        bool   `json:"exists"`
	AccessEnabled bool   `json:"access_enabled"`
	BusinessName  string `json:"business_name,omitempty"`
}

// CampaignStats is the admin-facing per-campaign summary.
type CampaignStats struct {
	CampaignCode        string    `json:"campaign_code"`
	BusinessName        string    `json:"business_name"`
	TotalScans          int       `json:"total_scans"`
	UniqueVisitors      int       `json:"unique_visitors"`
	RecentScans         int       `json:"recent_scans"`
	CreatedAt           time.Time `json:"created_at"`
	Active              bool      `json:"active"`
	ClientAccessEnabled bool      `json:"client_access_enabled"`
	Archived            bool      `json:"archived"`
}

type CampaignSummary struct {
	CampaignCode string    `json:"campaign_code"`
	BusinessName string    `json:"business_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// DashboardStats aggregates across all campaigns for the admin landing page.
type DashboardStats struct {
	TotalCampaigns  int               `json:"total_campaigns"`
	ActiveCampaigns int               `json:"active_campaigns"`
	TotalScans      int               `json:"total_scans"`
	ScansToday      int               `json:"scans_today"`
	RecentCampaigns []CampaignSummary `json:"recent_campaigns"`
}
