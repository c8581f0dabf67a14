package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Scan is one recorded QR scan. Rows are append-only: nothing in the normal
// request path ever updates or deletes a scan.
type Scan struct {
	bun.BaseModel `bun:"table:scans"`

	ID            string    `bun:"id,pk" json:"id"`
	CampaignCode  string    `bun:"campaign_code,notnull" json:"campaign_code"`
	AnonymousKey  string    `bun:"anonymous_key,notnull" json:"anonymous_key"`
	Timestamp     time.Time `bun:"timestamp,notnull" json:"timestamp"`
	IPAddress     string    `bun:"ip_address,nullzero" json:"-"`
	City          *string   `bun:"city,nullzero" json:"city,omitempty"`
	Country       *string   `bun:"country,nullzero" json:"country,omitempty"`
	DeviceType    string    `bun:"device_type" json:"device_type"`
	UserAgentHash string    `bun:"user_agent_hash,nullzero" json:"-"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at"`
}

// ScanActivity is the public projection of a scan used in recent-activity
// feeds. The raw IP never leaves the scans table.
type ScanActivity struct {
	Timestamp  time.Time `json:"timestamp"`
	City       *string   `json:"city"`
	Country    *string   `json:"country"`
	DeviceType string    `json:"device_type"`
}

type DailyBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type HourlyBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type CityBucket struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// CampaignAnalytics is the full aggregator output for one campaign.
type CampaignAnalytics struct {
	CampaignCode    string         `json:"campaign_code"`
	BusinessName    string         `json:"business_name"`
	TargetURL       string         `json:"target_url"`
	CreatedAt       time.Time      `json:"created_at"`
	TotalScans      int            `json:"total_scans"`
	UniqueVisitors  int            `json:"unique_visitors"`
	ScansToday      int            `json:"scans_today"`
	ScansThisWeek   int            `json:"scans_this_week"`
	RecentActivity  []ScanActivity `json:"recent_activity"`
	GeographicData  []CityBucket   `json:"geographic_data"`
	DeviceBreakdown map[string]int `json:"device_breakdown"`
	DailyData       []DailyBucket  `json:"daily_data"`
	HourlyData      []HourlyBucket `json:"hourly_data"`
}
