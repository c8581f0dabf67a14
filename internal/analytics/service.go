package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/logger"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/utils"
)

const (
	recentActivityLimit = 10
	cityBreakdownLimit  = 10
	dailyWindowDays     = 30
)

type AnalyticsDBLayer interface {
	CountScans(ctx context.Context, code string) (int, error)
	CountUniqueVisitors(ctx context.Context, code string) (int, error)
	CountScansSince(ctx context.Context, code string, since time.Time) (int, error)
	CountScansBetween(ctx context.Context, code string, from, to time.Time) (int, error)
	GetRecentScans(ctx context.Context, code string, limit int) ([]models.Scan, error)
	GetScansSince(ctx context.Context, code string, since time.Time) ([]models.Scan, error)
	GetDeviceBreakdown(ctx context.Context, code string) (map[string]int, error)
	GetCityBreakdown(ctx context.Context, code string, limit int) ([]models.CityBucket, error)
}

type CampaignLookup interface {
	GetCampaignByCode(ctx context.Context, code string) (*models.Campaign, error)
}

// Service computes every dashboard view fresh from the scan log on each call.
// There are no rollups and no cache; results are read-committed snapshots.
type Service struct {
	DB        AnalyticsDBLayer
	Campaigns CampaignLookup
	Logger    *logger.Logger
}

func NewService(db AnalyticsDBLayer, campaigns CampaignLookup, log *logger.Logger) *Service {
	return &Service{DB: db, Campaigns: campaigns, Logger: log}
}

// CampaignAnalytics returns the full summary for one campaign, or (nil, nil)
// when the campaign is unknown, the code malformed, or client access is
// disabled. Callers never receive partial analytics for an access-disabled
// campaign.
func (s *Service) CampaignAnalytics(ctx context.Context, code string) (*models.CampaignAnalytics, error) {
	if !utils.IsValidCampaignCode(code) {
		return nil, nil
	}

	campaign, err := s.Campaigns.GetCampaignByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up campaign %s: %w", code, err)
	}
	if campaign == nil || !campaign.ClientAccessEnabled {
		return nil, nil
	}

	return s.compute(ctx, campaign)
}

// CampaignAnalyticsForAdmin is the same summary without the client access
// gate. It still returns (nil, nil) for unknown or malformed codes.
func (s *Service) CampaignAnalyticsForAdmin(ctx context.Context, code string) (*models.CampaignAnalytics, error) {
	if !utils.IsValidCampaignCode(code) {
		return nil, nil
	}

	campaign, err := s.Campaigns.GetCampaignByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up campaign %s: %w", code, err)
	}
	if campaign == nil {
		return nil, nil
	}

	return s.compute(ctx, campaign)
}

func (s *Service) compute(ctx context.Context, campaign *models.Campaign) (*models.CampaignAnalytics, error) {
	code := campaign.CampaignCode
	now := time.Now().UTC()
	midnight := now.Truncate(24 * time.Hour)
	tomorrow := midnight.Add(24 * time.Hour)

	totalScans, err := s.DB.CountScans(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to count scans for %s: %w", code, err)
	}
	uniqueVisitors, err := s.DB.CountUniqueVisitors(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to count unique visitors for %s: %w", code, err)
	}
	scansToday, err := s.DB.CountScansBetween(ctx, code, midnight, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's scans for %s: %w", code, err)
	}
	scansThisWeek, err := s.DB.CountScansSince(ctx, code, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("failed to count this week's scans for %s: %w", code, err)
	}

	recent, err := s.DB.GetRecentScans(ctx, code, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent scans for %s: %w", code, err)
	}
	recentActivity := make([]models.ScanActivity, 0, len(recent))
	for _, scan := range recent {
		recentActivity = append(recentActivity, models.ScanActivity{
			Timestamp:  scan.Timestamp,
			City:       scan.City,
			Country:    scan.Country,
			DeviceType: scan.DeviceType,
		})
	}

	geographic, err := s.DB.GetCityBreakdown(ctx, code, cityBreakdownLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch city breakdown for %s: %w", code, err)
	}

	devices, err := s.DB.GetDeviceBreakdown(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch device breakdown for %s: %w", code, err)
	}

	// The derived series degrade to empty on read failure instead of failing
	// the whole response.
	daily := s.dailySeries(ctx, code, midnight)
	hourly := s.hourlySeries(ctx, code, midnight)

	return &models.CampaignAnalytics{
		CampaignCode:    campaign.CampaignCode,
		BusinessName:    campaign.BusinessName,
		TargetURL:       campaign.TargetURL,
		CreatedAt:       campaign.CreatedAt,
		TotalScans:      totalScans,
		UniqueVisitors:  uniqueVisitors,
		ScansToday:      scansToday,
		ScansThisWeek:   scansThisWeek,
		RecentActivity:  recentActivity,
		GeographicData:  geographic,
		DeviceBreakdown: devices,
		DailyData:       daily,
		HourlyData:      hourly,
	}, nil
}

// dailySeries buckets the trailing 30 days of scans by UTC calendar date.
// Grouping happens here rather than in SQL so the series is identical on any
// store engine. Days without scans are omitted, not zero-filled.
func (s *Service) dailySeries(ctx context.Context, code string, midnight time.Time) []models.DailyBucket {
	windowStart := midnight.AddDate(0, 0, -dailyWindowDays)

	scans, err := s.DB.GetScansSince(ctx, code, windowStart)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("ANALYTICS", fmt.Sprintf("daily series degraded to empty for %s: %v", code, err))
		}
		return []models.DailyBucket{}
	}

	counts := make(map[string]int)
	for _, scan := range scans {
		counts[scan.Timestamp.UTC().Format("2006-01-02")]++
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]models.DailyBucket, 0, len(dates))
	for _, date := range dates {
		series = append(series, models.DailyBucket{Date: date, Count: counts[date]})
	}
	return series
}

// hourlySeries buckets today's scans by UTC hour of day, 0-23 ascending.
// Hours without scans are omitted.
func (s *Service) hourlySeries(ctx context.Context, code string, midnight time.Time) []models.HourlyBucket {
	scans, err := s.DB.GetScansSince(ctx, code, midnight)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("ANALYTICS", fmt.Sprintf("hourly series degraded to empty for %s: %v", code, err))
		}
		return []models.HourlyBucket{}
	}

	counts := make(map[int]int)
	for _, scan := range scans {
		counts[scan.Timestamp.UTC().Hour()]++
	}

	series := make([]models.HourlyBucket, 0, len(counts))
	for hour := 0; hour < 24; hour++ {
		if count, ok := counts[hour]; ok {
			series = append(series, models.HourlyBucket{Hour: hour, Count: count})
		}
	}
	return series
}
