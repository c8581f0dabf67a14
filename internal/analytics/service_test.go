package analytics_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/analytics"
	analytics_db "github.com/abdul-aleem23/AnalyticsCo-backend/internal/analytics/db"
	campaign_db "github.com/abdul-aleem23/AnalyticsCo-backend/internal/campaigns/db"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/identity"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
)

const testCode = "Qr7Xc2mVp9Fh3K"

func setupAnalytics(t *testing.T) (*analytics.Service, *bun.DB) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	if err := bunDB.ResetModel(ctx, (*models.Campaign)(nil)); err != nil {
		t.Fatalf("Failed to create campaigns table: %v", err)
	}
	if err := bunDB.ResetModel(ctx, (*models.Scan)(nil)); err != nil {
		t.Fatalf("Failed to create scans table: %v", err)
	}

	service := analytics.NewService(analytics_db.NewDB(bunDB), &campaign_db.DB{Bun: bunDB}, nil)
	return service, bunDB
}

func insertCampaign(t *testing.T, bunDB *bun.DB, accessEnabled bool) {
	campaign := models.Campaign{
		ID:                  uuid.New().String(),
		CampaignCode:        testCode,
		BusinessName:        "Corner Coffee",
		TargetURL:           "https://example.com/menu",
		CreatedAt:           time.Now().UTC().AddDate(0, 0, -10),
		Active:              true,
		ClientAccessEnabled: accessEnabled,
	}
	if _, err := bunDB.NewInsert().Model(&campaign).Exec(context.Background()); err != nil {
		t.Fatalf("Failed to insert campaign: %v", err)
	}
}

func insertScan(t *testing.T, bunDB *bun.DB, ts time.Time, ip, device string, city *string) {
	scan := models.Scan{
		ID:           uuid.New().String(),
		CampaignCode: testCode,
		AnonymousKey: identity.DeriveAnonymousKey(ip, "test-agent", ts),
		Timestamp:    ts,
		IPAddress:    ip,
		City:         city,
		DeviceType:   device,
		CreatedAt:    ts,
	}
	if _, err := bunDB.NewInsert().Model(&scan).Exec(context.Background()); err != nil {
		t.Fatalf("Failed to insert scan: %v", err)
	}
}

func TestCampaignAnalyticsEmptyLog(t *testing.T) {
	service, bunDB := setupAnalytics(t)
	defer bunDB.Close()
	insertCampaign(t, bunDB, true)

	result, err := service.CampaignAnalytics(context.Background(), testCode)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 0, result.TotalScans)
	assert.Equal(t, 0, result.UniqueVisitors)
	assert.Equal(t, 0, result.ScansToday)
	assert.Equal(t, 0, result.ScansThisWeek)
	assert.Empty(t, result.RecentActivity)
	assert.Empty(t, result.GeographicData)
	assert.Empty(t, result.DeviceBreakdown)
	assert.Empty(t, result.DailyData)
	assert.Empty(t, result.HourlyData)
}

func TestCampaignAnalyticsUnknownCampaign(t *testing.T) {
	service, bunDB := setupAnalytics(t)
	defer bunDB.Close()

	result, err := service.CampaignAnalytics(context.Background(), testCode)
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestCampaignAnalyticsMalformedCode(t *testing.T) {
	service, bunDB := setupAnalytics(t)
	defer bunDB.Close()

	result, err := service.CampaignAnalytics(context.Background(), "'; DROP TABLE scans")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestCampaignAnalyticsAccessDisabled(t *testing.T) {
	service, bunDB := setupAnalytics(t)
	defer bunDB.Close()
	insertCampaign(t, bunDB, false)
	insertScan(t, bunDB, time.Now().UTC(), "198.51.100.1", identity.DeviceMobile, nil)

	result, err := service.CampaignAnalytics(context.Background(), testCode)
	assert.NoError(t, err)
	assert.Nil(t, result)

	// The admin view ignores the flag.
	adminResult, err := service.CampaignAnalyticsForAdmin(context.Background(), testCode)
	assert.NoError(t, err)
	assert.NotNil(t, adminResult)
	assert.Equal(t, 1, adminResult.TotalScans)
}

func TestCampaignAnalyticsUniqueVisitors(t *testing.T) {
	service, bunDB := setupAnalytics(t)
	defer bunDB.Close()
	insertCampaign(t, bunDB, true)

	// Same IP and agent at the same second produce the same anonymous key.
	ts := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		insertScan(t, bunDB, ts, "198.51.100.1", identity.DeviceMobile, nil)
	}
	insertScan(t, bunDB, ts, "198.51.100.2", identity.DeviceDesktop, nil)

	result, err := service.CampaignAnalytics(context.Background(), testCode)

	assert.NoError(t, err)
	assert.Equal(t, 4, result.TotalScans)
	assert.Equal(t, 2, result.UniqueVisitors)
}

func TestCampaignAnalyticsHourlySeries(t *testing.T) {
	service, bunDB := setupAnalytics(t)
	defer bunDB.Close()
	insertCampaign(t, bunDB, true)

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	insertScan(t, bunDB, midnight.Add(9*time.Hour), "198.51.100.1", identity.DeviceMobile, nil)
	insertScan(t, bunDB, midnight.Add(9*time.Hour+30*time.Minute), "198.51.100.2", identity.DeviceMobile, nil)
	insertScan(t, bunDB, midnight.Add(14*time.Hour), "198.51.100.3", identity.DeviceDesktop, nil)
	// Yesterday's scan never shows up in the hourly view.
	insertScan(t, bunDB, midnight.Add(-2*time.Hour), "198.51.100.4", identity.DeviceTablet, nil)

	result, err := service.CampaignAnalytics(context.Background(), testCode)

	assert.NoError(t, err)
	assert.Equal(t, []models.HourlyBucket{
		{Hour: 9, Count: 2},
		{Hour: 14, Count: 1},
	}, result.HourlyData)
}

func TestCampaignAnalyticsDailySeries(t *testing.T) {
	service, bunDB := setupAnalytics(t)
	defer bunDB.Close()
	insertCampaign(t, bunDB, true)

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	days := []int{0, 0, -1, -5}
	for i, offset := range days {
		ip := fmt.Sprintf("198.51.100.%d", i+1)
		insertScan(t, bunDB, midnight.AddDate(0, 0, offset).Add(10*time.Hour), ip, identity.DeviceMobile, nil)
	}
	// Outside the trailing window.
	insertScan(t, bunDB, midnight.AddDate(0, 0, -31), "198.51.100.99", identity.DeviceMobile, nil)

	result, err := service.CampaignAnalytics(context.Background(), testCode)

	assert.NoError(t, err)
	assert.Len(t, result.DailyData, 3)
	// Dates ascend and today holds both same-day scans.
	assert.Equal(t, midnight.AddDate(0, 0, -5).Format("2006-01-02"), result.DailyData[0].Date)
	assert.Equal(t, midnight.AddDate(0, 0, -1).Format("2006-01-02"), result.DailyData[1].Date)
	assert.Equal(t, midnight.Format("2006-01-02"), result.DailyData[2].Date)
	assert.Equal(t, 2, result.DailyData[2].Count)
}

func TestCampaignAnalyticsRecentActivity(t *testing.T) {
	service, bunDB := setupAnalytics(t)
	defer bunDB.Close()
	insertCampaign(t, bunDB, true)

	base := time.Now().UTC().Add(-1 * time.Hour)
	for i := 0; i < 15; i++ {
		ip := fmt.Sprintf("198.51.100.%d", i+1)
		insertScan(t, bunDB, base.Add(time.Duration(i)*time.Minute), ip, identity.DeviceMobile, nil)
	}

	result, err := service.CampaignAnalytics(context.Background(), testCode)

	assert.NoError(t, err)
	assert.Len(t, result.RecentActivity, 10)
	// Newest first.
	for i := 1; i < len(result.RecentActivity); i++ {
		assert.True(t, !result.RecentActivity[i-1].Timestamp.Before(result.RecentActivity[i].Timestamp))
	}
}

func TestCampaignAnalyticsDeviceBreakdown(t *testing.T) {
	service, bunDB := setupAnalytics(t)
	defer bunDB.Close()
	insertCampaign(t, bunDB, true)

	now := time.Now().UTC()
	insertScan(t, bunDB, now, "198.51.100.1", identity.DeviceMobile, nil)
	insertScan(t, bunDB, now, "198.51.100.2", identity.DeviceMobile, nil)
	insertScan(t, bunDB, now, "198.51.100.3", identity.DeviceDesktop, nil)
	insertScan(t, bunDB, now, "198.51.100.4", "", nil)

	result, err := service.CampaignAnalytics(context.Background(), testCode)

	assert.NoError(t, err)
	assert.Equal(t, map[string]int{
		identity.DeviceMobile:  2,
		identity.DeviceDesktop: 1,
		identity.DeviceUnknown: 1,
	}, result.DeviceBreakdown)
}

func TestCampaignAnalyticsGeographicData(t *testing.T) {
	service, bunDB := setupAnalytics(t)
	defer bunDB.Close()
	insertCampaign(t, bunDB, true)

	berlin := "Berlin"
	hamburg := "Hamburg"
	now := time.Now().UTC()
	insertScan(t, bunDB, now, "198.51.100.1", identity.DeviceMobile, &berlin)
	insertScan(t, bunDB, now, "198.51.100.2", identity.DeviceMobile, &berlin)
	insertScan(t, bunDB, now, "198.51.100.3", identity.DeviceMobile, &hamburg)
	// Unresolved scans stay out of the city breakdown.
	insertScan(t, bunDB, now, "198.51.100.4", identity.DeviceMobile, nil)

	result, err := service.CampaignAnalytics(context.Background(), testCode)

	assert.NoError(t, err)
	assert.Equal(t, []models.CityBucket{
		{City: "Berlin", Count: 2},
		{City: "Hamburg", Count: 1},
	}, result.GeographicData)
}

func TestCampaignAnalyticsIdempotent(t *testing.T) {
	service, bunDB := setupAnalytics(t)
	defer bunDB.Close()
	insertCampaign(t, bunDB, true)

	now := time.Now().UTC()
	insertScan(t, bunDB, now, "198.51.100.1", identity.DeviceMobile, nil)
	insertScan(t, bunDB, now.Add(-time.Hour), "198.51.100.2", identity.DeviceDesktop, nil)

	first, err := service.CampaignAnalytics(context.Background(), testCode)
	assert.NoError(t, err)
	second, err := service.CampaignAnalytics(context.Background(), testCode)
	assert.NoError(t, err)

	assert.Equal(t, first.TotalScans, second.TotalScans)
	assert.Equal(t, first.UniqueVisitors, second.UniqueVisitors)
	assert.Equal(t, first.DailyData, second.DailyData)
	assert.Equal(t, first.HourlyData, second.HourlyData)
	assert.Equal(t, first.DeviceBreakdown, second.DeviceBreakdown)
}
