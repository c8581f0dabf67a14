package db

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
)

// DB is the read-only query layer under the aggregator. Nothing here mutates
// the scan log.
type DB struct {
	Bun *bun.DB
}

func NewDB(db *bun.DB) *DB {
	return &DB{Bun: db}
}

func (d *DB) CountScans(ctx context.Context, code string) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Scan)(nil)).
		Where("campaign_code = ?", code).
		Count(ctx)
}

func (d *DB) CountUniqueVisitors(ctx context.Context, code string) (int, error) {
	var count int
	err := d.Bun.NewRaw(
		"SELECT COUNT(DISTINCT anonymous_key) FROM scans WHERE campaign_code = ?", code).
		Scan(ctx, &count)
	return count, err
}

func (d *DB) CountScansSince(ctx context.Context, code string, since time.Time) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Scan)(nil)).
		Where("campaign_code = ?", code).
		Where("timestamp >= ?", since).
		Count(ctx)
}

func (d *DB) CountScansBetween(ctx context.Context, code string, from, to time.Time) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Scan)(nil)).
		Where("campaign_code = ?", code).
		Where("timestamp >= ?", from).
		Where("timestamp < ?", to).
		Count(ctx)
}

func (d *DB) CountAllScans(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Scan)(nil)).
		Count(ctx)
}

func (d *DB) CountAllScansSince(ctx context.Context, since time.Time) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Scan)(nil)).
		Where("timestamp >= ?", since).
		Count(ctx)
}

func (d *DB) GetRecentScans(ctx context.Context, code string, limit int) ([]models.Scan, error) {
	var scans []models.Scan
	err := d.Bun.NewSelect().
		Model(&scans).
		Where("campaign_code = ?", code).
		Order("timestamp DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return scans, nil
}

// GetScansSince fetches raw scan rows for app-side bucketing. Daily and
// hourly series are grouped in Go rather than with DATE()/EXTRACT() so the
// result is identical on every store engine.
func (d *DB) GetScansSince(ctx context.Context, code string, since time.Time) ([]models.Scan, error) {
	var scans []models.Scan
	err := d.Bun.NewSelect().
		Model(&scans).
		Where("campaign_code = ?", code).
		Where("timestamp >= ?", since).
		Order("timestamp ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return scans, nil
}

type deviceCountRow struct {
	DeviceType string `bun:"device_type"`
	Count      int    `bun:"count"`
}

func (d *DB) GetDeviceBreakdown(ctx context.Context, code string) (map[string]int, error) {
	var rows []deviceCountRow
	err := d.Bun.NewSelect().
		ColumnExpr("device_type").
		ColumnExpr("COUNT(*) AS count").
		TableExpr("scans").
		Where("campaign_code = ?", code).
		GroupExpr("device_type").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]int, len(rows))
	for _, row := range rows {
		device := row.DeviceType
		if device == "" {
			device = "unknown"
		}
		breakdown[device] += row.Count
	}
	return breakdown, nil
}

type cityCountRow struct {
	City  string `bun:"city"`
	Count int    `bun:"count"`
}

func (d *DB) GetCityBreakdown(ctx context.Context, code string, limit int) ([]models.CityBucket, error) {
	var rows []cityCountRow
	err := d.Bun.NewSelect().
		ColumnExpr("city").
		ColumnExpr("COUNT(*) AS count").
		TableExpr("scans").
		Where("campaign_code = ?", code).
		Where("city IS NOT NULL").
		GroupExpr("city").
		OrderExpr("count DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	buckets := make([]models.CityBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, models.CityBucket{City: row.City, Count: row.Count})
	}
	return buckets, nil
}
