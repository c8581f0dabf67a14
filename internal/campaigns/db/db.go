package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateCampaign(ctx context.Context, campaign models.Campaign) error {
	_, err := d.Bun.NewInsert().Model(&campaign).Exec(ctx)
	return err
}

// GetCampaignByCode returns (nil, nil) when no campaign holds the code.
func (d *DB) GetCampaignByCode(ctx context.Context, code string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := d.Bun.NewSelect().
		Model(&campaign).
		Where("campaign_code = ?", code).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (d *DB) CampaignCodeExists(ctx context.Context, code string) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Campaign)(nil)).
		Where("campaign_code = ?", code).
		Exists(ctx)
}

func (d *DB) ListCampaigns(ctx context.Context, includeArchived bool) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	query := d.Bun.NewSelect().Model(&campaigns)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	err := query.Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (d *DB) UpdateCampaign(ctx context.Context, campaign models.Campaign) error {
	_, err := d.Bun.NewUpdate().
		Model(&campaign).
		Column("business_name", "target_url", "description", "active", "client_access_enabled", "archived", "archived_at").
		Where("campaign_code = ?", campaign.CampaignCode).
		Exec(ctx)
	return err
}

func (d *DB) CountCampaigns(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Campaign)(nil)).
		Count(ctx)
}

func (d *DB) CountActiveCampaigns(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Campaign)(nil)).
		Where("active = ?", true).
		Where("archived = ?", false).
		Count(ctx)
}

func (d *DB) RecentCampaigns(ctx context.Context, limit int) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := d.Bun.NewSelect().
		Model(&campaigns).
		Where("archived = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}
