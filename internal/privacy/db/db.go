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

func (d *DB) CreateRequest(ctx context.Context, req models.PrivacyRequest) error {
	_, err := d.Bun.NewInsert().Model(&req).Exec(ctx)
	return err
}

func (d *DB) GetRequestByID(ctx context.Context, id string) (*models.PrivacyRequest, error) {
	var req models.PrivacyRequest
	err := d.Bun.NewSelect().
		Model(&req).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (d *DB) ListRequests(ctx context.Context) ([]models.PrivacyRequest, error) {
	var reqs []models.PrivacyRequest
	err := d.Bun.NewSelect().
		Model(&reqs).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (d *DB) UpdateRequest(ctx context.Context, req models.PrivacyRequest) error {
	_, err := d.Bun.NewUpdate().
		Model(&req).
		Column("status", "processed_at").
		Where("id = ?", req.ID).
		Exec(ctx)
	return err
}
