package db

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateScan(ctx context.Context, scan models.Scan) error {
	_, err := d.Bun.NewInsert().Model(&scan).Exec(ctx)
	return err
}
