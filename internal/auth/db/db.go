package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := d.Bun.NewSelect().
		Model(&user).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DB) CountAdmins(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.AdminUser)(nil)).
		Count(ctx)
}

func (d *DB) CreateAdmin(ctx context.Context, user models.AdminUser) error {
	_, err := d.Bun.NewInsert().Model(&user).Exec(ctx)
	return err
}

func (d *DB) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.AdminUser)(nil)).
		Set("last_login = ?", at).
		Where("email = ?", email).
		Exec(ctx)
	return err
}
