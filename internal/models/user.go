package models

import (
	"time"

	"github.com/uptrace/bun"
)

type AdminUser struct {
	bun.BaseModel `bun:"table:admin_users"`

	ID           string     `bun:"id,pk" json:"id"`
	Email        string     `bun:"email,unique,notnull" json:"email"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt    time.Time  `bun:"created_at,notnull" json:"created_at"`
	LastLogin    *time.Time `bun:"last_login,nullzero" json:"last_login,omitempty"`
}
