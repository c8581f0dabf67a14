package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PrivacyRequest queues a data-subject request (access, delete or export).
// Pure bookkeeping; fulfilment happens out of band.
type PrivacyRequest struct {
	bun.BaseModel `bun:"table:privacy_requests"`

	ID           string     `bun:"id,pk" json:"id"`
	Email        string     `bun:"email,nullzero" json:"email,omitempty"`
	RequestType  string     `bun:"request_type,notnull" json:"request_type"`
	AnonymousKey string     `bun:"anonymous_key,nullzero" json:"anonymous_key,omitempty"`
	Status       string     `bun:"status,notnull" json:"status"`
	CreatedAt    time.Time  `bun:"created_at,notnull" json:"created_at"`
	ProcessedAt  *time.Time `bun:"processed_at,nullzero" json:"processed_at,omitempty"`
}

const (
	PrivacyRequestAccess = "access"
	PrivacyRequestDelete = "delete"
	PrivacyRequestExport = "export"

	PrivacyStatusPending   = "pending"
	PrivacyStatusProcessed = "processed"
	PrivacyStatusRejected  = "rejected"
)
