// Package privacy queues data-subject requests. Requests are bookkeeping
// only; actually fulfilling an access, delete or export request happens
// through an operator workflow outside this service.
package privacy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/utils"
)

var (
	ErrInvalidRequestType = errors.New("invalid privacy request type")
	ErrInvalidStatus      = errors.New("invalid privacy request status")
)

type PrivacyDBLayer interface {
	CreateRequest(ctx context.Context, req models.PrivacyRequest) error
	GetRequestByID(ctx context.Context, id string) (*models.PrivacyRequest, error)
	ListRequests(ctx context.Context) ([]models.PrivacyRequest, error)
	UpdateRequest(ctx context.Context, req models.PrivacyRequest) error
}

type PrivacyService struct {
	DB PrivacyDBLayer
}

func NewPrivacyService(db PrivacyDBLayer) *PrivacyService {
	return &PrivacyService{DB: db}
}

func validRequestType(t string) bool {
	switch t {
	case models.PrivacyRequestAccess, models.PrivacyRequestDelete, models.PrivacyRequestExport:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case models.PrivacyStatusPending, models.PrivacyStatusProcessed, models.PrivacyStatusRejected:
		return true
	}
	return false
}

func (s *PrivacyService) Submit(ctx context.Context, email, requestType, anonymousKey string) (*models.PrivacyRequest, error) {
	if !validRequestType(requestType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRequestType, requestType)
	}

	req := models.PrivacyRequest{
		ID:           utils.GenerateUUID(),
		Email:        email,
		RequestType:  requestType,
		AnonymousKey: anonymousKey,
		Status:       models.PrivacyStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.DB.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to submit privacy request: %w", err)
	}
	return &req, nil
}

func (s *PrivacyService) List(ctx context.Context) ([]models.PrivacyRequest, error) {
	return s.DB.ListRequests(ctx)
}

// SetStatus moves a request to processed or rejected, stamping processed_at.
// Unknown id yields (nil, nil).
func (s *PrivacyService) SetStatus(ctx context.Context, id, status string) (*models.PrivacyRequest, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	req, err := s.DB.GetRequestByID(ctx, id)
	if err != nil || req == nil {
		return nil, err
	}

	req.Status = status
	if status != models.PrivacyStatusPending {
		now := time.Now().UTC()
		req.ProcessedAt = &now
	}

	if err := s.DB.UpdateRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("failed to update privacy request %s: %w", id, err)
	}
	return req, nil
}
