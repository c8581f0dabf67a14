package privacy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/privacy"
)

type MockPrivacyDB struct {
	requests map[string]*models.PrivacyRequest
	order    []string
}

func NewMockPrivacyDB() *MockPrivacyDB {
	return &MockPrivacyDB{requests: make(map[string]*models.PrivacyRequest)}
}

func (m *MockPrivacyDB) CreateRequest(_ context.Context, req models.PrivacyRequest) error {
	m.requests[req.ID] = &req
	m.order = append(m.order, req.ID)
	return nil
}

func (m *MockPrivacyDB) GetRequestByID(_ context.Context, id string) (*models.PrivacyRequest, error) {
	req, exists := m.requests[id]
	if !exists {
		return nil, nil
	}
	copied := *req
	return &copied, nil
}

func (m *MockPrivacyDB) ListRequests(_ context.Context) ([]models.PrivacyRequest, error) {
	out := make([]models.PrivacyRequest, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, *m.requests[m.order[i]])
	}
	return out, nil
}

func (m *MockPrivacyDB) UpdateRequest(_ context.Context, req models.PrivacyRequest) error {
	if _, exists := m.requests[req.ID]; !exists {
		return errors.New("request not found")
	}
	m.requests[req.ID] = &req
	return nil
}

func TestSubmitRequest(t *testing.T) {
	db := NewMockPrivacyDB()
	service := privacy.NewPrivacyService(db)

	req, err := service.Submit(context.Background(), "visitor@example.com", models.PrivacyRequestDelete, "abc123")

	assert.NoError(t, err)
	assert.NotNil(t, req)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, models.PrivacyStatusPending, req.Status)
	assert.Equal(t, models.PrivacyRequestDelete, req.RequestType)
	assert.Nil(t, req.ProcessedAt)
	assert.Len(t, db.requests, 1)
}

func TestSubmitRequestInvalidType(t *testing.T) {
	db := NewMockPrivacyDB()
	service := privacy.NewPrivacyService(db)

	req, err := service.Submit(context.Background(), "visitor@example.com", "purge-everything", "")

	assert.ErrorIs(t, err, privacy.ErrInvalidRequestType)
	assert.Nil(t, req)
	assert.Empty(t, db.requests)
}

func TestSetStatus(t *testing.T) {
	db := NewMockPrivacyDB()
	service := privacy.NewPrivacyService(db)

	created, err := service.Submit(context.Background(), "visitor@example.com", models.PrivacyRequestAccess, "")
	assert.NoError(t, err)

	updated, err := service.SetStatus(context.Background(), created.ID, models.PrivacyStatusProcessed)
	assert.NoError(t, err)
	assert.Equal(t, models.PrivacyStatusProcessed, updated.Status)
	assert.NotNil(t, updated.ProcessedAt)
}

func TestSetStatusInvalid(t *testing.T) {
	db := NewMockPrivacyDB()
	service := privacy.NewPrivacyService(db)

	created, err := service.Submit(context.Background(), "visitor@example.com", models.PrivacyRequestAccess, "")
	assert.NoError(t, err)

	updated, err := service.SetStatus(context.Background(), created.ID, "done")
	assert.ErrorIs(t, err, privacy.ErrInvalidStatus)
	assert.Nil(t, updated)
}

func TestSetStatusUnknownRequest(t *testing.T) {
	db := NewMockPrivacyDB()
	service := privacy.NewPrivacyService(db)

	updated, err := service.SetStatus(context.Background(), "no-such-id", models.PrivacyStatusRejected)
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestListRequests(t *testing.T) {
	db := NewMockPrivacyDB()
	service := privacy.NewPrivacyService(db)

	_, err := service.Submit(context.Background(), "a@example.com", models.PrivacyRequestAccess, "")
	assert.NoError(t, err)
	_, err = service.Submit(context.Background(), "b@example.com", models.PrivacyRequestExport, "")
	assert.NoError(t, err)

	requests, err := service.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, requests, 2)
	// Newest first.
	assert.Equal(t, "b@example.com", requests[0].Email)
}
