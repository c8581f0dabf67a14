package scans

import (
	"context"
	"fmt"
	"time"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/geo"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/identity"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/utils"
)

type ScanDBLayer interface {
	CreateScan(ctx context.Context, scan models.Scan) error
}

type CampaignLookup interface {
	GetCampaignByCode(ctx context.Context, code string) (*models.Campaign, error)
}

type ScanService struct {
	DB        ScanDBLayer
	Campaigns CampaignLookup
	Geo       geo.Resolver
}

func NewScanService(db ScanDBLayer, campaigns CampaignLookup, resolver geo.Resolver) *ScanService {
	if resolver == nil {
		resolver = geo.NoopResolver{}
	}
	return &ScanService{DB: db, Campaigns: campaigns, Geo: resolver}
}

// Record appends one immutable scan event for the campaign. It returns
// (nil, nil) without writing anything when the campaign is unknown, inactive
// or archived. The caller decides what a failed write means; for the
// scan-and-redirect path it is logged and the visitor is redirected anyway.
func (s *ScanService) Record(ctx context.Context, code, ipAddress, userAgent string) (*models.Scan, error) {
	if !utils.IsValidCampaignCode(code) {
		return nil, nil
	}

	campaign, err := s.Campaigns.GetCampaignByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up campaign %s: %w", code, err)
	}
	if campaign == nil || !campaign.Active || campaign.Archived {
		return nil, nil
	}

	now := time.Now().UTC()
	city, country := s.Geo.Resolve(ipAddress)

	scan := models.Scan{
		ID:            utils.GenerateUUID(),
		CampaignCode:  code,
		AnonymousKey:  identity.DeriveAnonymousKey(ipAddress, userAgent, now),
		Timestamp:     now,
		IPAddress:     ipAddress,
		City:          city,
		Country:       country,
		DeviceType:    identity.ClassifyDevice(userAgent),
		UserAgentHash: identity.HashUserAgent(userAgent),
		CreatedAt:     now,
	}

	if err := s.DB.CreateScan(ctx, scan); err != nil {
		return nil, fmt.Errorf("failed to record scan for %s: %w", code, err)
	}
	return &scan, nil
}
