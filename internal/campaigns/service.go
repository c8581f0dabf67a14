package campaigns

import (
	"context"
	"fmt"
	"time"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/utils"
)

type CampaignDBLayer interface {
	CreateCampaign(ctx context.Context, campaign models.Campaign) error
	GetCampaignByCode(ctx context.Context, code string) (*models.Campaign, error)
	CampaignCodeExists(ctx context.Context, code string) (bool, error)
	ListCampaigns(ctx context.Context, includeArchived bool) ([]models.Campaign, error)
	UpdateCampaign(ctx context.Context, campaign models.Campaign) error
	CountCampaigns(ctx context.Context) (int, error)
	CountActiveCampaigns(ctx context.Context) (int, error)
	RecentCampaigns(ctx context.Context, limit int) ([]models.Campaign, error)
}

// ScanStatsReader is the slice of the scan store the registry needs for the
// admin summaries. Implemented by the analytics db layer.
type ScanStatsReader interface {
	CountScans(ctx context.Context, code string) (int, error)
	CountUniqueVisitors(ctx context.Context, code string) (int, error)
	CountScansSince(ctx context.Context, code string, since time.Time) (int, error)
	CountAllScans(ctx context.Context) (int, error)
	CountAllScansSince(ctx context.Context, since time.Time) (int, error)
}

type CampaignService struct {
	DB    CampaignDBLayer
	Scans ScanStatsReader
}

func NewCampaignService(db CampaignDBLayer, scans ScanStatsReader) *CampaignService {
	return &CampaignService{DB: db, Scans: scans}
}

// Create registers a new campaign. The public code is regenerated until no
// existing campaign holds it; collisions are vanishingly rare but the loop is
// deliberately unbounded rather than single-shot.
func (s *CampaignService) Create(ctx context.Context, req models.CampaignCreateRequest) (*models.Campaign, error) {
	code := utils.GenerateCampaignCode()
	for {
		taken, err := s.DB.CampaignCodeExists(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to check campaign code: %w", err)
		}
		if !taken {
			break
		}
		code = utils.GenerateCampaignCode()
	}

	campaign := models.Campaign{
		ID:                  utils.GenerateUUID(),
		CampaignCode:        code,
		BusinessName:        req.BusinessName,
		TargetURL:           utils.SanitizeURL(req.TargetURL),
		Description:         req.Description,
		CreatedAt:           time.Now().UTC(),
		Active:              true,
		ClientAccessEnabled: true,
		Archived:            false,
	}

	if err := s.DB.CreateCampaign(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return &campaign, nil
}

// Get returns nil for malformed as well as unknown codes, so callers cannot
// probe for valid code shapes.
func (s *CampaignService) Get(ctx context.Context, code string) (*models.Campaign, error) {
	if !utils.IsValidCampaignCode(code) {
		return nil, nil
	}
	return s.DB.GetCampaignByCode(ctx, code)
}

func (s *CampaignService) List(ctx context.Context, includeArchived bool) ([]models.Campaign, error) {
	return s.DB.ListCampaigns(ctx, includeArchived)
}

// Update applies only the fields present in the request. A supplied target
// URL is re-sanitized. Unknown code yields (nil, nil).
func (s *CampaignService) Update(ctx context.Context, code string, req models.CampaignUpdateRequest) (*models.Campaign, error) {
	campaign, err := s.Get(ctx, code)
	if err != nil || campaign == nil {
		return nil, err
	}

	if req.BusinessName != nil {
		campaign.BusinessName = *req.BusinessName
	}
	if req.TargetURL != nil {
		campaign.TargetURL = utils.SanitizeURL(*req.TargetURL)
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.Active != nil {
		campaign.Active = *req.Active
	}
	if req.ClientAccessEnabled != nil {
		campaign.ClientAccessEnabled = *req.ClientAccessEnabled
	}

	if err := s.DB.UpdateCampaign(ctx, *campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign %s: %w", code, err)
	}
	return campaign, nil
}

// Archive soft-deletes a campaign. Scans stay queryable by admins, but the
// campaign stops accepting scans and stops redirecting. There is no
// un-archive operation.
func (s *CampaignService) Archive(ctx context.Context, code string) (*models.Campaign, error) {
	campaign, err := s.Get(ctx, code)
	if err != nil || campaign == nil {
		return nil, err
	}

	now := time.Now().UTC()
	campaign.Archived = true
	campaign.ArchivedAt = &now

	if err := s.DB.UpdateCampaign(ctx, *campaign); err != nil {
		return nil, fmt.Errorf("failed to archive campaign %s: %w", code, err)
	}
	return campaign, nil
}

func (s *CampaignService) SetClientAccess(ctx context.Context, code string, enabled bool) (*models.Campaign, error) {
	campaign, err := s.Get(ctx, code)
	if err != nil || campaign == nil {
		return nil, err
	}

	campaign.ClientAccessEnabled = enabled

	if err := s.DB.UpdateCampaign(ctx, *campaign); err != nil {
		return nil, fmt.Errorf("failed to toggle client access for %s: %w", code, err)
	}
	return campaign, nil
}

// GetCampaignStats returns the admin-facing summary for one campaign,
// regardless of the client-access flag.
func (s *CampaignService) GetCampaignStats(ctx context.Context, code string) (*models.CampaignStats, error) {
	campaign, err := s.Get(ctx, code)
	if err != nil || campaign == nil {
		return nil, err
	}

	totalScans, err := s.Scans.CountScans(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to count scans for %s: %w", code, err)
	}
	uniqueVisitors, err := s.Scans.CountUniqueVisitors(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to count unique visitors for %s: %w", code, err)
	}
	recentScans, err := s.Scans.CountScansSince(ctx, code, time.Now().UTC().AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent scans for %s: %w", code, err)
	}

	return &models.CampaignStats{
		CampaignCode:        campaign.CampaignCode,
		BusinessName:        campaign.BusinessName,
		TotalScans:          totalScans,
		UniqueVisitors:      uniqueVisitors,
		RecentScans:         recentScans,
		CreatedAt:           campaign.CreatedAt,
		Active:              campaign.Active,
		ClientAccessEnabled: campaign.ClientAccessEnabled,
		Archived:            campaign.Archived,
	}, nil
}

// GetDashboardStats aggregates across all campaigns for the admin landing page.
func (s *CampaignService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	totalCampaigns, err := s.DB.CountCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count campaigns: %w", err)
	}
	activeCampaigns, err := s.DB.CountActiveCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active campaigns: %w", err)
	}
	totalScans, err := s.Scans.CountAllScans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count scans: %w", err)
	}

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	scansToday, err := s.Scans.CountAllScansSince(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's scans: %w", err)
	}

	recent, err := s.DB.RecentCampaigns(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent campaigns: %w", err)
	}

	summaries := make([]models.CampaignSummary, 0, len(recent))
	for _, c := range recent {
		summaries = append(summaries, models.CampaignSummary{
			CampaignCode: c.CampaignCode,
			BusinessName: c.BusinessName,
			CreatedAt:    c.CreatedAt,
		})
	}

	return &models.DashboardStats{
		TotalCampaigns:  totalCampaigns,
		ActiveCampaigns: activeCampaigns,
		TotalScans:      totalScans,
		ScansToday:      scansToday,
		RecentCampaigns: summaries,
	}, nil
}
