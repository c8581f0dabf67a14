package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/config"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/logger"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/models"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/utils"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password;
// callers must not reveal which.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AdminDBLayer interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	CountAdmins(ctx context.Context) (int, error)
	CreateAdmin(ctx context.Context, user models.AdminUser) error
	UpdateLastLogin(ctx context.Context, email string, at time.Time) error
}

type AuthService struct {
	DB     AdminDBLayer
	Config *config.AuthConfig
	Logger *logger.Logger
}

func NewAuthService(db AdminDBLayer, cfg *config.AuthConfig, log *logger.Logger) *AuthService {
	return &AuthService{DB: db, Config: cfg, Logger: log}
}

// Login checks credentials, stamps last_login and issues an access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.DB.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if user == nil || !CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.DB.UpdateLastLogin(ctx, user.Email, time.Now().UTC()); err != nil {
		// Login still succeeds; the stamp is informational.
		if s.Logger != nil {
			s.Logger.Warn("AUTH", fmt.Sprintf("failed to update last login for %s: %v", user.Email, err))
		}
	}

	token, err := CreateAccessToken(user.Email, user.ID, s.Config.SecretKey, s.Config.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.Config.ExpireHours * 3600,
	}, nil
}

// CurrentUser resolves the authenticated admin from a verified email.
func (s *AuthService) CurrentUser(ctx context.Context, email string) (*models.AdminUser, error) {
	return s.DB.GetAdminByEmail(ctx, email)
}

// EnsureAdmin bootstraps the configured admin account when the table is
// empty. Called once at startup.
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	count, err := s.DB.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(s.Config.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.AdminUser{
		ID:           utils.GenerateUUID(),
		Email:        s.Config.AdminEmail,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.DB.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("failed to create initial admin: %w", err)
	}
	return nil
}
