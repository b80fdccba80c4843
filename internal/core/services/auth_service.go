package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	portssvc "github.com/fingov/fund_reporting_app/internal/core/ports/services"
	"github.com/fingov/fund_reporting_app/internal/middleware"
	"github.com/fingov/fund_reporting_app/internal/utils"
	"github.com/fingov/fund_reporting_app/pkg/config"
)

// tokenService implements TokenSvcFacade for JWT access token issuance.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// googleAuthService implements GoogleAuthSvcFacade: it validates Google ID
// tokens posted by the frontend and resolves them to local users.
type googleAuthService struct {
	cfg          *config.Config
	userRepo     portsrepo.UserRepository
	oauth2Config *oauth2.Config
}

// NewGoogleAuthService creates a new Google sign-in service.
func NewGoogleAuthService(cfg *config.Config, userRepo portsrepo.UserRepository) portssvc.GoogleAuthSvcFacade {
	return &googleAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleAuthSvcFacade = (*googleAuthService)(nil)

// ValidateGoogleIDToken validates an ID token received from Google and returns
// the payload if valid.
func (s *googleAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}

// ResolveUser finds the local user for a validated Google identity, or
// provisions a reporter-level account on first sign-in. Google accounts use
// the verified email as the username and carry no local password.
func (s *googleAuthService) ResolveUser(ctx context.Context, payload *idtoken.Payload) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: google ID token carries no email claim", apperrors.ErrUnauthorized)
	}
	if verified, _ := payload.Claims["email_verified"].(bool); !verified {
		return nil, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByUsername(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}

	now := time.Now().UTC()
	newUser := domain.User{
		UserID:   uuid.NewString(),
		Username: email,
		Name:     name,
		Role:     domain.RoleReporter,
	}
	newUser.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     newUser.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: newUser.UserID,
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to provision google user: %w", err)
	}

	logger.Info("provisioned user from google sign-in",
		slog.String("user_id", newUser.UserID))
	return &newUser, nil
}
