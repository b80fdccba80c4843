package services

import (
	"context"
	"time"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for access token issuance.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the given user and returns
	// the token together with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleAuthSvcFacade defines Google ID-token sign-in operations.
type GoogleAuthSvcFacade interface {
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)

	// ResolveUser finds or provisions the local user for a validated Google identity.
	ResolveUser(ctx context.Context, payload *idtoken.Payload) (*domain.User, error)
}
