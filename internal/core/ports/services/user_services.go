package services

import (
	"context"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"github.com/fingov/fund_reporting_app/internal/dto"
)

// UserSvcFacade defines user management operations.
type UserSvcFacade interface {
	// RegisterUser creates a reporter-level account from the public register route.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// CreateUser creates a user with an explicit role. Only admins may call it.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListAdmins retrieves every user holding the admin capability (ADMIN or AUDITOR).
	ListAdmins(ctx context.Context) ([]domain.User, error)
}
