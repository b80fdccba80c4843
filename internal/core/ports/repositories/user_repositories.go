package repositories

import (
	"context"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
)

// UserRepository defines storage for platform users.
type UserRepository interface {
	// SaveUser inserts or updates a user row.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by id.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsersByRoles retrieves all non-deleted users holding any of the given roles.
	ListUsersByRoles(ctx context.Context, roles []domain.UserRole) ([]domain.User, error)
}
