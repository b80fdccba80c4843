package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	portssvc "github.com/fingov/fund_reporting_app/internal/core/ports/services"
	"github.com/fingov/fund_reporting_app/internal/dto"
	"github.com/fingov/fund_reporting_app/internal/middleware"
	"github.com/fingov/fund_reporting_app/internal/utils"
)

// userService manages platform users and role assignment.
type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a reporter-level account from the public register
// route. Elevated roles are never self-assignable.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	return s.createUser(ctx, req.Username, req.Password, req.Name, domain.RoleReporter, "")
}

// CreateUser creates a user with an explicit role. Only an existing admin may
// call it; this is the only path that can mint ADMIN and AUDITOR accounts.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator %s: %w", creatorUserID, err)
	}
	if creator.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only an admin may create users", apperrors.ErrForbidden)
	}
	return s.createUser(ctx, req.Username, req.Password, req.Name, domain.UserRole(req.Role), creatorUserID)
}

func (s *userService) createUser(ctx context.Context, username, password, name string, role domain.UserRole, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, username)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
	}
	createdBy := creatorUserID
	if createdBy == "" {
		createdBy = user.UserID // self-registration
	}
	user.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     createdBy,
		LastUpdatedAt: now,
		LastUpdatedBy: createdBy,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("user created",
		slog.String("user_id", user.UserID),
		slog.String("role", string(role)))
	return &user, nil
}

// GetUserByID retrieves a user by id.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// ListAdmins retrieves every user holding the admin capability. The workflow
// engine fans pending-request notifications out to this set.
func (s *userService) ListAdmins(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListUsersByRoles(ctx, []domain.UserRole{domain.RoleAdmin, domain.RoleAuditor})
}
