package domain

import "time"

// UserRole defines the possible roles of a platform user.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleReporter UserRole = "REPORTER"
	RoleFinance  UserRole = "FINANCE"
	RoleAuditor  UserRole = "AUDITOR"
)

// HasAdminCapability reports whether the role may review withdrawal requests
// and edit withdrawal policies.
func (r UserRole) HasAdminCapability() bool {
	return r == RoleAdmin || r == RoleAuditor
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// GoogleUserInfo holds the profile fields returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
