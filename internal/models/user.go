// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"

	// RoleViewer is an identity-only account: it cannot reach the admin
	// area and exists so email invitations can link to a known login.
	RoleViewer Role = "viewer"
)

// User represents an account with authentication and 2FA fields. Admins and
// editors manage content; viewers only authenticate to use invitations.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageContent returns true for roles allowed into the admin area.
func (u *User) CanManageContent() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}

// Needs2FASetup returns true if the user has not completed 2FA enrollment.
// Admin-area users must set up 2FA on their first login; viewers never do.
func (u *User) Needs2FASetup() bool {
	return u.Role != RoleViewer && !u.TOTPEnabled
}
