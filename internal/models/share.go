// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ScopeKind identifies what a share grants access to.
type ScopeKind string

const (
	// ScopeCategory shares a category: its direct posts and collections,
	// and optionally everything in descendant categories.
	ScopeCategory ScopeKind = "category"

	// ScopePost shares a single post.
	ScopePost ScopeKind = "post"
)

// Share is the persisted sharing configuration for one category or one post.
// At most one share exists per (ScopeKind, ScopeID). A share is created
// lazily on the first sharing action and deleted when the owner disables
// all sharing, cascading to its invitations.
//
// PublicToken is set the first time the public link is enabled and replaced
// wholesale on regeneration, so previously distributed links stop resolving
// the instant the new token is written.
type Share struct {
	ID              uuid.UUID  `json:"id"`
	ScopeKind       ScopeKind  `json:"scope_kind"`
	ScopeID         uuid.UUID  `json:"scope_id"`
	PublicEnabled   bool       `json:"public_enabled"`
	PublicToken     *string    `json:"public_token,omitempty"`
	PublicExpiresAt *time.Time `json:"public_expires_at,omitempty"`

	// IncludeSubcategories only applies to category shares: whether the
	// grant cascades to content in descendant categories.
	IncludeSubcategories bool `json:"include_subcategories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicLinkActive reports whether the public link grants access at instant
// now. An expired link is not active, but it is a different failure than a
// disabled one; callers that must distinguish use PublicLinkExpired.
func (s *Share) PublicLinkActive(now time.Time) bool {
	if !s.PublicEnabled || s.PublicToken == nil {
		return false
	}
	return s.PublicExpiresAt == nil || s.PublicExpiresAt.After(now)
}

// PublicLinkExpired reports whether the public link is enabled but past its
// expiry at instant now.
func (s *Share) PublicLinkExpired(now time.Time) bool {
	if !s.PublicEnabled || s.PublicToken == nil {
		return false
	}
	return s.PublicExpiresAt != nil && !s.PublicExpiresAt.After(now)
}

// InvitationStatus is the lifecycle state of an email invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
)

// Invitation is a per-email grant attached to a share. It is keyed by
// (ShareID, Email) with the email stored lowercase, so re-inviting the same
// address updates in place. UserID links the invitation to a known account
// when the address matches one at invite or acceptance time.
type Invitation struct {
	ID         uuid.UUID        `json:"id"`
	ShareID    uuid.UUID        `json:"share_id"`
	Email      string           `json:"email"`
	Status     InvitationStatus `json:"status"`
	UserID     *uuid.UUID       `json:"user_id,omitempty"`
	InvitedAt  time.Time        `json:"invited_at"`
	ExpiresAt  *time.Time       `json:"expires_at,omitempty"`
	AcceptedAt *time.Time       `json:"accepted_at,omitempty"`
}

// Expired reports whether the invitation is past its expiry at instant now.
// An expired invitation is inert regardless of its stored status.
func (i *Invitation) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !i.ExpiresAt.After(now)
}
