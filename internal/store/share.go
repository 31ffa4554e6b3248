// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"inkpress/internal/models"
	"inkpress/internal/sharing"
)

// ShareStore owns the persisted sharing configuration for categories and
// posts. At most one share row exists per (scope_kind, scope_id); the row is
// created lazily by UpsertSettings and removed by Disable.
type ShareStore struct {
	db *sql.DB
}

// NewShareStore returns a new ShareStore.
func NewShareStore(db *sql.DB) *ShareStore {
	return &ShareStore{db: db}
}

const shareColumns = `id, scope_kind, scope_id, public_enabled, public_token,
	       public_expires_at, include_subcategories, created_at, updated_at`

func scanShare(scanner interface{ Scan(...any) error }) (*models.Share, error) {
	sh := &models.Share{}
	err := scanner.Scan(
		&sh.ID, &sh.ScopeKind, &sh.ScopeID, &sh.PublicEnabled, &sh.PublicToken,
		&sh.PublicExpiresAt, &sh.IncludeSubcategories, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// GetByScope retrieves the share for a category or post. Returns nil if the
// entity has never been shared.
func (s *ShareStore) GetByScope(kind models.ScopeKind, scopeID uuid.UUID) (*models.Share, error) {
	row := s.db.QueryRow(`SELECT `+shareColumns+` FROM shares WHERE scope_kind = $1 AND scope_id = $2`, kind, scopeID)
	sh, err := scanShare(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get share by scope: %w", err)
	}
	return sh, nil
}

// GetByToken retrieves the share holding the given public token, restricted
// to one scope kind so a post token cannot open a category URL. Callers
// must have format-checked the token first. Returns nil if no share holds it.
func (s *ShareStore) GetByToken(token string, kind models.ScopeKind) (*models.Share, error) {
	row := s.db.QueryRow(`SELECT `+shareColumns+` FROM shares WHERE public_token = $1 AND scope_kind = $2`, token, kind)
	sh, err := scanShare(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get share by token: %w", err)
	}
	return sh, nil
}

// FindByID retrieves a share by its primary key. Returns nil if it does
// not exist.
func (s *ShareStore) FindByID(id uuid.UUID) (*models.Share, error) {
	row := s.db.QueryRow(`SELECT `+shareColumns+` FROM shares WHERE id = $1`, id)
	sh, err := scanShare(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find share: %w", err)
	}
	return sh, nil
}

// SharePatch is a partial update for UpsertSettings. Nil pointer fields are
// left unchanged. ClearPublicExpiry removes an existing expiry; it wins over
// PublicExpiresAt when both are set.
type SharePatch struct {
	PublicEnabled        *bool
	PublicExpiresAt      *sql.NullTime
	IncludeSubcategories *bool
	RegenerateToken      bool
}

// UpsertSettings creates or updates the share row for an entity, applying
// only the provided fields. A token is generated when the public link is
// first enabled without one, or when RegenerateToken is set; the previous
// token is replaced in the same statement, so old links stop resolving the
// instant the row is written. The returned oldToken (empty if no token was
// retired) lets the caller invalidate cached pages keyed by it; it is set
// when the token is replaced and when an active link is switched off.
func (s *ShareStore) UpsertSettings(kind models.ScopeKind, scopeID uuid.UUID, patch SharePatch) (share *models.Share, oldToken string, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, "", fmt.Errorf("begin share upsert: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+shareColumns+` FROM shares WHERE scope_kind = $1 AND scope_id = $2 FOR UPDATE`, kind, scopeID)
	sh, err := scanShare(row)
	if err == sql.ErrNoRows {
		sh, err = scanShare(tx.QueryRow(`
			INSERT INTO shares (scope_kind, scope_id) VALUES ($1, $2)
			RETURNING `+shareColumns, kind, scopeID))
	}
	if err != nil {
		return nil, "", fmt.Errorf("load share for upsert: %w", err)
	}

	wasActive := sh.PublicEnabled && sh.PublicToken != nil

	if patch.PublicEnabled != nil {
		sh.PublicEnabled = *patch.PublicEnabled
	}
	if patch.PublicExpiresAt != nil {
		if patch.PublicExpiresAt.Valid {
			t := patch.PublicExpiresAt.Time
			sh.PublicExpiresAt = &t
		} else {
			sh.PublicExpiresAt = nil
		}
	}
	if patch.IncludeSubcategories != nil && kind == models.ScopeCategory {
		sh.IncludeSubcategories = *patch.IncludeSubcategories
	}

	needToken := patch.RegenerateToken || (sh.PublicEnabled && sh.PublicToken == nil)
	if needToken {
		if sh.PublicToken != nil {
			oldToken = *sh.PublicToken
		}
		token, genErr := s.freshToken(tx)
		if genErr != nil {
			return nil, "", genErr
		}
		sh.PublicToken = &token
	}

	// Turning the public link off retires the token from the caller's
	// point of view even though the row keeps it for a later re-enable.
	if wasActive && !sh.PublicEnabled && oldToken == "" {
		oldToken = *sh.PublicToken
	}

	sh, err = scanShare(tx.QueryRow(`
		UPDATE shares SET
			public_enabled = $1, public_token = $2, public_expires_at = $3,
			include_subcategories = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+shareColumns,
		sh.PublicEnabled, sh.PublicToken, sh.PublicExpiresAt,
		sh.IncludeSubcategories, sh.ID))
	if err != nil {
		return nil, "", fmt.Errorf("update share: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("commit share upsert: %w", err)
	}
	return sh, oldToken, nil
}

// freshToken generates a token that does not collide with an existing one.
// The unique index on public_token is the real guard; the pre-check retry
// only narrows the already tiny window.
func (s *ShareStore) freshToken(tx *sql.Tx) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		token, err := sharing.GenerateToken()
		if err != nil {
			return "", fmt.Errorf("generate share token: %w", err)
		}
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM shares WHERE public_token = $1)`, token).Scan(&exists); err != nil {
			return "", fmt.Errorf("check share token: %w", err)
		}
		if !exists {
			return token, nil
		}
	}
	return "", fmt.Errorf("generate share token: exhausted retries")
}

// Disable deletes the share for an entity along with all its invitations
// (ON DELETE CASCADE). It returns the token that was active, if any, so the
// caller can invalidate cached pages. Disabling an unshared entity is a no-op.
func (s *ShareStore) Disable(kind models.ScopeKind, scopeID uuid.UUID) (oldToken string, err error) {
	var token sql.NullString
	err = s.db.QueryRow(`
		DELETE FROM shares WHERE scope_kind = $1 AND scope_id = $2
		RETURNING public_token
	`, kind, scopeID).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("disable share: %w", err)
	}
	return token.String, nil
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation. Handlers use it to map duplicate slugs and emails to 409s.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
