// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// InvitationStore manages per-email invitations attached to shares.
// Rows are keyed by (share_id, email) with emails stored lowercase, so
// re-inviting an address updates the existing row instead of duplicating it.
type InvitationStore struct {
	db *sql.DB
}

// NewInvitationStore returns a new InvitationStore.
func NewInvitationStore(db *sql.DB) *InvitationStore {
	return &InvitationStore{db: db}
}

const invitationColumns = `id, share_id, email, status, user_id, invited_at, expires_at, accepted_at`

func scanInvitation(scanner interface{ Scan(...any) error }) (*models.Invitation, error) {
	inv := &models.Invitation{}
	err := scanner.Scan(
		&inv.ID, &inv.ShareID, &inv.Email, &inv.Status, &inv.UserID,
		&inv.InvitedAt, &inv.ExpiresAt, &inv.AcceptedAt,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// ListByShare returns all invitations attached to a share, oldest first.
func (s *InvitationStore) ListByShare(shareID uuid.UUID) ([]models.Invitation, error) {
	rows, err := s.db.Query(`
		SELECT `+invitationColumns+` FROM invitations
		WHERE share_id = $1 ORDER BY invited_at ASC
	`, shareID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()

	var items []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(
			&inv.ID, &inv.ShareID, &inv.Email, &inv.Status, &inv.UserID,
			&inv.InvitedAt, &inv.ExpiresAt, &inv.AcceptedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		items = append(items, inv)
	}
	return items, rows.Err()
}

// FindByShareAndEmail retrieves the invitation for an email on a share.
// The email is normalized before lookup. Returns nil if not found.
func (s *InvitationStore) FindByShareAndEmail(shareID uuid.UUID, email string) (*models.Invitation, error) {
	row := s.db.QueryRow(`
		SELECT `+invitationColumns+` FROM invitations
		WHERE share_id = $1 AND email = $2
	`, shareID, NormalizeEmail(email))
	inv, err := scanInvitation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	return inv, nil
}

// Upsert creates or refreshes the invitation for an email on a share.
// A re-invite resets status to pending, clears accepted_at, refreshes the
// expiry, and re-stamps invited_at. An existing user link is never cleared;
// userID only backfills a missing one.
func (s *InvitationStore) Upsert(shareID uuid.UUID, email string, expiresAt *time.Time, userID *uuid.UUID) (*models.Invitation, error) {
	row := s.db.QueryRow(`
		INSERT INTO invitations (share_id, email, status, user_id, expires_at)
		VALUES ($1, $2, 'pending', $3, $4)
		ON CONFLICT (share_id, email) DO UPDATE SET
			status = 'pending',
			accepted_at = NULL,
			invited_at = NOW(),
			expires_at = EXCLUDED.expires_at,
			user_id = COALESCE(invitations.user_id, EXCLUDED.user_id)
		RETURNING `+invitationColumns,
		shareID, NormalizeEmail(email), userID, expiresAt)
	inv, err := scanInvitation(row)
	if err != nil {
		return nil, fmt.Errorf("upsert invitation: %w", err)
	}
	return inv, nil
}

// Revoke deletes the invitation for one email. It reports whether a row was
// removed; revoking an absent invitation is not an error at this layer.
func (s *InvitationStore) Revoke(shareID uuid.UUID, email string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM invitations WHERE share_id = $1 AND email = $2`,
		shareID, NormalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("revoke invitation: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// MarkAccepted records the first successful use of an invitation by an
// authenticated viewer: status becomes accepted, accepted_at is stamped
// once, and the user link is backfilled if missing. Calling it again is a
// no-op, so the evaluator can trigger it on every granted request.
func (s *InvitationStore) MarkAccepted(invitationID uuid.UUID, userID uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE invitations SET
			status = 'accepted',
			accepted_at = COALESCE(accepted_at, NOW()),
			user_id = COALESCE(user_id, $2)
		WHERE id = $1
	`, invitationID, userID)
	if err != nil {
		return fmt.Errorf("mark invitation accepted: %w", err)
	}
	return nil
}

// NormalizeEmail lowercases and trims an address. All invitation reads and
// writes go through this so the (share_id, email) key stays canonical.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
