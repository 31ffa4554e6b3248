// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sharing

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// Outcome is the terminal state of an access evaluation.
type Outcome int

const (
	// OutcomeNotFound covers every failure that must not confirm a share
	// exists: malformed token, unknown token, sharing disabled, entity
	// deleted, no invitation. All of them look identical to the caller.
	OutcomeNotFound Outcome = iota

	// OutcomeExpired means a real share or invitation matched but its time
	// window has passed. Distinguished from NotFound so the UI can suggest
	// asking the owner for a fresh link.
	OutcomeExpired

	// OutcomeGranted means access is allowed for the decision's scope.
	OutcomeGranted
)

// String returns a log-friendly outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeGranted:
		return "granted"
	case OutcomeExpired:
		return "expired"
	default:
		return "not_found"
	}
}

// Decision is the result of one access evaluation. Share is set only when
// the outcome is Granted.
type Decision struct {
	Outcome Outcome
	Share   *models.Share
}

// Granted reports whether the decision allows access.
func (d Decision) Granted() bool { return d.Outcome == OutcomeGranted }

// ShareDirectory is the read surface the evaluator needs from share
// storage. *store.ShareStore implements it.
type ShareDirectory interface {
	GetByToken(token string, kind models.ScopeKind) (*models.Share, error)
	GetByScope(kind models.ScopeKind, scopeID uuid.UUID) (*models.Share, error)
}

// InvitationDirectory is the invitation surface the evaluator needs.
// *store.InvitationStore implements it.
type InvitationDirectory interface {
	FindByShareAndEmail(shareID uuid.UUID, email string) (*models.Invitation, error)
	MarkAccepted(invitationID uuid.UUID, userID uuid.UUID) error
}

// Viewer identifies an authenticated visitor for the invitation path.
// Email must come from a verified login, never from user input.
type Viewer struct {
	UserID uuid.UUID
	Email  string
}

// Evaluator is the decision core. It is stateless per request: every
// decision is re-derived from stored share and invitation state, so
// concurrent evaluations need no coordination.
type Evaluator struct {
	shares  ShareDirectory
	invites InvitationDirectory
	now     func() time.Time
}

// NewEvaluator returns an Evaluator over the given directories.
func NewEvaluator(shares ShareDirectory, invites InvitationDirectory) *Evaluator {
	return &Evaluator{shares: shares, invites: invites, now: time.Now}
}

// EvaluateToken decides access for an anonymous visitor holding a public
// token. The walk is: format check, share lookup, enabled check, expiry
// check. Every failure before the expiry check is NotFound — a wrong token
// and a deliberately disabled share must be indistinguishable.
func (e *Evaluator) EvaluateToken(token string, kind models.ScopeKind) (Decision, error) {
	if !ValidTokenFormat(token) {
		return Decision{Outcome: OutcomeNotFound}, nil
	}

	share, err := e.shares.GetByToken(token, kind)
	if err != nil {
		return Decision{}, fmt.Errorf("evaluate token: %w", err)
	}
	if share == nil || !share.PublicEnabled {
		return Decision{Outcome: OutcomeNotFound}, nil
	}

	now := e.now()
	if share.PublicLinkExpired(now) {
		return Decision{Outcome: OutcomeExpired}, nil
	}
	return Decision{Outcome: OutcomeGranted, Share: share}, nil
}

// EvaluateInvitation decides access for an authenticated viewer reaching a
// category or post without a token. A missing share and a missing
// invitation both collapse to NotFound. On a grant, the invitation is
// marked accepted exactly once; a marking failure is logged but does not
// revoke the grant, since the stored state already authorizes the viewer.
func (e *Evaluator) EvaluateInvitation(kind models.ScopeKind, scopeID uuid.UUID, viewer Viewer) (Decision, error) {
	if viewer.Email == "" {
		return Decision{Outcome: OutcomeNotFound}, nil
	}

	share, err := e.shares.GetByScope(kind, scopeID)
	if err != nil {
		return Decision{}, fmt.Errorf("evaluate invitation: %w", err)
	}
	if share == nil {
		return Decision{Outcome: OutcomeNotFound}, nil
	}

	inv, err := e.invites.FindByShareAndEmail(share.ID, viewer.Email)
	if err != nil {
		return Decision{}, fmt.Errorf("evaluate invitation: %w", err)
	}
	if inv == nil {
		return Decision{Outcome: OutcomeNotFound}, nil
	}
	if inv.Expired(e.now()) {
		return Decision{Outcome: OutcomeExpired}, nil
	}

	if err := e.invites.MarkAccepted(inv.ID, viewer.UserID); err != nil {
		slog.Warn("mark invitation accepted failed", "invitation", inv.ID, "error", err)
	}
	return Decision{Outcome: OutcomeGranted, Share: share}, nil
}

// Evaluate combines both paths for an entity the caller has already
// resolved. A supplied token is tried first; if it grants, the invitation
// path is never consulted (the two mechanisms are independent and neither
// outranks the other, so the first satisfied one wins). The weaker failure
// never downgrades a stronger one: an Expired from either path survives a
// NotFound from the other.
func (e *Evaluator) Evaluate(token string, kind models.ScopeKind, scopeID uuid.UUID, viewer *Viewer) (Decision, error) {
	best := Decision{Outcome: OutcomeNotFound}

	if token != "" {
		d, err := e.EvaluateToken(token, kind)
		if err != nil {
			return Decision{}, err
		}
		if d.Granted() && d.Share.ScopeID == scopeID {
			return d, nil
		}
		if d.Outcome == OutcomeExpired {
			best = d
		}
	}

	if viewer != nil {
		d, err := e.EvaluateInvitation(kind, scopeID, *viewer)
		if err != nil {
			return Decision{}, err
		}
		if d.Granted() || d.Outcome == OutcomeExpired {
			return d, nil
		}
	}

	return best, nil
}
