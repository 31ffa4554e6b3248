// fakes_test.go provides in-memory directory fakes so resolver and
// evaluator tests run without PostgreSQL.
package sharing

import (
	"time"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// fakeCategories implements CategoryDirectory over a slice.
type fakeCategories struct {
	cats []models.Category
}

func (f *fakeCategories) FindByID(id uuid.UUID) (*models.Category, error) {
	for i := range f.cats {
		if f.cats[i].ID == id {
			c := f.cats[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) FindRootBySlug(slug string) (*models.Category, error) {
	for i := range f.cats {
		if f.cats[i].ParentID == nil && f.cats[i].Slug == slug {
			c := f.cats[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) FindChildBySlug(parentID uuid.UUID, slug string) (*models.Category, error) {
	for i := range f.cats {
		if f.cats[i].ParentID != nil && *f.cats[i].ParentID == parentID && f.cats[i].Slug == slug {
			c := f.cats[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) ListAll() ([]models.Category, error) {
	out := make([]models.Category, len(f.cats))
	copy(out, f.cats)
	return out, nil
}

// fakeShares implements ShareDirectory over a slice.
type fakeShares struct {
	shares []models.Share
}

func (f *fakeShares) GetByToken(token string, kind models.ScopeKind) (*models.Share, error) {
	for i := range f.shares {
		sh := f.shares[i]
		if sh.ScopeKind == kind && sh.PublicToken != nil && *sh.PublicToken == token {
			return &sh, nil
		}
	}
	return nil, nil
}

func (f *fakeShares) GetByScope(kind models.ScopeKind, scopeID uuid.UUID) (*models.Share, error) {
	for i := range f.shares {
		sh := f.shares[i]
		if sh.ScopeKind == kind && sh.ScopeID == scopeID {
			return &sh, nil
		}
	}
	return nil, nil
}

// fakeInvitations implements InvitationDirectory and records MarkAccepted calls.
type fakeInvitations struct {
	invitations []models.Invitation
	accepted    []uuid.UUID
	acceptErr   error
}

func (f *fakeInvitations) FindByShareAndEmail(shareID uuid.UUID, email string) (*models.Invitation, error) {
	for i := range f.invitations {
		inv := f.invitations[i]
		if inv.ShareID == shareID && inv.Email == email {
			return &inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvitations) MarkAccepted(invitationID, userID uuid.UUID) error {
	if f.acceptErr != nil {
		return f.acceptErr
	}
	f.accepted = append(f.accepted, invitationID)
	for i := range f.invitations {
		if f.invitations[i].ID == invitationID && f.invitations[i].AcceptedAt == nil {
			now := time.Now()
			f.invitations[i].Status = models.InvitationAccepted
			f.invitations[i].AcceptedAt = &now
			if f.invitations[i].UserID == nil {
				f.invitations[i].UserID = &userID
			}
		}
	}
	return nil
}

// buildTestForest creates the reference tree used across resolver tests:
//
//	Security (root)
//	└── Web
//	    └── XSS
//	Security2 (root, name prefix collision with Security)
//	Travel (root)
type testForest struct {
	security  models.Category
	web       models.Category
	xss       models.Category
	security2 models.Category
	travel    models.Category
	dir       *fakeCategories
}

func buildTestForest() *testForest {
	security := models.Category{ID: uuid.New(), Name: "Security", Slug: "security"}
	web := models.Category{ID: uuid.New(), Name: "Web", Slug: "web", ParentID: &security.ID}
	xss := models.Category{ID: uuid.New(), Name: "XSS", Slug: "xss", ParentID: &web.ID}
	security2 := models.Category{ID: uuid.New(), Name: "Security2", Slug: "security2"}
	travel := models.Category{ID: uuid.New(), Name: "Travel", Slug: "travel"}

	return &testForest{
		security:  security,
		web:       web,
		xss:       xss,
		security2: security2,
		travel:    travel,
		dir: &fakeCategories{cats: []models.Category{
			security, web, xss, security2, travel,
		}},
	}
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }
