// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sharing

import (
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// Scoper translates a granted share into containment checks and query
// predicates over the category forest. It loads the forest once per
// construction, so build one per request, not one per check.
type Scoper struct {
	forest *Forest
}

// NewScoper loads the category forest and returns a Scoper over it.
func NewScoper(categories CategoryDirectory) (*Scoper, error) {
	forest, err := LoadForest(categories)
	if err != nil {
		return nil, err
	}
	return &Scoper{forest: forest}, nil
}

// Forest exposes the category index the scoper was built over, for
// callers that need to walk ancestor chains against the same snapshot.
func (s *Scoper) Forest() *Forest {
	return s.forest
}

// GrantedCategoryIDs returns the set of category ids a granted category
// share makes visible: just the shared category when the grant does not
// cascade, or the full subtree when IncludeSubcategories is set. The result
// feeds directly into a `category_id = ANY(...)` content query.
func (s *Scoper) GrantedCategoryIDs(share *models.Share) ([]uuid.UUID, error) {
	if share.ScopeKind != models.ScopeCategory {
		return nil, fmt.Errorf("granted category ids: share scope is %s, not category", share.ScopeKind)
	}
	if s.forest.Get(share.ScopeID) == nil {
		// Shared category was deleted; the share grants nothing.
		return nil, nil
	}
	if !share.IncludeSubcategories {
		return []uuid.UUID{share.ScopeID}, nil
	}
	return s.forest.DescendantIDs(share.ScopeID), nil
}

// ContainsCategory reports whether categoryID falls inside a granted
// category share's scope.
func (s *Scoper) ContainsCategory(share *models.Share, categoryID uuid.UUID) bool {
	if share.ScopeKind != models.ScopeCategory {
		return false
	}
	if s.forest.Get(share.ScopeID) == nil {
		return false
	}
	if !share.IncludeSubcategories {
		return categoryID == share.ScopeID
	}
	return s.forest.Contains(share.ScopeID, categoryID)
}

// AllowsContent re-checks that a concrete content item is inside the
// granted scope. For a post share the item must be the shared post itself.
// For a category share the item's own category must still be contained —
// a post moved to a different category after the link was issued must stop
// being reachable, even though its slug still resolves.
func (s *Scoper) AllowsContent(share *models.Share, c *models.Content) bool {
	if c == nil || !c.IsPublished() {
		return false
	}
	switch share.ScopeKind {
	case models.ScopePost:
		return c.ID == share.ScopeID
	case models.ScopeCategory:
		if c.CategoryID == nil {
			return false
		}
		return s.ContainsCategory(share, *c.CategoryID)
	default:
		return false
	}
}

// AllowsCollection reports whether a collection is reachable through a
// granted category share: its owning category must be contained.
func (s *Scoper) AllowsCollection(share *models.Share, coll *models.Collection) bool {
	if coll == nil || share.ScopeKind != models.ScopeCategory {
		return false
	}
	return s.ContainsCategory(share, coll.CategoryID)
}

// AllowsItem re-checks a collection item: the item must belong to the
// collection, and the collection must be contained in the granted scope.
func (s *Scoper) AllowsItem(share *models.Share, coll *models.Collection, item *models.CollectionItem) bool {
	if item == nil || coll == nil {
		return false
	}
	if item.CollectionID != coll.ID {
		return false
	}
	return s.AllowsCollection(share, coll)
}

// FilterContent keeps only the items allowed by the share. Used to narrow
// listing results before they reach the rendering layer.
func (s *Scoper) FilterContent(share *models.Share, items []models.Content) []models.Content {
	var out []models.Content
	for i := range items {
		if s.AllowsContent(share, &items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
