// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sharing

import (
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// maxTreeDepth bounds every parent-chain walk. A well-formed forest in a
// personal blog is a handful of levels deep; hitting this limit means the
// parent pointers form a cycle and the walk must fail instead of spinning.
const maxTreeDepth = 64

// CategoryDirectory is the read surface the resolver needs from category
// storage. *store.CategoryStore implements it; tests use an in-memory fake.
type CategoryDirectory interface {
	FindByID(id uuid.UUID) (*models.Category, error)
	FindRootBySlug(slug string) (*models.Category, error)
	FindChildBySlug(parentID uuid.UUID, slug string) (*models.Category, error)
	ListAll() ([]models.Category, error)
}

// PathResolver resolves slug paths to category nodes and reconstructs
// ancestor paths by walking parent pointers.
type PathResolver struct {
	categories CategoryDirectory
}

// NewPathResolver returns a PathResolver over the given directory.
func NewPathResolver(categories CategoryDirectory) *PathResolver {
	return &PathResolver{categories: categories}
}

// ResolveBySlugs walks from a root category along the given slug sequence.
// Every step must match exactly; the walk fails closed with (nil, nil) the
// moment any slug has no match — it never falls back to a partial match.
func (r *PathResolver) ResolveBySlugs(slugs []string) (*models.Category, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	current, err := r.categories.FindRootBySlug(slugs[0])
	if err != nil {
		return nil, fmt.Errorf("resolve root slug %q: %w", slugs[0], err)
	}
	if current == nil {
		return nil, nil
	}

	for _, slug := range slugs[1:] {
		current, err = r.categories.FindChildBySlug(current.ID, slug)
		if err != nil {
			return nil, fmt.Errorf("resolve child slug %q: %w", slug, err)
		}
		if current == nil {
			return nil, nil
		}
	}
	return current, nil
}

// AncestorPath returns the ordered list of category names from the root
// down to categoryID, for breadcrumbs and display. The walk is bounded by
// maxTreeDepth as a cycle guard.
func (r *PathResolver) AncestorPath(categoryID uuid.UUID) ([]string, error) {
	var names []string
	id := categoryID
	for depth := 0; ; depth++ {
		if depth >= maxTreeDepth {
			return nil, fmt.Errorf("ancestor path for %s: category tree too deep or cyclic", categoryID)
		}
		cat, err := r.categories.FindByID(id)
		if err != nil {
			return nil, fmt.Errorf("ancestor path for %s: %w", categoryID, err)
		}
		if cat == nil {
			return nil, fmt.Errorf("ancestor path for %s: category %s not found", categoryID, id)
		}
		names = append([]string{cat.Name}, names...)
		if cat.ParentID == nil {
			return names, nil
		}
		id = *cat.ParentID
	}
}

// SlugPath returns the ordered root-to-node slug list for building URLs.
func (r *PathResolver) SlugPath(categoryID uuid.UUID) ([]string, error) {
	var slugs []string
	id := categoryID
	for depth := 0; ; depth++ {
		if depth >= maxTreeDepth {
			return nil, fmt.Errorf("slug path for %s: category tree too deep or cyclic", categoryID)
		}
		cat, err := r.categories.FindByID(id)
		if err != nil {
			return nil, fmt.Errorf("slug path for %s: %w", categoryID, err)
		}
		if cat == nil {
			return nil, fmt.Errorf("slug path for %s: category %s not found", categoryID, id)
		}
		slugs = append([]string{cat.Slug}, slugs...)
		if cat.ParentID == nil {
			return slugs, nil
		}
		id = *cat.ParentID
	}
}

// Forest is an in-memory index of the whole category forest, loaded once
// per evaluation so containment checks don't chase pointers through the
// database one row at a time.
type Forest struct {
	byID     map[uuid.UUID]*models.Category
	children map[uuid.UUID][]uuid.UUID
}

// LoadForest reads every category from the directory and indexes it.
func LoadForest(categories CategoryDirectory) (*Forest, error) {
	all, err := categories.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load category forest: %w", err)
	}
	f := &Forest{
		byID:     make(map[uuid.UUID]*models.Category, len(all)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
	for i := range all {
		c := &all[i]
		f.byID[c.ID] = c
		if c.ParentID != nil {
			f.children[*c.ParentID] = append(f.children[*c.ParentID], c.ID)
		}
	}
	return f, nil
}

// Contains reports whether candidate is ancestorID itself or one of its
// descendants. Membership is decided by walking candidate's parent chain
// and testing ids — never by comparing name-path strings, which would make
// a category named "Security2" look contained in a share on "Security".
func (f *Forest) Contains(ancestorID, candidate uuid.UUID) bool {
	id := candidate
	for depth := 0; depth < maxTreeDepth; depth++ {
		if id == ancestorID {
			return true
		}
		cat, ok := f.byID[id]
		if !ok || cat.ParentID == nil {
			return false
		}
		id = *cat.ParentID
	}
	// Depth exhausted: treat a malformed chain as not contained.
	return false
}

// Ancestors returns the category with the given id followed by its parent
// chain up to the root, bounded by maxTreeDepth so a corrupted chain
// terminates. Returns nil for an unknown id.
func (f *Forest) Ancestors(id uuid.UUID) []*models.Category {
	var chain []*models.Category
	cur, ok := f.byID[id]
	for depth := 0; ok && depth < maxTreeDepth; depth++ {
		chain = append(chain, cur)
		if cur.ParentID == nil {
			break
		}
		cur, ok = f.byID[*cur.ParentID]
	}
	return chain
}

// DescendantIDs returns rootID plus every category below it, breadth-first.
func (f *Forest) DescendantIDs(rootID uuid.UUID) []uuid.UUID {
	if _, ok := f.byID[rootID]; !ok {
		return nil
	}
	ids := []uuid.UUID{rootID}
	seen := map[uuid.UUID]bool{rootID: true}
	for i := 0; i < len(ids); i++ {
		for _, child := range f.children[ids[i]] {
			if !seen[child] {
				seen[child] = true
				ids = append(ids, child)
			}
		}
	}
	return ids
}

// Get returns the indexed category, or nil if unknown.
func (f *Forest) Get(id uuid.UUID) *models.Category {
	return f.byID[id]
}
