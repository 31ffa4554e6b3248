package store

import (
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

func TestCategoryStoreSlugWalk(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	suffix := uuid.NewString()[:8]

	root := makeTestCategory(t, db, "Projects", "projects-"+suffix, nil)
	child := makeTestCategory(t, db, "Hardware", "hardware-"+suffix, &root.ID)

	found, err := s.FindRootBySlug("projects-" + suffix)
	if err != nil {
		t.Fatalf("FindRootBySlug: %v", err)
	}
	if found == nil || found.ID != root.ID {
		t.Fatalf("FindRootBySlug = %v, want %s", found, root.ID)
	}

	// A child slug is not a root slug.
	if got, err := s.FindRootBySlug("hardware-" + suffix); err != nil || got != nil {
		t.Errorf("child slug resolved at root: %v, %v", got, err)
	}

	step, err := s.FindChildBySlug(root.ID, "hardware-"+suffix)
	if err != nil {
		t.Fatalf("FindChildBySlug: %v", err)
	}
	if step == nil || step.ID != child.ID {
		t.Errorf("FindChildBySlug = %v, want %s", step, child.ID)
	}

	// Wrong parent finds nothing.
	if got, err := s.FindChildBySlug(child.ID, "hardware-"+suffix); err != nil || got != nil {
		t.Errorf("FindChildBySlug under wrong parent: %v, %v", got, err)
	}
}

func TestCategoryStoreSiblingSlugUniqueness(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	suffix := uuid.NewString()[:8]

	root := makeTestCategory(t, db, "Dupes", "dupes-"+suffix, nil)
	makeTestCategory(t, db, "Twin", "twin-"+suffix, &root.ID)

	_, err := s.Create(&models.Category{Name: "Twin Again", Slug: "twin-" + suffix, ParentID: &root.ID})
	if err == nil {
		t.Fatal("duplicate sibling slug accepted")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("error is not a unique violation: %v", err)
	}

	// The same slug under a different parent is fine.
	other := makeTestCategory(t, db, "Other Root", "other-root-"+suffix, nil)
	dup := makeTestCategory(t, db, "Twin Elsewhere", "twin-"+suffix, &other.ID)
	if dup.Slug != "twin-"+suffix {
		t.Errorf("slug = %q", dup.Slug)
	}
}

func TestCategoryStoreNextSortOrder(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	suffix := uuid.NewString()[:8]

	root := makeTestCategory(t, db, "Ordered", "ordered-"+suffix, nil)

	first, err := s.NextSortOrder(&root.ID)
	if err != nil {
		t.Fatalf("NextSortOrder: %v", err)
	}

	c := makeTestCategory(t, db, "Slot", "slot-"+suffix, &root.ID)
	if _, err := db.Exec("UPDATE categories SET sort_order = $1 WHERE id = $2", first, c.ID); err != nil {
		t.Fatalf("set sort order: %v", err)
	}

	second, err := s.NextSortOrder(&root.ID)
	if err != nil {
		t.Fatalf("NextSortOrder: %v", err)
	}
	if second <= first {
		t.Errorf("NextSortOrder = %d after %d, want larger", second, first)
	}
}

func TestCategoryStoreFlatTreeDepths(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	suffix := uuid.NewString()[:8]

	root := makeTestCategory(t, db, "Depth Root", "depth-root-"+suffix, nil)
	mid := makeTestCategory(t, db, "Depth Mid", "depth-mid-"+suffix, &root.ID)
	leaf := makeTestCategory(t, db, "Depth Leaf", "depth-leaf-"+suffix, &mid.ID)

	flat, err := s.FlatTree()
	if err != nil {
		t.Fatalf("FlatTree: %v", err)
	}

	depths := map[uuid.UUID]int{}
	for _, c := range flat {
		depths[c.ID] = c.Depth
	}
	if depths[root.ID] != 0 || depths[mid.ID] != 1 || depths[leaf.ID] != 2 {
		t.Errorf("depths = root:%d mid:%d leaf:%d, want 0/1/2",
			depths[root.ID], depths[mid.ID], depths[leaf.ID])
	}
}
