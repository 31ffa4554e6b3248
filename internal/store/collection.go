// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// CollectionStore manages collections ("databases") and their items.
type CollectionStore struct {
	db *sql.DB
}

// NewCollectionStore returns a new CollectionStore.
func NewCollectionStore(db *sql.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

const collectionColumns = `id, name, slug, description, category_id, created_at, updated_at`

func scanCollection(scanner interface{ Scan(...any) error }) (*models.Collection, error) {
	c := &models.Collection{}
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CategoryID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindByID retrieves a collection by ID. Returns nil if not found.
func (s *CollectionStore) FindByID(id uuid.UUID) (*models.Collection, error) {
	c, err := scanCollection(s.db.QueryRow(`SELECT `+collectionColumns+` FROM collections WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find collection by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a collection by its slug. Returns nil if not found.
func (s *CollectionStore) FindBySlug(slug string) (*models.Collection, error) {
	c, err := scanCollection(s.db.QueryRow(`SELECT `+collectionColumns+` FROM collections WHERE slug = $1`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find collection by slug: %w", err)
	}
	return c, nil
}

// ListByCategory returns the collections directly inside a category.
func (s *CollectionStore) ListByCategory(categoryID uuid.UUID) ([]models.Collection, error) {
	rows, err := s.db.Query(`SELECT `+collectionColumns+` FROM collections WHERE category_id = $1 ORDER BY name`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list collections by category: %w", err)
	}
	defer rows.Close()

	var items []models.Collection
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.CategoryID,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Create inserts a new collection and returns it.
func (s *CollectionStore) Create(c *models.Collection) (*models.Collection, error) {
	result, err := scanCollection(s.db.QueryRow(`
		INSERT INTO collections (name, slug, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+collectionColumns,
		c.Name, c.Slug, c.Description, c.CategoryID,
	))
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return result, nil
}

// Delete removes a collection by ID. Items cascade.
func (s *CollectionStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

const itemColumns = `id, collection_id, title, properties, body, sort_order, created_at, updated_at`

// FindItem retrieves a single item by ID. Returns nil if not found.
func (s *CollectionStore) FindItem(id uuid.UUID) (*models.CollectionItem, error) {
	it := &models.CollectionItem{}
	err := s.db.QueryRow(`SELECT `+itemColumns+` FROM collection_items WHERE id = $1`, id).Scan(
		&it.ID, &it.CollectionID, &it.Title, &it.Properties, &it.Body,
		&it.SortOrder, &it.CreatedAt, &it.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find collection item: %w", err)
	}
	return it, nil
}

// ListItems returns a collection's items in display order.
func (s *CollectionStore) ListItems(collectionID uuid.UUID) ([]models.CollectionItem, error) {
	rows, err := s.db.Query(`
		SELECT `+itemColumns+` FROM collection_items
		WHERE collection_id = $1 ORDER BY sort_order, title
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list collection items: %w", err)
	}
	defer rows.Close()

	var items []models.CollectionItem
	for rows.Next() {
		var it models.CollectionItem
		if err := rows.Scan(
			&it.ID, &it.CollectionID, &it.Title, &it.Properties, &it.Body,
			&it.SortOrder, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan collection item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateItem inserts a new item and returns it.
func (s *CollectionStore) CreateItem(it *models.CollectionItem) (*models.CollectionItem, error) {
	if len(it.Properties) == 0 {
		it.Properties = []byte(`{}`)
	}
	result := &models.CollectionItem{}
	err := s.db.QueryRow(`
		INSERT INTO collection_items (collection_id, title, properties, body, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+itemColumns,
		it.CollectionID, it.Title, it.Properties, it.Body, it.SortOrder,
	).Scan(
		&result.ID, &result.CollectionID, &result.Title, &result.Properties,
		&result.Body, &result.SortOrder, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create collection item: %w", err)
	}
	return result, nil
}

// DeleteItem removes a single item by ID.
func (s *CollectionStore) DeleteItem(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM collection_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collection item: %w", err)
	}
	return nil
}
