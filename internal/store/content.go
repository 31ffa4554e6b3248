// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// ContentStore handles all content-related database operations.
// It serves both posts and pages through the unified content table.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const contentColumns = `id, type, title, slug, body, excerpt, status, visibility,
	       category_id, meta_description, meta_keywords, author_id,
	       published_at, created_at, updated_at`

func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	c := &models.Content{}
	err := scanner.Scan(
		&c.ID, &c.Type, &c.Title, &c.Slug, &c.Body, &c.Excerpt,
		&c.Status, &c.Visibility, &c.CategoryID,
		&c.MetaDescription, &c.MetaKeywords, &c.AuthorID,
		&c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContentStore) queryMany(query string, args ...any) ([]models.Content, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		var c models.Content
		if err := rows.Scan(
			&c.ID, &c.Type, &c.Title, &c.Slug, &c.Body, &c.Excerpt,
			&c.Status, &c.Visibility, &c.CategoryID,
			&c.MetaDescription, &c.MetaKeywords, &c.AuthorID,
			&c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// ListByType returns all content items of the given type, ordered by creation date descending.
func (s *ContentStore) ListByType(contentType models.ContentType) ([]models.Content, error) {
	items, err := s.queryMany(`
		SELECT `+contentColumns+`
		FROM content
		WHERE type = $1
		ORDER BY created_at DESC
	`, contentType)
	if err != nil {
		return nil, fmt.Errorf("list content by type: %w", err)
	}
	return items, nil
}

// ListPublishedPublic returns published, publicly visible content of the
// given type, newest first. Used for the homepage listing; private items
// never appear here.
func (s *ContentStore) ListPublishedPublic(contentType models.ContentType) ([]models.Content, error) {
	items, err := s.queryMany(`
		SELECT `+contentColumns+`
		FROM content
		WHERE type = $1 AND status = 'published' AND visibility = 'public'
		ORDER BY published_at DESC NULLS LAST
	`, contentType)
	if err != nil {
		return nil, fmt.Errorf("list published content: %w", err)
	}
	return items, nil
}

// ListPublishedByCategories returns published posts whose category is in
// categoryIDs, newest first. This is the query the content scoper narrows
// with a granted share's category set; visibility is intentionally not
// filtered, because a grant is exactly what makes private items readable.
func (s *ContentStore) ListPublishedByCategories(categoryIDs []uuid.UUID) ([]models.Content, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	items, err := s.queryMany(`
		SELECT `+contentColumns+`
		FROM content
		WHERE type = 'post' AND status = 'published' AND category_id = ANY($1)
		ORDER BY published_at DESC NULLS LAST
	`, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("list content by categories: %w", err)
	}
	return items, nil
}

// FindByID retrieves a content item by its UUID. Returns nil if not found.
func (s *ContentStore) FindByID(id uuid.UUID) (*models.Content, error) {
	c, err := scanContent(s.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// FindPublicBySlug retrieves a published, publicly visible content item by
// its slug. Used for public page rendering; returns nil for private items
// so the public route cannot tell them apart from missing ones.
func (s *ContentStore) FindPublicBySlug(slug string) (*models.Content, error) {
	c, err := scanContent(s.db.QueryRow(`
		SELECT `+contentColumns+`
		FROM content WHERE slug = $1 AND status = 'published' AND visibility = 'public'
	`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find public content by slug: %w", err)
	}
	return c, nil
}

// FindPublishedBySlug retrieves a published content item by slug regardless
// of visibility. Share-scoped and invitation paths use this after a grant
// decision; it must never be called on an unauthenticated public route.
func (s *ContentStore) FindPublishedBySlug(slug string) (*models.Content, error) {
	c, err := scanContent(s.db.QueryRow(`
		SELECT `+contentColumns+`
		FROM content WHERE slug = $1 AND status = 'published'
	`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published content by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new content item and returns it with the generated ID.
func (s *ContentStore) Create(c *models.Content) (*models.Content, error) {
	// If publishing, set the published_at timestamp.
	if c.Status == models.ContentStatusPublished && c.PublishedAt == nil {
		now := time.Now()
		c.PublishedAt = &now
	}
	if c.Visibility == "" {
		c.Visibility = models.VisibilityPublic
	}

	result, err := scanContent(s.db.QueryRow(`
		INSERT INTO content (type, title, slug, body, excerpt, status, visibility,
		                     category_id, meta_description, meta_keywords, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+contentColumns,
		c.Type, c.Title, c.Slug, c.Body, c.Excerpt, c.Status, c.Visibility,
		c.CategoryID, c.MetaDescription, c.MetaKeywords, c.AuthorID, c.PublishedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return result, nil
}

// Update modifies an existing content item.
func (s *ContentStore) Update(c *models.Content) error {
	// If transitioning to published and no published_at set, set it now.
	if c.Status == models.ContentStatusPublished && c.PublishedAt == nil {
		now := time.Now()
		c.PublishedAt = &now
	}

	_, err := s.db.Exec(`
		UPDATE content SET
			title = $1, slug = $2, body = $3, excerpt = $4, status = $5,
			visibility = $6, category_id = $7, meta_description = $8,
			meta_keywords = $9, published_at = $10, updated_at = NOW()
		WHERE id = $11
	`, c.Title, c.Slug, c.Body, c.Excerpt, c.Status,
		c.Visibility, c.CategoryID, c.MetaDescription, c.MetaKeywords, c.PublishedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	return nil
}

// Delete removes a content item by ID.
func (s *ContentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// CountByType returns the number of content items of the given type.
func (s *ContentStore) CountByType(contentType models.ContentType) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM content WHERE type = $1`, contentType).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return count, nil
}
