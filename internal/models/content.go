// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentType distinguishes between posts and pages in the unified content table.
type ContentType string

const (
	ContentTypePost ContentType = "post"
	ContentTypePage ContentType = "page"
)

// ContentStatus represents the publishing state of a content item.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
)

// Visibility controls who may read a published content item.
type Visibility string

const (
	// VisibilityPublic content is served on the public site.
	VisibilityPublic Visibility = "public"

	// VisibilityPrivate content is only reachable through a share link
	// or an email invitation. It never appears on public listings.
	VisibilityPrivate Visibility = "private"
)

// Content represents a post or page. Posts and pages share the same table,
// differentiated by the Type field. Posts carry an optional category link
// which anchors them in the sharing hierarchy.
type Content struct {
	ID              uuid.UUID     `json:"id"`
	Type            ContentType   `json:"type"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Body            string        `json:"body"`
	Excerpt         *string       `json:"excerpt,omitempty"`
	Status          ContentStatus `json:"status"`
	Visibility      Visibility    `json:"visibility"`
	CategoryID      *uuid.UUID    `json:"category_id,omitempty"`
	MetaDescription *string       `json:"meta_description,omitempty"`
	MetaKeywords    *string       `json:"meta_keywords,omitempty"`
	AuthorID        uuid.UUID     `json:"author_id"`
	PublishedAt     *time.Time    `json:"published_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// IsPublished returns true if the content item is in published status.
func (c *Content) IsPublished() bool {
	return c.Status == ContentStatusPublished
}

// IsPubliclyVisible returns true if the item may be served without any
// share grant: published and not marked private.
func (c *Content) IsPubliclyVisible() bool {
	return c.Status == ContentStatusPublished && c.Visibility == VisibilityPublic
}
