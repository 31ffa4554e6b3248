// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/cache"
	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/sharing"
	"inkpress/internal/slug"
	"inkpress/internal/store"
)

// Admin groups the JSON API handlers behind the session + 2FA gate.
type Admin struct {
	content     *store.ContentStore
	categories  *store.CategoryStore
	collections *store.CollectionStore
	shares      *store.ShareStore
	invitations *store.InvitationStore
	users       *store.UserStore
	pageCache   *cache.PageCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(content *store.ContentStore, categories *store.CategoryStore, collections *store.CollectionStore, shares *store.ShareStore, invitations *store.InvitationStore, users *store.UserStore, pageCache *cache.PageCache) *Admin {
	return &Admin{
		content:     content,
		categories:  categories,
		collections: collections,
		shares:      shares,
		invitations: invitations,
		users:       users,
		pageCache:   pageCache,
	}
}

// ---------------------------------------------------------------------------
// Share settings
// ---------------------------------------------------------------------------

// shareView is the API shape for share settings. A scope with no share row
// yet renders as the zero settings, so the client never needs to know
// whether the row exists.
type shareView struct {
	ScopeKind            models.ScopeKind `json:"scope_kind"`
	ScopeID              uuid.UUID        `json:"scope_id"`
	PublicEnabled        bool             `json:"public_enabled"`
	PublicURL            *string          `json:"public_url,omitempty"`
	PublicExpiresAt      *time.Time       `json:"public_expires_at,omitempty"`
	IncludeSubcategories bool             `json:"include_subcategories"`
	Invitations          int              `json:"invitations"`
}

func (a *Admin) shareViewFor(kind models.ScopeKind, scopeID uuid.UUID, share *models.Share) (*shareView, error) {
	v := &shareView{ScopeKind: kind, ScopeID: scopeID}
	if share == nil {
		return v, nil
	}

	v.PublicEnabled = share.PublicEnabled
	v.PublicExpiresAt = share.PublicExpiresAt
	v.IncludeSubcategories = share.IncludeSubcategories

	if share.PublicEnabled && share.PublicToken != nil {
		prefix := "/sc/"
		if kind == models.ScopePost {
			prefix = "/s/"
		}
		url := prefix + *share.PublicToken
		v.PublicURL = &url
	}

	invs, err := a.invitations.ListByShare(share.ID)
	if err != nil {
		return nil, err
	}
	v.Invitations = len(invs)
	return v, nil
}

// sharePatchRequest is the PUT body for share settings. Absent fields are
// left untouched; clear_expiry removes an expiry regardless of the
// public_expires_at field.
type sharePatchRequest struct {
	PublicEnabled        *bool      `json:"public_enabled"`
	PublicExpiresAt      *time.Time `json:"public_expires_at"`
	ClearExpiry          bool       `json:"clear_expiry"`
	IncludeSubcategories *bool      `json:"include_subcategories"`
	RegenerateToken      bool       `json:"regenerate_token"`
}

func (req *sharePatchRequest) toPatch() store.SharePatch {
	patch := store.SharePatch{
		PublicEnabled:        req.PublicEnabled,
		IncludeSubcategories: req.IncludeSubcategories,
		RegenerateToken:      req.RegenerateToken,
	}
	switch {
	case req.ClearExpiry:
		patch.PublicExpiresAt = &sql.NullTime{}
	case req.PublicExpiresAt != nil:
		patch.PublicExpiresAt = &sql.NullTime{Time: *req.PublicExpiresAt, Valid: true}
	}
	return patch
}

// scopeFromRequest resolves the {id} URL param against the store for the
// given kind, verifying the entity exists. Writes the error response on
// failure.
func (a *Admin) scopeFromRequest(w http.ResponseWriter, r *http.Request, kind models.ScopeKind) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}

	switch kind {
	case models.ScopeCategory:
		cat, err := a.categories.FindByID(id)
		if err != nil {
			slog.Error("find category failed", "error", err, "id", id)
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return uuid.Nil, false
		}
		if cat == nil {
			errorJSON(w, http.StatusNotFound, "category not found")
			return uuid.Nil, false
		}
	case models.ScopePost:
		item, err := a.content.FindByID(id)
		if err != nil {
			slog.Error("find content failed", "error", err, "id", id)
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return uuid.Nil, false
		}
		if item == nil {
			errorJSON(w, http.StatusNotFound, "post not found")
			return uuid.Nil, false
		}
	}
	return id, true
}

// GetShare handles GET /admin/api/{categories|posts}/{id}/share.
func (a *Admin) GetShare(kind models.ScopeKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scopeID, ok := a.scopeFromRequest(w, r, kind)
		if !ok {
			return
		}

		share, err := a.shares.GetByScope(kind, scopeID)
		if err != nil {
			slog.Error("get share failed", "error", err, "scope", scopeID)
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		view, err := a.shareViewFor(kind, scopeID, share)
		if err != nil {
			slog.Error("build share view failed", "error", err, "scope", scopeID)
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// PutShare handles PUT /admin/api/{categories|posts}/{id}/share. On token
// regeneration the pages cached under the old token are flushed before the
// response is written, so the revoked link cannot serve stale HTML.
func (a *Admin) PutShare(kind models.ScopeKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scopeID, ok := a.scopeFromRequest(w, r, kind)
		if !ok {
			return
		}

		var req sharePatchRequest
		if !readJSON(w, r, &req) {
			return
		}
		if kind == models.ScopePost && req.IncludeSubcategories != nil {
			errorJSON(w, http.StatusBadRequest, "include_subcategories only applies to category shares")
			return
		}
		if req.PublicExpiresAt != nil && !req.PublicExpiresAt.After(time.Now()) {
			errorJSON(w, http.StatusBadRequest, "public_expires_at must be in the future")
			return
		}

		share, oldToken, err := a.shares.UpsertSettings(kind, scopeID, req.toPatch())
		if err != nil {
			slog.Error("upsert share failed", "error", err, "scope", scopeID)
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		if oldToken != "" {
			a.pageCache.InvalidateToken(r.Context(), oldToken)
		}

		view, err := a.shareViewFor(kind, scopeID, share)
		if err != nil {
			slog.Error("build share view failed", "error", err, "scope", scopeID)
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// DeleteShare handles DELETE /admin/api/{categories|posts}/{id}/share:
// disable all sharing for the scope, cascading to invitations. Idempotent.
func (a *Admin) DeleteShare(kind models.ScopeKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scopeID, ok := a.scopeFromRequest(w, r, kind)
		if !ok {
			return
		}

		oldToken, err := a.shares.Disable(kind, scopeID)
		if err != nil {
			slog.Error("disable share failed", "error", err, "scope", scopeID)
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		if oldToken != "" {
			a.pageCache.InvalidateToken(r.Context(), oldToken)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetShareByPath handles GET /admin/api/categories/by-path/*: share
// settings addressed by category slug path instead of id.
func (a *Admin) GetShareByPath(w http.ResponseWriter, r *http.Request) {
	segments, err := slug.SplitPath(chi.URLParam(r, "*"))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	resolver := sharing.NewPathResolver(a.categories)
	cat, err := resolver.ResolveBySlugs(segments)
	if err != nil {
		slog.Error("resolve slug path failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	if cat == nil {
		errorJSON(w, http.StatusNotFound, "category not found")
		return
	}

	share, err := a.shares.GetByScope(models.ScopeCategory, cat.ID)
	if err != nil {
		slog.Error("get share failed", "error", err, "scope", cat.ID)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	view, err := a.shareViewFor(models.ScopeCategory, cat.ID, share)
	if err != nil {
		slog.Error("build share view failed", "error", err, "scope", cat.ID)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ---------------------------------------------------------------------------
// Invitations
// ---------------------------------------------------------------------------

// shareFromRequest loads the share addressed by the {shareID} URL param.
func (a *Admin) shareFromRequest(w http.ResponseWriter, r *http.Request) *models.Share {
	shareID, err := uuid.Parse(chi.URLParam(r, "shareID"))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid share id")
		return nil
	}

	share, err := a.shares.FindByID(shareID)
	if err != nil {
		slog.Error("find share failed", "error", err, "share", shareID)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return nil
	}
	if share == nil {
		errorJSON(w, http.StatusNotFound, "share not found")
		return nil
	}
	return share
}

// ListInvitations handles GET /admin/api/shares/{shareID}/invitations.
func (a *Admin) ListInvitations(w http.ResponseWriter, r *http.Request) {
	share := a.shareFromRequest(w, r)
	if share == nil {
		return
	}

	invs, err := a.invitations.ListByShare(share.ID)
	if err != nil {
		slog.Error("list invitations failed", "error", err, "share", share.ID)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invitations": invs})
}

// bulkInviteRequest is the POST body for inviting people to a share.
type bulkInviteRequest struct {
	Emails    []string   `json:"emails"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// inviteResult reports the outcome for one address in a bulk invite.
type inviteResult struct {
	Email  string `json:"email"`
	Status string `json:"status"` // "invited" or "error"
	Error  string `json:"error,omitempty"`
}

// BulkInvite handles POST /admin/api/shares/{shareID}/invitations. Each
// address succeeds or fails on its own; one bad address never aborts the
// rest. Re-inviting an existing address resets it to pending in place.
func (a *Admin) BulkInvite(w http.ResponseWriter, r *http.Request) {
	share := a.shareFromRequest(w, r)
	if share == nil {
		return
	}

	var req bulkInviteRequest
	if !readJSON(w, r, &req) {
		return
	}
	if len(req.Emails) == 0 {
		errorJSON(w, http.StatusBadRequest, "emails is required")
		return
	}
	if len(req.Emails) > maxBulkInvites {
		errorJSON(w, http.StatusBadRequest, "too many addresses in one request")
		return
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now()) {
		errorJSON(w, http.StatusBadRequest, "expires_at must be in the future")
		return
	}

	results := make([]inviteResult, 0, len(req.Emails))
	for _, email := range req.Emails {
		if msg := validateEmail(email); msg != "" {
			results = append(results, inviteResult{Email: email, Status: "error", Error: msg})
			continue
		}

		// Link the invitation to an existing account when one matches.
		var userID *uuid.UUID
		if user, err := a.users.FindByEmail(email); err == nil && user != nil {
			userID = &user.ID
		}

		if _, err := a.invitations.Upsert(share.ID, email, req.ExpiresAt, userID); err != nil {
			slog.Error("invite failed", "error", err, "share", share.ID)
			results = append(results, inviteResult{Email: email, Status: "error", Error: "could not store invitation"})
			continue
		}
		results = append(results, inviteResult{Email: email, Status: "invited"})
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// RevokeInvitation handles DELETE
// /admin/api/shares/{shareID}/invitations?email=...; revoking an address
// that was never invited is a no-op success.
func (a *Admin) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	share := a.shareFromRequest(w, r)
	if share == nil {
		return
	}

	email := r.URL.Query().Get("email")
	if msg := validateEmail(email); msg != "" {
		errorJSON(w, http.StatusBadRequest, msg)
		return
	}

	removed, err := a.invitations.Revoke(share.ID, email)
	if err != nil {
		slog.Error("revoke invitation failed", "error", err, "share", share.ID)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}

// ---------------------------------------------------------------------------
// Content
// ---------------------------------------------------------------------------

// contentRequest is the POST/PUT body for content items.
type contentRequest struct {
	Type       models.ContentType   `json:"type"`
	Title      string               `json:"title"`
	Slug       string               `json:"slug"`
	Body       string               `json:"body"`
	Excerpt    *string              `json:"excerpt"`
	Status     models.ContentStatus `json:"status"`
	Visibility models.Visibility    `json:"visibility"`
	CategoryID *uuid.UUID           `json:"category_id"`
}

// ListContent handles GET /admin/api/content?type=post|page.
func (a *Admin) ListContent(w http.ResponseWriter, r *http.Request) {
	contentType := models.ContentType(r.URL.Query().Get("type"))
	if contentType == "" {
		contentType = models.ContentTypePost
	}
	if contentType != models.ContentTypePost && contentType != models.ContentTypePage {
		errorJSON(w, http.StatusBadRequest, "type must be post or page")
		return
	}

	items, err := a.content.ListByType(contentType)
	if err != nil {
		slog.Error("list content failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": items})
}

// CreateContent handles POST /admin/api/content.
func (a *Admin) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !readJSON(w, r, &req) {
		return
	}

	if req.Slug == "" {
		req.Slug = slug.Generate(req.Title)
	}
	if msg := validateContent(req.Title, req.Slug, req.Body); msg != "" {
		errorJSON(w, http.StatusBadRequest, msg)
		return
	}
	if !slug.Valid(req.Slug) {
		errorJSON(w, http.StatusBadRequest, "slug is not valid")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	item := &models.Content{
		Type:       req.Type,
		Title:      req.Title,
		Slug:       req.Slug,
		Body:       req.Body,
		Excerpt:    req.Excerpt,
		Status:     req.Status,
		Visibility: req.Visibility,
		CategoryID: req.CategoryID,
		AuthorID:   sess.UserID,
	}
	if item.Type == "" {
		item.Type = models.ContentTypePost
	}
	if item.Status == "" {
		item.Status = models.ContentStatusDraft
	}
	if item.Status == models.ContentStatusPublished {
		now := time.Now()
		item.PublishedAt = &now
	}

	created, err := a.content.Create(item)
	if err != nil {
		if store.IsUniqueViolation(err) {
			errorJSON(w, http.StatusConflict, "slug already in use")
			return
		}
		slog.Error("create content failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.pageCache.InvalidateHomepage(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// UpdateContent handles PUT /admin/api/content/{id}.
func (a *Admin) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := a.content.FindByID(id)
	if err != nil {
		slog.Error("find content failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		errorJSON(w, http.StatusNotFound, "content not found")
		return
	}

	var req contentRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Slug == "" {
		req.Slug = item.Slug
	}
	if msg := validateContent(req.Title, req.Slug, req.Body); msg != "" {
		errorJSON(w, http.StatusBadRequest, msg)
		return
	}
	if !slug.Valid(req.Slug) {
		errorJSON(w, http.StatusBadRequest, "slug is not valid")
		return
	}

	oldSlug := item.Slug
	item.Title = req.Title
	item.Slug = req.Slug
	item.Body = req.Body
	item.Excerpt = req.Excerpt
	item.Visibility = req.Visibility
	item.CategoryID = req.CategoryID
	if req.Status != "" {
		if req.Status == models.ContentStatusPublished && item.PublishedAt == nil {
			now := time.Now()
			item.PublishedAt = &now
		}
		item.Status = req.Status
	}

	if err := a.content.Update(item); err != nil {
		if store.IsUniqueViolation(err) {
			errorJSON(w, http.StatusConflict, "slug already in use")
			return
		}
		slog.Error("update content failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Edits can change listings and any cached shared render of this
	// post, so flush broadly.
	a.pageCache.InvalidateAll(r.Context())
	if oldSlug != item.Slug {
		a.pageCache.InvalidatePage(r.Context(), cache.SlugKey(oldSlug))
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteContent handles DELETE /admin/api/content/{id}. Any post share on
// the item is disabled too, so its token dies with the post.
func (a *Admin) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}

	oldToken, err := a.shares.Disable(models.ScopePost, id)
	if err != nil {
		slog.Error("disable post share failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	if oldToken != "" {
		a.pageCache.InvalidateToken(r.Context(), oldToken)
	}

	if err := a.content.Delete(id); err != nil {
		slog.Error("delete content failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// categoryRequest is the POST body for categories.
type categoryRequest struct {
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// ListCategories handles GET /admin/api/categories: the depth-annotated
// flat tree.
func (a *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := a.categories.FlatTree()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

// CreateCategory handles POST /admin/api/categories.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !readJSON(w, r, &req) {
		return
	}

	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}
	if req.Name == "" {
		errorJSON(w, http.StatusBadRequest, "name is required")
		return
	}
	if !slug.Valid(req.Slug) {
		errorJSON(w, http.StatusBadRequest, "slug is not valid")
		return
	}
	if req.ParentID != nil {
		parent, err := a.categories.FindByID(*req.ParentID)
		if err != nil {
			slog.Error("find parent category failed", "error", err)
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}
		if parent == nil {
			errorJSON(w, http.StatusBadRequest, "parent category not found")
			return
		}
	}

	sortOrder, err := a.categories.NextSortOrder(req.ParentID)
	if err != nil {
		slog.Error("next sort order failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	created, err := a.categories.Create(&models.Category{
		Name:      req.Name,
		Slug:      req.Slug,
		ParentID:  req.ParentID,
		SortOrder: sortOrder,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			errorJSON(w, http.StatusConflict, "slug already in use among siblings")
			return
		}
		slog.Error("create category failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// DeleteCategory handles DELETE /admin/api/categories/{id}. The
// category's share (and its invitations) go with it; posts survive with
// their category link cleared.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}

	oldToken, err := a.shares.Disable(models.ScopeCategory, id)
	if err != nil {
		slog.Error("disable category share failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	if oldToken != "" {
		a.pageCache.InvalidateToken(r.Context(), oldToken)
	}

	if err := a.categories.Delete(id); err != nil {
		slog.Error("delete category failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Collections
// ---------------------------------------------------------------------------

// collectionRequest is the POST body for collections.
type collectionRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CreateCollection handles POST /admin/api/categories/{id}/collections.
func (a *Admin) CreateCollection(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := a.scopeFromRequest(w, r, models.ScopeCategory)
	if !ok {
		return
	}

	var req collectionRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}
	if req.Name == "" {
		errorJSON(w, http.StatusBadRequest, "name is required")
		return
	}
	if !slug.Valid(req.Slug) {
		errorJSON(w, http.StatusBadRequest, "slug is not valid")
		return
	}

	created, err := a.collections.Create(&models.Collection{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		CategoryID:  categoryID,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			errorJSON(w, http.StatusConflict, "slug already in use")
			return
		}
		slog.Error("create collection failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// collectionItemRequest is the POST body for collection items.
type collectionItemRequest struct {
	Title      string         `json:"title"`
	Properties map[string]any `json:"properties"`
	Body       string         `json:"body"`
	SortOrder  int            `json:"sort_order"`
}

// CreateCollectionItem handles POST /admin/api/collections/{id}/items.
func (a *Admin) CreateCollectionItem(w http.ResponseWriter, r *http.Request) {
	collectionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}

	coll, err := a.collections.FindByID(collectionID)
	if err != nil {
		slog.Error("find collection failed", "error", err, "id", collectionID)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	if coll == nil {
		errorJSON(w, http.StatusNotFound, "collection not found")
		return
	}

	var req collectionItemRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		errorJSON(w, http.StatusBadRequest, "title is required")
		return
	}

	props, err := marshalProperties(req.Properties)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "properties are not valid")
		return
	}

	created, err := a.collections.CreateItem(&models.CollectionItem{
		CollectionID: coll.ID,
		Title:        req.Title,
		Properties:   props,
		Body:         req.Body,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		slog.Error("create collection item failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// DeleteCollection handles DELETE /admin/api/collections/{id}.
func (a *Admin) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := a.collections.Delete(id); err != nil {
		slog.Error("delete collection failed", "error", err, "id", id)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
