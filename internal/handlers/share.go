// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/cache"
	"inkpress/internal/markdown"
	"inkpress/internal/models"
	"inkpress/internal/render"
	"inkpress/internal/sharing"
	"inkpress/internal/store"
)

// Shared serves the token-addressed views: /sc/{token}... for category
// shares and /s/{token} for single-post shares. Every request evaluates
// the token fresh against stored share state; rendered pages are cached
// under share:{token}:{path} keys so revoking a token flushes exactly its
// pages and nothing else.
//
// Failure surface is deliberately flat: malformed, unknown, and disabled
// tokens all answer 404; only a real share past its expiry answers 410
// with the expired-link page.
type Shared struct {
	renderer    *render.Renderer
	content     *store.ContentStore
	categories  *store.CategoryStore
	collections *store.CollectionStore
	shares      *store.ShareStore
	invitations *store.InvitationStore
	pageCache   *cache.PageCache
	siteName    string
}

// NewShared creates a new Shared handler group.
func NewShared(renderer *render.Renderer, content *store.ContentStore, categories *store.CategoryStore, collections *store.CollectionStore, shares *store.ShareStore, invitations *store.InvitationStore, pageCache *cache.PageCache, siteName string) *Shared {
	return &Shared{
		renderer:    renderer,
		content:     content,
		categories:  categories,
		collections: collections,
		shares:      shares,
		invitations: invitations,
		pageCache:   pageCache,
		siteName:    siteName,
	}
}

// resolve evaluates the token and handles the two failure outcomes.
// Returns the granted share, or nil after having written the response.
func (h *Shared) resolve(w http.ResponseWriter, r *http.Request, kind models.ScopeKind) *models.Share {
	token := chi.URLParam(r, "token")

	evaluator := sharing.NewEvaluator(h.shares, h.invitations)
	d, err := evaluator.EvaluateToken(token, kind)
	if err != nil {
		slog.Error("evaluate share token failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}

	switch d.Outcome {
	case sharing.OutcomeGranted:
		return d.Share
	case sharing.OutcomeExpired:
		h.renderer.Render(w, http.StatusGone, "link_expired", &render.PageData{
			Title:    "Link Expired",
			SiteName: h.siteName,
		})
		return nil
	default:
		h.notFound(w)
		return nil
	}
}

// serveCached writes the cached page for key if present.
func (h *Shared) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	cached, ok := h.pageCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

// servePage renders the template, caches it under key, and writes it.
func (h *Shared) servePage(w http.ResponseWriter, r *http.Request, key, tmpl string, data *render.PageData) {
	html, err := h.renderer.HTML(tmpl, data)
	if err != nil {
		slog.Error("render shared page failed", "error", err, "template", tmpl)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pageCache.Set(r.Context(), key, html)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// CategoryRoot serves /sc/{token}: the listing of everything the category
// share grants — posts across the granted categories plus the shared
// category's collections.
func (h *Shared) CategoryRoot(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	key := cache.ShareKey(token, "")
	if h.serveCached(w, r, key) {
		return
	}

	share := h.resolve(w, r, models.ScopeCategory)
	if share == nil {
		return
	}

	scoper, err := sharing.NewScoper(h.categories)
	if err != nil {
		slog.Error("load category forest failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ids, err := scoper.GrantedCategoryIDs(share)
	if err != nil {
		slog.Error("granted category ids failed", "error", err, "share", share.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		// Shared category was deleted out from under the link.
		h.notFound(w)
		return
	}

	posts, err := h.content.ListPublishedByCategories(ids)
	if err != nil {
		slog.Error("list shared posts failed", "error", err, "share", share.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	collections, err := h.collections.ListByCategory(share.ScopeID)
	if err != nil {
		slog.Error("list shared collections failed", "error", err, "share", share.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var categoryName string
	if cat := scoper.Forest().Get(share.ScopeID); cat != nil {
		categoryName = cat.Name
	}

	h.servePage(w, r, key, "share_category", &render.PageData{
		Title:    categoryName,
		SiteName: h.siteName,
		Data: map[string]any{
			"categoryName": categoryName,
			"baseURL":      "/sc/" + token,
			"homeURL":      "/sc/" + token,
			"posts":        posts,
			"collections":  collections,
		},
	})
}

// CategoryPost serves /sc/{token}/{postSlug}: a single post reached
// through a category share. The post must still live inside the granted
// scope at request time.
func (h *Shared) CategoryPost(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	postSlug := chi.URLParam(r, "postSlug")
	key := cache.ShareKey(token, postSlug)
	if h.serveCached(w, r, key) {
		return
	}

	share := h.resolve(w, r, models.ScopeCategory)
	if share == nil {
		return
	}

	item, err := h.content.FindPublishedBySlug(postSlug)
	if err != nil {
		slog.Error("find shared post failed", "error", err, "slug", postSlug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	scoper, err := sharing.NewScoper(h.categories)
	if err != nil {
		slog.Error("load category forest failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !scoper.AllowsContent(share, item) {
		h.notFound(w)
		return
	}

	body, err := markdown.ToHTML(item.Body)
	if err != nil {
		slog.Error("render markdown failed", "error", err, "slug", postSlug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.servePage(w, r, key, "share_post", &render.PageData{
		Title:    item.Title,
		SiteName: h.siteName,
		Data: map[string]any{
			"post":    item,
			"body":    body,
			"homeURL": "/sc/" + token,
		},
	})
}

// Collection serves /sc/{token}/db/{dbSlug}: a collection listing inside
// a shared category.
func (h *Shared) Collection(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	dbSlug := chi.URLParam(r, "dbSlug")
	key := cache.ShareKey(token, "db/"+dbSlug)
	if h.serveCached(w, r, key) {
		return
	}

	share := h.resolve(w, r, models.ScopeCategory)
	if share == nil {
		return
	}

	coll, _ := h.allowedCollection(w, share, dbSlug)
	if coll == nil {
		return
	}

	items, err := h.collections.ListItems(coll.ID)
	if err != nil {
		slog.Error("list collection items failed", "error", err, "collection", coll.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.servePage(w, r, key, "share_collection", &render.PageData{
		Title:    coll.Name,
		SiteName: h.siteName,
		Data: map[string]any{
			"collection": coll,
			"items":      items,
			"baseURL":    "/sc/" + token + "/db/" + dbSlug,
			"homeURL":    "/sc/" + token,
		},
	})
}

// CollectionItem serves /sc/{token}/db/{dbSlug}/{itemID}: one item from a
// collection inside a shared category.
func (h *Shared) CollectionItem(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	dbSlug := chi.URLParam(r, "dbSlug")
	itemIDParam := chi.URLParam(r, "itemID")
	key := cache.ShareKey(token, "db/"+dbSlug+"/"+itemIDParam)
	if h.serveCached(w, r, key) {
		return
	}

	share := h.resolve(w, r, models.ScopeCategory)
	if share == nil {
		return
	}

	itemID, err := uuid.Parse(itemIDParam)
	if err != nil {
		h.notFound(w)
		return
	}

	coll, scoper := h.allowedCollection(w, share, dbSlug)
	if coll == nil {
		return
	}

	item, err := h.collections.FindItem(itemID)
	if err != nil {
		slog.Error("find collection item failed", "error", err, "item", itemID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !scoper.AllowsItem(share, coll, item) {
		h.notFound(w)
		return
	}

	body, err := markdown.ToHTML(item.Body)
	if err != nil {
		slog.Error("render markdown failed", "error", err, "item", itemID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.servePage(w, r, key, "share_item", &render.PageData{
		Title:    item.Title,
		SiteName: h.siteName,
		Data: map[string]any{
			"collection": coll,
			"item":       item,
			"body":       body,
			"homeURL":    "/sc/" + token,
		},
	})
}

// Post serves /s/{token}: a single post shared directly.
func (h *Shared) Post(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	key := cache.ShareKey(token, "")
	if h.serveCached(w, r, key) {
		return
	}

	share := h.resolve(w, r, models.ScopePost)
	if share == nil {
		return
	}

	item, err := h.content.FindByID(share.ScopeID)
	if err != nil {
		slog.Error("find shared post failed", "error", err, "share", share.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	scoper, err := sharing.NewScoper(h.categories)
	if err != nil {
		slog.Error("load category forest failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Unpublishing or deleting the post kills the link even though the
	// share row still exists.
	if !scoper.AllowsContent(share, item) {
		h.notFound(w)
		return
	}

	body, err := markdown.ToHTML(item.Body)
	if err != nil {
		slog.Error("render markdown failed", "error", err, "share", share.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.servePage(w, r, key, "share_post", &render.PageData{
		Title:    item.Title,
		SiteName: h.siteName,
		Data: map[string]any{
			"post":    item,
			"body":    body,
			"homeURL": "/s/" + token,
		},
	})
}

// allowedCollection looks up a collection by slug and checks it against
// the granted scope. Returns (nil, nil) after writing the response when
// the collection is missing or out of scope.
func (h *Shared) allowedCollection(w http.ResponseWriter, share *models.Share, dbSlug string) (*models.Collection, *sharing.Scoper) {
	coll, err := h.collections.FindBySlug(dbSlug)
	if err != nil {
		slog.Error("find collection failed", "error", err, "slug", dbSlug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, nil
	}

	scoper, err := sharing.NewScoper(h.categories)
	if err != nil {
		slog.Error("load category forest failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, nil
	}

	if !scoper.AllowsCollection(share, coll) {
		h.notFound(w)
		return nil, nil
	}
	return coll, scoper
}

func (h *Shared) notFound(w http.ResponseWriter) {
	h.renderer.Render(w, http.StatusNotFound, "not_found", &render.PageData{
		Title:    "Not Found",
		SiteName: h.siteName,
	})
}
