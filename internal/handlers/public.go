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
	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/render"
	"inkpress/internal/sharing"
	"inkpress/internal/store"
)

// Public groups handlers for the public-facing blog. It checks the Valkey
// page cache before querying, and stores rendered results on miss.
// Private posts are invisible here unless the visitor is signed in and
// holds an invitation covering the post — the invitation path needs no
// token in the URL.
type Public struct {
	renderer    *render.Renderer
	content     *store.ContentStore
	categories  *store.CategoryStore
	shares      *store.ShareStore
	invitations *store.InvitationStore
	pageCache   *cache.PageCache
	siteName    string
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, content *store.ContentStore, categories *store.CategoryStore, shares *store.ShareStore, invitations *store.InvitationStore, pageCache *cache.PageCache, siteName string) *Public {
	return &Public{
		renderer:    renderer,
		content:     content,
		categories:  categories,
		shares:      shares,
		invitations: invitations,
		pageCache:   pageCache,
		siteName:    siteName,
	}
}

// Homepage renders the public post listing. Only published, public posts
// appear; drafts and private posts never reach this query.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.pageCache.Get(ctx, cache.HomepageKey()); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(cached)
		return
	}

	posts, err := p.content.ListPublishedPublic(models.ContentTypePost)
	if err != nil {
		slog.Error("list public posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	html, err := p.renderer.HTML("home", &render.PageData{
		SiteName: p.siteName,
		Data:     map[string]any{"posts": posts},
	})
	if err != nil {
		slog.Error("render homepage failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.HomepageKey(), html)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// Page renders a public post or page by its slug. A published private
// post answers 404 to anonymous visitors, indistinguishable from a
// missing slug; a signed-in viewer with a live invitation covering the
// post gets it served without any token.
func (p *Public) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	sess := middleware.SessionFromCtx(ctx)

	// The page cache only ever holds public renders; a personalized
	// invitation view must not be cached under the public key.
	if sess == nil {
		if cached, ok := p.pageCache.Get(ctx, cache.SlugKey(slugParam)); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(cached)
			return
		}
	}

	item, err := p.content.FindPublishedBySlug(slugParam)
	if err != nil {
		slog.Error("find content by slug failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		p.notFound(w)
		return
	}

	if !item.IsPubliclyVisible() {
		if sess == nil {
			// Same response as a missing slug.
			p.notFound(w)
			return
		}
		switch p.invitationOutcome(item, sess.UserID, sess.Email) {
		case sharing.OutcomeGranted:
		case sharing.OutcomeExpired:
			// The viewer was invited; tell them the access lapsed
			// instead of pretending the post does not exist.
			p.renderer.Render(w, http.StatusGone, "link_expired", &render.PageData{
				Title:    "Link Expired",
				SiteName: p.siteName,
			})
			return
		default:
			p.notFound(w)
			return
		}
	}

	body, err := markdown.ToHTML(item.Body)
	if err != nil {
		slog.Error("render markdown failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	html, err := p.renderer.HTML("post", &render.PageData{
		Title:    item.Title,
		SiteName: p.siteName,
		Data:     map[string]any{"post": item, "body": body},
	})
	if err != nil {
		slog.Error("render page failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if sess == nil && item.IsPubliclyVisible() {
		p.pageCache.Set(ctx, cache.SlugKey(slugParam), html)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// invitationOutcome returns the strongest invitation decision covering the
// post for the signed-in viewer: the post's own share first, then every
// ancestor category whose share scope contains the post. An Expired
// anywhere along the chain survives a NotFound, so a lapsed invitation is
// reported as such rather than as a missing page.
func (p *Public) invitationOutcome(item *models.Content, userID uuid.UUID, email string) sharing.Outcome {
	evaluator := sharing.NewEvaluator(p.shares, p.invitations)
	viewer := sharing.Viewer{UserID: userID, Email: email}

	best := sharing.OutcomeNotFound

	d, err := evaluator.EvaluateInvitation(models.ScopePost, item.ID, viewer)
	if err != nil {
		slog.Error("evaluate post invitation failed", "error", err, "content", item.ID)
		return best
	}
	if d.Granted() {
		return sharing.OutcomeGranted
	}
	if d.Outcome == sharing.OutcomeExpired {
		best = sharing.OutcomeExpired
	}

	if item.CategoryID == nil {
		return best
	}

	scoper, err := sharing.NewScoper(p.categories)
	if err != nil {
		slog.Error("load category forest failed", "error", err)
		return best
	}

	for _, cat := range scoper.Forest().Ancestors(*item.CategoryID) {
		d, err := evaluator.EvaluateInvitation(models.ScopeCategory, cat.ID, viewer)
		if err != nil {
			slog.Error("evaluate category invitation failed", "error", err, "category", cat.ID)
			return best
		}
		if d.Granted() && scoper.AllowsContent(d.Share, item) {
			return sharing.OutcomeGranted
		}
		if d.Outcome == sharing.OutcomeExpired {
			best = sharing.OutcomeExpired
		}
	}
	return best
}

func (p *Public) notFound(w http.ResponseWriter) {
	p.renderer.Render(w, http.StatusNotFound, "not_found", &render.PageData{
		Title:    "Not Found",
		SiteName: p.siteName,
	})
}
