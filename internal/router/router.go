// Package router sets up all HTTP routes and middleware chains for
// InkPress. Routes fall into four groups: the public blog, the token
// share surface, the auth pages, and the admin JSON API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. tokenLimiter throttles the endpoints where
// an attacker could guess share tokens or passwords.
func New(sessionStore *session.Store, tokenLimiter *middleware.RateLimiter, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, shared *handlers.Shared) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Token share surface. Every URL here embeds the capability; rate
	// limiting is the only brake on brute-forcing the token space.
	r.Group(func(r chi.Router) {
		r.Use(tokenLimiter.Middleware)

		r.Get("/sc/{token}", shared.CategoryRoot)
		r.Get("/sc/{token}/db/{dbSlug}", shared.Collection)
		r.Get("/sc/{token}/db/{dbSlug}/{itemID}", shared.CollectionItem)
		r.Get("/sc/{token}/{postSlug}", shared.CategoryPost)
		r.Get("/s/{token}", shared.Post)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Auth pages — accessible without a session. Login shares the
		// token limiter so credential stuffing hits the same wall.
		r.Get("/login", auth.LoginPage)
		r.With(tokenLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Get("/2fa/qr", auth.TwoFAQR)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// JSON API — authenticated, 2FA-verified content managers.
		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.RequireManager)

			r.Route("/content", func(r chi.Router) {
				r.Get("/", admin.ListContent)
				r.Post("/", admin.CreateContent)
				r.Put("/{id}", admin.UpdateContent)
				r.Delete("/{id}", admin.DeleteContent)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.ListCategories)
				r.Post("/", admin.CreateCategory)
				r.Get("/by-path/*", admin.GetShareByPath)
				r.Delete("/{id}", admin.DeleteCategory)

				r.Get("/{id}/share", admin.GetShare(models.ScopeCategory))
				r.Put("/{id}/share", admin.PutShare(models.ScopeCategory))
				r.Delete("/{id}/share", admin.DeleteShare(models.ScopeCategory))

				r.Post("/{id}/collections", admin.CreateCollection)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/{id}/share", admin.GetShare(models.ScopePost))
				r.Put("/{id}/share", admin.PutShare(models.ScopePost))
				r.Delete("/{id}/share", admin.DeleteShare(models.ScopePost))
			})

			r.Route("/shares/{shareID}/invitations", func(r chi.Router) {
				r.Get("/", admin.ListInvitations)
				r.Post("/", admin.BulkInvite)
				r.Delete("/", admin.RevokeInvitation)
			})

			r.Route("/collections", func(r chi.Router) {
				r.Post("/{id}/items", admin.CreateCollectionItem)
				r.Delete("/{id}", admin.DeleteCollection)
			})
		})
	})

	// Public blog.
	r.Get("/", public.Homepage)
	r.Get("/{slug}", public.Page)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
