// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"inkpress/internal/cache"
	"inkpress/internal/database"
	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/render"
	"inkpress/internal/session"
	"inkpress/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB          *sql.DB
	Valkey      *redis.Client
	Renderer    *render.Renderer
	Sessions    *session.Store
	Content     *store.ContentStore
	Categories  *store.CategoryStore
	Collections *store.CollectionStore
	Shares      *store.ShareStore
	Invitations *store.InvitationStore
	Users       *store.UserStore
	PageCache   *cache.PageCache
	Admin       *Admin
	Auth        *Auth
	Public      *Public
	Shared      *Shared
}

// newTestEnv creates a complete test environment with all handler
// dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	content := store.NewContentStore(db)
	categories := store.NewCategoryStore(db)
	collections := store.NewCollectionStore(db)
	shares := store.NewShareStore(db)
	invitations := store.NewInvitationStore(db)
	users := store.NewUserStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	const siteName = "InkPress Test"
	admin := NewAdmin(content, categories, collections, shares, invitations, users, pageCache)
	auth := NewAuth(renderer, sessions, users, siteName)
	public := NewPublic(renderer, content, categories, shares, invitations, pageCache, siteName)
	shared := NewShared(renderer, content, categories, collections, shares, invitations, pageCache, siteName)

	return &testEnv{
		DB:          db,
		Valkey:      vk,
		Renderer:    renderer,
		Sessions:    sessions,
		Content:     content,
		Categories:  categories,
		Collections: collections,
		Shares:      shares,
		Invitations: invitations,
		Users:       users,
		PageCache:   pageCache,
		Admin:       admin,
		Auth:        auth,
		Public:      public,
		Shared:      shared,
	}
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID, email, role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// withChiURLParams adds chi URL parameters to a request.
func withChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withSession attaches session data to a request using the middleware key.
func withSession(r *http.Request, sess *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, sess))
}

// testAuthorID returns a valid user ID for content creation.
func testAuthorID(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	if err := db.QueryRow("SELECT id FROM users LIMIT 1").Scan(&id); err != nil {
		t.Fatalf("no users in database, run seed first: %v", err)
	}
	return id
}

// makeCategory inserts a category and registers cleanup.
func makeCategory(t *testing.T, env *testEnv, name, slug string, parentID *uuid.UUID) *models.Category {
	t.Helper()
	created, err := env.Categories.Create(&models.Category{Name: name, Slug: slug, ParentID: parentID})
	if err != nil {
		t.Fatalf("create category %s: %v", slug, err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE id = $1", created.ID) })
	return created
}

// makePost inserts a published post and registers cleanup.
func makePost(t *testing.T, env *testEnv, title, slug string, visibility models.Visibility, categoryID *uuid.UUID) *models.Content {
	t.Helper()
	now := time.Now()
	created, err := env.Content.Create(&models.Content{
		Type:        models.ContentTypePost,
		Title:       title,
		Slug:        slug,
		Body:        "Body of " + title,
		Status:      models.ContentStatusPublished,
		Visibility:  visibility,
		CategoryID:  categoryID,
		AuthorID:    testAuthorID(t, env.DB),
		PublishedAt: &now,
	})
	if err != nil {
		t.Fatalf("create post %s: %v", slug, err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM content WHERE id = $1", created.ID) })
	return created
}

// enablePublicShare turns on the public link for a scope and returns the
// token. Cleanup removes the share row.
func enablePublicShare(t *testing.T, env *testEnv, kind models.ScopeKind, scopeID uuid.UUID, includeSub bool) string {
	t.Helper()
	enabled := true
	patch := store.SharePatch{PublicEnabled: &enabled}
	if includeSub {
		patch.IncludeSubcategories = &includeSub
	}
	share, _, err := env.Shares.UpsertSettings(kind, scopeID, patch)
	if err != nil {
		t.Fatalf("enable share: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM shares WHERE id = $1", share.ID) })
	if share.PublicToken == nil {
		t.Fatal("enable share: no token issued")
	}
	return *share.PublicToken
}
