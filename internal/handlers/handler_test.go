// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Requests run through the full router so the
// middleware chain is exercised too. Tests are skipped when PostgreSQL
// or Redis are unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"blogpress/internal/database"
	"blogpress/internal/docstore"
	"blogpress/internal/middleware"
	"blogpress/internal/store"
	"blogpress/internal/token"
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
	user := envOr("POSTGRES_USER", "blogpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogpress")
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

	if err := database.SeedRoles(db); err != nil {
		db.Close()
		t.Fatalf("seed roles: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testRedis returns a Redis client on DB 15 for handler tests.
func testRedis(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("REDIS_HOST", "localhost")
	port := envOr("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Redis      *redis.Client
	Users      *store.UserStore
	Roles      *store.RoleStore
	Categories *store.CategoryStore
	Blogs      *docstore.BlogStore
	Tokens     *token.Manager
	Router     chi.Router
}

// newTestEnv creates a complete test environment wired through the
// same middleware chain as production.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	rc := testRedis(t)

	users := store.NewUserStore(db)
	roles := store.NewRoleStore(db)
	categories := store.NewCategoryStore(db)
	blogs := docstore.NewBlogStore(rc)
	tokens := token.NewManager("test-secret", "blogpress", "blogpress-api", time.Hour)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Authenticate(tokens))

	auth := NewAuth(users, tokens)
	blogHandlers := NewBlogs(blogs, users, categories)
	categoryHandlers := NewCategories(categories)
	admin := NewAdmin(blogs, categories, roles)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", auth.Me)
			r.Put("/me", auth.UpdateMe)
		})
	})
	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", blogHandlers.List)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/my-blogs", blogHandlers.MyBlogs)
			r.Post("/", blogHandlers.Create)
			r.Put("/{id}", blogHandlers.Update)
			r.Delete("/{id}", blogHandlers.Delete)
		})
		r.Get("/{id}", blogHandlers.Get)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categoryHandlers.List)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", categoryHandlers.Create)
		})
	})
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/roles", admin.ListRoles)
		r.Delete("/blogs/{id}", admin.DeleteBlog)
		r.Put("/categories/{id}", admin.UpdateCategory)
		r.Delete("/categories/{id}", admin.DeleteCategory)
	})

	return &testEnv{
		DB:         db,
		Redis:      rc,
		Users:      users,
		Roles:      roles,
		Categories: categories,
		Blogs:      blogs,
		Tokens:     tokens,
		Router:     r,
	}
}

// testAccount is a registered user plus a valid bearer token.
type testAccount struct {
	ID    uuid.UUID
	Email string
	Token string
}

// newAccount registers a unique user directly through the stores and
// issues a token for it. admin grants the Admin role as well.
func (env *testEnv) newAccount(t *testing.T, admin bool) testAccount {
	t.Helper()

	suffix := uuid.NewString()[:8]
	email := fmt.Sprintf("h-%s@test.local", suffix)
	username := "h-" + suffix

	user, err := env.Users.Create(username, email, "password123", nil, nil)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM users WHERE id = $1", user.ID)
	})

	roles := []string{"User"}
	if err := env.Users.AssignRole(user.ID, "User"); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	if admin {
		if err := env.Users.AssignRole(user.ID, "Admin"); err != nil {
			t.Fatalf("assign admin role: %v", err)
		}
		roles = append(roles, "Admin")
	}

	signed, _, err := env.Tokens.Issue(user.ID, email, roles)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return testAccount{ID: user.ID, Email: email, Token: signed}
}

// doJSON performs a request with an optional JSON body and bearer token.
func (env *testEnv) doJSON(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorded response body into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
}
