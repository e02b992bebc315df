// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// blog API. It organizes routes into public, authenticated, and admin
// groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"blogpress/internal/handlers"
	"blogpress/internal/middleware"
	"blogpress/internal/token"
)

// authRateLimit bounds login/registration attempts per client IP.
const (
	authRateLimit  = 20
	authRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *token.Manager, auth *handlers.Auth, blogs *handlers.Blogs, categories *handlers.Categories, admin *handlers.Admin, media *handlers.Media) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Authenticate(tokens))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Auth — rate limited per client IP.
	r.Route("/auth", func(r chi.Router) {
		limiter := middleware.NewRateLimiter(authRateLimit, authRateWindow)
		r.Use(limiter.Middleware)

		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", auth.Me)
			r.Put("/me", auth.UpdateMe)
		})
	})

	// Blogs — listing and detail are public; writes require auth.
	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", blogs.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			// Registered before /{id} so chi matches the literal path first.
			r.Get("/my-blogs", blogs.MyBlogs)
			r.Post("/", blogs.Create)
			r.Put("/{id}", blogs.Update)
			r.Delete("/{id}", blogs.Delete)
		})

		r.Get("/{id}", blogs.Get)
	})

	// Categories — listing is public; creation requires auth.
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categories.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", categories.Create)
		})
	})

	// Moderation — admin role required.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Get("/roles", admin.ListRoles)
		r.Delete("/blogs/{id}", admin.DeleteBlog)
		r.Put("/categories/{id}", admin.UpdateCategory)
		r.Delete("/categories/{id}", admin.DeleteCategory)
	})

	// Media uploads feeding blog media items.
	r.Route("/media", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", media.Upload)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Delete("/", media.Delete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
