// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// admin_test.go covers the moderation endpoints and their role guard.
package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	env := newTestEnv(t)
	user := env.newAccount(t, false)

	// Unauthenticated → 401.
	rec := env.doJSON(t, http.MethodGet, "/admin/roles", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated: got %d, want 401", rec.Code)
	}

	// Plain user → 403, before any store access.
	rec = env.doJSON(t, http.MethodDelete, "/admin/blogs/anything", user.Token, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("plain user: got %d, want 403", rec.Code)
	}
}

func TestAdminListRoles(t *testing.T) {
	env := newTestEnv(t)
	admin := env.newAccount(t, true)

	rec := env.doJSON(t, http.MethodGet, "/admin/roles", admin.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var roles []struct {
		Name string `json:"name"`
	}
	decodeBody(t, rec, &roles)
	names := map[string]bool{}
	for _, r := range roles {
		names[r.Name] = true
	}
	if !names["User"] || !names["Admin"] {
		t.Errorf("roles = %v, want seeded User and Admin", names)
	}
}

func TestAdminDeleteBlog(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newAccount(t, false)
	admin := env.newAccount(t, true)

	created := env.createBlog(t, owner.Token, map[string]any{
		"title": "Moderated", "content": longContent, "isPublished": true,
	})

	rec := env.doJSON(t, http.MethodDelete, "/admin/blogs/"+created.ID, admin.Token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", rec.Code)
	}

	rec = env.doJSON(t, http.MethodGet, "/blogs/"+created.ID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted blog still served: %d", rec.Code)
	}

	// Deleting a missing blog reports the failure.
	rec = env.doJSON(t, http.MethodDelete, "/admin/blogs/"+created.ID, admin.Token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing blog: got %d, want 400", rec.Code)
	}
}

func TestAdminUpdateCategory_RederivesSlug(t *testing.T) {
	env := newTestEnv(t)
	admin := env.newAccount(t, true)

	suffix := uuid.NewString()[:8]
	env.cleanupCategory(t, "before-"+suffix)
	env.cleanupCategory(t, "after-"+suffix)

	rec := env.doJSON(t, http.MethodPost, "/categories", admin.Token, map[string]any{
		"name": "Before " + suffix,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}
	var created CategoryDto
	decodeBody(t, rec, &created)

	rec = env.doJSON(t, http.MethodPut, "/admin/categories/"+created.ID.String(), admin.Token, map[string]any{
		"name": "After " + suffix, "isActive": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d (body: %s)", rec.Code, rec.Body.String())
	}
	var updated CategoryDto
	decodeBody(t, rec, &updated)
	if updated.Slug != "after-"+suffix {
		t.Errorf("slug = %q, want %q", updated.Slug, "after-"+suffix)
	}
}

func TestAdminDeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	admin := env.newAccount(t, true)

	suffix := uuid.NewString()[:8]
	env.cleanupCategory(t, "doomed-"+suffix)

	rec := env.doJSON(t, http.MethodPost, "/categories", admin.Token, map[string]any{
		"name": "Doomed " + suffix,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}
	var created CategoryDto
	decodeBody(t, rec, &created)

	rec = env.doJSON(t, http.MethodDelete, "/admin/categories/"+created.ID.String(), admin.Token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d, want 204", rec.Code)
	}

	rec = env.doJSON(t, http.MethodDelete, "/admin/categories/"+created.ID.String(), admin.Token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing category: got %d, want 404", rec.Code)
	}
}
