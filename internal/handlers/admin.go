// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogpress/internal/apperr"
	"blogpress/internal/docstore"
	"blogpress/internal/slug"
	"blogpress/internal/store"
)

// Admin groups the moderation handlers. The router guards every route
// here with the admin role requirement.
type Admin struct {
	blogs      *docstore.BlogStore
	categories *store.CategoryStore
	roles      *store.RoleStore
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(blogs *docstore.BlogStore, categories *store.CategoryStore, roles *store.RoleStore) *Admin {
	return &Admin{blogs: blogs, categories: categories, roles: roles}
}

type adminCategoryPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    bool    `json:"isActive"`
}

// ListRoles returns the role catalog.
func (h *Admin) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List()
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, roles)
}

// DeleteBlog removes any blog regardless of ownership.
func (h *Admin) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	blog, err := h.blogs.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if blog == nil {
		respondError(w, r, apperr.Domain("Blog not found"))
		return
	}

	if err := h.blogs.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("blog removed by moderation", "blog", id)
	w.WriteHeader(http.StatusNoContent)
}

// UpdateCategory renames a category or toggles its active flag. The
// slug is re-derived from the new name; blogs keep their snapshotted
// category name.
func (h *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, apperr.NotFound("Category not found"))
		return
	}

	var req adminCategoryPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if errs := validateCategoryPayload(req.Name); len(errs) > 0 {
		respondError(w, r, apperr.Validation(errs))
		return
	}

	category, err := h.categories.FindByID(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if category == nil {
		respondError(w, r, apperr.NotFound("Category not found"))
		return
	}

	taken, err := h.categories.ExistsByName(req.Name, &id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if taken {
		respondError(w, r, apperr.Domain("A category with this name already exists"))
		return
	}

	category.Name = req.Name
	category.Slug = slug.Generate(req.Name)
	category.Description = req.Description
	category.IsActive = req.IsActive

	updated, err := h.categories.Update(category)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if updated == nil {
		respondError(w, r, apperr.NotFound("Category not found"))
		return
	}

	respondJSON(w, http.StatusOK, toCategoryDto(updated))
}

// DeleteCategory removes a category. Existing blogs keep their
// snapshotted category name and id.
func (h *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, apperr.NotFound("Category not found"))
		return
	}

	category, err := h.categories.FindByID(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if category == nil {
		respondError(w, r, apperr.NotFound("Category not found"))
		return
	}

	if err := h.categories.Delete(id); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("category deleted", "category", id)
	w.WriteHeader(http.StatusNoContent)
}
