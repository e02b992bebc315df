// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"blogpress/internal/apperr"
	"blogpress/internal/middleware"
	"blogpress/internal/models"
	"blogpress/internal/slug"
	"blogpress/internal/store"
)

// Categories groups the category handlers.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

type categoryPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// List serves all categories, filtered to active ones unless
// activeOnly=false is passed.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") != "false"

	var (
		categories []models.Category
		err        error
	)
	if activeOnly {
		categories, err = h.categories.ListActive()
	} else {
		categories, err = h.categories.List()
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	dtos := make([]CategoryDto, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, toCategoryDto(&categories[i]))
	}
	respondJSON(w, http.StatusOK, dtos)
}

// Create adds a category with a slug derived from its name. Any
// authenticated user may create one; duplicate names are rejected
// case-insensitively.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromCtx(r.Context())

	var req categoryPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if errs := validateCategoryPayload(req.Name); len(errs) > 0 {
		respondError(w, r, apperr.Validation(errs))
		return
	}

	taken, err := h.categories.ExistsByName(req.Name, nil)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if taken {
		respondError(w, r, apperr.Domain("A category with this name already exists"))
		return
	}

	category := &models.Category{
		Name:            req.Name,
		Slug:            slug.Generate(req.Name),
		Description:     req.Description,
		IsActive:        true,
		CreatedByUserID: caller.ID,
	}

	created, err := h.categories.Create(category)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("category created", "category", created.ID, "slug", created.Slug, "user", caller.ID)
	respondJSON(w, http.StatusCreated, toCategoryDto(created))
}
