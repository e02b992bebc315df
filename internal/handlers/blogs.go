// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogpress/internal/apperr"
	"blogpress/internal/docstore"
	"blogpress/internal/middleware"
	"blogpress/internal/models"
	"blogpress/internal/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Blogs groups the blog CRUD and listing handlers.
type Blogs struct {
	blogs      *docstore.BlogStore
	users      *store.UserStore
	categories *store.CategoryStore
}

// NewBlogs creates a new Blogs handler group.
func NewBlogs(blogs *docstore.BlogStore, users *store.UserStore, categories *store.CategoryStore) *Blogs {
	return &Blogs{blogs: blogs, users: users, categories: categories}
}

type blogPayload struct {
	CategoryID  *uuid.UUID     `json:"categoryId"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Summary     *string        `json:"summary"`
	Tags        []string       `json:"tags"`
	MediaItems  []MediaItemDto `json:"mediaItems"`
	IsPublished bool           `json:"isPublished"`
}

// listQuery is the resolved listing request.
type listQuery struct {
	pageNumber    int
	pageSize      int
	userID        *uuid.UUID
	searchTerm    string
	publishedOnly bool
}

// List serves the public blog listing. The branches are mutually
// exclusive, first match wins: search term, then target-user filter,
// then the published-only default.
func (h *Blogs) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	q.publishedOnly = true

	result, err := h.resolveListing(r, q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// MyBlogs lists the caller's own blogs, drafts included.
func (h *Blogs) MyBlogs(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromCtx(r.Context())

	q, err := parseListQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	q.userID = &caller.ID
	q.searchTerm = ""
	q.publishedOnly = false

	result, err := h.resolveListing(r, q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// resolveListing runs the matched listing branch and pairs it with the
// corresponding count. The search branch reports the returned page's
// length as the total, which undercounts past one page; the other
// branches report exact counts. Kept as-is for contract stability.
func (h *Blogs) resolveListing(r *http.Request, q listQuery) (*BlogListDto, error) {
	ctx := r.Context()

	var (
		blogs []models.Blog
		total int64
		err   error
	)
	switch {
	case q.searchTerm != "":
		blogs, err = h.blogs.Search(ctx, q.searchTerm, q.pageNumber, q.pageSize)
		total = int64(len(blogs))
	case q.userID != nil:
		blogs, err = h.blogs.ListByUser(ctx, *q.userID, q.pageNumber, q.pageSize)
		if err == nil {
			total, err = h.blogs.UserCount(ctx, *q.userID)
		}
	case q.publishedOnly:
		blogs, err = h.blogs.ListPublished(ctx, q.pageNumber, q.pageSize)
		if err == nil {
			total, err = h.blogs.TotalCount(ctx)
		}
	default:
		blogs, err = h.blogs.List(ctx, q.pageNumber, q.pageSize)
		if err == nil {
			total, err = h.blogs.TotalCount(ctx)
		}
	}
	if err != nil {
		return nil, err
	}

	dto := toBlogListDto(blogs, total, q.pageNumber, q.pageSize)
	return &dto, nil
}

// Get serves one blog and bumps its view counter. The returned DTO
// reflects the increment and carries the rendered HTML body.
func (h *Blogs) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	blog, err := h.blogs.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if blog == nil {
		respondError(w, r, apperr.NotFound("Blog not found"))
		return
	}

	views, err := h.blogs.IncrementViews(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	blog.ViewCount = views

	respondJSON(w, http.StatusOK, toBlogDto(blog, true))
}

// Create stores a new blog owned by the caller. Username and category
// name are snapshotted into the document at write time.
func (h *Blogs) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromCtx(r.Context())

	var req blogPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if errs := validateBlogPayload(req.Title, req.Content, req.Summary, req.Tags, req.MediaItems); len(errs) > 0 {
		respondError(w, r, apperr.Validation(errs))
		return
	}

	user, err := h.users.FindByID(caller.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if user == nil {
		respondError(w, r, apperr.Domain("User not found"))
		return
	}

	var categoryName *string
	if req.CategoryID != nil {
		category, err := h.categories.FindByID(*req.CategoryID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		if category == nil {
			respondError(w, r, apperr.Domain("Category not found"))
			return
		}
		categoryName = &category.Name
	}

	blog := &models.Blog{
		UserID:       user.ID,
		Username:     user.Username,
		CategoryID:   req.CategoryID,
		CategoryName: categoryName,
		Title:        req.Title,
		Content:      req.Content,
		Summary:      req.Summary,
		Tags:         req.Tags,
		MediaItems:   toMediaItems(req.MediaItems),
	}
	blog.SetPublished(req.IsPublished, time.Now().UTC())

	created, err := h.blogs.Create(r.Context(), blog)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("blog created", "blog", created.ID, "user", user.ID)
	respondJSON(w, http.StatusCreated, toBlogDto(created, true))
}

// Update replaces a blog's editable fields. Only the owner may update;
// the failure is surfaced as a domain error rather than a 403.
func (h *Blogs) Update(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromCtx(r.Context())
	id := chi.URLParam(r, "id")

	var req blogPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if errs := validateBlogPayload(req.Title, req.Content, req.Summary, req.Tags, req.MediaItems); len(errs) > 0 {
		respondError(w, r, apperr.Validation(errs))
		return
	}

	blog, err := h.blogs.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if blog == nil {
		respondError(w, r, apperr.Domain("Blog not found"))
		return
	}
	if blog.UserID != caller.ID {
		respondError(w, r, apperr.Domain("You are not authorized to update this blog"))
		return
	}

	now := time.Now().UTC()
	blog.Title = req.Title
	blog.Content = req.Content
	blog.Summary = req.Summary
	blog.Tags = req.Tags
	blog.MediaItems = toMediaItems(req.MediaItems)
	blog.SetPublished(req.IsPublished, now)
	blog.UpdatedAt = &now

	if err := h.blogs.Update(r.Context(), blog); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toBlogDto(blog, true))
}

// Delete removes a blog. Owners and admins may delete.
func (h *Blogs) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromCtx(r.Context())
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
	if blog.UserID != caller.ID && !caller.IsAdmin() {
		respondError(w, r, apperr.Domain("You are not authorized to delete this blog"))
		return
	}

	if err := h.blogs.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("blog deleted", "blog", id, "user", caller.ID)
	w.WriteHeader(http.StatusNoContent)
}

func toMediaItems(dtos []MediaItemDto) []models.MediaItem {
	items := make([]models.MediaItem, 0, len(dtos))
	for _, m := range dtos {
		items = append(items, models.MediaItem{
			URL:     m.URL,
			Type:    models.MediaType(m.Type),
			Caption: m.Caption,
			Order:   m.Order,
		})
	}
	return items
}

// parseListQuery reads the shared pagination and filter parameters.
func parseListQuery(r *http.Request) (listQuery, error) {
	q := listQuery{
		pageNumber: queryInt(r, "pageNumber", 1),
		pageSize:   queryInt(r, "pageSize", defaultPageSize),
		searchTerm: strings.TrimSpace(r.URL.Query().Get("searchTerm")),
	}
	if q.pageNumber < 1 {
		q.pageNumber = 1
	}
	if q.pageSize < 1 {
		q.pageSize = defaultPageSize
	}
	if q.pageSize > maxPageSize {
		q.pageSize = maxPageSize
	}

	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return q, apperr.Validation([]string{"userId must be a valid id"})
		}
		q.userID = &id
	}

	return q, nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}
