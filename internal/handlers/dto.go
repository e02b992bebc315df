// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"blogpress/internal/markdown"
	"blogpress/internal/models"
)

// UserDto is the public view of an account. The password hash never
// leaves the store layer.
type UserDto struct {
	ID              uuid.UUID  `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	FirstName       *string    `json:"firstName,omitempty"`
	LastName        *string    `json:"lastName,omitempty"`
	ProfileImageURL *string    `json:"profileImageUrl,omitempty"`
	Roles           []string   `json:"roles"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// MediaItemDto mirrors a media attachment on the wire.
type MediaItemDto struct {
	URL     string  `json:"url"`
	Type    string  `json:"type"`
	Caption *string `json:"caption,omitempty"`
	Order   int     `json:"order"`
}

// BlogDto is the full blog representation. ContentHTML is rendered
// from the Markdown body on detail fetches only; list responses leave
// it empty to keep pages cheap.
type BlogDto struct {
	ID           string         `json:"id"`
	UserID       uuid.UUID      `json:"userId"`
	Username     string         `json:"username"`
	CategoryID   *uuid.UUID     `json:"categoryId,omitempty"`
	CategoryName *string        `json:"categoryName,omitempty"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	ContentHTML  string         `json:"contentHtml,omitempty"`
	Summary      *string        `json:"summary,omitempty"`
	Tags         []string       `json:"tags"`
	MediaItems   []MediaItemDto `json:"mediaItems"`
	ViewCount    int64          `json:"viewCount"`
	IsPublished  bool           `json:"isPublished"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    *time.Time     `json:"updatedAt,omitempty"`
	PublishedAt  *time.Time     `json:"publishedAt,omitempty"`
}

// BlogListDto is the paginated listing envelope.
type BlogListDto struct {
	Blogs      []BlogDto `json:"blogs"`
	TotalCount int64     `json:"totalCount"`
	PageNumber int       `json:"pageNumber"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
}

// CategoryDto is the public view of a category.
type CategoryDto struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     *string   `json:"description,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedByUserID uuid.UUID `json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toUserDto(u *models.User) UserDto {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserDto{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Roles:           roles,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
	}
}

func toBlogDto(b *models.Blog, renderHTML bool) BlogDto {
	items := make([]MediaItemDto, 0, len(b.MediaItems))
	for _, m := range b.MediaItems {
		items = append(items, MediaItemDto{
			URL:     m.URL,
			Type:    string(m.Type),
			Caption: m.Caption,
			Order:   m.Order,
		})
	}
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}

	dto := BlogDto{
		ID:           b.ID,
		UserID:       b.UserID,
		Username:     b.Username,
		CategoryID:   b.CategoryID,
		CategoryName: b.CategoryName,
		Title:        b.Title,
		Content:      b.Content,
		Summary:      b.Summary,
		Tags:         tags,
		MediaItems:   items,
		ViewCount:    b.ViewCount,
		IsPublished:  b.IsPublished,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		PublishedAt:  b.PublishedAt,
	}
	if renderHTML {
		html, err := markdown.ToHTML(b.Content)
		if err != nil {
			// The raw content is still in the DTO; skip the rendering.
			slog.Error("markdown render failed", "blog", b.ID, "error", err)
		} else {
			dto.ContentHTML = html
		}
	}
	return dto
}

func toBlogListDto(blogs []models.Blog, totalCount int64, pageNumber, pageSize int) BlogListDto {
	dtos := make([]BlogDto, 0, len(blogs))
	for i := range blogs {
		dtos = append(dtos, toBlogDto(&blogs[i], false))
	}
	return BlogListDto{
		Blogs:      dtos,
		TotalCount: totalCount,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages(totalCount, pageSize),
	}
}

func toCategoryDto(c *models.Category) CategoryDto {
	return CategoryDto{
		ID:              c.ID,
		Name:            c.Name,
		Slug:            c.Slug,
		Description:     c.Description,
		IsActive:        c.IsActive,
		CreatedByUserID: c.CreatedByUserID,
		CreatedAt:       c.CreatedAt,
	}
}

// totalPages computes ceil(totalCount / pageSize).
func totalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(pageSize)))
}
