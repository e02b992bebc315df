// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaType is a closed set of media kinds a blog post can embed.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	return t == MediaImage || t == MediaVideo
}

// MediaItem is an image or video attached to a blog post, kept in an
// explicit display order.
type MediaItem struct {
	URL     string    `json:"url"`
	Type    MediaType `json:"type"`
	Caption *string   `json:"caption,omitempty"`
	Order   int       `json:"order"`
}

// Blog is the document persisted in the document store. UserID owns the
// post; Username and CategoryName are denormalized snapshots taken at
// write time and are not re-synced if the source records change later.
type Blog struct {
	ID           string      `json:"id"`
	UserID       uuid.UUID   `json:"user_id"`
	Username     string      `json:"username"`
	CategoryID   *uuid.UUID  `json:"category_id,omitempty"`
	CategoryName *string     `json:"category_name,omitempty"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	Summary      *string     `json:"summary,omitempty"`
	Tags         []string    `json:"tags"`
	MediaItems   []MediaItem `json:"media_items"`
	ViewCount    int64       `json:"view_count"`
	IsPublished  bool        `json:"is_published"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    *time.Time  `json:"updated_at,omitempty"`
	PublishedAt  *time.Time  `json:"published_at,omitempty"`
}

// SetPublished updates the published flag. PublishedAt latches on the
// first false→true transition and is never cleared or rewritten by
// later unpublish/republish cycles.
func (b *Blog) SetPublished(published bool, now time.Time) {
	if published && b.PublishedAt == nil {
		b.PublishedAt = &now
	}
	b.IsPublished = published
}

// HasTag reports whether the post carries the exact tag.
func (b *Blog) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
