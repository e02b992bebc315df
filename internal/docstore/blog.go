// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package docstore persists blog documents in Redis. Each blog lives in
// a hash under blog:{id} with two fields: "doc" holds the JSON document
// and "views" holds the view counter. Keeping the counter in its own
// field lets HIncrBy bump it atomically without ever touching the
// document, so concurrent reads never lose increments and a
// full-document replace never clobbers the counter.
//
// Sorted-set indexes provide the listing order:
//
//	blogs:created        all blogs, scored by creation time
//	blogs:published      published blogs, scored by publish time
//	blogs:user:{id}      one per author, scored by creation time
//	blogs:category:{id}  published blogs per category, scored by publish time
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"blogpress/internal/models"
)

const (
	blogKeyPrefix       = "blog:"
	createdIndexKey     = "blogs:created"
	publishedIndexKey   = "blogs:published"
	userIndexPrefix     = "blogs:user:"
	categoryIndexPrefix = "blogs:category:"

	docField   = "doc"
	viewsField = "views"

	// searchChunk is how many index entries a search scan loads per round.
	searchChunk = 200
)

// BlogStore is the document-store adapter for blog posts.
type BlogStore struct {
	client *redis.Client
}

// NewBlogStore creates a BlogStore backed by the given Redis client.
func NewBlogStore(client *redis.Client) *BlogStore {
	return &BlogStore{client: client}
}

func blogKey(id string) string {
	return blogKeyPrefix + id
}

func userIndexKey(userID uuid.UUID) string {
	return userIndexPrefix + userID.String()
}

func categoryIndexKey(categoryID uuid.UUID) string {
	return categoryIndexPrefix + categoryID.String()
}

// Create assigns a generated id, stamps the creation time, and stores
// the document with its index entries.
func (s *BlogStore) Create(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	b.ViewCount = 0

	payload, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal blog: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, blogKey(b.ID), docField, payload)
	pipe.HSetNX(ctx, blogKey(b.ID), viewsField, 0)
	pipe.ZAdd(ctx, createdIndexKey, redis.Z{Score: float64(b.CreatedAt.UnixMilli()), Member: b.ID})
	pipe.ZAdd(ctx, userIndexKey(b.UserID), redis.Z{Score: float64(b.CreatedAt.UnixMilli()), Member: b.ID})
	if b.IsPublished && b.PublishedAt != nil {
		pipe.ZAdd(ctx, publishedIndexKey, redis.Z{Score: float64(b.PublishedAt.UnixMilli()), Member: b.ID})
		if b.CategoryID != nil {
			pipe.ZAdd(ctx, categoryIndexKey(*b.CategoryID), redis.Z{Score: float64(b.PublishedAt.UnixMilli()), Member: b.ID})
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return b, nil
}

// GetByID retrieves a blog by id. Returns nil if not found. The
// returned ViewCount reflects the counter field, which is authoritative
// over the snapshot inside the document.
func (s *BlogStore) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	vals, err := s.client.HMGet(ctx, blogKey(id), docField, viewsField).Result()
	if err != nil {
		return nil, fmt.Errorf("get blog %s: %w", id, err)
	}
	return hydrate(vals)
}

// Update replaces the stored document, keyed by id. The views field is
// left untouched; the published and category index memberships are kept
// in sync with the document's state. Last write wins.
func (s *BlogStore) Update(ctx context.Context, b *models.Blog) error {
	prev, err := s.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal blog: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, blogKey(b.ID), docField, payload)
	if prev != nil && prev.CategoryID != nil {
		pipe.ZRem(ctx, categoryIndexKey(*prev.CategoryID), b.ID)
	}
	if b.IsPublished && b.PublishedAt != nil {
		pipe.ZAdd(ctx, publishedIndexKey, redis.Z{Score: float64(b.PublishedAt.UnixMilli()), Member: b.ID})
		if b.CategoryID != nil {
			pipe.ZAdd(ctx, categoryIndexKey(*b.CategoryID), redis.Z{Score: float64(b.PublishedAt.UnixMilli()), Member: b.ID})
		}
	} else {
		pipe.ZRem(ctx, publishedIndexKey, b.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("update blog %s: %w", b.ID, err)
	}
	return nil
}

// Delete removes a blog and all of its index entries.
func (s *BlogStore) Delete(ctx context.Context, id string) error {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, blogKey(id))
	pipe.ZRem(ctx, createdIndexKey, id)
	pipe.ZRem(ctx, publishedIndexKey, id)
	pipe.ZRem(ctx, userIndexKey(b.UserID), id)
	if b.CategoryID != nil {
		pipe.ZRem(ctx, categoryIndexKey(*b.CategoryID), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete blog %s: %w", id, err)
	}
	return nil
}

// IncrementViews atomically bumps the view counter and returns the new
// value. It never reads or writes the document itself, so it cannot
// race with a concurrent replace.
func (s *BlogStore) IncrementViews(ctx context.Context, id string) (int64, error) {
	n, err := s.client.HIncrBy(ctx, blogKey(id), viewsField, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("increment views %s: %w", id, err)
	}
	return n, nil
}

// List returns a page of all blogs, newest first. pageNumber is 1-based.
func (s *BlogStore) List(ctx context.Context, pageNumber, pageSize int) ([]models.Blog, error) {
	return s.pageFromIndex(ctx, createdIndexKey, pageNumber, pageSize)
}

// ListByUser returns a page of one author's blogs, newest first.
func (s *BlogStore) ListByUser(ctx context.Context, userID uuid.UUID, pageNumber, pageSize int) ([]models.Blog, error) {
	return s.pageFromIndex(ctx, userIndexKey(userID), pageNumber, pageSize)
}

// ListPublished returns a page of published blogs ordered by publish
// time, newest first.
func (s *BlogStore) ListPublished(ctx context.Context, pageNumber, pageSize int) ([]models.Blog, error) {
	return s.pageFromIndex(ctx, publishedIndexKey, pageNumber, pageSize)
}

// ListPublishedByCategory returns a page of one category's published
// blogs ordered by publish time, newest first.
func (s *BlogStore) ListPublishedByCategory(ctx context.Context, categoryID uuid.UUID, pageNumber, pageSize int) ([]models.Blog, error) {
	return s.pageFromIndex(ctx, categoryIndexKey(categoryID), pageNumber, pageSize)
}

// Search returns a page of blogs whose title or content contains the
// term (case-insensitive) or that carry it as an exact tag, ordered by
// creation time descending.
func (s *BlogStore) Search(ctx context.Context, term string, pageNumber, pageSize int) ([]models.Blog, error) {
	needle := strings.ToLower(term)
	skip := (pageNumber - 1) * pageSize
	want := skip + pageSize

	var matched []models.Blog
	for offset := int64(0); ; offset += searchChunk {
		ids, err := s.client.ZRevRange(ctx, createdIndexKey, offset, offset+searchChunk-1).Result()
		if err != nil {
			return nil, fmt.Errorf("search scan: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		blogs, err := s.fetchAll(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, b := range blogs {
			if matchesSearch(&b, needle, term) {
				matched = append(matched, b)
			}
		}
		if len(matched) >= want {
			break
		}
	}

	if skip >= len(matched) {
		return nil, nil
	}
	end := skip + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], nil
}

// matchesSearch applies the search contract: case-insensitive substring
// on title or content, or an exact tag match.
func matchesSearch(b *models.Blog, needle, exact string) bool {
	if strings.Contains(strings.ToLower(b.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Content), needle) {
		return true
	}
	return b.HasTag(exact)
}

// TotalCount returns the number of stored blogs.
func (s *BlogStore) TotalCount(ctx context.Context) (int64, error) {
	n, err := s.client.ZCard(ctx, createdIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("total count: %w", err)
	}
	return n, nil
}

// UserCount returns the number of blogs owned by one author.
func (s *BlogStore) UserCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.client.ZCard(ctx, userIndexKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("user count: %w", err)
	}
	return n, nil
}

// CategoryCount returns the number of published blogs in one category.
func (s *BlogStore) CategoryCount(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	n, err := s.client.ZCard(ctx, categoryIndexKey(categoryID)).Result()
	if err != nil {
		return 0, fmt.Errorf("category count: %w", err)
	}
	return n, nil
}

// pageFromIndex windows a sorted-set index descending by score and
// loads the member documents.
func (s *BlogStore) pageFromIndex(ctx context.Context, index string, pageNumber, pageSize int) ([]models.Blog, error) {
	start := int64((pageNumber - 1) * pageSize)
	stop := start + int64(pageSize) - 1

	ids, err := s.client.ZRevRange(ctx, index, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("page index %s: %w", index, err)
	}
	return s.fetchAll(ctx, ids)
}

// fetchAll pipelines document loads for a list of ids, preserving
// order and skipping entries deleted between index read and fetch.
func (s *BlogStore) fetchAll(ctx context.Context, ids []string) ([]models.Blog, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.SliceCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HMGet(ctx, blogKey(id), docField, viewsField)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("fetch blogs: %w", err)
	}

	blogs := make([]models.Blog, 0, len(ids))
	for _, cmd := range cmds {
		vals, err := cmd.Result()
		if err != nil {
			return nil, fmt.Errorf("fetch blogs: %w", err)
		}
		b, err := hydrate(vals)
		if err != nil {
			return nil, err
		}
		if b != nil {
			blogs = append(blogs, *b)
		}
	}
	return blogs, nil
}

// hydrate builds a Blog from the [doc, views] HMGet result. Returns nil
// when the hash does not exist.
func hydrate(vals []any) (*models.Blog, error) {
	if len(vals) < 2 || vals[0] == nil {
		return nil, nil
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, fmt.Errorf("unexpected doc field type %T", vals[0])
	}

	var b models.Blog
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return nil, fmt.Errorf("unmarshal blog: %w", err)
	}

	if views, ok := vals[1].(string); ok {
		var n int64
		if _, err := fmt.Sscan(views, &n); err == nil {
			b.ViewCount = n
		}
	}
	return &b, nil
}
