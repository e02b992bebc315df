// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"blogpress/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, is_active,
	created_by_user_id, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	c := &models.Category{}
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.IsActive,
		&c.CreatedByUserID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindByID retrieves a category by its UUID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRow(
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by its unique slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRow(
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// List returns all categories ordered by name.
func (s *CategoryStore) List() ([]models.Category, error) {
	return s.list(`SELECT ` + categoryColumns + ` FROM categories ORDER BY name`)
}

// ListActive returns only active categories, ordered by name.
func (s *CategoryStore) ListActive() ([]models.Category, error) {
	return s.list(`SELECT ` + categoryColumns + ` FROM categories WHERE is_active ORDER BY name`)
}

func (s *CategoryStore) list(query string) ([]models.Category, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// ExistsByName reports whether a category with the given name exists,
// compared case-insensitively. excludeID, when non-nil, ignores that
// row so updates don't collide with themselves.
func (s *CategoryStore) ExistsByName(name string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	var err error
	if excludeID != nil {
		err = s.db.QueryRow(`
			SELECT EXISTS (SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1) AND id <> $2)
		`, name, *excludeID).Scan(&exists)
	} else {
		err = s.db.QueryRow(`
			SELECT EXISTS (SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1))
		`, name).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("category exists check: %w", err)
	}
	return exists, nil
}

// Create inserts a new category and returns it with generated fields.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	created, err := scanCategory(s.db.QueryRow(`
		INSERT INTO categories (name, slug, description, is_active, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.IsActive, c.CreatedByUserID))
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// Update modifies a category's name, slug, description, and active flag.
// Last write wins; there is no concurrency token.
func (s *CategoryStore) Update(c *models.Category) (*models.Category, error) {
	updated, err := scanCategory(s.db.QueryRow(`
		UPDATE categories
		SET name = $1, slug = $2, description = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.IsActive, c.ID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

// Delete removes a category by ID.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
