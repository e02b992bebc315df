// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"blogpress/internal/models"
)

// RoleStore handles role lookups. Roles are seeded at startup and
// rarely change.
type RoleStore struct {
	db *sql.DB
}

// NewRoleStore returns a new RoleStore.
func NewRoleStore(db *sql.DB) *RoleStore {
	return &RoleStore{db: db}
}

// FindByName retrieves a role by its unique name. Returns nil if not found.
func (s *RoleStore) FindByName(name string) (*models.Role, error) {
	r := &models.Role{}
	err := s.db.QueryRow(`
		SELECT id, name, created_at FROM roles WHERE name = $1
	`, name).Scan(&r.ID, &r.Name, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find role by name: %w", err)
	}
	return r, nil
}

// List returns all roles ordered by name.
func (s *RoleStore) List() ([]models.Role, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}
