// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and documents, and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names seeded at startup. Every registered account gets RoleUser;
// RoleAdmin unlocks the moderation endpoints.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User represents a registered account. Email and username are globally
// unique. Roles are assigned through the user_roles join table.
type User struct {
	ID              uuid.UUID  `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"` // Never serialize the hash
	FirstName       *string    `json:"first_name"`
	LastName        *string    `json:"last_name"`
	ProfileImageURL *string    `json:"profile_image_url"`
	IsActive        bool       `json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Populated by UserStore.RolesFor; empty until loaded.
	Roles []string `json:"roles,omitempty"`
}

// Role is a named permission group ("User", "Admin").
type Role struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRole is a role assignment, stamped with the time it was granted.
type UserRole struct {
	UserID     uuid.UUID `json:"user_id"`
	RoleID     uuid.UUID `json:"role_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// HasRole reports whether the loaded role set contains the given name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
