package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// SeedRoles ensures the "User" and "Admin" roles exist. Safe to run on
// every startup.
func SeedRoles(db *sql.DB) error {
	for _, name := range []string{"User", "Admin"} {
		_, err := db.Exec(`
			INSERT INTO roles (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, name)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}
	slog.Info("roles seeded")
	return nil
}

// SeedDevAdmin creates a default admin account for development.
// It is a no-op if any user already exists.
func SeedDevAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id
	`, "admin", "admin@blogpress.local", string(hash)).Scan(&userID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Grant both roles so the account can exercise the whole API.
	_, err = db.Exec(`
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name IN ('User', 'Admin')
	`, userID)
	if err != nil {
		return fmt.Errorf("seed admin roles: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@blogpress.local",
		"password", "admin",
	)
	return nil
}
