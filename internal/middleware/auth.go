// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"blogpress/internal/models"
	"blogpress/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// callerKey is the context key for the authenticated caller.
	callerKey contextKey = "caller"
)

// Caller is the identity resolved from a validated bearer token,
// constructed once per request and passed to handlers through the
// request context.
type Caller struct {
	ID    uuid.UUID
	Email string
	Roles []string
}

// IsAdmin reports whether the caller holds the admin role.
func (c *Caller) IsAdmin() bool {
	for _, r := range c.Roles {
		if r == models.RoleAdmin {
			return true
		}
	}
	return false
}

// Authenticate validates the Authorization bearer token if one is
// present and stores the resulting Caller in the request context.
// Invalid, expired, or malformed tokens leave the request
// unauthenticated; this middleware does NOT enforce authentication.
func Authenticate(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				// Fail closed: a bad token is the same as no token.
				next.ServeHTTP(w, r)
				return
			}
			id, err := claims.UserID()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			caller := &Caller{ID: id, Email: claims.Email, Roles: claims.Roles}
			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with a 401 envelope.
// Must be applied after Authenticate in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CallerFromCtx(r.Context()) == nil {
			failJSON(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects callers without the admin role before any store
// access. Must be applied after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := CallerFromCtx(r.Context())
		if caller == nil {
			failJSON(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !caller.IsAdmin() {
			failJSON(w, http.StatusForbidden, "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CallerFromCtx extracts the caller from the request context.
// Returns nil if the request is unauthenticated.
func CallerFromCtx(ctx context.Context) *Caller {
	caller, _ := ctx.Value(callerKey).(*Caller)
	return caller
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// failJSON writes the uniform failure envelope.
func failJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"message": message,
		"errors":  []string{message},
	})
}
