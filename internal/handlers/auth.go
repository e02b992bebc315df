// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"blogpress/internal/apperr"
	"blogpress/internal/middleware"
	"blogpress/internal/models"
	"blogpress/internal/store"
	"blogpress/internal/token"
)

// Auth groups registration, login, and profile handlers.
type Auth struct {
	users  *store.UserStore
	tokens *token.Manager
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, tokens *token.Manager) *Auth {
	return &Auth{users: users, tokens: tokens}
}

type registerRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  UserDto `json:"user"`
}

type updateProfileRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

// Register creates a new account and assigns the default role.
// Uniqueness failures are reported as one combined error so the
// response never reveals which field collided.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if errs := validateRegistration(req.Username, req.Email, req.Password); len(errs) > 0 {
		respondError(w, r, apperr.Validation(errs))
		return
	}

	taken, err := a.users.Exists(req.Email, req.Username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if taken {
		respondError(w, r, apperr.Domain("User with this email or username already exists"))
		return
	}

	user, err := a.users.Create(req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := a.users.AssignRole(user.ID, models.RoleUser); err != nil {
		respondError(w, r, err)
		return
	}
	user.Roles = []string{models.RoleUser}

	slog.Info("user registered", "user", user.ID, "username", user.Username)
	respondJSON(w, http.StatusOK, toUserDto(user))
}

// Login verifies credentials and issues a bearer token. A missing
// account, an inactive account, and a wrong password all produce the
// same failure.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if user == nil || !user.IsActive || !a.users.CheckPassword(user, req.Password) {
		respondError(w, r, apperr.Unauthorized("Invalid credentials"))
		return
	}

	roles, err := a.users.RolesFor(user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	user.Roles = roles

	if err := a.users.UpdateLastLogin(user.ID); err != nil {
		respondError(w, r, err)
		return
	}
	// Reflect the stamp in the response without a second read.
	now := time.Now().UTC()
	user.LastLoginAt = &now

	signed, _, err := a.tokens.Issue(user.ID, user.Email, roles)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("user logged in", "user", user.ID)
	respondJSON(w, http.StatusOK, loginResponse{Token: signed, User: toUserDto(user)})
}

// Me returns the authenticated caller's profile.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromCtx(r.Context())

	user, err := a.users.FindByID(caller.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if user == nil {
		respondError(w, r, apperr.NotFound("User not found"))
		return
	}

	roles, err := a.users.RolesFor(user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	user.Roles = roles

	respondJSON(w, http.StatusOK, toUserDto(user))
}

// UpdateMe updates the caller's profile fields.
func (a *Auth) UpdateMe(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromCtx(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := a.users.UpdateProfile(caller.ID, req.FirstName, req.LastName, req.ProfileImageURL)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if user == nil {
		respondError(w, r, apperr.NotFound("User not found"))
		return
	}
	user.Roles = caller.Roles

	respondJSON(w, http.StatusOK, toUserDto(user))
}
