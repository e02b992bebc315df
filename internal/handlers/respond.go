// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP API: auth, blogs, categories,
// admin moderation, and media uploads. Every failure is written as a
// uniform {message, errors[]} envelope with the status derived from
// the error kind.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"blogpress/internal/apperr"
)

// failEnvelope is the uniform failure body.
type failEnvelope struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// respondJSON writes a success payload.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("encode response failed", "error", err)
		}
	}
}

// respondError classifies err, logs internal faults, and writes the
// failure envelope. Internal causes are never surfaced to the caller.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.From(err)
	if ae.Kind == apperr.KindInternal {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	respondJSON(w, ae.Status(), failEnvelope{Message: ae.Message, Errors: ae.Details()})
}

// decodeJSON parses a request body into dst, converting malformed
// input into a validation failure.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation([]string{"Invalid request body"})
	}
	return nil
}
