// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the error taxonomy surfaced by the HTTP layer.
// Every handler failure is an *Error with a kind that maps to a status
// code and a list of granular messages for the response envelope.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for status-code mapping.
type Kind int

const (
	// KindInternal is an unclassified fault; surfaced as a generic 500.
	KindInternal Kind = iota
	// KindNotFound means the requested entity does not exist (404).
	KindNotFound
	// KindUnauthorized covers missing, invalid, or expired credentials (401).
	KindUnauthorized
	// KindForbidden means the caller is authenticated but not permitted (403).
	KindForbidden
	// KindValidation means malformed or out-of-range input (400).
	KindValidation
	// KindDomain is a business-rule violation such as a duplicate name (400).
	KindDomain
)

// Error carries a failure kind, a user-facing message, and optional
// granular messages (one per violated rule for validation failures).
type Error struct {
	Kind    Kind
	Message string
	Errors  []string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// Details returns the granular message list, defaulting to the single
// top-level message so the envelope's errors array is never empty.
func (e *Error) Details() []string {
	if len(e.Errors) > 0 {
		return e.Errors
	}
	return []string{e.Message}
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation, KindDomain:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NotFound builds a 404 error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden builds a 403 error.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Validation builds a 400 error enumerating every violated rule.
func Validation(messages []string) *Error {
	msg := "Validation failed"
	if len(messages) == 1 {
		msg = messages[0]
	}
	return &Error{Kind: KindValidation, Message: msg, Errors: messages}
}

// Domain builds a 400 business-rule error.
func Domain(message string) *Error {
	return &Error{Kind: KindDomain, Message: message}
}

// Internal wraps an unexpected fault. The cause is logged at the
// boundary; callers never see its text.
func Internal(cause error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: "An error occurred while processing your request.",
		cause:   cause,
	}
}

// From converts any error into an *Error, passing typed errors through
// and wrapping everything else as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
