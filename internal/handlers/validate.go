package handlers

import (
	"strings"
	"unicode/utf8"

	"blogpress/internal/models"
)

// Validation limits for blog and account fields.
const (
	maxBlogTitleLen   = 200
	minBlogContentLen = 50
	maxBlogSummaryLen = 500
	maxBlogTags       = 10

	maxUsernameLen  = 50
	maxCategoryName = 100
	minPasswordLen  = 6
)

// validateBlogPayload collects every broken rule, not just the first,
// so a caller can fix a whole form in one round trip.
func validateBlogPayload(title, content string, summary *string, tags []string, media []MediaItemDto) []string {
	var errs []string

	if strings.TrimSpace(title) == "" {
		errs = append(errs, "Title is required")
	} else if utf8.RuneCountInString(title) > maxBlogTitleLen {
		errs = append(errs, "Title cannot exceed 200 characters")
	}

	if strings.TrimSpace(content) == "" {
		errs = append(errs, "Content is required")
	} else if utf8.RuneCountInString(content) < minBlogContentLen {
		errs = append(errs, "Content must be at least 50 characters")
	}

	if summary != nil && utf8.RuneCountInString(*summary) > maxBlogSummaryLen {
		errs = append(errs, "Summary cannot exceed 500 characters")
	}

	if len(tags) > maxBlogTags {
		errs = append(errs, "Maximum 10 tags allowed")
	}

	for _, m := range media {
		if !models.MediaType(m.Type).Valid() {
			errs = append(errs, "Media type must be image or video")
			break
		}
	}

	return errs
}

// validateRegistration checks the registration payload.
func validateRegistration(username, email, password string) []string {
	var errs []string

	if strings.TrimSpace(username) == "" {
		errs = append(errs, "Username is required")
	} else if utf8.RuneCountInString(username) > maxUsernameLen {
		errs = append(errs, "Username cannot exceed 50 characters")
	}

	if strings.TrimSpace(email) == "" {
		errs = append(errs, "Email is required")
	} else if !strings.Contains(email, "@") {
		errs = append(errs, "Email is not valid")
	}

	if password == "" {
		errs = append(errs, "Password is required")
	} else if utf8.RuneCountInString(password) < minPasswordLen {
		errs = append(errs, "Password must be at least 6 characters")
	}

	return errs
}

// validateCategoryPayload checks the category name and description.
func validateCategoryPayload(name string) []string {
	var errs []string

	if strings.TrimSpace(name) == "" {
		errs = append(errs, "Name is required")
	} else if utf8.RuneCountInString(name) > maxCategoryName {
		errs = append(errs, "Name cannot exceed 100 characters")
	}

	return errs
}
