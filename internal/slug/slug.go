// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation for category names.
package slug

import "strings"

// Generate creates a URL slug from a category name: lowercase, spaces
// become hyphens, "&" becomes "and", quote characters are stripped.
// The result is a pure function of the name; two names that normalize
// to the same slug will collide on the unique constraint.
// Example: "Tech & News" → "tech-and-news"
func Generate(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "&", "and")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}
