package utils

import (
	"fmt"
	"strings"
	"time"
)

// NormalizeSlug turns a display name into a URL-safe slug (lowercase,
// alphanumeric and hyphens only).
func NormalizeSlug(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")

	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	slug = result.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return strings.Trim(slug, "-")
}

// DedupeSlug disambiguates a taken slug by suffixing the current timestamp.
// Registration uses this instead of rejecting the company name.
func DedupeSlug(slug string) string {
	return fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
