package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRe = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a title into a lowercase, hyphen-separated,
// URL-safe slug.
func Slugify(title string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(title), "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// UniqueSlug derives a slug from the title and, when it collides with an
// existing one, appends the lowest numeric suffix that frees it. Given
// the same title and the same taken set it always produces the same
// result, so collision handling can be tested without a database.
func UniqueSlug(title string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		taken[s] = struct{}{}
	}

	base := Slugify(title)
	if base == "" {
		base = "untitled"
	}

	slug := base
	for counter := 1; ; counter++ {
		if _, exists := taken[slug]; !exists {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// NormalizeTag lowercases and trims a tag name. Returns "" for tags
// that are only whitespace.
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeTags normalizes every tag and drops empties and duplicates,
// preserving first-seen order.
func NormalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		tag := NormalizeTag(name)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
