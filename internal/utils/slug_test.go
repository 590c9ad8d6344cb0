package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"simple title", "My First Article", "my-first-article"},
		{"punctuation stripped", "Hello, World!", "hello-world"},
		{"repeated separators collapse", "a  --  b", "a-b"},
		{"leading and trailing separators trimmed", " -spaces- ", "spaces"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.title))
		})
	}
}

func TestUniqueSlugNoCollision(t *testing.T) {
	slug := UniqueSlug("A New Hope", nil)
	assert.Equal(t, "a-new-hope", slug)
}

func TestUniqueSlugCollisionSuffix(t *testing.T) {
	existing := []string{"a-new-hope"}
	assert.Equal(t, "a-new-hope-1", UniqueSlug("A New Hope", existing))

	existing = append(existing, "a-new-hope-1")
	assert.Equal(t, "a-new-hope-2", UniqueSlug("A New Hope", existing))
}

func TestUniqueSlugDeterministic(t *testing.T) {
	existing := []string{"a-new-hope", "a-new-hope-1", "a-new-hope-3"}
	first := UniqueSlug("A New Hope", existing)
	second := UniqueSlug("A New Hope", existing)
	assert.Equal(t, first, second)
	assert.Equal(t, "a-new-hope-2", first)
}

func TestUniqueSlugEmptyTitle(t *testing.T) {
	assert.Equal(t, "untitled", UniqueSlug("!!!", nil))
	assert.Equal(t, "untitled-1", UniqueSlug("!!!", []string{"untitled"}))
}

func TestNormalizeTags(t *testing.T) {
	tags := NormalizeTags([]string{" Go ", "go", "Web Dev", "", "  "})
	assert.Equal(t, []string{"go", "web dev"}, tags)
}
