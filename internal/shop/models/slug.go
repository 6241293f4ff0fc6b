package models

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
)

// Slugify derives a URL-safe slug from a shop name: lowercase, strip
// everything outside letters, digits, whitespace and hyphens, collapse
// separator runs to a single hyphen, cap at 50 runes. Idempotent:
// Slugify(Slugify(x)) == Slugify(x).
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugCollapse.ReplaceAllString(slug, "-")
	if r := []rune(slug); len(r) > 50 {
		slug = string(r[:50])
	}
	return slug
}
