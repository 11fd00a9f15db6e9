package seo

import (
	"regexp"
	"strings"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	edgeDash = regexp.MustCompile(`(^-|-$)+`)
)

// Slugify derives a URL-safe slug from a title: lower-cased, runs of
// non-alphanumeric characters collapsed to a single dash, leading and
// trailing dashes trimmed.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonAlnum.ReplaceAllString(slug, "-")
	slug = edgeDash.ReplaceAllString(slug, "")
	return slug
}
