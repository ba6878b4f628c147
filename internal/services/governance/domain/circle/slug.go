package circle

import (
	"strconv"
	"strings"
)

// maxSlugLength caps generated slugs so they stay usable in URLs.
const maxSlugLength = 48

// fallbackSlug is used when a name produces no usable characters.
const fallbackSlug = "circle"

// Slugify derives a URL-safe slug from a circle display name. Letters and
// digits are lowered, every other run of characters collapses to a single
// hyphen, and leading or trailing hyphens are trimmed.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// UniqueSlug appends a numeric suffix until taken reports the slug as free.
// The caller supplies taken backed by the slugs already present in the
// workspace.
func UniqueSlug(name string, taken func(slug string) bool) string {
	base := Slugify(name)
	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}
