// Package circle holds the circle domain rules: naming, slugs, status
// transitions, and the archive constraints that protect the hierarchy.
package circle

import (
	"strings"

	"github.com/concordhq/concord/internal/platform/errors"
)

// Status is a circle's lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// MaxNameLength bounds circle display names.
const MaxNameLength = 120

// ValidateName checks a circle display name before create or rename.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New(errors.CodeCircleNameEmpty, "circle name is required")
	}
	if len(trimmed) > MaxNameLength {
		return errors.WithMetadata(errors.CodeValidationRequiredField, "circle name too long", map[string]string{
			"field":      "name",
			"max_length": "120",
		})
	}
	return nil
}

// NormalizeName trims surrounding whitespace from a display name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// IsArchived reports whether the circle status is terminal for editing.
func IsArchived(status Status) bool {
	return status == StatusArchived
}
