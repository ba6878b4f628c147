// Package role defines role kinds, validation, and the mapping from stored
// roles to assignment role types used by the authority calculator.
package role

import (
	"strings"

	"github.com/concordhq/concord/internal/platform/errors"
	"github.com/concordhq/concord/internal/services/governance/domain/authority"
)

// Kind classifies a role at creation time. It is assigned from the
// originating template and never inferred from the role's display name.
type Kind string

const (
	// KindCircleLead is the single mandatory lead role per circle.
	KindCircleLead Kind = "circle_lead"
	// KindStructural roles are stamped from a level's non-lead templates.
	KindStructural Kind = "structural"
	// KindCustom roles are created ad hoc and carry no template defaults.
	KindCustom Kind = "custom"
)

// IsValidKind reports whether kind is one of the defined values.
func IsValidKind(kind Kind) bool {
	switch kind {
	case KindCircleLead, KindStructural, KindCustom:
		return true
	default:
		return false
	}
}

// RoleType maps a stored role kind to the tag the authority calculator
// consumes. Name never participates in the mapping.
func RoleType(kind Kind) authority.RoleType {
	switch kind {
	case KindCircleLead:
		return authority.RoleTypeLead
	case KindStructural:
		return authority.RoleTypeCore
	default:
		return authority.RoleTypeCustom
	}
}

// ValidatePurpose rejects blank role purposes.
func ValidatePurpose(purpose string) error {
	if strings.TrimSpace(purpose) == "" {
		return errors.New(errors.CodeRolePurposeEmpty, "role purpose is required")
	}
	return nil
}

// ValidateDecisionRights rejects empty decision-right lists and blank entries.
func ValidateDecisionRights(rights []string) error {
	if len(rights) == 0 {
		return errors.New(errors.CodeRoleDecisionRightEmpty, "role requires at least one decision right")
	}
	for _, right := range rights {
		if strings.TrimSpace(right) == "" {
			return errors.New(errors.CodeRoleDecisionRightEmpty, "decision rights must be non-empty")
		}
	}
	return nil
}
