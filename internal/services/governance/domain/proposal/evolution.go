package proposal

import (
	"strings"

	"github.com/concordhq/concord/internal/platform/errors"
)

// EntityType names the kind of entity a proposal targets.
type EntityType string

const (
	EntityCircle EntityType = "circle"
	EntityRole   EntityType = "role"
)

// IsValidEntityType reports whether t is a supported proposal target.
func IsValidEntityType(t EntityType) bool {
	return t == EntityCircle || t == EntityRole
}

// ChangeType classifies one field-level evolution.
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeUpdate ChangeType = "update"
	ChangeRemove ChangeType = "remove"
)

// Evolution is one proposed field-level change. Evolutions are ordered;
// approval applies them in order so later entries win on overlapping paths.
type Evolution struct {
	FieldPath   string
	FieldLabel  string
	BeforeValue string
	AfterValue  string
	ChangeType  ChangeType
}

// ValidateEvolution checks an evolution before it is attached to a draft.
func ValidateEvolution(e Evolution) error {
	if strings.TrimSpace(e.FieldPath) == "" {
		return errors.WithMetadata(errors.CodeValidationRequiredField,
			"evolution field path is required",
			map[string]string{"field": "field_path"})
	}
	switch e.ChangeType {
	case ChangeAdd, ChangeUpdate, ChangeRemove:
		return nil
	default:
		return errors.WithMetadata(errors.CodeEvolutionInvalidChange,
			"evolution change type is not recognized",
			map[string]string{"change_type": string(e.ChangeType)})
	}
}

// Target fields whose change forces derived-field regeneration (the circle
// slug) at approval time.
var identityFieldPaths = map[string]bool{
	"name": true,
}

// IsIdentityField reports whether a field path carries entity identity.
func IsIdentityField(fieldPath string) bool {
	return identityFieldPaths[fieldPath]
}
