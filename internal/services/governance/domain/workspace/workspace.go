// Package workspace models workspace lifecycle phases and the edit gating
// they impose on structural changes.
package workspace

import "github.com/concordhq/concord/internal/platform/errors"

// Phase is a workspace lifecycle phase.
type Phase string

const (
	// PhaseDesign allows direct structural edits without a proposal.
	PhaseDesign Phase = "design"
	// PhaseActive requires structural changes to flow through proposals.
	PhaseActive Phase = "active"
)

// AllowsDirectEdit reports whether the phase permits editing circles and
// roles without a governance proposal.
func AllowsDirectEdit(phase Phase) bool {
	return phase == PhaseDesign
}

// AssertDirectEdit returns a state conflict when the phase forbids direct
// edits.
func AssertDirectEdit(phase Phase) error {
	if AllowsDirectEdit(phase) {
		return nil
	}
	return errors.WithMetadata(errors.CodeWorkspacePhaseDisallowsEdit,
		"workspace phase requires changes to go through a proposal",
		map[string]string{"phase": string(phase)})
}
