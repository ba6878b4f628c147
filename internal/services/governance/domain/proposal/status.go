// Package proposal models the governance proposal lifecycle as a typed
// state machine. Every status change in the app layer goes through the
// transition table here; nothing else compares status strings.
package proposal

import "github.com/concordhq/concord/internal/platform/errors"

// Status is a proposal lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusInMeeting Status = "in_meeting"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// Action is a lifecycle action that moves a proposal between states.
type Action string

const (
	ActionSubmit          Action = "submit"
	ActionImportToMeeting Action = "import_to_meeting"
	ActionStartProcessing Action = "start_processing"
	ActionApprove         Action = "approve"
	ActionReject          Action = "reject"
	ActionWithdraw        Action = "withdraw"
)

// transitions is the complete legal transition table. An absent pair is an
// illegal transition; withdraw is handled separately because it is legal
// from every non-terminal state.
var transitions = map[Status]map[Action]Status{
	StatusDraft: {
		ActionSubmit: StatusSubmitted,
	},
	StatusSubmitted: {
		ActionImportToMeeting: StatusInMeeting,
		ActionStartProcessing: StatusInMeeting,
	},
	StatusInMeeting: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
}

// IsTerminal reports whether the status accepts no further actions.
func IsTerminal(status Status) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// IsValidStatus reports whether status is one of the defined states.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusDraft, StatusSubmitted, StatusInMeeting,
		StatusApproved, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// CanTransition reports the resulting state of applying action in the given
// state, or false when the transition is illegal.
func CanTransition(from Status, action Action) (Status, bool) {
	if action == ActionWithdraw {
		if IsTerminal(from) || !IsValidStatus(from) {
			return "", false
		}
		return StatusWithdrawn, true
	}
	next, ok := transitions[from][action]
	return next, ok
}

// Transition applies action to the given state, returning the new state or
// a state conflict naming both sides.
func Transition(from Status, action Action) (Status, error) {
	next, ok := CanTransition(from, action)
	if !ok {
		return "", errors.WithMetadata(errors.CodeProposalInvalidState,
			"action is not valid for the proposal's current state",
			map[string]string{
				"status": string(from),
				"action": string(action),
			})
	}
	return next, nil
}

// AssertEditable returns a state conflict unless the proposal is still a
// draft. Evolutions may only be added or removed before submission.
func AssertEditable(status Status) error {
	if status == StatusDraft {
		return nil
	}
	return errors.WithMetadata(errors.CodeProposalInvalidState,
		"proposal can only be edited while in draft",
		map[string]string{"status": string(status)})
}
