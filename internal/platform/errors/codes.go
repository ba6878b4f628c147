package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Circle errors
	CodeCircleNotFound      Code = "CIRCLE_NOT_FOUND"
	CodeCircleNameEmpty     Code = "CIRCLE_NAME_EMPTY"
	CodeCircleInvalidParent Code = "CIRCLE_INVALID_PARENT"
	CodeCircleRootExists    Code = "CIRCLE_ROOT_EXISTS"
	CodeCircleRootArchive   Code = "CIRCLE_ROOT_ARCHIVE_FORBIDDEN"
	CodeCircleArchived      Code = "CIRCLE_ARCHIVED"
	CodeCircleNotArchived   Code = "CIRCLE_NOT_ARCHIVED"
	CodeCircleInvalidLevel  Code = "CIRCLE_INVALID_AUTHORITY_LEVEL"

	// Role errors
	CodeRoleNotFound           Code = "ROLE_NOT_FOUND"
	CodeRolePurposeEmpty       Code = "ROLE_PURPOSE_EMPTY"
	CodeRoleDecisionRightEmpty Code = "ROLE_DECISION_RIGHTS_EMPTY"
	CodeRoleLeadArchive        Code = "ROLE_LEAD_ARCHIVE_FORBIDDEN"

	// Template errors
	CodeTemplateNotFound  Code = "TEMPLATE_NOT_FOUND"
	CodeTemplateDuplicate Code = "TEMPLATE_DUPLICATE"

	// Workspace errors
	CodeWorkspaceNotFound           Code = "WORKSPACE_NOT_FOUND"
	CodeWorkspaceMembershipRequired Code = "WORKSPACE_MEMBERSHIP_REQUIRED"
	CodeWorkspacePhaseDisallowsEdit Code = "WORKSPACE_PHASE_DISALLOWS_EDIT"

	// Proposal errors
	CodeProposalNotFound          Code = "PROPOSAL_NOT_FOUND"
	CodeProposalInvalidState      Code = "PROPOSAL_INVALID_STATE"
	CodeProposalAccessDenied      Code = "PROPOSAL_ACCESS_DENIED"
	CodeProposalNoEvolutions      Code = "PROPOSAL_NO_EVOLUTIONS"
	CodeProposalWorkspaceMismatch Code = "PROPOSAL_WORKSPACE_MISMATCH"
	CodeProposalCircleMismatch    Code = "PROPOSAL_CIRCLE_MISMATCH"
	CodeProposalAlreadyLinked     Code = "PROPOSAL_ALREADY_LINKED"
	CodeProposalStaleEvolution    Code = "PROPOSAL_STALE_EVOLUTION"
	CodeEvolutionNotFound         Code = "EVOLUTION_NOT_FOUND"
	CodeEvolutionInvalidChange    Code = "EVOLUTION_INVALID_CHANGE_TYPE"

	// Meeting errors
	CodeMeetingNotFound   Code = "MEETING_NOT_FOUND"
	CodeMeetingNoRecorder Code = "MEETING_NO_RECORDER"

	// Assignment errors
	CodeAssignmentNotFound Code = "ASSIGNMENT_NOT_FOUND"

	// Authority errors
	CodeAuthorityDenied Code = "AUTHORITY_DENIED"

	// Validation errors
	CodeValidationRequiredField Code = "VALIDATION_REQUIRED_FIELD"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// Category groups codes into the stable error taxonomy exposed to callers.
type Category string

const (
	CategoryUnknown             Category = "unknown"
	CategoryNotFound            Category = "not_found"
	CategoryValidation          Category = "validation_error"
	CategoryAuthorizationDenied Category = "authorization_denied"
	CategoryStateConflict       Category = "state_conflict"
	CategoryConfiguration       Category = "configuration_error"
)

// Category maps a code to its taxonomy category.
func (c Code) Category() Category {
	switch c {
	case CodeCircleNotFound,
		CodeRoleNotFound,
		CodeWorkspaceNotFound,
		CodeProposalNotFound,
		CodeEvolutionNotFound,
		CodeMeetingNotFound,
		CodeAssignmentNotFound,
		CodeNotFound:
		return CategoryNotFound

	case CodeCircleNameEmpty,
		CodeCircleInvalidParent,
		CodeCircleInvalidLevel,
		CodeRolePurposeEmpty,
		CodeRoleDecisionRightEmpty,
		CodeProposalNoEvolutions,
		CodeProposalWorkspaceMismatch,
		CodeProposalCircleMismatch,
		CodeEvolutionInvalidChange,
		CodeValidationRequiredField:
		return CategoryValidation

	case CodeWorkspaceMembershipRequired,
		CodeProposalAccessDenied,
		CodeAuthorityDenied:
		return CategoryAuthorizationDenied

	case CodeCircleRootExists,
		CodeCircleRootArchive,
		CodeCircleArchived,
		CodeCircleNotArchived,
		CodeRoleLeadArchive,
		CodeWorkspacePhaseDisallowsEdit,
		CodeProposalInvalidState,
		CodeProposalAlreadyLinked,
		CodeProposalStaleEvolution,
		CodeMeetingNoRecorder:
		return CategoryStateConflict

	case CodeTemplateNotFound,
		CodeTemplateDuplicate:
		return CategoryConfiguration

	default:
		return CategoryUnknown
	}
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c.Category() {
	case CategoryNotFound:
		return codes.NotFound
	case CategoryValidation:
		return codes.InvalidArgument
	case CategoryAuthorizationDenied:
		return codes.PermissionDenied
	case CategoryStateConflict:
		return codes.FailedPrecondition
	case CategoryConfiguration:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}
