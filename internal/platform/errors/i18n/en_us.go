package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
const (
	CodeCircleNotFound      = "CIRCLE_NOT_FOUND"
	CodeCircleNameEmpty     = "CIRCLE_NAME_EMPTY"
	CodeCircleInvalidParent = "CIRCLE_INVALID_PARENT"
	CodeCircleRootExists    = "CIRCLE_ROOT_EXISTS"
	CodeCircleRootArchive   = "CIRCLE_ROOT_ARCHIVE_FORBIDDEN"
	CodeCircleArchived      = "CIRCLE_ARCHIVED"
	CodeCircleNotArchived   = "CIRCLE_NOT_ARCHIVED"
	CodeCircleInvalidLevel  = "CIRCLE_INVALID_AUTHORITY_LEVEL"

	CodeRoleNotFound           = "ROLE_NOT_FOUND"
	CodeRolePurposeEmpty       = "ROLE_PURPOSE_EMPTY"
	CodeRoleDecisionRightEmpty = "ROLE_DECISION_RIGHTS_EMPTY"
	CodeRoleLeadArchive        = "ROLE_LEAD_ARCHIVE_FORBIDDEN"

	CodeTemplateNotFound  = "TEMPLATE_NOT_FOUND"
	CodeTemplateDuplicate = "TEMPLATE_DUPLICATE"

	CodeWorkspaceNotFound           = "WORKSPACE_NOT_FOUND"
	CodeWorkspaceMembershipRequired = "WORKSPACE_MEMBERSHIP_REQUIRED"
	CodeWorkspacePhaseDisallowsEdit = "WORKSPACE_PHASE_DISALLOWS_EDIT"

	CodeProposalNotFound          = "PROPOSAL_NOT_FOUND"
	CodeProposalInvalidState      = "PROPOSAL_INVALID_STATE"
	CodeProposalAccessDenied      = "PROPOSAL_ACCESS_DENIED"
	CodeProposalNoEvolutions      = "PROPOSAL_NO_EVOLUTIONS"
	CodeProposalWorkspaceMismatch = "PROPOSAL_WORKSPACE_MISMATCH"
	CodeProposalCircleMismatch    = "PROPOSAL_CIRCLE_MISMATCH"
	CodeProposalAlreadyLinked     = "PROPOSAL_ALREADY_LINKED"
	CodeProposalStaleEvolution    = "PROPOSAL_STALE_EVOLUTION"
	CodeEvolutionNotFound         = "EVOLUTION_NOT_FOUND"
	CodeEvolutionInvalidChange    = "EVOLUTION_INVALID_CHANGE_TYPE"

	CodeMeetingNotFound   = "MEETING_NOT_FOUND"
	CodeMeetingNoRecorder = "MEETING_NO_RECORDER"

	CodeAssignmentNotFound = "ASSIGNMENT_NOT_FOUND"

	CodeAuthorityDenied = "AUTHORITY_DENIED"

	CodeValidationRequiredField = "VALIDATION_REQUIRED_FIELD"

	CodeNotFound = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Circle errors
		CodeCircleNotFound:      "Circle not found",
		CodeCircleNameEmpty:     "Circle name cannot be empty",
		CodeCircleInvalidParent: "Parent circle is invalid for this workspace",
		CodeCircleRootExists:    "Workspace already has a root circle",
		CodeCircleRootArchive:   "The root circle cannot be archived",
		CodeCircleArchived:      "Circle is archived",
		CodeCircleNotArchived:   "Circle is not archived",
		CodeCircleInvalidLevel:  "Authority level {{.authority_level}} is not recognized",

		// Role errors
		CodeRoleNotFound:           "Role not found",
		CodeRolePurposeEmpty:       "Role purpose cannot be empty",
		CodeRoleDecisionRightEmpty: "Role needs at least one decision right",
		CodeRoleLeadArchive:        "The lead role cannot be archived while its circle is active",

		// Template errors
		CodeTemplateNotFound:  "Required role template for authority level {{.authority_level}} is missing",
		CodeTemplateDuplicate: "A system template with this name, kind, and authority level already exists",

		// Workspace errors
		CodeWorkspaceNotFound:           "Workspace not found",
		CodeWorkspaceMembershipRequired: "You are not a member of this workspace",
		CodeWorkspacePhaseDisallowsEdit: "Direct edits require the workspace design phase; create a proposal instead",

		// Proposal errors
		CodeProposalNotFound:          "Proposal not found",
		CodeProposalInvalidState:      "Proposal status {{.status}} does not allow {{.action}}",
		CodeProposalAccessDenied:      "You are not allowed to {{.action}} this proposal",
		CodeProposalNoEvolutions:      "Proposal must have at least one proposed change",
		CodeProposalWorkspaceMismatch: "Proposal and target belong to different workspaces",
		CodeProposalCircleMismatch:    "Proposal does not belong to this meeting's circle",
		CodeProposalAlreadyLinked:     "Proposal is already linked to a meeting",
		CodeProposalStaleEvolution:    "Field {{.field_path}} changed since this proposal was drafted",
		CodeEvolutionNotFound:         "Proposed change not found",
		CodeEvolutionInvalidChange:    "Change type {{.change_type}} is not recognized",

		// Meeting errors
		CodeMeetingNotFound:   "Meeting not found",
		CodeMeetingNoRecorder: "Meeting has no active recorder",

		// Assignment errors
		CodeAssignmentNotFound: "Assignment not found",

		// Authority errors
		CodeAuthorityDenied: "Insufficient circle authority for this action",

		// Validation errors
		CodeValidationRequiredField: "{{.field}} is required",

		// Storage errors
		CodeNotFound: "Record not found",
	},
}
