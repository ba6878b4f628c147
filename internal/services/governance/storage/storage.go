package storage

import (
	"context"
	"time"

	apperrors "github.com/concordhq/concord/internal/platform/errors"
	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/circle"
	"github.com/concordhq/concord/internal/services/governance/domain/proposal"
	"github.com/concordhq/concord/internal/services/governance/domain/role"
	"github.com/concordhq/concord/internal/services/governance/domain/workspace"
)

// ErrNotFound indicates a requested persistence record is missing.
// Callers use this to differentiate between legitimate "no such entity" states
// and transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// AssignmentStatus is the lifecycle state of a person-to-role assignment.
type AssignmentStatus string

const (
	AssignmentActive AssignmentStatus = "active"
	AssignmentEnded  AssignmentStatus = "ended"
)

// HistoryChangeType classifies a version-history entry.
type HistoryChangeType string

const (
	HistoryCreate  HistoryChangeType = "create"
	HistoryUpdate  HistoryChangeType = "update"
	HistoryArchive HistoryChangeType = "archive"
	HistoryRestore HistoryChangeType = "restore"
)

// WorkspaceRecord captures the tenant boundary and its lifecycle phase.
type WorkspaceRecord struct {
	ID        string
	Name      string
	Phase     workspace.Phase
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CircleRecord captures one organizational unit.
type CircleRecord struct {
	ID                string
	WorkspaceID       string
	Name              string
	Slug              string
	Purpose           string
	ParentCircleID    *string
	AuthorityLevel    authority.Level
	Status            circle.Status
	UpdatedByPersonID string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ArchivedAt        *time.Time
}

// RoleRecord captures a role inside a circle. RoleKind is stamped at
// creation from the originating template and is the only source of the
// lead/core/custom distinction.
type RoleRecord struct {
	ID             string
	CircleID       string
	WorkspaceID    string
	Name           string
	Purpose        string
	DecisionRights []string
	RoleKind       role.Kind
	TemplateID     string
	IsHiring       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ArchivedAt     *time.Time
}

// TemplateRecord captures a role blueprint. WorkspaceID is empty for system
// templates.
type TemplateRecord struct {
	ID                    string
	WorkspaceID           string
	Name                  string
	RoleKind              role.Kind
	AuthorityLevel        authority.Level
	DefaultPurpose        string
	DefaultDecisionRights []string
	IsCore                bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
	ArchivedAt            *time.Time
}

// AssignmentRecord links a person to a role inside a circle. Only active
// assignments feed authority calculation.
type AssignmentRecord struct {
	ID          string
	RoleID      string
	CircleID    string
	WorkspaceID string
	PersonID    string
	Status      AssignmentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	EndedAt     *time.Time
}

// ProposalRecord captures one governance change request.
type ProposalRecord struct {
	ID                    string
	WorkspaceID           string
	EntityType            proposal.EntityType
	EntityID              string
	CircleID              string
	Title                 string
	Description           string
	Status                proposal.Status
	CreatedByPersonID     string
	MeetingID             string
	SubmittedAt           *time.Time
	ProcessedAt           *time.Time
	ProcessedByPersonID   string
	VersionHistoryEntryID string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// EvolutionRecord is one ordered field-level change owned by a proposal.
type EvolutionRecord struct {
	ID          string
	ProposalID  string
	FieldPath   string
	FieldLabel  string
	BeforeValue string
	AfterValue  string
	ChangeType  proposal.ChangeType
	Order       int
	CreatedAt   time.Time
}

// VersionHistoryRecord is an immutable audit entry. Entries are written once
// and never patched.
type VersionHistoryRecord struct {
	ID                string
	WorkspaceID       string
	EntityType        proposal.EntityType
	EntityID          string
	ChangeType        HistoryChangeType
	ChangedByPersonID string
	ChangedAt         time.Time
	Description       string
	BeforeJSON        []byte
	AfterJSON         []byte
}

// MeetingRecord is collaborator state consumed read-only by the proposal
// workflow: it supplies the recorder identity and nothing else.
type MeetingRecord struct {
	ID               string
	WorkspaceID      string
	CircleID         string
	RecorderPersonID string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AuditEventRecord captures an operational audit event, distinct from the
// domain version history.
type AuditEventRecord struct {
	ID            string
	WorkspaceID   string
	Action        string
	EntityType    string
	EntityID      string
	ActorPersonID string
	Metadata      map[string]string
	CreatedAt     time.Time
}

// WorkspaceStore owns workspace phase state.
type WorkspaceStore interface {
	PutWorkspace(ctx context.Context, w WorkspaceRecord) error
	GetWorkspace(ctx context.Context, id string) (WorkspaceRecord, error)
}

// CircleStore owns the circle hierarchy.
type CircleStore interface {
	PutCircle(ctx context.Context, c CircleRecord) error
	GetCircle(ctx context.Context, id string) (CircleRecord, error)
	// ListCirclesByWorkspace returns circles ordered by creation time.
	// Archived circles are included only when includeArchived is set.
	ListCirclesByWorkspace(ctx context.Context, workspaceID string, includeArchived bool) ([]CircleRecord, error)
	// ListRootCircles returns the non-archived circles without a parent.
	ListRootCircles(ctx context.Context, workspaceID string) ([]CircleRecord, error)
	// SlugExists reports whether a non-archived circle already uses slug.
	// excludeCircleID, when non-empty, exempts that circle so a rename can
	// keep its own slug.
	SlugExists(ctx context.Context, workspaceID, slug, excludeCircleID string) (bool, error)
}

// RoleStore owns per-circle roles.
type RoleStore interface {
	PutRole(ctx context.Context, r RoleRecord) error
	GetRole(ctx context.Context, id string) (RoleRecord, error)
	// ListRolesByCircle returns roles ordered by creation time. Archived
	// roles are included only when includeArchived is set.
	ListRolesByCircle(ctx context.Context, circleID string, includeArchived bool) ([]RoleRecord, error)
}

// TemplateStore owns role blueprints.
type TemplateStore interface {
	PutTemplate(ctx context.Context, t TemplateRecord) error
	GetTemplate(ctx context.Context, id string) (TemplateRecord, error)
	// ListTemplatesForLevel returns the non-archived system templates for a
	// level plus the workspace-scoped ones, lead templates first.
	ListTemplatesForLevel(ctx context.Context, workspaceID string, level authority.Level) ([]TemplateRecord, error)
	// ListSystemTemplates returns every non-archived system template.
	ListSystemTemplates(ctx context.Context) ([]TemplateRecord, error)
}

// AssignmentStore owns person-to-role assignments.
type AssignmentStore interface {
	PutAssignment(ctx context.Context, a AssignmentRecord) error
	GetAssignment(ctx context.Context, id string) (AssignmentRecord, error)
	// ListActiveAssignmentsByCircle returns active assignments for a circle.
	ListActiveAssignmentsByCircle(ctx context.Context, circleID string) ([]AssignmentRecord, error)
	// ListAssignmentsByRole returns all assignments for a role.
	ListAssignmentsByRole(ctx context.Context, roleID string) ([]AssignmentRecord, error)
}

// ProposalStore owns proposals and their evolutions.
type ProposalStore interface {
	PutProposal(ctx context.Context, p ProposalRecord) error
	GetProposal(ctx context.Context, id string) (ProposalRecord, error)
	ListProposalsByWorkspace(ctx context.Context, workspaceID string) ([]ProposalRecord, error)
	ListProposalsByMeeting(ctx context.Context, meetingID string) ([]ProposalRecord, error)
	PutEvolution(ctx context.Context, e EvolutionRecord) error
	GetEvolution(ctx context.Context, id string) (EvolutionRecord, error)
	DeleteEvolution(ctx context.Context, id string) error
	// ListEvolutionsByProposal returns evolutions ordered by Order ascending.
	ListEvolutionsByProposal(ctx context.Context, proposalID string) ([]EvolutionRecord, error)
}

// VersionHistoryPage describes a page of version-history records.
type VersionHistoryPage struct {
	Entries       []VersionHistoryRecord
	NextPageToken string
}

// VersionHistoryStore owns the immutable audit trail.
type VersionHistoryStore interface {
	// AppendVersionHistory inserts an entry. Entries are write-once; there
	// is no update path.
	AppendVersionHistory(ctx context.Context, entry VersionHistoryRecord) error
	GetVersionHistory(ctx context.Context, id string) (VersionHistoryRecord, error)
	// ListVersionHistory returns a filtered page ordered by ChangedAt
	// descending. The filter is an AIP-160 expression over entity_type,
	// entity_id, change_type, and changed_by.
	ListVersionHistory(ctx context.Context, workspaceID, filter string, pageSize int, pageToken string) (VersionHistoryPage, error)
}

// MeetingStore provides read access to collaborator meeting facts.
type MeetingStore interface {
	PutMeeting(ctx context.Context, m MeetingRecord) error
	GetMeeting(ctx context.Context, id string) (MeetingRecord, error)
}

// AuditEventStore persists operational audit events.
type AuditEventStore interface {
	AppendAuditEvent(ctx context.Context, e AuditEventRecord) error
	ListAuditEvents(ctx context.Context, workspaceID string, limit int) ([]AuditEventRecord, error)
}

// Store composes every sub-store. InTx runs fn against a transaction-bound
// clone of the store; all mutating operations in the app layer run through
// it so a mid-operation failure rolls back every write.
type Store interface {
	WorkspaceStore
	CircleStore
	RoleStore
	TemplateStore
	AssignmentStore
	ProposalStore
	VersionHistoryStore
	MeetingStore
	AuditEventStore

	InTx(ctx context.Context, fn func(Store) error) error
	Close() error
}
