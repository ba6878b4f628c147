// Package app implements the governance engine's operations: circle
// lifecycle, role provisioning, the proposal workflow, and history queries.
// All mutating operations run inside a single store transaction.
package app

import (
	"context"
	"time"

	"github.com/concordhq/concord/internal/id"
	apperrors "github.com/concordhq/concord/internal/platform/errors"
	"github.com/concordhq/concord/internal/services/governance/observability/audit"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

// Service exposes the governance operations. Callers are expected to have
// resolved actor identity and workspace membership before reaching this
// layer.
type Service struct {
	store   storage.Store
	emitter *audit.Emitter
	clock   func() time.Time
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the service clock.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator overrides ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithAuditEmitter attaches an operational audit emitter.
func WithAuditEmitter(emitter *audit.Emitter) Option {
	return func(s *Service) {
		s.emitter = emitter
	}
}

// New creates a governance service backed by the provided store.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		clock: time.Now,
		newID: id.MustNewID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

// getWorkspace maps missing workspaces onto the domain error code.
func getWorkspace(ctx context.Context, store storage.Store, id string) (storage.WorkspaceRecord, error) {
	w, err := store.GetWorkspace(ctx, id)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return storage.WorkspaceRecord{}, apperrors.WithMetadata(apperrors.CodeWorkspaceNotFound,
				"workspace does not exist", map[string]string{"workspace_id": id})
		}
		return storage.WorkspaceRecord{}, err
	}
	return w, nil
}

func getCircle(ctx context.Context, store storage.Store, id string) (storage.CircleRecord, error) {
	c, err := store.GetCircle(ctx, id)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return storage.CircleRecord{}, apperrors.WithMetadata(apperrors.CodeCircleNotFound,
				"circle does not exist", map[string]string{"circle_id": id})
		}
		return storage.CircleRecord{}, err
	}
	return c, nil
}

func getProposal(ctx context.Context, store storage.Store, id string) (storage.ProposalRecord, error) {
	p, err := store.GetProposal(ctx, id)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return storage.ProposalRecord{}, apperrors.WithMetadata(apperrors.CodeProposalNotFound,
				"proposal does not exist", map[string]string{"proposal_id": id})
		}
		return storage.ProposalRecord{}, err
	}
	return p, nil
}

func getMeeting(ctx context.Context, store storage.Store, id string) (storage.MeetingRecord, error) {
	m, err := store.GetMeeting(ctx, id)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return storage.MeetingRecord{}, apperrors.WithMetadata(apperrors.CodeMeetingNotFound,
				"meeting does not exist", map[string]string{"meeting_id": id})
		}
		return storage.MeetingRecord{}, err
	}
	return m, nil
}
