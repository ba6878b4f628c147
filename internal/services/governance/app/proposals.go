package app

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/concordhq/concord/internal/platform/errors"
	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/circle"
	"github.com/concordhq/concord/internal/services/governance/domain/proposal"
	"github.com/concordhq/concord/internal/services/governance/domain/role"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

// CreateProposalRequest carries the inputs for CreateProposal.
type CreateProposalRequest struct {
	WorkspaceID   string
	ActorPersonID string
	EntityType    proposal.EntityType
	EntityID      string
	Title         string
	Description   string
}

// CreateProposal opens a draft change request against an existing circle or
// role.
func (s *Service) CreateProposal(ctx context.Context, req CreateProposalRequest) (storage.ProposalRecord, error) {
	if !proposal.IsValidEntityType(req.EntityType) {
		return storage.ProposalRecord{}, apperrors.WithMetadata(apperrors.CodeValidationRequiredField,
			"proposal target type must be circle or role",
			map[string]string{"field": "entity_type"})
	}

	var created storage.ProposalRecord
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		if _, err := getWorkspace(ctx, tx, req.WorkspaceID); err != nil {
			return err
		}

		circleID, targetWorkspaceID, err := resolveTarget(ctx, tx, req.EntityType, req.EntityID)
		if err != nil {
			return err
		}
		if targetWorkspaceID != req.WorkspaceID {
			return apperrors.WithMetadata(apperrors.CodeProposalWorkspaceMismatch,
				"proposal target belongs to a different workspace",
				map[string]string{"entity_id": req.EntityID})
		}

		now := s.now()
		created = storage.ProposalRecord{
			ID:                s.newID(),
			WorkspaceID:       req.WorkspaceID,
			EntityType:        req.EntityType,
			EntityID:          req.EntityID,
			CircleID:          circleID,
			Title:             strings.TrimSpace(req.Title),
			Description:       strings.TrimSpace(req.Description),
			Status:            proposal.StatusDraft,
			CreatedByPersonID: req.ActorPersonID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		return tx.PutProposal(ctx, created)
	})
	if err != nil {
		return storage.ProposalRecord{}, err
	}

	s.emitAudit(ctx, created.WorkspaceID, "proposal.create", string(created.EntityType), created.ID, req.ActorPersonID, nil)
	return created, nil
}

// AddEvolution appends one field-level change to a draft proposal. Only the
// creator may edit a draft.
func (s *Service) AddEvolution(ctx context.Context, proposalID, actorPersonID string, e proposal.Evolution) (storage.EvolutionRecord, error) {
	if err := proposal.ValidateEvolution(e); err != nil {
		return storage.EvolutionRecord{}, err
	}

	var created storage.EvolutionRecord
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		p, err := getProposal(ctx, tx, proposalID)
		if err != nil {
			return err
		}
		if err := assertCreator(p, actorPersonID, "edit"); err != nil {
			return err
		}
		if err := proposal.AssertEditable(p.Status); err != nil {
			return err
		}

		existing, err := tx.ListEvolutionsByProposal(ctx, proposalID)
		if err != nil {
			return err
		}

		now := s.now()
		created = storage.EvolutionRecord{
			ID:          s.newID(),
			ProposalID:  proposalID,
			FieldPath:   strings.TrimSpace(e.FieldPath),
			FieldLabel:  e.FieldLabel,
			BeforeValue: e.BeforeValue,
			AfterValue:  e.AfterValue,
			ChangeType:  e.ChangeType,
			Order:       len(existing),
			CreatedAt:   now,
		}
		if err := tx.PutEvolution(ctx, created); err != nil {
			return err
		}

		p.UpdatedAt = now
		return tx.PutProposal(ctx, p)
	})
	if err != nil {
		return storage.EvolutionRecord{}, err
	}
	return created, nil
}

// RemoveEvolution deletes one change from a draft proposal.
func (s *Service) RemoveEvolution(ctx context.Context, proposalID, evolutionID, actorPersonID string) error {
	return s.store.InTx(ctx, func(tx storage.Store) error {
		p, err := getProposal(ctx, tx, proposalID)
		if err != nil {
			return err
		}
		if err := assertCreator(p, actorPersonID, "edit"); err != nil {
			return err
		}
		if err := proposal.AssertEditable(p.Status); err != nil {
			return err
		}

		e, err := tx.GetEvolution(ctx, evolutionID)
		if err != nil {
			if apperrors.IsCode(err, apperrors.CodeNotFound) {
				return apperrors.WithMetadata(apperrors.CodeEvolutionNotFound,
					"proposed change does not exist",
					map[string]string{"evolution_id": evolutionID})
			}
			return err
		}
		if e.ProposalID != proposalID {
			return apperrors.WithMetadata(apperrors.CodeEvolutionNotFound,
				"proposed change belongs to a different proposal",
				map[string]string{"evolution_id": evolutionID})
		}
		if err := tx.DeleteEvolution(ctx, evolutionID); err != nil {
			return err
		}

		// Reindex the remaining evolutions so apply order stays dense.
		remaining, err := tx.ListEvolutionsByProposal(ctx, proposalID)
		if err != nil {
			return err
		}
		for i, rec := range remaining {
			if rec.Order == i {
				continue
			}
			rec.Order = i
			if err := tx.PutEvolution(ctx, rec); err != nil {
				return err
			}
		}

		p.UpdatedAt = s.now()
		return tx.PutProposal(ctx, p)
	})
}

// SubmitProposal moves a draft with at least one evolution to submitted and
// binds it to a meeting.
func (s *Service) SubmitProposal(ctx context.Context, proposalID, actorPersonID, meetingID string) (storage.ProposalRecord, error) {
	var updated storage.ProposalRecord
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		p, err := getProposal(ctx, tx, proposalID)
		if err != nil {
			return err
		}
		if err := assertCreator(p, actorPersonID, "submit"); err != nil {
			return err
		}
		next, err := proposal.Transition(p.Status, proposal.ActionSubmit)
		if err != nil {
			return err
		}

		evolutions, err := tx.ListEvolutionsByProposal(ctx, proposalID)
		if err != nil {
			return err
		}
		if len(evolutions) == 0 {
			return apperrors.New(apperrors.CodeProposalNoEvolutions,
				"proposal must have at least one proposed change")
		}

		m, err := getMeeting(ctx, tx, meetingID)
		if err != nil {
			return err
		}
		if m.WorkspaceID != p.WorkspaceID {
			return apperrors.WithMetadata(apperrors.CodeProposalWorkspaceMismatch,
				"meeting belongs to a different workspace",
				map[string]string{"meeting_id": meetingID})
		}

		now := s.now()
		p.Status = next
		p.MeetingID = meetingID
		p.SubmittedAt = &now
		p.UpdatedAt = now
		updated = p
		return tx.PutProposal(ctx, p)
	})
	if err != nil {
		return storage.ProposalRecord{}, err
	}

	s.emitAudit(ctx, updated.WorkspaceID, "proposal.submit", string(updated.EntityType), updated.ID, actorPersonID, nil)
	return updated, nil
}

// ImportToMeeting pulls submitted proposals into a live meeting, rebinding
// them to it. The caller must be the meeting's recorder.
func (s *Service) ImportToMeeting(ctx context.Context, meetingID, actorPersonID string, proposalIDs []string) error {
	var workspaceID string
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		m, err := getMeeting(ctx, tx, meetingID)
		if err != nil {
			return err
		}
		workspaceID = m.WorkspaceID
		if err := assertRecorder(m, actorPersonID, "import proposals into"); err != nil {
			return err
		}

		now := s.now()
		for _, id := range proposalIDs {
			p, err := getProposal(ctx, tx, id)
			if err != nil {
				return err
			}
			if p.Status == proposal.StatusInMeeting && p.MeetingID != meetingID {
				return apperrors.WithMetadata(apperrors.CodeProposalAlreadyLinked,
					"proposal is already being processed in another meeting",
					map[string]string{"proposal_id": id, "meeting_id": p.MeetingID})
			}
			next, err := proposal.Transition(p.Status, proposal.ActionImportToMeeting)
			if err != nil {
				return err
			}
			if p.WorkspaceID != m.WorkspaceID {
				return apperrors.WithMetadata(apperrors.CodeProposalWorkspaceMismatch,
					"proposal belongs to a different workspace",
					map[string]string{"proposal_id": id})
			}
			if p.CircleID != m.CircleID {
				return apperrors.WithMetadata(apperrors.CodeProposalCircleMismatch,
					"proposal targets a different circle than the meeting",
					map[string]string{"proposal_id": id})
			}

			p.Status = next
			p.MeetingID = meetingID
			p.UpdatedAt = now
			if err := tx.PutProposal(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.emitAudit(ctx, workspaceID, "proposal.import", auditEntityMeeting, meetingID, actorPersonID, nil)
	return nil
}

// StartProcessing moves a submitted proposal into its bound meeting without
// rebinding. The meeting's recorder drives this step.
func (s *Service) StartProcessing(ctx context.Context, proposalID, actorPersonID string) (storage.ProposalRecord, error) {
	var updated storage.ProposalRecord
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		p, err := getProposal(ctx, tx, proposalID)
		if err != nil {
			return err
		}
		next, err := proposal.Transition(p.Status, proposal.ActionStartProcessing)
		if err != nil {
			return err
		}
		m, err := getMeeting(ctx, tx, p.MeetingID)
		if err != nil {
			return err
		}
		if err := assertRecorder(m, actorPersonID, "process"); err != nil {
			return err
		}

		p.Status = next
		p.UpdatedAt = s.now()
		updated = p
		return tx.PutProposal(ctx, p)
	})
	if err != nil {
		return storage.ProposalRecord{}, err
	}
	return updated, nil
}

// ApproveProposal finalizes an in-meeting proposal: the diff is applied to
// the target, derived fields are regenerated, and exactly one history entry
// is written and back-linked, all in one transaction.
func (s *Service) ApproveProposal(ctx context.Context, proposalID, actorPersonID string) (storage.ProposalRecord, error) {
	var updated storage.ProposalRecord
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		p, err := getProposal(ctx, tx, proposalID)
		if err != nil {
			return err
		}
		next, err := proposal.Transition(p.Status, proposal.ActionApprove)
		if err != nil {
			return err
		}
		if err := s.assertFinalizeAuthority(ctx, tx, p, actorPersonID); err != nil {
			return err
		}

		evolutions, err := tx.ListEvolutionsByProposal(ctx, proposalID)
		if err != nil {
			return err
		}

		now := s.now()
		historyID, err := s.applyEvolutions(ctx, tx, p, evolutions, actorPersonID, now)
		if err != nil {
			return err
		}

		p.Status = next
		p.ProcessedAt = &now
		p.ProcessedByPersonID = actorPersonID
		p.VersionHistoryEntryID = historyID
		p.UpdatedAt = now
		updated = p
		return tx.PutProposal(ctx, p)
	})
	if err != nil {
		return storage.ProposalRecord{}, err
	}

	s.emitAudit(ctx, updated.WorkspaceID, "proposal.approve", string(updated.EntityType), updated.ID, actorPersonID, nil)
	return updated, nil
}

// RejectProposal finalizes an in-meeting proposal without touching the
// target entity. The actor gate matches approval.
func (s *Service) RejectProposal(ctx context.Context, proposalID, actorPersonID string) (storage.ProposalRecord, error) {
	var updated storage.ProposalRecord
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		p, err := getProposal(ctx, tx, proposalID)
		if err != nil {
			return err
		}
		next, err := proposal.Transition(p.Status, proposal.ActionReject)
		if err != nil {
			return err
		}
		if err := s.assertFinalizeAuthority(ctx, tx, p, actorPersonID); err != nil {
			return err
		}

		now := s.now()
		p.Status = next
		p.ProcessedAt = &now
		p.ProcessedByPersonID = actorPersonID
		p.UpdatedAt = now
		updated = p
		return tx.PutProposal(ctx, p)
	})
	if err != nil {
		return storage.ProposalRecord{}, err
	}

	s.emitAudit(ctx, updated.WorkspaceID, "proposal.reject", string(updated.EntityType), updated.ID, actorPersonID, nil)
	return updated, nil
}

// WithdrawProposal lets the creator retire a proposal from any non-terminal
// state.
func (s *Service) WithdrawProposal(ctx context.Context, proposalID, actorPersonID string) (storage.ProposalRecord, error) {
	var updated storage.ProposalRecord
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		p, err := getProposal(ctx, tx, proposalID)
		if err != nil {
			return err
		}
		if err := assertCreator(p, actorPersonID, "withdraw"); err != nil {
			return err
		}
		next, err := proposal.Transition(p.Status, proposal.ActionWithdraw)
		if err != nil {
			return err
		}

		p.Status = next
		p.UpdatedAt = s.now()
		updated = p
		return tx.PutProposal(ctx, p)
	})
	if err != nil {
		return storage.ProposalRecord{}, err
	}
	return updated, nil
}

// ProposalWithEvolutions bundles a proposal with its ordered diff.
type ProposalWithEvolutions struct {
	Proposal   storage.ProposalRecord
	Evolutions []storage.EvolutionRecord
}

// GetProposal returns a proposal with its evolutions.
func (s *Service) GetProposal(ctx context.Context, proposalID string) (ProposalWithEvolutions, error) {
	p, err := getProposal(ctx, s.store, proposalID)
	if err != nil {
		return ProposalWithEvolutions{}, err
	}
	evolutions, err := s.store.ListEvolutionsByProposal(ctx, proposalID)
	if err != nil {
		return ProposalWithEvolutions{}, err
	}
	return ProposalWithEvolutions{Proposal: p, Evolutions: evolutions}, nil
}

// ListProposals returns a workspace's proposals.
func (s *Service) ListProposals(ctx context.Context, workspaceID string) ([]storage.ProposalRecord, error) {
	return s.store.ListProposalsByWorkspace(ctx, workspaceID)
}

// resolveTarget locates a proposal target and reports its circle and
// workspace.
func resolveTarget(ctx context.Context, tx storage.Store, entityType proposal.EntityType, entityID string) (circleID, workspaceID string, err error) {
	switch entityType {
	case proposal.EntityCircle:
		c, err := getCircle(ctx, tx, entityID)
		if err != nil {
			return "", "", err
		}
		return c.ID, c.WorkspaceID, nil
	case proposal.EntityRole:
		r, err := tx.GetRole(ctx, entityID)
		if err != nil {
			if apperrors.IsCode(err, apperrors.CodeNotFound) {
				return "", "", apperrors.WithMetadata(apperrors.CodeRoleNotFound,
					"role does not exist", map[string]string{"role_id": entityID})
			}
			return "", "", err
		}
		return r.CircleID, r.WorkspaceID, nil
	default:
		return "", "", apperrors.WithMetadata(apperrors.CodeValidationRequiredField,
			"proposal target type must be circle or role",
			map[string]string{"field": "entity_type"})
	}
}

func assertCreator(p storage.ProposalRecord, actorPersonID, action string) error {
	if p.CreatedByPersonID == actorPersonID {
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodeProposalAccessDenied,
		"only the proposal creator may perform this action",
		map[string]string{"action": action, "proposal_id": p.ID})
}

func assertRecorder(m storage.MeetingRecord, actorPersonID, action string) error {
	if strings.TrimSpace(m.RecorderPersonID) == "" {
		return apperrors.WithMetadata(apperrors.CodeMeetingNoRecorder,
			"meeting has no active recorder",
			map[string]string{"meeting_id": m.ID})
	}
	if m.RecorderPersonID != actorPersonID {
		return apperrors.WithMetadata(apperrors.CodeProposalAccessDenied,
			"only the meeting's recorder may perform this action",
			map[string]string{"action": action, "meeting_id": m.ID})
	}
	return nil
}

// assertFinalizeAuthority gates approve and reject: the actor must be the
// bound meeting's recorder, and in a circle whose lead decides alone the
// recorder must additionally hold that approval authority. Consent-based
// circles finalize through the recorder alone.
func (s *Service) assertFinalizeAuthority(ctx context.Context, tx storage.Store, p storage.ProposalRecord, actorPersonID string) error {
	m, err := getMeeting(ctx, tx, p.MeetingID)
	if err != nil {
		return err
	}
	if err := assertRecorder(m, actorPersonID, "finalize"); err != nil {
		return err
	}

	c, err := getCircle(ctx, tx, p.CircleID)
	if err != nil {
		return err
	}
	if !authority.HasDirectApprovalAuthority(c.AuthorityLevel) {
		return nil
	}

	auth, err := circleAuthority(ctx, tx, actorPersonID, c)
	if err != nil {
		return err
	}
	if !auth.CanApproveProposals {
		return apperrors.WithMetadata(apperrors.CodeAuthorityDenied,
			"recorder lacks approval authority in this circle",
			map[string]string{"circle_id": c.ID})
	}
	return nil
}

// applyEvolutions applies the ordered diff to the proposal's target and
// writes the single history entry for the approval. Stale evolutions, where
// the target field moved after drafting, abort the transaction.
func (s *Service) applyEvolutions(ctx context.Context, tx storage.Store, p storage.ProposalRecord, evolutions []storage.EvolutionRecord, actorPersonID string, now time.Time) (string, error) {
	switch p.EntityType {
	case proposal.EntityCircle:
		return s.applyCircleEvolutions(ctx, tx, p, evolutions, actorPersonID, now)
	case proposal.EntityRole:
		return s.applyRoleEvolutions(ctx, tx, p, evolutions, actorPersonID, now)
	default:
		return "", apperrors.WithMetadata(apperrors.CodeValidationRequiredField,
			"proposal target type must be circle or role",
			map[string]string{"field": "entity_type"})
	}
}

func (s *Service) applyCircleEvolutions(ctx context.Context, tx storage.Store, p storage.ProposalRecord, evolutions []storage.EvolutionRecord, actorPersonID string, now time.Time) (string, error) {
	c, err := getCircle(ctx, tx, p.EntityID)
	if err != nil {
		return "", err
	}
	before := c
	identityChanged := false
	oldLevel := c.AuthorityLevel
	levelChanged := false

	for _, e := range evolutions {
		current, known := circleFieldValue(c, e.FieldPath)
		if !known {
			return "", apperrors.WithMetadata(apperrors.CodeValidationRequiredField,
				"proposal changes an unsupported circle field",
				map[string]string{"field": e.FieldPath})
		}
		if err := assertNotStale(e, current); err != nil {
			return "", err
		}
		if proposal.IsIdentityField(e.FieldPath) {
			identityChanged = true
		}

		switch e.FieldPath {
		case "name":
			if err := circle.ValidateName(e.AfterValue); err != nil {
				return "", err
			}
			c.Name = circle.NormalizeName(e.AfterValue)
		case "purpose":
			c.Purpose = strings.TrimSpace(e.AfterValue)
		case "authority_level":
			level, ok := authority.NormalizeLevelLabel(e.AfterValue)
			if !ok {
				return "", apperrors.WithMetadata(apperrors.CodeCircleInvalidLevel,
					"authority level is not recognized",
					map[string]string{"authority_level": e.AfterValue})
			}
			c.AuthorityLevel = level
			levelChanged = level != oldLevel
		}
	}

	if identityChanged {
		slug, err := uniqueSlug(ctx, tx, c.WorkspaceID, c.Name, c.ID)
		if err != nil {
			return "", err
		}
		c.Slug = slug
	}
	c.UpdatedAt = now
	c.UpdatedByPersonID = actorPersonID
	if err := tx.PutCircle(ctx, c); err != nil {
		return "", err
	}
	if levelChanged {
		if err := s.transformAuthorityLevel(ctx, tx, c, oldLevel, c.AuthorityLevel, actorPersonID, now); err != nil {
			return "", err
		}
	}

	beforeJSON, err := circleSnapshot(before)
	if err != nil {
		return "", err
	}
	afterJSON, err := circleSnapshot(c)
	if err != nil {
		return "", err
	}
	return s.appendApprovalHistory(ctx, tx, p, beforeJSON, afterJSON, actorPersonID, now)
}

func (s *Service) applyRoleEvolutions(ctx context.Context, tx storage.Store, p storage.ProposalRecord, evolutions []storage.EvolutionRecord, actorPersonID string, now time.Time) (string, error) {
	r, err := tx.GetRole(ctx, p.EntityID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return "", apperrors.WithMetadata(apperrors.CodeRoleNotFound,
				"role does not exist", map[string]string{"role_id": p.EntityID})
		}
		return "", err
	}
	before := r

	for _, e := range evolutions {
		current, known := roleFieldValue(r, e.FieldPath)
		if !known {
			return "", apperrors.WithMetadata(apperrors.CodeValidationRequiredField,
				"proposal changes an unsupported role field",
				map[string]string{"field": e.FieldPath})
		}
		if err := assertNotStale(e, current); err != nil {
			return "", err
		}

		switch e.FieldPath {
		case "name":
			if strings.TrimSpace(e.AfterValue) == "" {
				return "", apperrors.WithMetadata(apperrors.CodeValidationRequiredField,
					"role name cannot be empty",
					map[string]string{"field": "name"})
			}
			r.Name = strings.TrimSpace(e.AfterValue)
		case "purpose":
			if err := role.ValidatePurpose(e.AfterValue); err != nil {
				return "", err
			}
			r.Purpose = strings.TrimSpace(e.AfterValue)
		case "decision_rights":
			rights := splitRights(e.AfterValue)
			if err := role.ValidateDecisionRights(rights); err != nil {
				return "", err
			}
			r.DecisionRights = rights
		}
	}

	r.UpdatedAt = now
	if err := tx.PutRole(ctx, r); err != nil {
		return "", err
	}

	beforeJSON, err := roleSnapshot(before)
	if err != nil {
		return "", err
	}
	afterJSON, err := roleSnapshot(r)
	if err != nil {
		return "", err
	}
	return s.appendApprovalHistory(ctx, tx, p, beforeJSON, afterJSON, actorPersonID, now)
}

func (s *Service) appendApprovalHistory(ctx context.Context, tx storage.Store, p storage.ProposalRecord, beforeJSON, afterJSON []byte, actorPersonID string, now time.Time) (string, error) {
	entry := storage.VersionHistoryRecord{
		ID:                s.newID(),
		WorkspaceID:       p.WorkspaceID,
		EntityType:        p.EntityType,
		EntityID:          p.EntityID,
		ChangeType:        storage.HistoryUpdate,
		ChangedByPersonID: actorPersonID,
		ChangedAt:         now,
		Description:       "proposal approved: " + p.Title,
		BeforeJSON:        beforeJSON,
		AfterJSON:         afterJSON,
	}
	if err := tx.AppendVersionHistory(ctx, entry); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// assertNotStale rejects an evolution whose recorded before-value no longer
// matches the live field. Drafted diffs apply only to the state they were
// drafted against.
func assertNotStale(e storage.EvolutionRecord, current string) error {
	if e.ChangeType == proposal.ChangeAdd || e.BeforeValue == "" {
		return nil
	}
	if e.BeforeValue == current {
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodeProposalStaleEvolution,
		"target field changed since the proposal was drafted",
		map[string]string{
			"field_path": e.FieldPath,
			"expected":   e.BeforeValue,
			"actual":     current,
		})
}

func circleFieldValue(c storage.CircleRecord, fieldPath string) (string, bool) {
	switch fieldPath {
	case "name":
		return c.Name, true
	case "purpose":
		return c.Purpose, true
	case "authority_level":
		return string(c.AuthorityLevel), true
	default:
		return "", false
	}
}

func roleFieldValue(r storage.RoleRecord, fieldPath string) (string, bool) {
	switch fieldPath {
	case "name":
		return r.Name, true
	case "purpose":
		return r.Purpose, true
	case "decision_rights":
		return strings.Join(r.DecisionRights, "\n"), true
	default:
		return "", false
	}
}

// splitRights parses a newline-separated decision-rights value.
func splitRights(value string) []string {
	var rights []string
	for _, line := range strings.Split(value, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			rights = append(rights, trimmed)
		}
	}
	return rights
}
