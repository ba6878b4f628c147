package app

import (
	"context"
	"encoding/json"
	"time"

	apperrors "github.com/concordhq/concord/internal/platform/errors"
	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/proposal"
	"github.com/concordhq/concord/internal/services/governance/domain/role"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

// provisionCoreRoles creates every template-mandated role the circle does
// not already carry. Templates are consumed lead-first; a missing lead
// template is a deployment defect, not a recoverable condition. Idempotent:
// roles already stamped from a template (matched by template identity) are
// left alone.
func (s *Service) provisionCoreRoles(ctx context.Context, tx storage.Store, c storage.CircleRecord, level authority.Level, actorPersonID string, now time.Time) ([]storage.RoleRecord, error) {
	templates, err := tx.ListTemplatesForLevel(ctx, c.WorkspaceID, authority.EffectiveLevel(level))
	if err != nil {
		return nil, err
	}

	hasLeadTemplate := false
	for _, tmpl := range templates {
		if tmpl.RoleKind == role.KindCircleLead {
			hasLeadTemplate = true
			break
		}
	}
	if !hasLeadTemplate {
		return nil, apperrors.WithMetadata(apperrors.CodeTemplateNotFound,
			"no lead role template is configured for the authority level",
			map[string]string{
				"authority_level": string(authority.EffectiveLevel(level)),
				"workspace_id":    c.WorkspaceID,
			})
	}

	existing, err := tx.ListRolesByCircle(ctx, c.ID, false)
	if err != nil {
		return nil, err
	}
	byTemplate := make(map[string]bool, len(existing))
	hasLeadRole := false
	for _, r := range existing {
		if r.TemplateID != "" {
			byTemplate[r.TemplateID] = true
		}
		if r.RoleKind == role.KindCircleLead {
			hasLeadRole = true
		}
	}

	var created []storage.RoleRecord
	for _, tmpl := range templates {
		if byTemplate[tmpl.ID] {
			continue
		}
		// A circle carries exactly one lead role; a lead stamped from an
		// older level's template must not be duplicated here.
		if tmpl.RoleKind == role.KindCircleLead && hasLeadRole {
			continue
		}
		r := storage.RoleRecord{
			ID:             s.newID(),
			CircleID:       c.ID,
			WorkspaceID:    c.WorkspaceID,
			Name:           tmpl.Name,
			Purpose:        tmpl.DefaultPurpose,
			DecisionRights: append([]string(nil), tmpl.DefaultDecisionRights...),
			RoleKind:       tmpl.RoleKind,
			TemplateID:     tmpl.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.PutRole(ctx, r); err != nil {
			return nil, err
		}
		if err := s.appendRoleHistory(ctx, tx, r, storage.HistoryCreate, actorPersonID, now, "role provisioned from template"); err != nil {
			return nil, err
		}
		if tmpl.RoleKind == role.KindCircleLead {
			hasLeadRole = true
		}
		created = append(created, r)
	}
	return created, nil
}

// transformAuthorityLevel reconciles a circle's roles with a new authority
// level by transforming in place, never deleting and recreating. The lead
// role keeps its identity and assignment history across the change;
// structural roles are only ever added.
func (s *Service) transformAuthorityLevel(ctx context.Context, tx storage.Store, c storage.CircleRecord, oldLevel, newLevel authority.Level, actorPersonID string, now time.Time) error {
	oldLevel = authority.EffectiveLevel(oldLevel)
	newLevel = authority.EffectiveLevel(newLevel)

	roles, err := tx.ListRolesByCircle(ctx, c.ID, false)
	if err != nil {
		return err
	}
	var lead *storage.RoleRecord
	for i := range roles {
		if roles[i].RoleKind == role.KindCircleLead {
			lead = &roles[i]
			break
		}
	}

	// Self-heal: a circle without a lead role violates its structural
	// contract, so fall back to full provisioning for the new level.
	if lead == nil {
		_, err := s.provisionCoreRoles(ctx, tx, c, newLevel, actorPersonID, now)
		return err
	}

	templates, err := tx.ListTemplatesForLevel(ctx, c.WorkspaceID, newLevel)
	if err != nil {
		return err
	}

	if newLevel != oldLevel {
		var leadTemplate *storage.TemplateRecord
		for i := range templates {
			if templates[i].RoleKind == role.KindCircleLead {
				leadTemplate = &templates[i]
				break
			}
		}
		if leadTemplate == nil {
			return apperrors.WithMetadata(apperrors.CodeTemplateNotFound,
				"no lead role template is configured for the authority level",
				map[string]string{
					"authority_level": string(newLevel),
					"workspace_id":    c.WorkspaceID,
				})
		}

		before := *lead
		lead.Name = leadTemplate.Name
		lead.TemplateID = leadTemplate.ID
		lead.Purpose = leadTemplate.DefaultPurpose
		lead.DecisionRights = append([]string(nil), leadTemplate.DefaultDecisionRights...)
		lead.UpdatedAt = now
		if err := tx.PutRole(ctx, *lead); err != nil {
			return err
		}
		if err := s.appendRoleTransition(ctx, tx, before, *lead, actorPersonID, now); err != nil {
			return err
		}
	}

	// Top up structural roles for the new level. Roles made optional by the
	// change are kept, preserving any work attached to them.
	byTemplate := make(map[string]bool, len(roles))
	for _, r := range roles {
		if r.TemplateID != "" {
			byTemplate[r.TemplateID] = true
		}
	}
	byTemplate[lead.TemplateID] = true

	for _, tmpl := range templates {
		if tmpl.RoleKind == role.KindCircleLead || byTemplate[tmpl.ID] {
			continue
		}
		r := storage.RoleRecord{
			ID:             s.newID(),
			CircleID:       c.ID,
			WorkspaceID:    c.WorkspaceID,
			Name:           tmpl.Name,
			Purpose:        tmpl.DefaultPurpose,
			DecisionRights: append([]string(nil), tmpl.DefaultDecisionRights...),
			RoleKind:       tmpl.RoleKind,
			TemplateID:     tmpl.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.PutRole(ctx, r); err != nil {
			return err
		}
		if err := s.appendRoleHistory(ctx, tx, r, storage.HistoryCreate, actorPersonID, now, "role provisioned from template"); err != nil {
			return err
		}
	}
	return nil
}

// ProvisionCoreRoles ensures a circle carries every role its authority
// level mandates. Safe to call repeatedly.
func (s *Service) ProvisionCoreRoles(ctx context.Context, circleID, actorPersonID string) error {
	return s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := getCircle(ctx, tx, circleID)
		if err != nil {
			return err
		}
		now := s.now()
		_, err = s.provisionCoreRoles(ctx, tx, c, c.AuthorityLevel, actorPersonID, now)
		return err
	})
}

func (s *Service) appendRoleHistory(ctx context.Context, tx storage.Store, r storage.RoleRecord, change storage.HistoryChangeType, actorPersonID string, now time.Time, description string) error {
	after, err := roleSnapshot(r)
	if err != nil {
		return err
	}
	return tx.AppendVersionHistory(ctx, storage.VersionHistoryRecord{
		ID:                s.newID(),
		WorkspaceID:       r.WorkspaceID,
		EntityType:        proposal.EntityRole,
		EntityID:          r.ID,
		ChangeType:        change,
		ChangedByPersonID: actorPersonID,
		ChangedAt:         now,
		Description:       description,
		AfterJSON:         after,
	})
}

func (s *Service) appendRoleTransition(ctx context.Context, tx storage.Store, before, after storage.RoleRecord, actorPersonID string, now time.Time) error {
	beforeJSON, err := roleSnapshot(before)
	if err != nil {
		return err
	}
	afterJSON, err := roleSnapshot(after)
	if err != nil {
		return err
	}
	return tx.AppendVersionHistory(ctx, storage.VersionHistoryRecord{
		ID:                s.newID(),
		WorkspaceID:       after.WorkspaceID,
		EntityType:        proposal.EntityRole,
		EntityID:          after.ID,
		ChangeType:        storage.HistoryUpdate,
		ChangedByPersonID: actorPersonID,
		ChangedAt:         now,
		Description:       "lead role transformed for authority level change",
		BeforeJSON:        beforeJSON,
		AfterJSON:         afterJSON,
	})
}

// roleSnapshot captures the audit-relevant fields of a role.
func roleSnapshot(r storage.RoleRecord) ([]byte, error) {
	return json.Marshal(map[string]any{
		"name":            r.Name,
		"purpose":         r.Purpose,
		"decision_rights": r.DecisionRights,
		"role_kind":       string(r.RoleKind),
		"template_id":     r.TemplateID,
		"is_hiring":       r.IsHiring,
	})
}
