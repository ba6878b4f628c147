package app

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/concordhq/concord/internal/platform/errors"
	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/circle"
	"github.com/concordhq/concord/internal/services/governance/domain/proposal"
	"github.com/concordhq/concord/internal/services/governance/domain/workspace"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

// CreateCircleRequest carries the inputs for CreateCircle.
type CreateCircleRequest struct {
	WorkspaceID    string
	ActorPersonID  string
	Name           string
	Purpose        string
	ParentCircleID *string
	AuthorityLevel authority.Level
}

// CreateCircleResult reports the created circle.
type CreateCircleResult struct {
	CircleID string
	Slug     string
}

// CreateCircle creates a circle, provisions its mandatory roles, and writes
// a creation history entry, all in one transaction.
func (s *Service) CreateCircle(ctx context.Context, req CreateCircleRequest) (CreateCircleResult, error) {
	var result CreateCircleResult

	if err := circle.ValidateName(req.Name); err != nil {
		return result, err
	}
	level := req.AuthorityLevel
	if level == authority.LevelUnspecified {
		level = authority.DefaultLevel
	}
	if !authority.IsValidLevel(level) {
		return result, apperrors.WithMetadata(apperrors.CodeCircleInvalidLevel,
			"authority level is not recognized",
			map[string]string{"authority_level": string(level)})
	}

	err := s.store.InTx(ctx, func(tx storage.Store) error {
		if _, err := getWorkspace(ctx, tx, req.WorkspaceID); err != nil {
			return err
		}

		if req.ParentCircleID == nil {
			roots, err := tx.ListRootCircles(ctx, req.WorkspaceID)
			if err != nil {
				return err
			}
			if len(roots) > 0 {
				return apperrors.WithMetadata(apperrors.CodeCircleRootExists,
					"workspace already has a root circle",
					map[string]string{"root_circle_id": roots[0].ID})
			}
		} else {
			parent, err := getCircle(ctx, tx, *req.ParentCircleID)
			if err != nil {
				return err
			}
			if parent.WorkspaceID != req.WorkspaceID {
				return apperrors.WithMetadata(apperrors.CodeCircleInvalidParent,
					"parent circle belongs to a different workspace",
					map[string]string{"parent_circle_id": parent.ID})
			}
			if circle.IsArchived(parent.Status) {
				return apperrors.WithMetadata(apperrors.CodeCircleInvalidParent,
					"parent circle is archived",
					map[string]string{"parent_circle_id": parent.ID})
			}
		}

		slug, err := uniqueSlug(ctx, tx, req.WorkspaceID, req.Name, "")
		if err != nil {
			return err
		}

		now := s.now()
		c := storage.CircleRecord{
			ID:                s.newID(),
			WorkspaceID:       req.WorkspaceID,
			Name:              circle.NormalizeName(req.Name),
			Slug:              slug,
			Purpose:           strings.TrimSpace(req.Purpose),
			ParentCircleID:    req.ParentCircleID,
			AuthorityLevel:    level,
			Status:            circle.StatusActive,
			UpdatedByPersonID: req.ActorPersonID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.PutCircle(ctx, c); err != nil {
			return err
		}

		if _, err := s.provisionCoreRoles(ctx, tx, c, level, req.ActorPersonID, now); err != nil {
			return err
		}

		if err := s.appendCircleHistory(ctx, tx, storage.CircleRecord{}, c, storage.HistoryCreate, req.ActorPersonID, now, "circle created"); err != nil {
			return err
		}

		result = CreateCircleResult{CircleID: c.ID, Slug: c.Slug}
		return nil
	})
	if err != nil {
		return CreateCircleResult{}, err
	}

	s.emitAudit(ctx, req.WorkspaceID, "circle.create", auditEntityCircle, result.CircleID, req.ActorPersonID, map[string]string{"slug": result.Slug})
	return result, nil
}

// UpdateCircleRequest carries the direct-edit inputs for UpdateCircle. Nil
// fields are left unchanged.
type UpdateCircleRequest struct {
	CircleID      string
	ActorPersonID string
	Name          *string
	Purpose       *string
}

// UpdateCircle edits a circle directly. Direct edits are a design-phase
// affordance; once the workspace is active, changes go through proposals.
func (s *Service) UpdateCircle(ctx context.Context, req UpdateCircleRequest) error {
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := getCircle(ctx, tx, req.CircleID)
		if err != nil {
			return err
		}
		if circle.IsArchived(c.Status) {
			return apperrors.WithMetadata(apperrors.CodeCircleArchived,
				"archived circles cannot be edited",
				map[string]string{"circle_id": c.ID})
		}
		w, err := getWorkspace(ctx, tx, c.WorkspaceID)
		if err != nil {
			return err
		}
		if err := workspace.AssertDirectEdit(w.Phase); err != nil {
			return err
		}

		before := c
		changed := false
		if req.Name != nil && circle.NormalizeName(*req.Name) != c.Name {
			if err := circle.ValidateName(*req.Name); err != nil {
				return err
			}
			c.Name = circle.NormalizeName(*req.Name)
			slug, err := uniqueSlug(ctx, tx, c.WorkspaceID, c.Name, c.ID)
			if err != nil {
				return err
			}
			c.Slug = slug
			changed = true
		}
		if req.Purpose != nil && strings.TrimSpace(*req.Purpose) != c.Purpose {
			c.Purpose = strings.TrimSpace(*req.Purpose)
			changed = true
		}
		if !changed {
			return nil
		}

		now := s.now()
		c.UpdatedAt = now
		c.UpdatedByPersonID = req.ActorPersonID
		if err := tx.PutCircle(ctx, c); err != nil {
			return err
		}
		return s.appendCircleHistory(ctx, tx, before, c, storage.HistoryUpdate, req.ActorPersonID, now, "circle updated")
	})
	if err != nil {
		return err
	}
	s.emitAudit(ctx, "", "circle.update", auditEntityCircle, req.CircleID, req.ActorPersonID, nil)
	return nil
}

// UpdateCircleAuthorityLevel changes a circle's authority level and
// reconciles its roles with the new level's policy in the same transaction.
func (s *Service) UpdateCircleAuthorityLevel(ctx context.Context, circleID, actorPersonID string, newLevel authority.Level) error {
	if !authority.IsValidLevel(newLevel) {
		return apperrors.WithMetadata(apperrors.CodeCircleInvalidLevel,
			"authority level is not recognized",
			map[string]string{"authority_level": string(newLevel)})
	}

	err := s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := getCircle(ctx, tx, circleID)
		if err != nil {
			return err
		}
		if circle.IsArchived(c.Status) {
			return apperrors.WithMetadata(apperrors.CodeCircleArchived,
				"archived circles cannot be edited",
				map[string]string{"circle_id": c.ID})
		}
		w, err := getWorkspace(ctx, tx, c.WorkspaceID)
		if err != nil {
			return err
		}
		if err := workspace.AssertDirectEdit(w.Phase); err != nil {
			return err
		}

		oldLevel := c.AuthorityLevel
		now := s.now()
		before := c
		c.AuthorityLevel = newLevel
		c.UpdatedAt = now
		c.UpdatedByPersonID = actorPersonID
		if err := tx.PutCircle(ctx, c); err != nil {
			return err
		}

		if err := s.transformAuthorityLevel(ctx, tx, c, oldLevel, newLevel, actorPersonID, now); err != nil {
			return err
		}
		return s.appendCircleHistory(ctx, tx, before, c, storage.HistoryUpdate, actorPersonID, now, "authority level changed")
	})
	if err != nil {
		return err
	}
	s.emitAudit(ctx, "", "circle.authority_level", auditEntityCircle, circleID, actorPersonID, map[string]string{"authority_level": string(newLevel)})
	return nil
}

// ArchiveCircle archives a circle and sweeps its ownership graph: the
// circle's roles are archived with it and their active assignments are
// ended. The lead role leaves only through this cascade; there is no direct
// lead-archive operation.
func (s *Service) ArchiveCircle(ctx context.Context, circleID, actorPersonID string) error {
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := getCircle(ctx, tx, circleID)
		if err != nil {
			return err
		}
		if c.ParentCircleID == nil {
			return apperrors.WithMetadata(apperrors.CodeCircleRootArchive,
				"the root circle cannot be archived",
				map[string]string{"circle_id": c.ID})
		}
		if circle.IsArchived(c.Status) {
			return apperrors.WithMetadata(apperrors.CodeCircleArchived,
				"circle is already archived",
				map[string]string{"circle_id": c.ID})
		}

		now := s.now()
		before := c
		c.Status = circle.StatusArchived
		c.ArchivedAt = &now
		c.UpdatedAt = now
		c.UpdatedByPersonID = actorPersonID
		if err := tx.PutCircle(ctx, c); err != nil {
			return err
		}

		roles, err := tx.ListRolesByCircle(ctx, c.ID, false)
		if err != nil {
			return err
		}
		for _, r := range roles {
			r.ArchivedAt = &now
			r.UpdatedAt = now
			if err := tx.PutRole(ctx, r); err != nil {
				return err
			}
			assignments, err := tx.ListAssignmentsByRole(ctx, r.ID)
			if err != nil {
				return err
			}
			for _, a := range assignments {
				if a.Status != storage.AssignmentActive {
					continue
				}
				a.Status = storage.AssignmentEnded
				a.EndedAt = &now
				a.UpdatedAt = now
				if err := tx.PutAssignment(ctx, a); err != nil {
					return err
				}
			}
		}

		return s.appendCircleHistory(ctx, tx, before, c, storage.HistoryArchive, actorPersonID, now, "circle archived")
	})
	if err != nil {
		return err
	}
	s.emitAudit(ctx, "", "circle.archive", auditEntityCircle, circleID, actorPersonID, nil)
	return nil
}

// RestoreCircle reverses an archive: the circle returns to active and the
// roles archived by the same cascade come back with it. Ended assignments
// stay ended.
func (s *Service) RestoreCircle(ctx context.Context, circleID, actorPersonID string) error {
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		c, err := getCircle(ctx, tx, circleID)
		if err != nil {
			return err
		}
		if !circle.IsArchived(c.Status) {
			return apperrors.WithMetadata(apperrors.CodeCircleNotArchived,
				"circle is not archived",
				map[string]string{"circle_id": c.ID})
		}

		archivedAt := c.ArchivedAt
		now := s.now()
		before := c
		c.Status = circle.StatusActive
		c.ArchivedAt = nil
		c.UpdatedAt = now
		c.UpdatedByPersonID = actorPersonID

		// The slug may have been claimed while the circle was archived.
		exists, err := tx.SlugExists(ctx, c.WorkspaceID, c.Slug, c.ID)
		if err != nil {
			return err
		}
		if exists {
			slug, err := uniqueSlug(ctx, tx, c.WorkspaceID, c.Name, c.ID)
			if err != nil {
				return err
			}
			c.Slug = slug
		}
		if err := tx.PutCircle(ctx, c); err != nil {
			return err
		}

		roles, err := tx.ListRolesByCircle(ctx, c.ID, true)
		if err != nil {
			return err
		}
		for _, r := range roles {
			if r.ArchivedAt == nil || archivedAt == nil || !r.ArchivedAt.Equal(*archivedAt) {
				continue
			}
			r.ArchivedAt = nil
			r.UpdatedAt = now
			if err := tx.PutRole(ctx, r); err != nil {
				return err
			}
		}

		return s.appendCircleHistory(ctx, tx, before, c, storage.HistoryRestore, actorPersonID, now, "circle restored")
	})
	if err != nil {
		return err
	}
	s.emitAudit(ctx, "", "circle.restore", auditEntityCircle, circleID, actorPersonID, nil)
	return nil
}

// GetCircle returns a circle by ID.
func (s *Service) GetCircle(ctx context.Context, circleID string) (storage.CircleRecord, error) {
	return getCircle(ctx, s.store, circleID)
}

// ListCircles returns a workspace's circles.
func (s *Service) ListCircles(ctx context.Context, workspaceID string, includeArchived bool) ([]storage.CircleRecord, error) {
	return s.store.ListCirclesByWorkspace(ctx, workspaceID, includeArchived)
}

func uniqueSlug(ctx context.Context, tx storage.Store, workspaceID, name, excludeCircleID string) (string, error) {
	var checkErr error
	slug := circle.UniqueSlug(name, func(candidate string) bool {
		if checkErr != nil {
			return false
		}
		exists, err := tx.SlugExists(ctx, workspaceID, candidate, excludeCircleID)
		if err != nil {
			checkErr = err
			return false
		}
		return exists
	})
	if checkErr != nil {
		return "", checkErr
	}
	return slug, nil
}

func (s *Service) appendCircleHistory(ctx context.Context, tx storage.Store, before, after storage.CircleRecord, change storage.HistoryChangeType, actorPersonID string, now time.Time, description string) error {
	var beforeJSON []byte
	if before.ID != "" {
		data, err := circleSnapshot(before)
		if err != nil {
			return err
		}
		beforeJSON = data
	}
	afterJSON, err := circleSnapshot(after)
	if err != nil {
		return err
	}
	return tx.AppendVersionHistory(ctx, storage.VersionHistoryRecord{
		ID:                s.newID(),
		WorkspaceID:       after.WorkspaceID,
		EntityType:        proposal.EntityCircle,
		EntityID:          after.ID,
		ChangeType:        change,
		ChangedByPersonID: actorPersonID,
		ChangedAt:         now,
		Description:       description,
		BeforeJSON:        beforeJSON,
		AfterJSON:         afterJSON,
	})
}

// circleSnapshot captures the audit-relevant fields of a circle.
func circleSnapshot(c storage.CircleRecord) ([]byte, error) {
	snapshot := map[string]any{
		"name":            c.Name,
		"slug":            c.Slug,
		"purpose":         c.Purpose,
		"authority_level": string(c.AuthorityLevel),
		"status":          string(c.Status),
	}
	if c.ParentCircleID != nil {
		snapshot["parent_circle_id"] = *c.ParentCircleID
	}
	return json.Marshal(snapshot)
}

// Audit entity labels. Proposal lifecycle events carry the proposal's own
// target entity type; meeting-scoped events use their own label.
const (
	auditEntityCircle  = string(proposal.EntityCircle)
	auditEntityMeeting = "meeting"
)

func (s *Service) emitAudit(ctx context.Context, workspaceID, action, entityType, entityID, actorPersonID string, metadata map[string]string) {
	if s.emitter == nil {
		return
	}
	if workspaceID == "" && entityType == auditEntityCircle {
		if c, err := s.store.GetCircle(ctx, entityID); err == nil {
			workspaceID = c.WorkspaceID
		}
	}
	_ = s.emitter.Emit(ctx, storage.AuditEventRecord{
		WorkspaceID:   workspaceID,
		Action:        action,
		EntityType:    entityType,
		EntityID:      entityID,
		ActorPersonID: actorPersonID,
		Metadata:      metadata,
	})
}
