package app

import (
	"context"

	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/role"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

// loadAssignments resolves a circle's active assignments into calculator
// inputs. Role type tagging comes from the stored role kind; archived roles
// contribute nothing.
func loadAssignments(ctx context.Context, store storage.Store, circleID string) ([]authority.Assignment, error) {
	records, err := store.ListActiveAssignmentsByCircle(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	roles, err := store.ListRolesByCircle(ctx, circleID, false)
	if err != nil {
		return nil, err
	}
	roleByID := make(map[string]storage.RoleRecord, len(roles))
	for _, r := range roles {
		roleByID[r.ID] = r
	}

	assignments := make([]authority.Assignment, 0, len(records))
	for _, rec := range records {
		r, ok := roleByID[rec.RoleID]
		if !ok {
			// Assignment points at an archived or deleted role.
			continue
		}
		assignments = append(assignments, authority.Assignment{
			PersonID: rec.PersonID,
			CircleID: rec.CircleID,
			RoleID:   rec.RoleID,
			RoleName: r.Name,
			RoleType: role.RoleType(r.RoleKind),
		})
	}
	return assignments, nil
}

// circleAuthority computes a person's authority inside a circle from
// persisted state.
func circleAuthority(ctx context.Context, store storage.Store, personID string, c storage.CircleRecord) (authority.Authority, error) {
	assignments, err := loadAssignments(ctx, store, c.ID)
	if err != nil {
		return authority.Authority{}, err
	}
	return authority.Calculate(authority.Context{
		PersonID:    personID,
		CircleID:    c.ID,
		Level:       c.AuthorityLevel,
		Assignments: assignments,
	}), nil
}

// CalculateAuthority reports the capability set of a person in a circle.
func (s *Service) CalculateAuthority(ctx context.Context, personID, circleID string) (authority.Authority, error) {
	c, err := getCircle(ctx, s.store, circleID)
	if err != nil {
		return authority.Authority{}, err
	}
	return circleAuthority(ctx, s.store, personID, c)
}
