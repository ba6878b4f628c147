package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/concordhq/concord/internal/services/governance/storage"
)

const assignmentColumns = `id, role_id, circle_id, workspace_id, person_id,
	status, created_at, updated_at, ended_at`

// PutAssignment inserts or replaces an assignment record.
func (s *Store) PutAssignment(ctx context.Context, a storage.AssignmentRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("assignment id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assignments (`+assignmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at,
			ended_at = excluded.ended_at`,
		a.ID, a.RoleID, a.CircleID, a.WorkspaceID, a.PersonID,
		string(a.Status), toMillis(a.CreatedAt), toMillis(a.UpdatedAt),
		toNullMillis(a.EndedAt))
	if err != nil {
		return fmt.Errorf("put assignment: %w", err)
	}
	return nil
}

// GetAssignment retrieves an assignment by ID.
func (s *Store) GetAssignment(ctx context.Context, id string) (storage.AssignmentRecord, error) {
	if err := s.ready(); err != nil {
		return storage.AssignmentRecord{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id)
	a, err := scanAssignment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.AssignmentRecord{}, storage.ErrNotFound
		}
		return storage.AssignmentRecord{}, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

// ListActiveAssignmentsByCircle returns active assignments for a circle.
func (s *Store) ListActiveAssignmentsByCircle(ctx context.Context, circleID string) ([]storage.AssignmentRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+assignmentColumns+` FROM assignments
		WHERE circle_id = ? AND status = ?
		ORDER BY created_at, id`,
		circleID, string(storage.AssignmentActive))
	if err != nil {
		return nil, fmt.Errorf("list active assignments: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

// ListAssignmentsByRole returns all assignments for a role.
func (s *Store) ListAssignmentsByRole(ctx context.Context, roleID string) ([]storage.AssignmentRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+assignmentColumns+` FROM assignments
		WHERE role_id = ?
		ORDER BY created_at, id`, roleID)
	if err != nil {
		return nil, fmt.Errorf("list assignments by role: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

func collectAssignments(rows *sql.Rows) ([]storage.AssignmentRecord, error) {
	var assignments []storage.AssignmentRecord
	for rows.Next() {
		a, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read assignments: %w", err)
	}
	return assignments, nil
}

func scanAssignment(scan func(...any) error) (storage.AssignmentRecord, error) {
	var a storage.AssignmentRecord
	var status string
	var createdAt, updatedAt int64
	var endedAt sql.NullInt64

	err := scan(&a.ID, &a.RoleID, &a.CircleID, &a.WorkspaceID, &a.PersonID,
		&status, &createdAt, &updatedAt, &endedAt)
	if err != nil {
		return storage.AssignmentRecord{}, err
	}

	a.Status = storage.AssignmentStatus(status)
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	a.EndedAt = fromNullMillis(endedAt)
	return a, nil
}
