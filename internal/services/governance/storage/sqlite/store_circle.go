package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/circle"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

const circleColumns = `id, workspace_id, name, slug, purpose, parent_circle_id,
	authority_level, status, updated_by_person_id, created_at, updated_at, archived_at`

// PutCircle inserts or replaces a circle record.
func (s *Store) PutCircle(ctx context.Context, c storage.CircleRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("circle id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO circles (`+circleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			slug = excluded.slug,
			purpose = excluded.purpose,
			parent_circle_id = excluded.parent_circle_id,
			authority_level = excluded.authority_level,
			status = excluded.status,
			updated_by_person_id = excluded.updated_by_person_id,
			updated_at = excluded.updated_at,
			archived_at = excluded.archived_at`,
		c.ID, c.WorkspaceID, c.Name, c.Slug, c.Purpose, toNullString(c.ParentCircleID),
		string(c.AuthorityLevel), string(c.Status), c.UpdatedByPersonID,
		toMillis(c.CreatedAt), toMillis(c.UpdatedAt), toNullMillis(c.ArchivedAt))
	if err != nil {
		return fmt.Errorf("put circle: %w", err)
	}
	return nil
}

// GetCircle retrieves a circle by ID.
func (s *Store) GetCircle(ctx context.Context, id string) (storage.CircleRecord, error) {
	if err := s.ready(); err != nil {
		return storage.CircleRecord{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+circleColumns+` FROM circles WHERE id = ?`, id)
	c, err := scanCircle(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.CircleRecord{}, storage.ErrNotFound
		}
		return storage.CircleRecord{}, fmt.Errorf("get circle: %w", err)
	}
	return c, nil
}

// ListCirclesByWorkspace returns circles ordered by creation time.
func (s *Store) ListCirclesByWorkspace(ctx context.Context, workspaceID string, includeArchived bool) ([]storage.CircleRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := `SELECT ` + circleColumns + ` FROM circles WHERE workspace_id = ?`
	if !includeArchived {
		query += ` AND archived_at IS NULL`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list circles: %w", err)
	}
	defer rows.Close()

	var circles []storage.CircleRecord
	for rows.Next() {
		c, err := scanCircle(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan circle: %w", err)
		}
		circles = append(circles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read circles: %w", err)
	}
	return circles, nil
}

// ListRootCircles returns the non-archived circles without a parent.
func (s *Store) ListRootCircles(ctx context.Context, workspaceID string) ([]storage.CircleRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+circleColumns+` FROM circles
		WHERE workspace_id = ? AND parent_circle_id IS NULL AND archived_at IS NULL
		ORDER BY created_at, id`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list root circles: %w", err)
	}
	defer rows.Close()

	var circles []storage.CircleRecord
	for rows.Next() {
		c, err := scanCircle(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan root circle: %w", err)
		}
		circles = append(circles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read root circles: %w", err)
	}
	return circles, nil
}

// SlugExists reports whether a non-archived circle other than
// excludeCircleID already uses slug.
func (s *Store) SlugExists(ctx context.Context, workspaceID, slug, excludeCircleID string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM circles
		WHERE workspace_id = ? AND slug = ? AND id <> ? AND archived_at IS NULL`,
		workspaceID, slug, excludeCircleID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

func scanCircle(scan func(...any) error) (storage.CircleRecord, error) {
	var c storage.CircleRecord
	var parentID sql.NullString
	var level, status string
	var createdAt, updatedAt int64
	var archivedAt sql.NullInt64

	err := scan(&c.ID, &c.WorkspaceID, &c.Name, &c.Slug, &c.Purpose, &parentID,
		&level, &status, &c.UpdatedByPersonID, &createdAt, &updatedAt, &archivedAt)
	if err != nil {
		return storage.CircleRecord{}, err
	}

	c.ParentCircleID = fromNullString(parentID)
	c.AuthorityLevel = authority.Level(level)
	c.Status = circle.Status(status)
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	c.ArchivedAt = fromNullMillis(archivedAt)
	return c, nil
}
