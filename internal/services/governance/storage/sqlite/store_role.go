package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/concordhq/concord/internal/services/governance/domain/role"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

const roleColumns = `id, circle_id, workspace_id, name, purpose, decision_rights,
	role_kind, template_id, is_hiring, created_at, updated_at, archived_at`

// PutRole inserts or replaces a role record.
func (s *Store) PutRole(ctx context.Context, r storage.RoleRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("role id is required")
	}

	rights, err := encodeStrings(r.DecisionRights)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO roles (`+roleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			purpose = excluded.purpose,
			decision_rights = excluded.decision_rights,
			role_kind = excluded.role_kind,
			template_id = excluded.template_id,
			is_hiring = excluded.is_hiring,
			updated_at = excluded.updated_at,
			archived_at = excluded.archived_at`,
		r.ID, r.CircleID, r.WorkspaceID, r.Name, r.Purpose, rights,
		string(r.RoleKind), r.TemplateID, boolToInt(r.IsHiring),
		toMillis(r.CreatedAt), toMillis(r.UpdatedAt), toNullMillis(r.ArchivedAt))
	if err != nil {
		return fmt.Errorf("put role: %w", err)
	}
	return nil
}

// GetRole retrieves a role by ID.
func (s *Store) GetRole(ctx context.Context, id string) (storage.RoleRecord, error) {
	if err := s.ready(); err != nil {
		return storage.RoleRecord{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE id = ?`, id)
	r, err := scanRole(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.RoleRecord{}, storage.ErrNotFound
		}
		return storage.RoleRecord{}, fmt.Errorf("get role: %w", err)
	}
	return r, nil
}

// ListRolesByCircle returns roles ordered by creation time.
func (s *Store) ListRolesByCircle(ctx context.Context, circleID string, includeArchived bool) ([]storage.RoleRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := `SELECT ` + roleColumns + ` FROM roles WHERE circle_id = ?`
	if !includeArchived {
		query += ` AND archived_at IS NULL`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, circleID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []storage.RoleRecord
	for rows.Next() {
		r, err := scanRole(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read roles: %w", err)
	}
	return roles, nil
}

func scanRole(scan func(...any) error) (storage.RoleRecord, error) {
	var r storage.RoleRecord
	var rights, kind string
	var isHiring int
	var createdAt, updatedAt int64
	var archivedAt sql.NullInt64

	err := scan(&r.ID, &r.CircleID, &r.WorkspaceID, &r.Name, &r.Purpose, &rights,
		&kind, &r.TemplateID, &isHiring, &createdAt, &updatedAt, &archivedAt)
	if err != nil {
		return storage.RoleRecord{}, err
	}

	decoded, err := decodeStrings(rights)
	if err != nil {
		return storage.RoleRecord{}, err
	}
	r.DecisionRights = decoded
	r.RoleKind = role.Kind(kind)
	r.IsHiring = isHiring != 0
	r.CreatedAt = fromMillis(createdAt)
	r.UpdatedAt = fromMillis(updatedAt)
	r.ArchivedAt = fromNullMillis(archivedAt)
	return r, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
