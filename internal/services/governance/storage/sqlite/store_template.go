package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/role"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

const templateColumns = `id, workspace_id, name, role_kind, authority_level,
	default_purpose, default_decision_rights, is_core, created_at, updated_at, archived_at`

// PutTemplate inserts or replaces a role template.
func (s *Store) PutTemplate(ctx context.Context, t storage.TemplateRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("template id is required")
	}

	rights, err := encodeStrings(t.DefaultDecisionRights)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO role_templates (`+templateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role_kind = excluded.role_kind,
			authority_level = excluded.authority_level,
			default_purpose = excluded.default_purpose,
			default_decision_rights = excluded.default_decision_rights,
			is_core = excluded.is_core,
			updated_at = excluded.updated_at,
			archived_at = excluded.archived_at`,
		t.ID, t.WorkspaceID, t.Name, string(t.RoleKind), string(t.AuthorityLevel),
		t.DefaultPurpose, rights, boolToInt(t.IsCore),
		toMillis(t.CreatedAt), toMillis(t.UpdatedAt), toNullMillis(t.ArchivedAt))
	if err != nil {
		return fmt.Errorf("put template: %w", err)
	}
	return nil
}

// GetTemplate retrieves a template by ID.
func (s *Store) GetTemplate(ctx context.Context, id string) (storage.TemplateRecord, error) {
	if err := s.ready(); err != nil {
		return storage.TemplateRecord{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM role_templates WHERE id = ?`, id)
	t, err := scanTemplate(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.TemplateRecord{}, storage.ErrNotFound
		}
		return storage.TemplateRecord{}, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

// ListTemplatesForLevel returns the non-archived system templates for a
// level plus the workspace-scoped ones. Lead templates sort first so
// provisioning can patch or create the lead role before structural roles.
func (s *Store) ListTemplatesForLevel(ctx context.Context, workspaceID string, level authority.Level) ([]storage.TemplateRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+templateColumns+` FROM role_templates
		WHERE authority_level = ? AND archived_at IS NULL
			AND (workspace_id = '' OR workspace_id = ?)
		ORDER BY CASE role_kind WHEN ? THEN 0 ELSE 1 END, created_at, id`,
		string(level), workspaceID, string(role.KindCircleLead))
	if err != nil {
		return nil, fmt.Errorf("list templates for level: %w", err)
	}
	defer rows.Close()

	return collectTemplates(rows)
}

// ListSystemTemplates returns every non-archived system template.
func (s *Store) ListSystemTemplates(ctx context.Context) ([]storage.TemplateRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+templateColumns+` FROM role_templates
		WHERE workspace_id = '' AND archived_at IS NULL
		ORDER BY authority_level, role_kind, name, id`)
	if err != nil {
		return nil, fmt.Errorf("list system templates: %w", err)
	}
	defer rows.Close()

	return collectTemplates(rows)
}

func collectTemplates(rows *sql.Rows) ([]storage.TemplateRecord, error) {
	var templates []storage.TemplateRecord
	for rows.Next() {
		t, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return templates, nil
}

func scanTemplate(scan func(...any) error) (storage.TemplateRecord, error) {
	var t storage.TemplateRecord
	var kind, level, rights string
	var isCore int
	var createdAt, updatedAt int64
	var archivedAt sql.NullInt64

	err := scan(&t.ID, &t.WorkspaceID, &t.Name, &kind, &level,
		&t.DefaultPurpose, &rights, &isCore, &createdAt, &updatedAt, &archivedAt)
	if err != nil {
		return storage.TemplateRecord{}, err
	}

	decoded, err := decodeStrings(rights)
	if err != nil {
		return storage.TemplateRecord{}, err
	}
	t.RoleKind = role.Kind(kind)
	t.AuthorityLevel = authority.Level(level)
	t.DefaultDecisionRights = decoded
	t.IsCore = isCore != 0
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updatedAt)
	t.ArchivedAt = fromNullMillis(archivedAt)
	return t, nil
}
