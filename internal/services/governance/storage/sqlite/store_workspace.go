package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/concordhq/concord/internal/services/governance/domain/workspace"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

// PutWorkspace inserts or replaces a workspace record.
func (s *Store) PutWorkspace(ctx context.Context, w storage.WorkspaceRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(w.ID) == "" {
		return fmt.Errorf("workspace id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workspaces (id, name, phase, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			phase = excluded.phase,
			updated_at = excluded.updated_at`,
		w.ID, w.Name, string(w.Phase), toMillis(w.CreatedAt), toMillis(w.UpdatedAt))
	if err != nil {
		return fmt.Errorf("put workspace: %w", err)
	}
	return nil
}

// GetWorkspace retrieves a workspace by ID.
func (s *Store) GetWorkspace(ctx context.Context, id string) (storage.WorkspaceRecord, error) {
	if err := s.ready(); err != nil {
		return storage.WorkspaceRecord{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, phase, created_at, updated_at
		FROM workspaces WHERE id = ?`, id)

	var w storage.WorkspaceRecord
	var phase string
	var createdAt, updatedAt int64
	if err := row.Scan(&w.ID, &w.Name, &phase, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.WorkspaceRecord{}, storage.ErrNotFound
		}
		return storage.WorkspaceRecord{}, fmt.Errorf("get workspace: %w", err)
	}
	w.Phase = workspace.Phase(phase)
	w.CreatedAt = fromMillis(createdAt)
	w.UpdatedAt = fromMillis(updatedAt)
	return w, nil
}
