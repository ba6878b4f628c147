package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/concordhq/concord/internal/services/governance/storage"
)

// AppendAuditEvent persists one operational audit event.
func (s *Store) AppendAuditEvent(ctx context.Context, e storage.AuditEventRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("audit event id is required")
	}

	metadata, err := encodeStringMap(e.Metadata)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_events
			(id, workspace_id, action, entity_type, entity_id, actor_person_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.WorkspaceID, e.Action, e.EntityType, e.EntityID,
		e.ActorPersonID, metadata, toMillis(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListAuditEvents returns the most recent audit events for a workspace.
func (s *Store) ListAuditEvents(ctx context.Context, workspaceID string, limit int) ([]storage.AuditEventRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, workspace_id, action, entity_type, entity_id, actor_person_id, metadata, created_at
		FROM audit_events
		WHERE workspace_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?`, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []storage.AuditEventRecord
	for rows.Next() {
		var e storage.AuditEventRecord
		var metadata string
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.WorkspaceID, &e.Action, &e.EntityType,
			&e.EntityID, &e.ActorPersonID, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		decoded, err := decodeStringMap(metadata)
		if err != nil {
			return nil, err
		}
		e.Metadata = decoded
		e.CreatedAt = fromMillis(createdAt)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read audit events: %w", err)
	}
	return events, nil
}
