package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/concordhq/concord/internal/services/governance/storage"
)

// PutMeeting inserts or replaces a meeting fact from the scheduling
// collaborator.
func (s *Store) PutMeeting(ctx context.Context, m storage.MeetingRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("meeting id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meetings
			(id, workspace_id, circle_id, recorder_person_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			recorder_person_id = excluded.recorder_person_id,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		m.ID, m.WorkspaceID, m.CircleID, m.RecorderPersonID, m.Status,
		toMillis(m.CreatedAt), toMillis(m.UpdatedAt))
	if err != nil {
		return fmt.Errorf("put meeting: %w", err)
	}
	return nil
}

// GetMeeting retrieves a meeting by ID.
func (s *Store) GetMeeting(ctx context.Context, id string) (storage.MeetingRecord, error) {
	if err := s.ready(); err != nil {
		return storage.MeetingRecord{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, circle_id, recorder_person_id, status, created_at, updated_at
		FROM meetings WHERE id = ?`, id)

	var m storage.MeetingRecord
	var createdAt, updatedAt int64
	err := row.Scan(&m.ID, &m.WorkspaceID, &m.CircleID, &m.RecorderPersonID,
		&m.Status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.MeetingRecord{}, storage.ErrNotFound
		}
		return storage.MeetingRecord{}, fmt.Errorf("get meeting: %w", err)
	}
	m.CreatedAt = fromMillis(createdAt)
	m.UpdatedAt = fromMillis(updatedAt)
	return m, nil
}
