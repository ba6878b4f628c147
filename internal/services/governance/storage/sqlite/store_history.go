package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/concordhq/concord/internal/services/governance/domain/proposal"
	"github.com/concordhq/concord/internal/services/governance/storage"
	"github.com/concordhq/concord/internal/services/governance/storage/cursor"
	"github.com/concordhq/concord/internal/services/governance/storage/filter"
)

const historyColumns = `id, workspace_id, entity_type, entity_id, change_type,
	changed_by_person_id, changed_at, description, before_json, after_json`

const defaultHistoryPageSize = 50
const maxHistoryPageSize = 500

// AppendVersionHistory inserts an immutable history entry. A duplicate ID is
// an error; entries are never updated.
func (s *Store) AppendVersionHistory(ctx context.Context, entry storage.VersionHistoryRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("history entry id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO version_history (`+historyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.WorkspaceID, string(entry.EntityType), entry.EntityID,
		string(entry.ChangeType), entry.ChangedByPersonID, toMillis(entry.ChangedAt),
		entry.Description, string(entry.BeforeJSON), string(entry.AfterJSON))
	if err != nil {
		return fmt.Errorf("append version history: %w", err)
	}
	return nil
}

// GetVersionHistory retrieves a history entry by ID.
func (s *Store) GetVersionHistory(ctx context.Context, id string) (storage.VersionHistoryRecord, error) {
	if err := s.ready(); err != nil {
		return storage.VersionHistoryRecord{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+historyColumns+` FROM version_history WHERE id = ?`, id)
	entry, err := scanHistory(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.VersionHistoryRecord{}, storage.ErrNotFound
		}
		return storage.VersionHistoryRecord{}, fmt.Errorf("get version history: %w", err)
	}
	return entry, nil
}

// ListVersionHistory returns a filtered page of history entries ordered by
// changed_at descending with the entry ID breaking ties.
func (s *Store) ListVersionHistory(ctx context.Context, workspaceID, filterStr string, pageSize int, pageToken string) (storage.VersionHistoryPage, error) {
	if err := s.ready(); err != nil {
		return storage.VersionHistoryPage{}, err
	}

	if pageSize <= 0 {
		pageSize = defaultHistoryPageSize
	}
	if pageSize > maxHistoryPageSize {
		pageSize = maxHistoryPageSize
	}

	cond, err := filter.ParseHistoryFilter(filterStr)
	if err != nil {
		return storage.VersionHistoryPage{}, fmt.Errorf("history filter: %w", err)
	}

	query := `SELECT ` + historyColumns + ` FROM version_history WHERE workspace_id = ?`
	args := []any{workspaceID}
	if cond.Clause != "" {
		query += ` AND ` + cond.Clause
		args = append(args, cond.Params...)
	}

	if pageToken != "" {
		c, err := cursor.Decode(pageToken)
		if err != nil {
			return storage.VersionHistoryPage{}, fmt.Errorf("page token: %w", err)
		}
		if err := cursor.ValidateFilterHash(c, filterStr); err != nil {
			return storage.VersionHistoryPage{}, fmt.Errorf("page token: %w", err)
		}
		query += ` AND (changed_at < ? OR (changed_at = ? AND id > ?))`
		args = append(args, c.ChangedAtMillis, c.ChangedAtMillis, c.LastID)
	}

	query += ` ORDER BY changed_at DESC, id LIMIT ?`
	args = append(args, pageSize+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return storage.VersionHistoryPage{}, fmt.Errorf("list version history: %w", err)
	}
	defer rows.Close()

	var entries []storage.VersionHistoryRecord
	for rows.Next() {
		entry, err := scanHistory(rows.Scan)
		if err != nil {
			return storage.VersionHistoryPage{}, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return storage.VersionHistoryPage{}, fmt.Errorf("read history entries: %w", err)
	}

	page := storage.VersionHistoryPage{Entries: entries}
	if len(entries) > pageSize {
		page.Entries = entries[:pageSize]
		last := page.Entries[pageSize-1]
		token, err := cursor.Encode(cursor.Cursor{
			ChangedAtMillis: toMillis(last.ChangedAt),
			LastID:          last.ID,
			FilterHash:      cursor.HashFilter(filterStr),
		})
		if err != nil {
			return storage.VersionHistoryPage{}, fmt.Errorf("encode page token: %w", err)
		}
		page.NextPageToken = token
	}
	return page, nil
}

func scanHistory(scan func(...any) error) (storage.VersionHistoryRecord, error) {
	var entry storage.VersionHistoryRecord
	var entityType, changeType, beforeJSON, afterJSON string
	var changedAt int64

	err := scan(&entry.ID, &entry.WorkspaceID, &entityType, &entry.EntityID,
		&changeType, &entry.ChangedByPersonID, &changedAt,
		&entry.Description, &beforeJSON, &afterJSON)
	if err != nil {
		return storage.VersionHistoryRecord{}, err
	}

	entry.EntityType = proposal.EntityType(entityType)
	entry.ChangeType = storage.HistoryChangeType(changeType)
	entry.ChangedAt = fromMillis(changedAt)
	if beforeJSON != "" {
		entry.BeforeJSON = []byte(beforeJSON)
	}
	if afterJSON != "" {
		entry.AfterJSON = []byte(afterJSON)
	}
	return entry, nil
}
