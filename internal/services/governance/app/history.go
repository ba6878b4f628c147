package app

import (
	"context"

	"github.com/concordhq/concord/internal/services/governance/storage"
)

// ListVersionHistory returns a workspace's governance history, newest first.
// The filter accepts AIP-160 expressions over entity_type, entity_id,
// change_type, changed_by and changed_at; pageToken must come from a prior
// call with the same filter.
func (s *Service) ListVersionHistory(ctx context.Context, workspaceID, filter string, pageSize int, pageToken string) (storage.VersionHistoryPage, error) {
	if _, err := getWorkspace(ctx, s.store, workspaceID); err != nil {
		return storage.VersionHistoryPage{}, err
	}
	return s.store.ListVersionHistory(ctx, workspaceID, filter, pageSize, pageToken)
}

// GetVersionHistory returns one history entry.
func (s *Service) GetVersionHistory(ctx context.Context, entryID string) (storage.VersionHistoryRecord, error) {
	return s.store.GetVersionHistory(ctx, entryID)
}
