package audit

import (
	"context"
	"testing"
	"time"

	"github.com/concordhq/concord/internal/services/governance/storage"
)

type captureStore struct {
	events []storage.AuditEventRecord
}

func (c *captureStore) AppendAuditEvent(_ context.Context, e storage.AuditEventRecord) error {
	c.events = append(c.events, e)
	return nil
}

func (c *captureStore) ListAuditEvents(context.Context, string, int) ([]storage.AuditEventRecord, error) {
	return c.events, nil
}

func TestEmitFillsDefaults(t *testing.T) {
	store := &captureStore{}
	emitter := NewEmitter(store)
	fixed := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	emitter.clock = func() time.Time { return fixed }

	err := emitter.Emit(context.Background(), storage.AuditEventRecord{
		WorkspaceID: "ws-1",
		Action:      "circle.create",
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(store.events) != 1 {
		t.Fatalf("events = %d, want 1", len(store.events))
	}
	evt := store.events[0]
	if evt.ID == "" {
		t.Error("expected generated event id")
	}
	if !evt.CreatedAt.Equal(fixed) {
		t.Errorf("created at = %v, want %v", evt.CreatedAt, fixed)
	}
}

func TestEmitNilSafe(t *testing.T) {
	var emitter *Emitter
	if err := emitter.Emit(context.Background(), storage.AuditEventRecord{}); err != nil {
		t.Errorf("nil emitter should be a no-op: %v", err)
	}
	if err := NewEmitter(nil).Emit(context.Background(), storage.AuditEventRecord{}); err != nil {
		t.Errorf("nil store should be a no-op: %v", err)
	}
}
