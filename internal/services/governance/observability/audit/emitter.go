// Package audit records operational audit events for governance operations.
// These are observability records, separate from the domain version history.
package audit

import (
	"context"
	"time"

	"github.com/concordhq/concord/internal/id"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

// Emitter records operational audit events.
type Emitter struct {
	store storage.AuditEventStore
	clock func() time.Time
}

// NewEmitter creates a new audit event emitter.
func NewEmitter(store storage.AuditEventStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records an audit event. It is a no-op when the emitter or its store
// is nil, so callers never guard the call site.
func (e *Emitter) Emit(ctx context.Context, evt storage.AuditEventRecord) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.ID == "" {
		evt.ID = id.MustNewID()
	}
	if evt.CreatedAt.IsZero() {
		if e.clock == nil {
			evt.CreatedAt = time.Now().UTC()
		} else {
			evt.CreatedAt = e.clock().UTC()
		}
	}
	return e.store.AppendAuditEvent(ctx, evt)
}
