package app

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/role"
	"github.com/concordhq/concord/internal/services/governance/domain/workspace"
	"github.com/concordhq/concord/internal/services/governance/observability/audit"
	"github.com/concordhq/concord/internal/services/governance/storage"
	"github.com/concordhq/concord/internal/services/governance/storage/sqlite"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// newServiceForTest wires a service against a real sqlite store with a
// deterministic clock, sequential IDs and an audit emitter, and seeds the
// system templates all three authority levels need.
func newServiceForTest(t *testing.T) (*Service, storage.Store) {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "governance.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	seq := 0
	svc := New(store,
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%04d", seq)
		}),
		WithAuditEmitter(audit.NewEmitter(store)),
	)

	seedSystemTemplates(t, store)
	return svc, store
}

func seedSystemTemplates(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()

	type tmpl struct {
		name  string
		kind  role.Kind
		level authority.Level
	}
	templates := []tmpl{
		{"Circle Lead", role.KindCircleLead, authority.LevelDecides},
		{"Secretary", role.KindStructural, authority.LevelDecides},
		{"Team Lead", role.KindCircleLead, authority.LevelFacilitates},
		{"Facilitator", role.KindStructural, authority.LevelFacilitates},
		{"Secretary", role.KindStructural, authority.LevelFacilitates},
		{"Steward", role.KindCircleLead, authority.LevelConvenes},
	}
	for i, tm := range templates {
		rec := storage.TemplateRecord{
			ID:                    fmt.Sprintf("tmpl-%s-%d", tm.level, i),
			Name:                  tm.name,
			RoleKind:              tm.kind,
			AuthorityLevel:        tm.level,
			DefaultPurpose:        tm.name + " duties",
			DefaultDecisionRights: []string{"Decide on " + tm.name + " matters"},
			IsCore:                true,
			CreatedAt:             testNow,
			UpdatedAt:             testNow,
		}
		if err := store.PutTemplate(ctx, rec); err != nil {
			t.Fatalf("seed template %s/%s: %v", tm.level, tm.name, err)
		}
	}
}

func seedWorkspace(t *testing.T, store storage.Store, id string, phase workspace.Phase) {
	t.Helper()
	err := store.PutWorkspace(context.Background(), storage.WorkspaceRecord{
		ID:        id,
		Name:      "Test Workspace",
		Phase:     phase,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	})
	if err != nil {
		t.Fatalf("seed workspace: %v", err)
	}
}

func seedMeeting(t *testing.T, store storage.Store, id, workspaceID, circleID, recorderPersonID string) {
	t.Helper()
	err := store.PutMeeting(context.Background(), storage.MeetingRecord{
		ID:               id,
		WorkspaceID:      workspaceID,
		CircleID:         circleID,
		RecorderPersonID: recorderPersonID,
		Status:           "in_progress",
		CreatedAt:        testNow,
		UpdatedAt:        testNow,
	})
	if err != nil {
		t.Fatalf("seed meeting: %v", err)
	}
}

func seedAssignment(t *testing.T, store storage.Store, id, workspaceID, circleID, roleID, personID string) {
	t.Helper()
	err := store.PutAssignment(context.Background(), storage.AssignmentRecord{
		ID:          id,
		RoleID:      roleID,
		CircleID:    circleID,
		WorkspaceID: workspaceID,
		PersonID:    personID,
		Status:      storage.AssignmentActive,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	})
	if err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
}

// leadRole finds a circle's lead role.
func leadRole(t *testing.T, store storage.Store, circleID string) storage.RoleRecord {
	t.Helper()
	roles, err := store.ListRolesByCircle(context.Background(), circleID, false)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	for _, r := range roles {
		if r.RoleKind == role.KindCircleLead {
			return r
		}
	}
	t.Fatalf("circle %s has no lead role", circleID)
	return storage.RoleRecord{}
}

func strPtr(s string) *string { return &s }
