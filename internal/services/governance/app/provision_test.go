package app

import (
	"context"
	"testing"

	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/role"
	"github.com/concordhq/concord/internal/services/governance/domain/workspace"
)

func TestProvisionCoreRoles_Idempotent(t *testing.T) {
	svc, store := newServiceForTest(t)
	ctx := context.Background()
	seedWorkspace(t, store, "ws-1", workspace.PhaseDesign)

	root, err := svc.CreateCircle(ctx, CreateCircleRequest{
		WorkspaceID: "ws-1", ActorPersonID: "person-1", Name: "Root",
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}

	before, err := store.ListRolesByCircle(ctx, root.CircleID, false)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}

	if err := svc.ProvisionCoreRoles(ctx, root.CircleID, "person-1"); err != nil {
		t.Fatalf("reprovision: %v", err)
	}

	after, err := store.ListRolesByCircle(ctx, root.CircleID, false)
	if err != nil {
		t.Fatalf("list roles after reprovision: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("roles after reprovision = %d, want %d", len(after), len(before))
	}
}

func TestUpdateCircleAuthorityLevel_PatchesLeadInPlace(t *testing.T) {
	svc, store := newServiceForTest(t)
	ctx := context.Background()
	seedWorkspace(t, store, "ws-1", workspace.PhaseDesign)

	root, err := svc.CreateCircle(ctx, CreateCircleRequest{
		WorkspaceID: "ws-1", ActorPersonID: "person-1", Name: "Root",
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}

	oldLead := leadRole(t, store, root.CircleID)
	seedAssignment(t, store, "asg-lead", "ws-1", root.CircleID, oldLead.ID, "person-2")

	if err := svc.UpdateCircleAuthorityLevel(ctx, root.CircleID, "person-1", authority.LevelFacilitates); err != nil {
		t.Fatalf("change level: %v", err)
	}

	newLead := leadRole(t, store, root.CircleID)
	if newLead.ID != oldLead.ID {
		t.Fatalf("lead role ID changed: %s -> %s", oldLead.ID, newLead.ID)
	}
	if newLead.Name != "Team Lead" {
		t.Fatalf("lead name = %q, want Team Lead", newLead.Name)
	}

	// The assignment survives because the role identity does.
	asg, err := store.GetAssignment(ctx, "asg-lead")
	if err != nil {
		t.Fatalf("get assignment: %v", err)
	}
	if asg.RoleID != newLead.ID {
		t.Fatalf("assignment role = %s, want %s", asg.RoleID, newLead.ID)
	}

	// Facilitates mandates a Facilitator role on top.
	roles, err := store.ListRolesByCircle(ctx, root.CircleID, false)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	hasFacilitator := false
	for _, r := range roles {
		if r.Name == "Facilitator" && r.RoleKind == role.KindStructural {
			hasFacilitator = true
		}
	}
	if !hasFacilitator {
		t.Fatal("facilitator role not provisioned for facilitates level")
	}
}

func TestUpdateCircleAuthorityLevel_SameLevelKeepsLeadUntouched(t *testing.T) {
	svc, store := newServiceForTest(t)
	ctx := context.Background()
	seedWorkspace(t, store, "ws-1", workspace.PhaseDesign)

	root, err := svc.CreateCircle(ctx, CreateCircleRequest{
		WorkspaceID: "ws-1", ActorPersonID: "person-1", Name: "Root",
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}

	oldLead := leadRole(t, store, root.CircleID)

	if err := svc.UpdateCircleAuthorityLevel(ctx, root.CircleID, "person-1", authority.LevelDecides); err != nil {
		t.Fatalf("same-level change: %v", err)
	}

	newLead := leadRole(t, store, root.CircleID)
	if newLead.ID != oldLead.ID || newLead.Name != oldLead.Name || newLead.TemplateID != oldLead.TemplateID {
		t.Fatalf("lead mutated by same-level change: %+v -> %+v", oldLead, newLead)
	}
}

func TestUpdateCircleAuthorityLevel_AddsNeverRemovesStructuralRoles(t *testing.T) {
	svc, store := newServiceForTest(t)
	ctx := context.Background()
	seedWorkspace(t, store, "ws-1", workspace.PhaseDesign)

	root, err := svc.CreateCircle(ctx, CreateCircleRequest{
		WorkspaceID:    "ws-1",
		ActorPersonID:  "person-1",
		Name:           "Root",
		AuthorityLevel: authority.LevelFacilitates,
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}

	before, err := store.ListRolesByCircle(ctx, root.CircleID, false)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}

	// Convenes mandates only the Steward; existing structural roles stay.
	if err := svc.UpdateCircleAuthorityLevel(ctx, root.CircleID, "person-1", authority.LevelConvenes); err != nil {
		t.Fatalf("change level: %v", err)
	}

	after, err := store.ListRolesByCircle(ctx, root.CircleID, false)
	if err != nil {
		t.Fatalf("list roles after change: %v", err)
	}
	if len(after) < len(before) {
		t.Fatalf("roles removed by level change: %d -> %d", len(before), len(after))
	}
	lead := leadRole(t, store, root.CircleID)
	if lead.Name != "Steward" {
		t.Fatalf("lead name = %q, want Steward", lead.Name)
	}
}
