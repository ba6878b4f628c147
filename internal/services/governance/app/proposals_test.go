package app

import (
	"context"
	"testing"

	apperrors "github.com/concordhq/concord/internal/platform/errors"
	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/proposal"
	"github.com/concordhq/concord/internal/services/governance/domain/workspace"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

// proposalFixture is a workspace with a root circle, a meeting on it, and the
// recorder assigned to the circle's lead role.
type proposalFixture struct {
	svc      *Service
	store    storage.Store
	circleID string
	recorder string
	creator  string
}

func newProposalFixture(t *testing.T) proposalFixture {
	t.Helper()
	svc, store := newServiceForTest(t)
	ctx := context.Background()
	seedWorkspace(t, store, "ws-1", workspace.PhaseActive)

	root, err := svc.CreateCircle(ctx, CreateCircleRequest{
		WorkspaceID:   "ws-1",
		ActorPersonID: "founder",
		Name:          "Root",
		Purpose:       "Run the company",
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}

	lead := leadRole(t, store, root.CircleID)
	seedAssignment(t, store, "asg-recorder", "ws-1", root.CircleID, lead.ID, "recorder")
	seedMeeting(t, store, "meeting-1", "ws-1", root.CircleID, "recorder")

	return proposalFixture{
		svc:      svc,
		store:    store,
		circleID: root.CircleID,
		recorder: "recorder",
		creator:  "creator",
	}
}

func (f proposalFixture) draftRenameProposal(t *testing.T) storage.ProposalRecord {
	t.Helper()
	ctx := context.Background()
	p, err := f.svc.CreateProposal(ctx, CreateProposalRequest{
		WorkspaceID:   "ws-1",
		ActorPersonID: f.creator,
		EntityType:    proposal.EntityCircle,
		EntityID:      f.circleID,
		Title:         "Rename root circle",
	})
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	if _, err := f.svc.AddEvolution(ctx, p.ID, f.creator, proposal.Evolution{
		FieldPath:   "name",
		FieldLabel:  "Name",
		BeforeValue: "Root",
		AfterValue:  "Product Development",
		ChangeType:  proposal.ChangeUpdate,
	}); err != nil {
		t.Fatalf("add evolution: %v", err)
	}
	return p
}

func TestProposalLifecycle_ApproveAppliesDiff(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p := f.draftRenameProposal(t)

	if _, err := f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.svc.ImportToMeeting(ctx, "meeting-1", f.recorder, []string{p.ID}); err != nil {
		t.Fatalf("import: %v", err)
	}

	approved, err := f.svc.ApproveProposal(ctx, p.ID, f.recorder)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != proposal.StatusApproved {
		t.Fatalf("status = %q, want approved", approved.Status)
	}
	if approved.ProcessedAt == nil || approved.ProcessedByPersonID != f.recorder {
		t.Fatalf("processing stamp missing: %+v", approved)
	}
	if approved.VersionHistoryEntryID == "" {
		t.Fatal("approved proposal not back-linked to a history entry")
	}

	c, err := f.store.GetCircle(ctx, f.circleID)
	if err != nil {
		t.Fatalf("get circle: %v", err)
	}
	if c.Name != "Product Development" {
		t.Fatalf("name = %q, want Product Development", c.Name)
	}
	if c.Slug != "product-development" {
		t.Fatalf("slug = %q, want product-development", c.Slug)
	}

	entry, err := f.svc.GetVersionHistory(ctx, approved.VersionHistoryEntryID)
	if err != nil {
		t.Fatalf("get history entry: %v", err)
	}
	if entry.EntityID != f.circleID || entry.ChangeType != storage.HistoryUpdate {
		t.Fatalf("history entry = %+v, want circle update", entry)
	}

	// Exactly one history entry for the approval on top of the creation one.
	page, err := f.svc.ListVersionHistory(ctx, "ws-1", `entity_type = "circle"`, 10, "")
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(page.Entries) != 2 {
		t.Fatalf("circle history entries = %d, want 2", len(page.Entries))
	}
}

func TestProposalLifecycle_ApproveSameSlugRenameKeepsSlug(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p, err := f.svc.CreateProposal(ctx, CreateProposalRequest{
		WorkspaceID:   "ws-1",
		ActorPersonID: f.creator,
		EntityType:    proposal.EntityCircle,
		EntityID:      f.circleID,
		Title:         "Capitalize root circle",
	})
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	// "ROOT" slugifies to the same "root"; the circle keeps its slug.
	if _, err := f.svc.AddEvolution(ctx, p.ID, f.creator, proposal.Evolution{
		FieldPath:   "name",
		BeforeValue: "Root",
		AfterValue:  "ROOT",
		ChangeType:  proposal.ChangeUpdate,
	}); err != nil {
		t.Fatalf("add evolution: %v", err)
	}
	if _, err := f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.svc.ImportToMeeting(ctx, "meeting-1", f.recorder, []string{p.ID}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, err := f.svc.ApproveProposal(ctx, p.ID, f.recorder); err != nil {
		t.Fatalf("approve: %v", err)
	}

	c, err := f.store.GetCircle(ctx, f.circleID)
	if err != nil {
		t.Fatalf("get circle: %v", err)
	}
	if c.Name != "ROOT" {
		t.Fatalf("name = %q, want ROOT", c.Name)
	}
	if c.Slug != "root" {
		t.Fatalf("slug after same-slug rename = %q, want root", c.Slug)
	}
}

func TestProposalLifecycle_RejectLeavesTargetUntouched(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p := f.draftRenameProposal(t)
	if _, err := f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.svc.ImportToMeeting(ctx, "meeting-1", f.recorder, []string{p.ID}); err != nil {
		t.Fatalf("import: %v", err)
	}

	rejected, err := f.svc.RejectProposal(ctx, p.ID, f.recorder)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != proposal.StatusRejected {
		t.Fatalf("status = %q, want rejected", rejected.Status)
	}
	if rejected.VersionHistoryEntryID != "" {
		t.Fatal("rejected proposal should not link a history entry")
	}

	c, err := f.store.GetCircle(ctx, f.circleID)
	if err != nil {
		t.Fatalf("get circle: %v", err)
	}
	if c.Name != "Root" {
		t.Fatalf("name = %q, want Root (unchanged)", c.Name)
	}
	page, err := f.svc.ListVersionHistory(ctx, "ws-1", `entity_type = "circle"`, 10, "")
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(page.Entries) != 1 {
		t.Fatalf("circle history entries = %d, want 1 (creation only)", len(page.Entries))
	}
}

func TestProposal_CreatorGates(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p := f.draftRenameProposal(t)

	_, err := f.svc.AddEvolution(ctx, p.ID, "intruder", proposal.Evolution{
		FieldPath:  "purpose",
		AfterValue: "Take over",
		ChangeType: proposal.ChangeUpdate,
	})
	if !apperrors.IsCode(err, apperrors.CodeProposalAccessDenied) {
		t.Fatalf("non-creator add err = %v, want PROPOSAL_ACCESS_DENIED", err)
	}

	_, err = f.svc.SubmitProposal(ctx, p.ID, "intruder", "meeting-1")
	if !apperrors.IsCode(err, apperrors.CodeProposalAccessDenied) {
		t.Fatalf("non-creator submit err = %v, want PROPOSAL_ACCESS_DENIED", err)
	}

	_, err = f.svc.WithdrawProposal(ctx, p.ID, "intruder")
	if !apperrors.IsCode(err, apperrors.CodeProposalAccessDenied) {
		t.Fatalf("non-creator withdraw err = %v, want PROPOSAL_ACCESS_DENIED", err)
	}
}

func TestSubmitProposal_RequiresEvolutions(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p, err := f.svc.CreateProposal(ctx, CreateProposalRequest{
		WorkspaceID:   "ws-1",
		ActorPersonID: f.creator,
		EntityType:    proposal.EntityCircle,
		EntityID:      f.circleID,
		Title:         "Empty proposal",
	})
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}

	_, err = f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-1")
	if !apperrors.IsCode(err, apperrors.CodeProposalNoEvolutions) {
		t.Fatalf("empty submit err = %v, want PROPOSAL_NO_EVOLUTIONS", err)
	}
}

func TestSubmitProposal_MeetingWorkspaceMustMatch(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()
	seedWorkspace(t, f.store, "ws-2", workspace.PhaseActive)
	seedMeeting(t, f.store, "meeting-foreign", "ws-2", "circle-x", "recorder")

	p := f.draftRenameProposal(t)
	_, err := f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-foreign")
	if !apperrors.IsCode(err, apperrors.CodeProposalWorkspaceMismatch) {
		t.Fatalf("foreign meeting err = %v, want PROPOSAL_WORKSPACE_MISMATCH", err)
	}
}

func TestImportToMeeting_Gates(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p := f.draftRenameProposal(t)
	if _, err := f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	err := f.svc.ImportToMeeting(ctx, "meeting-1", "intruder", []string{p.ID})
	if !apperrors.IsCode(err, apperrors.CodeProposalAccessDenied) {
		t.Fatalf("non-recorder import err = %v, want PROPOSAL_ACCESS_DENIED", err)
	}

	// A meeting on a different circle cannot import the proposal.
	seedMeeting(t, f.store, "meeting-other-circle", "ws-1", "circle-other", f.recorder)
	err = f.svc.ImportToMeeting(ctx, "meeting-other-circle", f.recorder, []string{p.ID})
	if !apperrors.IsCode(err, apperrors.CodeProposalCircleMismatch) {
		t.Fatalf("cross-circle import err = %v, want PROPOSAL_CIRCLE_MISMATCH", err)
	}

	if err := f.svc.ImportToMeeting(ctx, "meeting-1", f.recorder, []string{p.ID}); err != nil {
		t.Fatalf("import: %v", err)
	}

	// Once in another meeting, a second import is refused.
	seedMeeting(t, f.store, "meeting-2", "ws-1", f.circleID, f.recorder)
	err = f.svc.ImportToMeeting(ctx, "meeting-2", f.recorder, []string{p.ID})
	if !apperrors.IsCode(err, apperrors.CodeProposalAlreadyLinked) {
		t.Fatalf("double import err = %v, want PROPOSAL_ALREADY_LINKED", err)
	}
}

func TestImportToMeeting_RecordsMeetingAuditEvent(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p := f.draftRenameProposal(t)
	if _, err := f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.svc.ImportToMeeting(ctx, "meeting-1", f.recorder, []string{p.ID}); err != nil {
		t.Fatalf("import: %v", err)
	}

	events, err := f.store.ListAuditEvents(ctx, "ws-1", 50)
	if err != nil {
		t.Fatalf("list audit events: %v", err)
	}
	var imported *storage.AuditEventRecord
	for i := range events {
		if events[i].Action == "proposal.import" {
			imported = &events[i]
			break
		}
	}
	if imported == nil {
		t.Fatal("no proposal.import audit event recorded")
	}
	if imported.EntityType != "meeting" {
		t.Fatalf("entity type = %q, want meeting", imported.EntityType)
	}
	if imported.EntityID != "meeting-1" {
		t.Fatalf("entity id = %q, want meeting-1", imported.EntityID)
	}
	if imported.ActorPersonID != f.recorder {
		t.Fatalf("actor = %q, want %q", imported.ActorPersonID, f.recorder)
	}
}

func TestStartProcessing_RecorderMovesSubmittedToInMeeting(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p := f.draftRenameProposal(t)
	if _, err := f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	updated, err := f.svc.StartProcessing(ctx, p.ID, f.recorder)
	if err != nil {
		t.Fatalf("start processing: %v", err)
	}
	if updated.Status != proposal.StatusInMeeting {
		t.Fatalf("status = %q, want in_meeting", updated.Status)
	}
	if updated.MeetingID != "meeting-1" {
		t.Fatalf("meeting = %q, want meeting-1 (unchanged)", updated.MeetingID)
	}
}

func TestApproveProposal_AuthorityGates(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p := f.draftRenameProposal(t)
	if _, err := f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.svc.ImportToMeeting(ctx, "meeting-1", f.recorder, []string{p.ID}); err != nil {
		t.Fatalf("import: %v", err)
	}

	_, err := f.svc.ApproveProposal(ctx, p.ID, "intruder")
	if !apperrors.IsCode(err, apperrors.CodeProposalAccessDenied) {
		t.Fatalf("non-recorder approve err = %v, want PROPOSAL_ACCESS_DENIED", err)
	}
}

func TestApproveProposal_DecidesRequiresApprovalAuthority(t *testing.T) {
	svc, store := newServiceForTest(t)
	ctx := context.Background()
	seedWorkspace(t, store, "ws-1", workspace.PhaseActive)

	root, err := svc.CreateCircle(ctx, CreateCircleRequest{
		WorkspaceID: "ws-1", ActorPersonID: "founder", Name: "Root",
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	// The recorder holds no role in this decides circle.
	seedMeeting(t, store, "meeting-1", "ws-1", root.CircleID, "recorder")

	p, err := svc.CreateProposal(ctx, CreateProposalRequest{
		WorkspaceID:   "ws-1",
		ActorPersonID: "creator",
		EntityType:    proposal.EntityCircle,
		EntityID:      root.CircleID,
		Title:         "Rename",
	})
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	if _, err := svc.AddEvolution(ctx, p.ID, "creator", proposal.Evolution{
		FieldPath:   "name",
		BeforeValue: "Root",
		AfterValue:  "New Root",
		ChangeType:  proposal.ChangeUpdate,
	}); err != nil {
		t.Fatalf("add evolution: %v", err)
	}
	if _, err := svc.SubmitProposal(ctx, p.ID, "creator", "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.ImportToMeeting(ctx, "meeting-1", "recorder", []string{p.ID}); err != nil {
		t.Fatalf("import: %v", err)
	}

	_, err = svc.ApproveProposal(ctx, p.ID, "recorder")
	if !apperrors.IsCode(err, apperrors.CodeAuthorityDenied) {
		t.Fatalf("unauthorized approve err = %v, want AUTHORITY_DENIED", err)
	}
}

func TestApproveProposal_ConsentCircleFinalizesViaRecorder(t *testing.T) {
	svc, store := newServiceForTest(t)
	ctx := context.Background()
	seedWorkspace(t, store, "ws-1", workspace.PhaseActive)

	root, err := svc.CreateCircle(ctx, CreateCircleRequest{
		WorkspaceID:    "ws-1",
		ActorPersonID:  "founder",
		Name:           "Root",
		AuthorityLevel: authority.LevelFacilitates,
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	// The recorder holds no role; a consent circle finalizes through the
	// recorder alone.
	seedMeeting(t, store, "meeting-1", "ws-1", root.CircleID, "recorder")

	p, err := svc.CreateProposal(ctx, CreateProposalRequest{
		WorkspaceID:   "ws-1",
		ActorPersonID: "creator",
		EntityType:    proposal.EntityCircle,
		EntityID:      root.CircleID,
		Title:         "Repurpose",
	})
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	if _, err := svc.AddEvolution(ctx, p.ID, "creator", proposal.Evolution{
		FieldPath:  "purpose",
		AfterValue: "Ship the product",
		ChangeType: proposal.ChangeUpdate,
	}); err != nil {
		t.Fatalf("add evolution: %v", err)
	}
	if _, err := svc.SubmitProposal(ctx, p.ID, "creator", "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.ImportToMeeting(ctx, "meeting-1", "recorder", []string{p.ID}); err != nil {
		t.Fatalf("import: %v", err)
	}

	approved, err := svc.ApproveProposal(ctx, p.ID, "recorder")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != proposal.StatusApproved {
		t.Fatalf("status = %q, want approved", approved.Status)
	}
}

func TestApproveProposal_StaleEvolution(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p := f.draftRenameProposal(t)
	if _, err := f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.svc.ImportToMeeting(ctx, "meeting-1", f.recorder, []string{p.ID}); err != nil {
		t.Fatalf("import: %v", err)
	}

	// The target drifts after drafting.
	c, err := f.store.GetCircle(ctx, f.circleID)
	if err != nil {
		t.Fatalf("get circle: %v", err)
	}
	c.Name = "Renamed Elsewhere"
	if err := f.store.PutCircle(ctx, c); err != nil {
		t.Fatalf("put circle: %v", err)
	}

	_, err = f.svc.ApproveProposal(ctx, p.ID, f.recorder)
	if !apperrors.IsCode(err, apperrors.CodeProposalStaleEvolution) {
		t.Fatalf("stale approve err = %v, want PROPOSAL_STALE_EVOLUTION", err)
	}

	// The aborted approval leaves the proposal processable.
	got, err := f.svc.GetProposal(ctx, p.ID)
	if err != nil {
		t.Fatalf("get proposal: %v", err)
	}
	if got.Proposal.Status != proposal.StatusInMeeting {
		t.Fatalf("status after failed approve = %q, want in_meeting", got.Proposal.Status)
	}
}

func TestWithdrawProposal_TerminalStatesLocked(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p := f.draftRenameProposal(t)
	if _, err := f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	withdrawn, err := f.svc.WithdrawProposal(ctx, p.ID, f.creator)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if withdrawn.Status != proposal.StatusWithdrawn {
		t.Fatalf("status = %q, want withdrawn", withdrawn.Status)
	}

	_, err = f.svc.WithdrawProposal(ctx, p.ID, f.creator)
	if !apperrors.IsCode(err, apperrors.CodeProposalInvalidState) {
		t.Fatalf("double withdraw err = %v, want PROPOSAL_INVALID_STATE", err)
	}
	err = f.svc.ImportToMeeting(ctx, "meeting-1", f.recorder, []string{p.ID})
	if !apperrors.IsCode(err, apperrors.CodeProposalInvalidState) {
		t.Fatalf("import withdrawn err = %v, want PROPOSAL_INVALID_STATE", err)
	}
}

func TestProposalLifecycle_RoleTarget(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	lead := leadRole(t, f.store, f.circleID)

	p, err := f.svc.CreateProposal(ctx, CreateProposalRequest{
		WorkspaceID:   "ws-1",
		ActorPersonID: f.creator,
		EntityType:    proposal.EntityRole,
		EntityID:      lead.ID,
		Title:         "Sharpen lead decision rights",
	})
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	if p.CircleID != f.circleID {
		t.Fatalf("proposal circle = %q, want the role's circle %q", p.CircleID, f.circleID)
	}
	if _, err := f.svc.AddEvolution(ctx, p.ID, f.creator, proposal.Evolution{
		FieldPath:  "decision_rights",
		AfterValue: "Approve budgets\nSet priorities",
		ChangeType: proposal.ChangeUpdate,
	}); err != nil {
		t.Fatalf("add evolution: %v", err)
	}
	if _, err := f.svc.SubmitProposal(ctx, p.ID, f.creator, "meeting-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.svc.ImportToMeeting(ctx, "meeting-1", f.recorder, []string{p.ID}); err != nil {
		t.Fatalf("import: %v", err)
	}
	approved, err := f.svc.ApproveProposal(ctx, p.ID, f.recorder)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	r, err := f.store.GetRole(ctx, lead.ID)
	if err != nil {
		t.Fatalf("get role: %v", err)
	}
	if len(r.DecisionRights) != 2 || r.DecisionRights[0] != "Approve budgets" {
		t.Fatalf("decision rights = %v, want the applied list", r.DecisionRights)
	}

	entry, err := f.svc.GetVersionHistory(ctx, approved.VersionHistoryEntryID)
	if err != nil {
		t.Fatalf("get history entry: %v", err)
	}
	if entry.EntityType != proposal.EntityRole || entry.EntityID != lead.ID {
		t.Fatalf("history entry = %+v, want role %s", entry, lead.ID)
	}
}

func TestRemoveEvolution_ReindexesOrder(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	p := f.draftRenameProposal(t)
	second, err := f.svc.AddEvolution(ctx, p.ID, f.creator, proposal.Evolution{
		FieldPath:  "purpose",
		AfterValue: "Ship the product",
		ChangeType: proposal.ChangeUpdate,
	})
	if err != nil {
		t.Fatalf("add second evolution: %v", err)
	}
	if second.Order != 1 {
		t.Fatalf("second evolution order = %d, want 1", second.Order)
	}

	got, err := f.svc.GetProposal(ctx, p.ID)
	if err != nil {
		t.Fatalf("get proposal: %v", err)
	}
	if err := f.svc.RemoveEvolution(ctx, p.ID, got.Evolutions[0].ID, f.creator); err != nil {
		t.Fatalf("remove evolution: %v", err)
	}

	got, err = f.svc.GetProposal(ctx, p.ID)
	if err != nil {
		t.Fatalf("get proposal after remove: %v", err)
	}
	if len(got.Evolutions) != 1 {
		t.Fatalf("evolutions = %d, want 1", len(got.Evolutions))
	}
	if got.Evolutions[0].ID != second.ID || got.Evolutions[0].Order != 0 {
		t.Fatalf("remaining evolution = %+v, want %s at order 0", got.Evolutions[0], second.ID)
	}
}
