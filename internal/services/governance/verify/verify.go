// Package verify runs read-only structural checks over a workspace's
// governance data. Violations are reported, never raised as errors: a
// failing check is data for the operator, not a fault in the engine.
package verify

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/concordhq/concord/internal/platform/errors"
	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/proposal"
	"github.com/concordhq/concord/internal/services/governance/domain/role"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

// Severity ranks how bad a failing check is. Critical failures gate
// releases; warnings are hygiene.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Result is the outcome of one check.
type Result struct {
	ID         string
	Name       string
	Severity   Severity
	Violations []string
	Message    string
	Passed     bool
}

// Options narrows a run to one check category (the ID prefix, e.g. "AUTH")
// or one severity. Zero values match everything.
type Options struct {
	Category string
	Severity Severity
}

// Summary aggregates a run.
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// Report is the outcome of a full run.
type Report struct {
	Results []Result
	Summary Summary
}

// AllPassed reports whether every check in the run passed.
func (r Report) AllPassed() bool {
	return r.Summary.Failed == 0
}

// CriticalsPassed reports whether every critical check in the run passed.
func (r Report) CriticalsPassed() bool {
	for _, res := range r.Results {
		if res.Severity == SeverityCritical && !res.Passed {
			return false
		}
	}
	return true
}

// Verifier runs the checks against a store.
type Verifier struct {
	store storage.Store
}

// New creates a verifier backed by the provided store.
func New(store storage.Store) *Verifier {
	return &Verifier{store: store}
}

type check struct {
	id       string
	name     string
	severity Severity
	run      func(*snapshot) []string
}

var checks = []check{
	{"AUTH-01", "Active circles have a lead assignment", SeverityCritical, checkLeadAssignments},
	{"AUTH-02", "Root circle has a lead assignment", SeverityCritical, checkRootLeadAssignment},
	{"AUTH-03", "Active circles define a lead role", SeverityCritical, checkLeadRoleDefined},
	{"AUTH-04", "Authority calculation is coherent per circle", SeverityCritical, checkAuthorityCalculation},
	{"AUTH-05", "Staffed circles have a facilitator", SeverityWarning, checkFacilitationCoverage},
	{"GOV-01", "Circles carry exactly one lead role", SeverityCritical, checkSingleLeadRole},
	{"GOV-02", "Roles state a purpose", SeverityWarning, checkRolePurposes},
	{"GOV-03", "Roles state decision rights", SeverityWarning, checkRoleDecisionRights},
	{"ORG-01", "Workspace has exactly one root circle", SeverityCritical, checkSingleRoot},
	{"PROP-01", "Finalized proposals carry processing facts", SeverityCritical, checkTerminalProposals},
	{"PROP-02", "Approved proposals link an existing history entry", SeverityCritical, checkApprovalHistoryLinks},
	{"TMPL-01", "System templates are unique per name, kind and level", SeverityCritical, checkTemplateUniqueness},
}

// RunAll executes every check matching opts against one workspace.
func (v *Verifier) RunAll(ctx context.Context, workspaceID string, opts Options) (Report, error) {
	snap, err := v.load(ctx, workspaceID)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, c := range checks {
		if opts.Category != "" && !strings.HasPrefix(c.id, opts.Category) {
			continue
		}
		if opts.Severity != "" && c.severity != opts.Severity {
			continue
		}

		violations := c.run(snap)
		res := Result{
			ID:         c.id,
			Name:       c.name,
			Severity:   c.severity,
			Violations: violations,
			Passed:     len(violations) == 0,
		}
		if res.Passed {
			res.Message = c.name
		} else {
			res.Message = fmt.Sprintf("%s: %d violation(s)", c.name, len(violations))
		}

		report.Results = append(report.Results, res)
		report.Summary.Total++
		if res.Passed {
			report.Summary.Passed++
		} else {
			report.Summary.Failed++
		}
	}
	return report, nil
}

// snapshot is one consistent read of the data the checks inspect.
type snapshot struct {
	circles         []storage.CircleRecord
	rolesByCircle   map[string][]storage.RoleRecord
	activeByCircle  map[string][]storage.AssignmentRecord
	proposals       []storage.ProposalRecord
	systemTemplates []storage.TemplateRecord
	historyExists   map[string]bool
}

func (v *Verifier) load(ctx context.Context, workspaceID string) (*snapshot, error) {
	snap := &snapshot{
		rolesByCircle:  make(map[string][]storage.RoleRecord),
		activeByCircle: make(map[string][]storage.AssignmentRecord),
		historyExists:  make(map[string]bool),
	}

	err := v.store.InTx(ctx, func(tx storage.Store) error {
		var err error
		snap.circles, err = tx.ListCirclesByWorkspace(ctx, workspaceID, true)
		if err != nil {
			return err
		}
		for _, c := range snap.circles {
			roles, err := tx.ListRolesByCircle(ctx, c.ID, true)
			if err != nil {
				return err
			}
			snap.rolesByCircle[c.ID] = roles

			assignments, err := tx.ListActiveAssignmentsByCircle(ctx, c.ID)
			if err != nil {
				return err
			}
			snap.activeByCircle[c.ID] = assignments
		}

		snap.proposals, err = tx.ListProposalsByWorkspace(ctx, workspaceID)
		if err != nil {
			return err
		}
		for _, p := range snap.proposals {
			if p.VersionHistoryEntryID == "" {
				continue
			}
			_, err := tx.GetVersionHistory(ctx, p.VersionHistoryEntryID)
			switch {
			case err == nil:
				snap.historyExists[p.VersionHistoryEntryID] = true
			case apperrors.IsCode(err, apperrors.CodeNotFound):
				snap.historyExists[p.VersionHistoryEntryID] = false
			default:
				return err
			}
		}

		snap.systemTemplates, err = tx.ListSystemTemplates(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *snapshot) activeCircles() []storage.CircleRecord {
	var out []storage.CircleRecord
	for _, c := range s.circles {
		if c.ArchivedAt == nil {
			out = append(out, c)
		}
	}
	return out
}

func (s *snapshot) activeRoles(circleID string) []storage.RoleRecord {
	var out []storage.RoleRecord
	for _, r := range s.rolesByCircle[circleID] {
		if r.ArchivedAt == nil {
			out = append(out, r)
		}
	}
	return out
}

func (s *snapshot) leadRoles(circleID string) []storage.RoleRecord {
	var out []storage.RoleRecord
	for _, r := range s.activeRoles(circleID) {
		if r.RoleKind == role.KindCircleLead {
			out = append(out, r)
		}
	}
	return out
}

func (s *snapshot) hasLeadAssignment(circleID string) bool {
	leads := make(map[string]bool)
	for _, r := range s.leadRoles(circleID) {
		leads[r.ID] = true
	}
	for _, a := range s.activeByCircle[circleID] {
		if leads[a.RoleID] {
			return true
		}
	}
	return false
}

func checkLeadAssignments(s *snapshot) []string {
	var violations []string
	for _, c := range s.activeCircles() {
		if !s.hasLeadAssignment(c.ID) {
			violations = append(violations,
				fmt.Sprintf("circle %q (%s) has no active lead assignment", c.Name, c.ID))
		}
	}
	return violations
}

func checkRootLeadAssignment(s *snapshot) []string {
	var violations []string
	for _, c := range s.activeCircles() {
		if c.ParentCircleID != nil {
			continue
		}
		if !s.hasLeadAssignment(c.ID) {
			violations = append(violations,
				fmt.Sprintf("root circle %q (%s) has no active lead assignment", c.Name, c.ID))
		}
	}
	return violations
}

func checkLeadRoleDefined(s *snapshot) []string {
	var violations []string
	for _, c := range s.activeCircles() {
		if len(s.leadRoles(c.ID)) == 0 {
			violations = append(violations,
				fmt.Sprintf("circle %q (%s) defines no lead role", c.Name, c.ID))
		}
	}
	return violations
}

// calculatorAssignments resolves a circle's active assignments into the
// inputs the authority calculator consumes. Assignments pointing at
// archived or missing roles contribute nothing, matching how the service
// itself loads them.
func (s *snapshot) calculatorAssignments(circleID string) []authority.Assignment {
	roleByID := make(map[string]storage.RoleRecord)
	for _, r := range s.activeRoles(circleID) {
		roleByID[r.ID] = r
	}
	var out []authority.Assignment
	for _, a := range s.activeByCircle[circleID] {
		r, ok := roleByID[a.RoleID]
		if !ok {
			continue
		}
		out = append(out, authority.Assignment{
			PersonID: a.PersonID,
			CircleID: a.CircleID,
			RoleID:   a.RoleID,
			RoleName: r.Name,
			RoleType: role.RoleType(r.RoleKind),
		})
	}
	return out
}

// calculateGuarded shields the run from a panicking calculation so one bad
// circle reports a violation instead of aborting the whole verification.
func calculateGuarded(input authority.Context) (result authority.Authority, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("authority calculation panicked: %v", r)
		}
	}()
	return authority.Calculate(input), nil
}

// checkAuthorityCalculation runs the calculator for a representative actor
// in every active circle and verifies the result is structurally coherent:
// a person without assignments computes to default deny, a member's
// objection right tracks the circle's level, and a staffed lead carries
// structural authority.
func checkAuthorityCalculation(s *snapshot) []string {
	var violations []string
	for _, c := range s.activeCircles() {
		assignments := s.calculatorAssignments(c.ID)
		level := authority.EffectiveLevel(c.AuthorityLevel)

		outsider, err := calculateGuarded(authority.Context{
			PersonID:    "nobody",
			CircleID:    c.ID,
			Level:       c.AuthorityLevel,
			Assignments: assignments,
		})
		if err != nil {
			violations = append(violations,
				fmt.Sprintf("circle %q (%s): %v", c.Name, c.ID, err))
			continue
		}
		if outsider != (authority.Authority{}) {
			violations = append(violations,
				fmt.Sprintf("circle %q (%s) grants authority to a person with no assignments", c.Name, c.ID))
		}

		if len(assignments) == 0 {
			continue
		}

		// Prefer a lead as the representative actor when one is staffed.
		representative := assignments[0].PersonID
		for _, a := range assignments {
			if a.RoleType == authority.RoleTypeLead {
				representative = a.PersonID
				break
			}
		}
		got, err := calculateGuarded(authority.Context{
			PersonID:    representative,
			CircleID:    c.ID,
			Level:       c.AuthorityLevel,
			Assignments: assignments,
		})
		if err != nil {
			violations = append(violations,
				fmt.Sprintf("circle %q (%s): %v", c.Name, c.ID, err))
			continue
		}

		if got.CanRaiseObjections != (level != authority.LevelDecides) {
			violations = append(violations,
				fmt.Sprintf("circle %q (%s): objection right for %s inconsistent with level %s",
					c.Name, c.ID, representative, level))
		}

		isLead := false
		for _, a := range assignments {
			if a.PersonID == representative && a.RoleType == authority.RoleTypeLead {
				isLead = true
				break
			}
		}
		if isLead {
			if !got.CanModifyCircleStructure || !got.CanFacilitate {
				violations = append(violations,
					fmt.Sprintf("circle %q (%s): lead %s lacks structural authority", c.Name, c.ID, representative))
			}
			if authority.HasDirectApprovalAuthority(level) && !got.CanApproveProposals {
				violations = append(violations,
					fmt.Sprintf("circle %q (%s): lead %s cannot approve proposals at level %s",
						c.Name, c.ID, representative, level))
			}
		}
	}
	return violations
}

// checkFacilitationCoverage flags staffed circles where nobody can
// facilitate: no lead assignment and no Facilitator role assignment.
func checkFacilitationCoverage(s *snapshot) []string {
	var violations []string
	for _, c := range s.activeCircles() {
		if len(s.activeByCircle[c.ID]) == 0 {
			continue
		}
		if s.hasLeadAssignment(c.ID) {
			continue
		}
		facilitators := make(map[string]bool)
		for _, r := range s.activeRoles(c.ID) {
			if r.Name == "Facilitator" {
				facilitators[r.ID] = true
			}
		}
		covered := false
		for _, a := range s.activeByCircle[c.ID] {
			if facilitators[a.RoleID] {
				covered = true
				break
			}
		}
		if !covered {
			violations = append(violations,
				fmt.Sprintf("circle %q (%s) has members but nobody who can facilitate", c.Name, c.ID))
		}
	}
	return violations
}

func checkSingleLeadRole(s *snapshot) []string {
	var violations []string
	for _, c := range s.activeCircles() {
		if n := len(s.leadRoles(c.ID)); n > 1 {
			violations = append(violations,
				fmt.Sprintf("circle %q (%s) carries %d lead roles", c.Name, c.ID, n))
		}
	}
	return violations
}

func checkRolePurposes(s *snapshot) []string {
	var violations []string
	for _, c := range s.activeCircles() {
		for _, r := range s.activeRoles(c.ID) {
			if strings.TrimSpace(r.Purpose) == "" {
				violations = append(violations,
					fmt.Sprintf("role %q (%s) in circle %q has no purpose", r.Name, r.ID, c.Name))
			}
		}
	}
	return violations
}

func checkRoleDecisionRights(s *snapshot) []string {
	var violations []string
	for _, c := range s.activeCircles() {
		for _, r := range s.activeRoles(c.ID) {
			if len(r.DecisionRights) == 0 {
				violations = append(violations,
					fmt.Sprintf("role %q (%s) in circle %q has no decision rights", r.Name, r.ID, c.Name))
			}
		}
	}
	return violations
}

func checkSingleRoot(s *snapshot) []string {
	var roots []storage.CircleRecord
	for _, c := range s.activeCircles() {
		if c.ParentCircleID == nil {
			roots = append(roots, c)
		}
	}
	switch len(roots) {
	case 1:
		return nil
	case 0:
		return []string{"workspace has no root circle"}
	default:
		var violations []string
		for _, c := range roots {
			violations = append(violations,
				fmt.Sprintf("extra root circle %q (%s)", c.Name, c.ID))
		}
		return violations
	}
}

func checkTerminalProposals(s *snapshot) []string {
	var violations []string
	for _, p := range s.proposals {
		switch p.Status {
		case proposal.StatusApproved:
			if p.ProcessedAt == nil || p.ProcessedByPersonID == "" {
				violations = append(violations,
					fmt.Sprintf("approved proposal %q (%s) lacks processing facts", p.Title, p.ID))
			}
			if p.VersionHistoryEntryID == "" {
				violations = append(violations,
					fmt.Sprintf("approved proposal %q (%s) links no history entry", p.Title, p.ID))
			}
		case proposal.StatusRejected:
			if p.ProcessedAt == nil || p.ProcessedByPersonID == "" {
				violations = append(violations,
					fmt.Sprintf("rejected proposal %q (%s) lacks processing facts", p.Title, p.ID))
			}
			if p.VersionHistoryEntryID != "" {
				violations = append(violations,
					fmt.Sprintf("rejected proposal %q (%s) links a history entry", p.Title, p.ID))
			}
		}
	}
	return violations
}

func checkApprovalHistoryLinks(s *snapshot) []string {
	var violations []string
	for _, p := range s.proposals {
		if p.Status != proposal.StatusApproved || p.VersionHistoryEntryID == "" {
			continue
		}
		if !s.historyExists[p.VersionHistoryEntryID] {
			violations = append(violations,
				fmt.Sprintf("approved proposal %q (%s) links missing history entry %s",
					p.Title, p.ID, p.VersionHistoryEntryID))
		}
	}
	return violations
}

func checkTemplateUniqueness(s *snapshot) []string {
	var violations []string
	seen := make(map[string]string)
	for _, t := range s.systemTemplates {
		key := fmt.Sprintf("%s|%s|%s", t.Name, t.RoleKind, t.AuthorityLevel)
		if firstID, ok := seen[key]; ok {
			violations = append(violations,
				fmt.Sprintf("system templates %s and %s duplicate (%s, %s, %s)",
					firstID, t.ID, t.Name, t.RoleKind, t.AuthorityLevel))
			continue
		}
		seen[key] = t.ID
	}
	return violations
}
