package authority

// RoleType classifies a role assignment for authority calculation.
type RoleType string

const (
	RoleTypeLead   RoleType = "lead"
	RoleTypeCore   RoleType = "core"
	RoleTypeCustom RoleType = "custom"
)

// Assignment is one person-to-role binding inside a circle, as seen by the
// calculator. RoleType comes from the stored role kind, never from the
// role's display name.
type Assignment struct {
	PersonID string
	CircleID string
	RoleID   string
	RoleName string
	RoleType RoleType
}

// Context carries everything the calculator needs: who is asking, which
// circle, the circle's authority level, and the person's assignments within
// that circle.
type Context struct {
	PersonID    string
	CircleID    string
	Level       Level
	Assignments []Assignment
}

// Authority is the computed capability set for one person in one circle.
type Authority struct {
	CanApproveProposals      bool
	CanAssignRoles           bool
	CanModifyCircleStructure bool
	CanRaiseObjections       bool
	CanFacilitate            bool
}

// Calculate derives a person's authority in a circle from their assignments
// and the circle's authority level. A person with no assignments in the
// circle gets the zero value: deny everything.
func Calculate(input Context) Authority {
	var (
		isMember       bool
		isLead         bool
		hasFacilitator bool
	)
	for _, a := range input.Assignments {
		if a.PersonID != input.PersonID || a.CircleID != input.CircleID {
			continue
		}
		isMember = true
		if a.RoleType == RoleTypeLead {
			isLead = true
		}
		if a.RoleName == FacilitatorRoleName {
			hasFacilitator = true
		}
	}
	if !isMember {
		return Authority{}
	}

	level := EffectiveLevel(input.Level)
	policy := PolicyFor(level)

	return Authority{
		CanApproveProposals:      isLead && policy.CanLeadApproveUnilaterally,
		CanAssignRoles:           isLead && policy.CanLeadAssignRoles,
		CanModifyCircleStructure: isLead,
		CanRaiseObjections:       level != LevelDecides,
		CanFacilitate:            isLead || hasFacilitator,
	}
}
