package authority

// Policy is the governance rule set attached to one authority level.
type Policy struct {
	// LeadRequired reports whether the level mandates a lead role (GOV-01
	// holds for every level, so this is true across the table; it stays a
	// field so the table remains self-describing).
	LeadRequired bool
	// LeadLabel is the display name stamped on the level's lead role.
	LeadLabel string
	// CanLeadApproveUnilaterally grants the lead sole proposal approval.
	CanLeadApproveUnilaterally bool
	// CanLeadAssignRoles grants the lead role-assignment rights.
	CanLeadAssignRoles bool
	// MandatoryRoleNames are the role names every circle at this level carries.
	MandatoryRoleNames []string
}

// FacilitatorRoleName is the structural role that may run meetings in place
// of the lead.
const FacilitatorRoleName = "Facilitator"

var policies = map[Level]Policy{
	LevelDecides: {
		LeadRequired:               true,
		LeadLabel:                  "Circle Lead",
		CanLeadApproveUnilaterally: true,
		CanLeadAssignRoles:         true,
		MandatoryRoleNames:         []string{"Circle Lead", "Secretary"},
	},
	LevelFacilitates: {
		LeadRequired:               true,
		LeadLabel:                  "Team Lead",
		CanLeadApproveUnilaterally: false,
		CanLeadAssignRoles:         false,
		MandatoryRoleNames:         []string{"Team Lead", "Facilitator", "Secretary"},
	},
	LevelConvenes: {
		LeadRequired:               true,
		LeadLabel:                  "Steward",
		CanLeadApproveUnilaterally: false,
		CanLeadAssignRoles:         false,
		MandatoryRoleNames:         []string{"Steward"},
	},
}

// PolicyFor returns the governance policy for an authority level. The table
// is total: unset or unrecognized levels resolve to the default level first.
func PolicyFor(level Level) Policy {
	policy := policies[EffectiveLevel(level)]
	// Copy the slice so callers cannot mutate the table.
	names := make([]string, len(policy.MandatoryRoleNames))
	copy(names, policy.MandatoryRoleNames)
	policy.MandatoryRoleNames = names
	return policy
}

// IsMandatoryRoleName reports whether name is in the level's mandatory set.
func IsMandatoryRoleName(level Level, name string) bool {
	for _, candidate := range policies[EffectiveLevel(level)].MandatoryRoleNames {
		if candidate == name {
			return true
		}
	}
	return false
}
