package authority

import "testing"

func TestCalculate(t *testing.T) {
	person := "person-1"
	circle := "circle-1"

	lead := Assignment{
		PersonID: person,
		CircleID: circle,
		RoleID:   "role-lead",
		RoleName: "Circle Lead",
		RoleType: RoleTypeLead,
	}
	member := Assignment{
		PersonID: person,
		CircleID: circle,
		RoleID:   "role-custom",
		RoleName: "Engineer",
		RoleType: RoleTypeCustom,
	}
	facilitator := Assignment{
		PersonID: person,
		CircleID: circle,
		RoleID:   "role-fac",
		RoleName: "Facilitator",
		RoleType: RoleTypeCore,
	}

	tests := []struct {
		name  string
		input Context
		want  Authority
	}{
		{
			name: "decides lead has full authority except objections",
			input: Context{
				PersonID:    person,
				CircleID:    circle,
				Level:       LevelDecides,
				Assignments: []Assignment{lead},
			},
			want: Authority{
				CanApproveProposals:      true,
				CanAssignRoles:           true,
				CanModifyCircleStructure: true,
				CanRaiseObjections:       false,
				CanFacilitate:            true,
			},
		},
		{
			name: "decides member has no authority",
			input: Context{
				PersonID:    person,
				CircleID:    circle,
				Level:       LevelDecides,
				Assignments: []Assignment{member},
			},
			want: Authority{},
		},
		{
			name: "facilitates lead cannot approve unilaterally",
			input: Context{
				PersonID:    person,
				CircleID:    circle,
				Level:       LevelFacilitates,
				Assignments: []Assignment{{
					PersonID: person,
					CircleID: circle,
					RoleID:   "role-lead",
					RoleName: "Team Lead",
					RoleType: RoleTypeLead,
				}},
			},
			want: Authority{
				CanApproveProposals:      false,
				CanAssignRoles:           false,
				CanModifyCircleStructure: true,
				CanRaiseObjections:       true,
				CanFacilitate:            true,
			},
		},
		{
			name: "facilitates member can raise objections only",
			input: Context{
				PersonID:    person,
				CircleID:    circle,
				Level:       LevelFacilitates,
				Assignments: []Assignment{member},
			},
			want: Authority{CanRaiseObjections: true},
		},
		{
			name: "facilitator role grants facilitation without lead",
			input: Context{
				PersonID:    person,
				CircleID:    circle,
				Level:       LevelFacilitates,
				Assignments: []Assignment{facilitator},
			},
			want: Authority{
				CanRaiseObjections: true,
				CanFacilitate:      true,
			},
		},
		{
			name: "convenes steward convenes but does not approve",
			input: Context{
				PersonID:    person,
				CircleID:    circle,
				Level:       LevelConvenes,
				Assignments: []Assignment{{
					PersonID: person,
					CircleID: circle,
					RoleID:   "role-lead",
					RoleName: "Steward",
					RoleType: RoleTypeLead,
				}},
			},
			want: Authority{
				CanModifyCircleStructure: true,
				CanRaiseObjections:       true,
				CanFacilitate:            true,
			},
		},
		{
			name: "no assignments returns default deny",
			input: Context{
				PersonID: person,
				CircleID: circle,
				Level:    LevelDecides,
			},
			want: Authority{},
		},
		{
			name: "assignments in other circles are ignored",
			input: Context{
				PersonID: person,
				CircleID: circle,
				Level:    LevelDecides,
				Assignments: []Assignment{{
					PersonID: person,
					CircleID: "circle-2",
					RoleID:   "role-lead",
					RoleName: "Circle Lead",
					RoleType: RoleTypeLead,
				}},
			},
			want: Authority{},
		},
		{
			name: "unspecified level defaults to decides",
			input: Context{
				PersonID:    person,
				CircleID:    circle,
				Level:       LevelUnspecified,
				Assignments: []Assignment{lead},
			},
			want: Authority{
				CanApproveProposals:      true,
				CanAssignRoles:           true,
				CanModifyCircleStructure: true,
				CanFacilitate:            true,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Calculate(tc.input)
			if got != tc.want {
				t.Errorf("Calculate() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCalculateLeadAlwaysFacilitates(t *testing.T) {
	for _, level := range []Level{LevelDecides, LevelFacilitates, LevelConvenes} {
		got := Calculate(Context{
			PersonID: "p",
			CircleID: "c",
			Level:    level,
			Assignments: []Assignment{{
				PersonID: "p",
				CircleID: "c",
				RoleID:   "r",
				RoleName: PolicyFor(level).LeadLabel,
				RoleType: RoleTypeLead,
			}},
		})
		if !got.CanFacilitate {
			t.Errorf("level %s: lead should facilitate", level)
		}
		if !got.CanModifyCircleStructure {
			t.Errorf("level %s: lead should modify circle structure", level)
		}
	}
}
