package circle

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Engineering", "engineering"},
		{"spaces become hyphens", "Product Design", "product-design"},
		{"special characters collapse", "R&D / Platform!!", "r-d-platform"},
		{"leading and trailing trimmed", "  --Ops--  ", "ops"},
		{"numbers kept", "Team 42", "team-42"},
		{"empty falls back", "", "circle"},
		{"only symbols falls back", "!!!", "circle"},
		{
			"long names capped",
			strings.Repeat("a", 60),
			strings.Repeat("a", 48),
		},
		{
			"cap does not end on hyphen",
			strings.Repeat("ab ", 20),
			strings.TrimRight(strings.Repeat("ab-", 16), "-"),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.in); got != tc.want {
				t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	existing := map[string]bool{
		"engineering":   true,
		"engineering-2": true,
	}
	taken := func(slug string) bool { return existing[slug] }

	if got := UniqueSlug("Marketing", taken); got != "marketing" {
		t.Errorf("UniqueSlug free name = %q, want marketing", got)
	}
	if got := UniqueSlug("Engineering", taken); got != "engineering-3" {
		t.Errorf("UniqueSlug taken name = %q, want engineering-3", got)
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Engineering"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := ValidateName("   "); err == nil {
		t.Error("blank name accepted")
	}
	if err := ValidateName(strings.Repeat("x", MaxNameLength+1)); err == nil {
		t.Error("oversized name accepted")
	}
}
