package authority

import "strings"

// Level describes how much unilateral power a circle's lead role carries.
type Level string

const (
	LevelUnspecified Level = ""
	// LevelDecides gives the lead full unilateral approval and assignment rights.
	LevelDecides Level = "decides"
	// LevelFacilitates reserves approval for group consent; the lead breaks ties.
	LevelFacilitates Level = "facilitates"
	// LevelConvenes is advisory coordination with no approval authority.
	LevelConvenes Level = "convenes"
)

// DefaultLevel is applied when a circle carries no explicit authority level.
const DefaultLevel = LevelDecides

// NormalizeLevelLabel canonicalizes authority level labels.
func NormalizeLevelLabel(value string) (Level, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}
	switch strings.ToLower(trimmed) {
	case "decides", "authority_level_decides":
		return LevelDecides, true
	case "facilitates", "authority_level_facilitates":
		return LevelFacilitates, true
	case "convenes", "authority_level_convenes":
		return LevelConvenes, true
	default:
		return "", false
	}
}

// EffectiveLevel resolves an unset level to the default.
func EffectiveLevel(level Level) Level {
	switch level {
	case LevelDecides, LevelFacilitates, LevelConvenes:
		return level
	default:
		return DefaultLevel
	}
}

// IsValidLevel reports whether level is one of the three defined values.
func IsValidLevel(level Level) bool {
	switch level {
	case LevelDecides, LevelFacilitates, LevelConvenes:
		return true
	default:
		return false
	}
}

// HasDirectApprovalAuthority reports whether the lead decides alone.
func HasDirectApprovalAuthority(level Level) bool {
	return EffectiveLevel(level) == LevelDecides
}

// RequiresConsentProcess reports whether approvals run through group consent.
func RequiresConsentProcess(level Level) bool {
	return EffectiveLevel(level) == LevelFacilitates
}

// HasConveningAuthority reports whether the circle is coordination-only.
func HasConveningAuthority(level Level) bool {
	return EffectiveLevel(level) == LevelConvenes
}
