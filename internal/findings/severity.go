package findings

import "strings"

// Severity is the shared severity scale all native vocabularies map onto.
type Severity string

const (
	SeverityCritical   Severity = "Critical"
	SeverityHigh       Severity = "High"
	SeverityMedium     Severity = "Medium"
	SeverityLow        Severity = "Low"
	SeverityNegligible Severity = "Negligible"
	SeverityUnknown    Severity = "Unknown"
)

// AllSeverities is the fixed iteration order for every renderer and count:
// most severe first.
var AllSeverities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityNegligible,
	SeverityUnknown,
}

var severityRank = map[Severity]int{
	SeverityCritical:   0,
	SeverityHigh:       1,
	SeverityMedium:     2,
	SeverityLow:        3,
	SeverityNegligible: 4,
	SeverityUnknown:    5,
}

// Rank returns the sort position of s, lower meaning more severe.
// Unlisted values sort after Unknown.
func (s Severity) Rank() int {
	if rank, ok := severityRank[s]; ok {
		return rank
	}
	return len(severityRank)
}

// Normalize maps a tool-native severity string onto the shared scale.
// Matching is case-insensitive; any value without a table row becomes
// Unknown, never dropped. TruffleHog, ClamAV and Xeol carry fixed classes
// regardless of the native value: secrets are always High, malware is
// always Critical, end-of-life is always Medium.
func Normalize(tool Tool, native string) Severity {
	switch tool {
	case ToolTruffleHog:
		return SeverityHigh
	case ToolClamAV:
		return SeverityCritical
	case ToolXeol:
		return SeverityMedium
	case ToolSonarQube:
		// SonarQube uses its own five-step vocabulary.
		switch strings.ToUpper(strings.TrimSpace(native)) {
		case "BLOCKER":
			return SeverityCritical
		case "CRITICAL":
			return SeverityHigh
		case "MAJOR":
			return SeverityMedium
		case "MINOR":
			return SeverityLow
		case "INFO":
			return SeverityNegligible
		default:
			return SeverityUnknown
		}
	default:
		// Grype, Trivy and Checkov all use the common scale, differing
		// only in letter case.
		switch strings.ToUpper(strings.TrimSpace(native)) {
		case "CRITICAL":
			return SeverityCritical
		case "HIGH":
			return SeverityHigh
		case "MEDIUM":
			return SeverityMedium
		case "LOW":
			return SeverityLow
		case "NEGLIGIBLE":
			return SeverityNegligible
		default:
			return SeverityUnknown
		}
	}
}
