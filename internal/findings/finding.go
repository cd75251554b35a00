package findings

// Tool identifies the scanner a finding was extracted from.
type Tool string

const (
	ToolGrype      Tool = "Grype"
	ToolTrivy      Tool = "Trivy"
	ToolTruffleHog Tool = "TruffleHog"
	ToolCheckov    Tool = "Checkov"
	ToolClamAV     Tool = "ClamAV"
	ToolXeol       Tool = "Xeol"
	ToolSonarQube  Tool = "SonarQube"
)

// AllTools is the canonical tool order used for processing and display.
var AllTools = []Tool{
	ToolGrype,
	ToolTrivy,
	ToolTruffleHog,
	ToolCheckov,
	ToolClamAV,
	ToolXeol,
	ToolSonarQube,
}

// Finding is one normalized issue extracted from a single raw scanner report.
// A finding is never mutated after the adapter constructs it.
type Finding struct {
	Tool         Tool     `json:"tool"`
	Severity     Severity `json:"severity"`
	ID           string   `json:"id"`
	Subject      string   `json:"subject"`
	Description  string   `json:"description,omitempty"`
	SourceReport string   `json:"source_report"`

	// Verified is set for TruffleHog secrets only.
	Verified *bool    `json:"verified,omitempty"`
	FixedIn  []string `json:"fixed_in,omitempty"`
}

// DescriptionLimit bounds finding descriptions in rendered output.
const DescriptionLimit = 300

// Truncate shortens s to at most limit characters, ellipsis included.
func Truncate(s string, limit int) string {
	if limit <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
