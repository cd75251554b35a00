package adapters

import (
	"encoding/json"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// sonarReport is the issue-search layout of a SonarQube export. Exports may
// instead hold quality-gate or coverage summaries; those decode cleanly to
// an empty issue list and yield zero findings without a warning.
type sonarReport struct {
	Issues []sonarIssue `json:"issues"`
}

type sonarIssue struct {
	Rule      string `json:"rule"`
	Severity  string `json:"severity"`
	Component string `json:"component"`
	Message   string `json:"message"`
	Type      string `json:"type"`
}

// ParseSonarQubeFile maps SonarQube issues onto findings, translating the
// BLOCKER..INFO scale down one notch onto the shared severity ladder.
func ParseSonarQubeFile(path string) ([]findings.Finding, error) {
	data, err := readReport(findings.ToolSonarQube, path)
	if err != nil {
		return nil, err
	}
	return parseSonarQubeBytes(path, data)
}

func parseSonarQubeBytes(path string, data []byte) ([]findings.Finding, error) {
	var report sonarReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.NewParseError(string(findings.ToolSonarQube), path, err)
	}

	result := make([]findings.Finding, 0, len(report.Issues))
	for _, issue := range report.Issues {
		result = append(result, findings.Finding{
			Tool:         findings.ToolSonarQube,
			Severity:     findings.Normalize(findings.ToolSonarQube, issue.Severity),
			ID:           orUnknown(issue.Rule),
			Subject:      orUnknown(issue.Component),
			Description:  issue.Message,
			SourceReport: path,
		})
	}

	return deduplicate(result), nil
}
