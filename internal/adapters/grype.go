package adapters

import (
	"encoding/json"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// grypeReport mirrors the slice of the Grype JSON schema the adapter consumes.
type grypeReport struct {
	Matches []grypeMatch `json:"matches"`
}

type grypeMatch struct {
	Vulnerability grypeVulnerability `json:"vulnerability"`
	Artifact      grypeArtifact      `json:"artifact"`
}

type grypeVulnerability struct {
	ID          string   `json:"id"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Fix         grypeFix `json:"fix"`
}

type grypeFix struct {
	Versions []string `json:"versions"`
	State    string   `json:"state"`
}

type grypeArtifact struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ParseGrypeFile normalizes every entry of a Grype report's matches array.
func ParseGrypeFile(path string) ([]findings.Finding, error) {
	data, err := readReport(findings.ToolGrype, path)
	if err != nil {
		return nil, err
	}
	return parseGrypeBytes(path, data)
}

func parseGrypeBytes(path string, data []byte) ([]findings.Finding, error) {
	var report grypeReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.NewParseError(string(findings.ToolGrype), path, err)
	}

	result := make([]findings.Finding, 0, len(report.Matches))
	for _, match := range report.Matches {
		result = append(result, findings.Finding{
			Tool:         findings.ToolGrype,
			Severity:     findings.Normalize(findings.ToolGrype, match.Vulnerability.Severity),
			ID:           orUnknown(match.Vulnerability.ID),
			Subject:      subjectAtVersion(match.Artifact.Name, match.Artifact.Version),
			Description:  match.Vulnerability.Description,
			SourceReport: path,
			FixedIn:      match.Vulnerability.Fix.Versions,
		})
	}
	return deduplicate(result), nil
}
