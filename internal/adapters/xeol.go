package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

type xeolReport struct {
	Matches []xeolMatch `json:"matches"`
}

type xeolMatch struct {
	Cycle    xeolCycle    `json:"Cycle"`
	Artifact xeolArtifact `json:"artifact"`
}

type xeolCycle struct {
	ProductName string `json:"ProductName"`
	ReleaseDate string `json:"ReleaseDate"`
	Eol         string `json:"Eol"`
}

type xeolArtifact struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ParseXeolFile extracts end-of-life packages. Running outdated software is
// an exposure rather than an exploit, so every match normalizes to Medium.
func ParseXeolFile(path string) ([]findings.Finding, error) {
	data, err := readReport(findings.ToolXeol, path)
	if err != nil {
		return nil, err
	}
	return parseXeolBytes(path, data)
}

func parseXeolBytes(path string, data []byte) ([]findings.Finding, error) {
	var report xeolReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.NewParseError(string(findings.ToolXeol), path, err)
	}

	result := make([]findings.Finding, 0, len(report.Matches))
	for _, match := range report.Matches {
		id := match.Artifact.Name
		if id == "" {
			id = match.Cycle.ProductName
		}

		description := ""
		if match.Cycle.Eol != "" {
			description = fmt.Sprintf("End of life: %s", match.Cycle.Eol)
		}

		result = append(result, findings.Finding{
			Tool:         findings.ToolXeol,
			Severity:     findings.Normalize(findings.ToolXeol, ""),
			ID:           orUnknown(id),
			Subject:      subjectAtVersion(match.Artifact.Name, match.Artifact.Version),
			Description:  description,
			SourceReport: path,
		})
	}

	return deduplicate(result), nil
}
