package adapters

import (
	"bytes"
	"encoding/json"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// checkovReport is one framework section of a Checkov run. Multi-framework
// scans emit an array of these, single-framework scans a lone object.
type checkovReport struct {
	CheckType string         `json:"check_type"`
	Results   checkovResults `json:"results"`
	Summary   checkovSummary `json:"summary"`
}

type checkovResults struct {
	FailedChecks []checkovCheck `json:"failed_checks"`
}

type checkovCheck struct {
	CheckID   string  `json:"check_id"`
	CheckName string  `json:"check_name"`
	FilePath  string  `json:"file_path"`
	Resource  string  `json:"resource"`
	Severity  *string `json:"severity"`
	Guideline string  `json:"guideline"`
}

type checkovSummary struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ParseCheckovFile extracts every failed check, whatever its severity.
// Checks without a severity (the common case without a platform API key)
// come through as Unknown rather than being dropped.
func ParseCheckovFile(path string) ([]findings.Finding, error) {
	data, err := readReport(findings.ToolCheckov, path)
	if err != nil {
		return nil, err
	}
	return parseCheckovBytes(path, data)
}

func parseCheckovBytes(path string, data []byte) ([]findings.Finding, error) {
	reports, err := decodeCheckovReports(data)
	if err != nil {
		return nil, errors.NewParseError(string(findings.ToolCheckov), path, err)
	}

	var result []findings.Finding
	for _, report := range reports {
		for _, check := range report.Results.FailedChecks {
			severity := ""
			if check.Severity != nil {
				severity = *check.Severity
			}
			description := check.CheckName
			if description == "" {
				description = check.Resource
			}
			result = append(result, findings.Finding{
				Tool:         findings.ToolCheckov,
				Severity:     findings.Normalize(findings.ToolCheckov, severity),
				ID:           orUnknown(check.CheckID),
				Subject:      orUnknown(check.FilePath),
				Description:  description,
				SourceReport: path,
			})
		}
	}
	if result == nil {
		result = []findings.Finding{}
	}
	return deduplicate(result), nil
}

func decodeCheckovReports(data []byte) ([]checkovReport, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var reports []checkovReport
		if err := json.Unmarshal(data, &reports); err != nil {
			return nil, err
		}
		return reports, nil
	}
	var report checkovReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return []checkovReport{report}, nil
}
