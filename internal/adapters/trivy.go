package adapters

import (
	"encoding/json"
	"strings"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

type trivyReport struct {
	Results []trivyResult `json:"Results"`
}

type trivyResult struct {
	Target          string               `json:"Target"`
	Vulnerabilities []trivyVulnerability `json:"Vulnerabilities"`
}

type trivyVulnerability struct {
	VulnerabilityID  string `json:"VulnerabilityID"`
	PkgName          string `json:"PkgName"`
	InstalledVersion string `json:"InstalledVersion"`
	FixedVersion     string `json:"FixedVersion"`
	Severity         string `json:"Severity"`
	Title            string `json:"Title"`
	Description      string `json:"Description"`
}

// ParseTrivyFile normalizes every vulnerability of every result block of a
// Trivy report.
func ParseTrivyFile(path string) ([]findings.Finding, error) {
	data, err := readReport(findings.ToolTrivy, path)
	if err != nil {
		return nil, err
	}
	return parseTrivyBytes(path, data)
}

func parseTrivyBytes(path string, data []byte) ([]findings.Finding, error) {
	var report trivyReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.NewParseError(string(findings.ToolTrivy), path, err)
	}

	var result []findings.Finding
	for _, res := range report.Results {
		for _, vuln := range res.Vulnerabilities {
			description := vuln.Title
			if description == "" {
				description = vuln.Description
			}

			result = append(result, findings.Finding{
				Tool:         findings.ToolTrivy,
				Severity:     findings.Normalize(findings.ToolTrivy, vuln.Severity),
				ID:           orUnknown(vuln.VulnerabilityID),
				Subject:      vuln.PkgName,
				Description:  description,
				SourceReport: path,
				FixedIn:      splitVersions(vuln.FixedVersion),
			})
		}
	}
	return deduplicate(result), nil
}

// splitVersions turns Trivy's comma-separated fixed-version field into a list.
func splitVersions(fixed string) []string {
	if strings.TrimSpace(fixed) == "" {
		return nil
	}
	parts := strings.Split(fixed, ",")
	versions := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			versions = append(versions, v)
		}
	}
	return versions
}
