package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/reportio/internal/aggregator"
	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// toolInformationURI backs the SARIF tool component for each scanner.
var toolInformationURI = map[findings.Tool]string{
	findings.ToolGrype:      "https://github.com/anchore/grype",
	findings.ToolTrivy:      "https://github.com/aquasecurity/trivy",
	findings.ToolTruffleHog: "https://github.com/trufflesecurity/trufflehog",
	findings.ToolCheckov:    "https://www.checkov.io",
	findings.ToolClamAV:     "https://www.clamav.net",
	findings.ToolXeol:       "https://github.com/xeol-io/xeol",
	findings.ToolSonarQube:  "https://www.sonarsource.com/products/sonarqube/",
}

// SarifReport converts the aggregate into SARIF 2.1.0 with one run per
// contributing tool, so SARIF-aware platforms can ingest the consolidated
// results.
func SarifReport(report *aggregator.Report) (*sarif.Report, error) {
	document, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, errors.NewRenderError("sarif", err)
	}

	byTool := groupByTool(report.Findings)
	for _, tool := range findings.AllTools {
		list := byTool[tool]
		if len(list) == 0 {
			continue
		}

		run := sarif.NewRunWithInformationURI(string(tool), toolInformationURI[tool])
		for _, finding := range list {
			level := toSarifLevel(finding.Severity)
			rule := run.AddRule(finding.ID).
				WithDescription(finding.Description).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{
					Level: level,
				})

			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(finding.Subject)),
			)

			result := sarif.NewRuleResult(rule.ID).
				WithMessage(sarif.NewTextMessage(sarifMessage(finding))).
				WithLevel(level).
				WithLocations([]*sarif.Location{location})
			run.AddResult(result)
		}
		document.AddRun(run)
	}

	return document, nil
}

// WriteSarif renders into outputFolder and returns the file path.
func WriteSarif(report *aggregator.Report, outputFolder string) (string, error) {
	document, err := SarifReport(report)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputFolder, SarifFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", errors.NewRenderError("sarif", err)
	}
	defer func() { _ = file.Close() }()

	if err := document.PrettyWrite(file); err != nil {
		return "", errors.NewRenderError("sarif", err)
	}
	return path, nil
}

func sarifMessage(finding findings.Finding) string {
	if finding.Description == "" {
		return finding.Subject
	}
	return fmt.Sprintf("%s: %s", finding.Subject, finding.Description)
}

func toSarifLevel(severity findings.Severity) string {
	switch severity {
	case findings.SeverityCritical, findings.SeverityHigh:
		return "error"
	case findings.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
