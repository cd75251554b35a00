package dashboard

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/reportio/internal/findings"
)

// Dashboard-only artifacts. They never enter the finding pipeline, so the
// adapters know nothing about them.
const (
	clamAVSidecarFile = "clamav-results.json"
	helmSidecarFile   = "helm-validation-results.json"
	sbomFilePattern   = "sbom-*.json"
)

type sidecarFiles struct {
	clamav []string
	helm   []string
	sboms  int
}

// discoverSidecars walks root for the sidecar documents that only the
// dashboard consumes.
func discoverSidecars(root string) (sidecarFiles, error) {
	var side sidecarFiles
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch name := d.Name(); {
		case name == clamAVSidecarFile:
			side.clamav = append(side.clamav, path)
		case name == helmSidecarFile:
			side.helm = append(side.helm, path)
		default:
			if ok, _ := filepath.Match(sbomFilePattern, name); ok {
				side.sboms++
			}
		}
		return nil
	})
	if err != nil {
		return sidecarFiles{}, err
	}
	sort.Strings(side.clamav)
	sort.Strings(side.helm)
	return side, nil
}

// checkovTallyReport keeps only the check list lengths and the summary
// block. The finding adapter ignores passed and skipped checks, so the
// pass rate has to come from a second look at the raw report.
type checkovTallyReport struct {
	Results struct {
		PassedChecks  []json.RawMessage `json:"passed_checks"`
		FailedChecks  []json.RawMessage `json:"failed_checks"`
		SkippedChecks []json.RawMessage `json:"skipped_checks"`
	} `json:"results"`
	Summary struct {
		Passed  int `json:"passed"`
		Failed  int `json:"failed"`
		Skipped int `json:"skipped"`
	} `json:"summary"`
}

func decodeCheckovTallies(data []byte) ([]checkovTallyReport, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var reports []checkovTallyReport
		if err := json.Unmarshal(data, &reports); err != nil {
			return nil, err
		}
		return reports, nil
	}
	var report checkovTallyReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return []checkovTallyReport{report}, nil
}

func checkovCard(logger hclog.Logger, data *toolReports) (Card, Status) {
	if data == nil {
		data = &toolReports{}
	}

	passed, failed, skipped := 0, 0, 0
	for _, path := range data.paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping pass-rate source", "tool", findings.ToolCheckov, "path", path, "error", err)
			continue
		}
		reports, err := decodeCheckovTallies(raw)
		if err != nil {
			logger.Warn("skipping pass-rate source", "tool", findings.ToolCheckov, "path", path, "error", err)
			continue
		}
		for _, report := range reports {
			p := len(report.Results.PassedChecks)
			f := len(report.Results.FailedChecks)
			s := len(report.Results.SkippedChecks)
			// Pruned exports carry only the summary block.
			if p+f+s == 0 {
				p, f, s = report.Summary.Passed, report.Summary.Failed, report.Summary.Skipped
			}
			passed += p
			failed += f
			skipped += s
		}
	}

	total := passed + failed + skipped
	card := Card{
		Tool:        string(findings.ToolCheckov),
		Abbrev:      "CK",
		Caption:     "IaC Security",
		HasData:     total > 0,
		ReportsLink: reportsLink(findings.ToolCheckov),
	}

	if total == 0 {
		card.Status = StatusWarning
		card.Metrics = []Metric{
			{Value: "0", Label: "Passed"},
			{Value: "0", Label: "Failed"},
			{Value: "N/A", Label: "Pass Rate"},
		}
		return card, StatusGood
	}

	rate := float64(passed) / float64(total) * 100
	switch {
	case rate < 70:
		card.Status = StatusCritical
	case rate < 90:
		card.Status = StatusWarning
	default:
		card.Status = StatusGood
	}
	card.Metrics = []Metric{
		{Value: strconv.Itoa(passed), Label: "Passed"},
		{Value: strconv.Itoa(failed), Label: "Failed"},
		{Value: strconv.FormatFloat(rate, 'f', 1, 64) + "%", Label: "Pass Rate"},
	}
	return card, card.Status
}

// clamAVSummary is the JSON sidecar some pipelines emit next to the scan
// log. FilesScanned is a pointer so an absent key renders as N/A instead
// of zero.
type clamAVSummary struct {
	ThreatsFound int  `json:"threats_found"`
	FilesScanned *int `json:"files_scanned"`
}

func clamAVCard(logger hclog.Logger, data *toolReports, sidecars []string) (Card, Status) {
	if data == nil {
		data = &toolReports{}
	}

	threats := 0
	files := "N/A"
	hasData := false

	for _, path := range sidecars {
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping antivirus summary", "path", path, "error", err)
			continue
		}
		var summary clamAVSummary
		if err := json.Unmarshal(raw, &summary); err != nil {
			logger.Warn("skipping antivirus summary", "path", path, "error", err)
			continue
		}
		threats = summary.ThreatsFound
		if summary.FilesScanned != nil {
			files = strconv.Itoa(*summary.FilesScanned)
		}
		hasData = true
		break
	}

	// No sidecar: fall back to the infections parsed out of the scan log.
	if !hasData && data.parsed > 0 {
		threats = len(data.findings)
		hasData = true
	}

	status := StatusWarning
	switch {
	case threats > 0:
		status = StatusCritical
	case hasData:
		status = StatusGood
	}

	threatsValue := "N/A"
	if hasData {
		threatsValue = strconv.Itoa(threats)
	}

	card := Card{
		Tool:    string(findings.ToolClamAV),
		Abbrev:  "CV",
		Caption: "Antivirus Scanning",
		Status:  status,
		HasData: hasData,
		Metrics: []Metric{
			{Value: threatsValue, Label: "Threats"},
			{Value: files, Label: "Files"},
			{Value: yesNo(hasData), Label: "Data"},
		},
		ReportsLink: reportsLink(findings.ToolClamAV),
	}

	contribution := status
	if !hasData {
		contribution = StatusGood
	}
	return card, contribution
}

// sonarExport covers the two metric-bearing shapes of SonarQube exports:
// the analysis-script format with test_results plus coverage blocks, and
// the web API format with component measures. Issue-only exports carry
// neither block and decode to an empty export.
type sonarExport struct {
	TestResults *sonarTestResults `json:"test_results"`
	Coverage    *sonarCoverage    `json:"coverage"`
	Component   *sonarComponent   `json:"component"`
}

type sonarTestResults struct {
	TotalTests  int `json:"total_tests"`
	PassedTests int `json:"passed_tests"`
	FailedTests int `json:"failed_tests"`
}

type sonarCoverage struct {
	StatementCoverage float64 `json:"statement_coverage"`
}

type sonarComponent struct {
	Measures []sonarMeasure `json:"measures"`
}

type sonarMeasure struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

func sonarQubeCard(logger hclog.Logger, data *toolReports) (Card, Status) {
	if data == nil {
		data = &toolReports{}
	}

	coverage := 0.0
	hasCoverage := false
	tests := "N/A"
	issues := len(data.findings)

	for _, path := range data.paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping quality metrics source", "path", path, "error", err)
			continue
		}
		var export sonarExport
		if err := json.Unmarshal(raw, &export); err != nil {
			// Free-form metric exports are tolerated, they just carry no
			// dashboard numbers.
			logger.Debug("no quality metrics in export", "path", path, "error", err)
			continue
		}

		switch {
		case export.TestResults != nil && export.Coverage != nil:
			coverage = export.Coverage.StatementCoverage
			hasCoverage = true
			tests = strconv.Itoa(export.TestResults.PassedTests)
			issues = export.TestResults.FailedTests
		case export.Component != nil:
			for _, measure := range export.Component.Measures {
				switch measure.Metric {
				case "coverage":
					if value, err := strconv.ParseFloat(measure.Value, 64); err == nil {
						coverage = value
						hasCoverage = true
					}
				case "tests":
					tests = measure.Value
				}
			}
		}
		if hasCoverage {
			break
		}
	}

	status := StatusWarning
	if hasCoverage {
		switch {
		case coverage >= 90:
			status = StatusGood
		case coverage >= 70:
			status = StatusWarning
		default:
			status = StatusCritical
		}
	}

	coverageValue := "N/A"
	if hasCoverage {
		coverageValue = strconv.FormatFloat(coverage, 'f', 1, 64) + "%"
	}

	card := Card{
		Tool:    string(findings.ToolSonarQube),
		Abbrev:  "SQ",
		Caption: "Code Quality Analysis",
		Status:  status,
		HasData: hasCoverage,
		Metrics: []Metric{
			{Value: coverageValue, Label: "Coverage"},
			{Value: tests, Label: "Tests"},
			{Value: strconv.Itoa(issues), Label: "Issues"},
		},
		ReportsLink: reportsLink(findings.ToolSonarQube),
	}

	contribution := status
	if !hasCoverage {
		contribution = StatusGood
	}
	return card, contribution
}

// helmValidation is the chart validation sidecar. Helm stays outside the
// finding pipeline entirely; this card is its only surface.
type helmValidation struct {
	ResourceCount *int  `json:"resource_count"`
	Valid         *bool `json:"valid"`
}

func helmCard(logger hclog.Logger, sidecars []string) (Card, Status) {
	resources := "N/A"
	valid := "N/A"
	hasData := len(sidecars) > 0

	for _, path := range sidecars {
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping chart validation summary", "path", path, "error", err)
			continue
		}
		var validation helmValidation
		if err := json.Unmarshal(raw, &validation); err != nil {
			logger.Warn("skipping chart validation summary", "path", path, "error", err)
			continue
		}
		if validation.ResourceCount != nil {
			resources = strconv.Itoa(*validation.ResourceCount)
		}
		valid = yesNo(validation.Valid == nil || *validation.Valid)
		break
	}

	status := StatusWarning
	if hasData {
		status = StatusGood
	}

	card := Card{
		Tool:    "Helm",
		Abbrev:  "HM",
		Caption: "Chart Validation",
		Status:  status,
		HasData: hasData,
		Metrics: []Metric{
			{Value: resources, Label: "Resources"},
			{Value: valid, Label: "Valid"},
			{Value: yesNo(hasData), Label: "Data"},
		},
	}
	return card, StatusGood
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
