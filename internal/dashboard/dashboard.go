// Package dashboard recomputes per-tool security posture from the raw
// reports and renders it as a single static page. Unlike the consolidated
// findings report it keeps tool-native metrics (check pass rates, secret
// verification splits, coverage) that the finding model flattens away.
package dashboard

import (
	"strconv"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/reportio/internal/adapters"
	"github.com/scan-io-git/reportio/internal/findings"
)

// Status is a per-tool traffic light. The zero value is not meaningful;
// analyzers always return one of the three constants.
type Status string

const (
	StatusGood     Status = "good"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

var statusRank = map[Status]int{
	StatusGood:     0,
	StatusWarning:  1,
	StatusCritical: 2,
}

// worst returns the most severe of the given statuses.
func worst(statuses []Status) Status {
	result := StatusGood
	for _, status := range statuses {
		if statusRank[status] > statusRank[result] {
			result = status
		}
	}
	return result
}

// Metric is one number on a tool card.
type Metric struct {
	Value string
	Label string
}

// Card is the rendered posture of one tool.
type Card struct {
	Tool    string
	Abbrev  string
	Caption string
	Status  Status
	HasData bool
	Metrics []Metric

	// ReportsLink points at the per-tool rendered report tree, relative to
	// the dashboard file. Empty when no rendered tree exists for the tool.
	ReportsLink string
}

// Posture is the analyzed state of the whole reports folder.
type Posture struct {
	Overall Status
	Message string
	Cards   []Card
}

// toolReports collects everything discovered for one tool.
type toolReports struct {
	findings []findings.Finding
	parsed   int
	failed   int
	paths    []string
}

// Analyze walks root for raw reports, parses them with the standard
// adapters plus the dashboard-only sidecar files, and computes one card
// per tool. Unreadable reports degrade the affected card, never the walk.
func Analyze(logger hclog.Logger, root string) (*Posture, error) {
	inputs, err := adapters.Discover(root)
	if err != nil {
		return nil, err
	}

	perTool := make(map[findings.Tool]*toolReports)
	for _, input := range inputs {
		data := perTool[input.Tool]
		if data == nil {
			data = &toolReports{}
			perTool[input.Tool] = data
		}

		list, err := adapters.ParseFile(input.Tool, input.Path)
		if err != nil {
			logger.Warn("skipping report", "tool", input.Tool, "path", input.Path, "error", err)
			data.failed++
			continue
		}
		data.parsed++
		data.paths = append(data.paths, input.Path)
		data.findings = append(data.findings, list...)
	}

	side, err := discoverSidecars(root)
	if err != nil {
		return nil, err
	}

	posture := &Posture{}
	var contributions []Status
	// collect pairs one card with its contribution to the overall banner.
	// Tools whose reports are optional contribute good when absent even
	// though their card warns about the missing data.
	collect := func(card Card, contribution Status) {
		posture.Cards = append(posture.Cards, card)
		contributions = append(contributions, contribution)
	}

	collect(grypeCard(perTool[findings.ToolGrype], side.sboms))
	collect(trivyCard(perTool[findings.ToolTrivy]))
	collect(truffleHogCard(perTool[findings.ToolTruffleHog]))
	collect(checkovCard(logger, perTool[findings.ToolCheckov]))
	collect(clamAVCard(logger, perTool[findings.ToolClamAV], side.clamav))
	collect(xeolCard(perTool[findings.ToolXeol]))
	collect(sonarQubeCard(logger, perTool[findings.ToolSonarQube]))
	collect(helmCard(logger, side.helm))

	posture.Overall = worst(contributions)
	posture.Message = statusMessage(posture.Overall)

	logger.Info("posture analysis complete", "inputs", len(inputs), "overall", posture.Overall)
	return posture, nil
}

func statusMessage(status Status) string {
	switch status {
	case StatusCritical:
		return "Critical security issues detected. Immediate action required."
	case StatusWarning:
		return "Security issues detected. Review and remediation recommended."
	default:
		return "No critical security issues detected. Continue monitoring."
	}
}

// severityLadder is the common vulnerability ladder: any Critical finding
// is critical, any High is a warning, everything else is good.
func severityLadder(counts map[findings.Severity]int) Status {
	switch {
	case counts[findings.SeverityCritical] > 0:
		return StatusCritical
	case counts[findings.SeverityHigh] > 0:
		return StatusWarning
	default:
		return StatusGood
	}
}

func severityTally(list []findings.Finding) map[findings.Severity]int {
	counts := make(map[findings.Severity]int)
	for _, finding := range list {
		counts[finding.Severity]++
	}
	return counts
}

func grypeCard(data *toolReports, sboms int) (Card, Status) {
	if data == nil {
		data = &toolReports{}
	}
	counts := severityTally(data.findings)
	status := severityLadder(counts)

	card := Card{
		Tool:    string(findings.ToolGrype),
		Abbrev:  "GP",
		Caption: "Vulnerability Scanning",
		Status:  status,
		HasData: data.parsed > 0,
		Metrics: []Metric{
			{Value: strconv.Itoa(counts[findings.SeverityCritical]), Label: "Critical"},
			{Value: strconv.Itoa(counts[findings.SeverityHigh]), Label: "High"},
			{Value: strconv.Itoa(sboms), Label: "SBOMs"},
		},
		ReportsLink: reportsLink(findings.ToolGrype),
	}
	return card, status
}

func trivyCard(data *toolReports) (Card, Status) {
	if data == nil {
		data = &toolReports{}
	}
	counts := severityTally(data.findings)
	status := severityLadder(counts)

	card := Card{
		Tool:    string(findings.ToolTrivy),
		Abbrev:  "TV",
		Caption: "Container Security",
		Status:  status,
		HasData: data.parsed > 0,
		Metrics: []Metric{
			{Value: strconv.Itoa(counts[findings.SeverityCritical]), Label: "Critical"},
			{Value: strconv.Itoa(counts[findings.SeverityHigh]), Label: "High"},
			{Value: strconv.Itoa(data.parsed), Label: "Targets"},
		},
		ReportsLink: reportsLink(findings.ToolTrivy),
	}
	return card, status
}

func truffleHogCard(data *toolReports) (Card, Status) {
	if data == nil {
		data = &toolReports{}
	}

	verified, unverified := 0, 0
	detectors := make(map[string]struct{})
	for _, finding := range data.findings {
		detectors[finding.ID] = struct{}{}
		if finding.Verified != nil && *finding.Verified {
			verified++
		} else {
			unverified++
		}
	}

	status := StatusGood
	switch {
	case verified > 0:
		status = StatusCritical
	case unverified > 0:
		status = StatusWarning
	}

	card := Card{
		Tool:    string(findings.ToolTruffleHog),
		Abbrev:  "TH",
		Caption: "Secret Detection",
		Status:  status,
		HasData: data.parsed > 0,
		Metrics: []Metric{
			{Value: strconv.Itoa(verified), Label: "Verified"},
			{Value: strconv.Itoa(unverified), Label: "Unverified"},
			{Value: strconv.Itoa(len(detectors)), Label: "Detectors"},
		},
		ReportsLink: reportsLink(findings.ToolTruffleHog),
	}
	return card, status
}

func xeolCard(data *toolReports) (Card, Status) {
	if data == nil {
		data = &toolReports{}
	}
	eol := len(data.findings)

	status := StatusGood
	if eol > 0 {
		status = StatusWarning
	}

	risk := "Low"
	switch {
	case eol > 5:
		risk = "High"
	case eol > 0:
		risk = "Med"
	}

	card := Card{
		Tool:    string(findings.ToolXeol),
		Abbrev:  "XL",
		Caption: "EOL Detection",
		Status:  status,
		HasData: data.parsed > 0,
		Metrics: []Metric{
			{Value: strconv.Itoa(eol), Label: "EOL Items"},
			{Value: risk, Label: "Risk"},
		},
		ReportsLink: reportsLink(findings.ToolXeol),
	}
	return card, status
}

func reportsLink(tool findings.Tool) string {
	return "html-reports/" + string(tool) + "/"
}
