package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/scan-io-git/reportio/internal/aggregator"
	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
	"github.com/scan-io-git/reportio/pkg/shared/files"
)

// severityCounts marshals with the fixed severity order instead of the
// alphabetical key order encoding/json gives maps.
type severityCounts map[findings.Severity]int

func (c severityCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, severity := range findings.AllSeverities {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%d", string(severity), c[severity])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// toolSummaries marshals per-tool counts in canonical tool order.
type toolSummaries map[findings.Tool]severityCounts

func (t toolSummaries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, tool := range findings.AllTools {
		counts, ok := t[tool]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		inner, err := counts.MarshalJSON()
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q:%s", string(tool), inner)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type summarySection struct {
	ScanTimestamp string               `json:"scan_timestamp"`
	ReportID      string               `json:"report_id"`
	TotalCritical int                  `json:"total_critical"`
	TotalHigh     int                  `json:"total_high"`
	ToolsAnalyzed []findings.Tool      `json:"tools_analyzed"`
	SummaryByTool toolSummaries        `json:"summary_by_tool"`
	ParseWarnings []aggregator.Warning `json:"parse_warnings"`
}

type jsonSummary struct {
	Summary          summarySection     `json:"summary"`
	CriticalFindings []findings.Finding `json:"critical_findings"`
	HighFindings     []findings.Finding `json:"high_findings"`
}

// SummaryJSON renders the machine-readable summary. Only Critical and High
// findings are listed individually; every other severity is visible through
// summary_by_tool. Output ends with a newline and is byte-identical across
// reruns of the same inputs, scan_timestamp aside.
func SummaryJSON(report *aggregator.Report, opts Options) ([]byte, error) {
	summaryByTool := make(toolSummaries, len(report.CountsByTool))
	for tool, counts := range report.CountsByTool {
		summaryByTool[tool] = severityCounts(counts)
	}

	toolsAnalyzed := report.ToolsAnalyzed
	if toolsAnalyzed == nil {
		toolsAnalyzed = []findings.Tool{}
	}
	warnings := report.Warnings
	if warnings == nil {
		warnings = []aggregator.Warning{}
	}

	document := jsonSummary{
		Summary: summarySection{
			ScanTimestamp: opts.timestamp(),
			ReportID:      report.ReportID,
			TotalCritical: report.CountsBySeverity[findings.SeverityCritical],
			TotalHigh:     report.CountsBySeverity[findings.SeverityHigh],
			ToolsAnalyzed: toolsAnalyzed,
			SummaryByTool: summaryByTool,
			ParseWarnings: warnings,
		},
		CriticalFindings: listed(report.Findings, findings.SeverityCritical, opts.limit()),
		HighFindings:     listed(report.Findings, findings.SeverityHigh, opts.limit()),
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, errors.NewRenderError("json", err)
	}
	return append(data, '\n'), nil
}

// WriteSummaryJSON renders into outputFolder and returns the file path.
func WriteSummaryJSON(report *aggregator.Report, opts Options, outputFolder string) (string, error) {
	data, err := SummaryJSON(report, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputFolder, SummaryJSONFile)
	if err := files.WriteJsonFile(path, data); err != nil {
		return "", errors.NewRenderError("json", err)
	}
	return path, nil
}

// listed filters one severity for individual listing, descriptions cut to
// the display limit. truncatedAll allocates, so empty buckets marshal as []
// rather than null.
func listed(list []findings.Finding, severity findings.Severity, limit int) []findings.Finding {
	return truncatedAll(filterBySeverity(list, severity), limit)
}
