package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scan-io-git/reportio/internal/aggregator"
	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// SummaryMarkdown renders the consolidated report: totals, every severity
// section in fixed order with findings grouped per tool, the most affected
// subjects and any parse warnings.
func SummaryMarkdown(report *aggregator.Report, opts Options) string {
	var output strings.Builder

	fmt.Fprintf(&output, "# %s\n\n", opts.title())
	fmt.Fprintf(&output, "Generated: %s\n\n", opts.timestamp())
	fmt.Fprintf(&output, "Report ID: `%s`\n\n", report.ReportID)
	fmt.Fprintf(&output, "Tools analyzed: %s\n\n", joinTools(report.ToolsAnalyzed))
	fmt.Fprintf(&output, "Total findings: %d\n\n", len(report.Findings))

	for _, severity := range findings.AllSeverities {
		bucket := filterBySeverity(report.Findings, severity)
		fmt.Fprintf(&output, "## %s (%d)\n\n", severity, len(bucket))
		if len(bucket) == 0 {
			output.WriteString("No findings.\n\n")
			continue
		}
		writeMarkdownFindingsByTool(&output, bucket, opts.limit())
	}

	if len(report.TopSubjects) > 0 {
		output.WriteString("## Most Affected Subjects\n\n")
		for i, subject := range report.TopSubjects {
			fmt.Fprintf(&output, "%d. %s: %d findings\n", i+1, subject.Subject, subject.Count)
		}
		output.WriteString("\n")
	}

	if len(report.Warnings) > 0 {
		output.WriteString("## Parse Warnings\n\n")
		for _, warning := range report.Warnings {
			fmt.Fprintf(&output, "- %s: %s (%s)\n", warning.Tool, warning.File, warning.Reason)
		}
		output.WriteString("\n")
	}

	return output.String()
}

// WriteSummaryMarkdown renders into outputFolder and returns the file path.
func WriteSummaryMarkdown(report *aggregator.Report, opts Options, outputFolder string) (string, error) {
	path := filepath.Join(outputFolder, SummaryMarkdownFile)
	if err := os.WriteFile(path, []byte(SummaryMarkdown(report, opts)), 0644); err != nil {
		return "", errors.NewRenderError("markdown", err)
	}
	return path, nil
}

// ReportMarkdown renders the findings of one raw report for the per-tool
// tree. Severity sections appear only when non-empty; a clean report gets a
// single placeholder line.
func ReportMarkdown(tool findings.Tool, reportPath string, list []findings.Finding, opts Options) string {
	var output strings.Builder

	fmt.Fprintf(&output, "# %s Findings\n\n", tool)
	fmt.Fprintf(&output, "Source report: `%s`\n\n", reportPath)
	fmt.Fprintf(&output, "Findings: %d\n\n", len(list))

	if len(list) == 0 {
		output.WriteString("No findings.\n")
		return output.String()
	}

	for _, severity := range findings.AllSeverities {
		bucket := filterBySeverity(list, severity)
		if len(bucket) == 0 {
			continue
		}
		fmt.Fprintf(&output, "## %s (%d)\n\n", severity, len(bucket))
		for _, finding := range bucket {
			output.WriteString(markdownFindingLine(finding, opts.limit()))
		}
		output.WriteString("\n")
	}

	return output.String()
}

func writeMarkdownFindingsByTool(output *strings.Builder, bucket []findings.Finding, limit int) {
	byTool := groupByTool(bucket)
	for _, tool := range findings.AllTools {
		toolFindings := byTool[tool]
		if len(toolFindings) == 0 {
			continue
		}
		fmt.Fprintf(output, "### %s\n\n", tool)
		for _, finding := range toolFindings {
			output.WriteString(markdownFindingLine(finding, limit))
		}
		output.WriteString("\n")
	}
}

func markdownFindingLine(finding findings.Finding, limit int) string {
	line := fmt.Sprintf("- **%s** in %s", finding.ID, finding.Subject)
	if description := findings.Truncate(finding.Description, limit); description != "" {
		line += ": " + description
	}
	if isVerified(finding) {
		line += " (verified)"
	}
	if len(finding.FixedIn) > 0 {
		line += fmt.Sprintf(" (fixed in: %s)", strings.Join(finding.FixedIn, ", "))
	}
	return line + "\n"
}

func joinTools(tools []findings.Tool) string {
	if len(tools) == 0 {
		return "none"
	}
	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = string(tool)
	}
	return strings.Join(names, ", ")
}
