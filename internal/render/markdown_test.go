package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scan-io-git/reportio/internal/aggregator"
	"github.com/scan-io-git/reportio/internal/findings"
)

func TestSummaryMarkdown(t *testing.T) {
	verified := true
	report := buildReport([]findings.Finding{
		{Tool: findings.ToolGrype, Severity: findings.SeverityHigh, ID: "CVE-2023-6277", Subject: "tiff @ 4.7.1-r0", Description: "out of memory", FixedIn: []string{"4.7.1-r1"}, SourceReport: "r/grype-a-results.json"},
		{Tool: findings.ToolTruffleHog, Severity: findings.SeverityHigh, ID: "AWS", Subject: "prod.env", Description: "AWS access key", Verified: &verified, SourceReport: "r/trufflehog-a-results.json"},
	}, findings.ToolGrype, findings.ToolTruffleHog)
	report.TopSubjects = []aggregator.SubjectCount{{Subject: "tiff @ 4.7.1-r0", Count: 1}}

	output := SummaryMarkdown(report, testOptions())

	for _, severity := range findings.AllSeverities {
		if !strings.Contains(output, "## "+string(severity)+" (") {
			t.Errorf("missing section for %q", severity)
		}
	}
	if !strings.Contains(output, "## Critical (0)\n\nNo findings.") {
		t.Error("empty severity section must carry the placeholder")
	}
	if !strings.Contains(output, "### Grype") || !strings.Contains(output, "### TruffleHog") {
		t.Error("findings must be grouped per tool inside a severity section")
	}
	if !strings.Contains(output, "- **CVE-2023-6277** in tiff @ 4.7.1-r0: out of memory (fixed in: 4.7.1-r1)") {
		t.Errorf("grype line malformed:\n%s", output)
	}
	if !strings.Contains(output, "- **AWS** in prod.env: AWS access key (verified)") {
		t.Errorf("verified secret must carry the marker:\n%s", output)
	}
	if !strings.Contains(output, "## Most Affected Subjects") {
		t.Error("missing most affected subjects section")
	}

	// Severity sections keep the fixed order.
	if strings.Index(output, "## Critical") > strings.Index(output, "## High") {
		t.Error("Critical section must precede High")
	}
}

func TestSummaryMarkdownWarnings(t *testing.T) {
	report := buildReport(nil, findings.ToolGrype)
	report.Warnings = []aggregator.Warning{
		{Tool: findings.ToolTrivy, File: "r/trivy-a-results.json", Reason: "unexpected end of JSON input"},
	}

	output := SummaryMarkdown(report, testOptions())
	if !strings.Contains(output, "## Parse Warnings") {
		t.Fatal("missing parse warnings section")
	}
	if !strings.Contains(output, "trivy-a-results.json") {
		t.Error("warning must name the offending file")
	}
}

func TestReportMarkdown(t *testing.T) {
	list := []findings.Finding{
		{Tool: findings.ToolClamAV, Severity: findings.SeverityCritical, ID: "Eicar-Signature", Subject: "/srv/data/eicar.txt", SourceReport: "r/clamav-detailed.log"},
	}

	output := ReportMarkdown(findings.ToolClamAV, "r/clamav-detailed.log", list, testOptions())
	if !strings.Contains(output, "# ClamAV Findings") {
		t.Error("missing tool heading")
	}
	if !strings.Contains(output, "## Critical (1)") {
		t.Error("missing severity section")
	}
	if strings.Contains(output, "## High") {
		t.Error("per-report rendering must skip empty severity sections")
	}
}

func TestReportMarkdownEmpty(t *testing.T) {
	output := ReportMarkdown(findings.ToolGrype, "r/grype-base-results.json", nil, testOptions())
	if !strings.Contains(output, "No findings.") {
		t.Error("empty report must carry the placeholder")
	}
	if !strings.Contains(output, "Findings: 0") {
		t.Error("empty report must state the zero count")
	}
}

func TestMarkdownTruncatesWithEllipsis(t *testing.T) {
	long := strings.Repeat("a", 400)
	list := []findings.Finding{
		{Tool: findings.ToolTrivy, Severity: findings.SeverityHigh, ID: "CVE-1", Subject: "curl", Description: long, SourceReport: "r/trivy-a-results.json"},
	}

	output := ReportMarkdown(findings.ToolTrivy, "r/trivy-a-results.json", list, testOptions())
	if strings.Contains(output, long) {
		t.Error("description must be truncated")
	}
	if !strings.Contains(output, strings.Repeat("a", findings.DescriptionLimit-3)+"...") {
		t.Error("truncated description must end with an ellipsis at the limit")
	}
}

func TestWriteSummaryMarkdown(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteSummaryMarkdown(buildReport(nil), testOptions(), dir)
	if err != nil {
		t.Fatalf("WriteSummaryMarkdown() error = %v", err)
	}
	if filepath.Base(path) != SummaryMarkdownFile {
		t.Errorf("wrote %s, want %s", filepath.Base(path), SummaryMarkdownFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read summary: %v", err)
	}
	if !strings.Contains(string(data), "Total findings: 0") {
		t.Error("written summary missing the totals line")
	}
}
