package render

import (
	"strings"
	"testing"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/internal/git"
)

func TestSummaryHTML(t *testing.T) {
	report := buildReport([]findings.Finding{
		{Tool: findings.ToolGrype, Severity: findings.SeverityCritical, ID: "CVE-2024-0001", Subject: "libssl @ 3.0.1", Description: "heap overflow", SourceReport: "r/grype-a-results.json"},
	}, findings.ToolGrype)

	data, err := SummaryHTML(report, testOptions())
	if err != nil {
		t.Fatalf("SummaryHTML() error = %v", err)
	}
	page := string(data)

	if !strings.HasPrefix(page, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if strings.Contains(page, "<script") {
		t.Error("summary page must not carry scripts")
	}
	for _, severity := range findings.AllSeverities {
		if !strings.Contains(page, `<span class="label">`+string(severity)+`</span>`) {
			t.Errorf("missing summary card for %q", severity)
		}
	}
	if !strings.Contains(page, "No findings") {
		t.Error("empty severity buckets must carry the placeholder")
	}
	if !strings.Contains(page, "CVE-2024-0001") {
		t.Error("finding not rendered")
	}
	if !strings.Contains(page, "23rd August 2026") {
		t.Errorf("missing formatted timestamp:\n%s", page[:400])
	}
}

func TestSummaryHTMLEscapesContent(t *testing.T) {
	report := buildReport([]findings.Finding{
		{Tool: findings.ToolCheckov, Severity: findings.SeverityHigh, ID: "CKV_1", Subject: "/main.tf", Description: `<script>alert("x")</script>`, SourceReport: "r/checkov-results.json"},
	}, findings.ToolCheckov)

	data, err := SummaryHTML(report, testOptions())
	if err != nil {
		t.Fatalf("SummaryHTML() error = %v", err)
	}
	page := string(data)

	if strings.Contains(page, `<script>alert`) {
		t.Error("finding content must be escaped")
	}
	if !strings.Contains(page, "&lt;script&gt;") {
		t.Error("expected escaped script tag in output")
	}
}

func TestSummaryHTMLRepositoryHeader(t *testing.T) {
	branch := "main"
	commit := "0123456789abcdef0123456789abcdef01234567"
	origin := "https://example.com/acme/service"

	opts := testOptions()
	opts.Repository = &git.RepositoryMetadata{
		BranchName:         &branch,
		CommitHash:         &commit,
		RepositoryFullName: &origin,
	}

	data, err := SummaryHTML(buildReport(nil), opts)
	if err != nil {
		t.Fatalf("SummaryHTML() error = %v", err)
	}
	page := string(data)

	if !strings.Contains(page, "https://example.com/acme/service") {
		t.Error("missing origin in header")
	}
	if !strings.Contains(page, "0123456789ab") || strings.Contains(page, commit) {
		t.Error("commit must render shortened")
	}
}

func TestReportHTMLEmpty(t *testing.T) {
	data, err := ReportHTML(findings.ToolXeol, "r/xeol-base-results.json", nil, testOptions())
	if err != nil {
		t.Fatalf("ReportHTML() error = %v", err)
	}
	if !strings.Contains(string(data), "No findings") {
		t.Error("empty report page must carry the placeholder")
	}
}

func TestReportHTMLVerifiedBadge(t *testing.T) {
	verified := true
	list := []findings.Finding{
		{Tool: findings.ToolTruffleHog, Severity: findings.SeverityHigh, ID: "AWS", Subject: "prod.env", Verified: &verified, SourceReport: "r/trufflehog-a-results.json"},
	}

	data, err := ReportHTML(findings.ToolTruffleHog, "r/trufflehog-a-results.json", list, testOptions())
	if err != nil {
		t.Fatalf("ReportHTML() error = %v", err)
	}
	if !strings.Contains(string(data), "(verified)") {
		t.Error("verified secret must carry the badge")
	}
}
