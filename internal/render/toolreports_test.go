package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/reportio/internal/adapters"
	"github.com/scan-io-git/reportio/internal/findings"
)

func TestWriteToolReports(t *testing.T) {
	report := buildReport([]findings.Finding{
		{Tool: findings.ToolGrype, Severity: findings.SeverityHigh, ID: "CVE-2023-6277", Subject: "tiff @ 4.7.1-r0", SourceReport: "/results/image/grype-app-results.json"},
	}, findings.ToolGrype, findings.ToolTrivy)
	report.ParsedInputs = []adapters.Input{
		{Tool: findings.ToolGrype, Path: "/results/image/grype-app-results.json"},
		{Tool: findings.ToolTrivy, Path: "/results/image/trivy-app-results.json"},
	}

	outputFolder := t.TempDir()
	if err := WriteToolReports(hclog.NewNullLogger(), report, testOptions(), outputFolder); err != nil {
		t.Fatalf("WriteToolReports() error = %v", err)
	}

	expected := []string{
		"markdown-reports/Grype/grype-app-results.md",
		"markdown-reports/Trivy/trivy-app-results.md",
		"html-reports/Grype/grype-app-results.html",
		"html-reports/Trivy/trivy-app-results.html",
	}
	for _, rel := range expected {
		path := filepath.Join(outputFolder, filepath.FromSlash(rel))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output file %s: %v", rel, err)
		}
	}

	// The trivy report parsed clean, so its files state that.
	data, err := os.ReadFile(filepath.Join(outputFolder, "markdown-reports", "Trivy", "trivy-app-results.md"))
	if err != nil {
		t.Fatalf("reading trivy markdown: %v", err)
	}
	if !strings.Contains(string(data), "No findings.") {
		t.Error("zero-findings report file must carry the placeholder")
	}

	data, err = os.ReadFile(filepath.Join(outputFolder, "markdown-reports", "Grype", "grype-app-results.md"))
	if err != nil {
		t.Fatalf("reading grype markdown: %v", err)
	}
	if !strings.Contains(string(data), "CVE-2023-6277") {
		t.Error("grype report file must list its finding")
	}
}

func TestWriteToolReportsNoParsedInputs(t *testing.T) {
	outputFolder := t.TempDir()
	if err := WriteToolReports(hclog.NewNullLogger(), buildReport(nil), testOptions(), outputFolder); err != nil {
		t.Fatalf("WriteToolReports() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(outputFolder, MarkdownTreeDir)); !os.IsNotExist(err) {
		t.Error("no trees expected when nothing parsed")
	}
}
