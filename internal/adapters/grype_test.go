package adapters

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

func writeReportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

func TestParseGrypeFile(t *testing.T) {
	report := `{
		"matches": [
			{
				"vulnerability": {
					"id": "CVE-2023-6277",
					"severity": "High",
					"description": "An out-of-memory flaw was found in libtiff.",
					"fix": {"versions": ["4.7.1-r1"], "state": "fixed"}
				},
				"artifact": {"name": "tiff", "version": "4.7.1-r0"}
			}
		]
	}`
	path := writeReportFile(t, "grype-image-results.json", report)

	got, err := ParseGrypeFile(path)
	if err != nil {
		t.Fatalf("ParseGrypeFile() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ParseGrypeFile() returned %d findings, want 1", len(got))
	}

	finding := got[0]
	if finding.Tool != findings.ToolGrype {
		t.Errorf("Tool = %q, want %q", finding.Tool, findings.ToolGrype)
	}
	if finding.ID != "CVE-2023-6277" {
		t.Errorf("ID = %q, want %q", finding.ID, "CVE-2023-6277")
	}
	if finding.Subject != "tiff @ 4.7.1-r0" {
		t.Errorf("Subject = %q, want %q", finding.Subject, "tiff @ 4.7.1-r0")
	}
	if finding.Severity != findings.SeverityHigh {
		t.Errorf("Severity = %q, want %q", finding.Severity, findings.SeverityHigh)
	}
	if finding.SourceReport != path {
		t.Errorf("SourceReport = %q, want %q", finding.SourceReport, path)
	}
	if len(finding.FixedIn) != 1 || finding.FixedIn[0] != "4.7.1-r1" {
		t.Errorf("FixedIn = %v, want [4.7.1-r1]", finding.FixedIn)
	}
}

func TestParseGrypeFileSeverities(t *testing.T) {
	tests := []struct {
		native   string
		expected findings.Severity
	}{
		{"Critical", findings.SeverityCritical},
		{"critical", findings.SeverityCritical},
		{"HIGH", findings.SeverityHigh},
		{"Medium", findings.SeverityMedium},
		{"low", findings.SeverityLow},
		{"Negligible", findings.SeverityNegligible},
		{"", findings.SeverityUnknown},
		{"Moderate", findings.SeverityUnknown},
	}

	for _, tt := range tests {
		report := `{"matches":[{"vulnerability":{"id":"CVE-1","severity":"` + tt.native +
			`"},"artifact":{"name":"pkg","version":"1.0"}}]}`
		got, err := parseGrypeBytes("grype-test-results.json", []byte(report))
		if err != nil {
			t.Fatalf("parseGrypeBytes(%q) error = %v", tt.native, err)
		}
		if len(got) != 1 {
			t.Fatalf("parseGrypeBytes(%q) returned %d findings, want 1", tt.native, len(got))
		}
		if got[0].Severity != tt.expected {
			t.Errorf("severity %q normalized to %q, want %q", tt.native, got[0].Severity, tt.expected)
		}
	}
}

func TestParseGrypeFileEmptyMatches(t *testing.T) {
	path := writeReportFile(t, "grype-base-results.json", `{"matches": []}`)

	got, err := ParseGrypeFile(path)
	if err != nil {
		t.Fatalf("ParseGrypeFile() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ParseGrypeFile() returned %d findings, want 0", len(got))
	}
}

func TestParseGrypeFileMalformed(t *testing.T) {
	path := writeReportFile(t, "grype-bad-results.json", `{"matches": [`)

	got, err := ParseGrypeFile(path)
	if err == nil {
		t.Fatalf("ParseGrypeFile() expected error for malformed report")
	}
	var parseErr *errors.ParseError
	if !stderrors.As(err, &parseErr) {
		t.Fatalf("ParseGrypeFile() error = %T, want *errors.ParseError", err)
	}
	if parseErr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", parseErr.Path, path)
	}
	if len(got) != 0 {
		t.Errorf("ParseGrypeFile() returned %d findings alongside error, want 0", len(got))
	}
}

func TestParseGrypeFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grype-missing-results.json")

	_, err := ParseGrypeFile(path)
	var missingErr *errors.MissingReportError
	if !stderrors.As(err, &missingErr) {
		t.Fatalf("ParseGrypeFile() error = %T, want *errors.MissingReportError", err)
	}
}

func TestParseGrypeFileDeduplicates(t *testing.T) {
	match := `{"vulnerability":{"id":"CVE-2024-0001","severity":"High","description":"dup"},"artifact":{"name":"zlib","version":"1.3"}}`
	report := `{"matches":[` + match + `,` + match + `]}`

	got, err := parseGrypeBytes("grype-dup-results.json", []byte(report))
	if err != nil {
		t.Fatalf("parseGrypeBytes() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("parseGrypeBytes() returned %d findings, want 1 after deduplication", len(got))
	}
}
