package adapters

import (
	stderrors "errors"
	"testing"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

func TestParseCheckovFileSingleFramework(t *testing.T) {
	report := `{
		"check_type": "terraform",
		"results": {
			"failed_checks": [
				{"check_id": "CKV_AWS_20", "check_name": "S3 Bucket has an ACL defined which allows public READ access", "file_path": "/s3.tf", "severity": "HIGH"},
				{"check_id": "CKV_AWS_18", "check_name": "Ensure the S3 bucket has access logging enabled", "file_path": "/s3.tf", "severity": "MEDIUM"},
				{"check_id": "CKV_AWS_21", "check_name": "Ensure all data stored in the S3 bucket have versioning enabled", "file_path": "/s3.tf", "severity": null}
			]
		},
		"summary": {"passed": 12, "failed": 3, "skipped": 1}
	}`
	path := writeReportFile(t, "checkov-results.json", report)

	got, err := ParseCheckovFile(path)
	if err != nil {
		t.Fatalf("ParseCheckovFile() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ParseCheckovFile() returned %d findings, want 3 (every severity kept)", len(got))
	}

	if got[0].Severity != findings.SeverityHigh {
		t.Errorf("got[0].Severity = %q, want %q", got[0].Severity, findings.SeverityHigh)
	}
	if got[1].Severity != findings.SeverityMedium {
		t.Errorf("got[1].Severity = %q, want %q", got[1].Severity, findings.SeverityMedium)
	}
	if got[2].Severity != findings.SeverityUnknown {
		t.Errorf("got[2].Severity = %q, want %q for null severity", got[2].Severity, findings.SeverityUnknown)
	}
	if got[0].ID != "CKV_AWS_20" {
		t.Errorf("got[0].ID = %q, want %q", got[0].ID, "CKV_AWS_20")
	}
	if got[0].Subject != "/s3.tf" {
		t.Errorf("got[0].Subject = %q, want %q", got[0].Subject, "/s3.tf")
	}
}

func TestParseCheckovFileFrameworkArray(t *testing.T) {
	report := `[
		{
			"check_type": "terraform",
			"results": {"failed_checks": [
				{"check_id": "CKV_AWS_1", "check_name": "terraform check", "file_path": "/main.tf", "severity": "CRITICAL"}
			]}
		},
		{
			"check_type": "dockerfile",
			"results": {"failed_checks": [
				{"check_id": "CKV_DOCKER_2", "check_name": "Ensure that HEALTHCHECK instructions have been added", "file_path": "/Dockerfile", "severity": "LOW"}
			]}
		}
	]`

	got, err := parseCheckovBytes("checkov-results-all.json", []byte(report))
	if err != nil {
		t.Fatalf("parseCheckovBytes() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("parseCheckovBytes() returned %d findings, want 2 across frameworks", len(got))
	}
	if got[0].Tool != findings.ToolCheckov || got[1].Tool != findings.ToolCheckov {
		t.Errorf("findings carry tool %q/%q, want %q", got[0].Tool, got[1].Tool, findings.ToolCheckov)
	}
}

func TestParseCheckovFileNoFailedChecks(t *testing.T) {
	got, err := parseCheckovBytes("checkov-results.json", []byte(`{"results": {"failed_checks": []}, "summary": {"passed": 9}}`))
	if err != nil {
		t.Fatalf("parseCheckovBytes() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("parseCheckovBytes() returned %d findings, want 0", len(got))
	}
}

func TestParseCheckovFileMalformed(t *testing.T) {
	_, err := parseCheckovBytes("checkov-results.json", []byte(`{"results": `))
	var parseErr *errors.ParseError
	if !stderrors.As(err, &parseErr) {
		t.Fatalf("parseCheckovBytes() error = %T, want *errors.ParseError", err)
	}
}
