package adapters

import (
	"testing"

	"github.com/scan-io-git/reportio/internal/findings"
)

func TestParseTrivyFile(t *testing.T) {
	report := `{
		"Results": [
			{
				"Target": "debian:12 (debian 12.5)",
				"Vulnerabilities": [
					{
						"VulnerabilityID": "CVE-2024-1234",
						"PkgName": "openssl",
						"InstalledVersion": "3.0.11",
						"FixedVersion": "3.0.13, 3.1.5",
						"Severity": "CRITICAL",
						"Title": "openssl: use after free"
					},
					{
						"VulnerabilityID": "CVE-2023-9999",
						"PkgName": "curl",
						"Severity": "MEDIUM",
						"Description": "curl: cookie mixed case PSL bypass"
					}
				]
			},
			{
				"Target": "app/requirements.txt",
				"Vulnerabilities": [
					{
						"VulnerabilityID": "CVE-2022-5555",
						"PkgName": "requests",
						"Severity": "HIGH",
						"Title": "requests: leak of Proxy-Authorization header"
					}
				]
			}
		]
	}`
	path := writeReportFile(t, "trivy-image-results.json", report)

	got, err := ParseTrivyFile(path)
	if err != nil {
		t.Fatalf("ParseTrivyFile() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ParseTrivyFile() returned %d findings, want 3", len(got))
	}

	first := got[0]
	if first.ID != "CVE-2024-1234" {
		t.Errorf("ID = %q, want %q", first.ID, "CVE-2024-1234")
	}
	if first.Subject != "openssl" {
		t.Errorf("Subject = %q, want %q", first.Subject, "openssl")
	}
	if first.Severity != findings.SeverityCritical {
		t.Errorf("Severity = %q, want %q", first.Severity, findings.SeverityCritical)
	}
	if first.Description != "openssl: use after free" {
		t.Errorf("Description = %q, want title", first.Description)
	}
	if len(first.FixedIn) != 2 || first.FixedIn[0] != "3.0.13" || first.FixedIn[1] != "3.1.5" {
		t.Errorf("FixedIn = %v, want [3.0.13 3.1.5]", first.FixedIn)
	}

	second := got[1]
	if second.Description != "curl: cookie mixed case PSL bypass" {
		t.Errorf("Description = %q, want fallback to Description field", second.Description)
	}
	if second.FixedIn != nil {
		t.Errorf("FixedIn = %v, want nil when no fix is published", second.FixedIn)
	}
}

func TestParseTrivyFileNoResults(t *testing.T) {
	got, err := parseTrivyBytes("trivy-empty-results.json", []byte(`{"Results": null}`))
	if err != nil {
		t.Fatalf("parseTrivyBytes() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("parseTrivyBytes() returned %d findings, want 0", len(got))
	}
}

func TestSplitVersions(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"  ", nil},
		{"1.2.3", []string{"1.2.3"}},
		{"1.2.3, 2.0.0", []string{"1.2.3", "2.0.0"}},
		{"1.2.3,,2.0.0", []string{"1.2.3", "2.0.0"}},
	}

	for _, tt := range tests {
		got := splitVersions(tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("splitVersions(%q) = %v, want %v", tt.input, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("splitVersions(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
			}
		}
	}
}
