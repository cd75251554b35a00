package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testPosture() *Posture {
	return &Posture{
		Overall: StatusWarning,
		Message: statusMessage(StatusWarning),
		Cards: []Card{
			{
				Tool:    "Grype",
				Abbrev:  "GP",
				Caption: "Vulnerability Scanning",
				Status:  StatusWarning,
				HasData: true,
				Metrics: []Metric{
					{Value: "0", Label: "Critical"},
					{Value: "3", Label: "High"},
				},
				ReportsLink: "html-reports/Grype/",
			},
			{
				Tool:    "Helm",
				Abbrev:  "HM",
				Caption: "Chart Validation",
				Status:  StatusGood,
				HasData: true,
				Metrics: []Metric{
					{Value: "<12>", Label: "Resources"},
				},
			},
		},
	}
}

func TestRenderDashboardPage(t *testing.T) {
	generatedAt := time.Date(2026, time.August, 23, 10, 30, 0, 0, time.UTC)

	data, err := Render(testPosture(), generatedAt)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	page := string(data)

	if !strings.HasPrefix(page, "<!DOCTYPE html>") {
		t.Error("page does not start with a doctype")
	}
	if strings.Contains(page, "<script") {
		t.Error("page must not contain scripts")
	}
	if !strings.Contains(page, "Overall Security Status: WARNING") {
		t.Error("missing overall status banner")
	}
	if !strings.Contains(page, `class="banner banner-warning"`) {
		t.Error("banner does not carry the warning class")
	}
	if !strings.Contains(page, "Security issues detected. Review and remediation recommended.") {
		t.Error("missing overall status message")
	}
	if !strings.Contains(page, "Generated 23rd August 2026 10:30:00 UTC") {
		t.Error("missing generation timestamp")
	}
	if !strings.Contains(page, `class="tool-icon status-warning"`) {
		t.Error("missing tool status icon class")
	}
	if !strings.Contains(page, `href="html-reports/Grype/"`) {
		t.Error("missing rendered reports link")
	}
	if !strings.Contains(page, "&lt;12&gt;") {
		t.Error("metric values are not HTML-escaped")
	}

	// The Helm card carries no rendered tree, so it must not link one.
	if strings.Contains(page, `href="html-reports/Helm/"`) {
		t.Error("helm card links a reports tree that does not exist")
	}
}

func TestWriteDashboard(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDashboard(testPosture(), time.Now(), dir)
	if err != nil {
		t.Fatalf("WriteDashboard returned error: %v", err)
	}
	if filepath.Base(path) != DashboardFile {
		t.Errorf("wrote %s, want %s", filepath.Base(path), DashboardFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read dashboard: %v", err)
	}
	if !strings.Contains(string(data), "Vulnerability Scanning") {
		t.Error("dashboard content missing tool caption")
	}
}
