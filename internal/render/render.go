package render

import (
	"time"

	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/internal/git"
)

// Output names under the aggregate output folder.
const (
	SummaryJSONFile     = "critical-high-findings-summary.json"
	SummaryHTMLFile     = "critical-high-findings-summary.html"
	SummaryMarkdownFile = "critical-high-findings-summary.md"
	SarifFile           = "consolidated-findings.sarif"
	MarkdownTreeDir     = "markdown-reports"
	HTMLTreeDir         = "html-reports"
)

// DefaultTitle heads the HTML summary when no title is configured.
const DefaultTitle = "Security Findings Report"

// Options carries the render-time inputs that are not part of the
// aggregated report itself.
type Options struct {
	// ScanTime stamps the rendered documents. Callers inject it so the
	// report content stays a pure function of report plus options.
	ScanTime time.Time

	// Title heads the HTML summary. Empty means DefaultTitle.
	Title string

	// DescriptionLimit caps finding descriptions in rendered output,
	// ellipsis included. Zero means findings.DescriptionLimit.
	DescriptionLimit int

	// Repository optionally decorates the HTML summary header with branch,
	// commit and origin of the scanned source tree.
	Repository *git.RepositoryMetadata
}

func (o Options) title() string {
	if o.Title != "" {
		return o.Title
	}
	return DefaultTitle
}

func (o Options) limit() int {
	if o.DescriptionLimit > 0 {
		return o.DescriptionLimit
	}
	return findings.DescriptionLimit
}

// timestamp is the machine-readable scan time used by the JSON summary.
func (o Options) timestamp() string {
	return o.ScanTime.UTC().Format(time.RFC3339)
}

// filterBySeverity keeps report order.
func filterBySeverity(list []findings.Finding, severity findings.Severity) []findings.Finding {
	var filtered []findings.Finding
	for _, finding := range list {
		if finding.Severity == severity {
			filtered = append(filtered, finding)
		}
	}
	return filtered
}

// groupByTool buckets findings per tool, preserving report order inside a
// bucket. Iterate the buckets with findings.AllTools to stay deterministic.
func groupByTool(list []findings.Finding) map[findings.Tool][]findings.Finding {
	grouped := make(map[findings.Tool][]findings.Finding)
	for _, finding := range list {
		grouped[finding.Tool] = append(grouped[finding.Tool], finding)
	}
	return grouped
}

// truncated returns a display copy of the finding with the description cut
// to the configured limit. The aggregated report itself stays untouched.
func truncated(finding findings.Finding, limit int) findings.Finding {
	finding.Description = findings.Truncate(finding.Description, limit)
	return finding
}

func truncatedAll(list []findings.Finding, limit int) []findings.Finding {
	out := make([]findings.Finding, len(list))
	for i, finding := range list {
		out[i] = truncated(finding, limit)
	}
	return out
}

// isVerified reports whether a finding is a verified secret.
func isVerified(finding findings.Finding) bool {
	return finding.Verified != nil && *finding.Verified
}
