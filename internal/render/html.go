package render

import (
	"bytes"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scan-io-git/reportio/internal/aggregator"
	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/internal/template"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// View models keep the templates free of logic: pointers dereferenced,
// lists pre-grouped and pre-ordered, descriptions already truncated.

type findingView struct {
	ID          string
	Subject     string
	Description string
	Verified    bool
	FixedIn     string
}

type toolView struct {
	Tool     string
	Findings []findingView
}

type sectionView struct {
	Severity string
	Class    string
	Count    int
	Tools    []toolView
}

type cardView struct {
	Severity string
	Class    string
	Count    int
}

type repositoryView struct {
	Origin    string
	Branch    string
	Commit    string
	Subfolder string
}

type summaryView struct {
	Title         string
	Time          time.Time
	ReportID      string
	ToolsAnalyzed string
	TotalFindings int
	Repository    *repositoryView
	Cards         []cardView
	Sections      []sectionView
	TopSubjects   []aggregator.SubjectCount
	Warnings      []aggregator.Warning
}

type reportView struct {
	Title    string
	Tool     string
	Source   string
	Time     time.Time
	Count    int
	Sections []sectionView
}

var (
	summaryTmpl = htmltemplate.Must(template.New("summary", summaryTemplateHTML))
	reportTmpl  = htmltemplate.Must(template.New("report", reportTemplateHTML))
)

// SummaryHTML renders the consolidated report as a static page: one card
// per severity, findings grouped by severity then tool, "No findings"
// placeholders for empty buckets. No scripts.
func SummaryHTML(report *aggregator.Report, opts Options) ([]byte, error) {
	view := buildSummaryView(report, opts)

	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, view); err != nil {
		return nil, errors.NewRenderError("html", err)
	}
	return buf.Bytes(), nil
}

// WriteSummaryHTML renders into outputFolder and returns the file path.
func WriteSummaryHTML(report *aggregator.Report, opts Options, outputFolder string) (string, error) {
	data, err := SummaryHTML(report, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputFolder, SummaryHTMLFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.NewRenderError("html", err)
	}
	return path, nil
}

// ReportHTML renders the findings of one raw report for the per-tool tree.
func ReportHTML(tool findings.Tool, reportPath string, list []findings.Finding, opts Options) ([]byte, error) {
	view := reportView{
		Title:  string(tool) + " Findings",
		Tool:   string(tool),
		Source: reportPath,
		Time:   opts.ScanTime.UTC(),
		Count:  len(list),
	}
	for _, severity := range findings.AllSeverities {
		bucket := filterBySeverity(list, severity)
		if len(bucket) == 0 {
			continue
		}
		view.Sections = append(view.Sections, sectionView{
			Severity: string(severity),
			Class:    severityClass(severity),
			Count:    len(bucket),
			Tools:    []toolView{{Tool: string(tool), Findings: findingViews(bucket, opts.limit())}},
		})
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, view); err != nil {
		return nil, errors.NewRenderError("html", err)
	}
	return buf.Bytes(), nil
}

func buildSummaryView(report *aggregator.Report, opts Options) summaryView {
	view := summaryView{
		Title:         opts.title(),
		Time:          opts.ScanTime.UTC(),
		ReportID:      report.ReportID,
		ToolsAnalyzed: joinTools(report.ToolsAnalyzed),
		TotalFindings: len(report.Findings),
		Repository:    repositoryViewOf(opts),
		TopSubjects:   report.TopSubjects,
		Warnings:      report.Warnings,
	}

	for _, severity := range findings.AllSeverities {
		bucket := filterBySeverity(report.Findings, severity)
		view.Cards = append(view.Cards, cardView{
			Severity: string(severity),
			Class:    severityClass(severity),
			Count:    report.CountsBySeverity[severity],
		})

		section := sectionView{
			Severity: string(severity),
			Class:    severityClass(severity),
			Count:    len(bucket),
		}
		byTool := groupByTool(bucket)
		for _, tool := range findings.AllTools {
			toolFindings := byTool[tool]
			if len(toolFindings) == 0 {
				continue
			}
			section.Tools = append(section.Tools, toolView{
				Tool:     string(tool),
				Findings: findingViews(toolFindings, opts.limit()),
			})
		}
		view.Sections = append(view.Sections, section)
	}

	return view
}

func findingViews(list []findings.Finding, limit int) []findingView {
	views := make([]findingView, 0, len(list))
	for _, finding := range list {
		views = append(views, findingView{
			ID:          finding.ID,
			Subject:     finding.Subject,
			Description: findings.Truncate(finding.Description, limit),
			Verified:    isVerified(finding),
			FixedIn:     strings.Join(finding.FixedIn, ", "),
		})
	}
	return views
}

func repositoryViewOf(opts Options) *repositoryView {
	md := opts.Repository
	if md == nil {
		return nil
	}

	view := &repositoryView{Subfolder: md.Subfolder}
	if md.RepositoryFullName != nil {
		view.Origin = *md.RepositoryFullName
	}
	if md.BranchName != nil {
		view.Branch = *md.BranchName
	}
	if md.CommitHash != nil {
		view.Commit = shortCommit(*md.CommitHash)
	}
	if view.Origin == "" && view.Branch == "" && view.Commit == "" {
		return nil
	}
	return view
}

func shortCommit(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func severityClass(severity findings.Severity) string {
	return strings.ToLower(string(severity))
}

const baseStylesCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Segoe UI', Arial, sans-serif; background: #f4f6f8; color: #2c3e50; }
.container { max-width: 1100px; margin: 0 auto; padding: 24px; }
header.page { background: linear-gradient(135deg, #1f2a44 0%, #3b4d71 100%); color: #ffffff; border-radius: 10px; padding: 28px; margin-bottom: 24px; }
header.page h1 { font-size: 26px; margin-bottom: 10px; }
header.page .meta { color: #c7d0e0; font-size: 13px; line-height: 1.8; }
header.page code { background: rgba(255, 255, 255, 0.14); padding: 1px 6px; border-radius: 4px; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 14px; margin-bottom: 26px; }
.card { background: #ffffff; border-radius: 10px; padding: 18px; text-align: center; border-top: 4px solid #95a5a6; box-shadow: 0 1px 4px rgba(0, 0, 0, 0.08); }
.card .count { display: block; font-size: 30px; font-weight: 700; }
.card .label { font-size: 12px; text-transform: uppercase; letter-spacing: 1px; color: #7f8c8d; }
.card.critical { border-top-color: #c0392b; }
.card.critical .count { color: #c0392b; }
.card.high { border-top-color: #e67e22; }
.card.high .count { color: #e67e22; }
.card.medium { border-top-color: #f1c40f; }
.card.medium .count { color: #b7950b; }
.card.low { border-top-color: #27ae60; }
.card.low .count { color: #27ae60; }
.card.negligible { border-top-color: #95a5a6; }
.card.negligible .count { color: #7f8c8d; }
.card.unknown { border-top-color: #7f8c8d; }
.card.unknown .count { color: #7f8c8d; }
section.severity { background: #ffffff; border-radius: 10px; padding: 20px 24px; margin-bottom: 18px; box-shadow: 0 1px 4px rgba(0, 0, 0, 0.08); }
section.severity h2 { font-size: 18px; padding-bottom: 10px; border-bottom: 2px solid #ecf0f1; margin-bottom: 14px; }
section.severity.critical h2 { border-bottom-color: #c0392b; }
section.severity.high h2 { border-bottom-color: #e67e22; }
section.severity.medium h2 { border-bottom-color: #f1c40f; }
section.severity.low h2 { border-bottom-color: #27ae60; }
section.severity h3 { font-size: 15px; margin: 12px 0 6px; color: #34495e; }
ul.findings { list-style: none; }
ul.findings li { padding: 8px 12px; border-left: 3px solid #bdc3c7; margin-bottom: 6px; background: #fafbfc; font-size: 14px; line-height: 1.5; }
.empty { color: #7f8c8d; font-style: italic; }
table.subjects { width: 100%; border-collapse: collapse; font-size: 14px; }
table.subjects th, table.subjects td { text-align: left; padding: 8px 10px; border-bottom: 1px solid #ecf0f1; }
ul.warnings { list-style: none; }
ul.warnings li { padding: 6px 12px; border-left: 3px solid #f1c40f; margin-bottom: 6px; background: #fdf8e3; font-size: 13px; }
footer { text-align: center; color: #95a5a6; font-size: 12px; padding: 18px 0; }
`

const summaryTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
<style>` + baseStylesCSS + `</style>
</head>
<body>
<div class="container">
<header class="page">
<h1>{{ .Title }}</h1>
<p class="meta">Generated {{ formatDateTime .Time }}</p>
<p class="meta">Report ID <code>{{ .ReportID }}</code></p>
<p class="meta">Tools analyzed: {{ .ToolsAnalyzed }} | Total findings: {{ .TotalFindings }}</p>
{{ with .Repository }}
<p class="meta">
{{ if .Origin }}Repository <code>{{ .Origin }}</code>{{ end }}
{{ if .Branch }} branch <code>{{ .Branch }}</code>{{ end }}
{{ if .Commit }} commit <code>{{ .Commit }}</code>{{ end }}
{{ if .Subfolder }} subfolder <code>{{ .Subfolder }}</code>{{ end }}
</p>
{{ end }}
</header>

<section class="cards">
{{ range .Cards }}
<div class="card {{ .Class }}"><span class="count">{{ .Count }}</span><span class="label">{{ .Severity }}</span></div>
{{ end }}
</section>

{{ range .Sections }}
<section class="severity {{ .Class }}">
<h2>{{ .Severity }} ({{ .Count }})</h2>
{{ if .Tools }}
{{ range .Tools }}
<h3>{{ .Tool }}</h3>
<ul class="findings">
{{ range .Findings }}
<li><strong>{{ .ID }}</strong> in {{ .Subject }}{{ if .Description }}: {{ .Description }}{{ end }}{{ if .Verified }} <em>(verified)</em>{{ end }}{{ if .FixedIn }} (fixed in: {{ .FixedIn }}){{ end }}</li>
{{ end }}
</ul>
{{ end }}
{{ else }}
<p class="empty">No findings</p>
{{ end }}
</section>
{{ end }}

{{ if .TopSubjects }}
<section class="severity">
<h2>Most Affected Subjects</h2>
<table class="subjects">
<tr><th>#</th><th>Subject</th><th>Findings</th></tr>
{{ range $i, $subject := .TopSubjects }}
<tr><td>{{ add $i 1 }}</td><td>{{ $subject.Subject }}</td><td>{{ $subject.Count }}</td></tr>
{{ end }}
</table>
</section>
{{ end }}

{{ if .Warnings }}
<section class="severity">
<h2>Parse Warnings</h2>
<ul class="warnings">
{{ range .Warnings }}
<li>{{ .Tool }} {{ .File }}: {{ .Reason }}</li>
{{ end }}
</ul>
</section>
{{ end }}

<footer>reportio consolidated security report</footer>
</div>
</body>
</html>
`

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
<style>` + baseStylesCSS + `</style>
</head>
<body>
<div class="container">
<header class="page">
<h1>{{ .Title }}</h1>
<p class="meta">Generated {{ formatDateTime .Time }}</p>
<p class="meta">Source report <code>{{ .Source }}</code> | Findings: {{ .Count }}</p>
</header>

{{ if .Sections }}
{{ range .Sections }}
<section class="severity {{ .Class }}">
<h2>{{ .Severity }} ({{ .Count }})</h2>
{{ range .Tools }}
<ul class="findings">
{{ range .Findings }}
<li><strong>{{ .ID }}</strong> in {{ .Subject }}{{ if .Description }}: {{ .Description }}{{ end }}{{ if .Verified }} <em>(verified)</em>{{ end }}{{ if .FixedIn }} (fixed in: {{ .FixedIn }}){{ end }}</li>
{{ end }}
</ul>
{{ end }}
</section>
{{ end }}
{{ else }}
<section class="severity">
<p class="empty">No findings</p>
</section>
{{ end }}

<footer>reportio tool report</footer>
</div>
</body>
</html>
`
