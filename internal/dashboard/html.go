package dashboard

import (
	"bytes"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scan-io-git/reportio/internal/template"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
)

// DashboardFile is the page name under the output folder.
const DashboardFile = "security-dashboard.html"

// DashboardTitle heads the generated page.
const DashboardTitle = "Security Dashboard"

type dashboardView struct {
	Title   string
	Time    time.Time
	Overall string
	Class   string
	Message string
	Cards   []Card
}

var dashboardTmpl = htmltemplate.Must(template.New("dashboard", dashboardTemplateHTML))

// Render produces the dashboard page for an analyzed posture. The output
// is a pure function of posture plus the injected generation time.
func Render(posture *Posture, generatedAt time.Time) ([]byte, error) {
	view := dashboardView{
		Title:   DashboardTitle,
		Time:    generatedAt.UTC(),
		Overall: strings.ToUpper(string(posture.Overall)),
		Class:   "banner-" + string(posture.Overall),
		Message: posture.Message,
		Cards:   posture.Cards,
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, view); err != nil {
		return nil, errors.NewRenderError("dashboard", err)
	}
	return buf.Bytes(), nil
}

// WriteDashboard renders into outputFolder and returns the file path.
func WriteDashboard(posture *Posture, generatedAt time.Time, outputFolder string) (string, error) {
	data, err := Render(posture, generatedAt)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputFolder, DashboardFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.NewRenderError("dashboard", err)
	}
	return path, nil
}

const dashboardStylesCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Segoe UI', Arial, sans-serif; background: #f4f6f8; color: #2c3e50; }
.container { max-width: 1200px; margin: 0 auto; padding: 24px; }
header.page { background: linear-gradient(135deg, #1f2a44 0%, #3b4d71 100%); color: #ffffff; border-radius: 10px; padding: 28px; margin-bottom: 24px; }
header.page h1 { font-size: 26px; margin-bottom: 10px; }
header.page .meta { color: #c7d0e0; font-size: 13px; }
.banner { border-radius: 10px; padding: 22px; margin-bottom: 24px; text-align: center; color: #ffffff; }
.banner h2 { font-size: 20px; margin-bottom: 6px; }
.banner p { font-size: 14px; }
.banner-good { background: #27ae60; }
.banner-warning { background: #e67e22; }
.banner-critical { background: #c0392b; }
.tools { display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 18px; }
.tool-card { background: #ffffff; border-radius: 10px; padding: 20px; box-shadow: 0 1px 4px rgba(0, 0, 0, 0.08); }
.tool-header { display: flex; align-items: center; gap: 14px; margin-bottom: 16px; }
.tool-header h3 { font-size: 17px; }
.tool-header p { font-size: 13px; color: #7f8c8d; }
.tool-icon { width: 46px; height: 46px; border-radius: 8px; display: flex; align-items: center; justify-content: center; color: #ffffff; font-weight: 700; font-size: 16px; }
.tool-icon.status-good { background: #27ae60; }
.tool-icon.status-warning { background: #e67e22; }
.tool-icon.status-critical { background: #c0392b; }
.metrics { display: grid; grid-template-columns: repeat(auto-fit, minmax(80px, 1fr)); gap: 12px; }
.metric { text-align: center; padding: 10px 6px; background: #f4f6f8; border-radius: 8px; }
.metric .number { display: block; font-size: 22px; font-weight: 700; }
.metric .label { font-size: 12px; color: #7f8c8d; }
.links { margin-top: 14px; }
.links a { display: inline-block; padding: 6px 12px; background: #3b4d71; color: #ffffff; text-decoration: none; border-radius: 6px; font-size: 13px; }
footer { text-align: center; color: #95a5a6; font-size: 12px; padding: 18px 0; }
`

const dashboardTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
<style>` + dashboardStylesCSS + `</style>
</head>
<body>
<div class="container">
<header class="page">
<h1>{{ .Title }}</h1>
<p class="meta">Generated {{ formatDateTime .Time }}</p>
</header>

<div class="banner {{ .Class }}">
<h2>Overall Security Status: {{ .Overall }}</h2>
<p>{{ .Message }}</p>
</div>

<div class="tools">
{{ range .Cards }}
<div class="tool-card">
<div class="tool-header">
<div class="tool-icon status-{{ .Status }}">{{ .Abbrev }}</div>
<div>
<h3>{{ .Tool }}</h3>
<p>{{ .Caption }}</p>
</div>
</div>
<div class="metrics">
{{ range .Metrics }}
<div class="metric"><span class="number">{{ .Value }}</span><span class="label">{{ .Label }}</span></div>
{{ end }}
</div>
{{ if .ReportsLink }}
<div class="links"><a href="{{ .ReportsLink }}">HTML reports</a></div>
{{ end }}
</div>
{{ end }}
</div>

<footer>reportio security dashboard</footer>
</div>
</body>
</html>
`
