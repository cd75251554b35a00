package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/reportio/internal/adapters"
	"github.com/scan-io-git/reportio/internal/aggregator"
	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/pkg/shared/errors"
	"github.com/scan-io-git/reportio/pkg/shared/files"
)

// WriteToolReports emits both per-tool trees under outputFolder:
// markdown-reports/<Tool>/ and html-reports/<Tool>/, one file per
// successfully parsed raw report, named after the report's base name with
// the extension swapped. A report that parsed to zero findings still gets
// its files, stating so. A failed file is logged and skipped; the siblings
// are written regardless.
func WriteToolReports(logger hclog.Logger, report *aggregator.Report, opts Options, outputFolder string) error {
	return writeTrees(logger, report, opts, outputFolder, true, true)
}

// WriteMarkdownTree emits only markdown-reports/<Tool>/.
func WriteMarkdownTree(logger hclog.Logger, report *aggregator.Report, opts Options, outputFolder string) error {
	return writeTrees(logger, report, opts, outputFolder, true, false)
}

// WriteHTMLTree emits only html-reports/<Tool>/.
func WriteHTMLTree(logger hclog.Logger, report *aggregator.Report, opts Options, outputFolder string) error {
	return writeTrees(logger, report, opts, outputFolder, false, true)
}

func writeTrees(logger hclog.Logger, report *aggregator.Report, opts Options, outputFolder string, markdown, html bool) error {
	bySource := groupBySourceReport(report.Findings)

	var failed int
	for _, input := range report.ParsedInputs {
		list := bySource[input.Path]

		if markdown {
			data := []byte(ReportMarkdown(input.Tool, input.Path, list, opts))
			if err := writeToolReport(outputFolder, MarkdownTreeDir, input, ".md", data); err != nil {
				failed++
				logger.Error("failed to write markdown report", "tool", input.Tool, "source", input.Path, "err", err)
			}
		}

		if html {
			data, err := ReportHTML(input.Tool, input.Path, list, opts)
			if err == nil {
				err = writeToolReport(outputFolder, HTMLTreeDir, input, ".html", data)
			}
			if err != nil {
				failed++
				logger.Error("failed to write html report", "tool", input.Tool, "source", input.Path, "err", err)
			}
		}
	}

	if failed > 0 {
		return errors.NewRenderError("tool-reports", fmt.Errorf("%d file(s) could not be written", failed))
	}
	return nil
}

func writeToolReport(outputFolder, treeDir string, input adapters.Input, ext string, data []byte) error {
	folder := filepath.Join(outputFolder, treeDir, string(input.Tool))
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return err
	}

	path, err := files.EnsureWithinRoot(outputFolder, filepath.Join(folder, files.ReplaceExt(input.Path, ext)))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func groupBySourceReport(list []findings.Finding) map[string][]findings.Finding {
	grouped := make(map[string][]findings.Finding)
	for _, finding := range list {
		grouped[finding.SourceReport] = append(grouped[finding.SourceReport], finding)
	}
	return grouped
}
