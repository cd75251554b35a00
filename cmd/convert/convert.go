package convert

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/reportio/internal/adapters"
	"github.com/scan-io-git/reportio/internal/findings"
	"github.com/scan-io-git/reportio/internal/render"
	"github.com/scan-io-git/reportio/pkg/shared"
	"github.com/scan-io-git/reportio/pkg/shared/config"
	"github.com/scan-io-git/reportio/pkg/shared/files"
	"github.com/scan-io-git/reportio/pkg/shared/logger"
)

// Rendered formats accepted by the format flag.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// RunOptionsConvert holds the arguments for the convert command.
type RunOptionsConvert struct {
	Tool   string
	Input  string
	Output string
	Format string
	Title  string
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	convertOptions      RunOptionsConvert
	exampleConvertUsage = `  # Render a single Grype report as Markdown next to the other summaries
  reportio convert --tool grype --input ./raw-reports/grype-fs-results.json --output ./security-reports

  # Render a Trivy report as a standalone HTML page at an exact path
  reportio convert --tool trivy --input ./raw-reports/trivy-k8s-results.json --output ./trivy.html --format html`
)

// ConvertCmd represents the convert command.
var ConvertCmd = &cobra.Command{
	Use:                   "convert --tool/-t NAME --input/-i FILE --output/-o PATH [--format/-f markdown|html] [--title TITLE]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleConvertUsage,
	Short:                 "Render one raw scanner report into a single Markdown or HTML file",
	RunE:                  runConvertCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runConvertCommand executes the convert command.
func runConvertCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-convert")

	if err := validateConvertArgs(&convertOptions); err != nil {
		logger.Error("invalid convert arguments", "error", err)
		return err
	}

	tool, _ := adapters.ResolveTool(convertOptions.Tool)

	list, err := adapters.ParseFile(tool, convertOptions.Input)
	if err != nil {
		logger.Error("failed to parse raw report", "tool", tool, "input", convertOptions.Input, "error", err)
		return err
	}

	opts := render.Options{
		ScanTime:         time.Now(),
		Title:            convertOptions.Title,
		DescriptionLimit: descriptionLimit(AppConfig),
	}

	data, ext, err := renderReport(tool, convertOptions.Input, list, opts, convertOptions.Format)
	if err != nil {
		logger.Error("failed to render report", "tool", tool, "format", convertOptions.Format, "error", err)
		return err
	}

	path, folder, err := files.DetermineFileFullPath(convertOptions.Output, files.ReplaceExt(convertOptions.Input, ext))
	if err != nil {
		logger.Error("failed to resolve output path", "output", convertOptions.Output, "error", err)
		return err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		logger.Error("failed to prepare output folder", "output", folder, "error", err)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("failed to write rendered report", "path", path, "error", err)
		return err
	}

	logger.Info("convert command completed successfully",
		"tool", tool,
		"findings", len(list),
		"path", path)
	return nil
}

// renderReport produces the rendered bytes and the matching file extension.
func renderReport(tool findings.Tool, reportPath string, list []findings.Finding, opts render.Options, format string) ([]byte, string, error) {
	switch format {
	case FormatHTML:
		data, err := render.ReportHTML(tool, reportPath, list, opts)
		return data, ".html", err
	case FormatMarkdown:
		return []byte(render.ReportMarkdown(tool, reportPath, list, opts)), ".md", nil
	default:
		return nil, "", fmt.Errorf("unknown format: %v", format)
	}
}

// descriptionLimit resolves the configured description cap, zero meaning
// the renderer default.
func descriptionLimit(cfg *config.Config) int {
	if cfg == nil {
		return 0
	}
	return cfg.Reports.DescriptionLimit
}

func init() {
	ConvertCmd.Flags().StringVarP(&convertOptions.Tool, "tool", "t", "", "Scanner that produced the report: grype, trivy, trufflehog, checkov, clamav, xeol, sonarqube.")
	ConvertCmd.Flags().StringVarP(&convertOptions.Input, "input", "i", "", "Path to the raw scanner report file.")
	ConvertCmd.Flags().StringVarP(&convertOptions.Output, "output", "o", "", "Output file, or a folder to place the rendered report into.")
	ConvertCmd.Flags().StringVarP(&convertOptions.Format, "format", "f", FormatMarkdown, "Rendered format: markdown or html.")
	ConvertCmd.Flags().StringVar(&convertOptions.Title, "title", "", "Title for the rendered report.")
	ConvertCmd.Flags().BoolP("help", "h", false, "Show help for the convert command.")
}
