package aggregate

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/reportio/internal/adapters"
	"github.com/scan-io-git/reportio/internal/aggregator"
	"github.com/scan-io-git/reportio/internal/render"
	"github.com/scan-io-git/reportio/pkg/shared"
	"github.com/scan-io-git/reportio/pkg/shared/config"
	"github.com/scan-io-git/reportio/pkg/shared/files"
	"github.com/scan-io-git/reportio/pkg/shared/logger"
)

// RunOptionsAggregate holds the arguments for the aggregate command.
type RunOptionsAggregate struct {
	InputFolder  string
	OutputFolder string
	SourceFolder string
	Formats      []string
	TopSubjects  int
	Title        string
}

// Global variables for configuration and command arguments
var (
	AppConfig             *config.Config
	aggregateOptions      RunOptionsAggregate
	exampleAggregateUsage = `  # Aggregate every raw report under a folder into all output formats
  reportio aggregate --input /path/to/raw-reports --output /path/to/security-reports

  # Render only the JSON summary and the SARIF supplement
  reportio aggregate --input ./raw-reports --output ./security-reports --formats json,sarif

  # Decorate the HTML summary with repository metadata from the scanned source tree
  reportio aggregate --input ./raw-reports --output ./security-reports --source /path/to/checkout

  # Track the fifteen most affected subjects instead of ten
  reportio aggregate --input ./raw-reports --output ./security-reports --top 15`
)

// AggregateCmd represents the aggregate command.
var AggregateCmd = &cobra.Command{
	Use:                   "aggregate --input/-i PATH --output/-o PATH [--source PATH] [--formats/-f LIST] [--top N] [--title TITLE]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAggregateUsage,
	Short:                 "Merge raw scanner reports into consolidated summaries and per-tool report trees",
	RunE:                  runAggregateCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runAggregateCommand executes the aggregate command.
func runAggregateCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-aggregate")

	applyConfigDefaults(AppConfig, &aggregateOptions)
	if err := validateAggregateArgs(&aggregateOptions); err != nil {
		logger.Error("invalid aggregate arguments", "error", err)
		return err
	}

	inputs, err := adapters.Discover(aggregateOptions.InputFolder)
	if err != nil {
		logger.Error("failed to discover raw reports", "input", aggregateOptions.InputFolder, "error", err)
		return err
	}
	if len(inputs) == 0 {
		logger.Warn("no raw reports discovered", "input", aggregateOptions.InputFolder)
	}

	report := aggregator.Aggregate(logger, inputs, aggregateOptions.TopSubjects)

	opts := render.Options{
		ScanTime:         time.Now(),
		Title:            aggregateOptions.Title,
		DescriptionLimit: descriptionLimit(AppConfig),
		Repository:       resolveRepositoryMetadata(logger, aggregateOptions.SourceFolder),
	}

	if err := files.CreateFolderIfNotExists(aggregateOptions.OutputFolder); err != nil {
		logger.Error("failed to prepare output folder", "output", aggregateOptions.OutputFolder, "error", err)
		return err
	}

	if err := renderFormats(logger, report, opts, &aggregateOptions); err != nil {
		return err
	}

	logger.Info("aggregate command completed successfully",
		"findings", len(report.Findings),
		"tools", len(report.ToolsAnalyzed),
		"warnings", len(report.Warnings),
		"output", aggregateOptions.OutputFolder)
	return nil
}

func init() {
	AggregateCmd.Flags().StringVarP(&aggregateOptions.InputFolder, "input", "i", "", "Path to the folder holding the raw scanner reports.")
	AggregateCmd.Flags().StringVarP(&aggregateOptions.OutputFolder, "output", "o", "", "Path to the folder where the rendered reports will be written.")
	AggregateCmd.Flags().StringVar(&aggregateOptions.SourceFolder, "source", "", "Path to the scanned source tree, used to stamp repository metadata into the HTML summary.")
	AggregateCmd.Flags().StringSliceVarP(&aggregateOptions.Formats, "formats", "f", nil, "Formats to render: json, html, markdown, sarif. Defaults to all of them.")
	AggregateCmd.Flags().IntVar(&aggregateOptions.TopSubjects, "top", 0, "Number of most affected subjects to track. Defaults to the configured value, then 10.")
	AggregateCmd.Flags().StringVar(&aggregateOptions.Title, "title", "", "Title for the rendered summaries.")
	AggregateCmd.Flags().BoolP("help", "h", false, "Show help for the aggregate command.")
}
