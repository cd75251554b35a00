package dashboard

import (
	"time"

	"github.com/spf13/cobra"

	internaldashboard "github.com/scan-io-git/reportio/internal/dashboard"
	"github.com/scan-io-git/reportio/pkg/shared"
	"github.com/scan-io-git/reportio/pkg/shared/config"
	"github.com/scan-io-git/reportio/pkg/shared/files"
	"github.com/scan-io-git/reportio/pkg/shared/logger"
)

// RunOptionsDashboard holds the arguments for the dashboard command.
type RunOptionsDashboard struct {
	InputFolder  string
	OutputFolder string
}

// Global variables for configuration and command arguments
var (
	AppConfig             *config.Config
	dashboardOptions      RunOptionsDashboard
	exampleDashboardUsage = `  # Build the status dashboard from a folder of raw scanner reports
  reportio dashboard --input ./raw-reports --output ./security-reports`
)

// DashboardCmd represents the dashboard command.
var DashboardCmd = &cobra.Command{
	Use:                   "dashboard --input/-i PATH --output/-o PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleDashboardUsage,
	Short:                 "Build a status dashboard with one posture card per scanner",
	RunE:                  runDashboardCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runDashboardCommand executes the dashboard command.
func runDashboardCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-dashboard")

	if err := validateDashboardArgs(&dashboardOptions); err != nil {
		logger.Error("invalid dashboard arguments", "error", err)
		return err
	}

	posture, err := internaldashboard.Analyze(logger, dashboardOptions.InputFolder)
	if err != nil {
		logger.Error("failed to analyze raw reports", "input", dashboardOptions.InputFolder, "error", err)
		return err
	}

	if err := files.CreateFolderIfNotExists(dashboardOptions.OutputFolder); err != nil {
		logger.Error("failed to prepare output folder", "output", dashboardOptions.OutputFolder, "error", err)
		return err
	}

	path, err := internaldashboard.WriteDashboard(posture, time.Now(), dashboardOptions.OutputFolder)
	if err != nil {
		logger.Error("failed to write dashboard", "output", dashboardOptions.OutputFolder, "error", err)
		return err
	}

	logger.Info("dashboard command completed successfully",
		"status", posture.Overall,
		"cards", len(posture.Cards),
		"path", path)
	return nil
}

func init() {
	DashboardCmd.Flags().StringVarP(&dashboardOptions.InputFolder, "input", "i", "", "Path to the folder holding the raw scanner reports.")
	DashboardCmd.Flags().StringVarP(&dashboardOptions.OutputFolder, "output", "o", "", "Path to the folder where the dashboard will be written.")
	DashboardCmd.Flags().BoolP("help", "h", false, "Show help for the dashboard command.")
}
