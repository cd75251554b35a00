package fetchsonar

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/reportio/internal/sonar"
	"github.com/scan-io-git/reportio/pkg/shared"
	"github.com/scan-io-git/reportio/pkg/shared/config"
	"github.com/scan-io-git/reportio/pkg/shared/files"
	"github.com/scan-io-git/reportio/pkg/shared/logger"
)

// RunOptionsFetchSonar holds the arguments for the fetch-sonar command.
type RunOptionsFetchSonar struct {
	URL          string
	Project      string
	OutputFolder string
}

// Global variables for configuration and command arguments
var (
	AppConfig              *config.Config
	fetchSonarOptions      RunOptionsFetchSonar
	exampleFetchSonarUsage = `  # Export unresolved issues of a project into the raw-reports folder
  SONAR_TOKEN=squ_... reportio fetch-sonar --url https://sonar.example.com --project my-service --output ./raw-reports

  # Server and project key can come from config.yml instead of flags
  SONAR_TOKEN=squ_... reportio fetch-sonar --output ./raw-reports`
)

// FetchSonarCmd represents the fetch-sonar command.
var FetchSonarCmd = &cobra.Command{
	Use:                   "fetch-sonar --url URL --project KEY [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleFetchSonarUsage,
	Short:                 "Export unresolved SonarQube issues as a raw report for aggregation",
	RunE:                  runFetchSonarCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runFetchSonarCommand executes the fetch-sonar command.
func runFetchSonarCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-fetch-sonar")

	applyConfigDefaults(AppConfig, &fetchSonarOptions)
	if err := validateFetchSonarArgs(&fetchSonarOptions); err != nil {
		logger.Error("invalid fetch-sonar arguments", "error", err)
		return err
	}

	token := os.Getenv("SONAR_TOKEN")
	if token == "" {
		logger.Warn("SONAR_TOKEN is not set, requesting issues anonymously")
	}

	if err := files.CreateFolderIfNotExists(fetchSonarOptions.OutputFolder); err != nil {
		logger.Error("failed to prepare output folder", "output", fetchSonarOptions.OutputFolder, "error", err)
		return err
	}

	client := sonar.New(logger, AppConfig, fetchSonarOptions.URL, token)
	path, err := client.FetchToFile(context.Background(), fetchSonarOptions.Project, fetchSonarOptions.OutputFolder)
	if err != nil {
		logger.Error("failed to fetch issues", "url", fetchSonarOptions.URL, "project", fetchSonarOptions.Project, "error", err)
		return err
	}

	logger.Info("fetch-sonar command completed successfully",
		"project", fetchSonarOptions.Project,
		"path", path)
	return nil
}

func init() {
	FetchSonarCmd.Flags().StringVar(&fetchSonarOptions.URL, "url", "", "Base URL of the SonarQube server. Defaults to the configured one.")
	FetchSonarCmd.Flags().StringVar(&fetchSonarOptions.Project, "project", "", "Project key to export issues for. Defaults to the configured one.")
	FetchSonarCmd.Flags().StringVarP(&fetchSonarOptions.OutputFolder, "output", "o", "", "Folder to write "+sonar.OutputFile+" into, named so the aggregate command discovers it. Defaults to the configured results folder.")
	FetchSonarCmd.Flags().BoolP("help", "h", false, "Show help for the fetch-sonar command.")
}
