package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/reportio/cmd/aggregate"
	"github.com/scan-io-git/reportio/cmd/convert"
	"github.com/scan-io-git/reportio/cmd/dashboard"
	fetchsonar "github.com/scan-io-git/reportio/cmd/fetch-sonar"
	"github.com/scan-io-git/reportio/cmd/upload"
	"github.com/scan-io-git/reportio/cmd/version"
	"github.com/scan-io-git/reportio/pkg/shared/config"
	sharederrors "github.com/scan-io-git/reportio/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "reportio [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Reportio consolidates security scanner reports into unified summaries.",
		Long: `Reportio merges the raw output of security scanners such as Grype, Trivy,
	TruffleHog, Checkov, ClamAV, Xeol and SonarQube into consolidated JSON, HTML,
	Markdown and SARIF reports, plus a status dashboard and an S3 publisher for
	pipeline runs.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(aggregate.AggregateCmd)
	rootCmd.AddCommand(convert.ConvertCmd)
	rootCmd.AddCommand(dashboard.DashboardCmd)
	rootCmd.AddCommand(fetchsonar.FetchSonarCmd)
	rootCmd.AddCommand(upload.UploadCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and maps a failure to the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)

		var commandError *sharederrors.CommandError
		if errors.As(err, &commandError) {
			return commandError.ExitCode
		}
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Printf("initializing config file function is crashed - %v \n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	aggregate.Init(AppConfig)
	convert.Init(AppConfig)
	dashboard.Init(AppConfig)
	fetchsonar.Init(AppConfig)
	upload.Init(AppConfig)
	version.Init(AppConfig)
}
