package upload

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/reportio/internal/uploader"
	"github.com/scan-io-git/reportio/pkg/shared"
	"github.com/scan-io-git/reportio/pkg/shared/config"
	"github.com/scan-io-git/reportio/pkg/shared/logger"
)

// RunOptionsUpload holds the arguments for the upload command.
type RunOptionsUpload struct {
	InputFolder string
	Bucket      string
	Prefix      string
	Region      string
}

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	uploadOptions      RunOptionsUpload
	exampleUploadUsage = `  # Publish the rendered report tree to S3, keyed by the run timestamp
  reportio upload --input ./security-reports --bucket security-artifacts

  # Nest the run under a project prefix in a specific region
  reportio upload --input ./security-reports --bucket security-artifacts --prefix my-service --region eu-west-1`
)

// UploadCmd represents the upload command.
var UploadCmd = &cobra.Command{
	Use:                   "upload --input/-i PATH --bucket NAME [--prefix P] [--region R]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleUploadUsage,
	Short:                 "Publish a rendered report tree to an S3 bucket",
	RunE:                  runUploadCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runUploadCommand executes the upload command.
func runUploadCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-upload")

	applyConfigDefaults(AppConfig, &uploadOptions)
	if err := validateUploadArgs(&uploadOptions); err != nil {
		logger.Error("invalid upload arguments", "error", err)
		return err
	}

	publisher := uploader.New(logger, uploadOptions.Region, uploadOptions.Bucket, uploadOptions.Prefix)
	uploaded, err := publisher.UploadTree(uploadOptions.InputFolder, time.Now())
	if err != nil {
		logger.Error("failed to upload report tree", "input", uploadOptions.InputFolder, "bucket", uploadOptions.Bucket, "error", err)
		return err
	}

	logger.Info("upload command completed successfully",
		"bucket", uploadOptions.Bucket,
		"files", uploaded)
	return nil
}

// applyConfigDefaults fills unset options from the loaded configuration.
func applyConfigDefaults(cfg *config.Config, options *RunOptionsUpload) {
	if cfg == nil {
		return
	}
	if options.Bucket == "" {
		options.Bucket = cfg.Upload.Bucket
	}
	if options.Prefix == "" {
		options.Prefix = cfg.Upload.Prefix
	}
	if options.Region == "" {
		options.Region = cfg.Upload.Region
	}
}

func init() {
	UploadCmd.Flags().StringVarP(&uploadOptions.InputFolder, "input", "i", "", "Path to the rendered report tree to publish.")
	UploadCmd.Flags().StringVar(&uploadOptions.Bucket, "bucket", "", "Target S3 bucket. Defaults to the configured one.")
	UploadCmd.Flags().StringVar(&uploadOptions.Prefix, "prefix", "", "Key prefix to nest the run under. Defaults to the configured one.")
	UploadCmd.Flags().StringVar(&uploadOptions.Region, "region", "", "AWS region of the bucket. Defaults to the configured one, then the AWS environment.")
	UploadCmd.Flags().BoolP("help", "h", false, "Show help for the upload command.")
}
