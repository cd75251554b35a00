package convert

import (
	"fmt"

	"github.com/scan-io-git/reportio/internal/adapters"
	"github.com/scan-io-git/reportio/pkg/shared/files"
)

// validateConvertArgs validates the arguments provided to the convert command.
func validateConvertArgs(options *RunOptionsConvert) error {
	if options.Tool == "" {
		return fmt.Errorf("the 'tool' flag must be specified")
	}
	if _, ok := adapters.ResolveTool(options.Tool); !ok {
		return fmt.Errorf("unknown tool: %v", options.Tool)
	}

	if options.Input == "" {
		return fmt.Errorf("the 'input' flag must be specified")
	}
	if err := files.ValidatePath(options.Input); err != nil {
		return fmt.Errorf("the input file is not readable: %w", err)
	}

	if options.Output == "" {
		return fmt.Errorf("the 'output' flag must be specified")
	}

	switch options.Format {
	case FormatMarkdown, FormatHTML:
	default:
		return fmt.Errorf("unknown format: %v", options.Format)
	}

	return nil
}
