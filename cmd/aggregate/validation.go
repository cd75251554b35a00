package aggregate

import (
	"fmt"
	"os"
)

// validateAggregateArgs validates the arguments provided to the aggregate command.
func validateAggregateArgs(options *RunOptionsAggregate) error {
	if options.InputFolder == "" {
		return fmt.Errorf("the 'input' flag must be specified")
	}

	info, err := os.Stat(options.InputFolder)
	if os.IsNotExist(err) {
		return fmt.Errorf("the input folder does not exist: %v", options.InputFolder)
	}
	if err == nil && !info.IsDir() {
		return fmt.Errorf("the input path is not a folder: %v", options.InputFolder)
	}

	if options.OutputFolder == "" {
		return fmt.Errorf("the 'output' flag must be specified")
	}

	for _, format := range options.Formats {
		switch format {
		case FormatJSON, FormatHTML, FormatMarkdown, FormatSarif:
		default:
			return fmt.Errorf("unknown format: %v", format)
		}
	}

	if options.TopSubjects < 0 {
		return fmt.Errorf("the 'top' flag must be a positive integer")
	}

	return nil
}
