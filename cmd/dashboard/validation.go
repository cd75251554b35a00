package dashboard

import (
	"fmt"
	"os"
)

// validateDashboardArgs validates the arguments provided to the dashboard command.
func validateDashboardArgs(options *RunOptionsDashboard) error {
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

	return nil
}
