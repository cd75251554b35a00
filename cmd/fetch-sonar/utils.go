package fetchsonar

import (
	"github.com/scan-io-git/reportio/pkg/shared/config"
)

// applyConfigDefaults fills unset options from the loaded configuration.
// Without an output flag the export lands in the resolved results folder,
// next to whatever other raw reports the pipeline collects there.
func applyConfigDefaults(cfg *config.Config, options *RunOptionsFetchSonar) {
	if cfg != nil {
		if options.URL == "" {
			options.URL = cfg.SonarQube.URL
		}
		if options.Project == "" {
			options.Project = cfg.SonarQube.Project
		}
		if options.OutputFolder == "" {
			options.OutputFolder = config.GetResultsHome(cfg)
		}
	}
	if options.OutputFolder == "" {
		options.OutputFolder = "."
	}
}
