package fetchsonar

import (
	"fmt"
	"net/url"
)

// validateFetchSonarArgs validates the arguments provided to the fetch-sonar command.
func validateFetchSonarArgs(options *RunOptionsFetchSonar) error {
	if options.URL == "" {
		return fmt.Errorf("the 'url' flag or the sonarqube.url config value must be specified")
	}

	parsed, err := url.Parse(options.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("the server URL is not valid: %v", options.URL)
	}

	if options.Project == "" {
		return fmt.Errorf("the 'project' flag or the sonarqube.project config value must be specified")
	}

	if options.OutputFolder == "" {
		return fmt.Errorf("the 'output' flag must be specified")
	}

	return nil
}
