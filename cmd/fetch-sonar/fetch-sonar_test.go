package fetchsonar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/reportio/pkg/shared/config"
)

func TestValidateFetchSonarArgs(t *testing.T) {
	tests := []struct {
		name    string
		options RunOptionsFetchSonar
		wantErr string
	}{
		{
			// valid: reportio fetch-sonar --url https://sonar.example.com --project my-service
			name: "Valid server and project",
			options: RunOptionsFetchSonar{
				URL:          "https://sonar.example.com",
				Project:      "my-service",
				OutputFolder: ".",
			},
			wantErr: "",
		},
		{
			// fail: reportio fetch-sonar --project my-service
			name: "Missing server URL",
			options: RunOptionsFetchSonar{
				Project:      "my-service",
				OutputFolder: ".",
			},
			wantErr: "the 'url' flag or the sonarqube.url config value must be specified",
		},
		{
			// fail: reportio fetch-sonar --url sonar.example.com --project my-service
			name: "Server URL without scheme",
			options: RunOptionsFetchSonar{
				URL:          "sonar.example.com",
				Project:      "my-service",
				OutputFolder: ".",
			},
			wantErr: "the server URL is not valid: sonar.example.com",
		},
		{
			// fail: reportio fetch-sonar --url https://sonar.example.com
			name: "Missing project key",
			options: RunOptionsFetchSonar{
				URL:          "https://sonar.example.com",
				OutputFolder: ".",
			},
			wantErr: "the 'project' flag or the sonarqube.project config value must be specified",
		},
		{
			// fail: empty output folder
			name: "Missing output folder",
			options: RunOptionsFetchSonar{
				URL:     "https://sonar.example.com",
				Project: "my-service",
			},
			wantErr: "the 'output' flag must be specified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFetchSonarArgs(&tt.options)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	cfg := &config.Config{}
	cfg.SonarQube.URL = "https://sonar.example.com"
	cfg.SonarQube.Project = "my-service"
	cfg.Reportio.ResultsFolder = "/var/lib/reportio/results"

	options := RunOptionsFetchSonar{}
	applyConfigDefaults(cfg, &options)
	assert.Equal(t, "https://sonar.example.com", options.URL)
	assert.Equal(t, "my-service", options.Project)
	assert.Equal(t, "/var/lib/reportio/results", options.OutputFolder)

	// Flags beat configuration.
	options = RunOptionsFetchSonar{URL: "https://other.example.com", Project: "another", OutputFolder: "./raw-reports"}
	applyConfigDefaults(cfg, &options)
	assert.Equal(t, "https://other.example.com", options.URL)
	assert.Equal(t, "another", options.Project)
	assert.Equal(t, "./raw-reports", options.OutputFolder)

	// No configuration falls back to the working directory.
	options = RunOptionsFetchSonar{}
	applyConfigDefaults(nil, &options)
	assert.Empty(t, options.URL)
	assert.Empty(t, options.Project)
	assert.Equal(t, ".", options.OutputFolder)
}
