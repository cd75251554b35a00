package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/scan-io-git/reportio/pkg/shared/files"
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateReportioConfig(cfg); err != nil {
		return fmt.Errorf("YAML global config: reportio directive is invalid: %w", err)
	}
	if err := ValidateReportsConfig(&cfg.Reports); err != nil {
		return fmt.Errorf("YAML global config: reports directive is invalid: %w", err)
	}
	if err := ValidateSonarConfig(&cfg.SonarQube); err != nil {
		return fmt.Errorf("YAML global config: sonarqube directive is invalid: %w", err)
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	return nil
}

// ValidateReportioConfig resolves the application folders, letting
// environment variables override the file values.
func ValidateReportioConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("reportio configuration is nil")
	}
	if err := updateHome(cfg); err != nil {
		return fmt.Errorf("failed to update home folder: %w", err)
	}
	if err := updateFolder(&cfg.Reportio.ResultsFolder, "REPORTIO_RESULTS_FOLDER", "results", cfg); err != nil {
		return fmt.Errorf("failed to update results folder: %w", err)
	}
	if err := updateFolder(&cfg.Reportio.TempFolder, "REPORTIO_TEMP_FOLDER", "tmp", cfg); err != nil {
		return fmt.Errorf("failed to update temp folder: %w", err)
	}
	updateMode(cfg)

	return nil
}

// ValidateReportsConfig applies defaults and bounds for the report knobs.
func ValidateReportsConfig(reports *Reports) error {
	if reports == nil {
		return fmt.Errorf("reports configuration is nil")
	}

	reports.TopSubjects = SetThen(reports.TopSubjects, 10)
	reports.DescriptionLimit = SetThen(reports.DescriptionLimit, 300)

	if reports.TopSubjects < 1 || reports.TopSubjects > 100 {
		return fmt.Errorf("top_subjects must be between 1 and 100: %d", reports.TopSubjects)
	}
	if reports.DescriptionLimit < 20 {
		return fmt.Errorf("description_limit is too small: %d", reports.DescriptionLimit)
	}
	return nil
}

// ValidateSonarConfig checks the fetch-sonar settings.
func ValidateSonarConfig(sonar *SonarQube) error {
	if sonar == nil {
		return fmt.Errorf("sonarqube configuration is nil")
	}

	sonar.Timeout = SetThen(sonar.Timeout, 30*time.Second)
	if err := validateDuration(sonar.Timeout, "timeout", 10*time.Minute); err != nil {
		return err
	}

	if sonar.URL != "" {
		if _, err := url.Parse(sonar.URL); err != nil {
			return fmt.Errorf("invalid sonarqube url: %w", err)
		}
	}
	return nil
}

// ValidateHTTPConfig checks if the HTTP configurations have valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := map[string]time.Duration{
		"RetryMaxWaitTime": httpConfig.RetryMaxWaitTime,
		"RetryWaitTime":    httpConfig.RetryWaitTime,
		"Timeout":          httpConfig.Timeout,
	}
	for name, duration := range durations {
		if err := validateDuration(duration, name, 100*time.Second); err != nil {
			return err
		}
	}

	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// updateHome updates the HomeFolder from environment variables or sets a default value.
func updateHome(cfg *Config) error {
	if homeFolder := os.Getenv("REPORTIO_HOME"); homeFolder != "" {
		cfg.Reportio.HomeFolder = homeFolder
	} else if cfg.Reportio.HomeFolder == "" {
		homeFolder, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("unable to get user home folder: %w", err)
		}
		cfg.Reportio.HomeFolder = filepath.Join(homeFolder, ".reportio")
	}

	expandedHomePath, err := files.ExpandPath(cfg.Reportio.HomeFolder)
	if err != nil {
		return fmt.Errorf("failed to expand new home path %q: %w", cfg.Reportio.HomeFolder, err)
	}
	cfg.Reportio.HomeFolder = expandedHomePath

	if err := files.CreateFolderIfNotExists(expandedHomePath); err != nil {
		return fmt.Errorf("failed to create home folder %q: %w", cfg.Reportio.HomeFolder, err)
	}
	return nil
}

// updateFolder updates a folder path in the Reportio configuration.
func updateFolder(folder *string, envVar, defaultSubFolder string, cfg *Config) error {
	if envVarValue := os.Getenv(envVar); envVarValue != "" {
		*folder = envVarValue
	} else if *folder == "" {
		*folder = filepath.Join(GetReportioHome(cfg), defaultSubFolder)
	}

	expandedHomePath, err := files.ExpandPath(*folder)
	if err != nil {
		return fmt.Errorf("failed to expand new home path %q: %w", *folder, err)
	}
	*folder = expandedHomePath

	if err := files.CreateFolderIfNotExists(expandedHomePath); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", expandedHomePath, err)
	}
	return nil
}

// updateMode updates the Mode field based on environment variables.
func updateMode(cfg *Config) {
	if os.Getenv("REPORTIO_MODE") == "CI" || os.Getenv("CI") == "true" {
		cfg.Reportio.Mode = "CI"
		return
	}

	if envVarValue := os.Getenv("REPORTIO_MODE"); envVarValue != "" {
		cfg.Reportio.Mode = envVarValue
		return
	}

	cfg.Reportio.Mode = "user"
}
