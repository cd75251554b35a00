package config

import (
	"time"
)

type Config struct {
	Reportio   Reportio   `yaml:"reportio"`
	Logger     Logger     `yaml:"logger"`
	Reports    Reports    `yaml:"reports"`
	SonarQube  SonarQube  `yaml:"sonarqube"`
	Upload     Upload     `yaml:"upload"`
	HTTPClient HTTPClient `yaml:"http_client"`
}

// Reportio holds folder resolution settings for the application itself.
type Reportio struct {
	HomeFolder    string `yaml:"home_folder"`
	ResultsFolder string `yaml:"results_folder"`
	TempFolder    string `yaml:"temp_folder"`
	Mode          string `yaml:"mode"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Reports tunes the aggregation and rendering knobs.
type Reports struct {
	TopSubjects      int `yaml:"top_subjects"`
	DescriptionLimit int `yaml:"description_limit"`
}

// SonarQube configures the fetch-sonar command. The API token is taken from
// the SONAR_TOKEN environment variable, never from the config file.
type SonarQube struct {
	URL     string        `yaml:"url"`
	Project string        `yaml:"project"`
	Timeout time.Duration `yaml:"timeout"`
}

// Upload configures the S3 publisher for rendered report trees.
type Upload struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

type HTTPClient struct {
	Debug            bool          `yaml:"debug"`
	RetryCount       int           `yaml:"retry_count"`
	RetryWaitTime    time.Duration `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration `yaml:"retry_max_wait_time"`
	Timeout          time.Duration `yaml:"timeout"`
}

// GetReportioHome returns the resolved home folder.
func GetReportioHome(cfg *Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.Reportio.HomeFolder
}

// GetResultsHome returns the resolved results folder.
func GetResultsHome(cfg *Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.Reportio.ResultsFolder
}

// GetTempHome returns the resolved temp folder.
func GetTempHome(cfg *Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.Reportio.TempFolder
}
