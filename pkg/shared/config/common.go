package config

import (
	"crypto/tls"
	"time"
)

// BaseHTTPConfig holds common HTTP client configuration settings.
type BaseHTTPConfig struct {
	RetryCount       int           // Number of retries for failed requests
	RetryWaitTime    time.Duration // Wait time between retries
	RetryMaxWaitTime time.Duration // Maximum wait time for retries
	Timeout          time.Duration // Timeout for requests
	TLSClientConfig  *tls.Config   // TLS configuration
}

// RestyHTTPClientConfig holds additional configuration settings for the Resty HTTP client.
type RestyHTTPClientConfig struct {
	BaseHTTPConfig
	Debug bool // Flag to enable Resty debug mode
}

// DefaultHTTPConfig returns a base configuration for HTTP clients with default values.
func DefaultHTTPConfig() BaseHTTPConfig {
	return BaseHTTPConfig{
		RetryCount:       5,
		RetryWaitTime:    1 * time.Second,
		RetryMaxWaitTime: 5 * time.Second,
		Timeout:          30 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12, // Enforce a minimum TLS version
		},
	}
}

// BuildRestyConfig merges the global http_client directive over the defaults.
func BuildRestyConfig(cfg *Config) RestyHTTPClientConfig {
	base := DefaultHTTPConfig()
	resty := RestyHTTPClientConfig{BaseHTTPConfig: base}

	if cfg == nil {
		return resty
	}

	resty.RetryCount = SetThen(cfg.HTTPClient.RetryCount, base.RetryCount)
	resty.RetryWaitTime = SetThen(cfg.HTTPClient.RetryWaitTime, base.RetryWaitTime)
	resty.RetryMaxWaitTime = SetThen(cfg.HTTPClient.RetryMaxWaitTime, base.RetryMaxWaitTime)
	resty.Timeout = SetThen(cfg.HTTPClient.Timeout, base.Timeout)
	resty.Debug = cfg.HTTPClient.Debug

	return resty
}
