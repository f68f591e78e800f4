package config

import (
	"fmt"
	"time"
)

// Default values applied by Validate for omitted or invalid fields.
const (
	DefaultUserAgent       = "Mozilla/5.0"
	DefaultMaxTasks        = 500
	DefaultMaxDepth        = 3
	DefaultMinContentChars = 100
	DefaultOutputCSV       = "depth_crawled_urls.csv"
	DefaultFetchTimeout    = 10 * time.Second
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// UserAgent
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}

	// MaxTasks
	if c.MaxTasks < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"max_tasks cannot be negative, defaulting to %d", DefaultMaxTasks))
		c.MaxTasks = DefaultMaxTasks
	}
	if c.MaxTasks == 0 {
		c.MaxTasks = DefaultMaxTasks
	}

	// MaxDepth
	if c.MaxDepth < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"max_depth cannot be negative, defaulting to %d", DefaultMaxDepth))
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}

	// MinContentChars
	if c.MinContentChars <= 0 {
		c.MinContentChars = DefaultMinContentChars
	}

	// OutputCSV
	if c.OutputCSV == "" {
		c.OutputCSV = DefaultOutputCSV
	}

	// HTTP client settings
	if c.HTTPClientSettings.Timeout < 0 {
		warnings = append(warnings, "http_client_settings.timeout cannot be negative, using default")
		c.HTTPClientSettings.Timeout = 0
	}
	if c.HTTPClientSettings.Timeout == 0 {
		c.HTTPClientSettings.Timeout = DefaultFetchTimeout
	}
	if c.HTTPClientSettings.MaxIdleConns <= 0 {
		c.HTTPClientSettings.MaxIdleConns = 100
	}
	if c.HTTPClientSettings.MaxIdleConnsPerHost <= 0 {
		c.HTTPClientSettings.MaxIdleConnsPerHost = 100
	}
	if c.HTTPClientSettings.IdleConnTimeout <= 0 {
		c.HTTPClientSettings.IdleConnTimeout = 90 * time.Second
	}
	if c.HTTPClientSettings.TLSHandshakeTimeout <= 0 {
		c.HTTPClientSettings.TLSHandshakeTimeout = 10 * time.Second
	}
	if c.HTTPClientSettings.ExpectContinueTimeout <= 0 {
		c.HTTPClientSettings.ExpectContinueTimeout = 1 * time.Second
	}
	if c.HTTPClientSettings.DialerTimeout <= 0 {
		c.HTTPClientSettings.DialerTimeout = 15 * time.Second
	}
	if c.HTTPClientSettings.DialerKeepAlive <= 0 {
		c.HTTPClientSettings.DialerKeepAlive = 30 * time.Second
	}

	return warnings, nil
}
