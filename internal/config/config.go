// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load(ctx) layers sources on top.
// - All future functions must accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile optionally mirrors log output into a rotated file.
	LogFile string `koanf:"log_file"`

	// Addr configures the page server listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BackendURL is the base URL of the REST backend the pages are synced from.
	BackendURL string `koanf:"backend_url"`

	// EmployeeID is the placeholder identity used for employee-scoped views.
	EmployeeID int `koanf:"employee_id"`

	// RequestTimeoutMS bounds each backend call; 0 disables the timeout.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// BreakerMaxFailures trips the backend circuit breaker after this many
	// consecutive failures; 0 disables the breaker.
	BreakerMaxFailures int `koanf:"breaker_max_failures"`

	// BreakerOpenTimeoutMS is how long the breaker stays open before probing.
	BreakerOpenTimeoutMS int `koanf:"breaker_open_timeout_ms"`

	// DevAPIAddr is the listen address of the development backend (cmd/devapi).
	DevAPIAddr string `koanf:"devapi_addr"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		BackendURL:           "http://localhost:5000",
		EmployeeID:           1,
		RequestTimeoutMS:     0,
		BreakerMaxFailures:   5,
		BreakerOpenTimeoutMS: 5000,
		DevAPIAddr:           ":5000",
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// BreakerOpenTimeout returns BreakerOpenTimeoutMS as a duration.
func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenTimeoutMS) * time.Millisecond
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.EmployeeID <= 0:
		return fmt.Errorf("%w: employee_id must be positive", ErrInvalidConfig)
	case c.RequestTimeoutMS < 0:
		return fmt.Errorf("%w: request_timeout_ms must not be negative", ErrInvalidConfig)
	case c.BreakerMaxFailures < 0:
		return fmt.Errorf("%w: breaker_max_failures must not be negative", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: backend_url %q is not an absolute URL", ErrInvalidConfig, c.BackendURL)
	}
	return nil
}
