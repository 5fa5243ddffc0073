package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Browser engines supported by the suite.
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

const (
	defaultTimeout            = 30 * time.Second
	defaultPerformanceTimeout = 60 * time.Second
	defaultSnapshotDir        = "testdata/snapshots"
	defaultAxeScriptURL       = "https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.10.2/axe.min.js"
)

// SuiteConfig holds the settings of one test run.
type SuiteConfig struct {
	// BaseURL is the storefront root. Empty means the local replica is started.
	BaseURL            string
	Browser            string
	Headless           bool
	DefaultTimeout     time.Duration
	PerformanceTimeout time.Duration
	SnapshotDir        string
	UpdateSnapshots    bool
	// AxeScriptURL is the axe-core build injected for accessibility scans.
	AxeScriptURL       string
	APIKey             string
	LogLevel           string
	LogFormat          string
}

// ValidationError collects every problem found while loading a config.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// LoadSuiteConfig loads suite settings from environment variables.
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	var problems []string

	config := &SuiteConfig{
		BaseURL:      strings.TrimRight(strings.TrimSpace(getenv("BASE_URL")), "/"),
		Browser:      strings.ToLower(getenvOrDefault(getenv, "BROWSER", BrowserChromium)),
		Headless:     true,
		SnapshotDir:  getenvOrDefault(getenv, "SNAPSHOT_DIR", defaultSnapshotDir),
		AxeScriptURL: getenvOrDefault(getenv, "AXE_SCRIPT_URL", defaultAxeScriptURL),
		APIKey:       getenv("API_KEY"),
		LogLevel:     strings.ToLower(getenvOrDefault(getenv, "LOG_LEVEL", "info")),
		LogFormat:    strings.ToLower(getenvOrDefault(getenv, "LOG_FORMAT", "console")),
	}

	if !strings.HasPrefix(config.AxeScriptURL, "https://") && !strings.HasPrefix(config.AxeScriptURL, "http://") {
		problems = append(problems, fmt.Sprintf("AXE_SCRIPT_URL must be an http(s) URL (got %q)", config.AxeScriptURL))
	}

	switch config.Browser {
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		problems = append(problems, fmt.Sprintf("BROWSER must be one of chromium, firefox, webkit (got %q)", config.Browser))
	}

	if raw := getenv("HEADLESS"); raw != "" {
		headless, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("HEADLESS must be a boolean (got %q)", raw))
		} else {
			config.Headless = headless
		}
	}

	if raw := getenv("UPDATE_SNAPSHOTS"); raw != "" {
		update, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("UPDATE_SNAPSHOTS must be a boolean (got %q)", raw))
		} else {
			config.UpdateSnapshots = update
		}
	}

	var err error
	if config.DefaultTimeout, err = parseDuration(getenv, "DEFAULT_TIMEOUT", defaultTimeout); err != nil {
		problems = append(problems, err.Error())
	}
	if config.PerformanceTimeout, err = parseDuration(getenv, "PERFORMANCE_TIMEOUT", defaultPerformanceTimeout); err != nil {
		problems = append(problems, err.Error())
	}

	if config.LogFormat != "console" && config.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be console or json (got %q)", config.LogFormat))
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Errors: problems}
	}
	return config, nil
}

// UsesLocalStorefront reports whether the run targets the in-process replica.
func (c *SuiteConfig) UsesLocalStorefront() bool {
	return c.BaseURL == ""
}

// TimeoutMS returns the default timeout in the float milliseconds playwright expects.
func (c *SuiteConfig) TimeoutMS() float64 {
	return float64(c.DefaultTimeout.Milliseconds())
}

func getenvOrDefault(getenv func(string) string, key, fallback string) string {
	if value := strings.TrimSpace(getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseDuration(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration (got %q)", key, raw)
	}
	return d, nil
}
