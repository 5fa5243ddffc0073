package config

import "time"

// DefaultGlitchDelay is how long performance_glitch_user waits on login.
const DefaultGlitchDelay = 500 * time.Millisecond

// ServerConfig holds settings for the local storefront replica.
type ServerConfig struct {
	Host        string
	Port        string
	GlitchDelay time.Duration
}

// LoadServerConfig loads server configuration from environment variables.
// An unparsable GLITCH_DELAY falls back to the default.
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	delay, err := parseDuration(getenv, "GLITCH_DELAY", DefaultGlitchDelay)
	if err != nil {
		delay = DefaultGlitchDelay
	}

	return ServerConfig{
		Host:        getenv("HOST"),
		Port:        port,
		GlitchDelay: delay,
	}
}
