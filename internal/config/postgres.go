package config

import (
	"fmt"
)

// PostgresConfig holds the connection settings of the optional order archive.
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
}

// PostgresEnabled reports whether the replica should archive orders in
// PostgreSQL instead of memory.
func PostgresEnabled(getenv func(string) string) bool {
	return getenv("POSTGRES_HOSTNAME") != ""
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
	}

	var problems []string
	for _, f := range []struct{ key, value string }{
		{"POSTGRES_USER", config.User},
		{"POSTGRES_PASSWORD", config.Password},
		{"POSTGRES_DB", config.Database},
		{"POSTGRES_HOSTNAME", config.Host},
	} {
		if f.value == "" {
			problems = append(problems, f.key+" is required")
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Errors: problems}
	}

	return config, nil
}

// ConnectionString returns a lib/pq keyword/value connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Database)
}
