package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const defaultLogLevel = "info"

// Config holds all configuration for the application
type Config struct {
	// Jira configuration
	JiraURL      string // Required: Jira site base URL, e.g. https://example.atlassian.net
	JiraEmail    string // Required: account email used for basic auth
	JiraAPIToken string // Required: API token paired with JiraEmail

	// Log level
	LogLevel string // Optional: defaults to info
}

// ConfigurationError reports required environment variables that are not set.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("Jira authentication required. Set %s environment variables (missing: %s)",
		"JIRA_URL, JIRA_EMAIL, and JIRA_API_TOKEN", strings.Join(e.Missing, ", "))
}

// Load creates a new Config instance from environment variables
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom builds a Config using getenv to look up values.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	// Load required values
	requiredVars := map[string]*string{
		"JIRA_URL":       &cfg.JiraURL,
		"JIRA_EMAIL":     &cfg.JiraEmail,
		"JIRA_API_TOKEN": &cfg.JiraAPIToken,
	}

	var missingVars []string
	for env, ptr := range requiredVars {
		*ptr = strings.TrimSpace(getenv(env))
		if *ptr == "" {
			missingVars = append(missingVars, env)
		}
	}

	if len(missingVars) > 0 {
		sort.Strings(missingVars)
		return nil, &ConfigurationError{Missing: missingVars}
	}

	cfg.JiraURL = strings.TrimRight(cfg.JiraURL, "/")

	cfg.LogLevel = strings.TrimSpace(getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg, nil
}
