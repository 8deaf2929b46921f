package config

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	t.Run("all required values present", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadFrom(envFrom(map[string]string{
			"JIRA_URL":       "https://example.atlassian.net/",
			"JIRA_EMAIL":     "dev@example.com",
			"JIRA_API_TOKEN": "secret",
		}))
		require.NoError(t, err)

		assert.Equal(t, "https://example.atlassian.net", cfg.JiraURL)
		assert.Equal(t, "dev@example.com", cfg.JiraEmail)
		assert.Equal(t, "secret", cfg.JiraAPIToken)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("log level override", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadFrom(envFrom(map[string]string{
			"JIRA_URL":       "https://example.atlassian.net",
			"JIRA_EMAIL":     "dev@example.com",
			"JIRA_API_TOKEN": "secret",
			"LOG_LEVEL":      "debug",
		}))
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("missing values are all reported", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadFrom(envFrom(map[string]string{
			"JIRA_EMAIL": "dev@example.com",
			"JIRA_URL":   "   ",
		}))
		require.Error(t, err)
		assert.Nil(t, cfg)

		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, []string{"JIRA_API_TOKEN", "JIRA_URL"}, cfgErr.Missing)
		assert.Contains(t, err.Error(), "JIRA_API_TOKEN, JIRA_URL")
	})
}
