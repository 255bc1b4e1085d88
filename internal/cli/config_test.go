package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_ReportsEveryVariable(t *testing.T) {
	err := Config{}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	msg := err.Error()
	assert.Contains(t, msg, "CRAWLKIT_API_KEY is required")
	assert.Contains(t, msg, "CRAWLKIT_BASE_URL is required")
	assert.Contains(t, msg, "CRAWLKIT_TIMEOUT must be greater than 0")
	assert.Contains(t, msg, "CRAWLKIT_LOG_LEVEL must be one of: debug info warn error")
}

func TestConfig_Validate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{
			name:   "key prefix",
			modify: func(c *Config) { c.APIKey = "sk_live" },
			want:   `CRAWLKIT_API_KEY must start with "ck_"`,
		},
		{
			name:   "relative base url",
			modify: func(c *Config) { c.BaseURL = "api.test" },
			want:   "CRAWLKIT_BASE_URL must be an absolute URL",
		},
		{
			name:   "negative timeout",
			modify: func(c *Config) { c.Timeout = -time.Second },
			want:   "CRAWLKIT_TIMEOUT must be greater than 0",
		},
		{
			name:   "log level",
			modify: func(c *Config) { c.LogLevel = "trace" },
			want:   "CRAWLKIT_LOG_LEVEL must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("CRAWLKIT_API_KEY", "ck_env_key")
	t.Setenv("CRAWLKIT_BASE_URL", "https://staging.api.test")
	t.Setenv("CRAWLKIT_TIMEOUT", "45s")
	t.Setenv("CRAWLKIT_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ck_env_key", cfg.APIKey)
	assert.Equal(t, "https://staging.api.test", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_BadDuration(t *testing.T) {
	t.Setenv("CRAWLKIT_TIMEOUT", "soon")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrInvalidConfig)
}
