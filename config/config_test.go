package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/auth")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://localhost:5432/auth", cfg.DBURL)
	assert.Equal(t, "access-secret", cfg.AccessTokenSecret)
	assert.Equal(t, "refresh-secret", cfg.RefreshTokenSecret)
	assert.Equal(t, 30, cfg.AccessExpiryMin)
	assert.Equal(t, 1440, cfg.RefreshExpiryMin)
	assert.Equal(t, 60, cfg.ResetExpiryMin)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_URL", "postgres://db:5432/auth")
	t.Setenv("ACCESS_TOKEN_SECRET", "a")
	t.Setenv("REFRESH_TOKEN_SECRET", "r")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "15")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "2880")
	t.Setenv("RESET_TOKEN_EXPIRY", "30")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15, cfg.AccessExpiryMin)
	assert.Equal(t, 2880, cfg.RefreshExpiryMin)
	assert.Equal(t, 30, cfg.ResetExpiryMin)
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		value      string
		defaultVal string
		expected   string
	}{
		{
			name:       "returns set value",
			key:        "TEST_GET_ENV_SET",
			value:      "custom",
			defaultVal: "fallback",
			expected:   "custom",
		},
		{
			name:       "returns default for unset key",
			key:        "TEST_GET_ENV_UNSET",
			value:      "",
			defaultVal: "fallback",
			expected:   "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			assert.Equal(t, tt.expected, getEnv(tt.key, tt.defaultVal))
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		value      string
		defaultVal int
		expected   int
	}{
		{
			name:       "parses valid integer",
			key:        "TEST_INT_VALID",
			value:      "42",
			defaultVal: 10,
			expected:   42,
		},
		{
			name:       "returns default for unset key",
			key:        "TEST_INT_UNSET",
			value:      "",
			defaultVal: 10,
			expected:   10,
		},
		{
			name:       "returns default for garbage value",
			key:        "TEST_INT_GARBAGE",
			value:      "not-a-number",
			defaultVal: 10,
			expected:   10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			assert.Equal(t, tt.expected, getEnvAsInt(tt.key, tt.defaultVal))
		})
	}
}
