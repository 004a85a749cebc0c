package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Development(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Port:      "8462",
		JWTSecret: "your-secret-key-change-in-production",
		Env:       "development",
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingPort(t *testing.T) {
	t.Parallel()

	cfg := &Config{JWTSecret: "secret"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	t.Parallel()

	cfg := &Config{Port: "8462"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_ProductionRejectsDefaultSecret(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Port:      "8462",
		JWTSecret: "your-secret-key-change-in-production",
		Env:       "production",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default value")
}

func TestValidate_ProductionRequiresLongSecret(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Port:       "8462",
		JWTSecret:  "short-secret",
		DBPassword: "something-strong",
		Env:        "production",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestValidate_ProductionRequiresStrongDBPassword(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Port:       "8462",
		JWTSecret:  strings.Repeat("s", 40),
		DBPassword: "password",
		Env:        "production",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestValidate_ProductionAccepted(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Port:       "8462",
		JWTSecret:  strings.Repeat("s", 40),
		DBPassword: "a-genuinely-strong-password",
		DBSSLMode:  "require",
		Env:        "production",
	}
	assert.NoError(t, cfg.Validate())
}
