package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, 50, cfg.Pipeline.MaxCompanies)
	assert.Equal(t, 10, cfg.Pipeline.MaxContacts)
	assert.NotEmpty(t, cfg.Anthropic.Models, "model priority chain has a default")
	assert.Equal(t, "sonar-pro", cfg.Perplexity.Model)
	assert.Equal(t, "https://api.perplexity.ai", cfg.Perplexity.BaseURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LEADSCOUT_SERPER_KEY", "test-serper-key")
	t.Setenv("LEADSCOUT_PIPELINE_WORKERS", "2")
	t.Setenv("LEADSCOUT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-serper-key", cfg.Serper.Key)
	assert.Equal(t, 2, cfg.Pipeline.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateLLM(t *testing.T) {
	var cfg Config
	require.Error(t, cfg.ValidateLLM(), "no key configured")

	cfg.Anthropic.Key = "sk-ant-test"
	assert.NoError(t, cfg.ValidateLLM())

	cfg = Config{}
	cfg.Perplexity.Key = "pplx-test"
	assert.NoError(t, cfg.ValidateLLM(), "perplexity alone is enough")
}

func TestValidateDiscovery(t *testing.T) {
	var cfg Config
	err := cfg.ValidateDiscovery()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serper")

	cfg.Serper.Key = "serper-test"
	err = cfg.ValidateDiscovery()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hunter")

	cfg.Hunter.Key = "hunter-test"
	assert.NoError(t, cfg.ValidateDiscovery())
}

func TestInitLoggerBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shouting", Format: "json"})
	require.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "console"}))
}
