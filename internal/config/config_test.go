package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballerina-platform/ballerinalsw/i18n"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Completion.MaxDelegationDepth)
	assert.False(t, cfg.Completion.StrictInvariants)
	assert.Empty(t, cfg.Completion.CatalogPath)
	assert.Equal(t, i18n.LanguageEN, cfg.Language())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ballerinalsw.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
completion:
  max_delegation_depth: 2
  language: cn
log:
  level: debug
  json: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Completion.MaxDelegationDepth)
	assert.Equal(t, i18n.LanguageCN, cfg.Language())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("BALLSW_COMPLETION_STRICT_INVARIANTS", "true")
	t.Setenv("BALLSW_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Completion.StrictInvariants)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	valid := Config{
		Completion: CompletionConfig{MaxDelegationDepth: 4, Language: "en"},
		Log:        LogConfig{Level: "info"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero depth", func(c *Config) { c.Completion.MaxDelegationDepth = 0 }, "max_delegation_depth"},
		{"negative depth", func(c *Config) { c.Completion.MaxDelegationDepth = -1 }, "max_delegation_depth"},
		{"unknown language", func(c *Config) { c.Completion.Language = "fr" }, "completion.language"},
		{"empty language defaults to en", func(c *Config) { c.Completion.Language = "" }, ""},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
