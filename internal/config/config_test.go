package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigValue(t *testing.T) {
	tests := []struct {
		name         string
		flagValue    string
		envKey       string
		envValue     string
		defaultValue string
		expected     string
	}{
		{
			name:         "flag takes precedence",
			flagValue:    "from-flag",
			envKey:       "TEST_CONFIG_VALUE",
			envValue:     "from-env",
			defaultValue: "from-default",
			expected:     "from-flag",
		},
		{
			name:         "env used when flag empty",
			flagValue:    "",
			envKey:       "TEST_CONFIG_VALUE",
			envValue:     "from-env",
			defaultValue: "from-default",
			expected:     "from-env",
		},
		{
			name:         "default used when flag and env empty",
			flagValue:    "",
			envKey:       "TEST_CONFIG_VALUE",
			envValue:     "",
			defaultValue: "from-default",
			expected:     "from-default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(tt.envKey, tt.envValue)
			}

			got := getConfigValue(tt.flagValue, tt.envKey, tt.defaultValue)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetBoolConfigValue(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue bool
		expected     bool
	}{
		{"true string", "true", false, true},
		{"one", "1", false, true},
		{"yes", "yes", false, true},
		{"uppercase TRUE", "TRUE", false, true},
		{"false string", "false", true, false},
		{"zero", "0", true, false},
		{"garbage is false", "maybe", true, false},
		{"empty uses default true", "", true, true},
		{"empty uses default false", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_BOOL_VALUE", tt.value)
			}

			got := getBoolConfigValue("", "TEST_BOOL_VALUE", tt.defaultValue)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetIntConfigValue(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue int
		expected     int
	}{
		{"valid int", "42", 10, 42},
		{"negative", "-5", 10, -5},
		{"invalid falls back", "not-a-number", 10, 10},
		{"empty uses default", "", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_INT_VALUE", tt.value)
			}

			got := getIntConfigValue("", "TEST_INT_VALUE", tt.defaultValue)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetFloatConfigValue(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue float64
		expected     float64
	}{
		{"valid float", "2.5", 1.0, 2.5},
		{"integer string", "3", 1.0, 3.0},
		{"invalid falls back", "abc", 1.5, 1.5},
		{"empty uses default", "", 1.5, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_FLOAT_VALUE", tt.value)
			}

			got := getFloatConfigValue("", "TEST_FLOAT_VALUE", tt.defaultValue)
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("loads simple file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".env")
		content := strings.Join([]string{
			"# comment line",
			"",
			"TEST_ENVFILE_KEY=hello",
			`TEST_ENVFILE_QUOTED="quoted value"`,
		}, "\n")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		t.Setenv("TEST_ENVFILE_KEY", "")
		t.Setenv("TEST_ENVFILE_QUOTED", "")
		os.Unsetenv("TEST_ENVFILE_KEY")
		os.Unsetenv("TEST_ENVFILE_QUOTED")

		require.NoError(t, loadEnvFile(path))
		assert.Equal(t, "hello", os.Getenv("TEST_ENVFILE_KEY"))
		assert.Equal(t, "quoted value", os.Getenv("TEST_ENVFILE_QUOTED"))
	})

	t.Run("env vars take precedence over file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(path, []byte("TEST_ENVFILE_PRI=from-file\n"), 0o600))

		t.Setenv("TEST_ENVFILE_PRI", "from-env")

		require.NoError(t, loadEnvFile(path))
		assert.Equal(t, "from-env", os.Getenv("TEST_ENVFILE_PRI"))
	})

	t.Run("invalid line format", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(path, []byte("NOT A VALID LINE\n"), 0o600))

		err := loadEnvFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("missing file returns error", func(t *testing.T) {
		err := loadEnvFile(filepath.Join(t.TempDir(), "does-not-exist"))
		assert.Error(t, err)
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name        string
		path        string
		defaultPath string
		expected    string
	}{
		{
			name:        "empty uses default",
			path:        "",
			defaultPath: "/data/vidlearn.db",
			expected:    "/data/vidlearn.db",
		},
		{
			name:     "tilde expansion",
			path:     "~/VidLearn/db.sqlite",
			expected: filepath.Join(home, "VidLearn", "db.sqlite"),
		},
		{
			name:     "absolute path cleaned",
			path:     "/data//vidlearn/../vidlearn.db",
			expected: "/data/vidlearn.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.path, tt.defaultPath)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("relative path becomes absolute", func(t *testing.T) {
		got, err := expandPath("relative/db.sqlite", "")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.App.Environment = "development"
		cfg.Logger.Level = "info"
		cfg.Database.Path = "/tmp/test.db"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty environment",
			mutate:  func(c *Config) { c.App.Environment = "" },
			wantErr: "ENV is required",
		},
		{
			name:    "bad environment",
			mutate:  func(c *Config) { c.App.Environment = "testing" },
			wantErr: "invalid environment",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logger.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database path",
		},
		{
			name:    "non-positive LLM timeout",
			mutate:  func(c *Config) { c.LLM.RequestTimeout = 0 },
			wantErr: "timeout must be positive",
		},
		{
			name:   "staging environment accepted",
			mutate: func(c *Config) { c.App.Environment = "staging" },
		},
		{
			name:   "uppercase log level accepted",
			mutate: func(c *Config) { c.Logger.Level = "DEBUG" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"ENV", "LOG_LEVEL", "DATABASE_PATH", "TEMPLATES_PATH", "SERVER_PORT",
		"CORS_ORIGIN", "LLM_ENDPOINT", "LLM_DEPLOYMENT", "LLM_API_KEY",
		"LLM_REQUEST_TIMEOUT", "LLM_RPS", "LLM_BURST", "SUMMARY_PRETTIFY",
		"TEMPLATES_WATCH", "LLM_DEPLOYMENT_REASONING", "LLM_DEPLOYMENT_QUIZ",
		"LLM_API_VERSION",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadFromEnv("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.LLM.RequestTimeout)
	assert.Equal(t, "gpt-4-1", cfg.LLM.Deployment)
	assert.Equal(t, cfg.LLM.Deployment, cfg.LLM.QuizDeployment)
	assert.True(t, cfg.Summarizer.PrettifyEnabled)
	assert.Equal(t, 1_000_000, cfg.Summarizer.MaxTranscriptSize)
	assert.True(t, cfg.Templates.WatchReload)
	assert.True(t, filepath.IsAbs(cfg.Database.Path))
	assert.Contains(t, cfg.Database.Path, "vidlearn.db")
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_PATH", "/tmp/override.db")
	t.Setenv("LLM_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("LLM_DEPLOYMENT", "gpt-custom")
	t.Setenv("LLM_REQUEST_TIMEOUT", "30s")
	t.Setenv("LLM_RPS", "5.5")
	t.Setenv("LLM_BURST", "10")
	t.Setenv("SUMMARY_PRETTIFY", "false")

	cfg, err := LoadFromEnv("")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, "https://example.openai.azure.com", cfg.LLM.Endpoint)
	assert.Equal(t, "gpt-custom", cfg.LLM.Deployment)
	assert.Equal(t, "gpt-custom", cfg.LLM.QuizDeployment)
	assert.Equal(t, 30*time.Second, cfg.LLM.RequestTimeout)
	assert.InDelta(t, 5.5, cfg.LLM.RPS, 0.0001)
	assert.Equal(t, 10, cfg.LLM.Burst)
	assert.False(t, cfg.Summarizer.PrettifyEnabled)
}

func TestLoadFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv("LLM_REQUEST_TIMEOUT", "not-a-duration")

	_, err := LoadFromEnv("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm_request_timeout")
}
