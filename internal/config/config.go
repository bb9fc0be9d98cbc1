// Package config provides application configuration management with support for
// environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	Server     ServerConfig
	Database   DatabaseConfig
	LLM        LLMConfig
	Summarizer SummarizerConfig
	Templates  TemplatesConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	CORSOrigin   string        // Allowed CORS origin for the web client
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// DatabaseConfig holds SQLite storage configuration.
type DatabaseConfig struct {
	Path string // Path to the SQLite database file
}

// LLMConfig holds remote text-completion service configuration.
//
// Components never read these values from the process environment directly;
// the config is constructed once at startup and passed down explicitly.
type LLMConfig struct {
	Endpoint   string // Base URL of the completion service
	APIKey     string
	APIVersion string

	// Deployment identifiers for the different model tiers.
	Deployment          string // Main completion deployment
	ReasoningDeployment string // Deployment used for genre classification
	QuizDeployment      string // Deployment used for quiz generation

	RequestTimeout time.Duration // Per-call timeout (default: 60s)
	RPS            float64       // Outbound rate limit per deployment
	Burst          int
}

// SummarizerConfig holds summarization pipeline configuration.
type SummarizerConfig struct {
	// PrettifyEnabled controls the optional formatting pass over final summaries.
	PrettifyEnabled bool
	// MaxTranscriptSize is the hard input ceiling in characters.
	MaxTranscriptSize int
}

// TemplatesConfig holds summary template store configuration.
type TemplatesConfig struct {
	// Path is the directory holding summary_templates.yaml and
	// hybrid_templates.yaml. Empty means built-in templates only.
	Path string
	// WatchReload enables hot reload of template files (default: true)
	WatchReload bool
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dbPath := flag.String("db-path", "", "Path to SQLite database file")
	templatesPath := flag.String("templates-path", "", "Path to summary template directory")

	serverPort := flag.String("port", "", "Server port (default: 8080)")
	corsOrigin := flag.String("cors-origin", "", "Allowed CORS origin")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	llmEndpoint := flag.String("llm-endpoint", "", "Base URL of the text completion service")
	llmDeployment := flag.String("llm-deployment", "", "Completion deployment name")
	llmTimeout := flag.String("llm-timeout", "", "Per-call LLM timeout (default: 60s)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := defaultConfig()
	cfg.App.Environment = getConfigValue(*env, "ENV", "development")
	cfg.Logger.Level = getConfigValue(*logLevel, "LOG_LEVEL", "info")
	cfg.Database.Path = getConfigValue(*dbPath, "DATABASE_PATH", "")
	cfg.Templates.Path = getConfigValue(*templatesPath, "TEMPLATES_PATH", "")
	cfg.Server.Port = getConfigValue(*serverPort, "SERVER_PORT", "8080")
	cfg.Server.CORSOrigin = getConfigValue(*corsOrigin, "CORS_ORIGIN", "http://localhost:8051")
	cfg.LLM.Endpoint = getConfigValue(*llmEndpoint, "LLM_ENDPOINT", "")
	cfg.LLM.Deployment = getConfigValue(*llmDeployment, "LLM_DEPLOYMENT", "gpt-4-1")

	var err error
	if cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}
	if cfg.LLM.RequestTimeout, err = parseDurationValue(*llmTimeout, "LLM_REQUEST_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	cfg.loadEnvOnly()

	if err := cfg.expandDatabasePath(); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables and an optional
// .env file, without touching the global flag set. The standalone CLIs use
// this since they define their own positional arguments.
func LoadFromEnv(envFile string) (*Config, error) {
	if envFile != "" {
		_ = loadEnvFile(envFile)
	}

	cfg := defaultConfig()
	cfg.App.Environment = getConfigValue("", "ENV", "development")
	cfg.Logger.Level = getConfigValue("", "LOG_LEVEL", "info")
	cfg.Database.Path = getConfigValue("", "DATABASE_PATH", "")
	cfg.Templates.Path = getConfigValue("", "TEMPLATES_PATH", "")
	cfg.Server.Port = getConfigValue("", "SERVER_PORT", "8080")
	cfg.Server.CORSOrigin = getConfigValue("", "CORS_ORIGIN", "http://localhost:8051")
	cfg.LLM.Endpoint = getConfigValue("", "LLM_ENDPOINT", "")
	cfg.LLM.Deployment = getConfigValue("", "LLM_DEPLOYMENT", "gpt-4-1")

	var err error
	if cfg.LLM.RequestTimeout, err = parseDurationValue("", "LLM_REQUEST_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	cfg.loadEnvOnly()

	if err := cfg.expandDatabasePath(); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config populated with defaults for values that are
// not exposed as flags.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		LLM: LLMConfig{
			RequestTimeout: 60 * time.Second,
			RPS:            2.0,
			Burst:          4,
		},
		Summarizer: SummarizerConfig{
			PrettifyEnabled:   true,
			MaxTranscriptSize: 1_000_000,
		},
		Templates: TemplatesConfig{
			WatchReload: true,
		},
	}
}

// loadEnvOnly fills in values that are only configurable via environment
// variables (secrets and tuning knobs that have no flag).
func (c *Config) loadEnvOnly() {
	c.LLM.APIKey = getConfigValue("", "LLM_API_KEY", "")
	c.LLM.APIVersion = getConfigValue("", "LLM_API_VERSION", "2024-12-01-preview")
	c.LLM.ReasoningDeployment = getConfigValue("", "LLM_DEPLOYMENT_REASONING", "o4-mini")
	c.LLM.QuizDeployment = getConfigValue("", "LLM_DEPLOYMENT_QUIZ", c.LLM.Deployment)
	c.LLM.RPS = getFloatConfigValue("", "LLM_RPS", c.LLM.RPS)
	c.LLM.Burst = getIntConfigValue("", "LLM_BURST", c.LLM.Burst)
	c.Summarizer.PrettifyEnabled = getBoolConfigValue("", "SUMMARY_PRETTIFY", c.Summarizer.PrettifyEnabled)
	c.Templates.WatchReload = getBoolConfigValue("", "TEMPLATES_WATCH", c.Templates.WatchReload)
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Database.Path == "" {
		return errors.New("database path cannot be empty after expansion")
	}

	if c.LLM.RequestTimeout <= 0 {
		return errors.New("LLM request timeout must be positive")
	}

	// LLM endpoint and key may be empty: every consumer degrades to its
	// documented fallback when the remote service is unreachable.

	return nil
}

// expandDatabasePath expands ~ and makes the path absolute.
func (c *Config) expandDatabasePath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "VidLearn", "vidlearn.db")

	expanded, err := expandPath(c.Database.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Database.Path = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// parseDurationValue resolves a duration from flag, env var, or default.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	str := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(str)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), str, err)
	}
	return d, nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float64 from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
