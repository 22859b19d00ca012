package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration.
type Config struct {
	Addr              string   `yaml:"addr"`
	DBPath            string   `yaml:"dbPath"`
	AuthRequired      bool     `yaml:"authRequired"`
	AuthTokens        []string `yaml:"authTokens"`
	LogFormat         string   `yaml:"logFormat"` // "text" or "json"
	AnalysisQueueSize int      `yaml:"analysisQueueSize"`
	ShutdownTimeoutMs int      `yaml:"shutdownTimeoutMs"`
}

// DefaultConfig returns a Config with sensible defaults. Authentication is
// on by default; turning it off is an explicit decision.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		DBPath:            "miv.db",
		AuthRequired:      true,
		LogFormat:         "text",
		AnalysisQueueSize: 64,
		ShutdownTimeoutMs: 10000,
	}
}

// Load reads configuration from an optional YAML file, then applies
// environment overrides on top. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return cfg, fmt.Errorf("invalid logFormat %q: must be text or json", cfg.LogFormat)
	}
	if cfg.AuthRequired && len(cfg.AuthTokens) == 0 {
		return cfg, fmt.Errorf("authRequired is set but no authTokens are configured")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MIV_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("MIV_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("MIV_AUTH_REQUIRED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AuthRequired = b
		}
	}
	if v := os.Getenv("MIV_AUTH_TOKENS"); v != "" {
		cfg.AuthTokens = splitTokens(v)
	}
	if v := os.Getenv("MIV_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("MIV_ANALYSIS_QUEUE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AnalysisQueueSize = n
		}
	}
	if v := os.Getenv("MIV_SHUTDOWN_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ShutdownTimeoutMs = n
		}
	}
}

func splitTokens(v string) []string {
	var tokens []string
	for _, t := range strings.Split(v, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
