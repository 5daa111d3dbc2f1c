package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ConfigurationError is fatal and surfaced before any page processing.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Msg)
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// AxiomConfig holds optional Axiom log forwarding configuration.
type AxiomConfig struct {
	Send          bool
	APIKey        string
	OrgID         string
	Dataset       string
	FlushInterval time.Duration
}

// ClassifyConfig defines remote classification engines and their policy.
type ClassifyConfig struct {
	PrimaryEngine   string // "gemini"|"openai"
	SecondaryEngine string // optional failover engine, "" disables
	GeminiModel     string
	OpenAIModel     string
	RequestTimeout  time.Duration
	MaxRetries      int // extra attempts per provider on transient failure
	MaxPromptChars  int
	BreakerBase     time.Duration
	BreakerMax      time.Duration
}

// PipelineConfig defines the page selection policy.
type PipelineConfig struct {
	// MinTextLen is the stripped-text threshold below which pages bypass
	// the remote call.
	MinTextLen int
	// FallbackEnabled selects the hybrid variant (keyword fallback);
	// disabled it becomes the simple editorial-only variant.
	FallbackEnabled bool
	// IncludeOpinion widens the inclusion set to opinion pages.
	IncludeOpinion bool
	// PreflightThreshold configures the text-layer probe.
	PreflightThreshold int
}

// Config is the top-level configuration.
type Config struct {
	Logging  LoggingConfig
	Axiom    AxiomConfig
	Classify ClassifyConfig
	Pipeline PipelineConfig
}

// ModelFor returns the configured model name for an engine.
func (c ClassifyConfig) ModelFor(engine string) string {
	switch engine {
	case "gemini":
		return c.GeminiModel
	case "openai":
		return c.OpenAIModel
	}
	return ""
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
	cfg := Config{}

	cfg.Logging = LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Pretty:     parseBool(getEnv("LOG_PRETTY", devDefaultPretty())),
		File:       getEnv("LOG_FILE", ""),
		MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
		MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
		MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
		Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
	}

	baseDataset := getEnv("AXIOM_DATASET", "dev")
	cfg.Axiom = AxiomConfig{
		Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
		APIKey:        getEnv("AXIOM_API_KEY", ""),
		OrgID:         getEnv("AXIOM_ORG_ID", ""),
		Dataset:       baseDataset + "_pressclip",
		FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "10s"), 10*time.Second),
	}

	cfg.Classify = ClassifyConfig{
		PrimaryEngine:   getEnv("PRIMARY_ENGINE", "gemini"),
		SecondaryEngine: getEnv("SECONDARY_ENGINE", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
		RequestTimeout:  parseDuration(getEnv("REQUEST_TIMEOUT", "60s"), 60*time.Second),
		MaxRetries:      parseInt(getEnv("CLASSIFY_MAX_RETRIES", "1"), 1),
		MaxPromptChars:  parseInt(getEnv("CLASSIFY_MAX_PROMPT_CHARS", "10000"), 10000),
		BreakerBase:     parseDuration(getEnv("BREAKER_BASE_BACKOFF", "30s"), 30*time.Second),
		BreakerMax:      parseDuration(getEnv("BREAKER_MAX_BACKOFF", "5m"), 5*time.Minute),
	}

	cfg.Pipeline = PipelineConfig{
		MinTextLen:         parseInt(getEnv("MIN_TEXT_LEN", "100"), 100),
		FallbackEnabled:    parseBool(getEnv("KEYWORD_FALLBACK", "true")),
		IncludeOpinion:     parseBool(getEnv("INCLUDE_OPINION", "true")),
		PreflightThreshold: parseInt(getEnv("PREFLIGHT_THRESHOLD", "300"), 300),
	}

	return cfg
}

// Helpers
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func devDefaultPretty() string {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if env == "dev" || env == "development" || env == "local" {
		return "true"
	}
	return "false"
}
