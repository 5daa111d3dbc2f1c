package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"PRIMARY_ENGINE", "SECONDARY_ENGINE", "MIN_TEXT_LEN",
		"KEYWORD_FALLBACK", "INCLUDE_OPINION", "CLASSIFY_MAX_RETRIES",
		"REQUEST_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	if cfg.Classify.PrimaryEngine != "gemini" {
		t.Errorf("PrimaryEngine = %q, want gemini", cfg.Classify.PrimaryEngine)
	}
	if cfg.Classify.SecondaryEngine != "" {
		t.Errorf("SecondaryEngine = %q, want empty", cfg.Classify.SecondaryEngine)
	}
	if cfg.Classify.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want 1", cfg.Classify.MaxRetries)
	}
	if cfg.Classify.RequestTimeout != 60*time.Second {
		t.Errorf("RequestTimeout = %v, want 60s", cfg.Classify.RequestTimeout)
	}
	if cfg.Pipeline.MinTextLen != 100 {
		t.Errorf("MinTextLen = %d, want 100", cfg.Pipeline.MinTextLen)
	}
	if !cfg.Pipeline.FallbackEnabled {
		t.Error("FallbackEnabled should default to true")
	}
	if !cfg.Pipeline.IncludeOpinion {
		t.Error("IncludeOpinion should default to true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PRIMARY_ENGINE", "openai")
	t.Setenv("SECONDARY_ENGINE", "gemini")
	t.Setenv("MIN_TEXT_LEN", "40")
	t.Setenv("KEYWORD_FALLBACK", "false")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("CLASSIFY_MAX_RETRIES", "3")

	cfg := FromEnv()

	if cfg.Classify.PrimaryEngine != "openai" || cfg.Classify.SecondaryEngine != "gemini" {
		t.Errorf("engines = %q/%q", cfg.Classify.PrimaryEngine, cfg.Classify.SecondaryEngine)
	}
	if cfg.Pipeline.MinTextLen != 40 {
		t.Errorf("MinTextLen = %d, want 40", cfg.Pipeline.MinTextLen)
	}
	if cfg.Pipeline.FallbackEnabled {
		t.Error("FallbackEnabled should be false")
	}
	if cfg.Classify.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.Classify.RequestTimeout)
	}
	if cfg.Classify.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Classify.MaxRetries)
	}
}

func TestFromEnv_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("MIN_TEXT_LEN", "not-a-number")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := FromEnv()

	if cfg.Pipeline.MinTextLen != 100 {
		t.Errorf("MinTextLen = %d, want default 100", cfg.Pipeline.MinTextLen)
	}
	if cfg.Classify.RequestTimeout != 60*time.Second {
		t.Errorf("RequestTimeout = %v, want default 60s", cfg.Classify.RequestTimeout)
	}
}

func TestModelFor(t *testing.T) {
	c := ClassifyConfig{GeminiModel: "g-model", OpenAIModel: "o-model"}
	if c.ModelFor("gemini") != "g-model" {
		t.Errorf("ModelFor(gemini) = %q", c.ModelFor("gemini"))
	}
	if c.ModelFor("openai") != "o-model" {
		t.Errorf("ModelFor(openai) = %q", c.ModelFor("openai"))
	}
	if c.ModelFor("") != "" {
		t.Errorf("ModelFor(empty) = %q, want empty", c.ModelFor(""))
	}
}
