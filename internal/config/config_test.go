package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tg-token")
	t.Setenv("HF_API_KEY", "hf-key")
	t.Setenv("GEMINI_API_KEY", "gm-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.RelevanceThreshold != 0.8 {
		t.Errorf("RelevanceThreshold = %v, want 0.8", cfg.RelevanceThreshold)
	}
	if cfg.TrustLowConfidence != 0.6 || cfg.TrustHighConfidence != 0.85 {
		t.Errorf("trust thresholds = %v/%v, want 0.6/0.85",
			cfg.TrustLowConfidence, cfg.TrustHighConfidence)
	}
	if cfg.MaxChecked != 100 {
		t.Errorf("MaxChecked = %d, want 100", cfg.MaxChecked)
	}
	if cfg.DigestTimeout != 2*time.Minute {
		t.Errorf("DigestTimeout = %v, want 2m", cfg.DigestTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RELEVANCE_THRESHOLD", "0.85")
	t.Setenv("MAX_CHECKED", "500")
	t.Setenv("HF_BASE_URL", "http://localhost:9999")
	t.Setenv("CLASSIFY_CACHE_TTL_HOURS", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.RelevanceThreshold != 0.85 {
		t.Errorf("RelevanceThreshold = %v, want 0.85", cfg.RelevanceThreshold)
	}
	if cfg.MaxChecked != 500 {
		t.Errorf("MaxChecked = %d, want 500", cfg.MaxChecked)
	}
	if cfg.HFBaseURL != "http://localhost:9999" {
		t.Errorf("HFBaseURL = %q", cfg.HFBaseURL)
	}
	if cfg.ClassifyCacheTTL != time.Hour {
		t.Errorf("ClassifyCacheTTL = %v, want 1h", cfg.ClassifyCacheTTL)
	}
}

func TestValidateMissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("HF_API_KEY", "hf-key")
	t.Setenv("GEMINI_API_KEY", "gm-key")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing TELEGRAM_TOKEN")
	}
}

func TestValidateBadThresholds(t *testing.T) {
	setRequired(t)
	t.Setenv("TRUST_LOW_CONFIDENCE", "0.9")
	t.Setenv("TRUST_HIGH_CONFIDENCE", "0.5")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for inverted trust thresholds")
	}
}
