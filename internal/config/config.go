package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram settings
	TelegramToken string

	// Classification oracle settings
	HFAPIKey           string
	HFModel            string
	HFBaseURL          string
	RelevanceThreshold float64

	// Trust scoring thresholds. Scores below TrustLowConfidence on the
	// "questionable" label are treated as not actionable and default to
	// trusted; keep both tunable, the placement is policy, not physics.
	TrustLowConfidence  float64
	TrustHighConfidence float64

	// Generation oracle settings
	GeminiAPIKey string
	GeminiModel  string

	// Feed scan settings
	FeedsConfigPath string
	MaxChecked      int

	// Subscription store
	DatabasePath string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	DigestTimeout  time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration

	// Oracle cost control
	ClassifyCacheTTL time.Duration
	MaxClassifyCalls int // per day, 0 = unlimited
	MaxGenerateCalls int // per day, 0 = unlimited
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		HFModel:             "MoritzLaurer/mDeBERTa-v3-base-mnli-xnli",
		HFBaseURL:           "https://api-inference.huggingface.co",
		RelevanceThreshold:  0.8,
		TrustLowConfidence:  0.6,
		TrustHighConfidence: 0.85,
		GeminiModel:         "gemini-1.5-flash",
		FeedsConfigPath:     "configs/feeds.yaml",
		MaxChecked:          100,
		DatabasePath:        "data/newsbot.db",
		RequestTimeout:      30 * time.Second,
		DigestTimeout:       2 * time.Minute,
		RetryAttempts:       3,
		RetryDelay:          2 * time.Second,
		ClassifyCacheTTL:    6 * time.Hour,
	}

	// Load from environment
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.HFAPIKey = os.Getenv("HF_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	cfg.HFModel = getEnvOrDefault("HF_MODEL", cfg.HFModel)
	cfg.HFBaseURL = getEnvOrDefault("HF_BASE_URL", cfg.HFBaseURL)
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.DatabasePath = getEnvOrDefault("DATABASE_PATH", cfg.DatabasePath)

	cfg.RelevanceThreshold = getEnvFloatOrDefault("RELEVANCE_THRESHOLD", cfg.RelevanceThreshold)
	cfg.TrustLowConfidence = getEnvFloatOrDefault("TRUST_LOW_CONFIDENCE", cfg.TrustLowConfidence)
	cfg.TrustHighConfidence = getEnvFloatOrDefault("TRUST_HIGH_CONFIDENCE", cfg.TrustHighConfidence)

	cfg.MaxChecked = getEnvIntOrDefault("MAX_CHECKED", cfg.MaxChecked)
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)
	cfg.MaxClassifyCalls = getEnvIntOrDefault("MAX_CLASSIFY_CALLS", 0)
	cfg.MaxGenerateCalls = getEnvIntOrDefault("MAX_GENERATE_CALLS", 0)

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("DIGEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.DigestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("RETRY_DELAY_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RetryDelay = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("CLASSIFY_CACHE_TTL_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.ClassifyCacheTTL = time.Duration(val) * time.Hour
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.HFAPIKey == "" {
		return fmt.Errorf("HF_API_KEY is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.RelevanceThreshold <= 0 || c.RelevanceThreshold > 1 {
		return fmt.Errorf("RELEVANCE_THRESHOLD must be in (0, 1], got %v", c.RelevanceThreshold)
	}
	if c.TrustLowConfidence <= 0 || c.TrustLowConfidence >= c.TrustHighConfidence || c.TrustHighConfidence > 1 {
		return fmt.Errorf("trust thresholds must satisfy 0 < low < high <= 1, got low=%v high=%v",
			c.TrustLowConfidence, c.TrustHighConfidence)
	}
	if c.MaxChecked <= 0 {
		return fmt.Errorf("MAX_CHECKED must be positive, got %d", c.MaxChecked)
	}
	return nil
}
