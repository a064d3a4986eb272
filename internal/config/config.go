// Package config loads runtime configuration from the environment.
// Every knob has a documented default; absent configuration never
// fails, only missing delivery credentials do.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// SMTP settings
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromAddress  string
	ToAddresses  string // comma-separated recipient list
	DigestTitle  string

	// AI settings
	GeminiAPIKey      string
	OpenAIAPIKey      string
	MaxGeminiRequests int // per run-day budget (0 = unlimited)
	MaxOpenAIRequests int
	MaxAIRequests     int
	SummaryCacheTTL   time.Duration

	// Feed settings
	SourcesConfigPath string
	MaxArticleAge     time.Duration

	// Pipeline settings
	TitleSimilarityThreshold       float64
	DescriptionSimilarityThreshold float64
	MaxArticlesPerSource           int
	MaxArticlesTotal               int
	MaxPerLeaning                  int
	ArticlesPerSection             int

	// Scraper settings
	ScrapeMaxArticles int
	ScrapeDelay       time.Duration

	// App settings
	Debug          bool
	DryRun         bool // build and log the digest without emailing it
	RunInterval    time.Duration
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration

	// Sent-cache settings
	CacheFilePath string
	CacheTTLHours int
	DatabaseURL   string // when set, Postgres replaces the file cache
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SMTPPort:                       587,
		DigestTitle:                    "Daily News Digest",
		MaxGeminiRequests:              30,
		MaxOpenAIRequests:              15,
		MaxAIRequests:                  40,
		SummaryCacheTTL:                48 * time.Hour,
		SourcesConfigPath:              "configs/sources.yaml",
		MaxArticleAge:                  24 * time.Hour,
		TitleSimilarityThreshold:       0.8,
		DescriptionSimilarityThreshold: 0.6,
		MaxArticlesPerSource:           3,
		MaxArticlesTotal:               12,
		MaxPerLeaning:                  4,
		ArticlesPerSection:             5,
		ScrapeMaxArticles:              10,
		ScrapeDelay:                    500 * time.Millisecond,
		RequestTimeout:                 30 * time.Second,
		RetryAttempts:                  3,
		RetryDelay:                     5 * time.Second,
	}

	// Load from environment
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.FromAddress = getEnvOrDefault("DIGEST_FROM", cfg.SMTPUsername)
	cfg.ToAddresses = os.Getenv("DIGEST_TO")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.SMTPPort = getEnvIntOrDefault("SMTP_PORT", cfg.SMTPPort)
	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.CacheFilePath = getEnvOrDefault("CACHE_FILE_PATH", "sent_articles.json")
	cfg.CacheTTLHours = getEnvIntOrDefault("CACHE_TTL_HOURS", 72)

	if title := os.Getenv("DIGEST_TITLE"); title != "" {
		cfg.DigestTitle = title
	}

	cfg.MaxGeminiRequests = getEnvIntOrDefault("MAX_GEMINI_REQUESTS", cfg.MaxGeminiRequests)
	cfg.MaxOpenAIRequests = getEnvIntOrDefault("MAX_OPENAI_REQUESTS", cfg.MaxOpenAIRequests)
	cfg.MaxAIRequests = getEnvIntOrDefault("MAX_AI_REQUESTS", cfg.MaxAIRequests)

	if v := os.Getenv("MAX_ARTICLE_AGE_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxArticleAge = time.Duration(val) * time.Hour
		}
	}

	if v := os.Getenv("TITLE_SIMILARITY_THRESHOLD"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 && val <= 1 {
			cfg.TitleSimilarityThreshold = val
		}
	}
	if v := os.Getenv("DESCRIPTION_SIMILARITY_THRESHOLD"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 && val <= 1 {
			cfg.DescriptionSimilarityThreshold = val
		}
	}

	cfg.MaxArticlesPerSource = getEnvIntOrDefault("MAX_ARTICLES_PER_SOURCE", cfg.MaxArticlesPerSource)
	cfg.MaxArticlesTotal = getEnvIntOrDefault("MAX_ARTICLES_TOTAL", cfg.MaxArticlesTotal)
	cfg.MaxPerLeaning = getEnvIntOrDefault("MAX_PER_LEANING", cfg.MaxPerLeaning)
	cfg.ArticlesPerSection = getEnvIntOrDefault("ARTICLES_PER_SECTION", cfg.ArticlesPerSection)
	cfg.ScrapeMaxArticles = getEnvIntOrDefault("SCRAPE_MAX_ARTICLES", cfg.ScrapeMaxArticles)

	if v := os.Getenv("RUN_INTERVAL_MINUTES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RunInterval = time.Duration(val) * time.Minute
		}
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}
	if os.Getenv("DRY_RUN") == "true" {
		cfg.DryRun = true
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

func (c *Config) Validate() error {
	if c.DryRun {
		return nil
	}
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required")
	}
	if c.FromAddress == "" {
		return fmt.Errorf("DIGEST_FROM or SMTP_USERNAME is required")
	}
	if c.ToAddresses == "" {
		return fmt.Errorf("DIGEST_TO is required")
	}
	return nil
}
