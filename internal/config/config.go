package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the process reads from the environment. Call
// godotenv.Load before Load if a .env file should be honored.
type Config struct {
	Addr    string
	WorkDir string

	MaxDimension   int
	OCRTimeout     time.Duration
	OCRThreads     int
	OCRConcurrency int

	LLMAPIKey    string
	LLMBaseURL   string
	LLMModel     string
	LLMMaxTokens int
}

// Load reads the environment, falling back to defaults for anything unset.
func Load() Config {
	return Config{
		Addr:           env("DOCSCAN_ADDR", ":8080"),
		WorkDir:        env("DOCSCAN_WORK_DIR", "uploads"),
		MaxDimension:   envInt("DOCSCAN_MAX_DIMENSION", 1800),
		OCRTimeout:     envDuration("DOCSCAN_OCR_TIMEOUT", 60*time.Second),
		OCRThreads:     envInt("DOCSCAN_OCR_THREADS", 4),
		OCRConcurrency: envInt("DOCSCAN_OCR_CONCURRENCY", 3),
		LLMAPIKey:      env("LLM_API_KEY", ""),
		LLMBaseURL:     env("DOCSCAN_LLM_BASE_URL", ""),
		LLMModel:       env("DOCSCAN_LLM_MODEL", ""),
		LLMMaxTokens:   envInt("DOCSCAN_LLM_MAX_TOKENS", 1000),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
