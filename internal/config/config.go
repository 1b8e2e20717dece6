package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all app configuration, loaded from environment variables.
type Config struct {
	Port string
	Env  string

	RedisURL  string
	RedisPass string
	RedisDB   int

	// Comma-separated list of origins allowed by the CORS middleware.
	AllowedOrigins []string

	// "local" settles games against Redis demo wallets; "onchain"
	// routes game operations to the (not yet deployed) program adapter.
	GameMode string

	// Upstream text-generation API (sentiment, scenarios, hashtags).
	ClaudeAPIURL string
	ClaudeAPIKey string
	ClaudeModel  string

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		RedisURL:  getEnv("REDIS_URL", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASSWORD", ""),

		GameMode: getEnv("GAME_MODE", "local"),

		ClaudeAPIURL: getEnv("CLAUDE_API_URL", "https://api.anthropic.com/v1/messages"),
		ClaudeAPIKey: getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:  getEnv("CLAUDE_MODEL", "claude-3-haiku-20240307"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		db = 0
	}
	cfg.RedisDB = db

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
