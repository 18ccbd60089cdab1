package config

import (
	"os"
	"time"
)

type Config struct {
	Port             string
	TranslatorURL    string
	TranslatorAPIKey string
	TranslateTimeout time.Duration
	SessionTTL       time.Duration
}

func Load() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		TranslatorURL:    getEnv("TRANSLATOR_URL", "http://localhost:9090/translate"),
		TranslatorAPIKey: getEnv("TRANSLATOR_API_KEY", ""),
		TranslateTimeout: getDuration("TRANSLATE_TIMEOUT", 5*time.Second),
		SessionTTL:       getDuration("SESSION_TTL", 30*time.Minute),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
