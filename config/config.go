package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AnthropicAPIKey string
	Port            string
	PreviewPort     string
	PreviewBaseURL  string
	ProjectsDir     string
}

func Load() *Config {
	// Load .env file if present, ignore error if it doesn't exist
	godotenv.Load()

	cfg := &Config{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		Port:            getEnv("PORT", "8080"),
		PreviewPort:     getEnv("PREVIEW_PORT", "8081"),
		ProjectsDir:     getEnv("PROJECTS_DIR", "./generated-sites"),
	}
	cfg.PreviewBaseURL = getEnv("PREVIEW_BASE_URL", "http://localhost:"+cfg.PreviewPort)

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
