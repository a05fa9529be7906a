package config

import (
	"os"

	"github.com/joho/godotenv"

	"lumo/pkg/logger"
)

const defaultTranscribeURL = "https://api-inference.huggingface.co/models/openai/whisper-large-v3"

// Config holds the application settings sourced from the environment.
type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	JWTSecret       string
	TranscribeURL   string
	TranscribeToken string
}

// Load reads .env from the project root, falling back to OS environment
// variables, and returns the configuration.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("SUPABASE_JWT_SECRET"),
		TranscribeURL:   envOrDefault("TRANSCRIBE_API_URL", defaultTranscribeURL),
		TranscribeToken: os.Getenv("HUGGING_FACE_API_TOKEN"),
	}
}

// envOrDefault returns the environment variable's value or a fallback.
func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
