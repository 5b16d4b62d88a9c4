package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	PORT          string
	LOG_LEVEL     string
	JWT_SECRET    string
	KAFKA_ADDRESS string
	SEED_USERNAME string
	SEED_PASSWORD string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT:          envDefault("PORT", "8080"),
		LOG_LEVEL:     os.Getenv("LOG_LEVEL"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		SEED_USERNAME: envDefault("SEED_USERNAME", "user"),
		SEED_PASSWORD: envDefault("SEED_PASSWORD", "pass"),
	}

	return config, nil
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
