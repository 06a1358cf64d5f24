package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	JWTSecret           string
	DBPath              string
	TokenExpiryDuration string
}

var (
	AppConfig Config
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	AppConfig = Config{
		Port:                getEnvOrDefault("PORT", "3000"),
		JWTSecret:           getEnvOrDefault("JWT_SECRET", "dev-secret"),
		DBPath:              getEnvOrDefault("DB_PATH", "payroll.db"),
		TokenExpiryDuration: getEnvOrDefault("TOKEN_EXPIRY", "24h"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
