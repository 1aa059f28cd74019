package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI        string
	DBName          string
	RedisURL        string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RoappBaseURL string
	RoappAPIKey  string

	MonobankBaseURL    string
	MonobankToken      string
	MonobankWebhookURL string

	NovaPoshtaBaseURL string
	NovaPoshtaAPIKey  string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:        getEnvOrDefault("MONGO_URI", ""),
		DBName:          getEnvOrDefault("DB_NAME", "bitzone"),
		RedisURL:        getEnvOrDefault("REDIS_URL", ""),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:  getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		RefreshTokenTTL: getDurationEnv("REFRESH_TOKEN_TTL", 7, 24*time.Hour),

		RoappBaseURL: getEnvOrDefault("ROAPP_BASE_URL", "https://api.roapp.io"),
		RoappAPIKey:  getEnvOrDefault("ROAPP_API_KEY", ""),

		MonobankBaseURL:    getEnvOrDefault("MONOBANK_BASE_URL", "https://api.monobank.ua"),
		MonobankToken:      getEnvOrDefault("MONOBANK_TOKEN", ""),
		MonobankWebhookURL: getEnvOrDefault("MONOBANK_WEBHOOK_URL", ""),

		NovaPoshtaBaseURL: getEnvOrDefault("NOVA_POSHTA_BASE_URL", "https://api.novaposhta.ua/v2.0/json/"),
		NovaPoshtaAPIKey:  getEnvOrDefault("NOVA_POSHTA_API_KEY", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
