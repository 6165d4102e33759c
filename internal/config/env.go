package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBUser    string
	DBPass    string
	DBHost    string
	DBName    string
	RedisAddr string
	JWTSecret string

	// External collaborators.
	PaymentAPIURL string
	LogoURL       string
}

func LoadEnv() Env {
	// Missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	return Env{
		AppAddr:       getenv("APP_ADDR", ":8080"),
		GinMode:       getenv("GIN_MODE", ""),
		DBUser:        getenv("DB_USER", "root"),
		DBPass:        getenv("DB_PASSWORD", ""),
		DBHost:        getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:        getenv("DB_NAME", "nawabus"),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		JWTSecret:     getenv("JWT_SECRET", "super-secret-key-change-me"),
		PaymentAPIURL: getenv("PAYMENT_API_URL", "http://localhost:3000/api/create-payment"),
		LogoURL:       getenv("TICKET_LOGO_URL", ""),
	}
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
