package infrastructure

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config collects the environment-driven settings of the service.
type Config struct {
	Port         string
	DBDSN        string
	AIServiceURL string
	RabbitMQURL  string
	UploadDir    string

	EmailHost string
	EmailPort int
	EmailUser string
	EmailPass string
	EmailFrom string
}

// LoadConfig reads .env (if present) and the environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "5000"),
		DBDSN:        os.Getenv("DB_DSN"),
		AIServiceURL: getEnv("AI_SERVICE_URL", "http://localhost:8000"),
		RabbitMQURL:  os.Getenv("RABBITMQ_URL"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		EmailHost:    os.Getenv("EMAIL_HOST"),
		EmailPort:    getEnvInt("EMAIL_PORT", 587),
		EmailUser:    os.Getenv("EMAIL_USER"),
		EmailPass:    os.Getenv("EMAIL_PASS"),
		EmailFrom:    os.Getenv("EMAIL_FROM"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
