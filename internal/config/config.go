package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	RedisHost      string
	RedisPort      string
	SessionSecret  string
	GinMode        string
	SendgridAPIKey string
	EmailFromName  string
	EmailFromAddr  string
	BirthdayCron   string
	MorningCron    string
}

func Load() *Config {
	// Optional; real deployments set env vars directly
	_ = godotenv.Load()

	return &Config{
		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "internuser"),
		DBPassword:     getEnv("DB_PASSWORD", "internpassword"),
		DBName:         getEnv("DB_NAME", "intern_management"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		SessionSecret:  getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Your App Team"),
		EmailFromAddr:  getEnv("EMAIL_FROM_ADDRESS", "noreply@example.com"),
		BirthdayCron:   getEnv("BIRTHDAY_CRON", "0 9 * * *"),
		MorningCron:    getEnv("MORNING_CRON", "0 7 * * *"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
