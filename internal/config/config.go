package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreBackendMemory = "memory"
	StoreBackendMySQL  = "mysql"
)

type Config struct {
	AppPort            string
	StoreBackend       string
	DbHost             string
	DbPort             string
	DbUser             string
	DbPassword         string
	DbName             string
	DbParams           string
	ReminderPoll       time.Duration
	NotificationBuffer int
	UpcomingWindowDays int
	TrustedProxies     []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:            getEnv("APP_PORT", "8080"),
		StoreBackend:       getEnv("STORE_BACKEND", StoreBackendMemory),
		DbHost:             getEnv("MYSQL_HOST", "db"),
		DbPort:             getEnv("MYSQL_PORT", "3306"),
		DbUser:             getEnv("MYSQL_USER", "taskpulse"),
		DbPassword:         getEnv("MYSQL_PASSWORD", "taskpulse"),
		DbName:             getEnv("MYSQL_DATABASE", "taskpulse"),
		DbParams:           getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		ReminderPoll:       time.Duration(getEnvInt("REMINDER_POLL_SECONDS", 60)) * time.Second,
		NotificationBuffer: getEnvInt("NOTIFICATION_BUFFER", 64),
		UpcomingWindowDays: getEnvInt("UPCOMING_WINDOW_DAYS", 7),
		TrustedProxies:     parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
