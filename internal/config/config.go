package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	BotToken       string
	JudgeChatID    int64
	Maintainers    []int64
	MediaDir       string
	ServerPort     string
	WebhookBaseURL string
	WebhookSecret  string
	JWTSecret      string
	AdminUser      string
	AdminPassHash  string
	PollInterval   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: skipping .env: %v", err)
	}

	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "spreebreak"),
		BotToken:       getEnv("BOT_TOKEN", ""),
		JudgeChatID:    getEnvInt64("JUDGE_CHAT_ID", 0),
		Maintainers:    parseIDList(getEnv("MAINTAINERS", "")),
		MediaDir:       getEnv("MEDIA_DIR", "./submissions"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		WebhookBaseURL: getEnv("WEBHOOK_BASE_URL", ""),
		WebhookSecret:  getEnv("WEBHOOK_SECRET", ""),
		JWTSecret:      getEnv("JWT_SECRET", "super-secret-key-change-me"),
		AdminUser:      getEnv("ADMIN_USER", "admin"),
		AdminPassHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		PollInterval:   getEnv("POLL_INTERVAL", "2"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		log.Fatalf("config: %s must be an integer, got %q", key, val)
	}
	return n
}

func parseIDList(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Fatalf("config: invalid maintainer id %q", part)
		}
		ids = append(ids, id)
	}
	return ids
}
