package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath     string
	ServerPort int
	LogLevel   string

	JWTSecret []byte

	KafkaBrokers []string
}

// Load reads the optional .env file and then the environment. Only the
// JWT secret is required when the HTTP surface is started.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	cfg := &Config{
		DBPath:       EnvDefault("DB_PATH", "myshop.db"),
		ServerPort:   EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:     EnvDefault("LOG_LEVEL", "info"),
		JWTSecret:    []byte(os.Getenv("JWT_SECRET")),
		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
	}

	return cfg, nil
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
