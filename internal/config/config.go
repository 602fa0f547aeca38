package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

type Config struct {
	Port         string
	PollStore    string
	Postgres     Postgres
	StoreTimeout time.Duration

	RedisAddr  string
	SessionTTL time.Duration

	RabbitMQURL   string
	RabbitMQQueue string

	JWTSecret    string
	CookieDomain string
	CookieSecure bool

	VoteRatePerMinute int
	VoteRateBurst     int
}

// Load reads an optional .env file and then the environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:      getEnv("APP_PORT", "8080"),
		PollStore: getEnv("POLL_STORE", "postgres"),
		Postgres: Postgres{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "poll"),
			Password: getEnv("POSTGRES_PASSWORD", "poll"),
			DB:       getEnv("POSTGRES_DB", "poll"),
		},
		StoreTimeout: getDuration("STORE_TIMEOUT", 5*time.Second),

		RedisAddr:  getEnv("REDIS_ADDR", ""),
		SessionTTL: getDuration("SESSION_TTL", 24*time.Hour),

		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		RabbitMQQueue: getEnv("RABBITMQ_QUEUE", "votes"),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getBool("COOKIE_SECURE", true),

		VoteRatePerMinute: getInt("VOTE_RATE_PER_MINUTE", 30),
		VoteRateBurst:     getInt("VOTE_RATE_BURST", 5),
	}

	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is empty, owner routes will reject every request")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}
