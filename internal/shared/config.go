package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	LogLevel      string
	HTTPAddr      string
	MetricsAddr   string
	ReviewAPIBase string
	ReviewSource  string // http|mock
	ReviewAPIRPS  int
	// zero keeps the transport default; extraction time is up to the backend
	ReviewAPITimeout time.Duration
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	SessionTTL       time.Duration
	ExtractDeadline  time.Duration // bounds one background extraction
	Workers          int
}

// Load reads the configuration from the environment. A .env file in the
// working directory, if present, fills variables that are not already set.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:           env("APP_ENV", "prod"),
		LogLevel:         env("LOG_LEVEL", "info"),
		HTTPAddr:         env("HTTP_ADDR", ":3000"),
		MetricsAddr:      env("METRICS_ADDR", ""),
		ReviewAPIBase:    env("REVIEW_API_BASE", "http://localhost:8080"),
		ReviewSource:     env("REVIEW_SOURCE", "http"),
		ReviewAPIRPS:     atoi("REVIEW_API_RPS", 5),
		ReviewAPITimeout: time.Duration(atoi("REVIEW_API_TIMEOUT_SECONDS", 0)) * time.Second,
		RedisAddr:        env("REDIS_ADDR", ""),
		RedisPass:        env("REDIS_PASSWORD", ""),
		RedisDB:          atoi("REDIS_DB", 0),
		SessionTTL:       time.Duration(atoi("SESSION_TTL_SECONDS", 1800)) * time.Second,
		ExtractDeadline:  time.Duration(atoi("EXTRACT_DEADLINE_SECONDS", 120)) * time.Second,
		Workers:          atoi("EXTRACT_WORKERS", 4),
	}
	if c.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR is empty, sessions are kept in memory")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
