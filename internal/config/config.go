package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-only-secret-change-me-please-32chars"

// Word selection modes for the dictionary provider
const (
	WordSelectionDaily  = "daily"
	WordSelectionRandom = "random"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	MaxAttempts    int
	SessionsPerDay int
	WordSelection  string
	WordsPath      string

	LockTimeout     time.Duration
	ReportCacheSize int

	RateLimitRequests int
	RateLimitWindow   time.Duration

	SeedBadWords bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	cfg := &Config{
		ServerPort:   getEnv("PORT", "8080"),
		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./wordle.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "wordle-api"),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		MaxAttempts:    getEnvInt("MAX_ATTEMPTS", 6),
		SessionsPerDay: getEnvInt("SESSIONS_PER_DAY", 1),
		WordSelection:  strings.ToLower(getEnv("WORD_SELECTION", WordSelectionDaily)),
		WordsPath:      getEnv("WORDS_PATH", ""),

		LockTimeout:     getEnvDuration("LOCK_TIMEOUT", 5*time.Second),
		ReportCacheSize: getEnvInt("REPORT_CACHE_SIZE", 128),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 10),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		SeedBadWords: getEnvBool("SEED_BAD_WORDS", true),
	}

	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}

	return cfg
}

// Validate checks that the game limits and modes are usable
func (c *Config) Validate() error {
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("MAX_ATTEMPTS must be positive, got %d", c.MaxAttempts)
	}
	if c.SessionsPerDay <= 0 {
		return fmt.Errorf("SESSIONS_PER_DAY must be positive, got %d", c.SessionsPerDay)
	}
	switch c.WordSelection {
	case WordSelectionDaily, WordSelectionRandom:
	default:
		return fmt.Errorf("unsupported WORD_SELECTION: %s", c.WordSelection)
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.LockTimeout <= 0 {
		return fmt.Errorf("LOCK_TIMEOUT must be positive")
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DBMaxOpenConns)
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
