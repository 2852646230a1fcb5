package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	// Database
	DBUrl                string
	DBMaxConns           int
	DBStatementTimeoutMs int

	// JWT / credentials
	JWTSecret           string
	JWTAlgorithm        string
	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	BcryptCost          int
	AdminEmail          string // Optional admin seed
	AdminPassword       string
	AllowedOrigins      []string
	SecurityServiceName string

	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	FailedLoginBlockMinutes  int
	FailedLoginMaxAttempts   int

	// Resume storage
	StorageDriver     string // "local" or "s3"
	UploadDir         string
	MaxUploadBytes    int64
	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string // Optional, for S3-compatible providers
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored when the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBUrl:                getEnv("DATABASE_URL", ""),
		DBMaxConns:           getEnvInt("DB_MAX_CONNS", 25),
		DBStatementTimeoutMs: getEnvInt("DB_STATEMENT_TIMEOUT_MS", 5000),

		JWTSecret:           getEnv("JWT_SECRET_KEY", defaultJWTSecret),
		JWTAlgorithm:        strings.ToUpper(getEnv("JWT_ALGORITHM", "HS256")),
		AccessTokenTTL:      time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		RefreshTokenTTL:     time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRATION_DAYS", 7)) * 24 * time.Hour,
		BcryptCost:          getEnvInt("BCRYPT_COST", 12),
		AdminEmail:          strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),
		AdminPassword:       getEnv("ADMIN_PASSWORD", ""),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		SecurityServiceName: getEnv("SECURITY_SERVICE_NAME", "careerai-backend"),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		FailedLoginBlockMinutes:  getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:   getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),

		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Endpoint:        strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("WARNING: JWT_SECRET_KEY is using the built-in default. Set a real secret in production.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later at token or hash time.
func (c *Config) Validate() error {
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("config: unsupported JWT_ALGORITHM %q (expected HS256, HS384 or HS512)", c.JWTAlgorithm)
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET_KEY must not be empty")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("config: JWT_EXPIRATION_HOURS must be positive")
	}
	if c.RefreshTokenTTL <= 0 {
		return errors.New("config: REFRESH_TOKEN_EXPIRATION_DAYS must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST %d out of range [4,31]", c.BcryptCost)
	}
	if c.StorageDriver != "local" && c.StorageDriver != "s3" {
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.StorageDriver == "s3" && c.S3Bucket == "" {
		return errors.New("config: S3_BUCKET is required when STORAGE_DRIVER=s3")
	}
	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
