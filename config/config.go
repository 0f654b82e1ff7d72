package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration. Driver is "postgres" for deployments and
	// "sqlite" for local development and tests.
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration (rate limiting). Optional: an empty host
	// disables rate limiting.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Image storage. Uploads land under UploadDir unless an S3 bucket
	// is configured.
	UploadDir string
	S3Bucket  string
	S3Region  string

	// MigrationsDir holds the SQL migration files applied at startup.
	MigrationsDir string

	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to Docker secrets for sensitive fields.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost:    getValue("SERVER_HOST", "0.0.0.0"),
		ServerPort:    getValue("SERVER_PORT", "8080"),
		DBDriver:      getValue("DB_DRIVER", "postgres"),
		DBHost:        getValue("DB_HOST", "localhost"),
		DBPort:        getValue("DB_PORT", "5432"),
		DBUser:        getValue("DB_USER", ""),
		DBPassword:    getValue("DB_PASSWORD", ""),
		DBName:        getValue("DB_NAME", ""),
		DBSSLMode:     getValue("DB_SSL_MODE", "disable"),
		SQLitePath:    getValue("SQLITE_PATH", "plateful.db"),
		RedisHost:     getValue("REDIS_HOST", ""),
		RedisPort:     getValue("REDIS_PORT", "6379"),
		RedisPassword: getValue("REDIS_PASSWORD", ""),
		RedisDB:       0,
		JWTSecret:     getValue("JWT_SECRET", ""),
		UploadDir:     getValue("UPLOAD_DIR", "uploads"),
		S3Bucket:      getValue("S3_BUCKET_NAME", ""),
		S3Region:      getValue("AWS_REGION", ""),
		MigrationsDir: getValue("MIGRATIONS_DIR", "migrations"),
	}

	if origins := getValue("CORS_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getValue resolves a configuration value: environment variable first, then
// the matching Docker secret (lowercased name), then the default.
func getValue(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(name)); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
