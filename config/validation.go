package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is complete enough to start.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBUser == "" {
			errs = append(errs, "DB_USER is required when DB_DRIVER is postgres")
		}
		if cfg.DBPassword == "" {
			errs = append(errs, "DB_PASSWORD is required when DB_DRIVER is postgres")
		}
		if cfg.DBName == "" {
			errs = append(errs, "DB_NAME is required when DB_DRIVER is postgres")
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, "SQLITE_PATH is required when DB_DRIVER is sqlite")
		}
	default:
		errs = append(errs, fmt.Sprintf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}

	if cfg.S3Bucket != "" && cfg.S3Region == "" {
		errs = append(errs, "AWS_REGION is required when S3_BUCKET_NAME is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
