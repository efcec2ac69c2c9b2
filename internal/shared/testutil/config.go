package testutil

import (
	"time"

	"github.com/samcomo/dbz-api-server/internal/config"
)

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "dbz-api-test",
			Env:  "test",
			Port: 8080,

			LogLevel: "error",
		},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			Service:         ":memory:",
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
			IsAutoMigrate:   true,
		},
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry:        24 * time.Hour,
			RefreshExpiry: 168 * time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
			RequestTimeout:  5 * time.Second,
		},
		Storage: config.StorageConfig{
			Provider:      config.StorageS3,
			Endpoint:      "http://localhost:9000",
			Region:        "us-east-1",
			AccessKey:     "test-access-key",
			SecretKey:     "test-secret-key",
			Bucket:        "dbz-test",
			PublicBaseURL: "https://cdn.dbz.test",
			UsePathStyle:  true,
		},
		ProfileImage: config.ProfileImageConfig{
			MaxSizeBytes:        1 << 20, // 1 MiB
			AllowedContentTypes: []string{"image/jpeg", "image/png", "image/webp"},
		},
		Password: config.PasswordConfig{
			BcryptCost: 4, // bcrypt.MinCost
		},
	}
}
