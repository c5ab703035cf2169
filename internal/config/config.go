package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the full application configuration.
// Populated from environment variables at startup.
type Config struct {
	App       AppConfig
	Site      SiteConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Content   ContentConfig
	Upload    UploadConfig
	ImageHost ImageHostConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// SiteConfig carries the public-facing site settings.
type SiteConfig struct {
	Name         string
	Description  string
	PostsPerPage int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// AuthConfig holds what this layer needs from the external auth
// provider: the key to verify its tokens and the admin allow-list.
type AuthConfig struct {
	JWTSecret string
	AdminUIDs []string // uids allowed to author and manage posts
}

// ContentConfig holds field limits and rendering knobs for
// profile/post validation and list previews.
type ContentConfig struct {
	MaxTitleLength int
	MaxNameLength  int // display name and nickname
	MaxBioLength   int
	MaxTagLength   int
	MaxTagCount    int
	ExcerptLength  int
	WordsPerMinute int
}

type UploadConfig struct {
	MaxImageSizeMB    int
	AllowedImageTypes []string // MIME types, e.g. image/jpeg
}

// ImageHostConfig points at the external image hosting service.
type ImageHostConfig struct {
	BaseURL      string // upload API, e.g. https://api.cloudinary.com/v1_1
	DeliveryURL  string // delivery CDN, e.g. https://res.cloudinary.com
	CloudName    string
	UploadPreset string
	APIKey       string
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Blognest API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Site: SiteConfig{
			Name:         getEnv("SITE_NAME", "Blognest"),
			Description:  getEnv("SITE_DESCRIPTION", "A small personal blog"),
			PostsPerPage: getEnvInt("SITE_POSTS_PER_PAGE", 10),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "blognest"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", "your-secret-key-change-in-production"),
			AdminUIDs: getEnvList("AUTH_ADMIN_UIDS", nil),
		},
		Content: ContentConfig{
			MaxTitleLength: getEnvInt("CONTENT_MAX_TITLE_LENGTH", 120),
			MaxNameLength:  getEnvInt("CONTENT_MAX_NAME_LENGTH", 40),
			MaxBioLength:   getEnvInt("CONTENT_MAX_BIO_LENGTH", 500),
			MaxTagLength:   getEnvInt("CONTENT_MAX_TAG_LENGTH", 16),
			MaxTagCount:    getEnvInt("CONTENT_MAX_TAG_COUNT", 10),
			ExcerptLength:  getEnvInt("CONTENT_EXCERPT_LENGTH", 160),
			WordsPerMinute: getEnvInt("CONTENT_WORDS_PER_MINUTE", 200),
		},
		Upload: UploadConfig{
			MaxImageSizeMB:    getEnvInt("UPLOAD_MAX_IMAGE_SIZE_MB", 5),
			AllowedImageTypes: getEnvList("UPLOAD_ALLOWED_IMAGE_TYPES", []string{"image/jpeg", "image/png", "image/webp", "image/gif"}),
		},
		ImageHost: ImageHostConfig{
			BaseURL:      getEnv("IMAGE_HOST_BASE_URL", "https://api.cloudinary.com/v1_1"),
			DeliveryURL:  getEnv("IMAGE_HOST_DELIVERY_URL", "https://res.cloudinary.com"),
			CloudName:    getEnv("IMAGE_HOST_CLOUD_NAME", ""),
			UploadPreset: getEnv("IMAGE_HOST_UPLOAD_PRESET", ""),
			APIKey:       getEnv("IMAGE_HOST_API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks production-critical settings.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Auth.JWTSecret == "your-secret-key-change-in-production" {
			return fmt.Errorf("AUTH_JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if len(c.Auth.AdminUIDs) == 0 {
			fmt.Println("WARNING: AUTH_ADMIN_UIDS not set - no identity can author posts")
		}
		if c.ImageHost.CloudName == "" {
			fmt.Println("WARNING: IMAGE_HOST_CLOUD_NAME not set - image uploads will not work")
		}
	}
	return nil
}

// MaxImageSizeBytes returns the upload size cap in bytes.
func (c *UploadConfig) MaxImageSizeBytes() int64 {
	return int64(c.MaxImageSizeMB) * 1024 * 1024
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
