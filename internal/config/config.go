package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string
	DatabaseURL string

	// Redis
	EnableRedis        bool
	RedisURL           string
	PublicPageCacheTTL time.Duration

	// Server
	Port        string
	Environment string

	// CORS
	CORSOrigins []string

	// Upload
	UploadDir     string
	UploadURL     string
	MaxUploadSize int64

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Logging
	LogLevel  string
	LogFormat string

	// Features
	EnableMetrics bool

	// Builder
	AutosaveDelay     time.Duration
	SlugCheckDelay    time.Duration
	DefaultCategoryID uint
	RouteSuggestions  []string
}

func New() *Config {
	c := &Config{
		// Database
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "builder"),
		DBPassword: getEnv("DB_PASSWORD", "builderpassword"),
		DBName:     getEnv("DB_NAME", "pagebuilder"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "pagebuilder.db"),

		// Redis
		EnableRedis:        getEnvAsBool("ENABLE_REDIS", false),
		RedisURL:           getEnv("REDIS_URL", "localhost:6379"),
		PublicPageCacheTTL: time.Duration(getEnvAsInt("PUBLIC_PAGE_CACHE_TTL", 300)) * time.Second,

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// CORS
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		// Upload
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		UploadURL:     getEnv("UPLOAD_URL", "/uploads"),
		MaxUploadSize: int64(getEnvAsInt("MAX_UPLOAD_SIZE", 10*1024*1024)),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 20),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Builder
		AutosaveDelay:     time.Duration(getEnvAsInt("AUTOSAVE_DELAY_MS", 1500)) * time.Millisecond,
		SlugCheckDelay:    time.Duration(getEnvAsInt("SLUG_CHECK_DELAY_MS", 500)) * time.Millisecond,
		DefaultCategoryID: uint(getEnvAsInt("DEFAULT_CATEGORY_ID", 1)),
		RouteSuggestions:  splitList(getEnv("ROUTE_SUGGESTIONS", "/,/about,/contact,/pricing,/features,/blog")),
	}

	// Build DSN
	c.DatabaseURL = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)

	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) UsesSQLite() bool {
	return c.DBDriver == "sqlite"
}
