package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string
	SeedDevData bool // Insert demo locations on start-up

	// Redis, used as rate limiter storage when set
	RedisURL string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Rate limiting
	RateLimitMax int // Requests per minute per IP

	// Resolution
	MaxCallNoWords int           // Word-count ceiling for call numbers
	ResolveTimeout time.Duration // Upper bound for a single resolution
	DefaultLang    string        // UI language used when none is requested
	Collation      language.Tag  // env: COLLATION_LANG, ordering of call number intervals

	// Search statistics
	StatsEnabled       bool
	StatsQueueSize     int
	StatsFlushInterval time.Duration

	// Owner config file
	ConfigFile  string // env: CONFIG_FILE, YAML owners and redirect rules
	ConfigWatch bool   // Re-sync when the config file changes

	// Templates
	ViewsDir string

	// Site Branding
	SiteTitle  string // env: SITE_TITLE, default: "Location Service"
	SiteFooter string // env: SITE_FOOTER, default: "Location Service - find items on the shelves"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/locationservice?sslmode=disable"),
		SeedDevData: getEnv("SEED_DEV_DATA", "") != "",
		RedisURL:    getEnv("REDIS_URL", ""),
		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		RateLimitMax:   getEnvInt("RATE_LIMIT_MAX", 100),
		MaxCallNoWords: getEnvInt("MAX_CALLNO_WORDS", 10),
		ResolveTimeout: getEnvDuration("RESOLVE_TIMEOUT", 5*time.Second),
		DefaultLang:    getEnv("DEFAULT_LANG", "en"),
		Collation:      getEnvLanguage("COLLATION_LANG", language.Finnish),

		StatsEnabled:       getEnv("STATS_DISABLED", "") == "",
		StatsQueueSize:     getEnvInt("STATS_QUEUE_SIZE", 1024),
		StatsFlushInterval: getEnvDuration("STATS_FLUSH_INTERVAL", 10*time.Second),

		ConfigFile:  getEnv("CONFIG_FILE", "config.yaml"),
		ConfigWatch: getEnv("CONFIG_WATCH", "") != "",
		ViewsDir:    getEnv("VIEWS_DIR", "./views"),

		SiteTitle:  getEnv("SITE_TITLE", "Location Service"),
		SiteFooter: getEnv("SITE_FOOTER", "Location Service - find items on the shelves"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getEnvLanguage(key string, fallback language.Tag) language.Tag {
	tag, err := language.Parse(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return tag
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}
