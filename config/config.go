// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret (required in production).
	JWTSecret string

	// Upstream F1 results API.
	F1APIBaseURL string
	F1CacheTTL   time.Duration

	// Server
	Debug      bool
	Port       string
	TLSDomains []string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "gridcall")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "gridcall")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "gridcall.app,www.gridcall.app")
	v.SetDefault("DEBUG", false)
	v.SetDefault("F1_API_BASE_URL", "https://api.jolpi.ca/ergast/f1")
	v.SetDefault("F1_CACHE_TTL", "6h")

	cfg := &Config{
		DatabaseURL:  v.GetString("DATABASE_URL"),
		DBUser:       v.GetString("DB_USER"),
		DBPass:       v.GetString("DB_PASS"),
		DBHost:       v.GetString("DB_HOST"),
		DBPort:       v.GetString("DB_PORT"),
		DBName:       v.GetString("DB_NAME"),
		DBSSLMode:    v.GetString("DB_SSLMODE"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		F1APIBaseURL: strings.TrimRight(v.GetString("F1_API_BASE_URL"), "/"),
		F1CacheTTL:   v.GetDuration("F1_CACHE_TTL"),
		Debug:        v.GetBool("DEBUG"),
		Port:         v.GetString("PORT"),
		TLSDomains:   splitTrimmed(v.GetString("TLS_DOMAINS")),
	}

	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func (c *Config) validate() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
	if c.F1CacheTTL <= 0 {
		log.Fatal("config: F1_CACHE_TTL must be a positive duration")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
