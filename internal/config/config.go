package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Punch    PunchConfig
	Geocoder GeocoderConfig
	SMTP     SMTPConfig
	Alerts   AlertsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	Locale      string
	FrontendURL string
}

// PunchConfig bounds the waits of a punch attempt.
type PunchConfig struct {
	LookupTimeout   time.Duration
	LocationTimeout time.Duration
}

type GeocoderConfig struct {
	BaseURL     string
	UserAgent   string
	CountryCode string
	Timeout     time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// AlertsConfig controls the daily attendance alert digest.
type AlertsConfig struct {
	Enabled    bool
	SendHour   int
	Recipients []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using environment only", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "America/Sao_Paulo"),
		Locale:      getEnv("APP_LOCALE", "pt-BR"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Punch configuration
	lookupTimeout, err := time.ParseDuration(getEnv("PUNCH_LOOKUP_TIMEOUT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUNCH_LOOKUP_TIMEOUT: %w", err)
	}
	locationTimeout, err := time.ParseDuration(getEnv("PUNCH_LOCATION_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUNCH_LOCATION_TIMEOUT: %w", err)
	}
	config.Punch = PunchConfig{
		LookupTimeout:   lookupTimeout,
		LocationTimeout: locationTimeout,
	}

	// Geocoder configuration
	geocoderTimeout, err := time.ParseDuration(getEnv("GEOCODER_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODER_TIMEOUT: %w", err)
	}
	config.Geocoder = GeocoderConfig{
		BaseURL:     strings.TrimRight(getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"), "/"),
		UserAgent:   getEnv("GEOCODER_USER_AGENT", "timeclock-backend"),
		CountryCode: getEnv("GEOCODER_COUNTRY_CODE", "br"),
		Timeout:     geocoderTimeout,
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		User:     getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "ponto@localhost"),
	}

	// Alert digest configuration
	sendHour, err := strconv.Atoi(getEnv("ALERTS_SEND_HOUR", "19"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALERTS_SEND_HOUR: %w", err)
	}
	config.Alerts = AlertsConfig{
		Enabled:    getEnv("ALERTS_ENABLED", "false") == "true",
		SendHour:   sendHour,
		Recipients: getEnvSlice("ALERTS_RECIPIENTS"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Alerts.SendHour < 0 || c.Alerts.SendHour > 23 {
		return fmt.Errorf("ALERTS_SEND_HOUR must be between 0 and 23")
	}
	if c.Alerts.Enabled && c.SMTP.Host == "" {
		return fmt.Errorf("SMTP_HOST is required when ALERTS_ENABLED is true")
	}
	return nil
}

// Location returns the business timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
