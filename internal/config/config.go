package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Auth       AuthConfig
	Realtime   RealtimeConfig
	Schedule   ScheduleConfig
	PrintRelay PrintRelayConfig
	Telegram   TelegramConfig
	Sheets     SheetsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	CompanyName    string
	AllowedOrigins []string
}

// AuthConfig holds the shared operator access code. A bcrypt hash is
// preferred; a plain code is hashed at startup.
type AuthConfig struct {
	AccessCodeHash string
	AccessCode     string
}

type RealtimeConfig struct {
	// Channel must match the one used by the notify_change trigger.
	Channel      string
	PingInterval time.Duration
}

type ScheduleConfig struct {
	// DayOffDistributionSpec is a five-field cron spec. Empty disables it.
	DayOffDistributionSpec string
	Timezone               string
}

type PrintRelayConfig struct {
	URL         string
	PrinterName string
	PrinterIP   string
	Timeout     time.Duration
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "tarp_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CompanyName:    getEnv("COMPANY_NAME", "Tarp Works"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	config.Auth = AuthConfig{
		AccessCodeHash: getEnv("ACCESS_CODE_HASH", ""),
		AccessCode:     getEnv("ACCESS_CODE", ""),
	}

	pingInterval, err := time.ParseDuration(getEnv("REALTIME_PING_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REALTIME_PING_INTERVAL: %w", err)
	}
	config.Realtime = RealtimeConfig{
		Channel:      getEnv("REALTIME_CHANNEL", "table_changes"),
		PingInterval: pingInterval,
	}

	config.Schedule = ScheduleConfig{
		DayOffDistributionSpec: getEnv("DAY_OFF_DISTRIBUTION_CRON", ""),
		Timezone:               getEnv("SCHEDULE_TIMEZONE", "Asia/Manila"),
	}

	relayTimeout, err := time.ParseDuration(getEnv("PRINT_RELAY_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRINT_RELAY_TIMEOUT: %w", err)
	}
	config.PrintRelay = PrintRelayConfig{
		URL:         getEnv("PRINT_RELAY_URL", "http://localhost:3001"),
		PrinterName: getEnv("PRINTER_NAME", ""),
		PrinterIP:   getEnv("PRINTER_IP", ""),
		Timeout:     relayTimeout,
	}

	var chatID int64
	if raw := getEnv("TELEGRAM_CHAT_ID", ""); raw != "" {
		chatID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}
	config.Telegram = TelegramConfig{
		BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		ChatID:   chatID,
	}

	config.Sheets = SheetsConfig{
		CredentialsPath: getEnv("GOOGLE_SHEETS_CREDENTIALS", ""),
		SpreadsheetID:   getEnv("GOOGLE_SHEETS_SPREADSHEET_ID", ""),
		Range:           getEnv("GOOGLE_SHEETS_RANGE", ""),
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
	if c.Auth.AccessCodeHash == "" && c.Auth.AccessCode == "" {
		return fmt.Errorf("ACCESS_CODE_HASH or ACCESS_CODE is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Realtime.Channel == "" {
		return fmt.Errorf("REALTIME_CHANNEL must not be empty")
	}
	return nil
}

// Location resolves the schedule timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
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

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
