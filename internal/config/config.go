package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	JWTSecret string

	KeyRateURL    string
	KeyRateMargin decimal.Decimal

	SchedulerEnabled  bool
	SchedulerSpec     string
	SchedulerLocation *time.Location
	ReminderDays      int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBConn:        getEnv("DB_CONN", "host=localhost port=5432 user=billing password=billing dbname=billing sslmode=disable"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		KeyRateURL:    getEnv("KEY_RATE_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		SchedulerSpec: getEnv("SCHEDULER_SPEC", "0 6 * * *"),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", "billing@localhost"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	if cfg.KeyRateMargin, err = decimal.NewFromString(getEnv("KEY_RATE_MARGIN", "5")); err != nil {
		return nil, fmt.Errorf("invalid KEY_RATE_MARGIN: %w", err)
	}
	if cfg.SchedulerEnabled, err = strconv.ParseBool(getEnv("SCHEDULER_ENABLED", "true")); err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_ENABLED: %w", err)
	}
	if _, err = cron.ParseStandard(cfg.SchedulerSpec); err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_SPEC: %w", err)
	}
	if cfg.SchedulerLocation, err = time.LoadLocation(getEnv("SCHEDULER_TIMEZONE", "UTC")); err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_TIMEZONE: %w", err)
	}
	if cfg.ReminderDays, err = strconv.Atoi(getEnv("REMINDER_DAYS", "3")); err != nil {
		return nil, fmt.Errorf("invalid REMINDER_DAYS: %w", err)
	}
	if cfg.ReminderDays < 0 {
		return nil, fmt.Errorf("REMINDER_DAYS must not be negative")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
