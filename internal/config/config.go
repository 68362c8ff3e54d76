package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keeps runtime settings for the service.
type Config struct {
	DatabasePath   string
	HTTPAddr       string
	ReportInterval time.Duration
	TelegramToken  string
	TelegramChatID int64
}

// envBindings maps config keys to their environment variables.
var envBindings = map[string]string{
	"database_path":         "DATABASE_PATH",
	"http_addr":             "HTTP_ADDR",
	"report_interval_hours": "REPORT_INTERVAL_HOURS",
	"telegram_token":        "TELEGRAM_TOKEN",
	"telegram_chat_id":      "TELEGRAM_CHAT_ID",
}

// Load reads configuration from an optional YAML file and environment
// variables, environment taking precedence. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("database_path", "tasks_advanced.db")
	v.SetDefault("http_addr", ":5000")
	v.SetDefault("report_interval_hours", "0")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		DatabasePath:   strings.TrimSpace(v.GetString("database_path")),
		HTTPAddr:       strings.TrimSpace(v.GetString("http_addr")),
		ReportInterval: parseInterval(strings.TrimSpace(v.GetString("report_interval_hours"))),
		TelegramToken:  strings.TrimSpace(v.GetString("telegram_token")),
		TelegramChatID: v.GetInt64("telegram_chat_id"),
	}

	if cfg.DatabasePath == "" {
		return cfg, fmt.Errorf("database_path must not be empty")
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
