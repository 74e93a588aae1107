// Package config manages application configuration from default values,
// an optional config.yaml file, and environment variables.
package config

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Config defines the application configuration for all components of the bot:
// logging, Telegram transport, Gemini API access, database, HTTP status server,
// and scheduled tasks.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Server    ServerConfig    `mapstructure:"server"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  Messages        `mapstructure:"messages"`
}

// LogConfig controls log verbosity and output format.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and the optional owner account.
type TelegramConfig struct {
	Token   string `mapstructure:"token"    validate:"required"`
	OwnerID int64  `mapstructure:"owner_id" validate:"omitempty,gt=0"`

	// BotInfo is filled at startup from GetMe and is not read from configuration.
	BotInfo models.User `mapstructure:"-"`
}

// GeminiConfig holds access parameters for the generateContent endpoint.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"  validate:"required"`
	Model   string        `mapstructure:"model"    validate:"required"`
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"  validate:"required,min=1s,max=1m"`
}

// DatabaseConfig holds the SQLite file location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ServerConfig holds the HTTP status server settings (service variant only).
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,gt=0,lte=65535"`
}

// SchedulerConfig holds per-task scheduling settings keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a scheduled task and sets its cron expression
// (six fields, seconds first).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// Messages holds all user-facing texts. Every failure class surfaces to the
// user as one of these strings; the bot never sends raw error details.
type Messages struct {
	// Welcome is the /start greeting; %s receives the sender's first name.
	Welcome string `mapstructure:"welcome" validate:"required"`
	// FallbackName substitutes for the first name when Telegram omits it.
	FallbackName string `mapstructure:"fallback_name" validate:"required"`
	// Help is the static /help text.
	Help string `mapstructure:"help" validate:"required"`
	// AskPrompt answers the reserved "ask a question" trigger phrase.
	AskPrompt string `mapstructure:"ask_prompt" validate:"required"`
	// NoAnswer is returned when the API responds without candidates.
	NoAnswer string `mapstructure:"no_answer" validate:"required"`
	// RequestFailed is returned on transport failures and non-2xx statuses.
	RequestFailed string `mapstructure:"request_failed" validate:"required"`
	// RequestTimeout is returned when the API call exceeds its deadline.
	RequestTimeout string `mapstructure:"request_timeout" validate:"required"`
	// AIError is returned on malformed or otherwise unusable API responses.
	AIError string `mapstructure:"ai_error" validate:"required"`
	// GeneralError is the last-resort apology sent by the handler boundary.
	GeneralError string `mapstructure:"general_error" validate:"required"`
}
