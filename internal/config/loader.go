package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrConfiguration marks any failure to load or validate the configuration.
var ErrConfiguration = errors.New("configuration error")

// envBindings maps configuration keys to the environment variables that may
// override them. The variable names are part of the deployment contract.
var envBindings = map[string]string{
	"telegram.token":    "BOT_TOKEN",
	"telegram.owner_id": "OWNER_ID",
	"gemini.api_key":    "GEMINI_API_KEY",
	"server.port":       "PORT",
	"database.path":     "DB_PATH",
	"log.level":         "LOG_LEVEL",
}

// LoadConfig loads and validates configuration from:
// 1. Default values
// 2. The YAML file at path (optional; missing file is fine)
// 3. Environment variables (BOT_TOKEN, GEMINI_API_KEY, OWNER_ID, PORT, ...)
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: failed to read config file %s: %v", ErrConfiguration, path, err)
		}
		// Missing config file is fine, defaults plus environment take over.
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, env, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// setDefaults registers default values for all optional configuration keys.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("gemini.base_url", DefaultGeminiBaseURL)
	v.SetDefault("gemini.model", DefaultGeminiModel)
	v.SetDefault("gemini.timeout", DefaultGeminiTimeout)

	v.SetDefault("server.port", DefaultServerPort)

	for name, task := range DefaultSchedulerTasks {
		v.SetDefault("scheduler.tasks."+name+".enabled", task.Enabled)
		v.SetDefault("scheduler.tasks."+name+".schedule", task.Schedule)
	}

	v.SetDefault("messages.welcome", DefaultMessages.Welcome)
	v.SetDefault("messages.fallback_name", DefaultMessages.FallbackName)
	v.SetDefault("messages.help", DefaultMessages.Help)
	v.SetDefault("messages.ask_prompt", DefaultMessages.AskPrompt)
	v.SetDefault("messages.no_answer", DefaultMessages.NoAnswer)
	v.SetDefault("messages.request_failed", DefaultMessages.RequestFailed)
	v.SetDefault("messages.request_timeout", DefaultMessages.RequestTimeout)
	v.SetDefault("messages.ai_error", DefaultMessages.AIError)
	v.SetDefault("messages.general_error", DefaultMessages.GeneralError)
}
