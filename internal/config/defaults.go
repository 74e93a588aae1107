package config

import "time"

// Default values for optional configuration parameters.
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = true

	// Database defaults
	DefaultDBPath = "users_data.db" // SQLite file in the working directory

	// Gemini defaults
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.0-flash"
	DefaultGeminiTimeout = 10 * time.Second // Covers the whole API call

	// Server defaults
	DefaultServerPort = 8000
)

// DefaultMessages carries the stock user-facing texts. The product speaks
// Russian; deployments may override any of these via config.yaml.
var DefaultMessages = Messages{
	Welcome:      "Добро пожаловать, %s! Чем могу вам помочь?",
	FallbackName: "пользователь",
	Help: "Я бот, который отвечает на ваши вопросы с помощью Gemini Pro.\n\n" +
		"Доступные команды:\n" +
		"/start - Начать диалог\n" +
		"/help - Помощь\n",
	AskPrompt:      "Пожалуйста, задайте ваш вопрос.",
	NoAnswer:       "Gemini не дал ответа.",
	RequestFailed:  "Ошибка запроса к Gemini API. Пожалуйста, попробуйте позже.",
	RequestTimeout: "Запрос к Gemini API занял слишком много времени. Попробуйте еще раз.",
	AIError:        "Произошла ошибка при обработке вашего запроса.",
	GeneralError:   "Произошла ошибка при обработке запроса.",
}

// DefaultSchedulerTasks enables the stock background tasks. Cron expressions
// use six fields with seconds first.
var DefaultSchedulerTasks = map[string]TaskConfig{
	"stats_report":   {Enabled: true, Schedule: "0 0 9 * * *"},  // daily at 09:00
	"db_maintenance": {Enabled: true, Schedule: "0 30 3 * * 0"}, // Sundays at 03:30
}
