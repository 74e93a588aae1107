// Package tasks implements scheduled tasks for the bot: the periodic usage
// report to the owner and database maintenance.
package tasks

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"gembot/internal/config"
	"gembot/internal/database"
)

// Notifier is the slice of the Telegram API the tasks use to deliver
// reports. *bot.Bot satisfies it; tests substitute a fake.
type Notifier interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Store    database.Store
	Notifier Notifier
	Config   *config.Config
}
