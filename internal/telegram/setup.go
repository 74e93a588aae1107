// Package telegram handles the setup and registration of Telegram bot handlers.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"gembot/internal/bot/handlers"
)

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", token[:8]+"...")
	return b, nil
}

// RegisterHandlers registers command handlers with the Telegram bot instance.
// Non-command messages fall through to the default handler configured on the
// bot itself.
func RegisterHandlers(b *bot.Bot, logger *slog.Logger, registeredHandlers map[string]handlers.RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "handler_registry")

	if len(registeredHandlers) == 0 {
		log.Warn("No handlers provided for registration.")
		return nil
	}

	for name, regHandler := range registeredHandlers {
		if regHandler.Match == nil || regHandler.Handler == nil {
			log.Warn("Skipping registration of incomplete handler", "command", name)
			continue
		}

		b.RegisterHandlerMatchFunc(regHandler.Match, regHandler.Handler)
		log.Debug("Registered handler", "command", name)
	}

	log.Info("Registered Telegram handlers", "count", len(registeredHandlers))
	return nil
}

// SetupCommands publishes the command list to Telegram so that clients can
// offer command completion. The list is sorted for a stable menu order.
func SetupCommands(ctx context.Context, b *bot.Bot, logger *slog.Logger, registeredHandlers map[string]handlers.RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	names := make([]string, 0, len(registeredHandlers))
	for name := range registeredHandlers {
		names = append(names, name)
	}
	sort.Strings(names)

	commands := make([]models.BotCommand, 0, len(names))
	for _, name := range names {
		commands = append(commands, models.BotCommand{
			Command:     strings.TrimPrefix(name, "/"),
			Description: registeredHandlers[name].Description,
		})
	}

	if _, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: commands}); err != nil {
		log.Error("Failed to publish bot command list", "error", err)
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	log.Info("Published bot command list", "count", len(commands))
	return nil
}
