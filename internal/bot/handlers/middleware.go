// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"
	"runtime/debug"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover creates a middleware that converts handler panics into a logged
// error and a best-effort apology to the chat, keeping the poller alive.
func Recover(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			defer recoverPanic(ctx, deps, bot, update)
			next(ctx, bot, update)
		}
	}
}

// recoverPanic must be called directly by defer so that recover() observes
// the in-flight panic.
func recoverPanic(ctx context.Context, deps HandlerDeps, api telegramAPI, update *models.Update) {
	r := recover()
	if r == nil {
		return
	}

	log := deps.Logger.With("middleware", "recover")
	log.ErrorContext(ctx, "Recovered from panic in handler", "panic", r, "stack", string(debug.Stack()))

	if update == nil || update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if _, err := api.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: deps.Config.Messages.GeneralError}); err != nil {
		log.ErrorContext(ctx, "Failed to send panic notice", "error", err, "chat_id", chatID)
	}
}
