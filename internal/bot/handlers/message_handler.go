package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	sendMessageTimeout = 10 * time.Second
	dbSaveTimeout      = 5 * time.Second

	// askQuestionTrigger is the reply-keyboard phrase users send to start a
	// question. It is answered with a prompt instead of being forwarded to
	// the AI.
	askQuestionTrigger = "Задать вопрос"
)

// NewMessageHandler creates the default handler: every text message that no
// command handler claimed is treated as a question for the AI.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	h := messageHandler{deps}
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h.handle(ctx, b, update)
	}
}

// messageHandler processes user questions using injected dependencies.
type messageHandler struct {
	deps HandlerDeps
}

func (h messageHandler) handle(ctx context.Context, api telegramAPI, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "message")

	msg := update.Message
	if msg == nil || msg.Text == "" || msg.From == nil {
		log.DebugContext(ctx, "Ignoring update with nil message, empty text, or nil sender", "update_id", update.ID)
		return
	}

	chatID := msg.Chat.ID

	if strings.EqualFold(strings.TrimSpace(msg.Text), askQuestionTrigger) {
		log.InfoContext(ctx, "Ask-question trigger received", "chat_id", chatID, "user_id", msg.From.ID)
		if _, err := api.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: deps.Config.Messages.AskPrompt}); err != nil {
			log.ErrorContext(ctx, "Failed to send ask prompt", "error", err, "chat_id", chatID)
		}
		return
	}

	log.InfoContext(ctx, "Handling user question", "chat_id", chatID, "user_id", msg.From.ID)

	if _, err := api.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: chatID, Action: models.ChatActionTyping}); err != nil {
		log.DebugContext(ctx, "Failed to send typing action", "error", err, "chat_id", chatID)
	}

	// The question is recorded before the AI call: a Gemini failure must not
	// lose the request log entry.
	h.saveUserMessage(ctx, msg.From.ID, msg.Text)

	reply := deps.GeminiClient.GenerateReply(ctx, msg.Text)

	h.sendReply(ctx, api, chatID, msg.ID, reply)
}

// saveUserMessage records the question in the request log. Storage failures
// are logged and swallowed so the user still gets an answer.
func (h messageHandler) saveUserMessage(ctx context.Context, userID int64, text string) {
	log := h.deps.Logger.With("handler", "message")

	dbCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
	defer cancel()

	if err := h.deps.Store.RecordMessage(dbCtx, userID, text); err != nil {
		log.ErrorContext(ctx, "Failed to record user message", "error", err, "user_id", userID)
	}
}

// sendReply sends text as a threaded reply to the originating message. When
// the send fails the user still gets a plain error notice, so a failed reply
// never ends in silence.
func (h messageHandler) sendReply(ctx context.Context, api telegramAPI, chatID int64, replyTo int, text string) {
	deps := h.deps
	log := deps.Logger.With("handler", "message")

	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()

	sent, err := api.SendMessage(sendCtx, &bot.SendMessageParams{
		ChatID:          chatID,
		Text:            text,
		ReplyParameters: &models.ReplyParameters{MessageID: replyTo},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
		if _, sendErr := api.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: deps.Config.Messages.GeneralError}); sendErr != nil {
			log.ErrorContext(ctx, "Failed to send error notice", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	log.InfoContext(ctx, "Sent reply", "chat_id", chatID, "message_id", sent.ID)
}
