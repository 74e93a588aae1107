package handlers

import (
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MatchCommand creates a match function for one bot command. The command
// token is matched case-insensitively, and an @mention suffix is accepted
// only when it names this bot, so "/start", "/START" and "/start@MyBot" all
// route to the start handler while "/start@OtherBot" is left alone.
func MatchCommand(deps HandlerDeps, name string) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		if update == nil || update.Message == nil || update.Message.Text == "" {
			return false
		}

		command, mention, ok := splitCommand(update.Message.Text)
		if !ok || command != name {
			return false
		}
		if mention == "" {
			return true
		}

		return strings.EqualFold(mention, deps.Config.Telegram.BotInfo.Username)
	}
}

// splitCommand parses the leading command token of a message text. It returns
// the lowercased command name without the slash and the @mention suffix, if
// any. ok is false when the text does not start with a command token.
func splitCommand(text string) (name, mention string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", "", false
	}

	token := fields[0]
	if !strings.HasPrefix(token, "/") || len(token) < 2 {
		return "", "", false
	}

	name, mention, _ = strings.Cut(token[1:], "@")
	if name == "" {
		return "", "", false
	}

	return strings.ToLower(name), mention, true
}
