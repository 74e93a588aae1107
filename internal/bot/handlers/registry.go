package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler pairs a match predicate with the handler it activates.
// It encapsulates all information needed to register and document a command.
type RegisteredHandler struct {
	Description string
	Match       tgbot.MatchFunc
	Handler     tgbot.HandlerFunc
}

// RegisterAllCommands initializes and returns a map of all available bot
// commands, keyed by their slash form.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["/start"] = RegisteredHandler{
		Description: "Начать диалог",
		Match:       MatchCommand(deps, "start"),
		Handler:     NewStartHandler(deps),
	}
	handlers["/help"] = RegisteredHandler{
		Description: "Помощь",
		Match:       MatchCommand(deps, "help"),
		Handler:     NewHelpHandler(deps),
	}

	return handlers
}
