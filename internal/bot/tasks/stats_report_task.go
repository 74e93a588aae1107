package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
)

const statsQueryTimeout = 10 * time.Second

// newStatsReportTask creates the scheduled task that reports the number of
// distinct users to the bot owner. Without a configured owner the task is a
// logged no-op.
func newStatsReportTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "stats_report")

	return func(ctx context.Context) error {
		ownerID := deps.Config.Telegram.OwnerID
		if ownerID == 0 {
			log.InfoContext(ctx, "No owner configured, skipping stats report")
			return nil
		}

		queryCtx, cancel := context.WithTimeout(ctx, statsQueryTimeout)
		defer cancel()

		users, err := deps.Store.CountDistinctUsers(queryCtx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to count users for stats report", "error", err)
			return fmt.Errorf("failed to count users: %w", err)
		}

		text := fmt.Sprintf("За всё время боту писали %d уникальных пользователей.", users)
		if _, err := deps.Notifier.SendMessage(ctx, &bot.SendMessageParams{ChatID: ownerID, Text: text}); err != nil {
			log.ErrorContext(ctx, "Failed to send stats report", "error", err, "owner_id", ownerID)
			return fmt.Errorf("failed to send stats report: %w", err)
		}

		log.InfoContext(ctx, "Sent stats report", "owner_id", ownerID, "users", users)
		return nil
	}
}
