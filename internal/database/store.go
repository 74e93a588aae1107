package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// RecordMessage inserts one request-log row. Re-recording an identical
	// (userID, text) pair is a silent no-op, not an error.
	RecordMessage(ctx context.Context, userID int64, text string) error

	// CountDistinctUsers returns the number of unique user IDs in the log.
	CountDistinctUsers(ctx context.Context) (int64, error)

	// RunMaintenance performs database maintenance tasks like VACUUM.
	RunMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RecordMessage inserts one request-log row. The unique index on
// (user_id, message) absorbs duplicates atomically: a conflicting insert
// affects zero rows and leaves the original row, including its timestamp,
// untouched. The timestamp column is filled by the database.
func (s *sqlxStore) RecordMessage(ctx context.Context, userID int64, text string) error {
	if userID == 0 {
		return fmt.Errorf("message must have a non-zero user_id")
	}
	if text == "" {
		return fmt.Errorf("message must have non-empty text")
	}

	query := `
        INSERT INTO users (user_id, message)
        VALUES (?, ?)
        ON CONFLICT (user_id, message) DO NOTHING;
    `

	result, err := s.db.ExecContext(ctx, query, userID, text)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error recording message", "user_id", userID, "error", err)
		return fmt.Errorf("failed to record message for user %d: %w", userID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not get affected row count after recording message",
			"user_id", userID, "error", err)
		return nil
	}

	if affected == 0 {
		s.logger.DebugContext(ctx, "Duplicate message ignored", "user_id", userID)
		return nil
	}

	s.logger.DebugContext(ctx, "Message recorded", "user_id", userID)
	return nil
}

// CountDistinctUsers returns the number of unique user IDs in the log.
func (s *sqlxStore) CountDistinctUsers(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(DISTINCT user_id) FROM users;`

	err := s.db.GetContext(ctx, &count, query)

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while counting users", "error", err)
		return 0, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error counting distinct users", "error", err)
		return 0, fmt.Errorf("failed to count distinct users: %w", err)
	}

	s.logger.DebugContext(ctx, "Counted distinct users", "count", count)
	return count, nil
}

// RunMaintenance executes a VACUUM command on the SQLite database.
// SQLite requires VACUUM to run outside a transaction.
func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed.")
	return nil
}
