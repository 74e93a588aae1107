package database

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
)

// newTestStore opens a fresh on-disk SQLite database in a temporary
// directory, applies migrations, and returns both the raw connection (for
// direct assertions) and the Store under test.
func newTestStore(t *testing.T) (*sqlx.DB, Store) {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "users_data.db"))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { CloseDB(db) })

	store := NewStore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return db, store
}

func countRows(t *testing.T, db *sqlx.DB) int64 {
	t.Helper()

	var count int64
	if err := db.Get(&count, "SELECT COUNT(*) FROM users;"); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	return count
}

func TestRecordMessageValidation(t *testing.T) {
	t.Parallel()

	db, store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID int64
		text   string
	}{
		{name: "zero user id", userID: 0, text: "привет"},
		{name: "empty text", userID: 42, text: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := store.RecordMessage(ctx, tc.userID, tc.text); err == nil {
				t.Errorf("RecordMessage(%d, %q) expected error, got nil", tc.userID, tc.text)
			}
		})
	}

	if got := countRows(t, db); got != 0 {
		t.Errorf("row count after rejected inserts = %d, want 0", got)
	}
}

func TestRecordMessageDeduplicates(t *testing.T) {
	t.Parallel()

	db, store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordMessage(ctx, 1, "Сколько будет дважды два?"); err != nil {
		t.Fatalf("RecordMessage() error = %v", err)
	}
	if err := store.RecordMessage(ctx, 1, "Сколько будет дважды два?"); err != nil {
		t.Fatalf("RecordMessage() duplicate error = %v", err)
	}
	if got := countRows(t, db); got != 1 {
		t.Errorf("row count after duplicate insert = %d, want 1", got)
	}

	if err := store.RecordMessage(ctx, 1, "А трижды три?"); err != nil {
		t.Fatalf("RecordMessage() error = %v", err)
	}
	if err := store.RecordMessage(ctx, 2, "Сколько будет дважды два?"); err != nil {
		t.Fatalf("RecordMessage() error = %v", err)
	}
	if got := countRows(t, db); got != 3 {
		t.Errorf("row count after distinct inserts = %d, want 3", got)
	}
}

func TestRecordMessageKeepsOriginalTimestamp(t *testing.T) {
	t.Parallel()

	db, store := newTestStore(t)
	ctx := context.Background()

	// Seed a row with a timestamp well in the past, then replay the same
	// message through the store. The original row must survive unchanged.
	seeded := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	_, err := db.Exec("INSERT INTO users (user_id, message, timestamp) VALUES (?, ?, ?);",
		int64(7), "привет", seeded.Format("2006-01-02 15:04:05"))
	if err != nil {
		t.Fatalf("seeding row: %v", err)
	}

	if err := store.RecordMessage(ctx, 7, "привет"); err != nil {
		t.Fatalf("RecordMessage() duplicate error = %v", err)
	}

	var stored time.Time
	if err := db.Get(&stored, "SELECT timestamp FROM users WHERE user_id = ? AND message = ?;",
		int64(7), "привет"); err != nil {
		t.Fatalf("reading timestamp back: %v", err)
	}
	if !stored.Equal(seeded) {
		t.Errorf("timestamp after duplicate insert = %v, want %v", stored, seeded)
	}
}

func TestRecordMessagePopulatesTimestamp(t *testing.T) {
	t.Parallel()

	db, store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordMessage(ctx, 9, "Какая сегодня погода?"); err != nil {
		t.Fatalf("RecordMessage() error = %v", err)
	}

	var row UserMessage
	if err := db.Get(&row, "SELECT user_id, message, timestamp FROM users WHERE user_id = ?;",
		int64(9)); err != nil {
		t.Fatalf("reading row back: %v", err)
	}
	if row.Timestamp.IsZero() {
		t.Error("timestamp was not populated by the database")
	}
}

func TestCountDistinctUsers(t *testing.T) {
	t.Parallel()

	_, store := newTestStore(t)
	ctx := context.Background()

	count, err := store.CountDistinctUsers(ctx)
	if err != nil {
		t.Fatalf("CountDistinctUsers() on empty table error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountDistinctUsers() on empty table = %d, want 0", count)
	}

	seed := []struct {
		userID int64
		text   string
	}{
		{userID: 1, text: "первый вопрос"},
		{userID: 1, text: "второй вопрос"},
		{userID: 2, text: "первый вопрос"},
		{userID: 1, text: "первый вопрос"}, // duplicate, must not change anything
	}
	for _, m := range seed {
		if err := store.RecordMessage(ctx, m.userID, m.text); err != nil {
			t.Fatalf("RecordMessage(%d, %q) error = %v", m.userID, m.text, err)
		}
	}

	count, err = store.CountDistinctUsers(ctx)
	if err != nil {
		t.Fatalf("CountDistinctUsers() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountDistinctUsers() = %d, want 2", count)
	}
}

func TestPing(t *testing.T) {
	t.Parallel()

	_, store := newTestStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.Ping(cancelled); err == nil {
		t.Error("Ping() with cancelled context expected error, got nil")
	}
}

func TestRunMaintenance(t *testing.T) {
	t.Parallel()

	_, store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordMessage(ctx, 3, "вопрос перед обслуживанием"); err != nil {
		t.Fatalf("RecordMessage() error = %v", err)
	}
	if err := store.RunMaintenance(ctx); err != nil {
		t.Errorf("RunMaintenance() error = %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.RunMaintenance(cancelled); err == nil {
		t.Error("RunMaintenance() with cancelled context expected error, got nil")
	}
}
