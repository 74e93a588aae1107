package database

import "time"

// UserMessage is one row of the request log: who asked, what they asked, and
// when the row was first written. Duplicate (user_id, message) pairs are kept
// out by a unique index, so the timestamp always reflects the first occurrence.
type UserMessage struct {
	UserID    int64     `db:"user_id"`
	Message   string    `db:"message"`
	Timestamp time.Time `db:"timestamp"`
}
