package database

import (
	"database/sql"
	"time"
)

// BusinessConnectionRecord is the stored form of a business connection
// update. Rights carries the connection's BusinessBotRights as its wire JSON
// so schema changes on the Bot API side never require a migration.
type BusinessConnectionRecord struct {
	ID          string         `db:"id"`
	UserID      int64          `db:"user_id"`
	UserChatID  int64          `db:"user_chat_id"`
	ConnectedAt time.Time      `db:"connected_at"`
	IsEnabled   bool           `db:"is_enabled"`
	Rights      sql.NullString `db:"rights"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// DeletedMessageRecord is one audit row for a message removed from a
// connected business chat.
type DeletedMessageRecord struct {
	ID                   int64     `db:"id"`
	BusinessConnectionID string    `db:"business_connection_id"`
	ChatID               int64     `db:"chat_id"`
	MessageID            int64     `db:"message_id"`
	RecordedAt           time.Time `db:"recorded_at"`
}
