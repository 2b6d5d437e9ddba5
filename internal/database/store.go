package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the data access operations bizhookd needs. Every method
// accepts a context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// UpsertConnection inserts or replaces a business connection record.
	UpsertConnection(ctx context.Context, rec *BusinessConnectionRecord) error

	// GetConnection retrieves a connection by id. Returns nil, nil when
	// the id is unknown.
	GetConnection(ctx context.Context, id string) (*BusinessConnectionRecord, error)

	// ListConnections retrieves all connections, newest update first.
	ListConnections(ctx context.Context) ([]*BusinessConnectionRecord, error)

	// RecordDeletedMessages appends audit rows for deleted messages in a
	// single transaction.
	RecordDeletedMessages(ctx context.Context, recs []*DeletedMessageRecord) error

	// PruneDisabledConnections removes disabled connections not updated
	// since cutoff, along with their deletion audit rows, and reports how
	// many connections went away.
	PruneDisabledConnections(ctx context.Context, cutoff time.Time) (int64, error)
}

// sqlxStore implements Store on top of sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by a connected sqlx.DB.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) UpsertConnection(ctx context.Context, rec *BusinessConnectionRecord) error {
	if rec == nil {
		return errors.New("cannot save nil connection record")
	}

	const query = `
		INSERT INTO business_connections (id, user_id, user_chat_id, connected_at, is_enabled, rights, updated_at)
		VALUES (:id, :user_id, :user_chat_id, :connected_at, :is_enabled, :rights, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			user_id = excluded.user_id,
			user_chat_id = excluded.user_chat_id,
			connected_at = excluded.connected_at,
			is_enabled = excluded.is_enabled,
			rights = excluded.rights,
			updated_at = excluded.updated_at`

	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("failed to upsert connection %s: %w", rec.ID, err)
	}

	s.logger.Debug("connection saved", "connection_id", rec.ID, "enabled", rec.IsEnabled)
	return nil
}

func (s *sqlxStore) GetConnection(ctx context.Context, id string) (*BusinessConnectionRecord, error) {
	var rec BusinessConnectionRecord
	err := s.db.GetContext(ctx, &rec,
		`SELECT id, user_id, user_chat_id, connected_at, is_enabled, rights, updated_at
		 FROM business_connections WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connection %s: %w", id, err)
	}
	return &rec, nil
}

func (s *sqlxStore) ListConnections(ctx context.Context) ([]*BusinessConnectionRecord, error) {
	var recs []*BusinessConnectionRecord
	err := s.db.SelectContext(ctx, &recs,
		`SELECT id, user_id, user_chat_id, connected_at, is_enabled, rights, updated_at
		 FROM business_connections ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return recs, nil
}

func (s *sqlxStore) RecordDeletedMessages(ctx context.Context, recs []*DeletedMessageRecord) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Error("rollback failed", "error", rbErr)
		}
	}()

	const query = `
		INSERT INTO deleted_business_messages (business_connection_id, chat_id, message_id, recorded_at)
		VALUES (:business_connection_id, :chat_id, :message_id, :recorded_at)`

	for _, rec := range recs {
		if rec == nil {
			return errors.New("cannot save nil deleted-message record")
		}
		if _, err := tx.NamedExecContext(ctx, query, rec); err != nil {
			return fmt.Errorf("failed to record deleted message %d: %w", rec.MessageID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deleted messages: %w", err)
	}

	s.logger.Debug("deleted messages recorded", "count", len(recs))
	return nil
}

func (s *sqlxStore) PruneDisabledConnections(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Error("rollback failed", "error", rbErr)
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM deleted_business_messages WHERE business_connection_id IN (
			SELECT id FROM business_connections WHERE is_enabled = 0 AND updated_at < ?
		)`, cutoff); err != nil {
		return 0, fmt.Errorf("failed to prune deletion audit rows: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM business_connections WHERE is_enabled = 0 AND updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune connections: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned connections: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune: %w", err)
	}

	if pruned > 0 {
		s.logger.Info("pruned disabled connections", "count", pruned, "cutoff", cutoff)
	}
	return pruned, nil
}
