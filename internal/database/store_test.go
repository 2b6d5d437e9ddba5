package database_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/botwire/botwire/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()
	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })
	return database.NewStore(db, nil)
}

func connectionRecord(id string, enabled bool, updatedAt time.Time) *database.BusinessConnectionRecord {
	return &database.BusinessConnectionRecord{
		ID:          id,
		UserID:      1111,
		UserChatID:  2222,
		ConnectedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		IsEnabled:   enabled,
		Rights:      sql.NullString{String: `{"can_reply":true}`, Valid: true},
		UpdatedAt:   updatedAt,
	}
}

func TestStorePing(t *testing.T) {
	store := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestStoreUpsertAndGetConnection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := connectionRecord("conn-1", true, time.Now().UTC())
	if err := store.UpsertConnection(ctx, rec); err != nil {
		t.Fatalf("UpsertConnection() error = %v", err)
	}

	got, err := store.GetConnection(ctx, "conn-1")
	if err != nil {
		t.Fatalf("GetConnection() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetConnection() = nil, want record")
	}
	if got.UserID != rec.UserID || got.UserChatID != rec.UserChatID {
		t.Errorf("got user %d chat %d, want %d %d", got.UserID, got.UserChatID, rec.UserID, rec.UserChatID)
	}
	if !got.IsEnabled {
		t.Error("IsEnabled = false, want true")
	}
	if !got.Rights.Valid || got.Rights.String != rec.Rights.String {
		t.Errorf("Rights = %+v, want %+v", got.Rights, rec.Rights)
	}

	// Upsert with the same id replaces the row.
	rec.IsEnabled = false
	if err := store.UpsertConnection(ctx, rec); err != nil {
		t.Fatalf("UpsertConnection() second call error = %v", err)
	}
	got, err = store.GetConnection(ctx, "conn-1")
	if err != nil {
		t.Fatalf("GetConnection() after update error = %v", err)
	}
	if got.IsEnabled {
		t.Error("IsEnabled = true after disabling upsert")
	}
}

func TestStoreGetConnectionUnknownID(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetConnection(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetConnection() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetConnection() = %+v, want nil for unknown id", got)
	}
}

func TestStoreUpsertNilConnection(t *testing.T) {
	store := newTestStore(t)
	if err := store.UpsertConnection(context.Background(), nil); err == nil {
		t.Error("UpsertConnection(nil) succeeded, want error")
	}
}

func TestStoreListConnections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		rec := connectionRecord(id, true, base.Add(time.Duration(i)*time.Hour))
		if err := store.UpsertConnection(ctx, rec); err != nil {
			t.Fatalf("UpsertConnection(%s) error = %v", id, err)
		}
	}

	recs, err := store.ListConnections(ctx)
	if err != nil {
		t.Fatalf("ListConnections() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len(recs) = %d, want 3", len(recs))
	}
	if recs[0].ID != "new" || recs[2].ID != "old" {
		t.Errorf("order = [%s %s %s], want newest first", recs[0].ID, recs[1].ID, recs[2].ID)
	}
}

func TestStoreRecordDeletedMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordDeletedMessages(ctx, nil); err != nil {
		t.Errorf("RecordDeletedMessages(nil) error = %v", err)
	}

	now := time.Now().UTC()
	recs := []*database.DeletedMessageRecord{
		{BusinessConnectionID: "conn-1", ChatID: 99, MessageID: 100, RecordedAt: now},
		{BusinessConnectionID: "conn-1", ChatID: 99, MessageID: 101, RecordedAt: now},
	}
	if err := store.RecordDeletedMessages(ctx, recs); err != nil {
		t.Fatalf("RecordDeletedMessages() error = %v", err)
	}

	recs[1] = nil
	if err := store.RecordDeletedMessages(ctx, recs); err == nil {
		t.Error("RecordDeletedMessages() with nil record succeeded, want error")
	}
}

func TestStorePruneDisabledConnections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cutoff := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	stale := cutoff.Add(-24 * time.Hour)
	fresh := cutoff.Add(24 * time.Hour)

	seed := []*database.BusinessConnectionRecord{
		connectionRecord("disabled-stale", false, stale),
		connectionRecord("disabled-fresh", false, fresh),
		connectionRecord("enabled-stale", true, stale),
	}
	for _, rec := range seed {
		if err := store.UpsertConnection(ctx, rec); err != nil {
			t.Fatalf("UpsertConnection(%s) error = %v", rec.ID, err)
		}
	}
	audit := []*database.DeletedMessageRecord{
		{BusinessConnectionID: "disabled-stale", ChatID: 1, MessageID: 10, RecordedAt: stale},
		{BusinessConnectionID: "enabled-stale", ChatID: 1, MessageID: 11, RecordedAt: stale},
	}
	if err := store.RecordDeletedMessages(ctx, audit); err != nil {
		t.Fatalf("RecordDeletedMessages() error = %v", err)
	}

	pruned, err := store.PruneDisabledConnections(ctx, cutoff)
	if err != nil {
		t.Fatalf("PruneDisabledConnections() error = %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}

	if got, err := store.GetConnection(ctx, "disabled-stale"); err != nil || got != nil {
		t.Errorf("disabled-stale still present (%+v, %v), want pruned", got, err)
	}
	for _, id := range []string{"disabled-fresh", "enabled-stale"} {
		got, err := store.GetConnection(ctx, id)
		if err != nil {
			t.Fatalf("GetConnection(%s) error = %v", id, err)
		}
		if got == nil {
			t.Errorf("connection %s was pruned, want kept", id)
		}
	}
}
