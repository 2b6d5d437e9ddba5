package webhook_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/botwire/botwire/internal/config"
	"github.com/botwire/botwire/internal/database"
	"github.com/botwire/botwire/internal/webhook"
)

// fakeStore records what the handler persists.
type fakeStore struct {
	connections []*database.BusinessConnectionRecord
	deleted     []*database.DeletedMessageRecord
	failUpsert  error
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func (f *fakeStore) UpsertConnection(_ context.Context, rec *database.BusinessConnectionRecord) error {
	if f.failUpsert != nil {
		return f.failUpsert
	}
	f.connections = append(f.connections, rec)
	return nil
}

func (f *fakeStore) GetConnection(context.Context, string) (*database.BusinessConnectionRecord, error) {
	return nil, nil
}

func (f *fakeStore) ListConnections(context.Context) ([]*database.BusinessConnectionRecord, error) {
	return f.connections, nil
}

func (f *fakeStore) RecordDeletedMessages(_ context.Context, recs []*database.DeletedMessageRecord) error {
	f.deleted = append(f.deleted, recs...)
	return nil
}

func (f *fakeStore) PruneDisabledConnections(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func testConfig(secret string) config.WebhookConfig {
	return config.WebhookConfig{
		Addr:            ":0",
		Path:            "/telegram/webhook",
		SecretToken:     secret,
		ShutdownTimeout: time.Second,
	}
}

func postUpdate(t *testing.T, handler http.Handler, secret, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	if secret != "" {
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", secret)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

const connectionUpdate = `{
	"update_id": 42,
	"business_connection": {
		"id": "conn-1",
		"user": {"id": 1111, "is_bot": false, "first_name": "Ada"},
		"user_chat_id": 2222,
		"date": 1748780000,
		"is_enabled": true,
		"rights": {"can_reply": true, "can_delete_sent_messages": true}
	}
}`

func TestHandlerRejectsBadSecret(t *testing.T) {
	store := &fakeStore{}
	srv := webhook.NewServer(testConfig("hush"), store, nil, nil)

	tests := []struct {
		name   string
		secret string
	}{
		{name: "missing", secret: ""},
		{name: "wrong", secret: "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postUpdate(t, srv.Handler(), tt.secret, connectionUpdate)
			if rec.Code != http.StatusForbidden {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
			}
		})
	}
	if len(store.connections) != 0 {
		t.Errorf("store received %d connections, want none", len(store.connections))
	}
}

func TestHandlerSavesConnection(t *testing.T) {
	store := &fakeStore{}
	srv := webhook.NewServer(testConfig("hush"), store, nil, nil)

	rec := postUpdate(t, srv.Handler(), "hush", connectionUpdate)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if len(store.connections) != 1 {
		t.Fatalf("store received %d connections, want 1", len(store.connections))
	}
	got := store.connections[0]
	if got.ID != "conn-1" {
		t.Errorf("ID = %q, want conn-1", got.ID)
	}
	if got.UserID != 1111 || got.UserChatID != 2222 {
		t.Errorf("user %d chat %d, want 1111 2222", got.UserID, got.UserChatID)
	}
	if !got.IsEnabled {
		t.Error("IsEnabled = false, want true")
	}
	if want := time.Unix(1748780000, 0).UTC(); !got.ConnectedAt.Equal(want) {
		t.Errorf("ConnectedAt = %v, want %v", got.ConnectedAt, want)
	}
	if !got.Rights.Valid {
		t.Fatal("Rights not set, want wire JSON")
	}
	for _, key := range []string{`"can_reply":true`, `"can_delete_sent_messages":true`} {
		if !strings.Contains(got.Rights.String, key) {
			t.Errorf("Rights %q missing %s", got.Rights.String, key)
		}
	}
}

func TestHandlerRecordsDeletedMessages(t *testing.T) {
	store := &fakeStore{}
	srv := webhook.NewServer(testConfig(""), store, nil, nil)

	body := `{
		"update_id": 43,
		"deleted_business_messages": {
			"business_connection_id": "conn-1",
			"chat": {"id": 99, "type": "private"},
			"message_ids": [100, 101, 102]
		}
	}`
	rec := postUpdate(t, srv.Handler(), "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if len(store.deleted) != 3 {
		t.Fatalf("store received %d audit rows, want 3", len(store.deleted))
	}
	for i, want := range []int64{100, 101, 102} {
		row := store.deleted[i]
		if row.BusinessConnectionID != "conn-1" || row.ChatID != 99 || row.MessageID != want {
			t.Errorf("row %d = %+v, want conn-1/99/%d", i, row, want)
		}
	}
}

func TestHandlerIgnoresUnrelatedUpdate(t *testing.T) {
	store := &fakeStore{}
	srv := webhook.NewServer(testConfig(""), store, nil, nil)

	rec := postUpdate(t, srv.Handler(), "", `{"update_id": 44, "message": {"message_id": 7}}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(store.connections) != 0 || len(store.deleted) != 0 {
		t.Error("store was written for an update without business payload")
	}
}

func TestHandlerBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "malformed json",
			body: `{"update_id": `,
			want: http.StatusBadRequest,
		},
		{
			name: "connection missing date",
			body: `{"update_id": 45, "business_connection": {"id": "c", "user": {"id": 1, "is_bot": false, "first_name": "A"}, "user_chat_id": 2, "is_enabled": true}}`,
			want: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := webhook.NewServer(testConfig(""), &fakeStore{}, nil, nil)
			rec := postUpdate(t, srv.Handler(), "", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerStoreFailure(t *testing.T) {
	store := &fakeStore{failUpsert: errors.New("disk full")}
	srv := webhook.NewServer(testConfig(""), store, nil, nil)

	rec := postUpdate(t, srv.Handler(), "", connectionUpdate)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
