package botapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/botwire/botwire/internal/botapi"
	"github.com/botwire/botwire/telegram"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...botapi.Option) *botapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]botapi.Option{botapi.WithBaseURL(srv.URL)}, opts...)
	client, err := botapi.New("123:abc", opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := botapi.New(""); err == nil {
		t.Error("New(\"\") succeeded, want error")
	}
}

func TestGetMe(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot123:abc/getMe" {
			t.Errorf("path = %q, want /bot123:abc/getMe", r.URL.Path)
		}
		w.Write([]byte(`{"ok": true, "result": {"id": 7, "is_bot": true, "first_name": "hookbot", "username": "hookbot"}}`))
	})
	client := newTestClient(t, handler)

	me, err := client.GetMe(context.Background())
	if err != nil {
		t.Fatalf("GetMe() error = %v", err)
	}
	if me.ID() != 7 || me.Username() != "hookbot" || !me.IsBot() {
		t.Errorf("GetMe() = id %d username %q bot %v", me.ID(), me.Username(), me.IsBot())
	}
}

func TestGetBusinessConnection(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if got := payload["business_connection_id"]; got != "conn-1" {
			t.Errorf("business_connection_id = %v, want conn-1", got)
		}
		w.Write([]byte(`{"ok": true, "result": {
			"id": "conn-1",
			"user": {"id": 1111, "is_bot": false, "first_name": "Ada"},
			"user_chat_id": 2222,
			"date": 1748780000,
			"is_enabled": true
		}}`))
	})
	client := newTestClient(t, handler)

	conn, err := client.GetBusinessConnection(context.Background(), "conn-1")
	if err != nil {
		t.Fatalf("GetBusinessConnection() error = %v", err)
	}
	if conn.ID() != "conn-1" || !conn.IsEnabled() {
		t.Errorf("connection = %q enabled %v", conn.ID(), conn.IsEnabled())
	}
}

func TestAnswerInlineQuery(t *testing.T) {
	var body struct {
		InlineQueryID string            `json:"inline_query_id"`
		Results       []json.RawMessage `json:"results"`
		CacheTime     int               `json:"cache_time"`
		IsPersonal    bool              `json:"is_personal"`
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(`{"ok": true, "result": true}`))
	})
	client := newTestClient(t, handler)

	results := []telegram.InlineQueryResult{
		telegram.NewInlineQueryResultVoice("r1", "https://example.org/a.ogg", "first", nil),
	}
	opts := &botapi.AnswerInlineQueryOpts{CacheTime: 60, IsPersonal: true}
	if err := client.AnswerInlineQuery(context.Background(), "q1", results, opts); err != nil {
		t.Fatalf("AnswerInlineQuery() error = %v", err)
	}

	if body.InlineQueryID != "q1" {
		t.Errorf("inline_query_id = %q, want q1", body.InlineQueryID)
	}
	if len(body.Results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(body.Results))
	}
	var result map[string]any
	if err := json.Unmarshal(body.Results[0], &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result["type"] != "voice" || result["id"] != "r1" {
		t.Errorf("result = %v, want voice r1", result)
	}
	if body.CacheTime != 60 || !body.IsPersonal {
		t.Errorf("cache_time = %d personal %v, want 60 true", body.CacheTime, body.IsPersonal)
	}
}

func TestCallDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"ok": false, "error_code": 400, "description": "Bad Request: query is too old"}`))
	})
	client := newTestClient(t, handler, botapi.WithRetries(3))

	_, err := client.GetMe(context.Background())
	if err == nil {
		t.Fatal("GetMe() succeeded, want error")
	}
	var apiErr *botapi.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != 400 {
		t.Errorf("error = %v, want APIError with code 400", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server saw %d calls, want 1", got)
	}
}

func TestCallRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Write([]byte(`{"ok": false, "error_code": 500, "description": "Internal Server Error"}`))
			return
		}
		w.Write([]byte(`{"ok": true, "result": {"id": 7, "is_bot": true, "first_name": "hookbot"}}`))
	})
	client := newTestClient(t, handler, botapi.WithRetries(1))

	me, err := client.GetMe(context.Background())
	if err != nil {
		t.Fatalf("GetMe() error = %v", err)
	}
	if me.ID() != 7 {
		t.Errorf("ID = %d, want 7", me.ID())
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server saw %d calls, want 2", got)
	}
}

func TestCallThrottledWithoutRetriesFails(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false, "error_code": 429, "description": "Too Many Requests: retry after 5", "parameters": {"retry_after": 5}}`))
	})
	client := newTestClient(t, handler, botapi.WithRetries(0))

	_, err := client.GetMe(context.Background())
	if err == nil {
		t.Fatal("GetMe() succeeded, want error")
	}
	var apiErr *botapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.Code != 429 || apiErr.RetryAfter.Seconds() != 5 {
		t.Errorf("APIError = %+v, want 429 with 5s retry hint", apiErr)
	}
}
