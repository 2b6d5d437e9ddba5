// Package webhook implements the inbound update listener: an HTTP endpoint
// Telegram delivers business updates to, which decodes them into typed
// entities and persists them.
package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/botwire/botwire/internal/config"
	"github.com/botwire/botwire/internal/database"
	"github.com/botwire/botwire/telegram"
)

// secretTokenHeader is the header Telegram echoes the registered webhook
// secret in.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// update is the envelope Telegram posts; only the business fields bizhookd
// consumes are parsed, the rest stays raw.
type update struct {
	UpdateID                int64           `json:"update_id"`
	BusinessConnection      json.RawMessage `json:"business_connection"`
	DeletedBusinessMessages json.RawMessage `json:"deleted_business_messages"`
}

// Server receives webhook updates and writes them through the store.
type Server struct {
	cfg    config.WebhookConfig
	store  database.Store
	dec    *telegram.Decoder
	logger *slog.Logger
	srv    *http.Server
}

// NewServer builds the webhook server. dec may be nil, in which case a UTC
// decoder is used.
func NewServer(cfg config.WebhookConfig, store database.Store, dec *telegram.Decoder, logger *slog.Logger) *Server {
	if dec == nil {
		dec = telegram.NewDecoder()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		cfg:    cfg,
		store:  store,
		dec:    dec,
		logger: logger.With("component", "webhook"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+cfg.Path, s.handleUpdate)
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("webhook listening", "addr", s.cfg.Addr, "path", s.cfg.Path)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("webhook server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("webhook shutdown failed: %w", err)
	}
	return <-errCh
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("request_id", uuid.NewString())

	if s.cfg.SecretToken != "" {
		got := r.Header.Get(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.SecretToken)) != 1 {
			log.Warn("rejected update with bad secret token", "remote", r.RemoteAddr)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		log.Warn("failed to read update body", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var upd update
	if err := json.Unmarshal(body, &upd); err != nil {
		log.Warn("malformed update", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	log = log.With("update_id", upd.UpdateID)

	if err := s.processUpdate(r.Context(), log, &upd); err != nil {
		log.Error("failed to process update", "error", err)
		// A non-2xx makes Telegram redeliver the update later.
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) processUpdate(ctx context.Context, log *slog.Logger, upd *update) error {
	handled := false

	if upd.BusinessConnection != nil {
		conn, err := s.dec.BusinessConnection(upd.BusinessConnection)
		if err != nil {
			return fmt.Errorf("decode business_connection: %w", err)
		}
		if err := s.saveConnection(ctx, conn); err != nil {
			return err
		}
		log.Info("business connection saved",
			"connection_id", conn.ID(), "enabled", conn.IsEnabled(), "user_id", conn.User().ID())
		handled = true
	}

	if upd.DeletedBusinessMessages != nil {
		deleted, err := s.dec.BusinessMessagesDeleted(upd.DeletedBusinessMessages)
		if err != nil {
			return fmt.Errorf("decode deleted_business_messages: %w", err)
		}
		if err := s.saveDeleted(ctx, deleted); err != nil {
			return err
		}
		log.Info("deleted business messages recorded",
			"connection_id", deleted.BusinessConnectionID(), "count", len(deleted.MessageIDs()))
		handled = true
	}

	if !handled {
		log.Debug("update carries no business payload, ignoring")
	}
	return nil
}

func (s *Server) saveConnection(ctx context.Context, conn *telegram.BusinessConnection) error {
	rec, err := ConnectionRecord(conn)
	if err != nil {
		return err
	}
	if err := s.store.UpsertConnection(ctx, rec); err != nil {
		return fmt.Errorf("persist business_connection: %w", err)
	}
	return nil
}

func (s *Server) saveDeleted(ctx context.Context, deleted *telegram.BusinessMessagesDeleted) error {
	recs := DeletedMessageRecords(deleted, time.Now().UTC())
	if err := s.store.RecordDeletedMessages(ctx, recs); err != nil {
		return fmt.Errorf("persist deleted_business_messages: %w", err)
	}
	return nil
}
