package webhook

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/botwire/botwire/internal/database"
	"github.com/botwire/botwire/telegram"
)

// ConnectionRecord converts a decoded business connection into its stored
// form. The rights object, when present, is kept as its wire JSON.
func ConnectionRecord(conn *telegram.BusinessConnection) (*database.BusinessConnectionRecord, error) {
	rec := &database.BusinessConnectionRecord{
		ID:          conn.ID(),
		UserID:      conn.User().ID(),
		UserChatID:  conn.UserChatID(),
		ConnectedAt: conn.Date().UTC(),
		IsEnabled:   conn.IsEnabled(),
		UpdatedAt:   time.Now().UTC(),
	}
	if rights := conn.Rights(); rights != nil {
		data, err := json.Marshal(rights)
		if err != nil {
			return nil, fmt.Errorf("encode rights for connection %s: %w", conn.ID(), err)
		}
		rec.Rights = sql.NullString{String: string(data), Valid: true}
	}
	return rec, nil
}

// DeletedMessageRecords flattens a deleted-messages update into one audit row
// per message id.
func DeletedMessageRecords(deleted *telegram.BusinessMessagesDeleted, recordedAt time.Time) []*database.DeletedMessageRecord {
	ids := deleted.MessageIDs()
	recs := make([]*database.DeletedMessageRecord, 0, len(ids))
	for _, id := range ids {
		recs = append(recs, &database.DeletedMessageRecord{
			BusinessConnectionID: deleted.BusinessConnectionID(),
			ChatID:               deleted.Chat().ID(),
			MessageID:            id,
			RecordedAt:           recordedAt,
		})
	}
	return recs
}
