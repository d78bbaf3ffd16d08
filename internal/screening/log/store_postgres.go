package log

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "foyer/pkg/domain"
)

// Postgres is the long-term screening-log archive, written by the archiver
// daemon as it drains the kafka topic.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Append(ctx context.Context, event Event) error {
	entryIDs := make([]string, len(event.MatchedEntryIDs))
	for i, entryID := range event.MatchedEntryIDs {
		entryIDs[i] = entryID.String()
	}

	// ON CONFLICT DO NOTHING keeps replays idempotent: the consumer commits
	// offsets after the batch, so a crash can redeliver events.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO screening_log_events (
			id, occurred_at, request_id, client_ip, user_agent, kiosk_id,
			first_name, last_name, email, phone, matched_entry_ids, level_names
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING`,
		event.ID, event.Timestamp, event.RequestID, event.ClientIP,
		event.UserAgent, event.KioskID, event.FirstName, event.LastName,
		event.Email, event.Phone, pq.Array(entryIDs), pq.Array(event.LevelNames),
	)
	if err != nil {
		return fmt.Errorf("archive screening-log event: %w", err)
	}
	return nil
}

func (s *Postgres) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, occurred_at, request_id, client_ip, user_agent, kiosk_id,
		       first_name, last_name, email, phone, matched_entry_ids, level_names
		FROM screening_log_events
		ORDER BY occurred_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list archived screening-log events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event    Event
			rawID    uuid.UUID
			entryIDs pq.StringArray
			levels   pq.StringArray
		)
		if err := rows.Scan(
			&rawID, &event.Timestamp, &event.RequestID, &event.ClientIP,
			&event.UserAgent, &event.KioskID, &event.FirstName, &event.LastName,
			&event.Email, &event.Phone, &entryIDs, &levels,
		); err != nil {
			return nil, fmt.Errorf("scan screening-log event: %w", err)
		}
		event.ID = rawID
		event.LevelNames = levels
		for _, raw := range entryIDs {
			entryID, err := id.ParseEntryID(raw)
			if err != nil {
				return nil, fmt.Errorf("scan screening-log event: %w", err)
			}
			event.MatchedEntryIDs = append(event.MatchedEntryIDs, entryID)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
