// Package log implements the screening-log pipeline: match events flow
// from the screening service through a publisher into a sink (memory,
// redis, or kafka), and the archiver daemon drains kafka into postgres.
package log

import (
	"time"

	"github.com/google/uuid"

	id "foyer/pkg/domain"
)

// Event records one screening check that produced a match on a level with
// system logging enabled. Candidate fields are captured as screened, not
// normalized, so operators see exactly what was checked.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	KioskID   string `json:"kiosk_id,omitempty"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	MatchedEntryIDs []id.EntryID `json:"matched_entry_ids"`
	LevelNames      []string     `json:"level_names,omitempty"`
}
