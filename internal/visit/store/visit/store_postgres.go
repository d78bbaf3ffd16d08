package visit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"foyer/internal/visit/models"
	id "foyer/pkg/domain"
	"foyer/pkg/platform/sentinel"
)

// PostgresStore persists visits in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed visit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const visitColumns = `id, visitor_id, host_name, purpose, status, screening_matched, matched_entry_ids, denial_reason, badge_code_hash, scheduled_for, checked_in_at, checked_out_at, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, visit *models.Visit) error {
	query := `
		INSERT INTO visits (` + visitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(ctx, query,
		visit.ID.String(),
		visit.VisitorID.String(),
		visit.HostName,
		visit.Purpose,
		string(visit.Status),
		visit.ScreeningMatched,
		pq.Array(entryIDStrings(visit.MatchedEntryIDs)),
		visit.DenialReason,
		visit.BadgeCodeHash,
		visit.ScheduledFor,
		visit.CheckedInAt,
		visit.CheckedOutAt,
		visit.CreatedAt,
		visit.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create visit: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, visitID id.VisitID) (*models.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE id = $1`
	visit, err := scanVisit(s.db.QueryRowContext(ctx, query, visitID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find visit by id: %w", err)
	}
	return visit, nil
}

func (s *PostgresStore) Update(ctx context.Context, visit *models.Visit) error {
	query := `
		UPDATE visits
		SET status = $2,
			screening_matched = $3,
			matched_entry_ids = $4,
			denial_reason = $5,
			badge_code_hash = $6,
			scheduled_for = $7,
			checked_in_at = $8,
			checked_out_at = $9,
			updated_at = $10
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		visit.ID.String(),
		string(visit.Status),
		visit.ScreeningMatched,
		pq.Array(entryIDStrings(visit.MatchedEntryIDs)),
		visit.DenialReason,
		visit.BadgeCodeHash,
		visit.ScheduledFor,
		visit.CheckedInAt,
		visit.CheckedOutAt,
		visit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update visit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update visit: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// ListRecent returns up to limit visits, newest first.
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*models.Visit, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + visitColumns + ` FROM visits ORDER BY created_at DESC LIMIT $1`
	return s.queryVisits(ctx, query, limit)
}

// ListPending returns visits awaiting an admin decision, oldest first.
func (s *PostgresStore) ListPending(ctx context.Context) ([]*models.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE status = 'pending_approval' ORDER BY created_at ASC`
	return s.queryVisits(ctx, query)
}

// ListByVisitor returns the visitor's visits, newest first.
func (s *PostgresStore) ListByVisitor(ctx context.Context, visitorID id.VisitorID) ([]*models.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE visitor_id = $1 ORDER BY created_at DESC`
	return s.queryVisits(ctx, query, visitorID.String())
}

func (s *PostgresStore) queryVisits(ctx context.Context, query string, args ...any) ([]*models.Visit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var visits []*models.Visit
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, visit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	return visits, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVisit(row rowScanner) (*models.Visit, error) {
	var (
		visit        models.Visit
		rawID        string
		rawVisitorID string
		rawStatus    string
		rawEntryIDs  pq.StringArray
	)
	err := row.Scan(
		&rawID,
		&rawVisitorID,
		&visit.HostName,
		&visit.Purpose,
		&rawStatus,
		&visit.ScreeningMatched,
		&rawEntryIDs,
		&visit.DenialReason,
		&visit.BadgeCodeHash,
		&visit.ScheduledFor,
		&visit.CheckedInAt,
		&visit.CheckedOutAt,
		&visit.CreatedAt,
		&visit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	visitID, err := id.ParseVisitID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse visit id: %w", err)
	}
	visitorID, err := id.ParseVisitorID(rawVisitorID)
	if err != nil {
		return nil, fmt.Errorf("parse visit visitor id: %w", err)
	}
	visit.ID = visitID
	visit.VisitorID = visitorID
	visit.Status = models.VisitStatus(rawStatus)
	for _, raw := range rawEntryIDs {
		entryID, err := id.ParseEntryID(raw)
		if err != nil {
			return nil, fmt.Errorf("parse matched entry id: %w", err)
		}
		visit.MatchedEntryIDs = append(visit.MatchedEntryIDs, entryID)
	}
	return &visit, nil
}

func entryIDStrings(ids []id.EntryID) []string {
	out := make([]string, len(ids))
	for i, entryID := range ids {
		out[i] = entryID.String()
	}
	return out
}
