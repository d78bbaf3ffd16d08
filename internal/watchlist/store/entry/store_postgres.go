package entry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
	"foyer/pkg/platform/sentinel"
)

// PostgresStore persists watchlist entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed entry store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const entryColumns = `id, first_name, last_name, alt_first_names, alt_last_names, primary_email, primary_phone, additional_emails, additional_phones, level_id, notes, reported_by, status, last_updated`

func (s *PostgresStore) Create(ctx context.Context, entry *models.Entry) error {
	query := `
		INSERT INTO watchlist_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID.String(),
		entry.FirstName,
		entry.LastName,
		pq.Array(entry.AltFirstNames),
		pq.Array(entry.AltLastNames),
		entry.PrimaryEmail,
		entry.PrimaryPhone,
		pq.Array(entry.AdditionalEmails),
		pq.Array(entry.AdditionalPhones),
		entry.LevelID.String(),
		entry.Notes,
		entry.ReportedBy,
		string(entry.Status),
		entry.LastUpdated,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, entryID id.EntryID) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM watchlist_entries WHERE id = $1`
	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, entryID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find entry by id: %w", err)
	}
	return entry, nil
}

// List returns every entry regardless of status, newest mutation first.
func (s *PostgresStore) List(ctx context.Context) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM watchlist_entries ORDER BY last_updated DESC`
	return s.queryEntries(ctx, query)
}

// ListActive returns entries eligible for match evaluation.
func (s *PostgresStore) ListActive(ctx context.Context) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM watchlist_entries WHERE status = 'active' ORDER BY last_updated DESC`
	return s.queryEntries(ctx, query)
}

func (s *PostgresStore) queryEntries(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	return entries, nil
}

func (s *PostgresStore) Update(ctx context.Context, entry *models.Entry) error {
	query := `
		UPDATE watchlist_entries
		SET first_name = $2,
			last_name = $3,
			alt_first_names = $4,
			alt_last_names = $5,
			primary_email = $6,
			primary_phone = $7,
			additional_emails = $8,
			additional_phones = $9,
			level_id = $10,
			notes = $11,
			reported_by = $12,
			status = $13,
			last_updated = $14
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		entry.ID.String(),
		entry.FirstName,
		entry.LastName,
		pq.Array(entry.AltFirstNames),
		pq.Array(entry.AltLastNames),
		entry.PrimaryEmail,
		entry.PrimaryPhone,
		pq.Array(entry.AdditionalEmails),
		pq.Array(entry.AdditionalPhones),
		entry.LevelID.String(),
		entry.Notes,
		entry.ReportedBy,
		string(entry.Status),
		entry.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// CountByLevel reports how many entries reference the level.
func (s *PostgresStore) CountByLevel(ctx context.Context, levelID id.LevelID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM watchlist_entries WHERE level_id = $1`,
		levelID.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries by level: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	var (
		entry            models.Entry
		rawID            string
		rawLevelID       string
		rawStatus        string
		altFirstNames    pq.StringArray
		altLastNames     pq.StringArray
		additionalEmails pq.StringArray
		additionalPhones pq.StringArray
	)
	err := row.Scan(
		&rawID,
		&entry.FirstName,
		&entry.LastName,
		&altFirstNames,
		&altLastNames,
		&entry.PrimaryEmail,
		&entry.PrimaryPhone,
		&additionalEmails,
		&additionalPhones,
		&rawLevelID,
		&entry.Notes,
		&entry.ReportedBy,
		&rawStatus,
		&entry.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	entryID, err := id.ParseEntryID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse entry id: %w", err)
	}
	levelID, err := id.ParseLevelID(rawLevelID)
	if err != nil {
		return nil, fmt.Errorf("parse entry level id: %w", err)
	}
	entry.ID = entryID
	entry.LevelID = levelID
	entry.Status = models.EntryStatus(rawStatus)
	entry.AltFirstNames = []string(altFirstNames)
	entry.AltLastNames = []string(altLastNames)
	entry.AdditionalEmails = []string(additionalEmails)
	entry.AdditionalPhones = []string(additionalPhones)
	return &entry, nil
}
