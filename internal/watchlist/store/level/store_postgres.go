package level

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

// PostgresStore persists watchlist levels in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed level store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const levelColumns = `id, name, color, send_email_notifications, recipients, system_logging, requires_manual_approval, created_at, updated_at`

func (s *PostgresStore) CreateIfNameAvailable(ctx context.Context, level *models.Level) error {
	query := `
		INSERT INTO watchlist_levels (` + levelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		level.ID.String(),
		level.Name,
		level.Color,
		level.SendEmailNotifications,
		pq.Array(level.Recipients),
		level.SystemLogging,
		level.RequiresManualApproval,
		level.CreatedAt,
		level.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create level: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, levelID id.LevelID) (*models.Level, error) {
	query := `SELECT ` + levelColumns + ` FROM watchlist_levels WHERE id = $1`
	level, err := scanLevel(s.db.QueryRowContext(ctx, query, levelID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find level by id: %w", err)
	}
	return level, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Level, error) {
	query := `SELECT ` + levelColumns + ` FROM watchlist_levels ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	defer rows.Close()

	var levels []*models.Level
	for rows.Next() {
		level, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		levels = append(levels, level)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	return levels, nil
}

func (s *PostgresStore) Update(ctx context.Context, level *models.Level) error {
	query := `
		UPDATE watchlist_levels
		SET name = $2,
			color = $3,
			send_email_notifications = $4,
			recipients = $5,
			system_logging = $6,
			requires_manual_approval = $7,
			updated_at = $8
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		level.ID.String(),
		level.Name,
		level.Color,
		level.SendEmailNotifications,
		pq.Array(level.Recipients),
		level.SystemLogging,
		level.RequiresManualApproval,
		level.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update level: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update level: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, levelID id.LevelID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM watchlist_levels WHERE id = $1`, levelID.String())
	if err != nil {
		return fmt.Errorf("delete level: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete level: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLevel(row rowScanner) (*models.Level, error) {
	var (
		level      models.Level
		rawID      string
		recipients pq.StringArray
	)
	err := row.Scan(
		&rawID,
		&level.Name,
		&level.Color,
		&level.SendEmailNotifications,
		&recipients,
		&level.SystemLogging,
		&level.RequiresManualApproval,
		&level.CreatedAt,
		&level.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	levelID, err := id.ParseLevelID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse level id: %w", err)
	}
	level.ID = levelID
	level.Recipients = []string(recipients)
	return &level, nil
}

// isUniqueViolation reports whether the error is a postgres unique
// constraint violation (class 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
