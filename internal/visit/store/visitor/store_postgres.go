package visitor

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

// PostgresStore persists visitor profiles in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed visitor store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const visitorColumns = `id, first_name, last_name, email, phone, company, created_at`

func (s *PostgresStore) Create(ctx context.Context, visitor *models.Visitor) error {
	query := `
		INSERT INTO visitors (` + visitorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		visitor.ID.String(),
		visitor.FirstName,
		visitor.LastName,
		visitor.Email,
		visitor.Phone,
		visitor.Company,
		visitor.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create visitor: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error) {
	query := `SELECT ` + visitorColumns + ` FROM visitors WHERE id = $1`
	visitor, err := scanVisitor(s.db.QueryRowContext(ctx, query, visitorID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find visitor by id: %w", err)
	}
	return visitor, nil
}

// FindByEmail matches case-insensitively. With multiple profiles on the
// same address the oldest wins, keeping the lookup deterministic.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Visitor, error) {
	if email == "" {
		return nil, sentinel.ErrNotFound
	}
	query := `SELECT ` + visitorColumns + ` FROM visitors WHERE LOWER(email) = LOWER($1) ORDER BY created_at ASC LIMIT 1`
	visitor, err := scanVisitor(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find visitor by email: %w", err)
	}
	return visitor, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVisitor(row rowScanner) (*models.Visitor, error) {
	var (
		visitor models.Visitor
		rawID   string
	)
	err := row.Scan(
		&rawID,
		&visitor.FirstName,
		&visitor.LastName,
		&visitor.Email,
		&visitor.Phone,
		&visitor.Company,
		&visitor.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	visitorID, err := id.ParseVisitorID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse visitor id: %w", err)
	}
	visitor.ID = visitorID
	return &visitor, nil
}
