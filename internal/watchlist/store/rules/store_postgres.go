package rules

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"foyer/internal/watchlist/models"
	"foyer/pkg/platform/sentinel"
)

// PostgresStore persists the rule set in PostgreSQL as a single JSONB row.
// The rule set is replaced wholesale on every save, so a document column is
// simpler and safer than normalizing groups and rules into tables and
// reassembling them on every screening.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed rule set store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ruleSetRowID pins the singleton row. One rule set per deployment.
const ruleSetRowID = 1

func (s *PostgresStore) Get(ctx context.Context) (*models.RuleSet, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM watchlist_rule_sets WHERE id = $1`,
		ruleSetRowID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get rule set: %w", err)
	}

	var ruleSet models.RuleSet
	if err := json.Unmarshal(raw, &ruleSet); err != nil {
		return nil, fmt.Errorf("unmarshal rule set: %w", err)
	}
	return &ruleSet, nil
}

func (s *PostgresStore) Save(ctx context.Context, ruleSet *models.RuleSet) error {
	raw, err := json.Marshal(ruleSet)
	if err != nil {
		return fmt.Errorf("marshal rule set: %w", err)
	}

	query := `
		INSERT INTO watchlist_rule_sets (id, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, ruleSetRowID, raw); err != nil {
		return fmt.Errorf("save rule set: %w", err)
	}
	return nil
}
