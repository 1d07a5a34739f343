package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jpcarvalho/clubledger/internal/categorize"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindCategory returns the category of the longest rule pattern contained in
// the raw description, or nil when nothing matches.
func (s *Store) FindCategory(ctx context.Context, rawDescription string) (*uuid.UUID, error) {
	query := `
		SELECT category_id
		FROM category_rules
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC
		LIMIT 1
	`

	var categoryID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, rawDescription).Scan(&categoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding category rule: %w", err)
	}

	return &categoryID, nil
}

func (s *Store) CreateRule(ctx context.Context, pattern string, categoryID uuid.UUID) error {
	query := `
		INSERT INTO category_rules (pattern, category_id)
		VALUES ($1, $2)
		ON CONFLICT (pattern) DO UPDATE SET category_id = EXCLUDED.category_id
	`

	if _, err := s.db.ExecContext(ctx, query, pattern, categoryID); err != nil {
		return fmt.Errorf("creating category rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context) ([]categorize.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pattern, category_id FROM category_rules ORDER BY pattern ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing category rules: %w", err)
	}
	defer rows.Close()

	var rules []categorize.Rule

	for rows.Next() {
		var r categorize.Rule
		if err := rows.Scan(&r.Pattern, &r.CategoryID); err != nil {
			return nil, fmt.Errorf("scanning category rule: %w", err)
		}

		rules = append(rules, r)
	}

	return rules, rows.Err()
}
