package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jpcarvalho/clubledger/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Totals(ctx context.Context) (int64, int64, error) {
	query := `
		SELECT
			COALESCE(SUM(amount_cents) FILTER (WHERE type = 'receita'), 0),
			COALESCE(SUM(amount_cents) FILTER (WHERE type = 'despesa'), 0)
		FROM transactions
		WHERE status = 'paga' AND deleted_at IS NULL
	`

	var revenue, expense int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&revenue, &expense); err != nil {
		return 0, 0, fmt.Errorf("reading totals: %w", err)
	}

	return revenue, expense, nil
}

func (s *Store) Monthly(ctx context.Context, month, year int) (report.MonthlySums, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT
			COALESCE(SUM(amount_cents) FILTER (WHERE type = 'receita'), 0),
			COALESCE(SUM(amount_cents) FILTER (WHERE type = 'despesa'), 0)
		FROM transactions
		WHERE status = 'paga' AND deleted_at IS NULL
		  AND date >= $1 AND date < $2
	`

	var sums report.MonthlySums
	if err := s.db.QueryRowContext(ctx, query, start, end).Scan(&sums.Revenue, &sums.Expense); err != nil {
		return report.MonthlySums{}, fmt.Errorf("reading monthly sums: %w", err)
	}

	return sums, nil
}

// OverdueFeeCount mirrors fee.EffectiveStatus in SQL: a pendente fee whose
// (year, month) lies strictly before today's period is overdue.
func (s *Store) OverdueFeeCount(ctx context.Context, today time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM membership_fees
		WHERE status = 'pendente'
		  AND (year < $1 OR (year = $1 AND month < $2))
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, today.Year(), int(today.Month())).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting overdue fees: %w", err)
	}

	return count, nil
}
