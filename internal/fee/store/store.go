package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jpcarvalho/clubledger/internal/fee"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectFeeColumns = `
	f.id, f.user_id, f.month, f.year, f.amount_cents, f.status,
	f.payment_date, f.transaction_id, f.created_at, f.updated_at
`

func scanFee(s scanner) (*fee.Fee, error) {
	var (
		f         fee.Fee
		statusStr string
	)

	if err := s.Scan(
		&f.ID, &f.UserID, &f.Month, &f.Year, &f.Amount, &statusStr,
		&f.PaymentDate, &f.TransactionID, &f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}

	f.Status = fee.Status(statusStr)

	return &f, nil
}

func (s *Store) CreateFee(ctx context.Context, f *fee.Fee) error {
	query := `
		INSERT INTO membership_fees (user_id, month, year, amount_cents, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		f.UserID, f.Month, f.Year, f.Amount, f.Status,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fee.ErrDuplicate
		}

		return fmt.Errorf("creating fee: %w", err)
	}

	return nil
}

func (s *Store) GetFee(ctx context.Context, id uuid.UUID) (*fee.Fee, error) {
	query := `SELECT ` + selectFeeColumns + ` FROM membership_fees f WHERE f.id = $1`

	f, err := scanFee(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fee.ErrNotFound
		}

		return nil, fmt.Errorf("getting fee: %w", err)
	}

	return f, nil
}

func (s *Store) ListFees(ctx context.Context, filter fee.ListFilter) ([]*fee.Fee, error) {
	query := `SELECT ` + selectFeeColumns + ` FROM membership_fees f WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND f.user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Month != nil {
		query += fmt.Sprintf(" AND f.month = $%d", argIdx)

		args = append(args, *filter.Month)
		argIdx++
	}

	if filter.Year != nil {
		query += fmt.Sprintf(" AND f.year = $%d", argIdx)

		args = append(args, *filter.Year)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND f.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY f.year DESC, f.month DESC, f.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing fees: %w", err)
	}
	defer rows.Close()

	var fees []*fee.Fee

	for rows.Next() {
		f, err := scanFee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning fee: %w", err)
		}

		fees = append(fees, f)
	}

	return fees, rows.Err()
}

func (s *Store) UpdateFee(ctx context.Context, f *fee.Fee) error {
	query := `
		UPDATE membership_fees
		SET amount_cents = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := s.db.ExecContext(ctx, query, f.Amount, f.ID); err != nil {
		return fmt.Errorf("updating fee: %w", err)
	}

	return nil
}

func (s *Store) DeleteFee(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM membership_fees WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting fee: %w", err)
	}

	return nil
}

// MarkPaid settles a fee in one database transaction: the fee row is locked,
// the backing receita transaction is inserted, and the fee is updated to
// reference it. A reader can never observe the paid status without the link.
func (s *Store) MarkPaid(ctx context.Context, id uuid.UUID, paymentDate time.Time, method transaction.PaymentMethod) (*fee.Fee, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	lockQuery := `SELECT ` + selectFeeColumns + ` FROM membership_fees f WHERE f.id = $1 FOR UPDATE`

	f, err := scanFee(dbTx.QueryRowContext(ctx, lockQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fee.ErrNotFound
		}

		return nil, fmt.Errorf("locking fee: %w", err)
	}

	if f.Status == fee.StatusPaga {
		return nil, fee.ErrAlreadyPaid
	}

	insertQuery := `
		INSERT INTO transactions (user_id, description, amount_cents, type, status, date, payment_method, category_id, created_at)
		VALUES ($1, $2, $3, 'receita', 'paga', $4, $5,
			(SELECT id FROM financial_categories WHERE name = 'Mensalidades'), NOW())
		RETURNING id
	`

	var txID uuid.UUID

	err = dbTx.QueryRowContext(ctx, insertQuery,
		f.UserID,
		fee.PaymentDescription(f.Month, f.Year),
		f.Amount,
		paymentDate,
		string(method),
	).Scan(&txID)
	if err != nil {
		return nil, fmt.Errorf("creating payment transaction: %w", err)
	}

	updateQuery := `
		UPDATE membership_fees
		SET status = 'paga', payment_date = $1, transaction_id = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	if err := dbTx.QueryRowContext(ctx, updateQuery, paymentDate, txID, f.ID).Scan(&f.UpdatedAt); err != nil {
		return nil, fmt.Errorf("updating fee: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing payment: %w", err)
	}

	f.Status = fee.StatusPaga
	f.PaymentDate = &paymentDate
	f.TransactionID = &txID

	return f, nil
}

type generationTx struct {
	tx *sql.Tx
}

// BeginGeneration opens the transaction that backs one bulk generation run.
func (s *Store) BeginGeneration(ctx context.Context) (fee.GenerationTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning generation tx: %w", err)
	}

	return &generationTx{tx: dbTx}, nil
}

func (g *generationTx) Commit() error   { return g.tx.Commit() }
func (g *generationTx) Rollback() error { return g.tx.Rollback() }

// InsertPending relies on the (user_id, month, year) unique constraint:
// an existing fee makes the insert a silent no-op, which keeps the
// generator idempotent even under concurrent runs.
func (g *generationTx) InsertPending(ctx context.Context, userID uuid.UUID, month, year int, amount int64) (bool, error) {
	query := `
		INSERT INTO membership_fees (user_id, month, year, amount_cents, status, created_at)
		VALUES ($1, $2, $3, $4, 'pendente', NOW())
		ON CONFLICT (user_id, month, year) DO NOTHING
	`

	res, err := g.tx.ExecContext(ctx, query, userID, month, year, amount)
	if err != nil {
		return false, fmt.Errorf("inserting fee: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}

	return affected > 0, nil
}
