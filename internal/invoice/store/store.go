package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jpcarvalho/clubledger/internal/invoice"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	i.id, i.user_id, i.number, i.issue_date, i.due_date, i.status, i.total_cents, i.notes, i.created_at, i.updated_at
`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var (
		inv       invoice.Invoice
		statusStr string
	)

	if err := s.Scan(
		&inv.ID, &inv.UserID, &inv.Number, &inv.IssueDate, &inv.DueDate,
		&statusStr, &inv.Total, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(statusStr)

	return &inv, nil
}

// nextSequence reads the greatest numeric suffix among the year's invoices.
// The query runner is either the pool or an open transaction.
func nextSequence(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, year int,
) (int, error) {
	query := `
		SELECT COALESCE(MAX(split_part(number, '/', 2)::int), 0) + 1
		FROM invoices
		WHERE number LIKE $1
	`

	var seq int
	if err := q.QueryRowContext(ctx, query, fmt.Sprintf("FT%d/%%", year)).Scan(&seq); err != nil {
		return 0, fmt.Errorf("reading invoice sequence: %w", err)
	}

	return seq, nil
}

func (s *Store) NextSequence(ctx context.Context, year int) (int, error) {
	return nextSequence(ctx, s.db, year)
}

// CreateInvoice allocates the year-scoped number and inserts the invoice with
// its items in one database transaction. A concurrent creation that grabbed
// the same number trips the unique constraint and surfaces as
// ErrNumberConflict for the service to retry.
func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	seq, err := nextSequence(ctx, dbTx, inv.IssueDate.Year())
	if err != nil {
		return err
	}

	inv.Number = invoice.FormatNumber(inv.IssueDate.Year(), seq)

	insertQuery := `
		INSERT INTO invoices (user_id, number, issue_date, due_date, status, total_cents, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, insertQuery,
		inv.UserID, inv.Number, inv.IssueDate, inv.DueDate, inv.Status, inv.Total, inv.Notes,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return invoice.ErrNumberConflict
		}

		return fmt.Errorf("creating invoice: %w", err)
	}

	if err := insertItems(ctx, dbTx, inv.ID, inv.Items); err != nil {
		return err
	}

	for i := range inv.Items {
		inv.Items[i].InvoiceID = inv.ID
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing invoice: %w", err)
	}

	return nil
}

// insertItems writes the items with their slice index as position, so reads
// give them back in the order the caller put them on the invoice.
func insertItems(ctx context.Context, dbTx *sql.Tx, invoiceID uuid.UUID, items []invoice.Item) error {
	query := `
		INSERT INTO invoice_items (invoice_id, description, unit_price_cents, quantity, line_total_cents, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for i := range items {
		err := dbTx.QueryRowContext(ctx, query,
			invoiceID, items[i].Description, items[i].UnitPrice, items[i].Quantity, items[i].LineTotal, i,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("creating invoice item: %w", err)
		}
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices i WHERE i.id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	itemsQuery := `
		SELECT id, invoice_id, description, unit_price_cents, quantity, line_total_cents
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("listing invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item invoice.Item
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.UnitPrice, &item.Quantity, &item.LineTotal); err != nil {
			return nil, fmt.Errorf("scanning invoice item: %w", err)
		}

		inv.Items = append(inv.Items, item)
	}

	return inv, rows.Err()
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices i WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND i.user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Year != nil {
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM i.issue_date) = $%d", argIdx)

		args = append(args, *filter.Year)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND i.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY i.number DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices
		SET due_date = $1, status = $2, notes = $3, updated_at = NOW()
		WHERE id = $4
	`

	if _, err := s.db.ExecContext(ctx, query, inv.DueDate, inv.Status, inv.Notes, inv.ID); err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}

// ReplaceItems deletes the full item set and recreates it, updating the
// stored total in the same database transaction. Items are never patched
// individually.
func (s *Store) ReplaceItems(ctx context.Context, id uuid.UUID, items []invoice.Item, total int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var exists uuid.UUID

	err = dbTx.QueryRowContext(ctx, `SELECT id FROM invoices WHERE id = $1 FOR UPDATE`, id).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return invoice.ErrNotFound
		}

		return fmt.Errorf("locking invoice: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("deleting invoice items: %w", err)
	}

	if err := insertItems(ctx, dbTx, id, items); err != nil {
		return err
	}

	if _, err := dbTx.ExecContext(ctx, `UPDATE invoices SET total_cents = $1, updated_at = NOW() WHERE id = $2`, total, id); err != nil {
		return fmt.Errorf("updating invoice total: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing item replacement: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if affected == 0 {
		return invoice.ErrNotFound
	}

	return nil
}
