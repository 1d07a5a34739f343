package transaction

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jpcarvalho/clubledger/internal/money"
	"github.com/jpcarvalho/clubledger/internal/sanitize"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	// FeeBacked reports whether the transaction is referenced by a paid membership fee.
	FeeBacked(ctx context.Context, id uuid.UUID) (bool, error)

	BeginBatch(ctx context.Context, minDate, maxDate time.Time) (BatchTx, error)
}

// BatchTx is a database transaction scoped to a statement import batch.
type BatchTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID         *uuid.UUID
	Description    string
	RawDescription string
	Amount         int64
	Type           Type
	Status         Status
	Date           time.Time
	PaymentMethod  PaymentMethod
	CategoryID     *uuid.UUID
	ReceiptRef     string
	CreatedBy      *uuid.UUID
}

// ListFilter is the composed predicate handed to the store. Nil fields
// mean "no restriction"; a zero Limit returns the whole filtered set,
// which the export path relies on.
type ListFilter struct {
	Status     *Status
	Type       *Type
	UserID     *uuid.UUID
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time

	Limit  int
	Offset int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := paramsToTransaction(params)
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Update persists changes to a transaction. Amount, type and status are
// frozen once the transaction backs a paid fee.
func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	current, err := s.repo.GetTransaction(ctx, tx.ID)
	if err != nil {
		return err
	}

	if tx.Amount != current.Amount || tx.Type != current.Type || tx.Status != current.Status {
		backed, err := s.repo.FeeBacked(ctx, tx.ID)
		if err != nil {
			return err
		}

		if backed {
			return ErrLinkedToFee
		}
	}

	return s.repo.UpdateTransaction(ctx, tx)
}

// Delete soft-deletes a transaction. The store refuses when the transaction
// backs a paid fee; the fee has to be dealt with first.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

type ImportResult struct {
	Imported  []*Transaction
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Transaction
}

// ImportBatch writes a parsed bank statement in one database transaction.
// When any row collides with an already recorded movement on
// (date, amount, type, raw description), nothing is written and the split
// between new rows and conflicts is returned for the caller to review.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(params)

	btx, err := s.repo.BeginBatch(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	defer btx.Rollback()

	duplicates, err := btx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Transaction, len(duplicates))
	for _, d := range duplicates {
		lookup[keyOf(d.Date, d.Amount, d.Type, d.RawDescription)] = d
	}

	var (
		newParams []CreateParams
		conflicts []Conflict
	)

	for _, p := range params {
		if existing, found := lookup[keyOf(p.Date, p.Amount, p.Type, p.RawDescription)]; found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	txs := paramsToTransactions(newParams)
	if err := btx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := btx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return &ImportResult{Imported: txs}, nil
}

// CreateBatch writes transactions without duplicate checks. Used when the
// caller already reviewed the conflicts and confirmed the remainder.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := dateRange(params)

	btx, err := s.repo.BeginBatch(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	defer btx.Rollback()

	txs := paramsToTransactions(params)
	if err := btx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := btx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return txs, nil
}

var csvHeader = []string{"date", "type", "status", "amount", "payment_method", "description"}

// WriteCSV streams the filtered transactions as CSV. Cell values are run
// through formula-injection sanitizing so exports open safely in spreadsheets.
func (s *Service) WriteCSV(ctx context.Context, filter ListFilter, w io.Writer) error {
	txs, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			tx.Date.Format(time.DateOnly),
			string(tx.Type),
			string(tx.Status),
			money.Format(tx.Amount),
			string(tx.PaymentMethod),
			sanitize.ForCSV(tx.Description),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

type dupKey struct {
	Date           string
	Amount         int64
	Type           Type
	RawDescription string
}

func keyOf(date time.Time, amount int64, t Type, rawDesc string) dupKey {
	return dupKey{
		Date:           date.Format(time.DateOnly),
		Amount:         amount,
		Type:           t,
		RawDescription: rawDesc,
	}
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func paramsToTransaction(p CreateParams) *Transaction {
	return &Transaction{
		UserID:         p.UserID,
		Description:    p.Description,
		RawDescription: p.RawDescription,
		Amount:         p.Amount,
		Type:           p.Type,
		Status:         p.Status,
		Date:           p.Date,
		PaymentMethod:  p.PaymentMethod,
		CategoryID:     p.CategoryID,
		ReceiptRef:     p.ReceiptRef,
		CreatedBy:      p.CreatedBy,
	}
}

func paramsToTransactions(params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = paramsToTransaction(p)
	}

	return txs
}
