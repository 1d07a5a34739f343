package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// numberRetries bounds how often a creation is retried after losing the
// invoice-number race to a concurrent creation.
const numberRetries = 3

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	// NextSequence returns the next free sequence number for the year,
	// based on the numerically greatest suffix among existing invoices.
	NextSequence(ctx context.Context, year int) (int, error)

	// CreateInvoice allocates the number and inserts the invoice with its
	// items in one database transaction. Returns ErrNumberConflict when the
	// allocated number was taken concurrently.
	CreateInvoice(ctx context.Context, inv *Invoice) error

	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error

	// ReplaceItems swaps the full item set and the stored total atomically.
	ReplaceItems(ctx context.Context, id uuid.UUID, items []Item, total int64) error
}

type ListFilter struct {
	UserID *uuid.UUID
	Year   *int
	Status *Status
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ItemParams struct {
	Description string
	UnitPrice   int64
	Quantity    int
}

type CreateParams struct {
	UserID    uuid.UUID
	IssueDate time.Time
	DueDate   time.Time
	Notes     string
	Items     []ItemParams
}

// NextNumber previews the number the next invoice of the year would get.
// Nothing is reserved; creation re-reads the sequence inside its own
// transaction.
func (s *Service) NextNumber(ctx context.Context, year int) (string, error) {
	seq, err := s.repo.NextSequence(ctx, year)
	if err != nil {
		return "", err
	}

	return FormatNumber(year, seq), nil
}

// Create builds the invoice with computed line totals and persists it.
// A lost number race is retried with a fresh sequence read.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	if len(params.Items) == 0 {
		return nil, ErrNoItems
	}

	items, total := buildItems(params.Items)

	inv := &Invoice{
		UserID:    params.UserID,
		IssueDate: params.IssueDate,
		DueDate:   params.DueDate,
		Status:    StatusPendente,
		Total:     total,
		Notes:     params.Notes,
		Items:     items,
	}

	var err error
	for range numberRetries {
		err = s.repo.CreateInvoice(ctx, inv)
		if !errors.Is(err, ErrNumberConflict) {
			break
		}
	}

	if err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

type UpdateParams struct {
	DueDate *time.Time
	Status  *Status
	Notes   *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.DueDate != nil {
		inv.DueDate = *params.DueDate
	}

	if params.Status != nil {
		inv.Status = *params.Status
	}

	if params.Notes != nil {
		inv.Notes = *params.Notes
	}

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// ReplaceItems swaps the whole item set. Items are owned by the invoice, so
// this is a delete-and-recreate, not a diff; the total follows the new set.
func (s *Service) ReplaceItems(ctx context.Context, id uuid.UUID, params []ItemParams) (*Invoice, error) {
	if len(params) == 0 {
		return nil, ErrNoItems
	}

	items, total := buildItems(params)

	if err := s.repo.ReplaceItems(ctx, id, items, total); err != nil {
		return nil, err
	}

	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, id)
}

func buildItems(params []ItemParams) ([]Item, int64) {
	items := make([]Item, len(params))

	var total int64

	for i, p := range params {
		lineTotal := p.UnitPrice * int64(p.Quantity)
		items[i] = Item{
			Description: p.Description,
			UnitPrice:   p.UnitPrice,
			Quantity:    p.Quantity,
			LineTotal:   lineTotal,
		}
		total += lineTotal
	}

	return items, total
}
