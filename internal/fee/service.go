package fee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jpcarvalho/clubledger/internal/member"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

var (
	ErrInvalidPeriod = errors.New("billing period out of range")
	ErrInvalidAmount = errors.New("fee amount must not be negative")
	ErrInvalidMethod = errors.New("unknown payment method")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=fee
type Repository interface {
	CreateFee(ctx context.Context, f *Fee) error
	GetFee(ctx context.Context, id uuid.UUID) (*Fee, error)
	UpdateFee(ctx context.Context, f *Fee) error
	DeleteFee(ctx context.Context, id uuid.UUID) error
	ListFees(ctx context.Context, filter ListFilter) ([]*Fee, error)

	// MarkPaid creates the backing receita transaction and flips the fee to
	// paga in one database transaction.
	MarkPaid(ctx context.Context, id uuid.UUID, paymentDate time.Time, method transaction.PaymentMethod) (*Fee, error)

	BeginGeneration(ctx context.Context) (GenerationTx, error)
}

// GenerationTx is a database transaction scoped to one bulk generation run,
// so a run either creates all missing fees for the period or none.
type GenerationTx interface {
	// InsertPending creates a pendente fee unless one already exists for
	// (userID, month, year). Reports whether a row was created.
	InsertPending(ctx context.Context, userID uuid.UUID, month, year int, amount int64) (bool, error)
	Commit() error
	Rollback() error
}

type ListFilter struct {
	UserID *uuid.UUID
	Month  *int
	Year   *int
	Status *Status
}

type Service struct {
	repo    Repository
	members member.Directory
}

func NewService(repo Repository, members member.Directory) *Service {
	return &Service{repo: repo, members: members}
}

// Generate creates one pendente fee per active member for the billing period,
// skipping members that already have one. Returns the number of fees created.
// Calling it again for the same period is a no-op; amounts are never
// retroactively changed.
func (s *Service) Generate(ctx context.Context, month, year int, amount int64) (int, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return 0, ErrInvalidPeriod
	}

	if amount < 0 {
		return 0, ErrInvalidAmount
	}

	memberIDs, err := s.members.ActiveMemberIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing active members: %w", err)
	}

	gtx, err := s.repo.BeginGeneration(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin generation: %w", err)
	}
	defer gtx.Rollback()

	created := 0

	for _, id := range memberIDs {
		inserted, err := gtx.InsertPending(ctx, id, month, year, amount)
		if err != nil {
			return 0, fmt.Errorf("inserting fee for member %s: %w", id, err)
		}

		if inserted {
			created++
		}
	}

	if err := gtx.Commit(); err != nil {
		return 0, fmt.Errorf("commit generation: %w", err)
	}

	return created, nil
}

// MarkPaid settles a fee: the backing transaction and the fee update happen
// atomically in the store so the payment linkage is never observable half-done.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, paymentDate time.Time, method transaction.PaymentMethod) (*Fee, error) {
	if !method.Valid() {
		return nil, ErrInvalidMethod
	}

	if paymentDate.IsZero() {
		return nil, fmt.Errorf("payment date is required")
	}

	return s.repo.MarkPaid(ctx, id, paymentDate, method)
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, month, year int, amount int64) (*Fee, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, ErrInvalidPeriod
	}

	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	f := &Fee{
		UserID: userID,
		Month:  month,
		Year:   year,
		Amount: amount,
		Status: StatusPendente,
	}
	if err := s.repo.CreateFee(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Fee, error) {
	return s.repo.GetFee(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Fee, error) {
	return s.repo.ListFees(ctx, filter)
}

// Update changes the amount of a pendente fee. Paid fees are frozen; their
// amount is mirrored by the backing transaction.
func (s *Service) Update(ctx context.Context, id uuid.UUID, amount int64) (*Fee, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	f, err := s.repo.GetFee(ctx, id)
	if err != nil {
		return nil, err
	}

	if f.Status == StatusPaga {
		return nil, ErrAlreadyPaid
	}

	f.Amount = amount
	if err := s.repo.UpdateFee(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

// Delete removes a pendente fee. Deleting a paid fee would orphan its backing
// transaction, so it is refused.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := s.repo.GetFee(ctx, id)
	if err != nil {
		return err
	}

	if f.Status == StatusPaga {
		return ErrAlreadyPaid
	}

	return s.repo.DeleteFee(ctx, id)
}
