package fee

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a membership fee. Only pendente and paga
// are ever stored; atrasada is a read-time label derived by EffectiveStatus.
type Status string

const (
	StatusPendente Status = "pendente"
	StatusPaga     Status = "paga"
	StatusAtrasada Status = "atrasada"
)

var (
	ErrNotFound    = errors.New("membership fee not found")
	ErrAlreadyPaid = errors.New("membership fee is already paid")

	// ErrDuplicate is returned when a fee already exists for (user, month, year).
	ErrDuplicate = errors.New("membership fee already exists for this period")
)

// Fee is a per-member obligation for one billing period.
type Fee struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Month         int
	Year          int
	Amount        int64 // cents
	Status        Status
	PaymentDate   *time.Time
	TransactionID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// EffectiveStatus derives the status a reader should see at the given date.
// A pendente fee whose billing period lies strictly before today's (year,
// month) is overdue; a future or current period never is.
func EffectiveStatus(f *Fee, today time.Time) Status {
	if f.Status != StatusPendente {
		return f.Status
	}

	if f.Year < today.Year() || (f.Year == today.Year() && f.Month < int(today.Month())) {
		return StatusAtrasada
	}

	return f.Status
}

// PaymentDescription is the human-readable label stamped on the transaction
// created when a fee is paid.
func PaymentDescription(month, year int) string {
	return fmt.Sprintf("Mensalidade %02d/%d", month, year)
}
