package invoice

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the payment state of an invoice.
type Status string

const (
	StatusPendente Status = "pendente"
	StatusPaga     Status = "paga"
)

var (
	ErrNotFound = errors.New("invoice not found")
	ErrNoItems  = errors.New("invoice needs at least one item")

	// ErrNumberConflict is returned when two concurrent creations allocated
	// the same invoice number; the caller retries with a fresh read.
	ErrNumberConflict = errors.New("invoice number already taken")
)

// Invoice is an ad-hoc billable document, distinct from a membership fee.
// It exclusively owns its items; the total always equals the sum of the
// item line totals.
type Invoice struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Number    string
	IssueDate time.Time
	DueDate   time.Time
	Status    Status
	Total     int64 // cents
	Notes     string
	Items     []Item
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type Item struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Description string
	UnitPrice   int64 // cents
	Quantity    int
	LineTotal   int64 // cents
}

// FormatNumber renders the year-scoped sequential invoice number.
// The %04d suffix widens naturally past 9999; string ordering is only
// guaranteed up to that point.
func FormatNumber(year, seq int) string {
	return fmt.Sprintf("FT%d/%04d", year, seq)
}
