package fee

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpcarvalho/clubledger/internal/fee"
	"github.com/jpcarvalho/clubledger/internal/money"
)

type feeResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Month         int        `json:"month"`
	Year          int        `json:"year"`
	Amount        string     `json:"amount"`
	Status        fee.Status `json:"status"`
	PaymentDate   *string    `json:"payment_date,omitempty"`
	TransactionID *uuid.UUID `json:"transaction_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// toResponse renders a fee with its derived status: a stored pendente fee
// whose period has elapsed reads as atrasada.
func toResponse(f *fee.Fee, today time.Time) feeResponse {
	resp := feeResponse{
		ID:            f.ID,
		UserID:        f.UserID,
		Month:         f.Month,
		Year:          f.Year,
		Amount:        money.Format(f.Amount),
		Status:        fee.EffectiveStatus(f, today),
		TransactionID: f.TransactionID,
		CreatedAt:     f.CreatedAt,
	}

	if f.PaymentDate != nil {
		d := f.PaymentDate.Format(time.DateOnly)
		resp.PaymentDate = &d
	}

	return resp
}

func toResponseList(fees []*fee.Fee, today time.Time) []feeResponse {
	resp := make([]feeResponse, len(fees))
	for i, f := range fees {
		resp[i] = toResponse(f, today)
	}

	return resp
}
