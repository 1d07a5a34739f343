package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpcarvalho/clubledger/internal/invoice"
	"github.com/jpcarvalho/clubledger/internal/money"
)

type itemResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	LineTotal   string    `json:"line_total"`
}

type invoiceResponse struct {
	ID        uuid.UUID      `json:"id"`
	Number    string         `json:"number"`
	UserID    uuid.UUID      `json:"user_id"`
	IssueDate string         `json:"issue_date"`
	DueDate   string         `json:"due_date"`
	Status    invoice.Status `json:"status"`
	Total     string         `json:"total"`
	Notes     string         `json:"notes,omitempty"`
	Items     []itemResponse `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	resp := invoiceResponse{
		ID:        inv.ID,
		Number:    inv.Number,
		UserID:    inv.UserID,
		IssueDate: inv.IssueDate.Format(time.DateOnly),
		DueDate:   inv.DueDate.Format(time.DateOnly),
		Status:    inv.Status,
		Total:     money.Format(inv.Total),
		Notes:     inv.Notes,
		Items:     make([]itemResponse, len(inv.Items)),
		CreatedAt: inv.CreatedAt,
	}

	for i, item := range inv.Items {
		resp.Items[i] = itemResponse{
			ID:          item.ID,
			Description: item.Description,
			UnitPrice:   money.Format(item.UnitPrice),
			Quantity:    item.Quantity,
			LineTotal:   money.Format(item.LineTotal),
		}
	}

	return resp
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}
