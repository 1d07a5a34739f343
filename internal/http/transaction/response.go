package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpcarvalho/clubledger/internal/money"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

type transactionResponse struct {
	ID             uuid.UUID                 `json:"id"`
	UserID         *uuid.UUID                `json:"user_id,omitempty"`
	Description    string                    `json:"description"`
	RawDescription string                    `json:"raw_description,omitempty"`
	Amount         string                    `json:"amount"`
	Type           transaction.Type          `json:"type"`
	Status         transaction.Status        `json:"status"`
	Date           string                    `json:"date"`
	PaymentMethod  transaction.PaymentMethod `json:"payment_method,omitempty"`
	CategoryID     *uuid.UUID                `json:"category_id,omitempty"`
	ReceiptRef     string                    `json:"receipt_ref,omitempty"`
	CreatedBy      *uuid.UUID                `json:"created_by,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      *time.Time                `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:             tx.ID,
		UserID:         tx.UserID,
		Description:    tx.Description,
		RawDescription: tx.RawDescription,
		Amount:         money.Format(tx.Amount),
		Type:           tx.Type,
		Status:         tx.Status,
		Date:           tx.Date.Format(time.DateOnly),
		PaymentMethod:  tx.PaymentMethod,
		CategoryID:     tx.CategoryID,
		ReceiptRef:     tx.ReceiptRef,
		CreatedBy:      tx.CreatedBy,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
