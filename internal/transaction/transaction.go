package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type represents the direction of a financial movement.
type Type string

const (
	TypeReceita Type = "receita"
	TypeDespesa Type = "despesa"
)

func (t Type) Valid() bool {
	return t == TypeReceita || t == TypeDespesa
}

// Status represents the settlement state of a transaction.
type Status string

const (
	StatusPendente Status = "pendente"
	StatusPaga     Status = "paga"
)

func (s Status) Valid() bool {
	return s == StatusPendente || s == StatusPaga
}

// PaymentMethod is how a transaction was settled.
type PaymentMethod string

const (
	MethodDinheiro      PaymentMethod = "dinheiro"
	MethodTransferencia PaymentMethod = "transferencia"
	MethodMBWay         PaymentMethod = "mbway"
	MethodMultibanco    PaymentMethod = "multibanco"
	MethodCartao        PaymentMethod = "cartao"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodDinheiro, MethodTransferencia, MethodMBWay, MethodMultibanco, MethodCartao:
		return true
	}

	return false
}

var (
	ErrNotFound = errors.New("transaction not found")

	// ErrLinkedToFee is returned when deleting or mutating a transaction
	// that backs a paid membership fee.
	ErrLinkedToFee = errors.New("transaction is linked to a paid membership fee")
)

// Transaction represents a posted financial movement of the club.
type Transaction struct {
	ID             uuid.UUID
	UserID         *uuid.UUID
	Description    string
	RawDescription string
	Amount         int64 // Amount in cents, always non-negative; direction comes from Type.
	Type           Type
	Status         Status
	Date           time.Time
	PaymentMethod  PaymentMethod
	CategoryID     *uuid.UUID
	ReceiptRef     string
	CreatedBy      *uuid.UUID // Acting admin for movements entered by hand; nil for derived ones.
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}
