package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcarvalho/clubledger/internal/fee"
	"github.com/jpcarvalho/clubledger/internal/fee/store"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

var feeColumns = []string{
	"id", "user_id", "month", "year", "amount_cents", "status",
	"payment_date", "transaction_id", "created_at", "updated_at",
}

func TestStore_MarkPaid_ReturnsRefreshedFee(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var (
		feeID       = uuid.New()
		userID      = uuid.New()
		txID        = uuid.New()
		createdAt   = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		paymentDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		updatedAt   = time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
	)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(feeColumns).
			AddRow(feeID.String(), userID.String(), 3, 2026, int64(1500), "pendente", nil, nil, createdAt, nil))
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(txID.String()))
	mock.ExpectQuery("UPDATE membership_fees").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updatedAt))
	mock.ExpectCommit()

	got, err := store.New(db).MarkPaid(context.Background(), feeID, paymentDate, transaction.MethodMBWay)
	require.NoError(t, err)

	assert.Equal(t, fee.StatusPaga, got.Status)

	require.NotNil(t, got.TransactionID)
	assert.Equal(t, txID, *got.TransactionID)

	require.NotNil(t, got.PaymentDate)
	assert.True(t, paymentDate.Equal(*got.PaymentDate))

	require.NotNil(t, got.UpdatedAt)
	assert.True(t, updatedAt.Equal(*got.UpdatedAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_MarkPaid_AlreadyPaidRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	feeID := uuid.New()
	paid := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(feeColumns).
			AddRow(feeID.String(), uuid.NewString(), 2, 2026, int64(1500), "paga", paid, uuid.NewString(), paid, nil))
	mock.ExpectRollback()

	_, err = store.New(db).MarkPaid(context.Background(), feeID, time.Now(), transaction.MethodDinheiro)
	assert.ErrorIs(t, err, fee.ErrAlreadyPaid)

	assert.NoError(t, mock.ExpectationsWereMet())
}
