package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcarvalho/clubledger/internal/transaction"
	"github.com/jpcarvalho/clubledger/internal/transaction/store"
)

var transactionColumns = []string{
	"id", "user_id", "description", "raw_description", "amount_cents", "type", "status",
	"date", "payment_method", "category_id", "receipt_ref", "created_by", "created_at", "updated_at", "deleted_at",
}

func transactionRow(rows *sqlmock.Rows) *sqlmock.Rows {
	return rows.AddRow(
		uuid.NewString(), nil, "Mensalidade 03/2026", nil, int64(1500), "receita", "paga",
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "mbway", nil, nil, nil,
		time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), nil, nil,
	)
}

func TestStore_ListTransactions_AppliesLimitOffset(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 20).
		WillReturnRows(transactionRow(sqlmock.NewRows(transactionColumns)))

	txs, err := store.New(db).ListTransactions(context.Background(), transaction.ListFilter{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListTransactions_ZeroLimitReturnsWholeSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// No LIMIT clause: the query ends at the ordering.
	mock.ExpectQuery(`ORDER BY t\.date ASC, t\.created_at ASC$`).
		WillReturnRows(transactionRow(transactionRow(sqlmock.NewRows(transactionColumns))))

	txs, err := store.New(db).ListTransactions(context.Background(), transaction.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}
