package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcarvalho/clubledger/internal/invoice"
	"github.com/jpcarvalho/clubledger/internal/invoice/store"
)

func TestStore_ReplaceItems_KeepsCallerOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	// Descriptions deliberately out of alphabetical order; positions must
	// follow the slice, not the text.
	items := []invoice.Item{
		{Description: "Quota de inscrição", UnitPrice: 2500, Quantity: 1, LineTotal: 2500},
		{Description: "Aluguer de material", UnitPrice: 1000, Quantity: 2, LineTotal: 2000},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
	mock.ExpectExec("DELETE FROM invoice_items").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("INSERT INTO invoice_items").
		WithArgs(id, "Quota de inscrição", int64(2500), 1, int64(2500), 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectQuery("INSERT INTO invoice_items").
		WithArgs(id, "Aluguer de material", int64(1000), 2, int64(2000), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectExec("UPDATE invoices SET total_cents").
		WithArgs(int64(4500), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = store.New(db).ReplaceItems(context.Background(), id, items, 4500)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetInvoice_ReadsItemsByPosition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	issued := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM invoices i").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "number", "issue_date", "due_date", "status", "total_cents", "notes", "created_at", "updated_at",
		}).AddRow(id.String(), uuid.NewString(), "FT2026/0001", issued, issued.AddDate(0, 1, 0), "pendente", int64(4500), "", issued, nil))
	mock.ExpectQuery(`ORDER BY position ASC`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "invoice_id", "description", "unit_price_cents", "quantity", "line_total_cents",
		}).
			AddRow(uuid.NewString(), id.String(), "Quota de inscrição", int64(2500), 1, int64(2500)).
			AddRow(uuid.NewString(), id.String(), "Aluguer de material", int64(1000), 2, int64(2000)))

	inv, err := store.New(db).GetInvoice(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Quota de inscrição", inv.Items[0].Description)
	assert.Equal(t, "Aluguer de material", inv.Items[1].Description)

	assert.NoError(t, mock.ExpectationsWereMet())
}
