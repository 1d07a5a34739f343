package transaction

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jpcarvalho/clubledger/internal/http/middleware"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

func TestPaginationFromQuery(t *testing.T) {
	type testCase struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}

	tests := []testCase{
		{name: "Defaults", query: "", wantLimit: 50, wantOffset: 0},
		{name: "Explicit", query: "?limit=10&offset=20", wantLimit: 10, wantOffset: 20},
		{name: "LimitCapped", query: "?limit=9999", wantLimit: 500, wantOffset: 0},
		{name: "ZeroLimit", query: "?limit=0", wantErr: true},
		{name: "NegativeOffset", query: "?offset=-1", wantErr: true},
		{name: "GarbageLimit", query: "?limit=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions"+tt.query, nil)

			var filter transaction.ListFilter

			err := paginationFromQuery(req, &filter)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, filter.Limit)
			assert.Equal(t, tt.wantOffset, filter.Offset)
		})
	}
}

func TestHandler_List_PassesPaginationToService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
			assert.Equal(t, 10, filter.Limit)
			assert.Equal(t, 30, filter.Offset)

			return nil, nil
		})

	h := NewHandler(transaction.NewService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?limit=10&offset=30", nil)
	rec := httptest.NewRecorder()

	h.list(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Create_RecordsActingAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actor := uuid.New()

	var created *transaction.Transaction

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			created = tx
			return nil
		})

	h := NewHandler(transaction.NewService(repo))

	body := `{"description":"Aluguer pavilhão","amount":"120.00","type":"despesa","status":"paga","date":"2026-03-01","payment_method":"transferencia"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), actor))

	rec := httptest.NewRecorder()
	h.create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, actor, *created.CreatedBy)
}

func TestHandler_Create_NoActorLeavesCreatedByEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var created *transaction.Transaction

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			created = tx
			return nil
		})

	h := NewHandler(transaction.NewService(repo))

	body := `{"description":"Donativo","amount":"50.00","type":"receita","status":"paga","date":"2026-03-02"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))

	rec := httptest.NewRecorder()
	h.create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Nil(t, created.CreatedBy)
}
