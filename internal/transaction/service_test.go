package transaction_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jpcarvalho/clubledger/internal/transaction"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *transaction.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: transaction.CreateParams{
				Description: "Aluguer do pavilhão",
				Amount:      25000,
				Type:        transaction.TypeDespesa,
				Status:      transaction.StatusPaga,
				Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:   "RepoError",
			params: transaction.CreateParams{Amount: 500},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Update_FeeBacked(t *testing.T) {
	id := uuid.New()

	current := &transaction.Transaction{
		ID:     id,
		Amount: 1500,
		Type:   transaction.TypeReceita,
		Status: transaction.StatusPaga,
	}

	t.Run("AmountChangeRefused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().GetTransaction(gomock.Any(), id).Return(current, nil)
		repo.EXPECT().FeeBacked(gomock.Any(), id).Return(true, nil)

		svc := transaction.NewService(repo)

		changed := *current
		changed.Amount = 2000

		err := svc.Update(context.Background(), &changed)
		assert.ErrorIs(t, err, transaction.ErrLinkedToFee)
	})

	t.Run("DescriptionChangeAllowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().GetTransaction(gomock.Any(), id).Return(current, nil)
		repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)

		svc := transaction.NewService(repo)

		changed := *current
		changed.Description = "Mensalidade março (corrigida)"

		assert.NoError(t, svc.Update(context.Background(), &changed))
	})

	t.Run("AmountChangeOnUnbackedTransaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().GetTransaction(gomock.Any(), id).Return(current, nil)
		repo.EXPECT().FeeBacked(gomock.Any(), id).Return(false, nil)
		repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)

		svc := transaction.NewService(repo)

		changed := *current
		changed.Amount = 2000

		assert.NoError(t, svc.Update(context.Background(), &changed))
	})
}

func TestService_ImportBatch(t *testing.T) {
	date := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	params := []transaction.CreateParams{
		{
			Description:    "TRF Clube",
			RawDescription: "TRF Clube",
			Amount:         1500,
			Type:           transaction.TypeReceita,
			Status:         transaction.StatusPaga,
			Date:           date,
		},
	}

	t.Run("NoConflictsWrites", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		btx := transaction.NewMockBatchTx(ctrl)

		repo.EXPECT().BeginBatch(gomock.Any(), date, date).Return(btx, nil)
		btx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
		btx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
		btx.EXPECT().Commit().Return(nil)
		btx.EXPECT().Rollback().Return(nil)

		svc := transaction.NewService(repo)
		result, err := svc.ImportBatch(context.Background(), params)

		require.NoError(t, err)
		assert.Len(t, result.Imported, 1)
		assert.Empty(t, result.Conflicts)
	})

	t.Run("ConflictWritesNothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		existing := &transaction.Transaction{
			ID:             uuid.New(),
			RawDescription: "TRF Clube",
			Amount:         1500,
			Type:           transaction.TypeReceita,
			Date:           date,
		}

		repo := transaction.NewMockRepository(ctrl)
		btx := transaction.NewMockBatchTx(ctrl)

		repo.EXPECT().BeginBatch(gomock.Any(), date, date).Return(btx, nil)
		btx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*transaction.Transaction{existing}, nil)
		btx.EXPECT().Rollback().Return(nil)

		svc := transaction.NewService(repo)
		result, err := svc.ImportBatch(context.Background(), params)

		require.NoError(t, err)
		assert.Empty(t, result.Imported)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, existing.ID, result.Conflicts[0].Existing.ID)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := transaction.NewService(transaction.NewMockRepository(ctrl))
		result, err := svc.ImportBatch(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, result.Imported)
	})
}

func TestService_WriteCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{}).
		Return([]*transaction.Transaction{
			{
				Description:   "=cmd|payload",
				Amount:        1234,
				Type:          transaction.TypeReceita,
				Status:        transaction.StatusPaga,
				Date:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				PaymentMethod: transaction.MethodMBWay,
			},
		}, nil)

	svc := transaction.NewService(repo)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), transaction.ListFilter{}, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,type,status,amount,payment_method,description", lines[0])
	assert.Contains(t, lines[1], "2025-03-01")
	assert.Contains(t, lines[1], "12.34")
	// Formula injection is neutralized with a leading quote.
	assert.Contains(t, lines[1], "'=cmd|payload")
}

func TestService_Delete_LinkedToFee(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().DeleteTransaction(gomock.Any(), id).Return(transaction.ErrLinkedToFee)

	svc := transaction.NewService(repo)

	assert.ErrorIs(t, svc.Delete(context.Background(), id), transaction.ErrLinkedToFee)
}
