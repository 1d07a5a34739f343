package fee_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jpcarvalho/clubledger/internal/fee"
	"github.com/jpcarvalho/clubledger/internal/member"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

func TestService_Generate(t *testing.T) {
	memberA := uuid.New()
	memberB := uuid.New()
	memberC := uuid.New()

	type args struct {
		month  int
		year   int
		amount int64
	}

	type testCase struct {
		name        string
		args        args
		setupMocks  func(repo *fee.MockRepository, dir *member.MockDirectory, gtx *fee.MockGenerationTx)
		wantCreated int
		wantErr     error
	}

	tests := []testCase{
		{
			name: "CreatesFeeForEachActiveMember",
			args: args{month: 3, year: 2025, amount: 1500},
			setupMocks: func(repo *fee.MockRepository, dir *member.MockDirectory, gtx *fee.MockGenerationTx) {
				dir.EXPECT().ActiveMemberIDs(gomock.Any()).Return([]uuid.UUID{memberA, memberB, memberC}, nil)
				repo.EXPECT().BeginGeneration(gomock.Any()).Return(gtx, nil)
				gtx.EXPECT().InsertPending(gomock.Any(), memberA, 3, 2025, int64(1500)).Return(true, nil)
				gtx.EXPECT().InsertPending(gomock.Any(), memberB, 3, 2025, int64(1500)).Return(true, nil)
				gtx.EXPECT().InsertPending(gomock.Any(), memberC, 3, 2025, int64(1500)).Return(true, nil)
				gtx.EXPECT().Commit().Return(nil)
				gtx.EXPECT().Rollback().Return(nil)
			},
			wantCreated: 3,
		},
		{
			name: "SkipsMembersWithExistingFee",
			args: args{month: 3, year: 2025, amount: 1500},
			setupMocks: func(repo *fee.MockRepository, dir *member.MockDirectory, gtx *fee.MockGenerationTx) {
				dir.EXPECT().ActiveMemberIDs(gomock.Any()).Return([]uuid.UUID{memberA, memberB}, nil)
				repo.EXPECT().BeginGeneration(gomock.Any()).Return(gtx, nil)
				gtx.EXPECT().InsertPending(gomock.Any(), memberA, 3, 2025, int64(1500)).Return(false, nil)
				gtx.EXPECT().InsertPending(gomock.Any(), memberB, 3, 2025, int64(1500)).Return(true, nil)
				gtx.EXPECT().Commit().Return(nil)
				gtx.EXPECT().Rollback().Return(nil)
			},
			wantCreated: 1,
		},
		{
			name:    "MonthOutOfRange",
			args:    args{month: 13, year: 2025, amount: 1500},
			wantErr: fee.ErrInvalidPeriod,
		},
		{
			name:    "YearOutOfRange",
			args:    args{month: 1, year: 1999, amount: 1500},
			wantErr: fee.ErrInvalidPeriod,
		},
		{
			name:    "NegativeAmount",
			args:    args{month: 1, year: 2025, amount: -1},
			wantErr: fee.ErrInvalidAmount,
		},
		{
			name: "DirectoryErrorAborts",
			args: args{month: 3, year: 2025, amount: 1500},
			setupMocks: func(repo *fee.MockRepository, dir *member.MockDirectory, gtx *fee.MockGenerationTx) {
				dir.EXPECT().ActiveMemberIDs(gomock.Any()).Return(nil, errors.New("directory down"))
			},
			wantErr: errors.New("directory down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := fee.NewMockRepository(ctrl)
			dir := member.NewMockDirectory(ctrl)
			gtx := fee.NewMockGenerationTx(ctrl)

			if tt.setupMocks != nil {
				tt.setupMocks(repo, dir, gtx)
			}

			svc := fee.NewService(repo, dir)
			created, err := svc.Generate(context.Background(), tt.args.month, tt.args.year, tt.args.amount)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Zero(t, created)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
		})
	}
}

func TestService_Generate_SecondRunCreatesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	memberA := uuid.New()

	repo := fee.NewMockRepository(ctrl)
	dir := member.NewMockDirectory(ctrl)
	gtx := fee.NewMockGenerationTx(ctrl)

	dir.EXPECT().ActiveMemberIDs(gomock.Any()).Return([]uuid.UUID{memberA}, nil)
	repo.EXPECT().BeginGeneration(gomock.Any()).Return(gtx, nil)
	gtx.EXPECT().InsertPending(gomock.Any(), memberA, 3, 2025, int64(1500)).Return(false, nil)
	gtx.EXPECT().Commit().Return(nil)
	gtx.EXPECT().Rollback().Return(nil)

	svc := fee.NewService(repo, dir)
	created, err := svc.Generate(context.Background(), 3, 2025, 1500)

	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestService_MarkPaid(t *testing.T) {
	paymentDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("InvalidMethod", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := fee.NewService(fee.NewMockRepository(ctrl), member.NewMockDirectory(ctrl))

		_, err := svc.MarkPaid(context.Background(), uuid.New(), paymentDate, "cheque")
		assert.ErrorIs(t, err, fee.ErrInvalidMethod)
	})

	t.Run("ZeroPaymentDate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := fee.NewService(fee.NewMockRepository(ctrl), member.NewMockDirectory(ctrl))

		_, err := svc.MarkPaid(context.Background(), uuid.New(), time.Time{}, transaction.MethodMBWay)
		assert.Error(t, err)
	})

	t.Run("DelegatesToRepo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		txID := uuid.New()
		repo := fee.NewMockRepository(ctrl)
		repo.EXPECT().
			MarkPaid(gomock.Any(), id, paymentDate, transaction.MethodMBWay).
			Return(&fee.Fee{ID: id, Status: fee.StatusPaga, PaymentDate: &paymentDate, TransactionID: &txID}, nil)

		svc := fee.NewService(repo, member.NewMockDirectory(ctrl))

		f, err := svc.MarkPaid(context.Background(), id, paymentDate, transaction.MethodMBWay)
		require.NoError(t, err)
		assert.Equal(t, fee.StatusPaga, f.Status)
		assert.NotNil(t, f.TransactionID)
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := fee.NewMockRepository(ctrl)
		repo.EXPECT().
			MarkPaid(gomock.Any(), id, paymentDate, transaction.MethodDinheiro).
			Return(nil, fee.ErrAlreadyPaid)

		svc := fee.NewService(repo, member.NewMockDirectory(ctrl))

		_, err := svc.MarkPaid(context.Background(), id, paymentDate, transaction.MethodDinheiro)
		assert.ErrorIs(t, err, fee.ErrAlreadyPaid)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("PaidFeeIsFrozen", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := fee.NewMockRepository(ctrl)
		repo.EXPECT().GetFee(gomock.Any(), id).Return(&fee.Fee{ID: id, Status: fee.StatusPaga}, nil)

		svc := fee.NewService(repo, member.NewMockDirectory(ctrl))

		_, err := svc.Update(context.Background(), id, 2000)
		assert.ErrorIs(t, err, fee.ErrAlreadyPaid)
	})

	t.Run("PendingFeeAmountChanges", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := fee.NewMockRepository(ctrl)
		repo.EXPECT().GetFee(gomock.Any(), id).Return(&fee.Fee{ID: id, Status: fee.StatusPendente, Amount: 1500}, nil)
		repo.EXPECT().UpdateFee(gomock.Any(), gomock.Any()).Return(nil)

		svc := fee.NewService(repo, member.NewMockDirectory(ctrl))

		f, err := svc.Update(context.Background(), id, 2000)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), f.Amount)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("PaidFeeRefused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := fee.NewMockRepository(ctrl)
		repo.EXPECT().GetFee(gomock.Any(), id).Return(&fee.Fee{ID: id, Status: fee.StatusPaga}, nil)

		svc := fee.NewService(repo, member.NewMockDirectory(ctrl))

		assert.ErrorIs(t, svc.Delete(context.Background(), id), fee.ErrAlreadyPaid)
	})

	t.Run("PendingFeeDeleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := fee.NewMockRepository(ctrl)
		repo.EXPECT().GetFee(gomock.Any(), id).Return(&fee.Fee{ID: id, Status: fee.StatusPendente}, nil)
		repo.EXPECT().DeleteFee(gomock.Any(), id).Return(nil)

		svc := fee.NewService(repo, member.NewMockDirectory(ctrl))

		assert.NoError(t, svc.Delete(context.Background(), id))
	})
}
