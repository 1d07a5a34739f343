package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jpcarvalho/clubledger/internal/report"
)

func TestService_Balance(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *report.MockRepository)
		want      int64
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "RevenueMinusExpense",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().Totals(gomock.Any()).Return(int64(250000), int64(100000), nil)
			},
			want: 150000,
		},
		{
			name: "NegativeBalance",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().Totals(gomock.Any()).Return(int64(5000), int64(8000), nil)
			},
			want: -3000,
		},
		{
			name: "RepoError",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().Totals(gomock.Any()).Return(int64(0), int64(0), errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := report.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := report.NewService(repo)
			got, err := svc.Balance(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Trend(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("ExactlyNEntriesOldestFirst", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().Monthly(gomock.Any(), 4, 2025).Return(report.MonthlySums{Revenue: 100, Expense: 10}, nil)
		repo.EXPECT().Monthly(gomock.Any(), 5, 2025).Return(report.MonthlySums{Revenue: 200, Expense: 20}, nil)
		repo.EXPECT().Monthly(gomock.Any(), 6, 2025).Return(report.MonthlySums{Revenue: 300, Expense: 30}, nil)

		svc := report.NewService(repo)
		points, err := svc.Trend(context.Background(), 3, today)

		require.NoError(t, err)
		require.Len(t, points, 3)
		assert.Equal(t, "2025-04", points[0].Label)
		assert.Equal(t, "2025-05", points[1].Label)
		assert.Equal(t, "2025-06", points[2].Label)
		assert.Equal(t, int64(100), points[0].Revenue)
		assert.Equal(t, int64(30), points[2].Expense)
	})

	t.Run("CrossesYearBoundary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		jan := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().Monthly(gomock.Any(), 12, 2024).Return(report.MonthlySums{}, nil)
		repo.EXPECT().Monthly(gomock.Any(), 1, 2025).Return(report.MonthlySums{}, nil)

		svc := report.NewService(repo)
		points, err := svc.Trend(context.Background(), 2, jan)

		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, "2024-12", points[0].Label)
		assert.Equal(t, "2025-01", points[1].Label)
	})

	t.Run("MonthWithNoActivityStillPresent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().Monthly(gomock.Any(), 5, 2025).Return(report.MonthlySums{}, nil)
		repo.EXPECT().Monthly(gomock.Any(), 6, 2025).Return(report.MonthlySums{Revenue: 500}, nil)

		svc := report.NewService(repo)
		points, err := svc.Trend(context.Background(), 2, today)

		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Zero(t, points[0].Revenue)
		assert.Zero(t, points[0].Expense)
	})

	t.Run("NonPositiveLength", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := report.NewService(report.NewMockRepository(ctrl))

		_, err := svc.Trend(context.Background(), 0, today)
		assert.Error(t, err)
	})

	t.Run("QueryErrorPropagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().Monthly(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(report.MonthlySums{}, errors.New("db error")).
			MinTimes(1)

		svc := report.NewService(repo)

		_, err := svc.Trend(context.Background(), 3, today)
		assert.Error(t, err)
	})
}

func TestService_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().Totals(gomock.Any()).Return(int64(300000), int64(120000), nil)
	repo.EXPECT().Monthly(gomock.Any(), 6, 2025).Return(report.MonthlySums{Revenue: 40000, Expense: 15000}, nil)
	repo.EXPECT().OverdueFeeCount(gomock.Any(), today).Return(4, nil)
	// Trend re-reads each month, including the current one.
	repo.EXPECT().Monthly(gomock.Any(), gomock.Any(), gomock.Any()).Return(report.MonthlySums{}, nil).Times(6)

	svc := report.NewService(repo)
	summary, err := svc.Summarize(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, int64(180000), summary.Balance)
	assert.Equal(t, int64(40000), summary.MonthlyRevenue)
	assert.Equal(t, int64(15000), summary.MonthlyExpense)
	assert.Equal(t, 4, summary.OverdueFees)
	assert.Len(t, summary.Trend, 6)
}
