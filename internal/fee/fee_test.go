package fee_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jpcarvalho/clubledger/internal/fee"
)

func TestEffectiveStatus(t *testing.T) {
	type testCase struct {
		name   string
		status fee.Status
		month  int
		year   int
		today  time.Time
		want   fee.Status
	}

	tests := []testCase{
		{
			name:   "PendingPastYearIsOverdue",
			status: fee.StatusPendente,
			month:  1,
			year:   2024,
			today:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want:   fee.StatusAtrasada,
		},
		{
			name:   "PendingEarlierMonthSameYearIsOverdue",
			status: fee.StatusPendente,
			month:  5,
			year:   2025,
			today:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			want:   fee.StatusAtrasada,
		},
		{
			name:   "PendingCurrentMonthStaysPending",
			status: fee.StatusPendente,
			month:  6,
			year:   2025,
			today:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want:   fee.StatusPendente,
		},
		{
			name:   "PendingFutureMonthStaysPending",
			status: fee.StatusPendente,
			month:  12,
			year:   2025,
			today:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want:   fee.StatusPendente,
		},
		{
			name:   "PaidNeverTurnsOverdue",
			status: fee.StatusPaga,
			month:  1,
			year:   2020,
			today:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want:   fee.StatusPaga,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fee.Fee{Status: tt.status, Month: tt.month, Year: tt.year}

			assert.Equal(t, tt.want, fee.EffectiveStatus(f, tt.today))
		})
	}
}

func TestPaymentDescription(t *testing.T) {
	assert.Equal(t, "Mensalidade 03/2025", fee.PaymentDescription(3, 2025))
	assert.Equal(t, "Mensalidade 12/2024", fee.PaymentDescription(12, 2024))
}
