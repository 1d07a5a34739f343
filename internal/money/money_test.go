package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcarvalho/clubledger/internal/money"
)

func TestParse(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "Plain", input: "25.00", want: 2500},
		{name: "NoDecimals", input: "25", want: 2500},
		{name: "OneDecimal", input: "25.5", want: 2550},
		{name: "Negative", input: "-12.34", want: -1234},
		{name: "Zero", input: "0", want: 0},
		{name: "Whitespace", input: "  15.00 ", want: 1500},
		{name: "Garbage", input: "abc", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEuropean(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "ThousandsSeparator", input: "1.234,56", want: 123456},
		{name: "Negative", input: "-588,74", want: -58874},
		{name: "Simple", input: "10,00", want: 1000},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseEuropean(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.34", money.Format(1234))
	assert.Equal(t, "0.00", money.Format(0))
	assert.Equal(t, "-5.05", money.Format(-505))
	assert.Equal(t, "1500.00", money.Format(150000))
}
