package calc_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lenderdesk/notice-validator/internal/calc"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   *decimal.Decimal
		want string
	}{
		{"millions", decPtr("1234567.89"), "$1,234,567.89"},
		{"exact thousands", decPtr("1000000"), "$1,000,000.00"},
		{"under one thousand", decPtr("999.5"), "$999.50"},
		{"zero", decPtr("0"), "$0.00"},
		{"negative", decPtr("-13125"), "-$13,125.00"},
		{"nil", nil, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.FormatCurrency(tt.in))
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "5.2500%", calc.FormatPercentage(decPtr("0.0525")))
	assert.Equal(t, "0.0100%", calc.FormatPercentage(decPtr("0.0001")))
	assert.Equal(t, "100.0000%", calc.FormatPercentage(decPtr("1")))
	assert.Equal(t, "N/A", calc.FormatPercentage(nil))
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "1 day", calc.FormatDays(1))
	assert.Equal(t, "90 days", calc.FormatDays(90))
	assert.Equal(t, "0 days", calc.FormatDays(0))
}
