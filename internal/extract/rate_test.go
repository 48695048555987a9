package extract_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderdesk/notice-validator/internal/extract"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"percent sign", "Interest Rate: 5.25% per annum", "0.0525"},
		{"integer percent", "Rate: 7% fixed", "0.07"},
		{"percent word", "accrues at 4.5 percent annually", "0.045"},
		{"pct abbreviation", "margin of 3.75 pct over base", "0.0375"},
		{"first plausible wins", "Rate: 5.25% was amended from 6.00%", "0.0525"},
		{"implausibly high skipped for later match", "adjusted 75% haircut, coupon 5.25%", "0.0525"},
		{"below floor rejected", "fee of 0.05% applies", ""},
		{"above cap rejected", "penalty of 99% applies", ""},
		{"no rate", "no percentages here", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.ParseRate(tt.text)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got.String(), tt.want)
		})
	}
}
