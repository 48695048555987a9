package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderdesk/notice-validator/internal/extract"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"slash mdy", "12/31/2023", ptr(d(2023, time.December, 31))},
		{"slash mdy unpadded", "1/5/2024", ptr(d(2024, time.January, 5))},
		{"dash mdy", "12-31-2023", ptr(d(2023, time.December, 31))},
		{"iso", "2023-12-31", ptr(d(2023, time.December, 31))},
		{"long month", "December 31, 2023", ptr(d(2023, time.December, 31))},
		{"short month", "Dec 31, 2023", ptr(d(2023, time.December, 31))},
		{"day first long", "31 December 2023", ptr(d(2023, time.December, 31))},
		{"day first short", "31 Dec 2023", ptr(d(2023, time.December, 31))},
		{"two digit year", "12/31/23", ptr(d(2023, time.December, 31))},
		{"two digit year last century", "12/31/99", ptr(d(1999, time.December, 31))},
		{"surrounding whitespace", "  03/15/2024  ", ptr(d(2024, time.March, 15))},
		{"not a date", "thirty-first of December", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.ParseDate(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestExtractPeriodDates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []time.Time
	}{
		{
			name: "labeled period dates preferred over notice date",
			text: "Notice Date: 02/01/2024\n" +
				"Interest Period Start Date: 01/01/2024\n" +
				"Interest Period End Date: 03/01/2024\n",
			want: []time.Time{d(2024, time.January, 1), d(2024, time.March, 1)},
		},
		{
			name: "from and through vocabulary",
			text: "Interest accrues from 01/01/2024 through 03/31/2024 at the stated rate.",
			want: []time.Time{d(2024, time.January, 1), d(2024, time.March, 31)},
		},
		{
			name: "period dates returned sorted",
			text: "End Date: 03/31/2024\nStart Date: 01/01/2024\n",
			want: []time.Time{d(2024, time.January, 1), d(2024, time.March, 31)},
		},
		{
			name: "fallback scan skips dates near metadata vocabulary",
			text: "Reference Number: 88\nNotice Date: 02-01-2024\n" +
				"The interest accrual runs for the stated term of the facility agreement executed previously.\n" +
				"Accrual began 01-01-2024 and ceased 03-01-2024.",
			want: []time.Time{d(2024, time.January, 1), d(2024, time.March, 1)},
		},
		{
			name: "fallback parses written out dates",
			text: "Payment is due for the period. Accrual began January 1, 2024 and ended March 31, 2024 inclusive.",
			want: []time.Time{d(2024, time.January, 1), d(2024, time.March, 31)},
		},
		{
			name: "single date yields one result",
			text: "Payment settles on 06/15/2024 only.",
			want: []time.Time{d(2024, time.June, 15)},
		},
		{
			name: "duplicate dates collapse",
			text: "Start Date: 01/01/2024 confirmed start 01/01/2024 again",
			want: []time.Time{d(2024, time.January, 1)},
		},
		{
			name: "no dates",
			text: "No dates appear anywhere in this text.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.ExtractPeriodDates(tt.text)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.True(t, got[i].Equal(tt.want[i]),
					"date %d: got %s, want %s", i, got[i], tt.want[i])
			}
		})
	}
}
