package calc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount for display, e.g. "$1,234,567.89".
// Negative amounts render as "-$…"; nil renders as "N/A".
func FormatCurrency(amount *decimal.Decimal) string {
	if amount == nil {
		return "N/A"
	}
	s := "$" + groupThousands(amount.Abs().StringFixed(2))
	if amount.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatPercentage renders a decimal-fraction rate for display,
// e.g. 0.0525 -> "5.2500%". nil renders as "N/A".
func FormatPercentage(rate *decimal.Decimal) string {
	if rate == nil {
		return "N/A"
	}
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(4) + "%"
}

// FormatDays renders a day count for display ("1 day", "90 days").
func FormatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// groupThousands inserts comma separators into the integer part of a fixed
// decimal string.
func groupThousands(s string) string {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	if hasFrac {
		return intPart + "." + fracPart
	}
	return intPart
}
