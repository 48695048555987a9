package extract

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var ratePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*%`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*percent`),
	regexp.MustCompile(`(?i)(?:rate|interest)\s*:?\s*(\d+\.?\d*)\s*%`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:per\s*cent|pct)`),
}

var (
	oneHundred = decimal.NewFromInt(100)
	rateMin    = decimal.NewFromFloat(0.001) // 0.1% annual
	rateMax    = decimal.NewFromFloat(0.5)   // 50% annual
)

// ParseRate locates the annual interest rate and converts percentage points
// to a decimal fraction (5.25% -> 0.0525). Unlike the principal parser it
// returns the first plausible match in document order: rates are rarely
// repeated with conflicting values, so the first mention wins.
func ParseRate(text string) *decimal.Decimal {
	if text == "" {
		return nil
	}

	for _, re := range ratePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			pct, err := decimal.NewFromString(m[1])
			if err != nil {
				continue
			}
			rate := pct.Div(oneHundred)
			if rate.GreaterThanOrEqual(rateMin) && rate.LessThanOrEqual(rateMax) {
				return &rate
			}
		}
	}
	return nil
}
