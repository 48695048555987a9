package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Keyword-anchored principal patterns are tried first; anchoring on document
// vocabulary keeps unrelated dollar figures (fees, wire amounts, account
// numbers) from being mistaken for the principal.
var principalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)principal\s*(?:amount)?\s*:?\s*\$\s*([0-9,]+(?:\.[0-9]{2})?)`),
	regexp.MustCompile(`(?i)loan\s+amount\s*:?\s*\$\s*([0-9,]+(?:\.[0-9]{2})?)`),
	regexp.MustCompile(`(?i)outstanding\s+balance\s*:?\s*\$\s*([0-9,]+(?:\.[0-9]{2})?)`),
}

var genericDollarPattern = regexp.MustCompile(`\$\s*([0-9,]+(?:\.[0-9]{2})?)`)

var interestAmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)interest\s+(?:amount|payment|due)\s*:?\s*\$?\s*([0-9]{1,3}(?:,?[0-9]{3})*(?:\.[0-9]{2})?)`),
	regexp.MustCompile(`(?i)total\s+interest\s*:?\s*\$?\s*([0-9]{1,3}(?:,?[0-9]{3})*(?:\.[0-9]{2})?)`),
	regexp.MustCompile(`(?i)interest\s+calculated\s*:?\s*\$?\s*([0-9]{1,3}(?:,?[0-9]{3})*(?:\.[0-9]{2})?)`),
	regexp.MustCompile(`(?i)accrued\s+interest\s*:?\s*\$?\s*([0-9]{1,3}(?:,?[0-9]{3})*(?:\.[0-9]{2})?)`),
}

// Plausibility ranges. Anything outside is extraction noise, not data.
var (
	principalMin         = decimal.NewFromInt(1_000)
	principalAnchoredMax = decimal.NewFromInt(1_000_000_000)
	principalGenericMax  = decimal.NewFromInt(100_000_000)
	interestAmountMin    = decimal.NewFromInt(1)
	interestAmountMax    = decimal.NewFromInt(10_000_000)
)

// ParsePrincipal locates the loan principal in notice text. Keyword-anchored
// matches win outright; otherwise every $-prefixed figure in a plausible
// range is collected and the largest is returned, since the principal is
// typically the largest dollar figure in a notice.
func ParsePrincipal(text string) *decimal.Decimal {
	if text == "" {
		return nil
	}

	for _, re := range principalPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			amount, err := parseAmount(m[1])
			if err != nil {
				continue
			}
			if amount.GreaterThanOrEqual(principalMin) && amount.LessThanOrEqual(principalAnchoredMax) {
				return &amount
			}
		}
	}

	// Fallback: largest plausible $-figure anywhere in the document.
	var best *decimal.Decimal
	for _, m := range genericDollarPattern.FindAllStringSubmatch(text, -1) {
		amount, err := parseAmount(m[1])
		if err != nil {
			continue
		}
		if amount.LessThan(principalMin) || amount.GreaterThan(principalGenericMax) {
			continue
		}
		if best == nil || amount.GreaterThan(*best) {
			a := amount
			best = &a
		}
	}
	return best
}

// ParseInterestAmount locates the reported interest amount using
// interest-specific vocabulary. The first plausible match wins.
func ParseInterestAmount(text string) *decimal.Decimal {
	if text == "" {
		return nil
	}

	for _, re := range interestAmountPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			amount, err := parseAmount(m[1])
			if err != nil {
				continue
			}
			if amount.GreaterThanOrEqual(interestAmountMin) && amount.LessThanOrEqual(interestAmountMax) {
				return &amount
			}
		}
	}
	return nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
