package reconcile

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lenderdesk/notice-validator/internal/calc"
	"github.com/lenderdesk/notice-validator/internal/entity"
)

var (
	significantPct = decimal.NewFromInt(5)
	moderatePct    = decimal.NewFromInt(1)
)

// Summary renders the plain-text audit summary block for a verdict.
func Summary(v *entity.ReconciliationVerdict) string {
	var b strings.Builder

	if v.Passed() {
		b.WriteString("VALIDATION PASSED\n")
		b.WriteString("The interest notice calculation is correct.\n")
	} else {
		b.WriteString("VALIDATION FAILED\n")
		b.WriteString("The interest notice calculation contains an error.\n")
	}

	b.WriteString("\nAMOUNT COMPARISON:\n")
	fmt.Fprintf(&b, "Expected (Calculated): %s\n", calc.FormatCurrency(&v.ExpectedAmount))
	fmt.Fprintf(&b, "Notice (Document):     %s\n", calc.FormatCurrency(&v.NoticeAmount))
	fmt.Fprintf(&b, "Difference:            %s\n", calc.FormatCurrency(&v.DifferenceAmount))
	fmt.Fprintf(&b, "Percentage Diff:       %s%%\n", v.PercentageDifference.StringFixed(2))
	fmt.Fprintf(&b, "Tolerance Used:        %s\n", calc.FormatCurrency(&v.ToleranceUsed))

	b.WriteString("\nEXPLANATION:\n")
	b.WriteString(v.DetailedExplanation)
	return b.String()
}

// Recommendations generates actionable guidance from a verdict. A PASS gets
// archival guidance; a FAIL gets review guidance escalated by the size of the
// percentage difference plus a directional hint.
func Recommendations(v *entity.ReconciliationVerdict) []string {
	if v.Passed() {
		return []string{
			"The notice is ready to be sent to lenders",
			"No further action required for this interest calculation",
			"Consider archiving this validation result for audit purposes",
		}
	}

	recs := []string{
		"Review the interest calculation in the notice before sending",
		"Verify that the principal amount, interest rate, and dates are correct",
		"Check for any special terms or adjustments that might affect the calculation",
		"Consider recalculating the interest using the extracted data",
	}

	if v.PercentageDifference.GreaterThan(significantPct) {
		recs = append(recs, "The difference is significant (>5%) - double-check all input values")
	} else if v.PercentageDifference.GreaterThan(moderatePct) {
		recs = append(recs, "The difference is moderate (>1%) - review calculation methodology")
	}

	if v.NoticeAmount.GreaterThan(v.ExpectedAmount) {
		recs = append(recs, "The notice amount is higher than expected - check for additional fees or adjustments")
	} else {
		recs = append(recs, "The notice amount is lower than expected - check for missing interest components")
	}
	return recs
}
