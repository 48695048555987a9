// Package calc implements Actual/360 interest computation, the standard
// day-count convention in commercial lending: actual calendar days elapsed
// over a 360-day year.
package calc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenderdesk/notice-validator/internal/common"
	"github.com/lenderdesk/notice-validator/internal/entity"
)

// FormulaActual360 is the formula string recorded on every calculation.
const FormulaActual360 = "Interest = Principal × Rate × Days / 360"

var (
	daysPerYear    = decimal.NewFromInt(360)
	oneBillion     = decimal.NewFromInt(1_000_000_000)
	toleranceFloor = decimal.NewFromInt(1)
	basisPoint     = decimal.NewFromFloat(0.0001)
	maxRate        = decimal.NewFromInt(1) // 100% annual
)

// maxPeriodDays bounds the interest period at 10 years.
const maxPeriodDays = 3650

// CalculateInterest computes interest under Actual/360, rounded to 2 decimal
// places half away from zero. Fails wrapping common.ErrInvalidInput when
// principal <= 0, rate < 0, or start >= end.
func CalculateInterest(principal, rate decimal.Decimal, start, end time.Time) (decimal.Decimal, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: principal amount must be positive", common.ErrInvalidInput)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: interest rate cannot be negative", common.ErrInvalidInput)
	}
	days, err := CalculateDays(start, end)
	if err != nil {
		return decimal.Zero, err
	}

	interest := principal.Mul(rate).Mul(decimal.NewFromInt(int64(days))).Div(daysPerYear)
	return interest.Round(2), nil
}

// CalculateDays counts the actual calendar days between two dates, unadjusted
// for month-end conventions. Fails wrapping common.ErrInvalidInput when
// start >= end.
func CalculateDays(start, end time.Time) (int, error) {
	if !start.Before(end) {
		return 0, fmt.Errorf("%w: start date must be before end date", common.ErrInvalidInput)
	}
	return int(end.Sub(start) / (24 * time.Hour)), nil
}

// CalculateInterestWithDetails wraps CalculateInterest with a full audit
// trail: restated inputs, the day count, the convention, the formula, and a
// 5-step narrated derivation suitable for direct display to a bank operator.
func CalculateInterestWithDetails(principal, rate decimal.Decimal, start, end time.Time) (*entity.CalculationResult, error) {
	interest, err := CalculateInterest(principal, rate, start, end)
	if err != nil {
		return nil, err
	}
	days, err := CalculateDays(start, end)
	if err != nil {
		return nil, err
	}

	ratePct := rate.Mul(decimal.NewFromInt(100))
	details := []entity.DetailLine{
		{Key: "principal", Value: FormatCurrency(&principal)},
		{Key: "annual_rate", Value: rate.String()},
		{Key: "annual_rate_percentage", Value: FormatPercentage(&rate)},
		{Key: "start_date", Value: start.Format("01/02/2006")},
		{Key: "end_date", Value: end.Format("01/02/2006")},
		{Key: "days", Value: FormatDays(days)},
		{Key: "day_count_convention", Value: "360-day"},
		{Key: "formula", Value: FormulaActual360},
		{Key: "step_1", Value: fmt.Sprintf("Principal = %s", FormatCurrency(&principal))},
		{Key: "step_2", Value: fmt.Sprintf("Annual Rate = %s%%", ratePct.StringFixed(4))},
		{Key: "step_3", Value: fmt.Sprintf("Days = %d", days)},
		{Key: "step_4", Value: fmt.Sprintf("Interest = %s × %s × %d / 360", FormatCurrency(&principal), rate.StringFixed(6), days)},
		{Key: "step_5", Value: fmt.Sprintf("Interest = %s", FormatCurrency(&interest))},
	}

	return &entity.CalculationResult{
		ExpectedInterest: interest,
		DaysCalculated:   days,
		FormulaUsed:      FormulaActual360,
		Details:          details,
	}, nil
}

// ValidateCalculationInputs pre-checks calculation inputs without raising,
// returning a field-to-message map the caller uses to short-circuit before
// invoking the fallible calculator. An empty map means the inputs are safe.
func ValidateCalculationInputs(principal, rate *decimal.Decimal, start, end *time.Time) map[string]string {
	errs := make(map[string]string)

	switch {
	case principal == nil:
		errs["principal"] = "Principal amount is required"
	case principal.LessThanOrEqual(decimal.Zero):
		errs["principal"] = "Principal amount must be positive"
	case principal.GreaterThan(oneBillion):
		errs["principal"] = "Principal amount seems unreasonably large"
	}

	switch {
	case rate == nil:
		errs["rate"] = "Interest rate is required"
	case rate.IsNegative():
		errs["rate"] = "Interest rate cannot be negative"
	case rate.GreaterThan(maxRate):
		errs["rate"] = "Interest rate seems unreasonably high (over 100%)"
	}

	if start == nil {
		errs["start_date"] = "Start date is required"
	}
	if end == nil {
		errs["end_date"] = "End date is required"
	}

	if start != nil && end != nil {
		if !start.Before(*end) {
			errs["date_range"] = "Start date must be before end date"
		} else if days := int(end.Sub(*start) / (24 * time.Hour)); days > maxPeriodDays {
			errs["date_range"] = "Date range seems unreasonably long (over 10 years)"
		}
	}

	return errs
}

// CalculateTolerance returns the acceptable absolute difference when
// comparing interest amounts: the larger of $1.00 or one basis point (0.01%)
// of the amount, the standard banking rounding tolerance.
func CalculateTolerance(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return toleranceFloor
	}
	return decimal.Max(toleranceFloor, amount.Mul(basisPoint))
}
