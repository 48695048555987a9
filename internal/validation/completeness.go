// Package validation checks an extracted record for completeness and
// plausibility before any calculation is attempted, so malformed data is
// rejected or flagged instead of silently mis-pricing the calculator.
package validation

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenderdesk/notice-validator/constants"
	"github.com/lenderdesk/notice-validator/internal/calc"
	"github.com/lenderdesk/notice-validator/internal/entity"
)

var (
	oneThousand       = decimal.NewFromInt(1_000)
	oneBillion        = decimal.NewFromInt(1_000_000_000)
	oneHundredBillion = decimal.NewFromInt(100_000_000_000)
	rateFloorWarn     = decimal.NewFromFloat(0.0001) // 0.01%
	rateHighWarn      = decimal.NewFromFloat(0.25)   // 25%
	rateMaxErr        = decimal.NewFromInt(1)        // 100%
	oneDollar         = decimal.NewFromInt(1)
	ratioMax          = decimal.NewFromInt(1)
	ratioHighWarn     = decimal.NewFromFloat(0.5)
)

// Date sanity window and period bounds, in years and days respectively.
const (
	maxYearsPast   = 50
	maxYearsFuture = 10
	longPeriodDays = 730
	maxPeriodDays  = 3650
	lowConfidence  = 0.5
)

// Validator runs the multi-rule completeness pass. now is injectable so the
// date window is deterministic in tests.
type Validator struct {
	Log *slog.Logger
	now func() time.Time
}

func NewValidator(log *slog.Logger) *Validator {
	if log == nil {
		log = slog.Default()
	}
	return &Validator{Log: log, now: time.Now}
}

// ValidateRecord runs every rule over the record and partitions the findings
// by severity. IsValid is true exactly when no error-severity finding was
// produced; warnings never block proceeding.
func (v *Validator) ValidateRecord(rec *entity.ExtractedRecord) *entity.ValidationResult {
	var findings []entity.Finding

	findings = append(findings, v.checkCompleteness(rec)...)
	if rec != nil {
		findings = append(findings, v.checkPrincipal(rec.PrincipalAmount)...)
		findings = append(findings, v.checkRate(rec.InterestRate)...)
		findings = append(findings, v.checkDate(rec.StartDate, constants.FieldStartDate, "Start date")...)
		findings = append(findings, v.checkDate(rec.EndDate, constants.FieldEndDate, "End date")...)
		findings = append(findings, v.checkDateRange(rec.StartDate, rec.EndDate)...)
		findings = append(findings, v.checkInterestAmount(rec.NoticeInterestAmount, rec.PrincipalAmount)...)
	}

	result := &entity.ValidationResult{
		Errors:   make([]entity.Finding, 0, len(findings)),
		Warnings: make([]entity.Finding, 0, len(findings)),
	}
	for _, f := range findings {
		if f.Severity == constants.SeverityError {
			result.Errors = append(result.Errors, f)
		} else {
			result.Warnings = append(result.Warnings, f)
		}
	}
	result.IsValid = len(result.Errors) == 0

	if rec != nil {
		result.Validated = entity.ValidatedFields{
			PrincipalAmount:      rec.PrincipalAmount,
			InterestRate:         rec.InterestRate,
			StartDate:            rec.StartDate,
			EndDate:              rec.EndDate,
			NoticeInterestAmount: rec.NoticeInterestAmount,
		}
	}

	v.Log.Info("validation.completeness",
		"is_valid", result.IsValid,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
	)
	return result
}

func (v *Validator) checkPrincipal(amount *decimal.Decimal) []entity.Finding {
	if amount == nil {
		return []entity.Finding{{
			Field:      constants.FieldPrincipal,
			Message:    "Principal amount is required",
			Severity:   constants.SeverityError,
			Suggestion: "Ensure the document contains a clearly marked dollar amount (e.g. $1,234,567.89)",
		}}
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return []entity.Finding{{
			Field:      constants.FieldPrincipal,
			Message:    "Principal amount must be positive",
			Severity:   constants.SeverityError,
			Suggestion: fmt.Sprintf("Found amount: %s - check if this is correct", calc.FormatCurrency(amount)),
		}}
	}

	var fs []entity.Finding
	if amount.LessThan(oneThousand) {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldPrincipal,
			Message:    fmt.Sprintf("Principal amount seems very small (%s)", calc.FormatCurrency(amount)),
			Severity:   constants.SeverityWarning,
			Suggestion: "Verify if this is the correct principal amount or if extraction missed a larger amount",
		})
	}
	if amount.GreaterThan(oneBillion) {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldPrincipal,
			Message:    fmt.Sprintf("Principal amount seems very large (%s)", calc.FormatCurrency(amount)),
			Severity:   constants.SeverityWarning,
			Suggestion: "Verify if this is the correct principal amount",
		})
	}
	if amount.GreaterThan(oneHundredBillion) {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldPrincipal,
			Message:    fmt.Sprintf("Principal amount is unreasonably large (%s)", calc.FormatCurrency(amount)),
			Severity:   constants.SeverityError,
			Suggestion: "Check if the decimal point is in the correct position",
		})
	}
	return fs
}

func (v *Validator) checkRate(rate *decimal.Decimal) []entity.Finding {
	if rate == nil {
		return []entity.Finding{{
			Field:      constants.FieldRate,
			Message:    "Interest rate is required",
			Severity:   constants.SeverityError,
			Suggestion: "Ensure the document contains a clearly marked percentage (e.g. 5.25%)",
		}}
	}
	if rate.IsNegative() {
		return []entity.Finding{{
			Field:      constants.FieldRate,
			Message:    "Interest rate cannot be negative",
			Severity:   constants.SeverityError,
			Suggestion: fmt.Sprintf("Found rate: %s - check if this is correct", calc.FormatPercentage(rate)),
		}}
	}

	var fs []entity.Finding
	if rate.LessThan(rateFloorWarn) {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldRate,
			Message:    fmt.Sprintf("Interest rate seems very low (%s)", calc.FormatPercentage(rate)),
			Severity:   constants.SeverityWarning,
			Suggestion: "Verify if this is the correct rate or if extraction missed a decimal point",
		})
	}
	if rate.GreaterThan(rateHighWarn) {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldRate,
			Message:    fmt.Sprintf("Interest rate seems high (%s)", calc.FormatPercentage(rate)),
			Severity:   constants.SeverityWarning,
			Suggestion: "Verify if this is the correct annual rate",
		})
	}
	if rate.GreaterThan(rateMaxErr) {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldRate,
			Message:    fmt.Sprintf("Interest rate is unreasonably high (%s)", calc.FormatPercentage(rate)),
			Severity:   constants.SeverityError,
			Suggestion: "Check if the percentage was extracted as a decimal (e.g. 5.25 instead of 0.0525)",
		})
	}
	return fs
}

func (v *Validator) checkDate(d *time.Time, field constants.Field, displayName string) []entity.Finding {
	if d == nil {
		return []entity.Finding{{
			Field:      field,
			Message:    fmt.Sprintf("%s is required", displayName),
			Severity:   constants.SeverityError,
			Suggestion: "Ensure the document contains a clearly marked date in MM/DD/YYYY format",
		}}
	}

	var fs []entity.Finding
	currentYear := v.now().Year()
	minYear := currentYear - maxYearsPast
	maxYear := currentYear + maxYearsFuture

	if d.Year() < minYear {
		fs = append(fs, entity.Finding{
			Field:      field,
			Message:    fmt.Sprintf("%s is too far in the past (%d)", displayName, d.Year()),
			Severity:   constants.SeverityError,
			Suggestion: fmt.Sprintf("Date should be between %d and %d", minYear, maxYear),
		})
	}
	if d.Year() > maxYear {
		fs = append(fs, entity.Finding{
			Field:      field,
			Message:    fmt.Sprintf("%s is too far in the future (%d)", displayName, d.Year()),
			Severity:   constants.SeverityError,
			Suggestion: fmt.Sprintf("Date should be between %d and %d", minYear, maxYear),
		})
	}

	// Some banks do use weekend dates, so this is advisory only.
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		fs = append(fs, entity.Finding{
			Field:      field,
			Message:    fmt.Sprintf("%s falls on a %s", displayName, wd),
			Severity:   constants.SeverityWarning,
			Suggestion: "Verify if weekend dates are intended for this calculation",
		})
	}
	return fs
}

func (v *Validator) checkDateRange(start, end *time.Time) []entity.Finding {
	if start == nil || end == nil {
		return nil // individual date checks report the absence
	}
	if !start.Before(*end) {
		return []entity.Finding{{
			Field:      constants.FieldDateRange,
			Message:    "Start date must be before end date",
			Severity:   constants.SeverityError,
			Suggestion: fmt.Sprintf("Start: %s, End: %s", start.Format("01/02/2006"), end.Format("01/02/2006")),
		}}
	}

	var fs []entity.Finding
	days := int(end.Sub(*start) / (24 * time.Hour))
	if days < 1 {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldDateRange,
			Message:    "Interest period is less than 1 day",
			Severity:   constants.SeverityWarning,
			Suggestion: "Verify if same-day or overnight interest calculation is intended",
		})
	}
	if days > longPeriodDays {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldDateRange,
			Message:    fmt.Sprintf("Interest period is very long (%d days)", days),
			Severity:   constants.SeverityWarning,
			Suggestion: "Verify if a multi-year interest calculation is intended",
		})
	}
	if days > maxPeriodDays {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldDateRange,
			Message:    fmt.Sprintf("Interest period is unreasonably long (%d days)", days),
			Severity:   constants.SeverityError,
			Suggestion: "Check if the dates are correct - the period exceeds 10 years",
		})
	}
	return fs
}

func (v *Validator) checkInterestAmount(amount, principal *decimal.Decimal) []entity.Finding {
	if amount == nil {
		return []entity.Finding{{
			Field:      constants.FieldNoticeAmount,
			Message:    "Interest amount is required",
			Severity:   constants.SeverityError,
			Suggestion: "Ensure the document contains a clearly marked interest amount",
		}}
	}
	if amount.IsNegative() {
		return []entity.Finding{{
			Field:      constants.FieldNoticeAmount,
			Message:    "Interest amount cannot be negative",
			Severity:   constants.SeverityError,
			Suggestion: fmt.Sprintf("Found amount: %s - check if this is correct", calc.FormatCurrency(amount)),
		}}
	}

	var fs []entity.Finding
	if amount.LessThan(oneDollar) {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldNoticeAmount,
			Message:    fmt.Sprintf("Interest amount seems very small (%s)", calc.FormatCurrency(amount)),
			Severity:   constants.SeverityWarning,
			Suggestion: "Verify if this is the correct interest amount",
		})
	}

	if principal != nil && principal.GreaterThan(decimal.Zero) {
		ratio := amount.Div(*principal)
		if ratio.GreaterThan(ratioMax) {
			fs = append(fs, entity.Finding{
				Field:      constants.FieldNoticeAmount,
				Message:    fmt.Sprintf("Interest amount (%s) exceeds principal (%s)", calc.FormatCurrency(amount), calc.FormatCurrency(principal)),
				Severity:   constants.SeverityError,
				Suggestion: "Check if the interest amount and principal are correctly identified",
			})
		} else if ratio.GreaterThan(ratioHighWarn) {
			fs = append(fs, entity.Finding{
				Field:      constants.FieldNoticeAmount,
				Message:    fmt.Sprintf("Interest amount is very high (%s%% of principal)", ratio.Mul(decimal.NewFromInt(100)).StringFixed(1)),
				Severity:   constants.SeverityWarning,
				Suggestion: "Verify if this represents a long-term or high-rate calculation",
			})
		}
	}
	return fs
}

// checkCompleteness produces one aggregated error listing every missing
// required field, and one aggregated warning for low-confidence extractions.
func (v *Validator) checkCompleteness(rec *entity.ExtractedRecord) []entity.Finding {
	if rec == nil {
		return []entity.Finding{{
			Field:      constants.FieldCompleteness,
			Message:    "No data was extracted from the document",
			Severity:   constants.SeverityError,
			Suggestion: "Ensure the document contains readable financial information",
		}}
	}

	var fs []entity.Finding
	var missing []string
	for _, rf := range constants.RequiredFields {
		if fieldAbsent(rec, rf.Field) {
			missing = append(missing, rf.DisplayName)
		}
	}
	if len(missing) > 0 {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldCompleteness,
			Message:    fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
			Severity:   constants.SeverityError,
			Suggestion: "Ensure the document contains all required financial information clearly marked",
		})
	}

	var lowConf []string
	for _, key := range []string{
		constants.ConfidencePrincipal,
		constants.ConfidenceRate,
		constants.ConfidenceDates,
		constants.ConfidenceInterestAmount,
	} {
		if score, ok := rec.Confidence[key]; ok && score < lowConfidence {
			lowConf = append(lowConf, fmt.Sprintf("%s (%.0f%%)", titleize(key), score*100))
		}
	}
	if len(lowConf) > 0 {
		fs = append(fs, entity.Finding{
			Field:      constants.FieldConfidence,
			Message:    fmt.Sprintf("Low extraction confidence for: %s", strings.Join(lowConf, ", ")),
			Severity:   constants.SeverityWarning,
			Suggestion: "Review the extracted values for accuracy",
		})
	}
	return fs
}

func fieldAbsent(rec *entity.ExtractedRecord, field constants.Field) bool {
	switch field {
	case constants.FieldPrincipal:
		return rec.PrincipalAmount == nil
	case constants.FieldRate:
		return rec.InterestRate == nil
	case constants.FieldStartDate:
		return rec.StartDate == nil
	case constants.FieldEndDate:
		return rec.EndDate == nil
	case constants.FieldNoticeAmount:
		return rec.NoticeInterestAmount == nil
	default:
		return false
	}
}

func titleize(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
