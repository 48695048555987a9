// Package reconcile compares independently calculated interest against the
// amount reported in a notice and produces a structured pass/fail verdict
// with auditable tolerance reasoning.
package reconcile

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/lenderdesk/notice-validator/constants"
	"github.com/lenderdesk/notice-validator/internal/calc"
	"github.com/lenderdesk/notice-validator/internal/common"
	"github.com/lenderdesk/notice-validator/internal/entity"
	"github.com/lenderdesk/notice-validator/internal/validation"
)

var oneHundred = decimal.NewFromInt(100)

// Reconciler is the final comparison stage of the pipeline.
type Reconciler struct {
	Log       *slog.Logger
	Validator *validation.Validator
}

func NewReconciler(log *slog.Logger, v *validation.Validator) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	if v == nil {
		v = validation.NewValidator(log)
	}
	return &Reconciler{Log: log, Validator: v}
}

// Reconcile compares the calculated interest against the notice amount under
// the max($1.00, 1bp) tolerance rule. Fails wrapping common.ErrMissingData
// when the calculation result or the notice amount is absent — this is the
// final "can we even compare?" gate.
func (r *Reconciler) Reconcile(rec *entity.ExtractedRecord, result *entity.CalculationResult) (*entity.ReconciliationVerdict, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: calculation result is required for reconciliation", common.ErrMissingData)
	}
	if rec == nil || rec.NoticeInterestAmount == nil {
		return nil, fmt.Errorf("%w: notice interest amount is required for reconciliation", common.ErrMissingData)
	}

	expected := result.ExpectedInterest
	notice := *rec.NoticeInterestAmount

	difference := expected.Sub(notice).Abs()
	percentageDiff := decimal.Zero
	if expected.GreaterThan(decimal.Zero) {
		percentageDiff = difference.Div(expected).Mul(oneHundred)
	}
	tolerance := calc.CalculateTolerance(expected)

	verdict := &entity.ReconciliationVerdict{
		ExpectedAmount:       expected,
		NoticeAmount:         notice,
		DifferenceAmount:     difference,
		PercentageDifference: percentageDiff,
		ToleranceUsed:        tolerance,
	}

	if difference.LessThanOrEqual(tolerance) {
		verdict.Status = constants.VerdictPass
		verdict.Message = "Notice is Correct"
		verdict.DetailedExplanation = fmt.Sprintf(
			"The interest calculation in the notice matches our expected calculation within acceptable tolerance. "+
				"The difference of $%s is within the acceptable tolerance of $%s.",
			difference.StringFixed(2), tolerance.StringFixed(2),
		)
	} else {
		verdict.Status = constants.VerdictFail
		verdict.Message = "Issue Detected"
		direction := "less"
		if notice.GreaterThan(expected) {
			direction = "more"
		}
		verdict.DetailedExplanation = fmt.Sprintf(
			"The notice shows $%s %s than expected. This difference of $%s exceeds the acceptable tolerance of $%s. "+
				"Please review the interest calculation in the notice.",
			difference.StringFixed(2), direction, difference.StringFixed(2), tolerance.StringFixed(2),
		)
	}

	r.Log.Info("reconcile.verdict",
		"status", string(verdict.Status),
		"expected", expected.StringFixed(2),
		"notice", notice.StringFixed(2),
		"difference", difference.StringFixed(2),
		"tolerance", tolerance.StringFixed(2),
	)
	return verdict, nil
}

// CanPerformValidation pre-flights a reconciliation without raising: it
// aggregates completeness errors plus calculation-availability issues so a
// presentation layer can short-circuit before calling Reconcile.
func (r *Reconciler) CanPerformValidation(rec *entity.ExtractedRecord, result *entity.CalculationResult) (bool, []string) {
	var issues []string

	completeness := r.Validator.ValidateRecord(rec)
	for _, f := range completeness.Errors {
		issues = append(issues, fmt.Sprintf("Data extraction issue: %s", f.Message))
	}

	switch {
	case result == nil:
		issues = append(issues, "Interest calculation not available")
	case result.ExpectedInterest.IsNegative():
		issues = append(issues, "Calculated interest amount is invalid")
	}

	return len(issues) == 0, issues
}
