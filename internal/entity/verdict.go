package entity

import (
	"github.com/shopspring/decimal"

	"github.com/lenderdesk/notice-validator/constants"
)

// ReconciliationVerdict compares the independently calculated interest
// against the amount reported in the notice.
//
// Invariants: DifferenceAmount >= 0, ToleranceUsed >= 1.00, and
// Status == PASS exactly when DifferenceAmount <= ToleranceUsed.
type ReconciliationVerdict struct {
	Status               constants.VerdictStatus `json:"status"`
	ExpectedAmount       decimal.Decimal         `json:"expected_amount"`
	NoticeAmount         decimal.Decimal         `json:"notice_amount"`
	DifferenceAmount     decimal.Decimal         `json:"difference_amount"`
	PercentageDifference decimal.Decimal         `json:"percentage_difference"`
	ToleranceUsed        decimal.Decimal         `json:"tolerance_used"`
	Message              string                  `json:"message"`
	DetailedExplanation  string                  `json:"detailed_explanation"`
}

// Passed reports whether the notice amount reconciled within tolerance.
func (v *ReconciliationVerdict) Passed() bool {
	return v.Status == constants.VerdictPass
}
