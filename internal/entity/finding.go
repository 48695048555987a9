package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenderdesk/notice-validator/constants"
)

// Finding is a single severity-tagged validation observation. Findings have
// no identity beyond their content.
type Finding struct {
	Field      constants.Field    `json:"field"`
	Message    string             `json:"message"`
	Severity   constants.Severity `json:"severity"`
	Suggestion string             `json:"suggestion,omitempty"`
}

// ValidatedFields echoes the field values a completeness pass looked at.
type ValidatedFields struct {
	PrincipalAmount      *decimal.Decimal `json:"principal_amount,omitempty"`
	InterestRate         *decimal.Decimal `json:"interest_rate,omitempty"`
	StartDate            *time.Time       `json:"start_date,omitempty"`
	EndDate              *time.Time       `json:"end_date,omitempty"`
	NoticeInterestAmount *decimal.Decimal `json:"notice_interest_amount,omitempty"`
}

// ValidationResult is the outcome of a completeness pass over an extracted
// record. Warnings never affect IsValid.
type ValidationResult struct {
	IsValid   bool            `json:"is_valid"`
	Errors    []Finding       `json:"errors"`
	Warnings  []Finding       `json:"warnings"`
	Validated ValidatedFields `json:"validated"`
}
