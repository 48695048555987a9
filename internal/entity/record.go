package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExtractedRecord holds the financial fields parsed from one notice document.
// Every field is optional; a nil pointer means the parser found nothing, never
// a known zero. Records are created fresh per document and not mutated after
// extraction completes.
type ExtractedRecord struct {
	PrincipalAmount      *decimal.Decimal `json:"principal_amount,omitempty"`
	InterestRate         *decimal.Decimal `json:"interest_rate,omitempty"`
	StartDate            *time.Time       `json:"start_date,omitempty"`
	EndDate              *time.Time       `json:"end_date,omitempty"`
	NoticeInterestAmount *decimal.Decimal `json:"notice_interest_amount,omitempty"`

	// Confidence scores in [0,1] keyed by constants.Confidence* names,
	// populated only for fields that were extracted.
	Confidence map[string]float64 `json:"confidence"`
}

// HasDates reports whether both period dates were extracted.
func (r *ExtractedRecord) HasDates() bool {
	return r.StartDate != nil && r.EndDate != nil
}
