package api

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lenderdesk/notice-validator/internal/entity"
)

// Wire payloads keep money as decimal strings and dates as YYYY-MM-DD, so
// clients never round-trip floats.

type extractRequest struct {
	Pages []string `json:"pages"`
	Text  string   `json:"text,omitempty"`
}

type calculateRequest struct {
	Principal string `json:"principal"`
	Rate      string `json:"rate"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type recordPayload struct {
	PrincipalAmount      *string            `json:"principal_amount,omitempty"`
	InterestRate         *string            `json:"interest_rate,omitempty"`
	StartDate            *string            `json:"start_date,omitempty"`
	EndDate              *string            `json:"end_date,omitempty"`
	NoticeInterestAmount *string            `json:"notice_interest_amount,omitempty"`
	Confidence           map[string]float64 `json:"confidence,omitempty"`
}

type calculationPayload struct {
	ExpectedInterest string              `json:"expected_interest"`
	DaysCalculated   int                 `json:"days_calculated,omitempty"`
	FormulaUsed      string              `json:"formula_used,omitempty"`
	Details          []entity.DetailLine `json:"details,omitempty"`
}

type reconcileRequest struct {
	Record      recordPayload      `json:"record"`
	Calculation calculationPayload `json:"calculation"`
}

type reconcileResponse struct {
	Verdict         *entity.ReconciliationVerdict `json:"verdict"`
	Recommendations []string                      `json:"recommendations"`
	Summary         string                        `json:"summary"`
}

func (p *recordPayload) toEntity() (*entity.ExtractedRecord, error) {
	rec := &entity.ExtractedRecord{Confidence: p.Confidence}
	if rec.Confidence == nil {
		rec.Confidence = map[string]float64{}
	}

	var err error
	if rec.PrincipalAmount, err = parseDecimalPtr(p.PrincipalAmount, "principal_amount"); err != nil {
		return nil, err
	}
	if rec.InterestRate, err = parseDecimalPtr(p.InterestRate, "interest_rate"); err != nil {
		return nil, err
	}
	if rec.NoticeInterestAmount, err = parseDecimalPtr(p.NoticeInterestAmount, "notice_interest_amount"); err != nil {
		return nil, err
	}
	if rec.StartDate, err = parseDatePtr(p.StartDate, "start_date"); err != nil {
		return nil, err
	}
	if rec.EndDate, err = parseDatePtr(p.EndDate, "end_date"); err != nil {
		return nil, err
	}
	return rec, nil
}

func parseDecimalPtr(s *string, field string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &d, nil
}

func parseDatePtr(s *string, field string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseYMD(*s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &t, nil
}

func parseYMD(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
