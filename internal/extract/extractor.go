package extract

import (
	"log/slog"
	"strings"

	"github.com/lenderdesk/notice-validator/constants"
	"github.com/lenderdesk/notice-validator/internal/common"
	"github.com/lenderdesk/notice-validator/internal/entity"
)

// Extractor runs each field parser over the full document text and assembles
// a typed record with per-field confidence scores. Every field is optional;
// the only fatal condition is a document with no text at all.
type Extractor struct {
	Log *slog.Logger
}

func NewExtractor(log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{Log: log}
}

// ExtractPages concatenates per-page text with newline separation and
// extracts from the combined document.
func (e *Extractor) ExtractPages(pages []string) (*entity.ExtractedRecord, error) {
	return e.Extract(strings.Join(pages, "\n"))
}

// Extract parses the financial fields out of raw notice text. Fails with
// common.ErrNoTextExtracted when the text is empty or whitespace-only;
// individual missing fields never error — downstream validation classifies
// them.
func (e *Extractor) Extract(text string) (*entity.ExtractedRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrNoTextExtracted
	}

	rec := &entity.ExtractedRecord{
		Confidence: make(map[string]float64, 4),
	}

	if principal := ParsePrincipal(text); principal != nil {
		rec.PrincipalAmount = principal
		rec.Confidence[constants.ConfidencePrincipal] = constants.ScoreAmountField
	}

	if rate := ParseRate(text); rate != nil {
		rec.InterestRate = rate
		rec.Confidence[constants.ConfidenceRate] = constants.ScoreAmountField
	}

	if dates := ExtractPeriodDates(text); len(dates) >= 2 {
		start, end := dates[0], dates[1]
		rec.StartDate = &start
		rec.EndDate = &end
		rec.Confidence[constants.ConfidenceDates] = constants.ScoreDatePair
	}

	if amount := ParseInterestAmount(text); amount != nil {
		rec.NoticeInterestAmount = amount
		rec.Confidence[constants.ConfidenceInterestAmount] = constants.ScoreAmountField
	}

	e.Log.Info("extract.ok",
		"text_bytes", len(text),
		"fields_found", len(rec.Confidence),
		"has_principal", rec.PrincipalAmount != nil,
		"has_rate", rec.InterestRate != nil,
		"has_dates", rec.HasDates(),
		"has_interest_amount", rec.NoticeInterestAmount != nil,
	)
	return rec, nil
}
