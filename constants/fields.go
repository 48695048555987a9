package constants

// Field is the canonical name for an extracted notice field. These exact
// strings key the confidence map and the pre-check error map.
type Field string

const (
	FieldPrincipal    Field = "principal_amount"
	FieldRate         Field = "interest_rate"
	FieldStartDate    Field = "start_date"
	FieldEndDate      Field = "end_date"
	FieldNoticeAmount Field = "notice_interest_amount"
	FieldDateRange    Field = "date_range"
	FieldCompleteness Field = "completeness"
	FieldConfidence   Field = "confidence"
)

// Confidence map keys. Dates share one key because the pair is extracted as
// a unit.
const (
	ConfidencePrincipal      = "principal"
	ConfidenceRate           = "rate"
	ConfidenceDates          = "dates"
	ConfidenceInterestAmount = "interest_amount"
)

// Fixed extraction confidence scores. Heuristic, not calibrated.
const (
	ScoreAmountField = 0.8
	ScoreDatePair    = 0.7
)

// RequiredFields maps each required field to its display name, in report
// order. Missing-field aggregation uses the display names.
var RequiredFields = []struct {
	Field       Field
	DisplayName string
}{
	{FieldPrincipal, "Principal amount"},
	{FieldRate, "Interest rate"},
	{FieldStartDate, "Start date"},
	{FieldEndDate, "End date"},
	{FieldNoticeAmount, "Interest amount"},
}
