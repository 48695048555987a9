package constants

// Severity tags a validation finding. Errors block reconciliation by caller
// convention; warnings are advisory only.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// VerdictStatus is the reconciliation outcome.
type VerdictStatus string

// Stable values (rendered verbatim in reports).
const (
	VerdictPass VerdictStatus = "PASS"
	VerdictFail VerdictStatus = "FAIL"
)
