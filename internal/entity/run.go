package entity

import (
	"time"

	"github.com/google/uuid"
)

// ValidationRun is the full output of one extraction-to-verdict pipeline
// invocation. Calculation and Verdict are nil when an earlier stage stopped
// the pipeline (completeness errors, failed pre-check, missing data).
type ValidationRun struct {
	ID              uuid.UUID              `json:"id"`
	SourceName      string                 `json:"source_name,omitempty"`
	Record          *ExtractedRecord       `json:"record"`
	Completeness    *ValidationResult      `json:"completeness"`
	PrecheckErrors  map[string]string      `json:"precheck_errors,omitempty"`
	Calculation     *CalculationResult     `json:"calculation,omitempty"`
	Verdict         *ReconciliationVerdict `json:"verdict,omitempty"`
	Recommendations []string               `json:"recommendations,omitempty"`
	StartedAt       time.Time              `json:"started_at"`
	FinishedAt      time.Time              `json:"finished_at"`
}

// Completed reports whether the run reached a reconciliation verdict.
func (r *ValidationRun) Completed() bool {
	return r.Verdict != nil
}
