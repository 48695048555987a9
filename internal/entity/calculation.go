package entity

import "github.com/shopspring/decimal"

// DetailLine is one step of the calculation audit trail. Lines are ordered;
// the key identifies the step and the value is operator-readable text.
type DetailLine struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CalculationResult is the outcome of an Actual/360 interest computation,
// derived deterministically from principal, rate and period dates. Never
// mutated after creation.
type CalculationResult struct {
	ExpectedInterest decimal.Decimal `json:"expected_interest"`
	DaysCalculated   int             `json:"days_calculated"`
	FormulaUsed      string          `json:"formula_used"`
	Details          []DetailLine    `json:"details"`
}

// Detail returns the value for a step key, or "" when absent.
func (c *CalculationResult) Detail(key string) string {
	for _, d := range c.Details {
		if d.Key == key {
			return d.Value
		}
	}
	return ""
}
