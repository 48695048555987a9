// Package export renders a validation run as an XLSX workbook for audit
// distribution.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lenderdesk/notice-validator/internal/calc"
	"github.com/lenderdesk/notice-validator/internal/entity"
)

// Service produces XLSX bytes for validation runs.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildWorkbook returns an XLSX workbook (as bytes) with Summary,
// Extraction, Findings and Calculation sheets for one run.
func (s *Service) BuildWorkbook(run *entity.ValidationRun) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := s.writeSummary(f, run); err != nil {
		return nil, err
	}
	if err := s.writeExtraction(f, run); err != nil {
		return nil, err
	}
	if err := s.writeFindings(f, run); err != nil {
		return nil, err
	}
	if err := s.writeCalculation(f, run); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"run_id", run.ID.String(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeSummary(f *excelize.File, run *entity.ValidationRun) error {
	const sheet = "Summary"
	if err := ensureSheet(f, sheet); err != nil {
		return err
	}

	rows := [][2]string{
		{"Run ID", run.ID.String()},
		{"Source", run.SourceName},
		{"Started", run.StartedAt.Format(time.RFC3339)},
	}
	if run.Verdict != nil {
		v := run.Verdict
		rows = append(rows,
			[2]string{"Status", string(v.Status)},
			[2]string{"Expected (Calculated)", calc.FormatCurrency(&v.ExpectedAmount)},
			[2]string{"Notice (Document)", calc.FormatCurrency(&v.NoticeAmount)},
			[2]string{"Difference", calc.FormatCurrency(&v.DifferenceAmount)},
			[2]string{"Percentage Diff", v.PercentageDifference.StringFixed(2) + "%"},
			[2]string{"Tolerance Used", calc.FormatCurrency(&v.ToleranceUsed)},
			[2]string{"Explanation", v.DetailedExplanation},
		)
	} else {
		rows = append(rows, [2]string{"Status", "INCOMPLETE"})
	}
	for i, rec := range run.Recommendations {
		rows = append(rows, [2]string{fmt.Sprintf("Recommendation %d", i+1), rec})
	}

	for i, kv := range rows {
		write(f, sheet, 1, i+1, kv[0])
		write(f, sheet, 2, i+1, kv[1])
	}
	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 90)
	return nil
}

func (s *Service) writeExtraction(f *excelize.File, run *entity.ValidationRun) error {
	const sheet = "Extraction"
	if err := ensureSheet(f, sheet); err != nil {
		return err
	}

	headers := []string{"Field", "Value", "Confidence"}
	for i, h := range headers {
		write(f, sheet, i+1, 1, h)
	}

	rec := run.Record
	if rec == nil {
		return nil
	}
	dateOrNA := func(t *time.Time) string {
		if t == nil {
			return "N/A"
		}
		return t.Format("01/02/2006")
	}
	confOrBlank := func(key string) string {
		if score, ok := rec.Confidence[key]; ok {
			return fmt.Sprintf("%.0f%%", score*100)
		}
		return ""
	}

	rows := [][3]string{
		{"Principal amount", calc.FormatCurrency(rec.PrincipalAmount), confOrBlank("principal")},
		{"Interest rate", calc.FormatPercentage(rec.InterestRate), confOrBlank("rate")},
		{"Start date", dateOrNA(rec.StartDate), confOrBlank("dates")},
		{"End date", dateOrNA(rec.EndDate), confOrBlank("dates")},
		{"Interest amount", calc.FormatCurrency(rec.NoticeInterestAmount), confOrBlank("interest_amount")},
	}
	for i, r := range rows {
		for j, v := range r {
			write(f, sheet, j+1, i+2, v)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 20)
	return nil
}

func (s *Service) writeFindings(f *excelize.File, run *entity.ValidationRun) error {
	const sheet = "Findings"
	if err := ensureSheet(f, sheet); err != nil {
		return err
	}

	headers := []string{"Severity", "Field", "Message", "Suggestion"}
	for i, h := range headers {
		write(f, sheet, i+1, 1, h)
	}

	row := 2
	writeFinding := func(fd entity.Finding) {
		write(f, sheet, 1, row, string(fd.Severity))
		write(f, sheet, 2, row, string(fd.Field))
		write(f, sheet, 3, row, fd.Message)
		write(f, sheet, 4, row, fd.Suggestion)
		row++
	}
	if run.Completeness != nil {
		for _, fd := range run.Completeness.Errors {
			writeFinding(fd)
		}
		for _, fd := range run.Completeness.Warnings {
			writeFinding(fd)
		}
	}
	for field, msg := range run.PrecheckErrors {
		write(f, sheet, 1, row, "error")
		write(f, sheet, 2, row, field)
		write(f, sheet, 3, row, msg)
		row++
	}
	_ = f.SetColWidth(sheet, "C", "C", 60)
	_ = f.SetColWidth(sheet, "D", "D", 70)
	return nil
}

func (s *Service) writeCalculation(f *excelize.File, run *entity.ValidationRun) error {
	const sheet = "Calculation"
	if err := ensureSheet(f, sheet); err != nil {
		return err
	}

	headers := []string{"Step", "Detail"}
	for i, h := range headers {
		write(f, sheet, i+1, 1, h)
	}
	if run.Calculation == nil {
		return nil
	}
	for i, d := range run.Calculation.Details {
		write(f, sheet, 1, i+2, d.Key)
		write(f, sheet, 2, i+2, d.Value)
	}
	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 70)
	return nil
}

func ensureSheet(f *excelize.File, sheet string) error {
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	// First sheet replaces the default one.
	if sheet == "Summary" {
		idx, _ := f.GetSheetIndex(sheet)
		f.SetActiveSheet(idx)
		if def, _ := f.GetSheetIndex("Sheet1"); def != -1 && sheet != "Sheet1" {
			_ = f.DeleteSheet("Sheet1")
		}
	}
	return nil
}

func write(f *excelize.File, sheet string, col, row int, v any) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	_ = f.SetCellValue(sheet, cell, v)
}
