// Package pipeline wires the extraction-to-verdict stages for one document:
// raw text -> typed record -> completeness findings -> interest calculation
// -> reconciliation verdict. Each invocation is independent and stateless, so
// documents may be processed fully in parallel.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lenderdesk/notice-validator/internal/calc"
	"github.com/lenderdesk/notice-validator/internal/entity"
	"github.com/lenderdesk/notice-validator/internal/extract"
	"github.com/lenderdesk/notice-validator/internal/reconcile"
	"github.com/lenderdesk/notice-validator/internal/validation"
)

type Pipeline struct {
	Log        *slog.Logger
	Extractor  *extract.Extractor
	Validator  *validation.Validator
	Reconciler *reconcile.Reconciler
}

func NewPipeline(log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	v := validation.NewValidator(log)
	return &Pipeline{
		Log:        log,
		Extractor:  extract.NewExtractor(log),
		Validator:  v,
		Reconciler: reconcile.NewReconciler(log, v),
	}
}

// Run executes the full validation pipeline over the per-page text of one
// document. The only error it returns is the fatal extraction sentinel (or a
// downstream sentinel that the earlier stages failed to gate, which indicates
// a bug); a run stopped by completeness errors or the calculation pre-check
// returns the partial ValidationRun with a nil error so callers can render
// the findings.
func (p *Pipeline) Run(pages []string, sourceName string) (*entity.ValidationRun, error) {
	run := &entity.ValidationRun{
		ID:         uuid.New(),
		SourceName: sourceName,
		StartedAt:  time.Now().UTC(),
	}
	log := p.Log.With("run_id", run.ID)

	rec, err := p.Extractor.ExtractPages(pages)
	if err != nil {
		log.Error("pipeline.extract_failed", "source", sourceName, "error", err)
		return nil, err
	}
	run.Record = rec

	run.Completeness = p.Validator.ValidateRecord(rec)
	if !run.Completeness.IsValid {
		log.Warn("pipeline.stopped_on_findings",
			"source", sourceName,
			"errors", len(run.Completeness.Errors),
		)
		run.FinishedAt = time.Now().UTC()
		return run, nil
	}

	if precheck := calc.ValidateCalculationInputs(rec.PrincipalAmount, rec.InterestRate, rec.StartDate, rec.EndDate); len(precheck) > 0 {
		run.PrecheckErrors = precheck
		log.Warn("pipeline.stopped_on_precheck", "source", sourceName, "fields", len(precheck))
		run.FinishedAt = time.Now().UTC()
		return run, nil
	}

	result, err := calc.CalculateInterestWithDetails(*rec.PrincipalAmount, *rec.InterestRate, *rec.StartDate, *rec.EndDate)
	if err != nil {
		// unreachable after a clean pre-check
		log.Error("pipeline.calculate_failed", "source", sourceName, "error", err)
		return run, err
	}
	run.Calculation = result

	verdict, err := p.Reconciler.Reconcile(rec, result)
	if err != nil {
		log.Error("pipeline.reconcile_failed", "source", sourceName, "error", err)
		return run, err
	}
	run.Verdict = verdict
	run.Recommendations = reconcile.Recommendations(verdict)
	run.FinishedAt = time.Now().UTC()

	log.Info("pipeline.ok",
		"source", sourceName,
		"status", string(verdict.Status),
		"expected", verdict.ExpectedAmount.StringFixed(2),
		"notice", verdict.NoticeAmount.StringFixed(2),
		"elapsed_ms", run.FinishedAt.Sub(run.StartedAt).Milliseconds(),
	)
	return run, nil
}
