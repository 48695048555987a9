package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/lenderdesk/notice-validator/constants"
	"github.com/lenderdesk/notice-validator/internal/calc"
	"github.com/lenderdesk/notice-validator/internal/common"
	"github.com/lenderdesk/notice-validator/internal/doctext"
	"github.com/lenderdesk/notice-validator/internal/entity"
	"github.com/lenderdesk/notice-validator/internal/export"
	"github.com/lenderdesk/notice-validator/internal/pipeline"
	"github.com/lenderdesk/notice-validator/internal/reconcile"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	Log            *slog.Logger
	Pipeline       *pipeline.Pipeline
	Provider       doctext.Provider
	Export         *export.Service
	MaxUploadBytes int64
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("api.encode_failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps the fatal sentinels to 422; anything else is a server bug.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNoTextExtracted),
		errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrMissingData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// --- Extract ---

func (h *Handlers) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var (
		rec *entity.ExtractedRecord
		err error
	)
	if req.Text != "" {
		rec, err = h.Pipeline.Extractor.Extract(req.Text)
	} else {
		rec, err = h.Pipeline.Extractor.ExtractPages(req.Pages)
	}
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// --- ValidateCompleteness ---

func (h *Handlers) ValidateCompleteness(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rec, err := payload.toEntity()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.Pipeline.Validator.ValidateRecord(rec))
}

// --- Calculate ---

func (h *Handlers) Calculate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	if err := validateJSONAgainstSchema(buildCalculateSchema(), body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req calculateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	principal, err := decimal.NewFromString(req.Principal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "principal: "+err.Error())
		return
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "rate: "+err.Error())
		return
	}
	start, err := parseYMD(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start_date: "+err.Error())
		return
	}
	end, err := parseYMD(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end_date: "+err.Error())
		return
	}

	result, err := calc.CalculateInterestWithDetails(principal, rate, start, end)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- Reconcile ---

func (h *Handlers) Reconcile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	if err := validateJSONAgainstSchema(buildReconcileSchema(), body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req reconcileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rec, err := req.Record.toEntity()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	expected, err := decimal.NewFromString(req.Calculation.ExpectedInterest)
	if err != nil {
		writeError(w, http.StatusBadRequest, "expected_interest: "+err.Error())
		return
	}
	result := &entity.CalculationResult{
		ExpectedInterest: expected,
		DaysCalculated:   req.Calculation.DaysCalculated,
		FormulaUsed:      req.Calculation.FormulaUsed,
		Details:          req.Calculation.Details,
	}

	verdict, err := h.Pipeline.Reconciler.Reconcile(rec, result)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reconcileResponse{
		Verdict:         verdict,
		Recommendations: reconcile.Recommendations(verdict),
		Summary:         reconcile.Summary(verdict),
	})
}

// --- ValidateNotice (multipart upload, full pipeline) ---

func (h *Handlers) ValidateNotice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required: "+err.Error())
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if constants.MapExtToFormat(ext) == "" {
		writeError(w, http.StatusBadRequest, "unsupported document format: "+ext)
		return
	}

	// The text providers work on paths, so spool the upload to disk.
	tmp, err := os.CreateTemp("", "notice-*"+ext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "spool upload: "+err.Error())
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, http.StatusInternalServerError, "spool upload: "+err.Error())
		return
	}
	tmp.Close()

	pages, err := h.Provider.Pages(r.Context(), tmp.Name())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	run, err := h.Pipeline.Run(pages, header.Filename)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		book, err := h.Export.BuildWorkbook(run)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "build workbook: "+err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="validation-`+run.ID.String()+`.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(book)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// --- Healthz ---

func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
