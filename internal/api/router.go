package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/lenderdesk/notice-validator/internal/common"
	"github.com/lenderdesk/notice-validator/internal/doctext"
	"github.com/lenderdesk/notice-validator/internal/export"
	"github.com/lenderdesk/notice-validator/internal/pipeline"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(log *slog.Logger, p *pipeline.Pipeline, provider doctext.Provider, exp *export.Service, maxUploadBytes int64) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	h := &Handlers{
		Log:            log,
		Pipeline:       p,
		Provider:       provider,
		Export:         exp,
		MaxUploadBytes: maxUploadBytes,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Healthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/extract", h.Extract)
		r.Post("/validate", h.ValidateCompleteness)
		r.Post("/calculate", h.Calculate)
		r.Post("/reconcile", h.Reconcile)
		r.Post("/notices/validate", h.ValidateNotice)
	})

	return r
}

// requestLogger tags every request with an ID and logs method, path, status
// and duration.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			ctx := common.WithRequestID(r.Context(), requestID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			log.Info("http.request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
