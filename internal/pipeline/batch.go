package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lenderdesk/notice-validator/internal/doctext"
	"github.com/lenderdesk/notice-validator/internal/entity"
)

// BatchResult is the outcome of validating one document in a batch.
type BatchResult struct {
	Path string
	Run  *entity.ValidationRun
	Err  error
}

// Batch validates many documents with a bounded worker pool. Every document
// is an independent pipeline invocation, so workers need no coordination
// beyond the job channel.
type Batch struct {
	Log      *slog.Logger
	Provider doctext.Provider
	Pipeline *Pipeline
	Workers  int
	Timeout  time.Duration
}

func NewBatch(log *slog.Logger, provider doctext.Provider, p *Pipeline, workers int) *Batch {
	if log == nil {
		log = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &Batch{
		Log:      log,
		Provider: provider,
		Pipeline: p,
		Workers:  workers,
		Timeout:  time.Minute,
	}
}

// Run validates every path and returns results in input order.
func (b *Batch) Run(ctx context.Context, paths []string) []BatchResult {
	results := make([]BatchResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 1; w <= b.Workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				results[i] = b.validateOne(ctx, paths[i])
				if results[i].Err != nil {
					b.Log.Error("batch.document_failed", "worker_id", workerID, "path", paths[i], "error", results[i].Err)
				}
			}
		}(w)
	}

feed:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

func (b *Batch) validateOne(ctx context.Context, path string) BatchResult {
	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()

	pages, err := b.Provider.Pages(ctx, path)
	if err != nil {
		return BatchResult{Path: path, Err: err}
	}
	run, err := b.Pipeline.Run(pages, path)
	return BatchResult{Path: path, Run: run, Err: err}
}
