package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/lenderdesk/notice-validator/constants"
	"github.com/lenderdesk/notice-validator/internal/common"
	"github.com/lenderdesk/notice-validator/internal/doctext"
	"github.com/lenderdesk/notice-validator/internal/pipeline"
)

func main() {
	var (
		dir     = flag.String("dir", "", "directory of notice documents to validate (required)")
		workers = flag.Int("workers", 0, "worker count (default BATCH_WORKERS env or 4)")
	)
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "Error: --dir is required")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read %s: %v\n", *dir, err)
		os.Exit(1)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if constants.MapExtToFormat(filepath.Ext(e.Name())) == "" {
			continue
		}
		paths = append(paths, filepath.Join(*dir, e.Name()))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no supported documents in %s\n", *dir)
		os.Exit(1)
	}

	batch := pipeline.NewBatch(logger, doctext.NewDispatcher(cfg.DocText), pipeline.NewPipeline(logger), cfg.Batch.Workers)
	results := batch.Run(context.Background(), paths)

	var passed, failed, incomplete, errored int
	for _, r := range results {
		switch {
		case r.Err != nil:
			errored++
			fmt.Printf("ERROR       %s  (%v)\n", r.Path, r.Err)
		case r.Run.Verdict == nil:
			incomplete++
			fmt.Printf("INCOMPLETE  %s\n", r.Path)
		case r.Run.Verdict.Passed():
			passed++
			fmt.Printf("PASS        %s\n", r.Path)
		default:
			failed++
			fmt.Printf("FAIL        %s  (difference %s)\n", r.Path, r.Run.Verdict.DifferenceAmount.StringFixed(2))
		}
	}
	fmt.Printf("\n%d documents: %d pass, %d fail, %d incomplete, %d errors\n",
		len(results), passed, failed, incomplete, errored)

	if failed > 0 || errored > 0 {
		os.Exit(2)
	}
}
