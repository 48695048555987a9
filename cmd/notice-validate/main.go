package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lenderdesk/notice-validator/internal/common"
	"github.com/lenderdesk/notice-validator/internal/doctext"
	"github.com/lenderdesk/notice-validator/internal/export"
	"github.com/lenderdesk/notice-validator/internal/pipeline"
	"github.com/lenderdesk/notice-validator/internal/reconcile"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		in      = flag.String("in", "", "notice document to validate, .pdf or .txt (required)")
		out     = flag.String("out", "", "write an XLSX validation report to this path (optional)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *in == "" {
		printError("Error: --in is required\n")
		os.Exit(1)
	}

	// Setup logger
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	provider := doctext.NewDispatcher(cfg.DocText)
	pages, err := provider.Pages(ctx, *in)
	if err != nil {
		printError("Error: extract text: %v\n", err)
		os.Exit(1)
	}

	run, err := pipeline.NewPipeline(logger).Run(pages, *in)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	if run.Verdict != nil {
		fmt.Println(reconcile.Summary(run.Verdict))
		fmt.Println("\nRECOMMENDATIONS:")
		for _, r := range run.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	} else {
		fmt.Println("VALIDATION INCOMPLETE")
		for _, f := range run.Completeness.Errors {
			fmt.Printf("  error   [%s] %s\n", f.Field, f.Message)
		}
		for field, msg := range run.PrecheckErrors {
			fmt.Printf("  error   [%s] %s\n", field, msg)
		}
	}
	for _, f := range run.Completeness.Warnings {
		fmt.Printf("  warning [%s] %s\n", f.Field, f.Message)
	}

	if *out != "" {
		book, err := export.NewService(logger).BuildWorkbook(run)
		if err != nil {
			printError("Error: build workbook: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, book, 0o644); err != nil {
			printError("Error: write %s: %v\n", *out, err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", *out)
	}

	if run.Verdict == nil || !run.Verdict.Passed() {
		os.Exit(2)
	}
}
