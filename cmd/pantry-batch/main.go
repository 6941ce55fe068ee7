package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chamchi6619/pantry-core/internal/batch"
	"github.com/chamchi6619/pantry-core/internal/heuristics"
	"github.com/chamchi6619/pantry-core/internal/locale"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// outcomeRow is one NDJSON line in the batch output.
type outcomeRow struct {
	Path   string `json:"path"`
	Error  string `json:"error,omitempty"`
	Result any    `json:"result,omitempty"`
}

func main() {
	var (
		dir     = flag.String("dir", "", "directory of OCR block JSON files (required)")
		tag     = flag.String("locale", "en-US", "locale tag")
		workers = flag.Int("workers", 4, "concurrent parses")
		out     = flag.String("out", "", "NDJSON output path (defaults to stdout)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engine := heuristics.NewEngine(locale.New(*tag), logger)
	runner := batch.NewRunner(engine, *workers, logger)

	outcomes, err := runner.RunDir(ctx, *dir)
	if err != nil {
		printError("Error: batch run: %v\n", err)
		os.Exit(1)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			printError("Error: create %s: %v\n", *out, err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	enc := json.NewEncoder(w)
	reviews := 0
	for _, o := range outcomes {
		row := outcomeRow{Path: o.Job.Path}
		if o.Err != nil {
			row.Error = o.Err.Error()
		} else {
			row.Result = o.Result
			if o.Result.NeedsReview {
				reviews++
			}
		}
		if err := enc.Encode(row); err != nil {
			printError("Error: encode outcome: %v\n", err)
			os.Exit(1)
		}
	}
	logger.Info("batch.done", "receipts", len(outcomes), "needs_review", reviews)
}
