package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/chamchi6619/pantry-core/internal/export"
	"github.com/chamchi6619/pantry-core/internal/heuristics"
	"github.com/chamchi6619/pantry-core/internal/locale"
	"github.com/chamchi6619/pantry-core/internal/ocr"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		in      = flag.String("in", "", "OCR blocks JSON file (required)")
		tag     = flag.String("locale", "en-US", "locale tag, e.g. en-US or de-DE")
		xlsxOut = flag.String("xlsx", "", "write an XLSX workbook here instead of JSON on stdout")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *in == "" {
		printError("Error: --in is required\n")
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	data, err := os.ReadFile(*in)
	if err != nil {
		printError("Error: read %s: %v\n", *in, err)
		os.Exit(1)
	}
	blocks, err := ocr.DecodeBlocks(data)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	engine := heuristics.NewEngine(locale.New(*tag), logger)
	res := engine.ParseReceipt(blocks)

	if *xlsxOut != "" {
		buf, err := export.NewService(logger).ReceiptXLSX(res)
		if err != nil {
			printError("Error: export: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, buf, 0o644); err != nil {
			printError("Error: write %s: %v\n", *xlsxOut, err)
			os.Exit(1)
		}
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		printError("Error: encode result: %v\n", err)
		os.Exit(1)
	}
}
