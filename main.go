package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"

	"github.com/faturalab/statement-scanner/internal/api"
	"github.com/faturalab/statement-scanner/internal/extractor"
	"github.com/faturalab/statement-scanner/internal/keywords"
	"github.com/faturalab/statement-scanner/internal/models"
	"github.com/faturalab/statement-scanner/internal/parser"
	"github.com/faturalab/statement-scanner/internal/writer"
)

const version = "1.0.0"

const defaultKeywordsFile = "keywords.json"

func usage() {
	fmt.Fprintf(os.Stderr, `Statement Scanner
Extracts keyword-matched transactions from credit-card statement PDFs
and reports per-keyword and grand totals.

Usage:
  statement-scanner run [flags] <fatura.pdf>
  statement-scanner keywords list|add|remove [term]
  statement-scanner serve [flags]

Commands:
  run       Read a statement PDF and write a report (xlsx or csv)
  keywords  Manage the search terms used to classify transactions
  serve     Start the HTTP API

Run 'statement-scanner <command> -help' for command flags.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		cmdRun(os.Args[2:])
	case "keywords":
		cmdKeywords(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	case "version", "-version", "--version":
		fmt.Printf("statement-scanner v%s\n", version)
	case "help", "-help", "--help":
		usage()
	default:
		fatalf("Unknown command %q. Use run, keywords, or serve.\n", os.Args[1])
	}
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	keywordsFlag := fs.String("keywords", defaultKeywordsFile, "Keywords JSON file")
	outputFlag := fs.String("output", "", "Output file path (defaults to input filename with report extension)")
	formatFlag := fs.String("format", "xlsx", "Output format: xlsx or csv")
	yearFlag := fs.Int("year", time.Now().Year(), "Statement reference year (resolves day/month-only dates)")
	monthFlag := fs.Int("month", int(time.Now().Month()), "Statement reference month, 1-12")
	timeoutFlag := fs.Duration("timeout", 30*time.Second, "PDF extraction timeout")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fatalf("Usage: statement-scanner run [flags] <fatura.pdf>\n")
	}
	if *formatFlag != "xlsx" && *formatFlag != "csv" {
		fatalf("Unknown format %q. Use xlsx or csv.\n", *formatFlag)
	}
	if *monthFlag < 1 || *monthFlag > 12 {
		fatalf("Reference month must be in 1..12, got %d.\n", *monthFlag)
	}

	reg, err := keywords.NewRegistry(*keywordsFlag)
	if err != nil {
		fatalf("Error loading keywords: %v\n", err)
	}

	cfg := models.RunConfig{
		ReferenceYear:  *yearFlag,
		ReferenceMonth: time.Month(*monthFlag),
		Locale:         models.BRLocale(),
	}

	for _, inputPath := range fs.Args() {
		if err := processFile(inputPath, reg, cfg, *outputFlag, *formatFlag, *timeoutFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(inputPath string, reg *keywords.Registry, cfg models.RunConfig, outputPath, format string, timeout time.Duration) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pages, err := extractor.ExtractText(ctx, inputPath)
	if err != nil {
		return fmt.Errorf("PDF extraction failed: %w", err)
	}
	fmt.Printf("  Extracted text from %d page(s)\n", len(pages))

	keys := reg.List()
	fmt.Printf("  Matching against %d keyword(s)\n", len(keys))

	res, diag, err := parser.New(cfg, keys).Parse(ctx, pages)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	fmt.Printf("  Found %d transaction(s)\n", len(res.Transactions))
	if diag.DiscardedLines > 0 || diag.UnmatchedLines > 0 {
		fmt.Printf("  Skipped %d unparseable and %d non-matching line(s)\n",
			diag.DiscardedLines, diag.UnmatchedLines)
	}
	if len(res.Transactions) == 0 {
		fmt.Println("  Warning: no matching transactions found. Check the registered keywords.")
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "." + format
	}

	opts := writer.Options{LocaleDates: true, Locale: cfg.Locale}
	switch format {
	case "csv":
		w := &writer.CSVWriter{IncludeHeader: true}
		if err := w.WriteToFile(outPath, writer.ToTable(res, opts)); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	case "xlsx":
		w := &writer.XLSXWriter{Opts: opts}
		if err := w.WriteToFile(outPath, res); err != nil {
			return fmt.Errorf("XLSX write failed: %w", err)
		}
	}

	fmt.Printf("  Output: %s\n", outPath)
	for _, kw := range res.KeywordOrder {
		fmt.Printf("  %-20s %s\n", kw, money.New(res.Subtotals[kw], money.BRL).Display())
	}
	fmt.Printf("  Total geral: %s\n", money.New(res.GrandTotalCents, money.BRL).Display())
	fmt.Println("  Done.")
	return nil
}

func cmdKeywords(args []string) {
	fs := flag.NewFlagSet("keywords", flag.ExitOnError)
	keywordsFlag := fs.String("keywords", defaultKeywordsFile, "Keywords JSON file")

	if len(args) == 0 {
		fatalf("Usage: statement-scanner keywords list|add|remove [term]\n")
	}
	sub := args[0]
	fs.Parse(args[1:])

	reg, err := keywords.NewRegistry(*keywordsFlag)
	if err != nil {
		fatalf("Error loading keywords: %v\n", err)
	}

	switch sub {
	case "list":
		fmt.Println("Registered keywords:")
		for _, k := range reg.List() {
			fmt.Printf(" - %s\n", k)
		}
	case "add":
		if fs.NArg() == 0 {
			fatalf("Usage: statement-scanner keywords add <term>\n")
		}
		kw, err := reg.Add(fs.Arg(0))
		if err != nil {
			fatalf("Error: %v\n", err)
		}
		fmt.Printf("Added: %s\n", kw)
	case "remove":
		if fs.NArg() == 0 {
			fatalf("Usage: statement-scanner keywords remove <term>\n")
		}
		if err := reg.Remove(fs.Arg(0)); err != nil {
			fatalf("Error: %v\n", err)
		}
		fmt.Printf("Removed: %s\n", fs.Arg(0))
	default:
		fatalf("Unknown keywords subcommand %q. Use list, add, or remove.\n", sub)
	}
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addrFlag := fs.String("addr", "", "Listen address (overrides SCANNER_ADDR)")
	fs.Parse(args)

	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	addr := *addrFlag
	if addr == "" {
		addr = os.Getenv("SCANNER_ADDR")
	}
	if addr == "" {
		addr = ":8080"
	}

	keywordsPath := os.Getenv("SCANNER_KEYWORDS_FILE")
	if keywordsPath == "" {
		keywordsPath = defaultKeywordsFile
	}
	uploadDir := os.Getenv("SCANNER_UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		fatalf("Error creating upload dir: %v\n", err)
	}

	reg, err := keywords.NewRegistry(keywordsPath)
	if err != nil {
		fatalf("Error loading keywords: %v\n", err)
	}

	srv := api.New(reg, uploadDir)
	fmt.Printf("statement-scanner v%s listening on %s\n", version, addr)
	if err := srv.App().Listen(addr); err != nil {
		fatalf("Server error: %v\n", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
