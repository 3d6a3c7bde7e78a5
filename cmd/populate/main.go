// Package main loads breach documents from a JSON or YAML file into the registry.
// Usage: databreach-populate [--output json] <file.json|file.yaml>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"databreach-registry/internal/infra/adapter/persistence"
	"databreach-registry/internal/infra/db"
	"databreach-registry/internal/observability/logging"
	"databreach-registry/internal/resilience/circuitbreaker"
	"databreach-registry/internal/usecase/breach"
	"databreach-registry/internal/usecase/populate"
)

// SummaryOutput is the JSON form of a run summary.
type SummaryOutput struct {
	File     string          `json:"file"`
	Total    int             `json:"total"`
	Created  int             `json:"created"`
	Failed   int             `json:"failed"`
	Failures []FailureOutput `json:"failures,omitempty"`
}

// FailureOutput describes one skipped document.
type FailureOutput struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

func main() {
	var outputFormat string
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one input file is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: databreach-populate [--output json] <file.json|file.yaml>")
		os.Exit(2)
	}
	path := args[0]

	_ = godotenv.Load()
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	elems, err := readFile(path)
	if err != nil {
		logger.Error("failed to read input", slog.String("file", path), slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc, closeDB, err := newService(ctx)
	if err != nil {
		logger.Error("failed to initialize storage", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeDB()

	res := populate.Run(ctx, svc, elems, logger)
	logger.Info("populate finished",
		slog.String("file", path),
		slog.Int("total", len(elems)),
		slog.Int("created", res.Created),
		slog.Int("failed", res.Failed()))

	if err := printSummary(os.Stdout, outputFormat, path, len(elems), res); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readFile(path string) ([]populate.Element, error) {
	format, err := populate.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()
	return populate.Decode(f, format)
}

// newService opens the database, applies the schema and wires the aggregate service.
func newService(ctx context.Context) (*breach.Service, func(), error) {
	cfg, err := db.ConfigFromEnv()
	if err != nil {
		return nil, nil, err
	}
	factory, err := persistence.NewFactory(cfg.Driver)
	if err != nil {
		return nil, nil, err
	}
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.MigrateUp(conn, cfg.Driver); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	txm := circuitbreaker.NewTxManager(db.NewTxManager(conn, factory), circuitbreaker.TxConfig())
	closeDB := func() {
		if err := conn.Close(); err != nil {
			slog.Error("failed to close database", slog.Any("error", err))
		}
	}
	return &breach.Service{Tx: txm}, closeDB, nil
}

func printSummary(w io.Writer, format, path string, total int, res populate.Result) error {
	if format == "json" {
		out := SummaryOutput{File: path, Total: total, Created: res.Created, Failed: res.Failed()}
		for _, f := range res.Failures {
			out.Failures = append(out.Failures, FailureOutput{Index: f.Index, Error: f.Err.Error()})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	_, _ = fmt.Fprintf(w, "%s: %d documents, %d created, %d failed\n", path, total, res.Created, res.Failed())
	for _, f := range res.Failures {
		_, _ = fmt.Fprintf(w, "  #%d: %v\n", f.Index, f.Err)
	}
	return nil
}
