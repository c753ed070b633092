// Package migrate implements the one-shot migration of the legacy ratings
// spreadsheet into the watched log.
package migrate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/watchlog/internal/cmdutil"
	"github.com/lepinkainen/watchlog/internal/config"
	migration "github.com/lepinkainen/watchlog/internal/migrate"
)

// MigrateCmd represents the migrate command
type MigrateCmd struct {
	FirstRow int    `help:"First legacy row to migrate (defaults to migrate.firstrow)"`
	LastRow  int    `help:"Last legacy row to migrate (defaults to migrate.lastrow)"`
	Report   string `help:"Write a YAML report of every migrated row to this file" type:"path"`
}

func (m *MigrateCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if m.FirstRow > 0 {
		cfg.FirstRow = m.FirstRow
	}
	if m.LastRow > 0 {
		cfg.LastRow = m.LastRow
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return MigrateFunc(ctx, Options{Config: cfg, ReportPath: m.Report, Out: os.Stdout})
}

var MigrateFunc = Migrate

// Options holds configuration for the migrate command.
type Options struct {
	Config config.Config
	// ReportPath is where the YAML report goes; empty skips it.
	ReportPath string
	// Out receives the summary table.
	Out io.Writer
}

var (
	openWorkbook = cmdutil.OpenWorkbook
	newClient    = func(cfg config.Config) migration.Client { return cmdutil.NewTMDBClient(cfg) }
)

// Migrate copies the configured legacy rows into the current spreadsheet and
// prints a summary. The summary and report are produced for the rows done
// even when the run stops early.
func Migrate(ctx context.Context, opts Options) error {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	cfg := opts.Config

	wb, err := openWorkbook(ctx, cfg.Sheets)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	legacy, err := wb.Open(ctx, cfg.Sheets.Legacy)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", cfg.Sheets.Legacy, err)
	}
	target, err := wb.Open(ctx, cfg.Sheets.Current)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", cfg.Sheets.Current, err)
	}

	driver := migration.NewDriver(newClient(cfg), legacy, target, migration.Options{
		FirstRow:  cfg.FirstRow,
		LastRow:   cfg.LastRow,
		Tolerance: cfg.YearTolerance,
		Viewers:   len(cfg.Viewers),
		Suffixes:  migration.DefaultSuffixes,
	})

	slog.Info("Starting migration", "from", cfg.Sheets.Legacy, "to", cfg.Sheets.Current, "first", cfg.FirstRow, "last", cfg.LastRow)
	report, runErr := driver.Run(ctx)

	printSummary(out, report)

	if opts.ReportPath != "" {
		if err := writeReport(opts.ReportPath, report); err != nil {
			if runErr != nil {
				slog.Error("Failed to write report", "error", err)
				return runErr
			}
			return err
		}
		slog.Info("Wrote migration report", "path", opts.ReportPath)
	}

	if runErr != nil {
		return fmt.Errorf("migration stopped after %d rows: %w", report.Processed, runErr)
	}
	return nil
}

func printSummary(w io.Writer, report migration.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Migration summary")
	t.AppendHeader(table.Row{"Processed", "Resolved", "Failed", "Rating fallback"})
	t.AppendRow(table.Row{report.Processed, report.Resolved, len(report.FailedRows), len(report.RatingFallbackRows)})
	t.Render()

	if len(report.FailedRows) > 0 {
		_, _ = fmt.Fprintf(w, "Failed rows: %s\n", joinInts(report.FailedRows))
	}
	if len(report.RatingFallbackRows) > 0 {
		_, _ = fmt.Fprintf(w, "Rating fallback rows: %s\n", joinInts(report.RatingFallbackRows))
	}
}

func writeReport(path string, report migration.Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
