// Package rate implements the interactive search-and-rate command.
package rate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lepinkainen/watchlog/internal/cmdutil"
	"github.com/lepinkainen/watchlog/internal/config"
	"github.com/lepinkainen/watchlog/internal/disambiguate"
	watchlogerrors "github.com/lepinkainen/watchlog/internal/errors"
	"github.com/lepinkainen/watchlog/internal/ledger"
	"github.com/lepinkainen/watchlog/internal/media"
	"github.com/lepinkainen/watchlog/internal/tmdb"
	"github.com/lepinkainen/watchlog/internal/tui"
)

// RateCmd represents the rate command
type RateCmd struct{}

func (r *RateCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return RateFunc(context.Background(), Options{Config: cfg, Out: os.Stdout})
}

var RateFunc = Rate

// Options holds configuration for the rate command.
type Options struct {
	Config config.Config
	// Out receives the summary of the picked title.
	Out io.Writer
}

// Client is the part of the TMDB client the command needs.
type Client interface {
	disambiguate.Searcher
	GetDetails(ctx context.Context, mediaType string, id int) (tmdb.Details, error)
}

// Prompter asks for the search query, the pick and every viewer's rating.
type Prompter interface {
	disambiguate.Prompter
	ledger.RatingPrompter
}

var (
	openWorkbook = cmdutil.OpenWorkbook
	newClient    = func(cfg config.Config) Client { return cmdutil.NewTMDBClient(cfg) }
	newPrompter  = func() Prompter { return tui.NewPrompter() }
)

// Rate searches TMDB for one title, lets the user pick it and records every
// viewer's rating in the current spreadsheet. Stopping a prompt ends the
// command without an error.
func Rate(ctx context.Context, opts Options) error {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	wb, err := openWorkbook(ctx, opts.Config.Sheets)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	target, err := wb.Open(ctx, opts.Config.Sheets.Current)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", opts.Config.Sheets.Current, err)
	}

	client := newClient(opts.Config)
	prompter := newPrompter()
	watched := ledger.New(target, opts.Config.Viewers, prompter)

	if err := watched.CheckHeader(ctx); err != nil {
		return err
	}

	picked, err := disambiguate.New(client, prompter).Run(ctx)
	if err != nil {
		return stopped(err)
	}

	details, err := client.GetDetails(ctx, picked.MediaType, picked.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch details for %s: %w", picked.Label(), err)
	}
	rec := media.BuildRecord(details, picked.MediaType)
	printRecord(out, rec)

	outcome, err := watched.Record(ctx, rec)
	if err != nil {
		return stopped(err)
	}

	slog.Info("Rating recorded", "title", rec.Title, "marker", rec.Marker(), "outcome", outcome)
	return nil
}

func stopped(err error) error {
	if watchlogerrors.IsStopProcessingError(err) || errors.Is(err, context.Canceled) {
		slog.Info("Stopped by user")
		return nil
	}
	return err
}

func printRecord(w io.Writer, rec media.ResolvedRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("About this")
	t.AppendRows([]table.Row{
		{"Title", rec.Title},
		{"Creators", rec.Creators},
		{"Years", rec.DateSpan},
		{"Type", rec.MediaType},
		{"Marker", rec.Marker()},
	})
	t.Render()
}
