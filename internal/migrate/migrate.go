// Package migrate copies rows from the legacy ratings spreadsheet into the
// watched log, re-resolving every title against TMDB.
package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/watchlog/internal/ledger"
	"github.com/lepinkainen/watchlog/internal/media"
	"github.com/lepinkainen/watchlog/internal/rating"
	"github.com/lepinkainen/watchlog/internal/sheet"
	"github.com/lepinkainen/watchlog/internal/tmdb"
)

// Legacy schema columns, 0-based.
const (
	legacyTitle = iota
	legacyYear
	legacyCreators
	legacyFirstRating
)

const (
	DefaultFirstRow = 3
	DefaultLastRow  = 1119
	DefaultViewers  = 2
)

// DefaultSuffixes are removed from legacy titles before searching.
var DefaultSuffixes = []string{", The"}

// Client is the part of the TMDB client the migration needs.
type Client interface {
	SearchMulti(ctx context.Context, query string, page int) (tmdb.SearchPage, error)
	GetDetails(ctx context.Context, mediaType string, id int) (tmdb.Details, error)
}

// Options controls which rows are migrated and how.
type Options struct {
	FirstRow  int
	LastRow   int
	Tolerance int
	Viewers   int
	Suffixes  []string
}

// DefaultOptions returns the settings used for the original sheet.
func DefaultOptions() Options {
	return Options{
		FirstRow:  DefaultFirstRow,
		LastRow:   DefaultLastRow,
		Tolerance: media.DefaultYearTolerance,
		Viewers:   DefaultViewers,
		Suffixes:  DefaultSuffixes,
	}
}

// Outcome is the result of resolving one legacy title.
type Outcome int

const (
	OutcomeResolved Outcome = iota
	OutcomeNoMatch
	OutcomeSearchFailed
	OutcomeDetailFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeNoMatch:
		return "no match"
	case OutcomeSearchFailed:
		return "search failed"
	case OutcomeDetailFailed:
		return "detail failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// RowResult describes what happened to one legacy row.
type RowResult struct {
	Index          int      `yaml:"row"`
	LegacyTitle    string   `yaml:"legacy_title"`
	Outcome        Outcome  `yaml:"-"`
	OutcomeText    string   `yaml:"outcome"`
	Error          string   `yaml:"error,omitempty"`
	RatingFallback bool     `yaml:"rating_fallback,omitempty"`
	Written        []string `yaml:"written"`
}

// Report summarises a migration run.
type Report struct {
	Processed          int         `yaml:"processed"`
	Resolved           int         `yaml:"resolved"`
	FailedRows         []int       `yaml:"failed_rows"`
	RatingFallbackRows []int       `yaml:"rating_fallback_rows"`
	Rows               []RowResult `yaml:"rows"`
}

// Driver runs the migration.
type Driver struct {
	client   Client
	legacy   sheet.Sheet
	target   sheet.Sheet
	opts     Options
	resolver media.Resolver
}

// NewDriver creates a Driver. Zero row bounds and viewer count and nil
// suffixes fall back to the defaults; Tolerance is used as given.
func NewDriver(client Client, legacy, target sheet.Sheet, opts Options) *Driver {
	defaults := DefaultOptions()
	if opts.FirstRow <= 0 {
		opts.FirstRow = defaults.FirstRow
	}
	if opts.LastRow <= 0 {
		opts.LastRow = defaults.LastRow
	}
	if opts.Viewers <= 0 {
		opts.Viewers = defaults.Viewers
	}
	if opts.Suffixes == nil {
		opts.Suffixes = defaults.Suffixes
	}

	return &Driver{
		client:   client,
		legacy:   legacy,
		target:   target,
		opts:     opts,
		resolver: media.NewResolver(opts.Tolerance),
	}
}

// Run migrates every row in [FirstRow, LastRow], one at a time. Every legacy
// row produces exactly one target row. Only spreadsheet errors and context
// cancellation stop the run; the report covers the rows done so far.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	report := Report{FailedRows: []int{}, RatingFallbackRows: []int{}}

	for i := d.opts.FirstRow; i <= d.opts.LastRow; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, err := d.migrateRow(ctx, i)
		if err != nil {
			return report, err
		}

		report.Processed++
		report.Rows = append(report.Rows, result)
		if result.Outcome == OutcomeResolved {
			report.Resolved++
		} else {
			report.FailedRows = append(report.FailedRows, i)
		}
		if result.RatingFallback {
			report.RatingFallbackRows = append(report.RatingFallbackRows, i)
		}
	}

	return report, nil
}

func (d *Driver) migrateRow(ctx context.Context, index int) (RowResult, error) {
	legacy, err := d.legacy.RowValues(ctx, index)
	if err != nil {
		return RowResult{}, fmt.Errorf("failed to read legacy row %d: %w", index, err)
	}

	title := cell(legacy, legacyTitle)
	result := RowResult{Index: index, LegacyTitle: title}
	slog.Info("Migrating row", "row", index, "title", title)

	rec, outcome, err := d.resolve(ctx, d.searchTitle(title), cell(legacy, legacyYear))
	result.Outcome = outcome
	result.OutcomeText = outcome.String()

	var row ledger.Row
	if outcome == OutcomeResolved {
		row = ledger.Row{rec.Title, rec.Creators, rec.DateSpan, rec.Marker()}
		slog.Info("Resolved", "row", index, "title", rec.Title, "creators", rec.Creators, "years", rec.DateSpan, "marker", rec.Marker())
	} else {
		if err != nil {
			result.Error = err.Error()
		}
		row = ledger.Row{title, cell(legacy, legacyCreators), cell(legacy, legacyYear), media.IDMarker(0)}
		slog.Warn("Could not resolve, keeping legacy values", "row", index, "title", title, "outcome", outcome, "error", err)
	}

	ratings, err := rating.MigrateLegacy(legacy, legacyFirstRating, d.opts.Viewers)
	if err != nil {
		slog.Warn("Could not migrate ratings", "row", index, "error", err)
		ratings = rating.ErrorCells(d.opts.Viewers)
		result.RatingFallback = true
	}
	row = append(row, ratings...)

	if err := d.target.AppendRow(ctx, row); err != nil {
		return RowResult{}, fmt.Errorf("failed to write row for legacy row %d: %w", index, err)
	}
	result.Written = row
	return result, nil
}

// resolve searches for title and picks the candidate closest to year.
func (d *Driver) resolve(ctx context.Context, title, year string) (media.ResolvedRecord, Outcome, error) {
	page, err := d.client.SearchMulti(ctx, title, 1)
	if err != nil {
		return media.ResolvedRecord{}, OutcomeSearchFailed, err
	}

	found, ok := d.resolver.Resolve(media.NormalizeAll(page.Results), year)
	if !ok {
		return media.ResolvedRecord{}, OutcomeNoMatch, fmt.Errorf("no result for %q within %d years of %q", title, d.resolver.Tolerance, year)
	}

	details, err := d.client.GetDetails(ctx, found.MediaType, found.ID)
	if err != nil {
		return media.ResolvedRecord{}, OutcomeDetailFailed, err
	}
	return media.BuildRecord(details, found.MediaType), OutcomeResolved, nil
}

func (d *Driver) searchTitle(title string) string {
	for _, suffix := range d.opts.Suffixes {
		title = strings.ReplaceAll(title, suffix, "")
	}
	return title
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
