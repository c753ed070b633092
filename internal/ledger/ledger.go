// Package ledger records viewer ratings in the watched spreadsheet.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/watchlog/internal/media"
	"github.com/lepinkainen/watchlog/internal/rating"
	"github.com/lepinkainen/watchlog/internal/sheet"
)

// RatingPrompter asks a viewer for their rating of a record.
type RatingPrompter interface {
	PromptRating(ctx context.Context, viewer string, rec media.ResolvedRecord) (rating.Entry, error)
}

// Outcome tells whether Record updated an existing row or appended a new one.
type Outcome int

const (
	// OutcomeAppended means a new row was added.
	OutcomeAppended Outcome = iota
	// OutcomeUpdated means an existing row was changed in place.
	OutcomeUpdated
)

func (o Outcome) String() string {
	if o == OutcomeUpdated {
		return "updated"
	}
	return "appended"
}

// Ledger reconciles resolved records with the rows of a spreadsheet.
type Ledger struct {
	sheet    sheet.Sheet
	layout   Layout
	prompter RatingPrompter
}

// New creates a Ledger writing to s for the given viewers, in column order.
func New(s sheet.Sheet, viewers []string, prompter RatingPrompter) *Ledger {
	return &Ledger{
		sheet:    s,
		layout:   Layout{Viewers: viewers},
		prompter: prompter,
	}
}

// Lookup returns the row holding marker in the id-marker column.
func (l *Ledger) Lookup(ctx context.Context, marker string) (int, bool, error) {
	cell, err := l.sheet.Find(ctx, marker)
	if errors.Is(err, sheet.ErrCellNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if cell.Col != ColMarker {
		slog.Warn("Marker found outside the id column, ignoring", "marker", marker, "cell", sheet.A1(cell.Row, cell.Col))
		return 0, false, nil
	}
	return cell.Row, true, nil
}

// Record asks every viewer for a rating and writes the result. An existing
// row only has the triples of viewers who rated rewritten; otherwise a new
// row is appended. Writes are not rolled back if a later one fails.
func (l *Ledger) Record(ctx context.Context, rec media.ResolvedRecord) (Outcome, error) {
	marker := rec.Marker()
	row, found, err := l.Lookup(ctx, marker)
	if err != nil {
		return OutcomeAppended, fmt.Errorf("failed to look up %s: %w", marker, err)
	}

	entries := make([]rating.Entry, len(l.layout.Viewers))
	for i, viewer := range l.layout.Viewers {
		entry, err := l.prompter.PromptRating(ctx, viewer, rec)
		if err != nil {
			return OutcomeAppended, err
		}
		entries[i] = entry

		if !found || entry.Skipped {
			continue
		}
		if err := l.writeTriple(ctx, row, i, entry); err != nil {
			return OutcomeUpdated, err
		}
		slog.Info("Updated rating", "viewer", viewer, "title", rec.Title, "row", row)
	}

	if found {
		return OutcomeUpdated, nil
	}

	if err := l.sheet.AppendRow(ctx, NewRow(rec, entries)); err != nil {
		return OutcomeAppended, fmt.Errorf("failed to append %s: %w", marker, err)
	}
	slog.Info("Added new row", "title", rec.Title, "marker", marker)
	return OutcomeAppended, nil
}

func (l *Ledger) writeTriple(ctx context.Context, row, viewer int, entry rating.Entry) error {
	base := l.layout.ViewerColumn(viewer)
	for offset, value := range entry.Cells() {
		if err := l.sheet.UpdateCell(ctx, row, base+offset, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", sheet.A1(row, base+offset), err)
		}
	}
	return nil
}

// CheckHeader warns when the header row is narrower than the layout expects.
func (l *Ledger) CheckHeader(ctx context.Context) error {
	values, err := l.sheet.Get(ctx, l.layout.HeaderRange())
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	width := 0
	if len(values) > 0 {
		width = len(values[0])
	}
	if width < l.layout.Width() {
		slog.Warn("Header row is shorter than expected",
			"columns", width,
			"expected", l.layout.Width(),
			"viewers", l.layout.Viewers,
		)
	}
	return nil
}
