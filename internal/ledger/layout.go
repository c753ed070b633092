package ledger

import (
	"github.com/lepinkainen/watchlog/internal/media"
	"github.com/lepinkainen/watchlog/internal/rating"
	"github.com/lepinkainen/watchlog/internal/sheet"
)

// Record columns, 1-based.
const (
	ColTitle = iota + 1
	ColCreators
	ColDateSpan
	ColMarker

	// RecordColumns is the number of columns before the first viewer.
	RecordColumns = ColMarker
)

// Layout describes where each viewer's triple lives.
type Layout struct {
	Viewers []string
}

// ViewerColumn returns the first (score) column of the viewer at index i.
func (l Layout) ViewerColumn(i int) int {
	return RecordColumns + 1 + i*rating.CellsPerViewer
}

// Width is the number of columns of a full row.
func (l Layout) Width() int {
	return RecordColumns + len(l.Viewers)*rating.CellsPerViewer
}

// HeaderRange is the A1 range of the header row.
func (l Layout) HeaderRange() string {
	return "A1:" + sheet.A1(1, l.Width())
}

// Row is one positional spreadsheet row.
type Row []string

// NewRow builds the row for a record followed by one triple per entry.
func NewRow(rec media.ResolvedRecord, entries []rating.Entry) Row {
	row := Row{rec.Title, rec.Creators, rec.DateSpan, rec.Marker()}
	for _, e := range entries {
		row = append(row, e.Cells()...)
	}
	return row
}

// Marker returns the id-marker column of the row, or "" if the row is short.
func (r Row) Marker() string {
	if len(r) < ColMarker {
		return ""
	}
	return r[ColMarker-1]
}
