// Package sheet provides the spreadsheet backends the watch log is stored in.
//
// Rows and columns are 1-based, like the spreadsheet UI. Values are read and
// written as strings; backends that understand types (Google Sheets) parse
// them as if a user had typed them.
package sheet

import (
	"context"
	"errors"
)

// ErrCellNotFound is returned by Find when no cell holds the searched text.
var ErrCellNotFound = errors.New("cell not found")

// Cell is the position of a cell.
type Cell struct {
	Row int
	Col int
}

// Sheet is a single worksheet.
type Sheet interface {
	// Get returns the values in an A1 range such as "A1" or "A1:J1".
	Get(ctx context.Context, a1Range string) ([][]string, error)
	// Find returns the first cell, in row-major order, whose value equals text.
	Find(ctx context.Context, text string) (Cell, error)
	// RowValues returns one row with trailing empty cells trimmed.
	RowValues(ctx context.Context, row int) ([]string, error)
	// UpdateCell overwrites a single cell.
	UpdateCell(ctx context.Context, row, col int, value string) error
	// AppendRow writes values into the first row after the last non-empty one.
	AppendRow(ctx context.Context, values []string) error
}

// Opener opens a spreadsheet document by its human-readable name and
// returns its first worksheet.
type Opener interface {
	Open(ctx context.Context, name string) (Sheet, error)
}

func trimTrailingEmpty(values []string) []string {
	end := len(values)
	for end > 0 && values[end-1] == "" {
		end--
	}
	return values[:end]
}
