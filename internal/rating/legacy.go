package rating

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const legacyDateLayout = "1/2/2006"

// LegacyScore converts a legacy score cell. Blank cells become Placeholder.
func LegacyScore(cell string) (string, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return Placeholder, nil
	}
	score, err := strconv.Atoi(s)
	if err != nil {
		return "", fmt.Errorf("legacy score %q: %w", cell, err)
	}
	return strconv.Itoa(score), nil
}

// LegacyFavorite maps the legacy "Yes"/"No" flag to a boolean cell.
// Any other value becomes Placeholder.
func LegacyFavorite(cell string) string {
	switch cell {
	case "Yes":
		return FormatBool(true)
	case "No":
		return FormatBool(false)
	default:
		return Placeholder
	}
}

// LegacyDate reformats a month/day/year date as DD.MM.YYYY. Dates that
// already contain a dot are returned unchanged.
func LegacyDate(cell string) (string, error) {
	if cell == "" {
		return Placeholder, nil
	}
	if strings.Contains(cell, ".") {
		return cell, nil
	}
	t, err := time.Parse(legacyDateLayout, strings.TrimSpace(cell))
	if err != nil {
		return "", fmt.Errorf("legacy date %q: %w", cell, err)
	}
	return t.Format(DateLayout), nil
}

// MigrateLegacy converts viewers consecutive score/favorite/date triples of
// a legacy row, starting at index first. Missing cells count as blank. Any
// parse failure returns an error and no cells.
func MigrateLegacy(row []string, first, viewers int) ([]string, error) {
	cells := make([]string, 0, viewers*CellsPerViewer)
	for v := 0; v < viewers; v++ {
		base := first + v*CellsPerViewer

		score, err := LegacyScore(cellAt(row, base))
		if err != nil {
			return nil, err
		}
		date, err := LegacyDate(cellAt(row, base+2))
		if err != nil {
			return nil, err
		}
		cells = append(cells, score, LegacyFavorite(cellAt(row, base+1)), date)
	}
	return cells, nil
}

// ErrorCells returns the fallback written when legacy ratings cannot be parsed.
func ErrorCells(viewers int) []string {
	cells := make([]string, viewers*CellsPerViewer)
	for i := range cells {
		cells[i] = Error
	}
	return cells
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
