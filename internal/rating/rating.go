// Package rating holds a viewer's rating of a title and the conversions
// between rating cells and the values viewers type in.
package rating

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the day.month.year format of the watched column.
	DateLayout = "02.01.2006"

	// Placeholder fills a rating cell that has no value.
	Placeholder = "—"

	// SkipLabel is what the score prompt shows for "no rating".
	SkipLabel = "[skip]"

	// Error fills every rating cell of a legacy row that could not be parsed.
	Error = "XXX"

	MinScore = 0
	MaxScore = 10

	// CellsPerViewer is the width of one viewer's score/favorite/date triple.
	CellsPerViewer = 3
)

// ErrScoreRange is returned for integer scores outside 0..10.
var ErrScoreRange = errors.New("score out of range")

// Entry is one viewer's rating of one title.
type Entry struct {
	Skipped  bool
	Score    int
	Favorite bool
	Watched  string
}

// Skip returns the entry recorded for a viewer who did not rate the title.
func Skip() Entry {
	return Entry{Skipped: true}
}

// Cells returns the score, favorite and date cells, in column order.
func (e Entry) Cells() []string {
	if e.Skipped {
		return PlaceholderCells()
	}
	return []string{strconv.Itoa(e.Score), FormatBool(e.Favorite), e.Watched}
}

// PlaceholderCells returns one triple of Placeholder values.
func PlaceholderCells() []string {
	return []string{Placeholder, Placeholder, Placeholder}
}

// FormatBool renders a favorite flag so the spreadsheet stores a boolean.
func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// ParseScore reads a typed score. Empty input or the skip sentinel mean the
// viewer skips this title.
func ParseScore(input string) (score int, skipped bool, err error) {
	s := strings.TrimSpace(input)
	switch strings.ToLower(s) {
	case "", "s", "skip", SkipLabel:
		return 0, true, nil
	}

	score, err = strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("score %q is not a number", s)
	}
	if score < MinScore || score > MaxScore {
		return 0, false, fmt.Errorf("%w: %d (want %d-%d)", ErrScoreRange, score, MinScore, MaxScore)
	}
	return score, false, nil
}

// ValidateDate checks that s is a DD.MM.YYYY date.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("date %q is not DD.MM.YYYY", s)
	}
	return nil
}

// Today formats now as a watched date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
