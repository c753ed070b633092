package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnName converts a 1-based column index to its letter name (1 -> A, 27 -> AA).
func ColumnName(col int) string {
	if col < 1 {
		return ""
	}
	var name []byte
	for col > 0 {
		col--
		name = append([]byte{byte('A' + col%26)}, name...)
		col /= 26
	}
	return string(name)
}

// A1 returns the A1 notation of a cell.
func A1(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row)
}

// Range is a rectangular block of cells, inclusive on both ends.
type Range struct {
	From Cell
	To   Cell
}

// ParseA1Range parses "B2" or "A1:J3". Open ranges ("A:C", "2:2") are not supported.
func ParseA1Range(s string) (Range, error) {
	if i := strings.LastIndex(s, "!"); i >= 0 {
		s = s[i+1:]
	}
	start, end, found := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), ":")
	from, err := parseA1Cell(start)
	if err != nil {
		return Range{}, err
	}
	if !found {
		return Range{From: from, To: from}, nil
	}
	to, err := parseA1Cell(end)
	if err != nil {
		return Range{}, err
	}
	if to.Row < from.Row || to.Col < from.Col {
		return Range{}, fmt.Errorf("range %q is inverted", s)
	}
	return Range{From: from, To: to}, nil
}

func parseA1Cell(s string) (Cell, error) {
	i := 0
	col := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		col = col*26 + int(s[i]-'A'+1)
		i++
	}
	if i == 0 || i == len(s) {
		return Cell{}, fmt.Errorf("invalid cell reference %q", s)
	}
	row, err := strconv.Atoi(s[i:])
	if err != nil || row < 1 {
		return Cell{}, fmt.Errorf("invalid cell reference %q", s)
	}
	return Cell{Row: row, Col: col}, nil
}
