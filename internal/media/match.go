package media

import (
	"strconv"
)

// DefaultYearTolerance is how far apart two release years may be and still match.
const DefaultYearTolerance = 2

// Resolver selects the candidate matching a legacy row's year.
type Resolver struct {
	Tolerance int
}

// NewResolver returns a Resolver with the given year tolerance.
// A negative tolerance falls back to DefaultYearTolerance.
func NewResolver(tolerance int) Resolver {
	if tolerance < 0 {
		tolerance = DefaultYearTolerance
	}
	return Resolver{Tolerance: tolerance}
}

// Resolve returns the first selectable candidate whose year lies within the
// tolerance of targetYear. Only the 4-digit prefix of either year is compared.
// The boolean is false when nothing qualifies.
func (r Resolver) Resolve(candidates []Candidate, targetYear string) (Candidate, bool) {
	target, ok := parseYear(targetYear)
	if !ok {
		return Candidate{}, false
	}

	for _, c := range candidates {
		if !c.Selectable() {
			continue
		}
		if r.approxYear(c.Year, target) {
			return c, true
		}
	}
	return Candidate{}, false
}

func (r Resolver) approxYear(year string, target int) bool {
	if year == UnknownYear {
		return false
	}
	y, ok := parseYear(year)
	if !ok {
		return false
	}
	diff := y - target
	if diff < 0 {
		diff = -diff
	}
	return diff <= r.Tolerance
}

// FindTarget resolves with DefaultYearTolerance.
func FindTarget(candidates []Candidate, targetYear string) (Candidate, bool) {
	return NewResolver(DefaultYearTolerance).Resolve(candidates, targetYear)
}

func parseYear(s string) (int, bool) {
	if len(s) > 4 {
		s = s[:4]
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return year, true
}
