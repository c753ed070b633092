// Package media turns TMDB payloads into the values the watch log works with
// and picks the canonical match for a legacy title.
package media

import (
	"fmt"

	"github.com/lepinkainen/watchlog/internal/tmdb"
)

// UnknownYear stands in for a missing release or first air date.
const UnknownYear = "????"

// Candidate is one normalized search result.
type Candidate struct {
	Title     string
	Year      string
	MediaType string
	ID        int
}

// Normalize converts a movie, TV or person search result into a Candidate.
// Missing fields degrade to empty strings or UnknownYear.
func Normalize(result tmdb.SearchResult) Candidate {
	title := result.Title
	if title == "" {
		title = result.Name
	}

	return Candidate{
		Title:     title,
		Year:      yearPrefix(result.ReleaseDate, result.FirstAirDate),
		MediaType: result.MediaType,
		ID:        result.ID,
	}
}

// NormalizeAll normalizes results, keeping their order.
func NormalizeAll(results []tmdb.SearchResult) []Candidate {
	candidates := make([]Candidate, len(results))
	for i, result := range results {
		candidates[i] = Normalize(result)
	}
	return candidates
}

// Selectable reports whether the candidate can be logged. People cannot.
func (c Candidate) Selectable() bool {
	return c.MediaType != tmdb.MediaTypePerson
}

// Label is the one-line text shown in the picker.
func (c Candidate) Label() string {
	return fmt.Sprintf("%s, %s, %s", c.Title, c.Year, c.MediaType)
}

func yearPrefix(dates ...string) string {
	for _, date := range dates {
		if date == "" {
			continue
		}
		if len(date) > 4 {
			return date[:4]
		}
		return date
	}
	return UnknownYear
}
