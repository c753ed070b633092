package media

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/watchlog/internal/tmdb"
)

const (
	// SpanSeparator joins the first and last air year of a TV show.
	SpanSeparator = "—"

	// MarkerPrefix starts every id-marker cell.
	MarkerPrefix = "id-"
)

// creatorJobs maps a media type to the crew job credited as its creator.
var creatorJobs = map[string]string{
	tmdb.MediaTypeMovie: "Director",
	tmdb.MediaTypeTV:    "Executive Producer",
}

// ResolvedRecord is the detail view of a title as it is written to the log.
type ResolvedRecord struct {
	Title      string
	Creators   string
	DateSpan   string
	ExternalID int
	MediaType  string
}

// BuildRecord derives a ResolvedRecord from a detail response.
func BuildRecord(details tmdb.Details, mediaType string) ResolvedRecord {
	title := details.Title
	if title == "" {
		title = details.Name
	}

	return ResolvedRecord{
		Title:      title,
		Creators:   creators(details.Credits.Crew, mediaType),
		DateSpan:   dateSpan(details, mediaType),
		ExternalID: details.ID,
		MediaType:  mediaType,
	}
}

// Marker returns the id-marker identifying the record's row.
func (r ResolvedRecord) Marker() string {
	return IDMarker(r.ExternalID)
}

// IDMarker formats an id-marker. A zero id yields the bare prefix, which is
// what unresolved rows carry.
func IDMarker(id int) string {
	if id == 0 {
		return MarkerPrefix
	}
	return fmt.Sprintf("%s%d", MarkerPrefix, id)
}

func creators(crew []tmdb.CrewMember, mediaType string) string {
	job, ok := creatorJobs[mediaType]
	if !ok {
		return ""
	}

	names := make([]string, 0, len(crew))
	for _, member := range crew {
		if member.Job == job {
			names = append(names, member.Name)
		}
	}
	return strings.Join(names, ", ")
}

func dateSpan(details tmdb.Details, mediaType string) string {
	if mediaType == tmdb.MediaTypeTV {
		return yearPrefix(details.FirstAirDate) + SpanSeparator + yearPrefix(details.LastAirDate)
	}
	return yearPrefix(details.ReleaseDate)
}
