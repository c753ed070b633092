package media

import (
	"testing"

	"github.com/lepinkainen/watchlog/internal/tmdb"
	"github.com/stretchr/testify/assert"
)

func details(id int, title, name string, crew ...tmdb.CrewMember) tmdb.Details {
	d := tmdb.Details{ID: id, Title: title, Name: name}
	d.Credits.Crew = crew
	return d
}

func TestBuildRecordMovie(t *testing.T) {
	d := details(27205, "Inception", "",
		tmdb.CrewMember{Name: "Christopher Nolan", Job: "Director"},
		tmdb.CrewMember{Name: "Emma Thomas", Job: "Producer"},
		tmdb.CrewMember{Name: "Someone Else", Job: "Director"},
	)
	d.ReleaseDate = "2010-07-15"

	rec := BuildRecord(d, tmdb.MediaTypeMovie)

	assert.Equal(t, ResolvedRecord{
		Title:      "Inception",
		Creators:   "Christopher Nolan, Someone Else",
		DateSpan:   "2010",
		ExternalID: 27205,
		MediaType:  "movie",
	}, rec)
	assert.Equal(t, "id-27205", rec.Marker())
}

func TestBuildRecordMovieWithoutReleaseDate(t *testing.T) {
	rec := BuildRecord(details(1, "Untitled", ""), tmdb.MediaTypeMovie)
	assert.Equal(t, UnknownYear, rec.DateSpan)
	assert.Empty(t, rec.Creators)
}

func TestBuildRecordTV(t *testing.T) {
	d := details(1396, "", "Breaking Bad",
		tmdb.CrewMember{Name: "Vince Gilligan", Job: "Executive Producer"},
		tmdb.CrewMember{Name: "Michelle MacLaren", Job: "Director"},
	)
	d.FirstAirDate = "2008-01-20"
	d.LastAirDate = "2013-09-29"

	rec := BuildRecord(d, tmdb.MediaTypeTV)

	assert.Equal(t, "Breaking Bad", rec.Title)
	assert.Equal(t, "Vince Gilligan", rec.Creators)
	assert.Equal(t, "2008—2013", rec.DateSpan)
}

func TestBuildRecordTVMissingEnd(t *testing.T) {
	d := details(2, "", "Ongoing")
	d.FirstAirDate = "2021-03-01"

	assert.Equal(t, "2021—????", BuildRecord(d, tmdb.MediaTypeTV).DateSpan)
}

func TestIDMarker(t *testing.T) {
	assert.Equal(t, "id-42", IDMarker(42))
	assert.Equal(t, "id-", IDMarker(0))
}
