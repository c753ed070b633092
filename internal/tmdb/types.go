package tmdb

// Media types returned by the multi search endpoint.
const (
	MediaTypeMovie  = "movie"
	MediaTypeTV     = "tv"
	MediaTypePerson = "person"
)

// SearchResult represents a single multi search result from TMDB.
// Movies carry Title/ReleaseDate, TV shows and people carry Name/FirstAirDate.
type SearchResult struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	OriginalLang string  `json:"original_language"`
}

// SearchPage is one page of multi search results.
type SearchPage struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Results      []SearchResult `json:"results"`
}

// HasNextPage reports whether TMDB has more pages after this one.
func (p SearchPage) HasNextPage() bool {
	return p.Page < p.TotalPages
}

// CrewMember is one entry of the credits.crew array.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Details holds the detail endpoint fields used to build a log row.
type Details struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
	LastAirDate  string `json:"last_air_date"`
	Credits      struct {
		Crew []CrewMember `json:"crew"`
	} `json:"credits"`
}
