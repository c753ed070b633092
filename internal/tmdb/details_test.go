package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDetails_Movie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/27205", r.URL.Path)
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		assert.NotEmpty(t, r.URL.Query().Get("api_key"))

		response := map[string]any{
			"id":           27205,
			"title":        "Inception",
			"release_date": "2010-07-15",
			"credits": map[string]any{
				"crew": []map[string]any{
					{"name": "Christopher Nolan", "job": "Director"},
					{"name": "Emma Thomas", "job": "Producer"},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	details, err := client.GetDetails(context.Background(), MediaTypeMovie, 27205)
	require.NoError(t, err)
	assert.Equal(t, 27205, details.ID)
	assert.Equal(t, "Inception", details.Title)
	assert.Equal(t, "2010-07-15", details.ReleaseDate)
	require.Len(t, details.Credits.Crew, 2)
	assert.Equal(t, CrewMember{Name: "Christopher Nolan", Job: "Director"}, details.Credits.Crew[0])
}

func TestGetDetails_TV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/1396", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": 1396,
			"name": "Breaking Bad",
			"first_air_date": "2008-01-20",
			"last_air_date": "2013-09-29",
			"credits": {"crew": [{"name": "Vince Gilligan", "job": "Executive Producer"}]}
		}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	details, err := client.GetDetails(context.Background(), MediaTypeTV, 1396)
	require.NoError(t, err)
	assert.Equal(t, "Breaking Bad", details.Name)
	assert.Equal(t, "2013-09-29", details.LastAirDate)
	require.Len(t, details.Credits.Crew, 1)
}

func TestGetDetails_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code": 34, "status_message": "The resource you requested could not be found."}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	_, err := client.GetDetails(context.Background(), MediaTypeMovie, 999999)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestGetDetails_RejectsPerson(t *testing.T) {
	doer := &failingDoer{}
	client := NewClient("key", WithHTTPClient(doer))

	_, err := client.GetDetails(context.Background(), MediaTypePerson, 525)
	require.ErrorIs(t, err, ErrInvalidMediaType)
	assert.Zero(t, doer.calls)
}
