package sheet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type fakeGoogle struct {
	mu       sync.Mutex
	requests []recordedRequest
	values   [][]string
}

func (f *fakeGoogle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/files"):
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]any{{"id": "doc-1", "name": "watched"}},
		})
	case strings.HasSuffix(r.URL.Path, ":append"):
		_ = json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": "doc-1"})
	case strings.Contains(r.URL.Path, "/values/") && r.Method == http.MethodPut:
		_ = json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": "doc-1", "updatedCells": 1})
	case strings.Contains(r.URL.Path, "/values/"):
		_ = json.NewEncoder(w).Encode(map[string]any{"values": f.values})
	case strings.HasSuffix(r.URL.Path, "/spreadsheets/doc-1"):
		_ = json.NewEncoder(w).Encode(map[string]any{
			"spreadsheetId": "doc-1",
			"sheets":        []map[string]any{{"properties": map[string]any{"title": "Sheet1"}}},
		})
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeGoogle) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func openGoogleSheet(t *testing.T, fake *fakeGoogle) Sheet {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	opener, err := NewGoogleOpener(context.Background(),
		option.WithHTTPClient(server.Client()),
		option.WithEndpoint(server.URL+"/"),
	)
	require.NoError(t, err)

	s, err := opener.Open(context.Background(), "watched")
	require.NoError(t, err)
	return s
}

func TestGoogleOpenAndFind(t *testing.T) {
	fake := &fakeGoogle{values: [][]string{
		{"Title", "Creators", "Years", "ID"},
		{"Inception", "Christopher Nolan", "2010", "id-27205"},
	}}
	s := openGoogleSheet(t, fake)

	cell, err := s.Find(context.Background(), "id-27205")
	require.NoError(t, err)
	assert.Equal(t, Cell{Row: 2, Col: 4}, cell)

	_, err = s.Find(context.Background(), "id-1")
	require.ErrorIs(t, err, ErrCellNotFound)
}

func TestGoogleRowValuesTrimsTrailingBlanks(t *testing.T) {
	fake := &fakeGoogle{values: [][]string{{"Inception", "", "2010", "", ""}}}
	s := openGoogleSheet(t, fake)

	row, err := s.RowValues(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inception", "", "2010"}, row)
	assert.Contains(t, fake.last().Path, "'Sheet1'!7:7")
}

func TestGoogleWritesUseUserEnteredValues(t *testing.T) {
	fake := &fakeGoogle{}
	s := openGoogleSheet(t, fake)

	require.NoError(t, s.UpdateCell(context.Background(), 3, 5, "8"))
	update := fake.last()
	assert.Equal(t, http.MethodPut, update.Method)
	assert.Contains(t, update.Path, "'Sheet1'!E3")
	assert.Contains(t, update.Query, "valueInputOption=USER_ENTERED")
	assert.Contains(t, update.Body, `"8"`)

	require.NoError(t, s.AppendRow(context.Background(), []string{"Inception", "TRUE"}))
	appendReq := fake.last()
	assert.Equal(t, http.MethodPost, appendReq.Method)
	assert.Contains(t, appendReq.Query, "insertDataOption=INSERT_ROWS")
	assert.Contains(t, appendReq.Body, `"Inception"`)
}
