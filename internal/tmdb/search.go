package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchMulti performs a multi-search on TMDB for movies, TV shows and people.
// Results are returned in API order without filtering.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (SearchPage, error) {
	if page <= 0 {
		page = 1
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(page))
	params.Set("query", query)

	endpoint := fmt.Sprintf("%s/search/multi?%s", c.baseURL, params.Encode())

	var response SearchPage
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return SearchPage{}, fmt.Errorf("search %q page %d: %w", query, page, err)
	}
	if response.Page == 0 {
		response.Page = page
	}

	return response, nil
}
