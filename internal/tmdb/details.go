package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

// GetDetails fetches a movie or TV show with its credits appended.
func (c *Client) GetDetails(ctx context.Context, mediaType string, id int) (Details, error) {
	if mediaType != MediaTypeMovie && mediaType != MediaTypeTV {
		return Details{}, fmt.Errorf("%w: %q", ErrInvalidMediaType, mediaType)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("append_to_response", "credits")
	endpoint := fmt.Sprintf("%s/%s/%d?%s", c.baseURL, mediaType, id, params.Encode())

	var details Details
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return Details{}, fmt.Errorf("details %s/%d: %w", mediaType, id, err)
	}
	return details, nil
}
