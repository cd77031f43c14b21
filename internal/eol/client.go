package eol

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultFeedBaseURL = "https://endoflife.date/api"

// Client fetches lifecycle feeds for framework families. One fetch per
// family; a failed family never aborts the other families in a refresh.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a feed client for the given base URL. An empty base URL
// falls back to the public endoflife.date API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultFeedBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchFamily retrieves and decodes the feed for one framework family.
func (c *Client) FetchFamily(ctx context.Context, family string) ([]FeedEntry, error) {
	if strings.TrimSpace(family) == "" {
		return nil, fmt.Errorf("feed fetch: family is required")
	}

	url := fmt.Sprintf("%s/%s.json", c.baseURL, family)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed fetch for %s: %w", family, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed fetch for %s: %w", family, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("feed fetch for %s: unexpected status %d", family, resp.StatusCode)
	}

	var entries []FeedEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("feed decode for %s: %w", family, err)
	}
	return entries, nil
}
