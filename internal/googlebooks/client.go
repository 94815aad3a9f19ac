package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"bookshelf/internal/logger"
)

const volumesPath = "/books/v1/volumes"

// Client looks up book metadata in the Google Books volumes API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *logger.Logger
}

// NewClient builds a client. A nil httpClient means a plain &http.Client{}.
func NewClient(httpClient *http.Client, baseURL, apiKey string, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		log:        log,
	}
}

// volumesResponse matches the subset of /books/v1/volumes we read.
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title      string `json:"title"`
			ImageLinks struct {
				SmallThumbnail string `json:"smallThumbnail"`
				Thumbnail      string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// LookupCover returns the thumbnail URL of the first search hit for title and
// author, or "" when the lookup fails or finds nothing. It never returns an error.
func (c *Client) LookupCover(ctx context.Context, title, author string) string {
	var res volumesResponse
	if err := c.get(ctx, c.searchURL(title, author), &res); err != nil {
		c.log.Warnw("googlebooks_lookup_failed", "title", title, "author", author, "err", err)
		return ""
	}
	if len(res.Items) == 0 {
		c.log.Debugw("googlebooks_no_match", "title", title, "author", author)
		return ""
	}
	return res.Items[0].VolumeInfo.ImageLinks.Thumbnail
}

func (c *Client) searchURL(title, author string) string {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("intitle:%s+inauthor:%s", title, author))
	q.Set("maxResults", "1")
	q.Set("key", c.apiKey)
	return c.baseURL + volumesPath + "?" + q.Encode()
}

// get issues a single GET and decodes a 200 JSON body into target. No retries.
func (c *Client) get(ctx context.Context, u string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
