package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"cratedig/config"
)

const (
	APIURL  = "https://api.discogs.com"
	SiteURL = "https://www.discogs.com"
)

// Client is a minimal Discogs REST client covering release search and
// marketplace listings. Authentication is a personal access token
// (DISCOGS_TOKEN); without one the client still works under the smaller
// anonymous rate window.
type Client struct {
	HTTPClient  *http.Client
	RateLimiter *RateLimiter
	Token       string
	baseURL     string
}

func NewClient(token string) *Client {
	if token == "" {
		token = os.Getenv("DISCOGS_TOKEN")
	}
	return &Client{
		HTTPClient:  config.DiscogsClient(),
		RateLimiter: NewRateLimiter(),
		Token:       token,
		baseURL:     APIURL,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a fake server
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

func (c *Client) IsAuthenticated() bool {
	return c.Token != ""
}

// ReleaseResult is one release from the database search endpoint
type ReleaseResult struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	URI     string   `json:"uri"`
	Year    string   `json:"year"`
	Country string   `json:"country"`
	Format  []string `json:"format"`
}

type searchResponse struct {
	Results []ReleaseResult `json:"results"`
}

// ListingPrice is the price of a marketplace listing
type ListingPrice struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

// ReleaseListing is one marketplace offer for a release
type ReleaseListing struct {
	ID        int          `json:"id"`
	Condition string       `json:"condition"`
	Price     ListingPrice `json:"price"`
	URI       string       `json:"uri"`
}

type listingsResponse struct {
	Listings []ReleaseListing `json:"listings"`
}

// SearchReleases queries the release database for artist + track
func (c *Client) SearchReleases(ctx context.Context, artist, title string) ([]ReleaseResult, error) {
	params := url.Values{}
	params.Set("type", "release")
	params.Set("artist", artist)
	params.Set("track", title)

	resp, err := c.get(ctx, "/database/search?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return parsed.Results, nil
}

// ReleaseListings fetches the current marketplace listings for a release
func (c *Client) ReleaseListings(ctx context.Context, releaseID int) ([]ReleaseListing, error) {
	resp, err := c.get(ctx, "/marketplace/listings?release_id="+strconv.Itoa(releaseID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed listingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode listings response: %w", err)
	}
	return parsed.Listings, nil
}

// ReleaseURL returns the public site URL for a release
func (c *Client) ReleaseURL(release ReleaseResult) string {
	if release.URI != "" {
		return SiteURL + release.URI
	}
	return fmt.Sprintf("%s/release/%d", SiteURL, release.ID)
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	if err := c.RateLimiter.Wait(ctx, c.IsAuthenticated()); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Cratedig/1.0 +https://github.com/cratedig/cratedig")
	if c.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Discogs token=%s", c.Token))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.RateLimiter.UpdateFromHeaders(resp)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("Discogs API error: %d - %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
