package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"cratedig/config"
)

const apiBaseURL = "https://www.googleapis.com/youtube/v3"

// VideoItem is one entry of a playlist as returned by the listing API
type VideoItem struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PlaylistClient lists the videos of a playlist. The pipeline only depends on
// this interface; the API-backed implementation below is swapped out in tests.
type PlaylistClient interface {
	PlaylistItems(ctx context.Context, playlistID string) ([]VideoItem, error)
}

// Client fetches playlist items through the YouTube Data API v3
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewClient(apiKey string) *Client {
	if apiKey == "" {
		apiKey = config.YouTube.APIKey
	}
	return &Client{
		httpClient: config.YouTubeClient(),
		apiKey:     apiKey,
		baseURL:    apiBaseURL,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a fake server
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			ResourceID  struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

// PlaylistItems returns every video of a playlist in playlist order,
// following nextPageToken up to the configured page cap
func (c *Client) PlaylistItems(ctx context.Context, playlistID string) ([]VideoItem, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("YouTube API key not configured")
	}

	var items []VideoItem
	pageToken := ""

	for page := 0; page < config.YouTube.MaxPages; page++ {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(config.YouTube.PageSize))
		params.Set("key", c.apiKey)
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/playlistItems?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("playlist items request failed: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("YouTube API error: %d - %s", resp.StatusCode, string(body))
		}

		var parsed playlistItemsResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to decode playlist items: %w", err)
		}
		resp.Body.Close()

		for _, item := range parsed.Items {
			items = append(items, VideoItem{
				VideoID:     item.Snippet.ResourceID.VideoID,
				Title:       item.Snippet.Title,
				Description: item.Snippet.Description,
			})
		}

		if parsed.NextPageToken == "" {
			break
		}
		pageToken = parsed.NextPageToken
	}

	return items, nil
}

var playlistIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{10,64}$`)

// ParsePlaylistID extracts the playlist id from a playlist URL, or validates
// a bare id. Anything else is rejected as malformed input.
func ParsePlaylistID(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty playlist reference")
	}

	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		id := u.Query().Get("list")
		if id == "" || !playlistIDPattern.MatchString(id) {
			return "", fmt.Errorf("no playlist id in URL %q", raw)
		}
		return id, nil
	}

	if playlistIDPattern.MatchString(raw) {
		return raw, nil
	}
	return "", fmt.Errorf("malformed playlist reference %q", raw)
}
