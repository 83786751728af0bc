package marketplace

import (
	"context"
	"net/url"
	"strings"
)

// DigitalStoreProvider covers stores with no public search API. It builds a
// deterministic search URL for the query and leaves price resolution to the
// user, so its listings are never marked available. It exists to keep the
// provider contract and result shape uniform across stores.
type DigitalStoreProvider struct {
	name    string
	baseURL string
	param   string
}

// NewBeatportProvider returns a search-link provider for Beatport
func NewBeatportProvider() *DigitalStoreProvider {
	return &DigitalStoreProvider{name: "beatport", baseURL: "https://www.beatport.com/search", param: "q"}
}

// NewBandcampProvider returns a search-link provider for Bandcamp
func NewBandcampProvider() *DigitalStoreProvider {
	return &DigitalStoreProvider{name: "bandcamp", baseURL: "https://bandcamp.com/search", param: "q"}
}

// NewJunoDownloadProvider returns a search-link provider for Juno Download
func NewJunoDownloadProvider() *DigitalStoreProvider {
	return &DigitalStoreProvider{name: "junodownload", baseURL: "https://www.junodownload.com/search/", param: "q[all][]"}
}

func (p *DigitalStoreProvider) Name() string {
	return p.name
}

// Search never fails and never resolves a price: it returns a search URL for
// the store, or nil when there is nothing to search for.
func (p *DigitalStoreProvider) Search(_ context.Context, artist, title string) (*Listing, error) {
	query := strings.TrimSpace(strings.TrimSpace(artist) + " " + strings.TrimSpace(title))
	if query == "" {
		return nil, nil
	}

	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set(p.param, query)
	u.RawQuery = q.Encode()

	return &Listing{
		ProviderName: p.name,
		URL:          u.String(),
		Available:    false,
	}, nil
}
