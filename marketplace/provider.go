package marketplace

import (
	"context"
)

// Listing is one marketplace offer for a track. Available is true only when a
// concrete price or format was resolved; search-link-only providers leave it
// false and populate just the URL.
type Listing struct {
	ProviderName      string `json:"provider_name"`
	URL               string `json:"url,omitempty"`
	Price             string `json:"price,omitempty"`
	ConditionOrFormat string `json:"condition_or_format,omitempty"`
	Available         bool   `json:"available"`
}

// Provider is a pluggable marketplace backend. Search returns nil when the
// provider has no offer for the query; a non-nil error means the provider
// itself is unavailable.
type Provider interface {
	Name() string
	Search(ctx context.Context, artist, title string) (*Listing, error)
}
