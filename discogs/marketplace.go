package discogs

import (
	"context"
	"fmt"
	"log"

	"cratedig/marketplace"
)

// preferredConditions ranks media conditions best-first when picking an offer
var preferredConditions = []string{
	"Mint (M)",
	"Near Mint (NM or M-)",
	"Very Good Plus (VG+)",
	"Very Good (VG)",
}

// MarketplaceProvider exposes Discogs as a marketplace provider: it searches
// releases for a track and resolves the best physical offer for the top hit.
type MarketplaceProvider struct {
	client *Client
}

func NewMarketplaceProvider(client *Client) *MarketplaceProvider {
	return &MarketplaceProvider{client: client}
}

func (p *MarketplaceProvider) Name() string {
	return "discogs"
}

// Search finds the top release for artist/title and picks its best listing.
// When the release exists but the listings sub-call fails, the provider
// degrades to a URL-only unavailable listing instead of reporting failure:
// a known release URL is still worth more than nothing.
func (p *MarketplaceProvider) Search(ctx context.Context, artist, title string) (*marketplace.Listing, error) {
	releases, err := p.client.SearchReleases(ctx, artist, title)
	if err != nil {
		return nil, err
	}
	if len(releases) == 0 {
		return nil, nil
	}

	release := releases[0]
	listings, err := p.client.ReleaseListings(ctx, release.ID)
	if err != nil {
		log.Printf("Discogs: listings fetch failed for release %d, returning release URL only: %v", release.ID, err)
		return &marketplace.Listing{
			ProviderName: p.Name(),
			URL:          p.client.ReleaseURL(release),
			Available:    false,
		}, nil
	}

	best := pickBestListing(listings)
	if best == nil {
		return &marketplace.Listing{
			ProviderName: p.Name(),
			URL:          p.client.ReleaseURL(release),
			Available:    false,
		}, nil
	}

	listingURL := best.URI
	if listingURL == "" {
		listingURL = p.client.ReleaseURL(release)
	}
	return &marketplace.Listing{
		ProviderName:      p.Name(),
		URL:               listingURL,
		Price:             fmt.Sprintf("%.2f %s", best.Price.Value, best.Price.Currency),
		ConditionOrFormat: best.Condition,
		Available:         true,
	}, nil
}

// pickBestListing returns the cheapest listing in the best condition that has
// offers, walking the preference ranking from Mint down to VG. When none of
// the preferred conditions is on sale it falls back to the cheapest listing
// with a positive price regardless of condition.
func pickBestListing(listings []ReleaseListing) *ReleaseListing {
	for _, condition := range preferredConditions {
		if best := cheapestWithCondition(listings, condition); best != nil {
			return best
		}
	}
	return cheapestWithCondition(listings, "")
}

// cheapestWithCondition finds the cheapest positive-priced listing matching
// condition; an empty condition matches everything
func cheapestWithCondition(listings []ReleaseListing, condition string) *ReleaseListing {
	var best *ReleaseListing
	for i := range listings {
		l := &listings[i]
		if l.Price.Value <= 0 {
			continue
		}
		if condition != "" && l.Condition != condition {
			continue
		}
		if best == nil || l.Price.Value < best.Price.Value {
			best = l
		}
	}
	return best
}
