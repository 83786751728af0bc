package marketplace

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/arunsworld/nursery"

	"cratedig/config"
)

// Aggregator fans a track query out to every configured provider concurrently
// and assembles whatever they return. Providers are independent: one failing,
// even repeatedly, only removes its own listing from the output.
type Aggregator struct {
	providers       []Provider
	retryAttempts   int
	retryBaseDelay  time.Duration
	providerTimeout time.Duration
}

// NewAggregator builds an aggregator over providers in registration order,
// with retry and timeout policy from configuration
func NewAggregator(providers ...Provider) *Aggregator {
	return &Aggregator{
		providers:       providers,
		retryAttempts:   config.Marketplace.RetryAttempts,
		retryBaseDelay:  config.Marketplace.RetryBaseDelay,
		providerTimeout: config.Marketplace.ProviderTimeout,
	}
}

// Providers returns the registered providers in registration order
func (a *Aggregator) Providers() []Provider {
	return a.providers
}

// Aggregate queries all providers for artist/title (plus remix when present)
// and waits for every one to settle. The result holds at most one listing per
// provider, ordered by registration order regardless of completion order.
// Providers that error out after their retry budget are logged and omitted;
// the aggregation itself never fails because of them.
func (a *Aggregator) Aggregate(ctx context.Context, artist, title, remix string) []Listing {
	query := strings.TrimSpace(title)
	if remix != "" {
		query = strings.TrimSpace(title + " " + remix)
	}

	// One slot per provider keeps the fan-in race-free and the output order
	// independent of network timing.
	results := make([]*Listing, len(a.providers))

	jobs := make([]nursery.ConcurrentJob, 0, len(a.providers))
	for i, provider := range a.providers {
		i, provider := i, provider
		jobs = append(jobs, func(_ context.Context, _ chan error) {
			// Each provider gets its own latency cap so the slowest
			// acceptable provider bounds the group, not a shared deadline.
			callCtx, cancel := context.WithTimeout(ctx, a.providerTimeout)
			defer cancel()

			listing, err := RunWithRetry(callCtx, func(ctx context.Context) (*Listing, error) {
				return provider.Search(ctx, artist, query)
			}, a.retryAttempts, a.retryBaseDelay)
			if err != nil {
				log.Printf("Marketplace: provider %s unavailable: %v", provider.Name(), err)
				return
			}
			results[i] = listing
		})
	}

	// Jobs report nothing on the error channel, so this settles all of them
	// without a fail-fast path.
	if err := nursery.RunConcurrently(jobs...); err != nil {
		log.Printf("Marketplace: aggregation error: %v", err)
	}

	listings := make([]Listing, 0, len(a.providers))
	for _, l := range results {
		if l != nil {
			listings = append(listings, *l)
		}
	}
	return listings
}
