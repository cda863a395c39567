package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// BreakerFetcher wraps a Source with per-host circuit breakers, so a dead
// mirror fails fast instead of timing out once per catalog entry.
type BreakerFetcher struct {
	source    Source
	threshold int64
	breakers  map[string]*circuit.Breaker
	mu        sync.RWMutex
}

// NewBreakerFetcher creates a circuit breaker wrapper that trips after
// threshold consecutive upstream failures on one host.
func NewBreakerFetcher(source Source, threshold int64) *BreakerFetcher {
	if threshold <= 0 {
		threshold = 5
	}
	return &BreakerFetcher{
		source:    source,
		threshold: threshold,
		breakers:  make(map[string]*circuit.Breaker),
	}
}

// getBreaker returns or creates the circuit breaker for host.
func (bf *BreakerFetcher) getBreaker(host string) *circuit.Breaker {
	bf.mu.RLock()
	breaker, exists := bf.breakers[host]
	bf.mu.RUnlock()

	if exists {
		return breaker
	}

	bf.mu.Lock()
	defer bf.mu.Unlock()

	if breaker, exists := bf.breakers[host]; exists {
		return breaker
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	breaker = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(bf.threshold),
	})

	bf.breakers[host] = breaker
	return breaker
}

// Fetch wraps the underlying source with circuit breaker logic. Responses
// such as 404 are passed through without counting against the host.
func (bf *BreakerFetcher) Fetch(ctx context.Context, fetchURL string) (*Artifact, error) {
	host := extractHost(fetchURL)
	breaker := bf.getBreaker(host)

	if !breaker.Ready() {
		return nil, &ConnectionError{
			URL: fetchURL,
			Err: fmt.Errorf("circuit breaker open for host %s: %w", host, ErrUpstreamDown),
		}
	}

	var artifact *Artifact
	var fetchErr error
	err := breaker.Call(func() error {
		artifact, fetchErr = bf.source.Fetch(ctx, fetchURL)
		if fetchErr != nil && countsAgainstHost(fetchErr) {
			return fetchErr
		}
		return nil
	}, 0)

	if fetchErr != nil {
		return nil, fetchErr
	}
	if err != nil {
		return nil, &ConnectionError{URL: fetchURL, Err: err}
	}
	return artifact, nil
}

func countsAgainstHost(err error) bool {
	return IsConnectivity(err) || errors.Is(err, ErrUpstreamDown) || errors.Is(err, ErrRateLimited)
}

// extractHost returns the breaker grouping key for a URL.
func extractHost(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		if len(rawURL) > 50 {
			return rawURL[:50]
		}
		return rawURL
	}
	return parsed.Host
}

// BreakerState returns the current state of the circuit breakers.
func (bf *BreakerFetcher) BreakerState() map[string]string {
	bf.mu.RLock()
	defer bf.mu.RUnlock()

	states := make(map[string]string)
	for host, breaker := range bf.breakers {
		if breaker.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}
