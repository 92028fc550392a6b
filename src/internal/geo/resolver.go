// FILE: loglens/src/internal/geo/resolver.go
package geo

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"loglens/src/internal/core"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/lixenwraith/log"
	"golang.org/x/sync/singleflight"
)

// ResolverOptions bounds the resolver cache. Zero values keep every answer
// for the life of the process.
type ResolverOptions struct {
	CacheSize int
	CacheTTL  time.Duration
}

// Resolver memoizes location lookups per address. Concurrent requests for the
// same address share one provider round trip. Failed resolutions are not
// cached, so a later request retries.
type Resolver struct {
	primary  Provider
	fallback Provider
	cache    *expirable.LRU[string, core.GeoRecord]
	flights  singleflight.Group
	logger   *log.Logger

	// Statistics
	lookups     atomic.Uint64
	cacheHits   atomic.Uint64
	shared      atomic.Uint64
	primaryHits atomic.Uint64
	fallbacks   atomic.Uint64
	failures    atomic.Uint64
}

// ResolverStats reports resolver activity.
type ResolverStats struct {
	Lookups     uint64 `json:"lookups"`
	CacheHits   uint64 `json:"cache_hits"`
	Shared      uint64 `json:"shared"`
	PrimaryHits uint64 `json:"primary_hits"`
	Fallbacks   uint64 `json:"fallbacks"`
	Failures    uint64 `json:"failures"`
	Cached      int    `json:"cached"`
}

// NewResolver creates a resolver. Either provider may be nil.
func NewResolver(primary, fallback Provider, opts ResolverOptions, logger *log.Logger) *Resolver {
	size := opts.CacheSize
	if size < 0 {
		size = 0
	}
	return &Resolver{
		primary:  primary,
		fallback: fallback,
		cache:    expirable.NewLRU[string, core.GeoRecord](size, nil, opts.CacheTTL),
		logger:   logger,
	}
}

// Resolve returns the location of addr. Cancelling ctx releases this caller
// only; the shared lookup keeps running for other waiters.
func (r *Resolver) Resolve(ctx context.Context, addr string) (core.GeoRecord, error) {
	ip := net.ParseIP(strings.TrimSpace(addr))
	if ip == nil {
		return core.GeoRecord{}, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	key := ip.String()

	if rec, ok := r.cache.Get(key); ok {
		r.cacheHits.Add(1)
		return rec, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := r.flights.DoChan(key, func() (any, error) {
		// A flight that finished between the cache check and DoChan already stored its answer
		if rec, ok := r.cache.Get(key); ok {
			r.cacheHits.Add(1)
			return rec, nil
		}

		r.lookups.Add(1)
		rec, err := r.lookup(flightCtx, ip)
		if err != nil {
			r.failures.Add(1)
			return core.GeoRecord{}, err
		}
		r.cache.Add(key, rec)
		return rec, nil
	})

	select {
	case <-ctx.Done():
		return core.GeoRecord{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			r.shared.Add(1)
		}
		if res.Err != nil {
			return core.GeoRecord{}, res.Err
		}
		return res.Val.(core.GeoRecord), nil
	}
}

// lookup runs the provider chain: primary first, fallback when the primary
// fails or knows nothing.
func (r *Resolver) lookup(ctx context.Context, ip net.IP) (core.GeoRecord, error) {
	if r.primary != nil {
		rec, err := r.primary.Lookup(ctx, ip)
		if err == nil && !rec.IsEmpty() {
			r.primaryHits.Add(1)
			return rec, nil
		}

		if err != nil {
			r.logger.Warn("msg", "Primary geo provider failed",
				"component", "geo_resolver",
				"provider", r.primary.Name(),
				"ip", ip.String(),
				"error", err)
		} else {
			r.logger.Debug("msg", "Address not found in primary geo provider",
				"component", "geo_resolver",
				"provider", r.primary.Name(),
				"ip", ip.String())
		}
	}

	if r.fallback == nil {
		return core.GeoRecord{}, nil
	}

	r.fallbacks.Add(1)
	r.logger.Debug("msg", "Falling back to secondary geo provider",
		"component", "geo_resolver",
		"provider", r.fallback.Name(),
		"ip", ip.String())

	rec, err := r.fallback.Lookup(ctx, ip)
	if err != nil {
		return core.GeoRecord{}, fmt.Errorf("geo resolution for %s failed: %w", ip, err)
	}
	return rec, nil
}

// Forget drops a cached answer.
func (r *Resolver) Forget(addr string) {
	if ip := net.ParseIP(strings.TrimSpace(addr)); ip != nil {
		r.cache.Remove(ip.String())
	}
}

// GetStats returns the resolver counters.
func (r *Resolver) GetStats() ResolverStats {
	return ResolverStats{
		Lookups:     r.lookups.Load(),
		CacheHits:   r.cacheHits.Load(),
		Shared:      r.shared.Load(),
		PrimaryHits: r.primaryHits.Load(),
		Fallbacks:   r.fallbacks.Load(),
		Failures:    r.failures.Load(),
		Cached:      r.cache.Len(),
	}
}

// Close releases both providers.
func (r *Resolver) Close() error {
	var firstErr error
	for _, p := range []Provider{r.primary, r.fallback} {
		if p == nil {
			continue
		}
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
