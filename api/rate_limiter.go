package api

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per client. Buckets live in an LRU so
// the set of tracked clients stays bounded.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	clients *lru.Cache[string, *rate.Limiter]
}

// NewRateLimiter allows rps requests per second with bursts of burst for up
// to maxClients distinct clients.
func NewRateLimiter(rps, burst, maxClients int) (*RateLimiter, error) {
	if rps <= 0 {
		return nil, fmt.Errorf("rps must be positive, got %d", rps)
	}
	if burst < rps {
		burst = rps
	}
	if maxClients <= 0 {
		maxClients = 10_000
	}
	clients, err := lru.New[string, *rate.Limiter](maxClients)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{rps: rate.Limit(rps), burst: burst, clients: clients}, nil
}

// Allow consumes one token from key's bucket.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.clients.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.clients.Add(key, limiter)
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// Tracked is the number of clients with a live bucket.
func (l *RateLimiter) Tracked() int {
	return l.clients.Len()
}
