// Package health reports the health of a running AMM node.
//
// Three endpoints are served:
// - /health is a liveness check
// - /health/ready is the readiness check for load balancers
// - /health/detailed also runs the pair invariants
package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/paw-chain/amm/app"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Status    Status         `json:"status"`
	Message   string         `json:"message,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Metrics   map[string]any `json:"metrics,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// Source is the node state the checker inspects. *app.AMMApp implements it.
type Source interface {
	LastHeight() int64
	LastBlockTime() time.Time
	CircuitBreakerStatus() (app.CircuitBreakerStatus, error)
	CheckInvariants() error
}

// Config holds configuration for the health checker
type Config struct {
	// MaxBlockAge is how old the last block may be before the store is
	// reported degraded. Zero disables the check.
	MaxBlockAge time.Duration

	// CacheDuration is how long to cache health check results
	CacheDuration time.Duration

	Version string
}

// DefaultConfig returns the default health check configuration
func DefaultConfig() Config {
	return Config{
		MaxBlockAge:   0,
		CacheDuration: 5 * time.Second,
	}
}

// Checker performs health checks on the node
type Checker struct {
	logger log.Logger
	source Source
	cfg    Config
	now    func() time.Time

	mu           sync.RWMutex
	lastCheck    time.Time
	cachedHealth *HealthCheck
}

// NewChecker creates a new health checker
func NewChecker(logger log.Logger, cfg Config, source Source) (*Checker, error) {
	if source == nil {
		return nil, fmt.Errorf("health source is required")
	}
	if cfg.MaxBlockAge < 0 || cfg.CacheDuration < 0 {
		return nil, fmt.Errorf("durations must not be negative")
	}
	return &Checker{
		logger: logger.With("module", "health"),
		source: source,
		cfg:    cfg,
		now:    time.Now,
	}, nil
}

// Check performs a health check. Detailed checks also run the invariants
// and are never served from cache.
func (c *Checker) Check(ctx context.Context, detailed bool) (*HealthCheck, error) {
	if !detailed {
		if cached := c.cached(); cached != nil {
			return cached, nil
		}
	}

	health := &HealthCheck{
		Timestamp:  c.now(),
		Version:    c.cfg.Version,
		Components: make(map[string]ComponentHealth),
	}

	checks := map[string]func() ComponentHealth{
		"store":  c.checkStore,
		"router": c.checkRouter,
	}
	if detailed {
		checks["invariants"] = c.checkInvariants
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for name, fn := range checks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := fn()
			mu.Lock()
			health.Components[name] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	health.Status = calculateOverallStatus(health.Components)

	if !detailed {
		c.mu.Lock()
		c.lastCheck = c.now()
		c.cachedHealth = health
		c.mu.Unlock()
	}
	return health, nil
}

func (c *Checker) component(status Status, message string, metrics map[string]any) ComponentHealth {
	return ComponentHealth{Status: status, Message: message, Timestamp: c.now(), Metrics: metrics}
}

// checkStore verifies the chain has been initialised and is advancing.
func (c *Checker) checkStore() ComponentHealth {
	height := c.source.LastHeight()
	if height == 0 {
		return c.component(StatusUnhealthy, "chain not initialized", nil)
	}

	blockTime := c.source.LastBlockTime()
	metrics := map[string]any{
		"latest_block_height": height,
		"latest_block_time":   blockTime.Format(time.RFC3339),
	}
	if c.cfg.MaxBlockAge > 0 {
		age := c.now().Sub(blockTime)
		metrics["block_age_seconds"] = age.Seconds()
		if age > c.cfg.MaxBlockAge {
			return c.component(StatusDegraded, fmt.Sprintf("last block is %s old", age.Round(time.Second)), metrics)
		}
	}
	return c.component(StatusHealthy, "store is committed", metrics)
}

// checkRouter reports a paused router as degraded and a leaked reentrancy
// lock as unhealthy.
func (c *Checker) checkRouter() ComponentHealth {
	status, err := c.source.CircuitBreakerStatus()
	if err != nil {
		return c.component(StatusUnhealthy, fmt.Sprintf("router status: %v", err), nil)
	}
	metrics := map[string]any{
		"paused":        status.RouterPaused,
		"locked":        status.RouterLocked,
		"pairs":         status.Pairs,
		"pending_users": status.PendingUsers,
	}
	switch {
	case status.RouterLocked:
		return c.component(StatusUnhealthy, "router lock held between blocks", metrics)
	case status.RouterPaused:
		return c.component(StatusDegraded, "router is paused", metrics)
	default:
		return c.component(StatusHealthy, "router is accepting operations", metrics)
	}
}

func (c *Checker) checkInvariants() ComponentHealth {
	if err := c.source.CheckInvariants(); err != nil {
		return c.component(StatusUnhealthy, err.Error(), nil)
	}
	return c.component(StatusHealthy, "pair invariants hold", nil)
}

// calculateOverallStatus determines the overall health status based on component statuses
func calculateOverallStatus(components map[string]ComponentHealth) Status {
	hasDegraded := false
	for _, component := range components {
		switch component.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			hasDegraded = true
		}
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

func (c *Checker) cached() *HealthCheck {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cachedHealth == nil || c.now().Sub(c.lastCheck) >= c.cfg.CacheDuration {
		return nil
	}
	return c.cachedHealth
}

// RegisterRoutes registers health check endpoints on r
func (c *Checker) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", c.handleHealth)
	r.GET("/health/ready", c.handleHealthReady)
	r.GET("/health/detailed", c.handleHealthDetailed)
}

func (c *Checker) handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": c.now().Format(time.RFC3339),
	})
}

func (c *Checker) handleHealthReady(ctx *gin.Context) {
	c.respond(ctx, false)
}

func (c *Checker) handleHealthDetailed(ctx *gin.Context) {
	c.respond(ctx, true)
}

func (c *Checker) respond(ctx *gin.Context, detailed bool) {
	health, err := c.Check(ctx.Request.Context(), detailed)
	if err != nil {
		c.logger.Error("health check failed", "detailed", detailed, "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": err.Error()})
		return
	}

	// degraded is still ready
	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	ctx.JSON(statusCode, health)
}
