// Package api serves the AMM over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/amm/app"
	"github.com/paw-chain/amm/app/health"
	pairtypes "github.com/paw-chain/amm/x/pair/types"
	registrytypes "github.com/paw-chain/amm/x/registry/types"
	routertypes "github.com/paw-chain/amm/x/router/types"
	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// Server represents the API server
type Server struct {
	router  *gin.Engine
	app     *app.AMMApp
	config  *Config
	logger  log.Logger
	tokens  *TokenCache
	limiter *RateLimiter
	health  *health.Checker
	metrics *APIMetrics
	now     func() time.Time
}

// Config holds server configuration
type Config struct {
	Address         string
	CORSOrigins     []string
	RateLimitRPS    int
	RateLimitBurst  int
	RateLimitIPs    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// DefaultDeadline is added to the block time of requests that carry no
	// deadline.
	DefaultDeadline time.Duration
	TokenCacheSize  int
	Health          health.Config
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Address:         "127.0.0.1:1317",
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    50,
		RateLimitBurst:  100,
		RateLimitIPs:    10_000,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		DefaultDeadline: 20 * time.Minute,
		TokenCacheSize:  1024,
		Health:          health.DefaultConfig(),
	}
}

// NewServer creates a new API server over amm
func NewServer(logger log.Logger, amm *app.AMMApp, config *Config) (*Server, error) {
	if amm == nil {
		return nil, errors.New("api: app is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	tokens, err := NewTokenCache(config.TokenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token cache: %w", err)
	}

	var limiter *RateLimiter
	if config.RateLimitRPS > 0 {
		limiter, err = NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst, config.RateLimitIPs)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
		}
	}

	checker, err := health.NewChecker(logger, config.Health, amm)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize health checker: %w", err)
	}

	s := &Server{
		app:     amm,
		config:  config,
		logger:  logger.With("module", "api"),
		tokens:  tokens,
		limiter: limiter,
		health:  checker,
		metrics: NewAPIMetrics(),
		now:     time.Now,
	}
	s.setupRouter()
	return s, nil
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	s.router = gin.New()

	// order matters: recovery first, rate limiting before any handler work
	s.router.Use(gin.Recovery())
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestIDMiddleware())
	s.router.Use(TracingMiddleware())
	s.router.Use(s.LoggerMiddleware())
	s.router.Use(s.CORSMiddleware())
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.metrics))
	}

	s.health.RegisterRoutes(s.router)
	s.registerRoutes()
}

// Handler exposes the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.config.Address,
		Handler:        s.router,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// blockTime is the time the next block will carry. The wall clock is
// clamped so blocks never go back in time.
func (s *Server) blockTime() time.Time {
	t := s.now().UTC()
	if last := s.app.LastBlockTime(); t.Before(last) {
		return last
	}
	return t
}

// exec commits fn as the next block and returns the height it ran at.
func (s *Server) exec(blockTime time.Time, fn func(ctx sdk.Context) error) (int64, error) {
	var height int64
	_, err := s.app.Exec(blockTime, func(ctx sdk.Context) error {
		height = ctx.BlockHeight()
		return fn(ctx)
	})
	return height, err
}

// statusFor maps module errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *ValidationErrors
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrNotInitialized):
		return http.StatusServiceUnavailable
	case errorsmod.IsOf(err,
		routertypes.ErrPairNotFound, pairtypes.ErrPairNotFound, registrytypes.ErrPairNotFound,
		tokentypes.ErrUnknownToken, routertypes.ErrNoPendingFunds):
		return http.StatusNotFound
	case errorsmod.IsOf(err,
		routertypes.ErrNotAdmin, pairtypes.ErrUnauthorized, registrytypes.ErrUnauthorized,
		tokentypes.ErrUnauthorized):
		return http.StatusForbidden
	case errorsmod.IsOf(err, routertypes.ErrIncorrectState, routertypes.ErrPendingRefundOutstanding):
		return http.StatusConflict
	}
	if codespace, _, _ := errorsmod.ABCIInfo(err, false); codespace != errorsmod.UndefinedCodespace {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeError renders err with its module code.
func (s *Server) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error(), RequestID: c.GetString(requestIDKey)}
	if codespace, code, _ := errorsmod.ABCIInfo(err, false); codespace != errorsmod.UndefinedCodespace {
		resp.Code = fmt.Sprintf("%s/%d", codespace, code)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
		resp.Error = "internal error"
	}
	c.JSON(status, resp)
}
