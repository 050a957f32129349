package api

import (
	"net/http"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	routertypes "github.com/paw-chain/amm/x/router/types"
)

func (s *Server) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: c.GetString(requestIDKey)})
}

func pathStrings(path []sdk.AccAddress) []string {
	out := make([]string, len(path))
	for i, p := range path {
		out[i] = p.String()
	}
	return out
}

// handleQuoteAmountsOut quotes every hop of an exact-input swap
func (s *Server) handleQuoteAmountsOut(c *gin.Context) {
	var q AmountsOutQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badRequest(c, err)
		return
	}
	var v ValidationErrors
	amountIn := v.amount("amount_in", q.AmountIn, true)
	path := v.path("path", splitPath(q.Path))
	if err := v.err(); err != nil {
		s.writeError(c, err)
		return
	}

	var amounts []math.Int
	err := s.app.Query(func(ctx sdk.Context) error {
		var err error
		amounts, err = s.app.RouterKeeper.GetAmountsOut(ctx, amountIn, path)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, AmountsResponse{Path: pathStrings(path), Amounts: amountStrings(amounts)})
}

// handleQuoteAmountsIn quotes every hop of an exact-output swap
func (s *Server) handleQuoteAmountsIn(c *gin.Context) {
	var q AmountsInQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badRequest(c, err)
		return
	}
	var v ValidationErrors
	amountOut := v.amount("amount_out", q.AmountOut, true)
	path := v.path("path", splitPath(q.Path))
	if err := v.err(); err != nil {
		s.writeError(c, err)
		return
	}

	var amounts []math.Int
	err := s.app.Query(func(ctx sdk.Context) error {
		var err error
		amounts, err = s.app.RouterKeeper.GetAmountsIn(ctx, amountOut, path)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, AmountsResponse{Path: pathStrings(path), Amounts: amountStrings(amounts)})
}

// handleSwapExactIn executes an exact-input swap
func (s *Server) handleSwapExactIn(c *gin.Context) {
	var req SwapExactInRequest
	if err := bindJSON(c, &req); err != nil {
		s.badRequest(c, err)
		return
	}
	blockTime := s.blockTime()
	sender, in, err := req.toRouter(blockTime, s.config.DefaultDeadline)
	if err != nil {
		s.writeError(c, err)
		return
	}

	swap := s.app.RouterKeeper.SwapExactTokensForTokens
	switch {
	case req.NativeIn:
		swap = s.app.RouterKeeper.SwapExactNativeForTokens
	case req.NativeOut:
		swap = s.app.RouterKeeper.SwapExactTokensForNative
	}

	var amounts []math.Int
	height, err := s.exec(blockTime, func(ctx sdk.Context) error {
		var err error
		amounts, err = swap(ctx, sender, in)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SwapResponse{Amounts: amountStrings(amounts), Height: height})
}

// handleSwapExactOut executes an exact-output swap
func (s *Server) handleSwapExactOut(c *gin.Context) {
	var req SwapExactOutRequest
	if err := bindJSON(c, &req); err != nil {
		s.badRequest(c, err)
		return
	}
	blockTime := s.blockTime()
	sender, in, err := req.toRouter(blockTime, s.config.DefaultDeadline)
	if err != nil {
		s.writeError(c, err)
		return
	}

	swap := s.app.RouterKeeper.SwapTokensForExactTokens
	switch {
	case req.NativeIn:
		swap = s.app.RouterKeeper.SwapNativeForExactTokens
	case req.NativeOut:
		swap = s.app.RouterKeeper.SwapTokensForExactNative
	}

	var amounts []math.Int
	height, err := s.exec(blockTime, func(ctx sdk.Context) error {
		var err error
		amounts, err = swap(ctx, sender, in)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SwapResponse{Amounts: amountStrings(amounts), Height: height})
}

// handleGetRouterConfig returns the router configuration
func (s *Server) handleGetRouterConfig(c *gin.Context) {
	var resp RouterConfigResponse
	err := s.app.Query(func(ctx sdk.Context) error {
		cfg, err := s.app.RouterKeeper.GetConfig(ctx)
		if err != nil {
			return err
		}
		resp = RouterConfigResponse{
			Factory:       cfg.Factory.String(),
			NativeWrapper: cfg.NativeWrapper.String(),
			Admin:         cfg.Admin.String(),
			SwapFeeBps:    cfg.SwapFeeBps,
			Paused:        s.app.RouterKeeper.IsPaused(ctx),
		}
		if !cfg.FeeRecipient.Empty() {
			resp.FeeRecipient = cfg.FeeRecipient.String()
		}
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetPendingRefunds returns what the router holds for a user
func (s *Server) handleGetPendingRefunds(c *gin.Context) {
	var v ValidationErrors
	user := v.address("user", c.Param("user"), true)
	if err := v.err(); err != nil {
		s.writeError(c, err)
		return
	}

	var refunds []routertypes.PendingRefund
	err := s.app.Query(func(ctx sdk.Context) error {
		var err error
		refunds, err = s.app.RouterKeeper.GetPendingRefunds(ctx, user)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	views := make([]PendingRefundView, 0, len(refunds))
	for _, r := range refunds {
		views = append(views, PendingRefundView{Asset: r.Asset.String(), Amount: r.Amount.String(), Refunded: r.Refunded})
	}
	c.JSON(http.StatusOK, gin.H{"user": user.String(), "refunds": views})
}

// handleGetLiquidityJoins returns the pairs a user provided liquidity to
func (s *Server) handleGetLiquidityJoins(c *gin.Context) {
	var v ValidationErrors
	user := v.address("user", c.Param("user"), true)
	if err := v.err(); err != nil {
		s.writeError(c, err)
		return
	}

	var joins []routertypes.LiquidityJoin
	err := s.app.Query(func(ctx sdk.Context) error {
		var err error
		joins, err = s.app.RouterKeeper.GetLiquidityJoins(ctx, user)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	views := make([]LiquidityJoinView, 0, len(joins))
	for _, j := range joins {
		views = append(views, LiquidityJoinView{TokenA: j.TokenA.String(), TokenB: j.TokenB.String(), Pair: j.Pair.String()})
	}
	c.JSON(http.StatusOK, gin.H{"user": user.String(), "joins": views})
}
