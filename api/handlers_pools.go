package api

import (
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	pairtypes "github.com/paw-chain/amm/x/pair/types"
	routertypes "github.com/paw-chain/amm/x/router/types"
)

const defaultPairsLimit = 100

// pairView resolves both tokens through the cache.
func (s *Server) pairView(ctx sdk.Context, p pairtypes.Pair) (PairView, error) {
	token0, err := s.tokens.Get(ctx, s.app.TokenKeeper, p.Token0)
	if err != nil {
		return PairView{}, err
	}
	token1, err := s.tokens.Get(ctx, s.app.TokenKeeper, p.Token1)
	if err != nil {
		return PairView{}, err
	}
	return PairView{
		Address:            p.Address.String(),
		Token0:             token0,
		Token1:             token1,
		LPName:             p.Name,
		LPSymbol:           p.Symbol,
		LPDecimals:         p.Decimals,
		Reserve0:           p.Reserve0.String(),
		Reserve1:           p.Reserve1.String(),
		TotalSupply:        p.TotalSupply.String(),
		BlockTimestampLast: p.BlockTimestampLast,
	}, nil
}

// handleGetPairs returns a page of pairs
func (s *Server) handleGetPairs(c *gin.Context) {
	var q PairsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: c.GetString(requestIDKey)})
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultPairsLimit
	}

	resp := PairsResponse{Pairs: []PairView{}, Offset: q.Offset, Limit: q.Limit}
	err := s.app.Query(func(ctx sdk.Context) error {
		pairs, err := s.app.PairKeeper.GetAllPairs(ctx)
		if err != nil {
			return err
		}
		resp.Total = len(pairs)
		if q.Offset >= len(pairs) {
			return nil
		}
		end := min(q.Offset+q.Limit, len(pairs))
		for _, p := range pairs[q.Offset:end] {
			view, err := s.pairView(ctx, p)
			if err != nil {
				return err
			}
			resp.Pairs = append(resp.Pairs, view)
		}
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetPair returns the pair of two tokens in either order
func (s *Server) handleGetPair(c *gin.Context) {
	var v ValidationErrors
	tokenA := v.address("token_a", c.Param("token_a"), true)
	tokenB := v.address("token_b", c.Param("token_b"), true)
	if err := v.err(); err != nil {
		s.writeError(c, err)
		return
	}

	var view PairView
	err := s.app.Query(func(ctx sdk.Context) error {
		addr := s.app.RouterKeeper.PairFor(ctx, tokenA, tokenB)
		if addr.Empty() {
			return routertypes.ErrPairNotFound.Wrapf("%s/%s", tokenA, tokenB)
		}
		p, err := s.app.PairKeeper.GetPair(ctx, addr)
		if err != nil {
			return err
		}
		view, err = s.pairView(ctx, p)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// handleAddLiquidity deposits through the router
func (s *Server) handleAddLiquidity(c *gin.Context) {
	var req AddLiquidityRequest
	if err := bindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: c.GetString(requestIDKey)})
		return
	}
	blockTime := s.blockTime()
	sender, in, err := req.toRouter(blockTime, s.config.DefaultDeadline)
	if err != nil {
		s.writeError(c, err)
		return
	}

	var res routertypes.AddLiquidityResult
	height, err := s.exec(blockTime, func(ctx sdk.Context) error {
		var err error
		if req.Native {
			res, err = s.app.RouterKeeper.AddLiquidityNative(ctx, sender, routertypes.AddLiquidityNativeRequest{
				Token:              in.TokenA,
				AmountTokenDesired: in.AmountADesired,
				AmountTokenMin:     in.AmountAMin,
				AmountNativeMin:    in.AmountBMin,
				NativeValue:        in.AmountBDesired,
				To:                 in.To,
				Deadline:           in.Deadline,
			})
			return err
		}
		res, err = s.app.RouterKeeper.AddLiquidity(ctx, sender, in)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, AddLiquidityResponse{
		AmountA:   res.AmountA.String(),
		AmountB:   res.AmountB.String(),
		Liquidity: res.Liquidity.String(),
		Height:    height,
	})
}

// handleRemoveLiquidity redeems LP tokens through the router
func (s *Server) handleRemoveLiquidity(c *gin.Context) {
	var req RemoveLiquidityRequest
	if err := bindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: c.GetString(requestIDKey)})
		return
	}
	blockTime := s.blockTime()
	sender, in, err := req.toRouter(blockTime, s.config.DefaultDeadline)
	if err != nil {
		s.writeError(c, err)
		return
	}

	var res routertypes.RemoveLiquidityResult
	height, err := s.exec(blockTime, func(ctx sdk.Context) error {
		var err error
		if req.Native {
			res, err = s.app.RouterKeeper.RemoveLiquidityNative(ctx, sender, routertypes.RemoveLiquidityNativeRequest{
				Token:           in.TokenA,
				Liquidity:       in.Liquidity,
				AmountTokenMin:  in.AmountAMin,
				AmountNativeMin: in.AmountBMin,
				To:              in.To,
				Deadline:        in.Deadline,
			})
			return err
		}
		res, err = s.app.RouterKeeper.RemoveLiquidity(ctx, sender, in)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, RemoveLiquidityResponse{
		AmountA: res.AmountA.String(),
		AmountB: res.AmountB.String(),
		Height:  height,
	})
}
