package keeper_test

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/router/types"
)

func (s *KeeperTestSuite) fundSwapper(token sdk.AccAddress, amount int64) {
	s.env.Fund(s.T(), token, s.bob, amount)
	s.env.ApproveRouter(s.T(), token, s.bob, amount)
}

func (s *KeeperTestSuite) TestSwapExactTokensForTokens() {
	s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 1_000_000, 1_000_000)
	s.fundSwapper(s.tokenA, 1000)

	req := types.SwapExactInRequest{
		AmountIn:     amt(1000),
		AmountOutMin: amt(997),
		Path:         []sdk.AccAddress{s.tokenA, s.tokenB},
		To:           s.bob,
		Deadline:     s.deadline(),
	}
	_, err := s.env.Router.SwapExactTokensForTokens(s.env.Ctx, s.bob, req)
	s.Require().ErrorIs(err, types.ErrInsufficientOutputAmount)

	req.AmountOutMin = amt(996)
	amounts, err := s.env.Router.SwapExactTokensForTokens(s.env.Ctx, s.bob, req)
	s.Require().NoError(err)
	s.Require().Equal([]math.Int{amt(1000), amt(996)}, amounts)
	s.Require().Equal(amt(996), s.env.Balance(s.T(), s.tokenB, s.bob))
	s.Require().True(s.env.Balance(s.T(), s.tokenA, s.bob).IsZero())
	s.requireRouterEmpty(s.tokenA, s.tokenB)
	s.Require().True(s.hasEvent(types.EventTypeSwap))
}

func (s *KeeperTestSuite) TestSwapTokensForExactTokens() {
	s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 1_000_000, 1_000_000)
	s.fundSwapper(s.tokenA, 2000)

	req := types.SwapExactOutRequest{
		AmountOut:   amt(996),
		AmountInMax: amt(999),
		Path:        []sdk.AccAddress{s.tokenA, s.tokenB},
		To:          s.bob,
		Deadline:    s.deadline(),
	}
	_, err := s.env.Router.SwapTokensForExactTokens(s.env.Ctx, s.bob, req)
	s.Require().ErrorIs(err, types.ErrExcessiveInputAmount)

	req.AmountInMax = amt(1000)
	amounts, err := s.env.Router.SwapTokensForExactTokens(s.env.Ctx, s.bob, req)
	s.Require().NoError(err)
	s.Require().Equal(amt(1000), amounts[0])
	s.Require().Equal(amt(996), s.env.Balance(s.T(), s.tokenB, s.bob))
	s.Require().Equal(amt(1000), s.env.Balance(s.T(), s.tokenA, s.bob))
}

func (s *KeeperTestSuite) TestMultiHopSwap() {
	s.createPair(s.tokenA, s.tokenB)
	s.createPair(s.tokenB, s.tokenC)
	s.provide(s.alice, s.tokenA, s.tokenB, 1_000_000, 1_000_000)
	s.provide(s.alice, s.tokenB, s.tokenC, 1_000_000, 2_000_000)
	s.fundSwapper(s.tokenA, 10_000)

	path := []sdk.AccAddress{s.tokenA, s.tokenB, s.tokenC}
	quoted, err := s.env.Router.GetAmountsOut(s.env.Ctx, amt(10_000), path)
	s.Require().NoError(err)

	amounts, err := s.env.Router.SwapExactTokensForTokens(s.env.Ctx, s.bob, types.SwapExactInRequest{
		AmountIn:     amt(10_000),
		AmountOutMin: quoted[2],
		Path:         path,
		To:           s.bob,
		Deadline:     s.deadline(),
	})
	s.Require().NoError(err)
	s.Require().Equal(quoted, amounts)
	s.Require().Equal(quoted[2], s.env.Balance(s.T(), s.tokenC, s.bob))
	s.Require().True(s.env.Balance(s.T(), s.tokenB, s.bob).IsZero())
	s.requireRouterEmpty(s.tokenA, s.tokenB, s.tokenC)

	// the intermediate hop paid the second pair directly
	reserveB, reserveC, _, err := s.env.Router.GetReserves(s.env.Ctx, s.tokenB, s.tokenC)
	s.Require().NoError(err)
	s.Require().Equal(amt(1_000_000).Add(quoted[1]), reserveB)
	s.Require().Equal(amt(2_000_000).Sub(quoted[2]), reserveC)
}

func (s *KeeperTestSuite) TestSwapInvalidPath() {
	s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 10_000, 10_000)
	s.fundSwapper(s.tokenA, 100)

	req := types.SwapExactInRequest{
		AmountIn:     amt(100),
		AmountOutMin: math.ZeroInt(),
		Path:         []sdk.AccAddress{s.tokenA},
		To:           s.bob,
		Deadline:     s.deadline(),
	}
	_, err := s.env.Router.SwapExactTokensForTokens(s.env.Ctx, s.bob, req)
	s.Require().ErrorIs(err, types.ErrInvalidPath)

	req.Path = []sdk.AccAddress{s.tokenA, s.tokenC}
	_, err = s.env.Router.SwapExactTokensForTokens(s.env.Ctx, s.bob, req)
	s.Require().ErrorIs(err, types.ErrPairNotFound)

	s.Require().Equal(amt(100), s.env.Balance(s.T(), s.tokenA, s.bob))
}

func (s *KeeperTestSuite) TestSwapRequiresAllowance() {
	s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 10_000, 10_000)
	s.env.Fund(s.T(), s.tokenA, s.bob, 100)

	_, err := s.env.Router.SwapExactTokensForTokens(s.env.Ctx, s.bob, types.SwapExactInRequest{
		AmountIn:     amt(100),
		AmountOutMin: math.ZeroInt(),
		Path:         []sdk.AccAddress{s.tokenA, s.tokenB},
		To:           s.bob,
		Deadline:     s.deadline(),
	})
	s.Require().ErrorIs(err, types.ErrInsufficientAllowance)
}

func (s *KeeperTestSuite) TestQuoteAgainstState() {
	s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 1_000_000, 4_000_000)

	reserveA, reserveB, _, err := s.env.Router.GetReserves(s.env.Ctx, s.tokenA, s.tokenB)
	s.Require().NoError(err)
	s.Require().Equal(amt(1_000_000), reserveA)
	s.Require().Equal(amt(4_000_000), reserveB)

	reserveB, reserveA, _, err = s.env.Router.GetReserves(s.env.Ctx, s.tokenB, s.tokenA)
	s.Require().NoError(err)
	s.Require().Equal(amt(1_000_000), reserveA)
	s.Require().Equal(amt(4_000_000), reserveB)

	in, err := s.env.Router.GetAmountsIn(s.env.Ctx, amt(3988), []sdk.AccAddress{s.tokenA, s.tokenB})
	s.Require().NoError(err)
	out, err := s.env.Router.GetAmountsOut(s.env.Ctx, in[0], []sdk.AccAddress{s.tokenA, s.tokenB})
	s.Require().NoError(err)
	s.Require().True(out[1].GTE(amt(3988)))

	_, _, _, err = s.env.Router.GetReserves(s.env.Ctx, s.tokenA, s.tokenC)
	s.Require().ErrorIs(err, types.ErrPairNotFound)
}

func (s *KeeperTestSuite) TestPausedRouterRejectsOperations() {
	s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 10_000, 10_000)
	s.fundSwapper(s.tokenA, 100)

	err := s.env.Router.LockRouter(s.env.Ctx, s.bob)
	s.Require().ErrorIs(err, types.ErrNotAdmin)
	s.Require().NoError(s.env.Router.LockRouter(s.env.Ctx, s.env.Admin))
	s.Require().True(s.env.Router.IsPaused(s.env.Ctx))

	req := types.SwapExactInRequest{
		AmountIn:     amt(100),
		AmountOutMin: math.ZeroInt(),
		Path:         []sdk.AccAddress{s.tokenA, s.tokenB},
		To:           s.bob,
		Deadline:     s.deadline(),
	}
	_, err = s.env.Router.SwapExactTokensForTokens(s.env.Ctx, s.bob, req)
	s.Require().ErrorIs(err, types.ErrIncorrectState)
	_, err = s.env.Router.CreatePair(s.env.Ctx, s.bob, s.tokenA, s.tokenC)
	s.Require().ErrorIs(err, types.ErrIncorrectState)

	s.Require().NoError(s.env.Router.UnlockRouter(s.env.Ctx, s.env.Admin))
	_, err = s.env.Router.SwapExactTokensForTokens(s.env.Ctx, s.bob, req)
	s.Require().NoError(err)
}
