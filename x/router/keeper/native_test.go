package keeper_test

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/router/types"
)

// provideNative funds user and adds amountToken of token against
// amountNative native coin.
func (s *KeeperTestSuite) provideNative(user, token sdk.AccAddress, amountToken, amountNative int64) types.AddLiquidityResult {
	s.env.Fund(s.T(), token, user, amountToken)
	s.env.ApproveRouter(s.T(), token, user, amountToken)
	s.env.FundNative(user, amountNative)
	res, err := s.env.Router.AddLiquidityNative(s.env.Ctx, user, types.AddLiquidityNativeRequest{
		Token:              token,
		AmountTokenDesired: amt(amountToken),
		AmountTokenMin:     math.ZeroInt(),
		AmountNativeMin:    math.ZeroInt(),
		NativeValue:        amt(amountNative),
		To:                 user,
		Deadline:           s.deadline(),
	})
	s.Require().NoError(err)
	return res
}

func (s *KeeperTestSuite) requireRouterHoldsNoNative() {
	s.requireRouterEmpty(s.env.Native)
	s.Require().True(s.env.NativeBalance(s.env.Router.Address()).IsZero())
}

func (s *KeeperTestSuite) TestAddLiquidityNative() {
	pair := s.createPair(s.tokenA, s.env.Native)

	first := s.provideNative(s.alice, s.tokenA, 10_000, 40_000)
	s.Require().Equal(pair, first.Pair)
	s.Require().Equal(amt(19_000), first.Liquidity)
	s.Require().Equal(amt(40_000), first.AmountB)
	s.Require().True(s.env.NativeBalance(s.alice).IsZero())

	// bob attaches more native value than the pool price needs
	s.env.Fund(s.T(), s.tokenA, s.bob, 1000)
	s.env.ApproveRouter(s.T(), s.tokenA, s.bob, 1000)
	s.env.FundNative(s.bob, 10_000)
	res, err := s.env.Router.AddLiquidityNative(s.env.Ctx, s.bob, types.AddLiquidityNativeRequest{
		Token:              s.tokenA,
		AmountTokenDesired: amt(1000),
		AmountTokenMin:     amt(1000),
		AmountNativeMin:    amt(4000),
		NativeValue:        amt(10_000),
		To:                 s.bob,
		Deadline:           s.deadline(),
	})
	s.Require().NoError(err)
	s.Require().Equal(amt(1000), res.AmountA)
	s.Require().Equal(amt(4000), res.AmountB)
	s.Require().Equal(amt(2000), res.Liquidity)
	s.Require().Equal(amt(6000), s.env.NativeBalance(s.bob))

	reserveA, reserveNative, _, err := s.env.Router.GetReserves(s.env.Ctx, s.tokenA, s.env.Native)
	s.Require().NoError(err)
	s.Require().Equal(amt(11_000), reserveA)
	s.Require().Equal(amt(44_000), reserveNative)
	s.Require().Equal(amt(44_000), s.env.NativeBalance(s.env.Native))

	s.requireRouterEmpty(s.tokenA)
	s.requireRouterHoldsNoNative()
	s.Require().True(s.hasEvent(types.EventTypeAddLiquidityNative))
}

func (s *KeeperTestSuite) TestAddLiquidityNativeRejectsZeroValue() {
	s.createPair(s.tokenA, s.env.Native)
	s.env.Fund(s.T(), s.tokenA, s.bob, 1000)
	s.env.ApproveRouter(s.T(), s.tokenA, s.bob, 1000)

	_, err := s.env.Router.AddLiquidityNative(s.env.Ctx, s.bob, types.AddLiquidityNativeRequest{
		Token:              s.tokenA,
		AmountTokenDesired: amt(1000),
		AmountTokenMin:     math.ZeroInt(),
		AmountNativeMin:    math.ZeroInt(),
		NativeValue:        math.ZeroInt(),
		To:                 s.bob,
		Deadline:           s.deadline(),
	})
	s.Require().ErrorIs(err, types.ErrInsufficientNativeAmount)
	s.Require().Equal(amt(1000), s.env.Balance(s.T(), s.tokenA, s.bob))
}

func (s *KeeperTestSuite) TestRemoveLiquidityNative() {
	pair := s.createPair(s.tokenA, s.env.Native)
	added := s.provideNative(s.alice, s.tokenA, 10_000, 40_000)
	s.Require().NoError(s.env.Pair.Approve(s.env.Ctx, pair, s.alice, s.env.Router.Address(), added.Liquidity))

	res, err := s.env.Router.RemoveLiquidityNative(s.env.Ctx, s.alice, types.RemoveLiquidityNativeRequest{
		Token:           s.tokenA,
		Liquidity:       amt(9500),
		AmountTokenMin:  amt(4750),
		AmountNativeMin: amt(19_000),
		To:              s.bob,
		Deadline:        s.deadline(),
	})
	s.Require().NoError(err)
	s.Require().Equal(amt(4750), res.AmountA)
	s.Require().Equal(amt(19_000), res.AmountB)
	s.Require().Equal(amt(4750), s.env.Balance(s.T(), s.tokenA, s.bob))
	s.Require().Equal(amt(19_000), s.env.NativeBalance(s.bob))
	s.Require().True(s.env.Balance(s.T(), s.env.Native, s.bob).IsZero())

	s.requireRouterEmpty(s.tokenA)
	s.requireRouterHoldsNoNative()
}

func (s *KeeperTestSuite) TestRemoveLiquidityNativeMinimum() {
	pair := s.createPair(s.tokenA, s.env.Native)
	added := s.provideNative(s.alice, s.tokenA, 10_000, 40_000)
	s.Require().NoError(s.env.Pair.Approve(s.env.Ctx, pair, s.alice, s.env.Router.Address(), added.Liquidity))

	_, err := s.env.Router.RemoveLiquidityNative(s.env.Ctx, s.alice, types.RemoveLiquidityNativeRequest{
		Token:           s.tokenA,
		Liquidity:       amt(9500),
		AmountTokenMin:  math.ZeroInt(),
		AmountNativeMin: amt(19_001),
		To:              s.alice,
		Deadline:        s.deadline(),
	})
	s.Require().ErrorIs(err, types.ErrInsufficientNativeAmount)

	lp, err := s.env.Pair.BalanceOf(s.env.Ctx, pair, s.alice)
	s.Require().NoError(err)
	s.Require().Equal(added.Liquidity, lp)
	pending, err := s.env.Router.GetPendingRefunds(s.env.Ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Empty(pending)
	s.requireRouterEmpty(s.tokenA, s.env.Native)
	s.requireRouterHoldsNoNative()
}

func (s *KeeperTestSuite) TestSwapExactNativeForTokens() {
	s.createPair(s.tokenA, s.env.Native)
	s.provideNative(s.alice, s.tokenA, 1_000_000, 1_000_000)
	s.env.FundNative(s.bob, 1000)

	req := types.SwapExactInRequest{
		AmountIn:     amt(1000),
		AmountOutMin: amt(996),
		Path:         []sdk.AccAddress{s.tokenA, s.env.Native},
		To:           s.bob,
		Deadline:     s.deadline(),
	}
	_, err := s.env.Router.SwapExactNativeForTokens(s.env.Ctx, s.bob, req)
	s.Require().ErrorIs(err, types.ErrInvalidPath)

	req.Path = []sdk.AccAddress{s.env.Native, s.tokenA}
	amounts, err := s.env.Router.SwapExactNativeForTokens(s.env.Ctx, s.bob, req)
	s.Require().NoError(err)
	s.Require().Equal(amt(996), amounts[1])
	s.Require().Equal(amt(996), s.env.Balance(s.T(), s.tokenA, s.bob))
	s.Require().True(s.env.NativeBalance(s.bob).IsZero())
	s.requireRouterHoldsNoNative()
}

func (s *KeeperTestSuite) TestSwapExactTokensForNative() {
	s.createPair(s.tokenA, s.env.Native)
	s.provideNative(s.alice, s.tokenA, 1_000_000, 1_000_000)
	s.fundSwapper(s.tokenA, 1000)

	req := types.SwapExactInRequest{
		AmountIn:     amt(1000),
		AmountOutMin: amt(996),
		Path:         []sdk.AccAddress{s.env.Native, s.tokenA},
		To:           s.bob,
		Deadline:     s.deadline(),
	}
	_, err := s.env.Router.SwapExactTokensForNative(s.env.Ctx, s.bob, req)
	s.Require().ErrorIs(err, types.ErrInvalidPath)

	req.Path = []sdk.AccAddress{s.tokenA, s.env.Native}
	amounts, err := s.env.Router.SwapExactTokensForNative(s.env.Ctx, s.bob, req)
	s.Require().NoError(err)
	s.Require().Equal(amt(996), amounts[1])
	s.Require().Equal(amt(996), s.env.NativeBalance(s.bob))
	s.Require().True(s.env.Balance(s.T(), s.env.Native, s.bob).IsZero())
	s.requireRouterEmpty(s.tokenA)
	s.requireRouterHoldsNoNative()
}

func (s *KeeperTestSuite) TestSwapNativeForExactTokens() {
	s.createPair(s.tokenA, s.env.Native)
	s.provideNative(s.alice, s.tokenA, 1_000_000, 1_000_000)
	s.env.FundNative(s.bob, 2000)

	amounts, err := s.env.Router.SwapNativeForExactTokens(s.env.Ctx, s.bob, types.SwapExactOutRequest{
		AmountOut:   amt(996),
		AmountInMax: amt(2000),
		Path:        []sdk.AccAddress{s.env.Native, s.tokenA},
		To:          s.bob,
		Deadline:    s.deadline(),
	})
	s.Require().NoError(err)
	s.Require().Equal(amt(1000), amounts[0])
	s.Require().Equal(amt(996), s.env.Balance(s.T(), s.tokenA, s.bob))
	// the unused value comes back
	s.Require().Equal(amt(1000), s.env.NativeBalance(s.bob))
	s.requireRouterHoldsNoNative()
}

func (s *KeeperTestSuite) TestSwapTokensForExactNative() {
	s.createPair(s.tokenA, s.env.Native)
	s.provideNative(s.alice, s.tokenA, 1_000_000, 1_000_000)
	s.fundSwapper(s.tokenA, 1000)

	req := types.SwapExactOutRequest{
		AmountOut:   amt(996),
		AmountInMax: amt(999),
		Path:        []sdk.AccAddress{s.tokenA, s.env.Native},
		To:          s.bob,
		Deadline:    s.deadline(),
	}
	_, err := s.env.Router.SwapTokensForExactNative(s.env.Ctx, s.bob, req)
	s.Require().ErrorIs(err, types.ErrExcessiveInputAmount)

	req.AmountInMax = amt(1000)
	_, err = s.env.Router.SwapTokensForExactNative(s.env.Ctx, s.bob, req)
	s.Require().NoError(err)
	s.Require().Equal(amt(996), s.env.NativeBalance(s.bob))
	s.Require().True(s.env.Balance(s.T(), s.tokenA, s.bob).IsZero())
	s.requireRouterHoldsNoNative()
}

func (s *KeeperTestSuite) TestNativeMultiHop() {
	s.createPair(s.tokenA, s.env.Native)
	s.createPair(s.tokenA, s.tokenB)
	s.provideNative(s.alice, s.tokenA, 1_000_000, 1_000_000)
	s.provide(s.alice, s.tokenA, s.tokenB, 1_000_000, 1_000_000)
	s.env.FundNative(s.bob, 5000)

	path := []sdk.AccAddress{s.env.Native, s.tokenA, s.tokenB}
	quoted, err := s.env.Router.GetAmountsOut(s.env.Ctx, amt(5000), path)
	s.Require().NoError(err)

	amounts, err := s.env.Router.SwapExactNativeForTokens(s.env.Ctx, s.bob, types.SwapExactInRequest{
		AmountIn:     amt(5000),
		AmountOutMin: math.ZeroInt(),
		Path:         path,
		To:           s.bob,
		Deadline:     s.deadline(),
	})
	s.Require().NoError(err)
	s.Require().Equal(quoted, amounts)
	s.Require().Equal(quoted[2], s.env.Balance(s.T(), s.tokenB, s.bob))
	s.requireRouterEmpty(s.tokenA, s.tokenB)
	s.requireRouterHoldsNoNative()
}
