package keeper_test

import (
	"context"
	"errors"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/router/types"
)

var errRejected = errors.New("transfer rejected")

// failWhen rejects every transfer of token from `from` to `to`.
func (s *KeeperTestSuite) failWhen(token, from, to sdk.AccAddress) {
	s.env.Ledger.FailTransfer = func(t, f, r sdk.AccAddress) error {
		if t.Equals(token) && f.Equals(from) && r.Equals(to) {
			return errRejected
		}
		return nil
	}
}

// leavePendingAdd makes user's add liquidity fail after the router has taken
// custody of both tokens. Requires an A/B pool priced 1:4.
func (s *KeeperTestSuite) leavePendingAdd(user sdk.AccAddress, amountA, amountB int64) {
	pair := s.env.Router.PairFor(s.env.Ctx, s.tokenA, s.tokenB)
	s.env.Fund(s.T(), s.tokenA, user, amountA)
	s.env.Fund(s.T(), s.tokenB, user, amountB)
	s.env.ApproveRouter(s.T(), s.tokenA, user, amountA)
	s.env.ApproveRouter(s.T(), s.tokenB, user, amountB)

	s.failWhen(s.tokenB, s.env.Router.Address(), pair)
	defer s.env.Ledger.Reset()
	_, err := s.env.Router.AddLiquidity(s.env.Ctx, user, types.AddLiquidityRequest{
		TokenA:         s.tokenA,
		TokenB:         s.tokenB,
		AmountADesired: amt(amountA),
		AmountBDesired: amt(amountB),
		AmountAMin:     math.ZeroInt(),
		AmountBMin:     math.ZeroInt(),
		To:             user,
		Deadline:       s.deadline(),
	})
	s.Require().ErrorIs(err, types.ErrTransferBFailed)
}

func (s *KeeperTestSuite) hasEvent(eventType string) bool {
	for _, e := range s.env.Ctx.EventManager().Events() {
		if e.Type == eventType {
			return true
		}
	}
	return false
}

func (s *KeeperTestSuite) TestPartialAddFailureLeavesPending() {
	s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 10_000, 40_000)
	s.leavePendingAdd(s.bob, 1000, 4000)

	s.Require().False(s.env.Router.GetLock(s.env.Ctx))
	s.Require().True(s.hasEvent(types.EventTypePendingRefund))

	// the router holds both inputs, nothing reached the pair
	s.Require().Equal(amt(1000), s.env.Balance(s.T(), s.tokenA, s.env.Router.Address()))
	s.Require().Equal(amt(4000), s.env.Balance(s.T(), s.tokenB, s.env.Router.Address()))
	s.Require().True(s.env.Balance(s.T(), s.tokenA, s.bob).IsZero())

	pending, err := s.env.Router.GetPendingRefunds(s.env.Ctx, s.bob)
	s.Require().NoError(err)
	s.Require().Equal([]types.PendingRefund{
		{Asset: s.tokenA, Amount: amt(1000)},
		{Asset: s.tokenB, Amount: amt(4000)},
	}, pending)

	joins, err := s.env.Router.GetLiquidityJoins(s.env.Ctx, s.bob)
	s.Require().NoError(err)
	s.Require().Empty(joins)

	// further operations wait for recovery
	s.env.Fund(s.T(), s.tokenA, s.bob, 10)
	s.env.ApproveRouter(s.T(), s.tokenA, s.bob, 10)
	_, err = s.env.Router.SwapExactTokensForTokens(s.env.Ctx, s.bob, types.SwapExactInRequest{
		AmountIn:     amt(10),
		AmountOutMin: math.ZeroInt(),
		Path:         []sdk.AccAddress{s.tokenA, s.tokenB},
		To:           s.bob,
		Deadline:     s.deadline(),
	})
	s.Require().ErrorIs(err, types.ErrPendingRefundOutstanding)
}

func (s *KeeperTestSuite) TestRecoverPendingLiquidity() {
	s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 10_000, 40_000)
	s.leavePendingAdd(s.bob, 1000, 4000)

	err := s.env.Router.RecoverPendingLiquidity(s.env.Ctx, s.bob, s.bob)
	s.Require().ErrorIs(err, types.ErrNotAdmin)

	// first attempt only returns A
	s.failWhen(s.tokenB, s.env.Router.Address(), s.bob)
	s.Require().NoError(s.env.Router.RecoverPendingLiquidity(s.env.Ctx, s.env.Admin, s.bob))
	s.Require().Equal(amt(1000), s.env.Balance(s.T(), s.tokenA, s.bob))
	pending, err := s.env.Router.GetPendingRefunds(s.env.Ctx, s.bob)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Require().True(pending[0].Refunded)
	s.Require().False(pending[1].Refunded)

	s.env.Ledger.Reset()
	s.Require().NoError(s.env.Router.RecoverPendingLiquidity(s.env.Ctx, s.env.Admin, s.bob))
	s.Require().Equal(amt(1000), s.env.Balance(s.T(), s.tokenA, s.bob))
	s.Require().Equal(amt(4000), s.env.Balance(s.T(), s.tokenB, s.bob))
	s.requireRouterEmpty(s.tokenA, s.tokenB)

	pending, err = s.env.Router.GetPendingRefunds(s.env.Ctx, s.bob)
	s.Require().NoError(err)
	s.Require().Nil(pending)

	err = s.env.Router.RecoverPendingLiquidity(s.env.Ctx, s.env.Admin, s.bob)
	s.Require().ErrorIs(err, types.ErrNoPendingFunds)
}

func (s *KeeperTestSuite) TestRecoverWhilePaused() {
	s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 10_000, 40_000)
	s.leavePendingAdd(s.bob, 1000, 4000)

	s.Require().NoError(s.env.Router.LockRouter(s.env.Ctx, s.env.Admin))
	s.Require().NoError(s.env.Router.RecoverPendingLiquidity(s.env.Ctx, s.env.Admin, s.bob))
	s.Require().Equal(amt(4000), s.env.Balance(s.T(), s.tokenB, s.bob))
}

func (s *KeeperTestSuite) TestRemoveLiquidityBelowMinimumKeepsLP() {
	pair := s.createPair(s.tokenA, s.tokenB)
	added := s.provide(s.alice, s.tokenA, s.tokenB, 10_000, 40_000)
	s.Require().NoError(s.env.Pair.Approve(s.env.Ctx, pair, s.alice, s.env.Router.Address(), added.Liquidity))

	req := types.RemoveLiquidityRequest{
		TokenA:     s.tokenA,
		TokenB:     s.tokenB,
		Liquidity:  amt(1000),
		AmountAMin: amt(1_000_000),
		AmountBMin: math.ZeroInt(),
		To:         s.bob,
		Deadline:   s.deadline(),
	}
	_, err := s.env.Router.RemoveLiquidity(s.env.Ctx, s.alice, req)
	s.Require().ErrorIs(err, types.ErrInsufficientAAmount)

	// the burn is undone: nothing moved and nothing is owed
	lp, err := s.env.Pair.BalanceOf(s.env.Ctx, pair, s.alice)
	s.Require().NoError(err)
	s.Require().Equal(amt(19_000), lp)
	allowance, err := s.env.Pair.Allowance(s.env.Ctx, pair, s.alice, s.env.Router.Address())
	s.Require().NoError(err)
	s.Require().Equal(amt(19_000), allowance)
	pending, err := s.env.Router.GetPendingRefunds(s.env.Ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Empty(pending)
	s.requireRouterEmpty(s.tokenA, s.tokenB)
	r0, r1, _, err := s.env.Router.GetReserves(s.env.Ctx, s.tokenA, s.tokenB)
	s.Require().NoError(err)
	s.Require().Equal(amt(10_000), r0)
	s.Require().Equal(amt(40_000), r1)

	req.AmountAMin = math.ZeroInt()
	res, err := s.env.Router.RemoveLiquidity(s.env.Ctx, s.alice, req)
	s.Require().NoError(err)
	s.Require().Equal(amt(500), res.AmountA)
	s.Require().Equal(amt(2000), res.AmountB)
}

func (s *KeeperTestSuite) TestRemoveLiquidityPayoutFailure() {
	pair := s.createPair(s.tokenA, s.tokenB)
	added := s.provide(s.alice, s.tokenA, s.tokenB, 10_000, 40_000)
	s.Require().NoError(s.env.Pair.Approve(s.env.Ctx, pair, s.alice, s.env.Router.Address(), added.Liquidity))

	s.failWhen(s.tokenB, s.env.Router.Address(), s.bob)
	_, err := s.env.Router.RemoveLiquidity(s.env.Ctx, s.alice, types.RemoveLiquidityRequest{
		TokenA:     s.tokenA,
		TokenB:     s.tokenB,
		Liquidity:  amt(9500),
		AmountAMin: math.ZeroInt(),
		AmountBMin: math.ZeroInt(),
		To:         s.bob,
		Deadline:   s.deadline(),
	})
	s.Require().ErrorIs(err, types.ErrTransferBFailed)
	s.env.Ledger.Reset()

	s.Require().Equal(amt(4750), s.env.Balance(s.T(), s.tokenA, s.bob))
	pending, err := s.env.Router.GetPendingRefunds(s.env.Ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Require().True(pending[0].Refunded)
	s.Require().False(pending[1].Refunded)

	s.Require().NoError(s.env.Router.RecoverPendingLiquidity(s.env.Ctx, s.env.Admin, s.alice))
	s.Require().Equal(amt(19_000), s.env.Balance(s.T(), s.tokenB, s.alice))
	s.Require().True(s.env.Balance(s.T(), s.tokenA, s.alice).IsZero())
}

func (s *KeeperTestSuite) TestSwapSettleFailureKeepsInput() {
	pair := s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 1_000_000, 1_000_000)
	s.env.Fund(s.T(), s.tokenA, s.bob, 1000)
	s.env.ApproveRouter(s.T(), s.tokenA, s.bob, 1000)

	// the pair cannot pay out
	s.failWhen(s.tokenB, pair, s.bob)
	_, err := s.env.Router.SwapExactTokensForTokens(s.env.Ctx, s.bob, types.SwapExactInRequest{
		AmountIn:     amt(1000),
		AmountOutMin: math.ZeroInt(),
		Path:         []sdk.AccAddress{s.tokenA, s.tokenB},
		To:           s.bob,
		Deadline:     s.deadline(),
	})
	s.Require().ErrorIs(err, types.ErrSwapFailed)
	s.env.Ledger.Reset()

	s.Require().Equal(amt(1000), s.env.Balance(s.T(), s.tokenA, s.env.Router.Address()))
	r0, r1, _, err := s.env.Pair.GetReserves(s.env.Ctx, pair)
	s.Require().NoError(err)
	s.Require().Equal(amt(1_000_000), r0)
	s.Require().Equal(amt(1_000_000), r1)

	s.Require().NoError(s.env.Router.RecoverPendingLiquidity(s.env.Ctx, s.env.Admin, s.bob))
	s.Require().Equal(amt(1000), s.env.Balance(s.T(), s.tokenA, s.bob))
}

func (s *KeeperTestSuite) TestReentrantCallIsRejected() {
	s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 1_000_000, 1_000_000)
	s.env.Fund(s.T(), s.tokenA, s.bob, 2000)
	s.env.ApproveRouter(s.T(), s.tokenA, s.bob, 2000)

	req := types.SwapExactInRequest{
		AmountIn:     amt(1000),
		AmountOutMin: math.ZeroInt(),
		Path:         []sdk.AccAddress{s.tokenA, s.tokenB},
		To:           s.bob,
		Deadline:     s.deadline(),
	}
	var reentrant error
	called := false
	s.env.Ledger.OnTransfer = func(ctx context.Context, token, from, _ sdk.AccAddress, _ math.Int) {
		if called || !from.Equals(s.bob) {
			return
		}
		called = true
		_, reentrant = s.env.Router.SwapExactTokensForTokens(ctx, s.bob, req)
	}
	defer s.env.Ledger.Reset()

	amounts, err := s.env.Router.SwapExactTokensForTokens(s.env.Ctx, s.bob, req)
	s.Require().NoError(err)
	s.Require().True(called)
	s.Require().ErrorIs(reentrant, types.ErrIncorrectState)
	s.Require().Equal(amt(996), amounts[1])
	s.Require().Equal(amt(1000), s.env.Balance(s.T(), s.tokenA, s.bob))
	s.Require().False(s.env.Router.GetLock(s.env.Ctx))
}
