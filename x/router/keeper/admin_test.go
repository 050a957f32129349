package keeper_test

import (
	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/router/types"
)

func (s *KeeperTestSuite) TestCircuitBreaker() {
	s.Require().ErrorIs(s.env.Router.LockRouter(s.env.Ctx, s.alice), types.ErrNotAdmin)
	s.Require().False(s.env.Router.IsPaused(s.env.Ctx))

	s.Require().NoError(s.env.Router.LockRouter(s.env.Ctx, s.env.Admin))
	s.Require().True(s.hasEvent(types.EventTypeRouterLocked))
	s.Require().ErrorIs(s.env.Router.UnlockRouter(s.env.Ctx, s.alice), types.ErrNotAdmin)
	s.Require().True(s.env.Router.IsPaused(s.env.Ctx))

	s.Require().NoError(s.env.Router.UnlockRouter(s.env.Ctx, s.env.Admin))
	s.Require().False(s.env.Router.IsPaused(s.env.Ctx))
}

func (s *KeeperTestSuite) TestSkimAndRefundToken() {
	pair := s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 10_000, 10_000)
	s.env.Fund(s.T(), s.tokenA, pair, 500)

	s.Require().ErrorIs(s.env.Router.SkimPairLiquidity(s.env.Ctx, s.alice, pair), types.ErrNotAdmin)
	s.Require().NoError(s.env.Router.LockRouter(s.env.Ctx, s.env.Admin))
	s.Require().NoError(s.env.Router.SkimPairLiquidity(s.env.Ctx, s.env.Admin, pair))
	s.Require().Equal(amt(500), s.env.Balance(s.T(), s.tokenA, s.env.Router.Address()))
	s.Require().True(s.hasEvent(types.EventTypeSkimPair))

	err := s.env.Router.SkimPairLiquidity(s.env.Ctx, s.env.Admin, keepertest.TestAddr("not-a-pair"))
	s.Require().ErrorIs(err, types.ErrSkimPairLiquidityFailed)

	s.Require().ErrorIs(s.env.Router.RefundToken(s.env.Ctx, s.alice, s.tokenA, amt(500)), types.ErrNotAdmin)
	err = s.env.Router.RefundToken(s.env.Ctx, s.env.Admin, s.tokenA, amt(501))
	s.Require().ErrorIs(err, types.ErrTransferFailed)
	s.Require().NoError(s.env.Router.RefundToken(s.env.Ctx, s.env.Admin, s.tokenA, amt(500)))
	s.Require().Equal(amt(500), s.env.Balance(s.T(), s.tokenA, s.env.Admin))
	s.requireRouterEmpty(s.tokenA)
	s.Require().False(s.env.Router.GetLock(s.env.Ctx))
}

func (s *KeeperTestSuite) TestRefundTokenSparesPendingRefunds() {
	s.createPair(s.tokenA, s.tokenB)
	s.provide(s.alice, s.tokenA, s.tokenB, 10_000, 40_000)
	s.leavePendingAdd(s.bob, 1000, 4000)
	s.env.Fund(s.T(), s.tokenA, s.env.Router.Address(), 200)
	s.Require().Equal(amt(1200), s.env.Balance(s.T(), s.tokenA, s.env.Router.Address()))

	err := s.env.Router.RefundToken(s.env.Ctx, s.env.Admin, s.tokenA, amt(201))
	s.Require().ErrorIs(err, types.ErrPendingRefundOutstanding)
	s.Require().NoError(s.env.Router.RefundToken(s.env.Ctx, s.env.Admin, s.tokenA, amt(200)))
	s.Require().Equal(amt(200), s.env.Balance(s.T(), s.tokenA, s.env.Admin))

	s.Require().NoError(s.env.Router.RecoverPendingLiquidity(s.env.Ctx, s.env.Admin, s.bob))
	s.Require().Equal(amt(1000), s.env.Balance(s.T(), s.tokenA, s.bob))
	s.Require().Equal(amt(4000), s.env.Balance(s.T(), s.tokenB, s.bob))
	s.requireRouterEmpty(s.tokenA, s.tokenB)
}

func (s *KeeperTestSuite) TestRefundNative() {
	s.env.FundNative(s.env.Router.Address(), 300)

	s.Require().ErrorIs(s.env.Router.RefundNative(s.env.Ctx, s.bob, amt(300)), types.ErrNotAdmin)
	s.Require().ErrorIs(s.env.Router.RefundNative(s.env.Ctx, s.env.Admin, amt(301)), types.ErrTransferFailed)
	s.Require().NoError(s.env.Router.RefundNative(s.env.Ctx, s.env.Admin, amt(300)))
	s.Require().Equal(amt(300), s.env.NativeBalance(s.env.Admin))
	s.Require().True(s.env.NativeBalance(s.env.Router.Address()).IsZero())
	s.Require().True(s.hasEvent(types.EventTypeRefund))
}

func (s *KeeperTestSuite) TestConfigUpdates() {
	s.Require().ErrorIs(s.env.Router.UpdateSwapFeeBps(s.env.Ctx, s.alice, 30), types.ErrNotAdmin)
	s.Require().ErrorIs(s.env.Router.UpdateSwapFeeBps(s.env.Ctx, s.env.Admin, 10_001), types.ErrInvalidConfig)
	s.Require().NoError(s.env.Router.UpdateSwapFeeBps(s.env.Ctx, s.env.Admin, 30))
	s.Require().NoError(s.env.Router.UpdateFeeRecipient(s.env.Ctx, s.env.Admin, s.bob))

	cfg, err := s.env.Router.GetConfig(s.env.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(30), cfg.SwapFeeBps)
	s.Require().Equal(s.bob, cfg.FeeRecipient)
	s.Require().True(s.hasEvent(types.EventTypeConfigUpdated))

	s.Require().NoError(s.env.Router.UpdateAdmin(s.env.Ctx, s.env.Admin, s.alice))
	s.Require().ErrorIs(s.env.Router.LockRouter(s.env.Ctx, s.env.Admin), types.ErrNotAdmin)
	s.Require().NoError(s.env.Router.LockRouter(s.env.Ctx, s.alice))

	// native variants fail cleanly once the wrapper points at a plain token
	s.Require().NoError(s.env.Router.UpdateNativeWrapper(s.env.Ctx, s.alice, s.tokenA))
	s.Require().NoError(s.env.Router.UnlockRouter(s.env.Ctx, s.alice))
	s.Require().Error(s.env.Router.RefundNative(s.env.Ctx, s.alice, amt(1)))
}
