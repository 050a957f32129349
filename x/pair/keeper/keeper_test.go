package keeper_test

import (
	"encoding/json"
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/suite"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/pair/keeper"
	"github.com/paw-chain/amm/x/pair/types"
	sharedtypes "github.com/paw-chain/amm/x/shared/types"
)

type KeeperTestSuite struct {
	suite.Suite

	env *keepertest.AMMEnv

	alice  sdk.AccAddress
	bob    sdk.AccAddress
	pair   sdk.AccAddress
	token0 sdk.AccAddress
	token1 sdk.AccAddress
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

func (s *KeeperTestSuite) SetupTest() {
	s.env = keepertest.NewAMMEnv(s.T())
	s.alice = keepertest.TestAddr("alice")
	s.bob = keepertest.TestAddr("bob")

	tokenA := s.env.CreateToken(s.T(), "AAA")
	tokenB := s.env.CreateToken(s.T(), "BBB")
	s.pair = s.env.CreatePair(s.T(), tokenA, tokenB)

	p, err := s.env.Pair.GetPair(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.token0, s.token1 = p.Token0, p.Token1
}

func (s *KeeperTestSuite) seed(amount0, amount1 int64) math.Int {
	return s.env.Seed(s.T(), s.pair, s.token0, s.token1, s.alice, amount0, amount1)
}

func (s *KeeperTestSuite) lp(owner sdk.AccAddress) math.Int {
	bal, err := s.env.Pair.BalanceOf(s.env.Ctx, s.pair, owner)
	s.Require().NoError(err)
	return bal
}

func (s *KeeperTestSuite) TestFirstMintLocksMinimumLiquidity() {
	liquidity := s.seed(10_000, 10_000)
	s.Require().Equal(math.NewInt(9000), liquidity)
	s.Require().Equal(math.NewInt(9000), s.lp(s.alice))
	s.Require().Equal(math.NewInt(types.MinimumLiquidity), s.lp(sharedtypes.ZeroAddress()))

	supply, err := s.env.Pair.TotalSupply(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(10_000), supply)

	r0, r1, ts, err := s.env.Pair.GetReserves(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(10_000), r0)
	s.Require().Equal(math.NewInt(10_000), r1)
	s.Require().Equal(uint32(keepertest.GenesisTime.Unix()), ts)
}

func (s *KeeperTestSuite) TestFirstMintTooSmall() {
	s.env.Fund(s.T(), s.token0, s.pair, 1000)
	s.env.Fund(s.T(), s.token1, s.pair, 1000)
	_, err := s.env.Pair.Mint(s.env.Ctx, s.alice, s.pair, s.alice)
	s.Require().ErrorIs(err, types.ErrInsufficientLiquidityMinted)

	// nothing was minted
	supply, err := s.env.Pair.TotalSupply(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().True(supply.IsZero())
}

func (s *KeeperTestSuite) TestSubsequentMintIsProportional() {
	s.seed(10_000, 40_000)
	s.env.Fund(s.T(), s.token0, s.pair, 1000)
	s.env.Fund(s.T(), s.token1, s.pair, 8000)

	// min(1000*20000/10000, 8000*20000/40000)
	liquidity, err := s.env.Pair.Mint(s.env.Ctx, s.bob, s.pair, s.bob)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(2000), liquidity)
}

func (s *KeeperTestSuite) TestSwapScenario() {
	s.seed(1_000_000, 1_000_000)
	s.env.Fund(s.T(), s.token0, s.bob, 1000)
	s.Require().NoError(s.env.Token.Transfer(s.env.Ctx, s.token0, s.bob, s.pair, math.NewInt(1000)))

	// 997 breaks the fee-adjusted product
	err := s.env.Pair.Swap(s.env.Ctx, s.bob, s.pair, math.ZeroInt(), math.NewInt(997), s.bob)
	s.Require().ErrorIs(err, types.ErrKConstant)

	s.Require().NoError(s.env.Pair.Swap(s.env.Ctx, s.bob, s.pair, math.ZeroInt(), math.NewInt(996), s.bob))
	s.Require().Equal(math.NewInt(996), s.env.Balance(s.T(), s.token1, s.bob))

	r0, r1, _, err := s.env.Pair.GetReserves(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(1_001_000), r0)
	s.Require().Equal(math.NewInt(999_004), r1)
	s.Require().True(r0.Mul(r1).GTE(math.NewInt(1_000_000).Mul(math.NewInt(1_000_000))))
}

func (s *KeeperTestSuite) TestSwapValidation() {
	s.seed(10_000, 10_000)

	err := s.env.Pair.Swap(s.env.Ctx, s.bob, s.pair, math.ZeroInt(), math.ZeroInt(), s.bob)
	s.Require().ErrorIs(err, types.ErrInsufficientOutputAmount)

	err = s.env.Pair.Swap(s.env.Ctx, s.bob, s.pair, math.ZeroInt(), math.NewInt(10_000), s.bob)
	s.Require().ErrorIs(err, types.ErrInsufficientLiquidity)

	err = s.env.Pair.Swap(s.env.Ctx, s.bob, s.pair, math.ZeroInt(), math.NewInt(10), s.token0)
	s.Require().ErrorIs(err, types.ErrInvalidTo)

	err = s.env.Pair.Swap(s.env.Ctx, s.bob, s.pair, math.ZeroInt(), math.NewInt(10), s.bob)
	s.Require().ErrorIs(err, types.ErrInsufficientInputAmount)
	s.Require().True(s.env.Balance(s.T(), s.token1, s.bob).IsZero())
}

func (s *KeeperTestSuite) TestBurnReturnsProportionalShare() {
	liquidity := s.seed(10_000, 10_000)
	s.Require().NoError(s.env.Pair.Transfer(s.env.Ctx, s.pair, s.alice, s.pair, liquidity))

	amount0, amount1, err := s.env.Pair.Burn(s.env.Ctx, s.alice, s.pair, s.bob)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(9000), amount0)
	s.Require().Equal(math.NewInt(9000), amount1)
	s.Require().Equal(math.NewInt(9000), s.env.Balance(s.T(), s.token0, s.bob))

	r0, r1, _, err := s.env.Pair.GetReserves(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(1000), r0)
	s.Require().Equal(math.NewInt(1000), r1)
}

func (s *KeeperTestSuite) TestBurnWithoutLiquidity() {
	s.seed(10_000, 10_000)
	_, _, err := s.env.Pair.Burn(s.env.Ctx, s.alice, s.pair, s.alice)
	s.Require().ErrorIs(err, types.ErrInsufficientLiquidityBurned)
}

func (s *KeeperTestSuite) TestProtocolFeeMint() {
	feeTo := keepertest.TestAddr("fee-to")
	s.Require().NoError(s.env.Registry.SetFeeTo(s.env.Ctx, s.env.Admin, feeTo))

	s.seed(1_000_000, 1_000_000)
	s.env.Fund(s.T(), s.token0, s.bob, 100_000)
	s.Require().NoError(s.env.Token.Transfer(s.env.Ctx, s.token0, s.bob, s.pair, math.NewInt(100_000)))
	s.Require().NoError(s.env.Pair.Swap(s.env.Ctx, s.bob, s.pair, math.ZeroInt(), math.NewInt(90_661), s.bob))
	s.Require().True(s.lp(feeTo).IsZero())

	// the next liquidity event mints the fee on the grown k
	s.env.Fund(s.T(), s.token0, s.pair, 11_000)
	s.env.Fund(s.T(), s.token1, s.pair, 9_094)
	_, err := s.env.Pair.Mint(s.env.Ctx, s.bob, s.pair, s.bob)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(27), s.lp(feeTo))
}

func (s *KeeperTestSuite) TestFeeOffClearsKLast() {
	feeTo := keepertest.TestAddr("fee-to")
	s.Require().NoError(s.env.Registry.SetFeeTo(s.env.Ctx, s.env.Admin, feeTo))
	s.seed(10_000, 10_000)

	p, err := s.env.Pair.GetPair(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(100_000_000), p.KLast)

	s.Require().NoError(s.env.Registry.SetFeeTo(s.env.Ctx, s.env.Admin, nil))
	s.env.Fund(s.T(), s.token0, s.pair, 1000)
	s.env.Fund(s.T(), s.token1, s.pair, 1000)
	_, err = s.env.Pair.Mint(s.env.Ctx, s.alice, s.pair, s.alice)
	s.Require().NoError(err)

	p, err = s.env.Pair.GetPair(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().True(p.KLast.IsZero())
}

func (s *KeeperTestSuite) TestCumulativePriceAccrues() {
	s.seed(1_000_000, 2_000_000)
	s.env.Ctx = keepertest.AdvanceTime(s.env.Ctx, 10*time.Second)
	s.Require().NoError(s.env.Pair.Sync(s.env.Ctx, s.env.Admin, s.pair))

	p, err := s.env.Pair.GetPair(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(20), p.CumulativePrice0)
	s.Require().True(p.CumulativePrice1.IsZero())
	s.Require().Equal(uint32(keepertest.GenesisTime.Unix()+10), p.BlockTimestampLast)
}

func (s *KeeperTestSuite) TestSkimAndSyncAuthorization() {
	s.seed(10_000, 10_000)
	s.env.Fund(s.T(), s.token0, s.pair, 500)

	err := s.env.Pair.Skim(s.env.Ctx, s.bob, s.pair, s.bob)
	s.Require().ErrorIs(err, types.ErrUnauthorized)
	err = s.env.Pair.Sync(s.env.Ctx, s.bob, s.pair)
	s.Require().ErrorIs(err, types.ErrUnauthorized)

	s.Require().NoError(s.env.Pair.Skim(s.env.Ctx, s.env.Router.Address(), s.pair, s.bob))
	s.Require().Equal(math.NewInt(500), s.env.Balance(s.T(), s.token0, s.bob))
	s.Require().True(s.env.Balance(s.T(), s.token1, s.bob).IsZero())
}

func (s *KeeperTestSuite) TestSkimAccruesPrices() {
	s.seed(1_000_000, 2_000_000)
	s.env.Ctx = keepertest.AdvanceTime(s.env.Ctx, 10*time.Second)
	s.env.Fund(s.T(), s.token0, s.pair, 500)
	s.Require().NoError(s.env.Pair.Skim(s.env.Ctx, s.env.Router.Address(), s.pair, s.bob))

	p, err := s.env.Pair.GetPair(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(1_000_000), p.Reserve0)
	s.Require().Equal(math.NewInt(2_000_000), p.Reserve1)
	s.Require().Equal(math.NewInt(20), p.CumulativePrice0)
	s.Require().Equal(uint32(keepertest.GenesisTime.Unix()+10), p.BlockTimestampLast)
}

func (s *KeeperTestSuite) TestRejectsEmptyRecipient() {
	s.seed(10_000, 10_000)
	router := s.env.Router.Address()

	for _, to := range []sdk.AccAddress{nil, sharedtypes.ZeroAddress()} {
		_, err := s.env.Pair.Mint(s.env.Ctx, router, s.pair, to)
		s.Require().ErrorIs(err, types.ErrInvalidAddress)
		_, _, err = s.env.Pair.Burn(s.env.Ctx, router, s.pair, to)
		s.Require().ErrorIs(err, types.ErrInvalidAddress)
		err = s.env.Pair.Swap(s.env.Ctx, router, s.pair, math.ZeroInt(), math.NewInt(10), to)
		s.Require().ErrorIs(err, types.ErrInvalidAddress)
		err = s.env.Pair.Skim(s.env.Ctx, router, s.pair, to)
		s.Require().ErrorIs(err, types.ErrInvalidAddress)
	}
	s.Require().Equal(math.NewInt(9000), s.lp(s.alice))
}

func (s *KeeperTestSuite) TestSyncAbsorbsDonation() {
	s.seed(10_000, 10_000)
	s.env.Fund(s.T(), s.token1, s.pair, 250)
	s.Require().NoError(s.env.Pair.Sync(s.env.Ctx, s.env.Admin, s.pair))

	_, r1, _, err := s.env.Pair.GetReserves(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(10_250), r1)
}

func (s *KeeperTestSuite) TestLPTransferFrom() {
	liquidity := s.seed(10_000, 10_000)
	half := liquidity.QuoRaw(2)

	err := s.env.Pair.TransferFrom(s.env.Ctx, s.pair, s.bob, s.alice, s.bob, half)
	s.Require().ErrorIs(err, types.ErrInsufficientAllowance)

	s.Require().NoError(s.env.Pair.Approve(s.env.Ctx, s.pair, s.alice, s.bob, half))
	s.Require().NoError(s.env.Pair.TransferFrom(s.env.Ctx, s.pair, s.bob, s.alice, s.bob, half))
	s.Require().Equal(half, s.lp(s.bob))
	s.Require().Equal(liquidity.Sub(half), s.lp(s.alice))

	allowance, err := s.env.Pair.Allowance(s.env.Ctx, s.pair, s.alice, s.bob)
	s.Require().NoError(err)
	s.Require().True(allowance.IsZero())
}

func (s *KeeperTestSuite) TestLPMetadata() {
	name, symbol, decimals, err := s.env.Pair.Metadata(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().Contains([]string{"AAA Token_BBB Token_LP", "BBB Token_AAA Token_LP"}, name)
	s.Require().Contains([]string{"AAA_BBB_LP", "BBB_AAA_LP"}, symbol)
	s.Require().Equal(uint32(12), decimals)
}

func (s *KeeperTestSuite) TestGovernance() {
	newAdmin := keepertest.TestAddr("new-admin")
	err := s.env.Pair.SetAdmin(s.env.Ctx, s.bob, s.pair, newAdmin)
	s.Require().ErrorIs(err, types.ErrUnauthorized)
	err = s.env.Pair.SetAdmin(s.env.Ctx, s.env.Admin, s.pair, sharedtypes.ZeroAddress())
	s.Require().ErrorIs(err, types.ErrInvalidAdmin)
	err = s.env.Pair.SetRouter(s.env.Ctx, s.env.Admin, s.pair, nil)
	s.Require().ErrorIs(err, types.ErrInvalidRouter)

	s.Require().NoError(s.env.Pair.SetAdmin(s.env.Ctx, s.env.Admin, s.pair, newAdmin))
	p, err := s.env.Pair.GetPair(s.env.Ctx, s.pair)
	s.Require().NoError(err)
	s.Require().Equal(newAdmin, p.Admin)
}

func (s *KeeperTestSuite) TestInvariantsHold() {
	s.seed(50_000, 80_000)
	s.env.Fund(s.T(), s.token1, s.bob, 5000)
	s.Require().NoError(s.env.Token.Transfer(s.env.Ctx, s.token1, s.bob, s.pair, math.NewInt(5000)))
	s.Require().NoError(s.env.Pair.Swap(s.env.Ctx, s.bob, s.pair, math.NewInt(2000), math.ZeroInt(), s.bob))

	msg, broken := keeper.AllInvariants(*s.env.Pair)(s.env.Ctx)
	s.Require().False(broken, msg)
}

func (s *KeeperTestSuite) TestGenesisRoundTrip() {
	liquidity := s.seed(10_000, 20_000)
	s.Require().NoError(s.env.Pair.Approve(s.env.Ctx, s.pair, s.alice, s.bob, liquidity))

	gs, err := s.env.Pair.ExportGenesis(s.env.Ctx)
	s.Require().NoError(err)
	s.Require().Len(gs.Pairs, 1)
	s.Require().Len(gs.LPAllowances, 1)

	fresh := keepertest.NewAMMEnv(s.T())
	s.Require().NoError(fresh.Pair.InitGenesis(fresh.Ctx, *gs))
	exported, err := fresh.Pair.ExportGenesis(fresh.Ctx)
	s.Require().NoError(err)

	want, err := json.Marshal(gs)
	s.Require().NoError(err)
	got, err := json.Marshal(exported)
	s.Require().NoError(err)
	s.Require().JSONEq(string(want), string(got))
}
