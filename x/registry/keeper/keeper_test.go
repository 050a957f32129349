package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/suite"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	pairtypes "github.com/paw-chain/amm/x/pair/types"
	"github.com/paw-chain/amm/x/registry/types"
	sharedtypes "github.com/paw-chain/amm/x/shared/types"
)

type KeeperTestSuite struct {
	suite.Suite

	env    *keepertest.AMMEnv
	bob    sdk.AccAddress
	tokenA sdk.AccAddress
	tokenB sdk.AccAddress
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

func (s *KeeperTestSuite) SetupTest() {
	s.env = keepertest.NewAMMEnv(s.T())
	s.bob = keepertest.TestAddr("bob")
	s.tokenA = s.env.CreateToken(s.T(), "AAA")
	s.tokenB = s.env.CreateToken(s.T(), "BBB")
}

func (s *KeeperTestSuite) TestCreatePairRegistersBothOrders() {
	pair, err := s.env.Registry.CreatePair(s.env.Ctx, s.bob, s.tokenA, s.tokenB)
	s.Require().NoError(err)
	s.Require().Equal(pair, s.env.Registry.GetPair(s.env.Ctx, s.tokenA, s.tokenB))
	s.Require().Equal(pair, s.env.Registry.GetPair(s.env.Ctx, s.tokenB, s.tokenA))

	p, err := s.env.Pair.GetPair(s.env.Ctx, pair)
	s.Require().NoError(err)
	token0, token1 := sharedtypes.CanonicalOrder(s.tokenA, s.tokenB)
	s.Require().Equal(token0, p.Token0)
	s.Require().Equal(token1, p.Token1)
	s.Require().Equal(s.env.Admin, p.Admin)
	s.Require().Equal(s.env.Router.Address(), p.Router)
	s.Require().Equal("AAA_BBB_LP", p.Symbol)
	s.Require().Equal(pairtypes.PairAddress(s.env.Registry.Address(), token0, token1), pair)

	n, err := s.env.Registry.GetPairLength(s.env.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), n)
}

func (s *KeeperTestSuite) TestCreatePairRejectsInvalidTokens() {
	_, err := s.env.Registry.CreatePair(s.env.Ctx, s.bob, s.tokenA, s.tokenA)
	s.Require().ErrorIs(err, types.ErrInvalidTokens)

	_, err = s.env.Registry.CreatePair(s.env.Ctx, s.bob, s.tokenA, sharedtypes.ZeroAddress())
	s.Require().ErrorIs(err, types.ErrInvalidTokens)

	_, err = s.env.Registry.CreatePair(s.env.Ctx, s.bob, s.tokenA, keepertest.TestAddr("unknown"))
	s.Require().ErrorIs(err, types.ErrInvalidTokens)
}

func (s *KeeperTestSuite) TestCreatePairTwice() {
	s.env.CreatePair(s.T(), s.tokenA, s.tokenB)
	_, err := s.env.Registry.CreatePair(s.env.Ctx, s.bob, s.tokenB, s.tokenA)
	s.Require().ErrorIs(err, types.ErrPairExists)
}

func (s *KeeperTestSuite) TestBridgedAssetNamesLP() {
	err := s.env.Registry.AddBridgedAsset(s.env.Ctx, s.bob, types.BridgedAsset{Token: s.tokenA, Name: "Bridged A", Symbol: "bA"})
	s.Require().ErrorIs(err, types.ErrUnauthorized)

	asset := types.BridgedAsset{Token: s.tokenA, Name: "Bridged A", Symbol: "bA", Decimals: 18}
	s.Require().NoError(s.env.Registry.AddBridgedAsset(s.env.Ctx, s.env.Admin, asset))
	err = s.env.Registry.AddBridgedAsset(s.env.Ctx, s.env.Admin, asset)
	s.Require().ErrorIs(err, types.ErrBridgedAssetExists)

	pair := s.env.CreatePair(s.T(), s.tokenA, s.tokenB)
	p, err := s.env.Pair.GetPair(s.env.Ctx, pair)
	s.Require().NoError(err)
	s.Require().Equal("bA_BBB_LP", p.Symbol)
	s.Require().Equal("Bridged A_BBB Token_LP", p.Name)

	s.Require().NoError(s.env.Registry.RemoveBridgedAsset(s.env.Ctx, s.env.Admin, s.tokenA))
	_, found, err := s.env.Registry.GetBridgedAsset(s.env.Ctx, s.tokenA)
	s.Require().NoError(err)
	s.Require().False(found)
}

func (s *KeeperTestSuite) TestAddAndRemovePair() {
	imported := keepertest.TestAddr("imported-pair")
	err := s.env.Registry.AddPair(s.env.Ctx, s.bob, s.tokenA, s.tokenB, imported)
	s.Require().ErrorIs(err, types.ErrUnauthorized)

	s.Require().NoError(s.env.Registry.AddPair(s.env.Ctx, s.env.Admin, s.tokenA, s.tokenB, imported))
	s.Require().Equal(imported, s.env.Registry.GetPair(s.env.Ctx, s.tokenB, s.tokenA))
	err = s.env.Registry.AddPair(s.env.Ctx, s.env.Admin, s.tokenB, s.tokenA, imported)
	s.Require().ErrorIs(err, types.ErrPairExists)

	addrs, err := s.env.Registry.GetAllPairAddresses(s.env.Ctx)
	s.Require().NoError(err)
	s.Require().Equal([]sdk.AccAddress{imported}, addrs)

	s.Require().NoError(s.env.Registry.RemovePair(s.env.Ctx, s.env.Admin, s.tokenA, s.tokenB))
	s.Require().Nil(s.env.Registry.GetPair(s.env.Ctx, s.tokenA, s.tokenB))
}

func (s *KeeperTestSuite) TestFeeSettings() {
	feeTo := keepertest.TestAddr("fee-to")
	err := s.env.Registry.SetFeeTo(s.env.Ctx, s.bob, feeTo)
	s.Require().ErrorIs(err, types.ErrUnauthorized)

	s.Require().NoError(s.env.Registry.SetFeeTo(s.env.Ctx, s.env.Admin, feeTo))
	s.Require().Equal(feeTo, s.env.Registry.GetFeeTo(s.env.Ctx))

	s.Require().NoError(s.env.Registry.SetFeeToSetter(s.env.Ctx, s.env.Admin, s.bob))
	err = s.env.Registry.SetFeeTo(s.env.Ctx, s.env.Admin, nil)
	s.Require().ErrorIs(err, types.ErrUnauthorized)
	s.Require().NoError(s.env.Registry.SetFeeTo(s.env.Ctx, s.bob, nil))
	s.Require().Empty(s.env.Registry.GetFeeTo(s.env.Ctx))
}

func (s *KeeperTestSuite) TestSetRouterAppliesToNewPairs() {
	newRouter := keepertest.TestAddr("router-2")
	err := s.env.Registry.SetRouter(s.env.Ctx, s.bob, newRouter)
	s.Require().ErrorIs(err, types.ErrUnauthorized)
	s.Require().NoError(s.env.Registry.SetRouter(s.env.Ctx, s.env.Admin, newRouter))

	pair := s.env.CreatePair(s.T(), s.tokenA, s.tokenB)
	p, err := s.env.Pair.GetPair(s.env.Ctx, pair)
	s.Require().NoError(err)
	s.Require().Equal(newRouter, p.Router)
}

func (s *KeeperTestSuite) TestGenesisRoundTrip() {
	s.env.CreatePair(s.T(), s.tokenA, s.tokenB)
	s.Require().NoError(s.env.Registry.AddBridgedAsset(s.env.Ctx, s.env.Admin,
		types.BridgedAsset{Token: s.tokenB, Name: "Bridged B", Symbol: "bB"}))

	gs, err := s.env.Registry.ExportGenesis(s.env.Ctx)
	s.Require().NoError(err)
	s.Require().Len(gs.Pairs, 1)
	s.Require().Len(gs.BridgedAssets, 1)

	fresh := keepertest.NewAMMEnv(s.T())
	s.Require().NoError(fresh.Registry.InitGenesis(fresh.Ctx, *gs))
	s.Require().Equal(gs.Pairs[0].Pair, fresh.Registry.GetPair(fresh.Ctx, s.tokenA, s.tokenB))

	exported, err := fresh.Registry.ExportGenesis(fresh.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(gs, exported)
}
