package keeper

import (
	"context"
	"strconv"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	pairtypes "github.com/paw-chain/amm/x/pair/types"
	"github.com/paw-chain/amm/x/registry/types"
	sharedkeeper "github.com/paw-chain/amm/x/shared/keeper"
	sharedtypes "github.com/paw-chain/amm/x/shared/types"
)

// GetPair returns the pair of two tokens in either order, or nil when none is
// registered.
func (k Keeper) GetPair(ctx context.Context, tokenA, tokenB sdk.AccAddress) sdk.AccAddress {
	token0, token1 := sharedtypes.CanonicalOrder(tokenA, tokenB)
	bz := k.getStore(ctx).Get(types.GetPairKey(token0, token1))
	if bz == nil {
		return nil
	}
	return sdk.AccAddress(bz)
}

func (k Keeper) setPair(ctx context.Context, token0, token1, pair sdk.AccAddress) {
	k.getStore(ctx).Set(types.GetPairKey(token0, token1), pair)
}

// CreatePair instantiates the pair for two tokens and registers it. The LP
// token is named after the tokens in the order given, using bridged-asset
// metadata where registered. The new pair inherits the registry's admin and
// router.
func (k Keeper) CreatePair(ctx context.Context, caller, tokenA, tokenB sdk.AccAddress) (sdk.AccAddress, error) {
	if tokenA.Equals(tokenB) {
		return nil, types.ErrInvalidTokens.Wrap("identical tokens")
	}
	if sharedtypes.IsZeroAddress(tokenA) || sharedtypes.IsZeroAddress(tokenB) {
		return nil, types.ErrInvalidTokens.Wrap("zero token address")
	}
	if k.pairKeeper == nil {
		return nil, types.ErrPairKeeperUnavailable
	}
	token0, token1 := sharedtypes.CanonicalOrder(tokenA, tokenB)
	if k.getStore(ctx).Has(types.GetPairKey(token0, token1)) {
		return nil, types.ErrPairExists.Wrapf("%s/%s", tokenA, tokenB)
	}

	nameA, symbolA, err := k.tokenLabel(ctx, tokenA)
	if err != nil {
		return nil, err
	}
	nameB, symbolB, err := k.tokenLabel(ctx, tokenB)
	if err != nil {
		return nil, err
	}
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	pair, err := k.pairKeeper.InitPair(ctx, pairtypes.InitPair{
		Name:     types.LPName(nameA, nameB),
		Symbol:   types.LPName(symbolA, symbolB),
		Decimals: types.LPDecimals,
		Registry: k.address,
		TokenA:   tokenA,
		TokenB:   tokenB,
		Admin:    cfg.Admin,
		Router:   cfg.Router,
	})
	if err != nil {
		return nil, types.ErrPairInstantiation.Wrap(err.Error())
	}
	k.setPair(ctx, token0, token1, pair)

	count, err := k.GetPairLength(ctx)
	if err != nil {
		return nil, err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePairCreated,
			sdk.NewAttribute(types.AttributeKeyToken0, token0.String()),
			sdk.NewAttribute(types.AttributeKeyToken1, token1.String()),
			sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
			sdk.NewAttribute(types.AttributeKeyPairNumber, strconv.FormatUint(count, 10)),
			sdk.NewAttribute("creator", caller.String()),
		),
	)
	k.Logger(ctx).Info("pair created", "pair", pair.String(), "token0", token0.String(), "token1", token1.String())

	return pair, nil
}

// tokenLabel returns the name and symbol used to label a token in LP metadata.
func (k Keeper) tokenLabel(ctx context.Context, token sdk.AccAddress) (string, string, error) {
	if asset, found, err := k.GetBridgedAsset(ctx, token); err != nil {
		return "", "", err
	} else if found {
		return asset.Name, asset.Symbol, nil
	}
	t, err := k.tokenKeeper.GetToken(ctx, token)
	if err != nil {
		return "", "", types.ErrInvalidTokens.Wrapf("token %s: %v", token, err)
	}
	return t.Name, t.Symbol, nil
}

// AddPair imports an existing pair into the map. Admin only.
func (k Keeper) AddPair(ctx context.Context, caller, tokenA, tokenB, pair sdk.AccAddress) error {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}
	if err := sharedkeeper.ValidateAuthority(types.ErrUnauthorized, caller, cfg.Admin); err != nil {
		return err
	}
	token0, token1 := sharedtypes.CanonicalOrder(tokenA, tokenB)
	if k.getStore(ctx).Has(types.GetPairKey(token0, token1)) {
		return types.ErrPairExists.Wrapf("%s/%s", tokenA, tokenB)
	}
	k.setPair(ctx, token0, token1, pair)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePairAdded,
			sdk.NewAttribute(types.AttributeKeyToken0, token0.String()),
			sdk.NewAttribute(types.AttributeKeyToken1, token1.String()),
			sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
		),
	)
	return nil
}

// RemovePair drops a pair from the map. The pair itself keeps its state. Admin only.
func (k Keeper) RemovePair(ctx context.Context, caller, tokenA, tokenB sdk.AccAddress) error {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}
	if err := sharedkeeper.ValidateAuthority(types.ErrUnauthorized, caller, cfg.Admin); err != nil {
		return err
	}
	token0, token1 := sharedtypes.CanonicalOrder(tokenA, tokenB)
	k.getStore(ctx).Delete(types.GetPairKey(token0, token1))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePairRemoved,
			sdk.NewAttribute(types.AttributeKeyToken0, token0.String()),
			sdk.NewAttribute(types.AttributeKeyToken1, token1.String()),
		),
	)
	return nil
}

// GetAllPairs returns every registered pair in key order.
func (k Keeper) GetAllPairs(ctx context.Context) ([]types.PairRecord, error) {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PairKeyPrefix)
	defer iter.Close()

	var pairs []types.PairRecord
	for ; iter.Valid(); iter.Next() {
		token0, token1, err := types.ParsePairKey(iter.Key())
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, types.PairRecord{Token0: token0, Token1: token1, Pair: sdk.AccAddress(iter.Value())})
	}
	return pairs, nil
}

// GetAllPairAddresses returns the address of every registered pair.
func (k Keeper) GetAllPairAddresses(ctx context.Context) ([]sdk.AccAddress, error) {
	pairs, err := k.GetAllPairs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]sdk.AccAddress, len(pairs))
	for i, p := range pairs {
		out[i] = p.Pair
	}
	return out, nil
}

// GetPairLength returns the number of registered pairs.
func (k Keeper) GetPairLength(ctx context.Context) (uint64, error) {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PairKeyPrefix)
	defer iter.Close()

	var n uint64
	for ; iter.Valid(); iter.Next() {
		n++
	}
	return n, nil
}
