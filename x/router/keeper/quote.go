package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/router/types"
)

// SortTokens orders two tokens the way pairs store them.
func (k Keeper) SortTokens(tokenA, tokenB sdk.AccAddress) (sdk.AccAddress, sdk.AccAddress, error) {
	return types.SortTokens(tokenA, tokenB)
}

// Quote returns the amount of B worth amountA at the given reserves.
func (k Keeper) Quote(amountA, reserveA, reserveB math.Int) (math.Int, error) {
	return types.Quote(amountA, reserveA, reserveB)
}

// GetAmountOut returns the output of a single hop.
func (k Keeper) GetAmountOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	return types.GetAmountOut(amountIn, reserveIn, reserveOut)
}

// GetAmountIn returns the input a single hop needs for amountOut.
func (k Keeper) GetAmountIn(amountOut, reserveIn, reserveOut math.Int) (math.Int, error) {
	return types.GetAmountIn(amountOut, reserveIn, reserveOut)
}

// PairFor returns the pair of two tokens, nil when none is registered.
func (k Keeper) PairFor(ctx context.Context, tokenA, tokenB sdk.AccAddress) sdk.AccAddress {
	return k.registryKeeper.GetPair(ctx, tokenA, tokenB)
}

// GetReserves returns the reserves of the pair of tokenA and tokenB oriented
// to the argument order, and the pair address.
func (k Keeper) GetReserves(ctx context.Context, tokenA, tokenB sdk.AccAddress) (math.Int, math.Int, sdk.AccAddress, error) {
	if _, _, err := types.SortTokens(tokenA, tokenB); err != nil {
		return math.Int{}, math.Int{}, nil, err
	}
	pair := k.PairFor(ctx, tokenA, tokenB)
	if pair.Empty() {
		return math.Int{}, math.Int{}, nil, types.ErrPairNotFound.Wrapf("%s/%s", tokenA, tokenB)
	}
	info, found := k.pairKeeper.GetPairInfo(ctx, pair)
	if !found {
		return math.Int{}, math.Int{}, nil, types.ErrPairNotFound.Wrapf("pair %s has no state", pair)
	}
	if tokenA.Equals(info.Token0) {
		return info.Reserve0, info.Reserve1, pair, nil
	}
	return info.Reserve1, info.Reserve0, pair, nil
}

func (k Keeper) reservesFunc(ctx context.Context) types.ReservesFunc {
	return func(a, b sdk.AccAddress) (math.Int, math.Int, error) {
		reserveA, reserveB, _, err := k.GetReserves(ctx, a, b)
		return reserveA, reserveB, err
	}
}

// GetAmountsOut quotes a swap of exactly amountIn along path.
func (k Keeper) GetAmountsOut(ctx context.Context, amountIn math.Int, path []sdk.AccAddress) ([]math.Int, error) {
	return types.GetAmountsOut(amountIn, path, k.reservesFunc(ctx))
}

// GetAmountsIn quotes the inputs along path needed for exactly amountOut.
func (k Keeper) GetAmountsIn(ctx context.Context, amountOut math.Int, path []sdk.AccAddress) ([]math.Int, error) {
	return types.GetAmountsIn(amountOut, path, k.reservesFunc(ctx))
}

// resolvePairs returns the pair of every hop of path.
func (k Keeper) resolvePairs(ctx context.Context, path []sdk.AccAddress) ([]sdk.AccAddress, error) {
	pairs := make([]sdk.AccAddress, len(path)-1)
	for i := range pairs {
		pairs[i] = k.PairFor(ctx, path[i], path[i+1])
		if pairs[i].Empty() {
			return nil, types.ErrPairNotFound.Wrapf("%s/%s", path[i], path[i+1])
		}
	}
	return pairs, nil
}
