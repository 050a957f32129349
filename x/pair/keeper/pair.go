package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/pair/types"
	sharedkeeper "github.com/paw-chain/amm/x/shared/keeper"
	sharedtypes "github.com/paw-chain/amm/x/shared/types"
)

var _ sharedkeeper.PairReaderV1 = (*Keeper)(nil)

// GetPair returns the state of the pair at addr.
func (k Keeper) GetPair(ctx context.Context, addr sdk.AccAddress) (types.Pair, error) {
	bz := k.getStore(ctx).Get(types.GetPairKey(addr))
	if bz == nil {
		return types.Pair{}, types.ErrPairNotFound.Wrapf("pair %s", addr)
	}
	var p types.Pair
	if err := json.Unmarshal(bz, &p); err != nil {
		return types.Pair{}, fmt.Errorf("GetPair: unmarshal: %w", err)
	}
	return p, nil
}

// SetPair stores the pair state.
func (k Keeper) SetPair(ctx context.Context, p types.Pair) error {
	bz, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("SetPair: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.GetPairKey(p.Address), bz)
	return nil
}

// HasPair reports whether a pair exists at addr.
func (k Keeper) HasPair(ctx context.Context, addr sdk.AccAddress) bool {
	return k.getStore(ctx).Has(types.GetPairKey(addr))
}

// InitPair instantiates an empty pair. The address is derived from the
// registry and the canonical tokens, so instantiating twice fails.
func (k Keeper) InitPair(ctx context.Context, init types.InitPair) (sdk.AccAddress, error) {
	p, err := types.NewPair(init)
	if err != nil {
		return nil, err
	}
	if k.HasPair(ctx, p.Address) {
		return nil, types.ErrPairExists.Wrapf("pair %s", p.Address)
	}
	if err := k.SetPair(ctx, p); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePairInitialized,
			sdk.NewAttribute(types.AttributeKeyPair, p.Address.String()),
			sdk.NewAttribute("token0", p.Token0.String()),
			sdk.NewAttribute("token1", p.Token1.String()),
			sdk.NewAttribute("symbol", p.Symbol),
		),
	)
	return p.Address, nil
}

// GetAllPairs returns every pair in address order.
func (k Keeper) GetAllPairs(ctx context.Context) ([]types.Pair, error) {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PairKeyPrefix)
	defer iter.Close()

	var pairs []types.Pair
	for ; iter.Valid(); iter.Next() {
		var p types.Pair
		if err := json.Unmarshal(iter.Value(), &p); err != nil {
			return nil, fmt.Errorf("GetAllPairs: unmarshal: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// GetReserves returns the reserves and the timestamp of their last update.
func (k Keeper) GetReserves(ctx context.Context, pair sdk.AccAddress) (math.Int, math.Int, uint32, error) {
	p, err := k.GetPair(ctx, pair)
	if err != nil {
		return math.Int{}, math.Int{}, 0, err
	}
	return p.Reserve0, p.Reserve1, p.BlockTimestampLast, nil
}

// GetPairInfo returns a read-only view of the pair.
func (k Keeper) GetPairInfo(ctx context.Context, pair sdk.AccAddress) (sharedkeeper.PairInfo, bool) {
	p, err := k.GetPair(ctx, pair)
	if err != nil {
		return sharedkeeper.PairInfo{}, false
	}
	return sharedkeeper.PairInfo{
		Address:            p.Address,
		Token0:             p.Token0,
		Token1:             p.Token1,
		Reserve0:           p.Reserve0,
		Reserve1:           p.Reserve1,
		BlockTimestampLast: p.BlockTimestampLast,
		TotalSupply:        p.TotalSupply,
	}, true
}

// SetAdmin hands pair administration to newAdmin. Admin only.
func (k Keeper) SetAdmin(ctx context.Context, caller, pair, newAdmin sdk.AccAddress) error {
	if sharedtypes.IsZeroAddress(newAdmin) {
		return types.ErrInvalidAdmin.Wrap("admin cannot be the zero address")
	}
	return k.setGovernance(ctx, caller, pair, func(p *types.Pair) { p.Admin = newAdmin }, types.EventTypeAdminSet, newAdmin)
}

// SetRouter changes the router allowed to skim and sync. Admin only.
func (k Keeper) SetRouter(ctx context.Context, caller, pair, router sdk.AccAddress) error {
	if sharedtypes.IsZeroAddress(router) {
		return types.ErrInvalidRouter.Wrap("router cannot be the zero address")
	}
	return k.setGovernance(ctx, caller, pair, func(p *types.Pair) { p.Router = router }, types.EventTypeRouterSet, router)
}

func (k Keeper) setGovernance(ctx context.Context, caller, pair sdk.AccAddress, mutate func(*types.Pair), eventType string, value sdk.AccAddress) error {
	p, err := k.GetPair(ctx, pair)
	if err != nil {
		return err
	}
	if err := sharedkeeper.ValidateAuthority(types.ErrUnauthorized, caller, p.Admin); err != nil {
		return err
	}
	mutate(&p)
	if err := k.SetPair(ctx, p); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
			sdk.NewAttribute(types.AttributeKeyAddress, value.String()),
		),
	)
	k.Logger(ctx).Info("pair governance updated", "pair", pair.String(), "event", eventType, "value", value.String())
	return nil
}
