package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/router/types"
)

// GetLiquidityJoins returns the pairs user has provided liquidity to.
func (k Keeper) GetLiquidityJoins(ctx context.Context, user sdk.AccAddress) ([]types.LiquidityJoin, error) {
	bz := k.getStore(ctx).Get(types.GetLiquidityJoinKey(user))
	if bz == nil {
		return []types.LiquidityJoin{}, nil
	}
	var joins []types.LiquidityJoin
	if err := json.Unmarshal(bz, &joins); err != nil {
		return nil, fmt.Errorf("GetLiquidityJoins: unmarshal: %w", err)
	}
	return joins, nil
}

func (k Keeper) setLiquidityJoins(ctx context.Context, user sdk.AccAddress, joins []types.LiquidityJoin) error {
	bz, err := json.Marshal(joins)
	if err != nil {
		return fmt.Errorf("setLiquidityJoins: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.GetLiquidityJoinKey(user), bz)
	return nil
}

// recordJoin appends pair to user's history unless it is already there.
func (k Keeper) recordJoin(ctx context.Context, user sdk.AccAddress, join types.LiquidityJoin) error {
	joins, err := k.GetLiquidityJoins(ctx, user)
	if err != nil {
		return err
	}
	for _, j := range joins {
		if j.Pair.Equals(join.Pair) {
			return nil
		}
	}
	return k.setLiquidityJoins(ctx, user, append(joins, join))
}

// GetAllLiquidityJoins lists the join history of every user.
func (k Keeper) GetAllLiquidityJoins(ctx context.Context) ([]types.UserLiquidityJoins, error) {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.LiquidityJoinKeyPrefix)
	defer iter.Close()

	var out []types.UserLiquidityJoins
	for ; iter.Valid(); iter.Next() {
		user, err := userFromKey(iter.Key(), types.LiquidityJoinKeyPrefix)
		if err != nil {
			return nil, err
		}
		var joins []types.LiquidityJoin
		if err := json.Unmarshal(iter.Value(), &joins); err != nil {
			return nil, fmt.Errorf("GetAllLiquidityJoins: unmarshal: %w", err)
		}
		out = append(out, types.UserLiquidityJoins{User: user, Joins: joins})
	}
	return out, nil
}
