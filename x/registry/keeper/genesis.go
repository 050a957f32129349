package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/amm/x/registry/types"
)

// InitGenesis loads the configuration, the pair map and bridged assets.
// Pairs listed here must already exist in the pair module's genesis.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}
	if err := k.SetConfig(ctx, gs.Config); err != nil {
		return err
	}
	for _, p := range gs.Pairs {
		k.setPair(ctx, p.Token0, p.Token1, p.Pair)
	}
	for _, a := range gs.BridgedAssets {
		if err := k.setBridgedAsset(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis dumps the registry state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	pairs, err := k.GetAllPairs(ctx)
	if err != nil {
		return nil, err
	}
	assets, err := k.GetAllBridgedAssets(ctx)
	if err != nil {
		return nil, err
	}
	return &types.GenesisState{Config: cfg, Pairs: pairs, BridgedAssets: assets}, nil
}
