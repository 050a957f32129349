package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/amm/x/router/types"
)

// InitGenesis initializes the router module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: invalid genesis state: %w", err)
	}
	if err := k.SetConfig(ctx, gs.Config); err != nil {
		return fmt.Errorf("InitGenesis: config: %w", err)
	}
	k.setPaused(ctx, gs.Paused)
	k.setLock(ctx, false)

	for _, p := range gs.PendingRefunds {
		if err := k.setPendingRefunds(ctx, p.User, p.Refunds); err != nil {
			return fmt.Errorf("InitGenesis: pending refunds of %s: %w", p.User, err)
		}
		k.metrics.PendingRefundsOutstanding.Inc()
	}
	for _, j := range gs.LiquidityJoins {
		if err := k.setLiquidityJoins(ctx, j.User, j.Joins); err != nil {
			return fmt.Errorf("InitGenesis: liquidity joins of %s: %w", j.User, err)
		}
	}
	return nil
}

// ExportGenesis exports the router module's state to a genesis state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: config: %w", err)
	}
	pending, err := k.GetAllPendingRefunds(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: pending refunds: %w", err)
	}
	joins, err := k.GetAllLiquidityJoins(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: liquidity joins: %w", err)
	}
	return &types.GenesisState{
		Config:         cfg,
		Paused:         k.IsPaused(ctx),
		PendingRefunds: pending,
		LiquidityJoins: joins,
	}, nil
}
