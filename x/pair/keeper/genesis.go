package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/amm/x/pair/types"
)

// InitGenesis loads pairs and their LP ledgers.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}
	for _, p := range gs.Pairs {
		if err := k.SetPair(ctx, p); err != nil {
			return err
		}
	}
	for _, b := range gs.LPBalances {
		if err := k.writeLP(ctx, types.GetLPBalanceKey(b.Pair, b.Owner), b.Amount); err != nil {
			return err
		}
	}
	for _, a := range gs.LPAllowances {
		if err := k.writeLP(ctx, types.GetLPAllowanceKey(a.Pair, a.Owner, a.Spender), a.Amount); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis dumps every pair with its LP ledger.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	pairs, err := k.GetAllPairs(ctx)
	if err != nil {
		return nil, err
	}
	gs := &types.GenesisState{Pairs: pairs}
	for _, p := range pairs {
		balances, err := k.GetLPBalances(ctx, p.Address)
		if err != nil {
			return nil, err
		}
		gs.LPBalances = append(gs.LPBalances, balances...)

		iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.GetLPAllowancePrefix(p.Address))
		for ; iter.Valid(); iter.Next() {
			rest := iter.Key()[len(types.GetLPAllowancePrefix(p.Address)):]
			owner, spender, err := splitPair(rest)
			if err != nil {
				iter.Close()
				return nil, fmt.Errorf("ExportGenesis: allowance key: %w", err)
			}
			var amt math.Int
			if err := amt.Unmarshal(iter.Value()); err != nil {
				iter.Close()
				return nil, fmt.Errorf("ExportGenesis: allowance: %w", err)
			}
			gs.LPAllowances = append(gs.LPAllowances, types.LPAllowance{Pair: p.Address, Owner: owner, Spender: spender, Amount: amt})
		}
		iter.Close()
	}
	return gs, nil
}

// GetLPBalances lists every LP holder of pair.
func (k Keeper) GetLPBalances(ctx context.Context, pair sdk.AccAddress) ([]types.LPBalance, error) {
	prefix := types.GetLPBalancePrefix(pair)
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iter.Close()

	var out []types.LPBalance
	for ; iter.Valid(); iter.Next() {
		rest := iter.Key()[len(prefix):]
		if len(rest) == 0 || len(rest) != 1+int(rest[0]) {
			return nil, fmt.Errorf("GetLPBalances: malformed key")
		}
		var amt math.Int
		if err := amt.Unmarshal(iter.Value()); err != nil {
			return nil, fmt.Errorf("GetLPBalances: unmarshal: %w", err)
		}
		out = append(out, types.LPBalance{Pair: pair, Owner: sdk.AccAddress(rest[1:]), Amount: amt})
	}
	return out, nil
}

func splitPair(bz []byte) (sdk.AccAddress, sdk.AccAddress, error) {
	if len(bz) == 0 || int(bz[0]) > address.MaxAddrLen || len(bz) < 1+int(bz[0]) {
		return nil, nil, fmt.Errorf("truncated owner")
	}
	owner := sdk.AccAddress(bz[1 : 1+int(bz[0])])
	bz = bz[1+int(bz[0]):]
	if len(bz) == 0 || len(bz) != 1+int(bz[0]) {
		return nil, nil, fmt.Errorf("malformed spender")
	}
	return owner, sdk.AccAddress(bz[1:]), nil
}
