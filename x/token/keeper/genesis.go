package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/amm/x/token/types"
)

// InitGenesis loads tokens, balances and allowances.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}
	for _, t := range gs.Tokens {
		if err := k.SetToken(ctx, t); err != nil {
			return err
		}
	}
	for _, b := range gs.Balances {
		if err := k.setBalance(ctx, b.Token, b.Owner, b.Amount); err != nil {
			return err
		}
	}
	for _, a := range gs.Allowances {
		if err := k.setAllowance(ctx, a.Token, a.Owner, a.Spender, a.Amount); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis dumps the whole ledger.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	tokens, err := k.GetAllTokens(ctx)
	if err != nil {
		return nil, err
	}
	gs := &types.GenesisState{Tokens: tokens}

	store := k.getStore(ctx)
	balIter := storetypes.KVStorePrefixIterator(store, types.BalanceKeyPrefix)
	defer balIter.Close()
	for ; balIter.Valid(); balIter.Next() {
		parts, err := splitAddresses(balIter.Key()[len(types.BalanceKeyPrefix):], 2)
		if err != nil {
			return nil, fmt.Errorf("ExportGenesis: balance key: %w", err)
		}
		var amt math.Int
		if err := amt.Unmarshal(balIter.Value()); err != nil {
			return nil, fmt.Errorf("ExportGenesis: balance: %w", err)
		}
		gs.Balances = append(gs.Balances, types.Balance{Token: parts[0], Owner: parts[1], Amount: amt})
	}

	allowIter := storetypes.KVStorePrefixIterator(store, types.AllowanceKeyPrefix)
	defer allowIter.Close()
	for ; allowIter.Valid(); allowIter.Next() {
		parts, err := splitAddresses(allowIter.Key()[len(types.AllowanceKeyPrefix):], 3)
		if err != nil {
			return nil, fmt.Errorf("ExportGenesis: allowance key: %w", err)
		}
		var amt math.Int
		if err := amt.Unmarshal(allowIter.Value()); err != nil {
			return nil, fmt.Errorf("ExportGenesis: allowance: %w", err)
		}
		gs.Allowances = append(gs.Allowances, types.Allowance{Token: parts[0], Owner: parts[1], Spender: parts[2], Amount: amt})
	}
	return gs, nil
}

// splitAddresses decodes n consecutive length-prefixed addresses.
func splitAddresses(bz []byte, n int) ([]sdk.AccAddress, error) {
	out := make([]sdk.AccAddress, 0, n)
	for i := 0; i < n; i++ {
		if len(bz) == 0 {
			return nil, fmt.Errorf("expected %d addresses, got %d", n, i)
		}
		l := int(bz[0])
		if len(bz) < 1+l || l > address.MaxAddrLen {
			return nil, fmt.Errorf("truncated address %d", i)
		}
		out = append(out, sdk.AccAddress(bz[1:1+l]))
		bz = bz[1+l:]
	}
	return out, nil
}
