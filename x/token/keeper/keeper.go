package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/paw-chain/amm/x/shared/keeper"
	"github.com/paw-chain/amm/x/token/types"
)

var (
	_ sharedkeeper.AssetLedgerV1   = (*Keeper)(nil)
	_ sharedkeeper.NativeWrapperV1 = (*Keeper)(nil)
)

// Keeper is the fungible-asset ledger. It tracks balances, allowances and
// supply for every registered token and escrows native coins for wrappers.
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
}

// NewKeeper creates a new token Keeper instance
func NewKeeper(key storetypes.StoreKey, bankKeeper types.BankKeeper) *Keeper {
	return &Keeper{
		storeKey:   key,
		bankKeeper: bankKeeper,
	}
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// getStore returns the KVStore for the token module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
