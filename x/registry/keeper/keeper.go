package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/paw-chain/amm/x/registry/types"
)

// Keeper maps unordered token pairs to pair addresses and holds the protocol
// fee settings consulted by every pair.
type Keeper struct {
	storeKey    storetypes.StoreKey
	tokenKeeper types.TokenKeeper
	pairKeeper  types.PairKeeper
	address     sdk.AccAddress
}

// NewKeeper creates a new registry Keeper instance
func NewKeeper(key storetypes.StoreKey, tokenKeeper types.TokenKeeper, pairKeeper types.PairKeeper) *Keeper {
	return &Keeper{
		storeKey:    key,
		tokenKeeper: tokenKeeper,
		pairKeeper:  pairKeeper,
		address:     authtypes.NewModuleAddress(types.ModuleName),
	}
}

// Address is the registry's own account, recorded on every pair it creates.
func (k Keeper) Address() sdk.AccAddress {
	return k.address
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// getStore returns the KVStore for the registry module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
