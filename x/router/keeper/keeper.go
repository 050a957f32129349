package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/paw-chain/amm/x/router/types"
)

// Keeper of the router store. The router owns no reserves; it holds tokens
// only while an operation is in flight and records them as pending refunds.
type Keeper struct {
	storeKey       storetypes.StoreKey
	assetLedger    types.AssetLedger
	nativeWrapper  types.NativeWrapper
	pairKeeper     types.PairKeeper
	registryKeeper types.RegistryKeeper
	bankKeeper     types.BankKeeper
	address        sdk.AccAddress
	metrics        *RouterMetrics
}

// NewKeeper creates a new router Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	assetLedger types.AssetLedger,
	nativeWrapper types.NativeWrapper,
	pairKeeper types.PairKeeper,
	registryKeeper types.RegistryKeeper,
	bankKeeper types.BankKeeper,
) *Keeper {
	return &Keeper{
		storeKey:       key,
		assetLedger:    assetLedger,
		nativeWrapper:  nativeWrapper,
		pairKeeper:     pairKeeper,
		registryKeeper: registryKeeper,
		bankKeeper:     bankKeeper,
		address:        authtypes.NewModuleAddress(types.ModuleName),
		metrics:        NewRouterMetrics(),
	}
}

// Address is the router's account. Users approve it as spender and pairs
// accept it as their router.
func (k Keeper) Address() sdk.AccAddress {
	return k.address
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// getStore returns the KVStore for the router module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// step runs one cross-module call in a cached context and commits it only
// when it succeeds. Earlier steps of the same operation stay committed.
func (k Keeper) step(ctx sdk.Context, fn func(sdk.Context) error) error {
	cacheCtx, writeFn := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	writeFn()
	return nil
}
