package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/pair/types"
	sharedtypes "github.com/paw-chain/amm/x/shared/types"
)

// Keeper of the pair store. Each pair keeps its reserves as balances in the
// asset ledger under its own address and its LP ledger in this store.
type Keeper struct {
	storeKey       storetypes.StoreKey
	assetLedger    types.AssetLedger
	registryKeeper types.RegistryKeeper
	metrics        *PairMetrics
}

// NewKeeper creates a new pair Keeper instance. The registry keeper is wired
// afterwards with SetRegistryKeeper because the registry depends on pairs.
func NewKeeper(key storetypes.StoreKey, assetLedger types.AssetLedger) *Keeper {
	return &Keeper{
		storeKey:    key,
		assetLedger: assetLedger,
		metrics:     NewPairMetrics(),
	}
}

// SetRegistryKeeper wires the protocol fee source.
func (k *Keeper) SetRegistryKeeper(rk types.RegistryKeeper) {
	k.registryKeeper = rk
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// getStore returns the KVStore for the pair module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// atomic runs fn in a cached context and writes it back only when fn
// succeeds, so a failed pair operation leaves no partial state behind.
func (k Keeper) atomic(ctx context.Context, fn func(sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	writeFn()
	return nil
}

func validateRecipient(to sdk.AccAddress) error {
	if sharedtypes.IsZeroAddress(to) {
		return types.ErrInvalidAddress.Wrapf("recipient %q", to.String())
	}
	return nil
}

// arith maps a checked-arithmetic failure onto the module's overflow error.
func arith(err error) error {
	return types.ErrOverflow.Wrap(err.Error())
}

// blockTimestamp returns the block time in seconds truncated to 32 bits.
func blockTimestamp(ctx sdk.Context) uint32 {
	unix := ctx.BlockTime().Unix()
	if unix < 0 {
		return 0
	}
	return uint32(uint64(unix) % (1 << 32))
}
