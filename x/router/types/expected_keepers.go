package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/paw-chain/amm/x/shared/keeper"
)

// AssetLedger moves the tokens the router trades.
type AssetLedger = sharedkeeper.AssetLedgerV1

// NativeWrapper wraps and unwraps the native coin.
type NativeWrapper = sharedkeeper.NativeWrapperV1

// PairKeeper is the router's view of the pair engine.
type PairKeeper interface {
	sharedkeeper.PairReaderV1
	Mint(ctx context.Context, caller, pair, to sdk.AccAddress) (math.Int, error)
	Burn(ctx context.Context, caller, pair, to sdk.AccAddress) (math.Int, math.Int, error)
	Swap(ctx context.Context, caller, pair sdk.AccAddress, amount0Out, amount1Out math.Int, to sdk.AccAddress) error
	Skim(ctx context.Context, caller, pair, to sdk.AccAddress) error
	TransferFrom(ctx context.Context, pair, spender, from, to sdk.AccAddress, amount math.Int) error
}

// RegistryKeeper resolves and creates pairs.
type RegistryKeeper interface {
	GetPair(ctx context.Context, tokenA, tokenB sdk.AccAddress) sdk.AccAddress
	CreatePair(ctx context.Context, caller, tokenA, tokenB sdk.AccAddress) (sdk.AccAddress, error)
}

// BankKeeper remits native coin.
type BankKeeper interface {
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
}
