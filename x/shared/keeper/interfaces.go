// Package keeper provides shared keeper interfaces for cross-module communication.
// Versioned interfaces keep the contracts between modules stable.
package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// =============================================================================
// Asset Ledger Interfaces (Versioned)
// =============================================================================

// AssetLedgerV1 is the fungible-asset surface the pair and router modules
// depend on. Every token, including the wrapped native asset, is addressed by
// its ledger address.
type AssetLedgerV1 interface {
	BalanceOf(ctx context.Context, token, owner sdk.AccAddress) (sdkmath.Int, error)
	Allowance(ctx context.Context, token, owner, spender sdk.AccAddress) (sdkmath.Int, error)
	Transfer(ctx context.Context, token, from, to sdk.AccAddress, amount sdkmath.Int) error
	TransferFrom(ctx context.Context, token, spender, from, to sdk.AccAddress, amount sdkmath.Int) error
}

// NativeWrapperV1 converts between the chain's native coin and its wrapped
// ledger token.
type NativeWrapperV1 interface {
	NativeDenom(ctx context.Context, wrapper sdk.AccAddress) (string, error)
	Deposit(ctx context.Context, wrapper, from sdk.AccAddress, amount sdkmath.Int) error
	Withdraw(ctx context.Context, wrapper, from sdk.AccAddress, amount sdkmath.Int) error
}

// =============================================================================
// Pair Interfaces (Versioned)
// =============================================================================

// PairInfo is a read-only view of a pair for cross-module queries.
type PairInfo struct {
	Address            sdk.AccAddress
	Token0             sdk.AccAddress
	Token1             sdk.AccAddress
	Reserve0           sdkmath.Int
	Reserve1           sdkmath.Int
	BlockTimestampLast uint32
	TotalSupply        sdkmath.Int
}

// PairReaderV1 exposes pair state without mutation rights.
type PairReaderV1 interface {
	GetReserves(ctx context.Context, pair sdk.AccAddress) (reserve0, reserve1 sdkmath.Int, blockTimestampLast uint32, err error)
	GetPairInfo(ctx context.Context, pair sdk.AccAddress) (PairInfo, bool)
}

// Interface versions, bumped on any breaking change to the contracts above.
const (
	AssetLedgerVersion = "v1.0.0"
	PairReaderVersion  = "v1.0.0"
)
