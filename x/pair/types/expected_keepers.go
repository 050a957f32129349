package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/paw-chain/amm/x/shared/keeper"
)

// AssetLedger is the token ledger the pair keeps its reserves in.
type AssetLedger = sharedkeeper.AssetLedgerV1

// RegistryKeeper supplies the protocol fee recipient.
type RegistryKeeper interface {
	GetFeeTo(ctx context.Context) sdk.AccAddress
}
