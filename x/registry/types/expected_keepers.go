package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	pairtypes "github.com/paw-chain/amm/x/pair/types"
	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// TokenKeeper provides token metadata for LP naming.
type TokenKeeper interface {
	GetToken(ctx context.Context, token sdk.AccAddress) (tokentypes.Token, error)
}

// PairKeeper instantiates pairs.
type PairKeeper interface {
	InitPair(ctx context.Context, init pairtypes.InitPair) (sdk.AccAddress, error)
}
