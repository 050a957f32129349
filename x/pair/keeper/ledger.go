package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/pair/types"
)

// balances reads the pair's holdings of both tokens from the asset ledger.
func (k Keeper) balances(ctx context.Context, p types.Pair) (math.Int, math.Int, error) {
	if k.assetLedger == nil {
		return math.Int{}, math.Int{}, types.ErrLedgerUnavailable
	}
	bal0, err := k.assetLedger.BalanceOf(ctx, p.Token0, p.Address)
	if err != nil {
		return math.Int{}, math.Int{}, types.ErrLedgerUnavailable.Wrapf("balance of %s: %v", p.Token0, err)
	}
	bal1, err := k.assetLedger.BalanceOf(ctx, p.Token1, p.Address)
	if err != nil {
		return math.Int{}, math.Int{}, types.ErrLedgerUnavailable.Wrapf("balance of %s: %v", p.Token1, err)
	}
	return bal0, bal1, nil
}

// safeTransfer pays amount of token out of the pair. Zero amounts are rejected.
func (k Keeper) safeTransfer(ctx context.Context, p types.Pair, token, to sdk.AccAddress, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("transfer of %s %s", amount, token)
	}
	if k.assetLedger == nil {
		return types.ErrLedgerUnavailable
	}
	if err := k.assetLedger.Transfer(ctx, token, p.Address, to, amount); err != nil {
		return types.ErrTransferFailed.Wrapf("%s %s to %s: %v", amount, token, to, err)
	}
	return nil
}
