package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/token/types"
)

func (k Keeper) nativeWrapper(ctx context.Context, wrapper sdk.AccAddress) (types.Token, error) {
	t, err := k.GetToken(ctx, wrapper)
	if err != nil {
		return types.Token{}, err
	}
	if !t.IsNativeWrapper() {
		return types.Token{}, types.ErrNotNativeWrapper.Wrapf("token %s", t.Symbol)
	}
	return t, nil
}

// NativeDenom returns the bank denom wrapped by wrapper.
func (k Keeper) NativeDenom(ctx context.Context, wrapper sdk.AccAddress) (string, error) {
	t, err := k.nativeWrapper(ctx, wrapper)
	if err != nil {
		return "", err
	}
	return t.NativeDenom, nil
}

// Deposit escrows amount of native coin from `from` and credits the same
// amount of the wrapper token.
func (k Keeper) Deposit(ctx context.Context, wrapper, from sdk.AccAddress, amount math.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("deposit must be positive")
	}
	t, err := k.nativeWrapper(ctx, wrapper)
	if err != nil {
		return err
	}
	coins := sdk.NewCoins(sdk.NewCoin(t.NativeDenom, amount))
	if err := k.bankKeeper.SendCoins(ctx, from, t.Address, coins); err != nil {
		return types.ErrNativeTransfer.Wrapf("escrow %s: %v", coins, err)
	}
	if err := k.credit(ctx, &t, from, amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDeposit,
			sdk.NewAttribute(types.AttributeKeyToken, wrapper.String()),
			sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Withdraw burns amount of the wrapper token held by `from` and releases the
// escrowed native coin to it.
func (k Keeper) Withdraw(ctx context.Context, wrapper, from sdk.AccAddress, amount math.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("withdrawal must be positive")
	}
	t, err := k.nativeWrapper(ctx, wrapper)
	if err != nil {
		return err
	}
	if err := k.debit(ctx, &t, from, amount); err != nil {
		return err
	}
	coins := sdk.NewCoins(sdk.NewCoin(t.NativeDenom, amount))
	if err := k.bankKeeper.SendCoins(ctx, t.Address, from, coins); err != nil {
		return types.ErrNativeTransfer.Wrapf("release %s: %v", coins, err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdraw,
			sdk.NewAttribute(types.AttributeKeyToken, wrapper.String()),
			sdk.NewAttribute(types.AttributeKeyTo, from.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}
