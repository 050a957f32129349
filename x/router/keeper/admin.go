package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/router/types"
)

// RefundToken sends amount of a token held by the router to the admin. The
// part of the router's balance owed to users as pending refunds cannot be
// taken. Admin only, allowed while paused.
func (k Keeper) RefundToken(ctx context.Context, caller, token sdk.AccAddress, amount math.Int) error {
	if err := k.requireAdmin(ctx, caller); err != nil {
		return err
	}
	if err := validateAmounts(amount); err != nil {
		return err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return k.guarded(sdkCtx, types.OpRefundToken, false, func() error {
		owed, err := k.owedPending(sdkCtx, token)
		if err != nil {
			return err
		}
		if owed.IsPositive() {
			held, err := k.assetLedger.BalanceOf(sdkCtx, token, k.address)
			if err != nil {
				return types.ErrTransferFailed.Wrap(err.Error())
			}
			if amount.GT(held.Sub(owed)) {
				return types.ErrPendingRefundOutstanding.Wrapf("router holds %s of %s, %s owed to users", held, token, owed)
			}
		}
		err = k.step(sdkCtx, func(c sdk.Context) error {
			return k.send(c, token, caller, amount)
		})
		if err != nil {
			return types.ErrTransferFailed.Wrap(err.Error())
		}
		k.emitRefund(sdkCtx, types.OpRefundToken, caller, token.String(), amount)
		return nil
	})
}

// RefundNative sends native coin held by the router to the admin.
func (k Keeper) RefundNative(ctx context.Context, caller sdk.AccAddress, amount math.Int) error {
	if err := k.requireAdmin(ctx, caller); err != nil {
		return err
	}
	native, err := types.ToNative(amount)
	if err != nil {
		return err
	}
	_, denom, err := k.wrapper(ctx)
	if err != nil {
		return err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return k.guarded(sdkCtx, types.OpRefundNative, false, func() error {
		err := k.step(sdkCtx, func(c sdk.Context) error {
			return k.bankKeeper.SendCoins(c, k.address, caller, sdk.NewCoins(sdk.NewCoin(denom, native)))
		})
		if err != nil {
			return types.ErrTransferFailed.Wrap(err.Error())
		}
		k.emitRefund(sdkCtx, types.OpRefundNative, caller, denom, native)
		return nil
	})
}

func (k Keeper) emitRefund(ctx sdk.Context, op string, to sdk.AccAddress, asset string, amount math.Int) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRefund,
			sdk.NewAttribute(types.AttributeKeyOperation, op),
			sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			sdk.NewAttribute(types.AttributeKeyAsset, asset),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	k.Logger(ctx).Info("router holdings refunded", "operation", op, "asset", asset, "amount", amount.String())
}

// SkimPairLiquidity skims a pair's surplus balances into the router. Admin only.
func (k Keeper) SkimPairLiquidity(ctx context.Context, caller, pair sdk.AccAddress) error {
	if err := k.requireAdmin(ctx, caller); err != nil {
		return err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return k.guarded(sdkCtx, types.OpSkimPairLiquidity, false, func() error {
		err := k.step(sdkCtx, func(c sdk.Context) error {
			return k.pairKeeper.Skim(c, k.address, pair, k.address)
		})
		if err != nil {
			return types.ErrSkimPairLiquidityFailed.Wrap(err.Error())
		}
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSkimPair,
				sdk.NewAttribute(types.AttributeKeySender, caller.String()),
				sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
			),
		)
		k.Logger(ctx).Info("pair skimmed into router", "pair", pair.String())
		return nil
	})
}
