package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/pair/types"
	"github.com/paw-chain/amm/x/shared/u256"
)

// Swap pays out the requested amounts optimistically, infers the inputs from
// the resulting balances and enforces the fee-adjusted constant product:
// (b0*1000 - 3*in0) * (b1*1000 - 3*in1) >= r0*r1*1000^2.
func (k Keeper) Swap(ctx context.Context, caller, pair sdk.AccAddress, amount0Out, amount1Out math.Int, to sdk.AccAddress) error {
	if err := validateRecipient(to); err != nil {
		return err
	}
	for _, out := range []math.Int{amount0Out, amount1Out} {
		if err := u256.Validate(out); err != nil {
			return types.ErrInvalidAmount.Wrap(err.Error())
		}
	}

	err := k.atomic(ctx, func(c sdk.Context) error {
		if amount0Out.IsZero() && amount1Out.IsZero() {
			return types.ErrInsufficientOutputAmount
		}
		p, err := k.GetPair(c, pair)
		if err != nil {
			return err
		}
		if amount0Out.GTE(p.Reserve0) || amount1Out.GTE(p.Reserve1) {
			return types.ErrInsufficientLiquidity.Wrapf("outputs %s/%s against reserves %s/%s", amount0Out, amount1Out, p.Reserve0, p.Reserve1)
		}
		if p.HasToken(to) {
			return types.ErrInvalidTo.Wrapf("recipient %s is a pair token", to)
		}

		if amount0Out.IsPositive() {
			if err := k.safeTransfer(c, p, p.Token0, to, amount0Out); err != nil {
				return err
			}
		}
		if amount1Out.IsPositive() {
			if err := k.safeTransfer(c, p, p.Token1, to, amount1Out); err != nil {
				return err
			}
		}

		bal0, bal1, err := k.balances(c, p)
		if err != nil {
			return err
		}
		amount0In := u256.SaturatingSub(bal0, p.Reserve0.Sub(amount0Out))
		amount1In := u256.SaturatingSub(bal1, p.Reserve1.Sub(amount1Out))
		if amount0In.IsZero() && amount1In.IsZero() {
			return types.ErrInsufficientInputAmount
		}

		adjusted0, err := feeAdjusted(bal0, amount0In)
		if err != nil {
			return err
		}
		adjusted1, err := feeAdjusted(bal1, amount1In)
		if err != nil {
			return err
		}
		left, err := u256.Mul(adjusted0, adjusted1)
		if err != nil {
			return arith(err)
		}
		k0, err := u256.Mul(p.Reserve0, p.Reserve1)
		if err != nil {
			return arith(err)
		}
		right, err := u256.Mul(k0, math.NewInt(types.FeeDenominator*types.FeeDenominator))
		if err != nil {
			return arith(err)
		}
		if left.LT(right) {
			return types.ErrKConstant.Wrapf("%s < %s", left, right)
		}

		if err := k.update(c, &p, bal0, bal1); err != nil {
			return err
		}
		if err := k.SetPair(c, p); err != nil {
			return err
		}

		c.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
				sdk.NewAttribute(types.AttributeKeySender, caller.String()),
				sdk.NewAttribute(types.AttributeKeyTo, to.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0In, amount0In.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1In, amount1In.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0Out, amount0Out.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1Out, amount1Out.String()),
			),
		)
		return nil
	})
	k.metrics.recordSwap(pair, err)
	return err
}

// feeAdjusted returns balance*1000 - amountIn*3.
func feeAdjusted(balance, amountIn math.Int) (math.Int, error) {
	scaled, err := u256.Mul(balance, math.NewInt(types.FeeDenominator))
	if err != nil {
		return math.Int{}, arith(err)
	}
	fee, err := u256.Mul(amountIn, math.NewInt(types.FeeNumerator))
	if err != nil {
		return math.Int{}, arith(err)
	}
	adjusted, err := u256.Sub(scaled, fee)
	if err != nil {
		return math.Int{}, arith(err)
	}
	return adjusted, nil
}
