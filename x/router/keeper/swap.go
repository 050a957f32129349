package keeper

import (
	"context"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/router/types"
)

// swapPlan is a quoted swap ready to execute.
type swapPlan struct {
	op      string
	path    []sdk.AccAddress
	pairs   []sdk.AccAddress
	amounts []math.Int
	to      sdk.AccAddress

	// nativeValue is the native coin attached by the caller; the part not
	// consumed by amounts[0] goes back to the caller.
	nativeIn    bool
	nativeValue math.Int
	nativeOut   bool
	wrapper     sdk.AccAddress
	denom       string
}

// SwapExactTokensForTokens swaps exactly req.AmountIn of path[0] for as much
// of the last token as the pairs give, at least req.AmountOutMin.
func (k Keeper) SwapExactTokensForTokens(ctx context.Context, caller sdk.AccAddress, req types.SwapExactInRequest) ([]math.Int, error) {
	return k.swapExactIn(ctx, caller, req, types.OpSwapExactTokensForTokens, false, false)
}

// SwapTokensForExactTokens buys exactly req.AmountOut of the last token,
// spending at most req.AmountInMax of path[0].
func (k Keeper) SwapTokensForExactTokens(ctx context.Context, caller sdk.AccAddress, req types.SwapExactOutRequest) ([]math.Int, error) {
	return k.swapExactOut(ctx, caller, req, types.OpSwapTokensForExactTokens, false, false)
}

// SwapExactNativeForTokens swaps the attached native value req.AmountIn.
// path must start with the wrapped native token.
func (k Keeper) SwapExactNativeForTokens(ctx context.Context, caller sdk.AccAddress, req types.SwapExactInRequest) ([]math.Int, error) {
	return k.swapExactIn(ctx, caller, req, types.OpSwapExactNativeForTokens, true, false)
}

// SwapTokensForExactNative buys exactly req.AmountOut native coin. path must
// end with the wrapped native token.
func (k Keeper) SwapTokensForExactNative(ctx context.Context, caller sdk.AccAddress, req types.SwapExactOutRequest) ([]math.Int, error) {
	return k.swapExactOut(ctx, caller, req, types.OpSwapTokensForExactNative, false, true)
}

// SwapExactTokensForNative sells exactly req.AmountIn of path[0] for native
// coin. path must end with the wrapped native token.
func (k Keeper) SwapExactTokensForNative(ctx context.Context, caller sdk.AccAddress, req types.SwapExactInRequest) ([]math.Int, error) {
	return k.swapExactIn(ctx, caller, req, types.OpSwapExactTokensForNative, false, true)
}

// SwapNativeForExactTokens buys exactly req.AmountOut of the last token with
// the attached native value req.AmountInMax; the unused value is returned
// to the caller.
func (k Keeper) SwapNativeForExactTokens(ctx context.Context, caller sdk.AccAddress, req types.SwapExactOutRequest) ([]math.Int, error) {
	return k.swapExactOut(ctx, caller, req, types.OpSwapNativeForExactTokens, true, false)
}

func (k Keeper) swapExactIn(ctx context.Context, caller sdk.AccAddress, req types.SwapExactInRequest, op string, nativeIn, nativeOut bool) ([]math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	var amounts []math.Int
	err := k.withLock(sdkCtx, op, func() error {
		if err := checkDeadline(sdkCtx, req.Deadline); err != nil {
			return err
		}
		if err := validateAmounts(req.AmountIn, req.AmountOutMin); err != nil {
			return err
		}
		if err := validateRecipient(req.To); err != nil {
			return err
		}
		plan, err := k.newSwapPlan(sdkCtx, op, req.Path, req.To, nativeIn, nativeOut)
		if err != nil {
			return err
		}
		if nativeIn {
			if plan.nativeValue, err = types.ToNative(req.AmountIn); err != nil {
				return err
			}
		}

		quoted, err := k.GetAmountsOut(sdkCtx, req.AmountIn, req.Path)
		if err != nil {
			return err
		}
		if last := quoted[len(quoted)-1]; last.LT(req.AmountOutMin) {
			return types.ErrInsufficientOutputAmount.Wrapf("output %s below minimum %s", last, req.AmountOutMin)
		}
		plan.amounts = quoted

		if err := k.executeSwap(sdkCtx, caller, plan); err != nil {
			return err
		}
		amounts = quoted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

func (k Keeper) swapExactOut(ctx context.Context, caller sdk.AccAddress, req types.SwapExactOutRequest, op string, nativeIn, nativeOut bool) ([]math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	var amounts []math.Int
	err := k.withLock(sdkCtx, op, func() error {
		if err := checkDeadline(sdkCtx, req.Deadline); err != nil {
			return err
		}
		if err := validateAmounts(req.AmountOut, req.AmountInMax); err != nil {
			return err
		}
		if err := validateRecipient(req.To); err != nil {
			return err
		}
		plan, err := k.newSwapPlan(sdkCtx, op, req.Path, req.To, nativeIn, nativeOut)
		if err != nil {
			return err
		}
		if nativeIn {
			if plan.nativeValue, err = types.ToNative(req.AmountInMax); err != nil {
				return err
			}
		}

		quoted, err := k.GetAmountsIn(sdkCtx, req.AmountOut, req.Path)
		if err != nil {
			return err
		}
		if quoted[0].GT(req.AmountInMax) {
			return types.ErrExcessiveInputAmount.Wrapf("input %s above maximum %s", quoted[0], req.AmountInMax)
		}
		plan.amounts = quoted

		if err := k.executeSwap(sdkCtx, caller, plan); err != nil {
			return err
		}
		amounts = quoted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// newSwapPlan validates path against the native flags and resolves the pair
// of every hop.
func (k Keeper) newSwapPlan(ctx sdk.Context, op string, path []sdk.AccAddress, to sdk.AccAddress, nativeIn, nativeOut bool) (swapPlan, error) {
	plan := swapPlan{op: op, path: path, to: to, nativeIn: nativeIn, nativeOut: nativeOut}
	if len(path) < 2 {
		return plan, types.ErrInvalidPath.Wrapf("path of length %d", len(path))
	}
	if nativeIn || nativeOut {
		wrapper, denom, err := k.wrapper(ctx)
		if err != nil {
			return plan, err
		}
		if nativeIn && !path[0].Equals(wrapper) {
			return plan, types.ErrInvalidPath.Wrap("path must start with the wrapped native token")
		}
		if nativeOut && !path[len(path)-1].Equals(wrapper) {
			return plan, types.ErrInvalidPath.Wrap("path must end with the wrapped native token")
		}
		plan.wrapper, plan.denom = wrapper, denom
	}
	pairs, err := k.resolvePairs(ctx, path)
	if err != nil {
		return plan, err
	}
	plan.pairs = pairs
	return plan, nil
}

// executeSwap pulls the input into the router, then delivers it to the
// first pair and runs every hop as one step. A failed delivery leaves the
// input with the router as a pending refund.
func (k Keeper) executeSwap(ctx sdk.Context, caller sdk.AccAddress, plan swapPlan) error {
	if err := k.requireNoPending(ctx, caller); err != nil {
		return err
	}
	input := plan.path[0]
	amountIn := plan.amounts[0]
	if !plan.nativeIn {
		if err := k.checkAllowance(ctx, input, caller, amountIn); err != nil {
			return err
		}
	}

	if err := k.setPendingRefunds(ctx, caller, []types.PendingRefund{{Asset: input, Amount: amountIn}}); err != nil {
		return err
	}

	err := k.step(ctx, func(c sdk.Context) error {
		if !plan.nativeIn {
			if err := k.pull(c, input, caller, amountIn); err != nil {
				return types.ErrTransferFromFailed.Wrap(err.Error())
			}
			return nil
		}
		if err := k.bankKeeper.SendCoins(c, caller, k.address, sdk.NewCoins(sdk.NewCoin(plan.denom, plan.nativeValue))); err != nil {
			return types.ErrDepositNativeFailed.Wrap(err.Error())
		}
		if err := k.nativeWrapper.Deposit(c, plan.wrapper, k.address, amountIn); err != nil {
			return types.ErrDepositNativeFailed.Wrap(err.Error())
		}
		if excess := plan.nativeValue.Sub(amountIn); excess.IsPositive() {
			if err := k.bankKeeper.SendCoins(c, k.address, caller, sdk.NewCoins(sdk.NewCoin(plan.denom, excess))); err != nil {
				return types.ErrTransferFailed.Wrapf("native refund: %v", err)
			}
		}
		return nil
	})
	if err != nil {
		k.clearPendingRefunds(ctx, caller)
		return err
	}

	err = k.step(ctx, func(c sdk.Context) error {
		if err := k.send(c, input, plan.pairs[0], amountIn); err != nil {
			return types.ErrTransferFailed.Wrap(err.Error())
		}
		dest := plan.to
		if plan.nativeOut {
			dest = k.address
		}
		if err := k.swapPath(c, plan.amounts, plan.path, plan.pairs, dest); err != nil {
			return err
		}
		if plan.nativeOut {
			return k.unwrapTo(c, plan.wrapper, plan.denom, plan.to, plan.amounts[len(plan.amounts)-1])
		}
		return nil
	})
	if err != nil {
		return k.leavePending(ctx, caller, plan.op, err)
	}
	k.clearPendingRefunds(ctx, caller)

	hops := make([]string, len(plan.path))
	for i, p := range plan.path {
		hops[i] = p.String()
	}
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyOperation, plan.op),
			sdk.NewAttribute(types.AttributeKeySender, caller.String()),
			sdk.NewAttribute(types.AttributeKeyPath, strings.Join(hops, ",")),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, plan.amounts[len(plan.amounts)-1].String()),
			sdk.NewAttribute(types.AttributeKeyTo, plan.to.String()),
		),
	)
	return nil
}

// swapPath runs every hop. Pairs must already hold the input of the first
// hop; each intermediate hop pays straight into the next pair.
func (k Keeper) swapPath(ctx sdk.Context, amounts []math.Int, path, pairs []sdk.AccAddress, to sdk.AccAddress) error {
	for i := range pairs {
		input, output := path[i], path[i+1]
		token0, _, err := types.SortTokens(input, output)
		if err != nil {
			return err
		}
		amountOut := amounts[i+1]
		amount0Out, amount1Out := math.ZeroInt(), amountOut
		if !input.Equals(token0) {
			amount0Out, amount1Out = amountOut, math.ZeroInt()
		}
		dest := to
		if i < len(pairs)-1 {
			dest = pairs[i+1]
		}
		if err := k.pairKeeper.Swap(ctx, k.address, pairs[i], amount0Out, amount1Out, dest); err != nil {
			return types.ErrSwapFailed.Wrapf("hop %d via %s: %v", i, pairs[i], err)
		}
		k.Logger(ctx).Debug("swap hop executed",
			"hop", i, "pair", pairs[i].String(), "input", input.String(), "output", output.String(),
			"amount_in", amounts[i].String(), "amount_out", amountOut.String())
	}
	return nil
}
