package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/router/types"
	sharedtypes "github.com/paw-chain/amm/x/shared/types"
	"github.com/paw-chain/amm/x/shared/u256"
)

// CreatePair asks the registry to create the pair of two tokens.
func (k Keeper) CreatePair(ctx context.Context, caller, tokenA, tokenB sdk.AccAddress) (sdk.AccAddress, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	var pair sdk.AccAddress
	err := k.withLock(sdkCtx, types.OpCreatePair, func() error {
		if _, _, err := types.SortTokens(tokenA, tokenB); err != nil {
			return err
		}
		if existing := k.PairFor(sdkCtx, tokenA, tokenB); !existing.Empty() {
			return types.ErrPairAlreadyExists.Wrapf("pair %s", existing)
		}
		err := k.step(sdkCtx, func(c sdk.Context) error {
			created, err := k.registryKeeper.CreatePair(c, k.address, tokenA, tokenB)
			if err != nil {
				return types.ErrCreatePairFailed.Wrap(err.Error())
			}
			pair = created
			return nil
		})
		if err != nil {
			return err
		}

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeCreatePair,
				sdk.NewAttribute(types.AttributeKeySender, caller.String()),
				sdk.NewAttribute(types.AttributeKeyTokenA, tokenA.String()),
				sdk.NewAttribute(types.AttributeKeyTokenB, tokenB.String()),
				sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
			),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// addLiquidityAmounts picks the deposit that matches the pair's current
// price, keeping whichever desired amount is the binding constraint.
func (k Keeper) addLiquidityAmounts(
	ctx context.Context,
	tokenA, tokenB sdk.AccAddress,
	amountADesired, amountBDesired, amountAMin, amountBMin math.Int,
) (sdk.AccAddress, math.Int, math.Int, error) {
	reserveA, reserveB, pair, err := k.GetReserves(ctx, tokenA, tokenB)
	if err != nil {
		return nil, math.Int{}, math.Int{}, err
	}
	if reserveA.IsZero() && reserveB.IsZero() {
		return pair, amountADesired, amountBDesired, nil
	}

	amountBOptimal, err := types.Quote(amountADesired, reserveA, reserveB)
	if err != nil {
		return nil, math.Int{}, math.Int{}, err
	}
	if amountBOptimal.LTE(amountBDesired) {
		if amountBOptimal.LT(amountBMin) {
			return nil, math.Int{}, math.Int{}, types.ErrInsufficientBAmount.Wrapf("optimal %s below minimum %s", amountBOptimal, amountBMin)
		}
		return pair, amountADesired, amountBOptimal, nil
	}

	amountAOptimal, err := types.Quote(amountBDesired, reserveB, reserveA)
	if err != nil {
		return nil, math.Int{}, math.Int{}, err
	}
	if amountAOptimal.GT(amountADesired) || amountAOptimal.LT(amountAMin) {
		return nil, math.Int{}, math.Int{}, types.ErrInsufficientAAmount.Wrapf("optimal %s outside [%s, %s]", amountAOptimal, amountAMin, amountADesired)
	}
	return pair, amountAOptimal, amountBDesired, nil
}

func (k Keeper) checkAllowance(ctx context.Context, token, owner sdk.AccAddress, need math.Int) error {
	allowance, err := k.assetLedger.Allowance(ctx, token, owner, k.address)
	if err != nil {
		return types.ErrInsufficientAllowance.Wrapf("token %s: %v", token, err)
	}
	if allowance.LT(need) {
		return types.ErrInsufficientAllowance.Wrapf("token %s: allowance %s, need %s", token, allowance, need)
	}
	return nil
}

// pull moves amount of token from the user into the router's custody.
func (k Keeper) pull(ctx context.Context, token, from sdk.AccAddress, amount math.Int) error {
	return k.assetLedger.TransferFrom(ctx, token, k.address, from, k.address, amount)
}

// send pays amount of token out of the router's custody.
func (k Keeper) send(ctx context.Context, token, to sdk.AccAddress, amount math.Int) error {
	return k.assetLedger.Transfer(ctx, token, k.address, to, amount)
}

func validateAmounts(amounts ...math.Int) error {
	for _, a := range amounts {
		if err := u256.Validate(a); err != nil {
			return types.ErrInvalidAmount.Wrap(err.Error())
		}
	}
	return nil
}

// validateRecipient rejects an empty or all-zero recipient; anything paid
// there can never be spent.
func validateRecipient(to sdk.AccAddress) error {
	if sharedtypes.IsZeroAddress(to) {
		return types.ErrInvalidAddress.Wrapf("recipient %q", to.String())
	}
	return nil
}

// AddLiquidity deposits both tokens into their pair and mints LP tokens to
// req.To. The tokens are pulled into the router first and then delivered to
// the pair together with the mint; if delivery fails the router keeps them as
// pending refunds.
func (k Keeper) AddLiquidity(ctx context.Context, caller sdk.AccAddress, req types.AddLiquidityRequest) (types.AddLiquidityResult, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	var res types.AddLiquidityResult
	err := k.withLock(sdkCtx, types.OpAddLiquidity, func() error {
		if err := checkDeadline(sdkCtx, req.Deadline); err != nil {
			return err
		}
		if err := validateAmounts(req.AmountADesired, req.AmountBDesired, req.AmountAMin, req.AmountBMin); err != nil {
			return err
		}
		if err := validateRecipient(req.To); err != nil {
			return err
		}
		if req.AmountADesired.IsZero() {
			return types.ErrInsufficientAAmount.Wrap("desired amount is zero")
		}
		if req.AmountBDesired.IsZero() {
			return types.ErrInsufficientBAmount.Wrap("desired amount is zero")
		}
		if _, _, err := types.SortTokens(req.TokenA, req.TokenB); err != nil {
			return err
		}
		if err := k.requireNoPending(sdkCtx, caller); err != nil {
			return err
		}
		if err := k.checkAllowance(sdkCtx, req.TokenA, caller, req.AmountADesired); err != nil {
			return err
		}
		if err := k.checkAllowance(sdkCtx, req.TokenB, caller, req.AmountBDesired); err != nil {
			return err
		}

		pair, amountA, amountB, err := k.addLiquidityAmounts(sdkCtx, req.TokenA, req.TokenB,
			req.AmountADesired, req.AmountBDesired, req.AmountAMin, req.AmountBMin)
		if err != nil {
			return err
		}

		if err := k.setPendingRefunds(sdkCtx, caller, []types.PendingRefund{
			{Asset: req.TokenA, Amount: amountA},
			{Asset: req.TokenB, Amount: amountB},
		}); err != nil {
			return err
		}

		err = k.step(sdkCtx, func(c sdk.Context) error {
			if err := k.pull(c, req.TokenA, caller, amountA); err != nil {
				return types.ErrTransferAFailed.Wrap(err.Error())
			}
			if err := k.pull(c, req.TokenB, caller, amountB); err != nil {
				return types.ErrTransferBFailed.Wrap(err.Error())
			}
			return nil
		})
		if err != nil {
			// nothing left the user
			k.clearPendingRefunds(sdkCtx, caller)
			return err
		}

		var liquidity math.Int
		err = k.step(sdkCtx, func(c sdk.Context) error {
			if err := k.send(c, req.TokenA, pair, amountA); err != nil {
				return types.ErrTransferAFailed.Wrap(err.Error())
			}
			if err := k.send(c, req.TokenB, pair, amountB); err != nil {
				return types.ErrTransferBFailed.Wrap(err.Error())
			}
			minted, err := k.pairKeeper.Mint(c, k.address, pair, req.To)
			if err != nil {
				return types.ErrMintLiquidityFailed.Wrap(err.Error())
			}
			liquidity = minted
			return nil
		})
		if err != nil {
			return k.leavePending(sdkCtx, caller, types.OpAddLiquidity, err)
		}

		k.clearPendingRefunds(sdkCtx, caller)
		if err := k.recordJoin(sdkCtx, caller, types.LiquidityJoin{TokenA: req.TokenA, TokenB: req.TokenB, Pair: pair}); err != nil {
			return err
		}

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAddLiquidity,
				sdk.NewAttribute(types.AttributeKeySender, caller.String()),
				sdk.NewAttribute(types.AttributeKeyTokenA, req.TokenA.String()),
				sdk.NewAttribute(types.AttributeKeyTokenB, req.TokenB.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
				sdk.NewAttribute(types.AttributeKeyTo, req.To.String()),
				sdk.NewAttribute(types.AttributeKeyLiquidity, liquidity.String()),
			),
		)
		res = types.AddLiquidityResult{Pair: pair, AmountA: amountA, AmountB: amountB, Liquidity: liquidity}
		return nil
	})
	return res, err
}

// AddLiquidityNative deposits a token and native coin. The native side is
// wrapped by the router and any native value beyond the optimal amount is
// returned to the caller.
func (k Keeper) AddLiquidityNative(ctx context.Context, caller sdk.AccAddress, req types.AddLiquidityNativeRequest) (types.AddLiquidityResult, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	var res types.AddLiquidityResult
	err := k.withLock(sdkCtx, types.OpAddLiquidityNative, func() error {
		if err := checkDeadline(sdkCtx, req.Deadline); err != nil {
			return err
		}
		if err := validateAmounts(req.AmountTokenDesired, req.AmountTokenMin, req.AmountNativeMin); err != nil {
			return err
		}
		if err := validateRecipient(req.To); err != nil {
			return err
		}
		value, err := types.ToNative(req.NativeValue)
		if err != nil {
			return err
		}
		if req.AmountTokenDesired.IsZero() {
			return types.ErrInsufficientTokenAmount.Wrap("desired amount is zero")
		}
		if value.IsZero() {
			return types.ErrInsufficientNativeAmount.Wrap("no native value attached")
		}
		wrapper, denom, err := k.wrapper(sdkCtx)
		if err != nil {
			return err
		}
		if _, _, err := types.SortTokens(req.Token, wrapper); err != nil {
			return err
		}
		if err := k.requireNoPending(sdkCtx, caller); err != nil {
			return err
		}
		if err := k.checkAllowance(sdkCtx, req.Token, caller, req.AmountTokenDesired); err != nil {
			return err
		}

		pair, amountToken, amountNative, err := k.addLiquidityAmounts(sdkCtx, req.Token, wrapper,
			req.AmountTokenDesired, value, req.AmountTokenMin, req.AmountNativeMin)
		if err != nil {
			return err
		}

		if err := k.setPendingRefunds(sdkCtx, caller, []types.PendingRefund{
			{Asset: req.Token, Amount: amountToken},
			{Asset: wrapper, Amount: amountNative},
		}); err != nil {
			return err
		}

		err = k.step(sdkCtx, func(c sdk.Context) error {
			if err := k.pull(c, req.Token, caller, amountToken); err != nil {
				return types.ErrTransferFromFailed.Wrap(err.Error())
			}
			if err := k.bankKeeper.SendCoins(c, caller, k.address, sdk.NewCoins(sdk.NewCoin(denom, value))); err != nil {
				return types.ErrDepositNativeFailed.Wrap(err.Error())
			}
			if err := k.nativeWrapper.Deposit(c, wrapper, k.address, amountNative); err != nil {
				return types.ErrDepositNativeFailed.Wrap(err.Error())
			}
			if excess := value.Sub(amountNative); excess.IsPositive() {
				if err := k.bankKeeper.SendCoins(c, k.address, caller, sdk.NewCoins(sdk.NewCoin(denom, excess))); err != nil {
					return types.ErrTransferFailed.Wrapf("native refund: %v", err)
				}
			}
			return nil
		})
		if err != nil {
			k.clearPendingRefunds(sdkCtx, caller)
			return err
		}

		var liquidity math.Int
		err = k.step(sdkCtx, func(c sdk.Context) error {
			if err := k.send(c, wrapper, pair, amountNative); err != nil {
				return types.ErrDepositNativeFailed.Wrap(err.Error())
			}
			if err := k.send(c, req.Token, pair, amountToken); err != nil {
				return types.ErrTransferBFailed.Wrap(err.Error())
			}
			minted, err := k.pairKeeper.Mint(c, k.address, pair, req.To)
			if err != nil {
				return types.ErrMintLiquidityFailed.Wrap(err.Error())
			}
			liquidity = minted
			return nil
		})
		if err != nil {
			return k.leavePending(sdkCtx, caller, types.OpAddLiquidityNative, err)
		}

		k.clearPendingRefunds(sdkCtx, caller)
		if err := k.recordJoin(sdkCtx, caller, types.LiquidityJoin{TokenA: req.Token, TokenB: wrapper, Pair: pair}); err != nil {
			return err
		}

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAddLiquidityNative,
				sdk.NewAttribute(types.AttributeKeySender, caller.String()),
				sdk.NewAttribute(types.AttributeKeyTokenA, req.Token.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, amountToken.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, amountNative.String()),
				sdk.NewAttribute(types.AttributeKeyTo, req.To.String()),
				sdk.NewAttribute(types.AttributeKeyLiquidity, liquidity.String()),
			),
		)
		res = types.AddLiquidityResult{Pair: pair, AmountA: amountToken, AmountB: amountNative, Liquidity: liquidity}
		return nil
	})
	return res, err
}

// redeemLimits orients a burn's proceeds to the caller's token order and
// holds the minimum accepted for each side.
type redeemLimits struct {
	tokenA, token0   sdk.AccAddress
	minA, minB       math.Int
	errMinA, errMinB *errorsmod.Error
}

// redeem moves the caller's LP tokens into the pair and burns them, paying
// both tokens to the router. Proceeds below the minimums undo the whole
// step, so the caller keeps the LP tokens.
func (k Keeper) redeem(ctx sdk.Context, caller, pair sdk.AccAddress, liquidity math.Int, limits redeemLimits) (math.Int, math.Int, error) {
	var amountA, amountB math.Int
	err := k.step(ctx, func(c sdk.Context) error {
		if err := k.pairKeeper.TransferFrom(c, pair, k.address, caller, pair, liquidity); err != nil {
			return types.ErrTransferLiquidityFailed.Wrap(err.Error())
		}
		a0, a1, err := k.pairKeeper.Burn(c, k.address, pair, k.address)
		if err != nil {
			return types.ErrBurnLiquidityFailed.Wrap(err.Error())
		}
		amountA, amountB = a0, a1
		if !limits.tokenA.Equals(limits.token0) {
			amountA, amountB = a1, a0
		}
		if amountA.LT(limits.minA) {
			return limits.errMinA.Wrapf("received %s, minimum %s", amountA, limits.minA)
		}
		if amountB.LT(limits.minB) {
			return limits.errMinB.Wrapf("received %s, minimum %s", amountB, limits.minB)
		}
		return nil
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return amountA, amountB, nil
}

// RemoveLiquidity burns LP tokens and pays both tokens to req.To. Once the
// burn succeeds the proceeds sit with the router as pending refunds until
// each has been paid out. A burn below the minimums is rolled back.
func (k Keeper) RemoveLiquidity(ctx context.Context, caller sdk.AccAddress, req types.RemoveLiquidityRequest) (types.RemoveLiquidityResult, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	var res types.RemoveLiquidityResult
	err := k.withLock(sdkCtx, types.OpRemoveLiquidity, func() error {
		if err := checkDeadline(sdkCtx, req.Deadline); err != nil {
			return err
		}
		if err := validateAmounts(req.Liquidity, req.AmountAMin, req.AmountBMin); err != nil {
			return err
		}
		if err := validateRecipient(req.To); err != nil {
			return err
		}
		token0, _, err := types.SortTokens(req.TokenA, req.TokenB)
		if err != nil {
			return err
		}
		if err := k.requireNoPending(sdkCtx, caller); err != nil {
			return err
		}
		pair := k.PairFor(sdkCtx, req.TokenA, req.TokenB)
		if pair.Empty() {
			return types.ErrPairNotFound.Wrapf("%s/%s", req.TokenA, req.TokenB)
		}

		amountA, amountB, err := k.redeem(sdkCtx, caller, pair, req.Liquidity, redeemLimits{
			tokenA: req.TokenA, token0: token0,
			minA: req.AmountAMin, minB: req.AmountBMin,
			errMinA: types.ErrInsufficientAAmount, errMinB: types.ErrInsufficientBAmount,
		})
		if err != nil {
			return err
		}

		if err := k.setPendingRefunds(sdkCtx, caller, []types.PendingRefund{
			{Asset: req.TokenA, Amount: amountA},
			{Asset: req.TokenB, Amount: amountB},
		}); err != nil {
			return err
		}

		if err := k.step(sdkCtx, func(c sdk.Context) error {
			if err := k.send(c, req.TokenA, req.To, amountA); err != nil {
				return types.ErrTransferAFailed.Wrap(err.Error())
			}
			return k.markRefunded(c, caller, req.TokenA)
		}); err != nil {
			return k.leavePending(sdkCtx, caller, types.OpRemoveLiquidity, err)
		}
		if err := k.step(sdkCtx, func(c sdk.Context) error {
			if err := k.send(c, req.TokenB, req.To, amountB); err != nil {
				return types.ErrTransferBFailed.Wrap(err.Error())
			}
			return k.markRefunded(c, caller, req.TokenB)
		}); err != nil {
			return k.leavePending(sdkCtx, caller, types.OpRemoveLiquidity, err)
		}
		k.clearPendingRefunds(sdkCtx, caller)

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRemoveLiquidity,
				sdk.NewAttribute(types.AttributeKeySender, caller.String()),
				sdk.NewAttribute(types.AttributeKeyTokenA, req.TokenA.String()),
				sdk.NewAttribute(types.AttributeKeyTokenB, req.TokenB.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
				sdk.NewAttribute(types.AttributeKeyTo, req.To.String()),
				sdk.NewAttribute(types.AttributeKeyLiquidity, req.Liquidity.String()),
			),
		)
		res = types.RemoveLiquidityResult{Pair: pair, AmountA: amountA, AmountB: amountB}
		return nil
	})
	return res, err
}

// RemoveLiquidityNative burns LP tokens of a token/native pair, pays the
// token to req.To and unwraps the native side into native coin for req.To.
func (k Keeper) RemoveLiquidityNative(ctx context.Context, caller sdk.AccAddress, req types.RemoveLiquidityNativeRequest) (types.RemoveLiquidityResult, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	var res types.RemoveLiquidityResult
	err := k.withLock(sdkCtx, types.OpRemoveLiquidityNative, func() error {
		if err := checkDeadline(sdkCtx, req.Deadline); err != nil {
			return err
		}
		if err := validateAmounts(req.Liquidity, req.AmountTokenMin, req.AmountNativeMin); err != nil {
			return err
		}
		if err := validateRecipient(req.To); err != nil {
			return err
		}
		wrapper, denom, err := k.wrapper(sdkCtx)
		if err != nil {
			return err
		}
		token0, _, err := types.SortTokens(req.Token, wrapper)
		if err != nil {
			return err
		}
		if err := k.requireNoPending(sdkCtx, caller); err != nil {
			return err
		}
		pair := k.PairFor(sdkCtx, req.Token, wrapper)
		if pair.Empty() {
			return types.ErrPairNotFound.Wrapf("%s/%s", req.Token, wrapper)
		}

		amountToken, amountNative, err := k.redeem(sdkCtx, caller, pair, req.Liquidity, redeemLimits{
			tokenA: req.Token, token0: token0,
			minA: req.AmountTokenMin, minB: req.AmountNativeMin,
			errMinA: types.ErrInsufficientTokenAmount, errMinB: types.ErrInsufficientNativeAmount,
		})
		if err != nil {
			return err
		}

		if err := k.setPendingRefunds(sdkCtx, caller, []types.PendingRefund{
			{Asset: req.Token, Amount: amountToken},
			{Asset: wrapper, Amount: amountNative},
		}); err != nil {
			return err
		}

		if err := k.step(sdkCtx, func(c sdk.Context) error {
			if err := k.send(c, req.Token, req.To, amountToken); err != nil {
				return types.ErrTransferAFailed.Wrap(err.Error())
			}
			return k.markRefunded(c, caller, req.Token)
		}); err != nil {
			return k.leavePending(sdkCtx, caller, types.OpRemoveLiquidityNative, err)
		}
		if err := k.step(sdkCtx, func(c sdk.Context) error {
			if err := k.unwrapTo(c, wrapper, denom, req.To, amountNative); err != nil {
				return err
			}
			return k.markRefunded(c, caller, wrapper)
		}); err != nil {
			return k.leavePending(sdkCtx, caller, types.OpRemoveLiquidityNative, err)
		}
		k.clearPendingRefunds(sdkCtx, caller)

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRemoveLiquidityNative,
				sdk.NewAttribute(types.AttributeKeySender, caller.String()),
				sdk.NewAttribute(types.AttributeKeyTokenA, req.Token.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, amountToken.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, amountNative.String()),
				sdk.NewAttribute(types.AttributeKeyTo, req.To.String()),
				sdk.NewAttribute(types.AttributeKeyLiquidity, req.Liquidity.String()),
			),
		)
		res = types.RemoveLiquidityResult{Pair: pair, AmountA: amountToken, AmountB: amountNative}
		return nil
	})
	return res, err
}

// unwrapTo burns amount of the router's wrapped native balance and remits
// the released native coin to `to`.
func (k Keeper) unwrapTo(ctx sdk.Context, wrapper sdk.AccAddress, denom string, to sdk.AccAddress, amount math.Int) error {
	native, err := types.ToNative(amount)
	if err != nil {
		return err
	}
	if native.IsZero() {
		return nil
	}
	if err := k.nativeWrapper.Withdraw(ctx, wrapper, k.address, native); err != nil {
		return types.ErrWithdrawNativeFailed.Wrap(err.Error())
	}
	if err := k.bankKeeper.SendCoins(ctx, k.address, to, sdk.NewCoins(sdk.NewCoin(denom, native))); err != nil {
		return types.ErrWithdrawNativeFailed.Wrapf("remit: %v", err)
	}
	return nil
}
