package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/pair/types"
	sharedtypes "github.com/paw-chain/amm/x/shared/types"
	"github.com/paw-chain/amm/x/shared/u256"
)

// Mint issues LP tokens to `to` for whatever the pair holds above its
// reserves. The first deposit locks MinimumLiquidity at the zero address.
func (k Keeper) Mint(ctx context.Context, caller, pair, to sdk.AccAddress) (math.Int, error) {
	if err := validateRecipient(to); err != nil {
		return math.Int{}, err
	}
	var liquidity math.Int
	err := k.atomic(ctx, func(c sdk.Context) error {
		p, err := k.GetPair(c, pair)
		if err != nil {
			return err
		}
		bal0, bal1, err := k.balances(c, p)
		if err != nil {
			return err
		}
		amount0, err := u256.Sub(bal0, p.Reserve0)
		if err != nil {
			return arith(err)
		}
		amount1, err := u256.Sub(bal1, p.Reserve1)
		if err != nil {
			return arith(err)
		}

		feeOn, err := k.mintFee(c, &p)
		if err != nil {
			return err
		}

		if p.TotalSupply.IsZero() {
			product, err := u256.Mul(amount0, amount1)
			if err != nil {
				return arith(err)
			}
			root, err := u256.Sqrt(product)
			if err != nil {
				return arith(err)
			}
			if root.LTE(math.NewInt(types.MinimumLiquidity)) {
				return types.ErrInsufficientLiquidityMinted.Wrapf("initial liquidity %s does not exceed the %d locked", root, types.MinimumLiquidity)
			}
			liquidity = root.SubRaw(types.MinimumLiquidity)
			if err := k.mintLP(c, &p, sharedtypes.ZeroAddress(), math.NewInt(types.MinimumLiquidity)); err != nil {
				return err
			}
		} else {
			l0, err := u256.MulDiv(amount0, p.TotalSupply, p.Reserve0)
			if err != nil {
				return arith(err)
			}
			l1, err := u256.MulDiv(amount1, p.TotalSupply, p.Reserve1)
			if err != nil {
				return arith(err)
			}
			liquidity = u256.Min(l0, l1)
		}

		if !liquidity.IsPositive() {
			return types.ErrInsufficientLiquidityMinted
		}
		if err := k.mintLP(c, &p, to, liquidity); err != nil {
			return err
		}
		if err := k.update(c, &p, bal0, bal1); err != nil {
			return err
		}
		if feeOn {
			if err := recordKLast(&p); err != nil {
				return err
			}
		}
		if err := k.SetPair(c, p); err != nil {
			return err
		}

		c.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeMint,
				sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
				sdk.NewAttribute(types.AttributeKeySender, caller.String()),
				sdk.NewAttribute(types.AttributeKeyTo, to.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
				sdk.NewAttribute(types.AttributeKeyLiquidity, liquidity.String()),
			),
		)
		k.metrics.LPSupply.WithLabelValues(pair.String()).Set(toFloat(p.TotalSupply))
		return nil
	})
	if err != nil {
		return math.Int{}, err
	}
	return liquidity, nil
}

// Burn redeems the LP tokens the pair holds on its own balance and pays out
// the proportional share of both reserves to `to`. Callers transfer LP tokens
// to the pair first.
func (k Keeper) Burn(ctx context.Context, caller, pair, to sdk.AccAddress) (math.Int, math.Int, error) {
	if err := validateRecipient(to); err != nil {
		return math.Int{}, math.Int{}, err
	}
	var amount0, amount1 math.Int
	err := k.atomic(ctx, func(c sdk.Context) error {
		p, err := k.GetPair(c, pair)
		if err != nil {
			return err
		}
		bal0, bal1, err := k.balances(c, p)
		if err != nil {
			return err
		}
		liquidity, err := k.lpBalance(c, pair, pair)
		if err != nil {
			return err
		}

		feeOn, err := k.mintFee(c, &p)
		if err != nil {
			return err
		}
		if p.TotalSupply.IsZero() {
			return types.ErrInsufficientLiquidityBurned.Wrap("pair has no LP supply")
		}

		amount0, err = u256.MulDiv(liquidity, bal0, p.TotalSupply)
		if err != nil {
			return arith(err)
		}
		amount1, err = u256.MulDiv(liquidity, bal1, p.TotalSupply)
		if err != nil {
			return arith(err)
		}
		if !amount0.IsPositive() || !amount1.IsPositive() {
			return types.ErrInsufficientLiquidityBurned.Wrapf("liquidity %s yields %s/%s", liquidity, amount0, amount1)
		}

		if err := k.burnLP(c, &p, pair, liquidity); err != nil {
			return err
		}
		if err := k.safeTransfer(c, p, p.Token0, to, amount0); err != nil {
			return err
		}
		if err := k.safeTransfer(c, p, p.Token1, to, amount1); err != nil {
			return err
		}

		bal0, bal1, err = k.balances(c, p)
		if err != nil {
			return err
		}
		if err := k.update(c, &p, bal0, bal1); err != nil {
			return err
		}
		if feeOn {
			if err := recordKLast(&p); err != nil {
				return err
			}
		}
		if err := k.SetPair(c, p); err != nil {
			return err
		}

		c.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBurn,
				sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
				sdk.NewAttribute(types.AttributeKeySender, caller.String()),
				sdk.NewAttribute(types.AttributeKeyTo, to.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
				sdk.NewAttribute(types.AttributeKeyLiquidity, liquidity.String()),
			),
		)
		k.metrics.LPSupply.WithLabelValues(pair.String()).Set(toFloat(p.TotalSupply))
		return nil
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return amount0, amount1, nil
}
