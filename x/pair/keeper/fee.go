package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/pair/types"
	sharedtypes "github.com/paw-chain/amm/x/shared/types"
	"github.com/paw-chain/amm/x/shared/u256"
)

// mintFee mints the protocol's share of fee growth since the last liquidity
// event to the registry's fee recipient and reports whether the fee is on.
// With the fee off, KLast is cleared.
func (k Keeper) mintFee(ctx sdk.Context, p *types.Pair) (bool, error) {
	if k.registryKeeper == nil {
		return false, types.ErrRegistryUnavailable
	}
	feeTo := k.registryKeeper.GetFeeTo(ctx)
	feeOn := !sharedtypes.IsZeroAddress(feeTo)

	if !feeOn {
		if !p.KLast.IsZero() {
			p.KLast = math.ZeroInt()
		}
		return false, nil
	}
	if p.KLast.IsZero() {
		return true, nil
	}

	k0, err := u256.Mul(p.Reserve0, p.Reserve1)
	if err != nil {
		return false, arith(err)
	}
	rootK, err := u256.Sqrt(k0)
	if err != nil {
		return false, arith(err)
	}
	rootKLast, err := u256.Sqrt(p.KLast)
	if err != nil {
		return false, arith(err)
	}
	if rootK.LTE(rootKLast) {
		return true, nil
	}

	numerator, err := u256.Mul(p.TotalSupply, rootK.Sub(rootKLast))
	if err != nil {
		return false, arith(err)
	}
	denominator, err := u256.Mul(rootK, math.NewInt(types.ProtocolFeeDivisor))
	if err != nil {
		return false, arith(err)
	}
	liquidity, err := u256.Quo(numerator, denominator)
	if err != nil {
		return false, arith(err)
	}
	if liquidity.IsPositive() {
		if err := k.mintLP(ctx, p, feeTo, liquidity); err != nil {
			return false, err
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeFeeMint,
				sdk.NewAttribute(types.AttributeKeyPair, p.Address.String()),
				sdk.NewAttribute(types.AttributeKeyTo, feeTo.String()),
				sdk.NewAttribute(types.AttributeKeyLiquidity, liquidity.String()),
			),
		)
		k.metrics.ProtocolFeeMints.WithLabelValues(p.Address.String()).Inc()
	}
	return true, nil
}

// recordKLast stores reserve0*reserve1 after a fee-on liquidity event.
func recordKLast(p *types.Pair) error {
	kLast, err := u256.Mul(p.Reserve0, p.Reserve1)
	if err != nil {
		return arith(err)
	}
	p.KLast = kLast
	return nil
}
