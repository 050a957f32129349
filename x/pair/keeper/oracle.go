package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/pair/types"
	"github.com/paw-chain/amm/x/shared/u256"
)

// update accrues the cumulative prices over the time since the last update
// using the old reserves, then sets the reserves to the given balances.
// Timestamps are 32-bit and the elapsed time wraps with them.
func (k Keeper) update(ctx sdk.Context, p *types.Pair, balance0, balance1 math.Int) error {
	if err := u256.Validate(balance0); err != nil {
		return arith(err)
	}
	if err := u256.Validate(balance1); err != nil {
		return arith(err)
	}

	now := blockTimestamp(ctx)
	elapsed := now - p.BlockTimestampLast
	if elapsed > 0 && !p.Reserve0.IsZero() && !p.Reserve1.IsZero() {
		dt := math.NewIntFromUint64(uint64(elapsed))

		price0, err := u256.Quo(p.Reserve1, p.Reserve0)
		if err != nil {
			return arith(err)
		}
		step0, err := u256.Mul(price0, dt)
		if err != nil {
			return arith(err)
		}
		cp0, err := u256.Add(p.CumulativePrice0, step0)
		if err != nil {
			return arith(err)
		}

		price1, err := u256.Quo(p.Reserve0, p.Reserve1)
		if err != nil {
			return arith(err)
		}
		step1, err := u256.Mul(price1, dt)
		if err != nil {
			return arith(err)
		}
		cp1, err := u256.Add(p.CumulativePrice1, step1)
		if err != nil {
			return arith(err)
		}

		p.CumulativePrice0 = cp0
		p.CumulativePrice1 = cp1
	}

	p.Reserve0 = balance0
	p.Reserve1 = balance1
	p.BlockTimestampLast = now
	k.metrics.observeReserves(*p)
	return nil
}
