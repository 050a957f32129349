package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/pair/types"
)

// AllInvariants runs all invariants of the pair module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := ReservesBackedInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return LPSupplyInvariant(k)(ctx)
	}
}

// ReservesBackedInvariant checks that every pair holds at least its reserves
// in the asset ledger.
func ReservesBackedInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pairs, err := k.GetAllPairs(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "reserves-backed", err.Error()), true
		}
		for _, p := range pairs {
			bal0, bal1, err := k.balances(ctx, p)
			if err != nil {
				count++
				msg += fmt.Sprintf("pair %s: %v\n", p.Address, err)
				continue
			}
			if bal0.LT(p.Reserve0) || bal1.LT(p.Reserve1) {
				count++
				msg += fmt.Sprintf("pair %s: balances %s/%s below reserves %s/%s\n",
					p.Address, bal0, bal1, p.Reserve0, p.Reserve1)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "reserves-backed",
			fmt.Sprintf("found %d pairs with unbacked reserves\n%s", count, msg),
		), broken
	}
}

// LPSupplyInvariant checks that each pair's LP supply equals the sum of its
// LP balances.
func LPSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pairs, err := k.GetAllPairs(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "lp-supply", err.Error()), true
		}
		for _, p := range pairs {
			holders, err := k.GetLPBalances(ctx, p.Address)
			if err != nil {
				count++
				msg += fmt.Sprintf("pair %s: %v\n", p.Address, err)
				continue
			}
			sum := math.ZeroInt()
			for _, h := range holders {
				sum = sum.Add(h.Amount)
			}
			if !sum.Equal(p.TotalSupply) {
				count++
				msg += fmt.Sprintf("pair %s: LP supply %s != sum of balances %s\n", p.Address, p.TotalSupply, sum)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "lp-supply",
			fmt.Sprintf("found %d pairs with inconsistent LP supply\n%s", count, msg),
		), broken
	}
}
