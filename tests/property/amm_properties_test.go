package property_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	pairtypes "github.com/paw-chain/amm/x/pair/types"
	routertypes "github.com/paw-chain/amm/x/router/types"
)

func drawInt(t *rapid.T, lo, hi int64, label string) math.Int {
	return math.NewInt(rapid.Int64Range(lo, hi).Draw(t, label))
}

// An exact-out quote always buys at least the requested output.
func TestPropertyAmountInCoversAmountOut(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := drawInt(t, 1, 1e15, "reserveIn")
		reserveOut := drawInt(t, 2, 1e15, "reserveOut")
		amountOut := drawInt(t, 1, reserveOut.Int64()-1, "amountOut")

		in, err := routertypes.GetAmountIn(amountOut, reserveIn, reserveOut)
		require.NoError(t, err)
		out, err := routertypes.GetAmountOut(in, reserveIn, reserveOut)
		require.NoError(t, err)
		require.True(t, out.GTE(amountOut), "in=%s out=%s want>=%s", in, out, amountOut)
	})
}

// A single hop never drains the output reserve and never beats the spot price.
func TestPropertyAmountOutBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := drawInt(t, 1, 1e15, "reserveIn")
		reserveOut := drawInt(t, 1, 1e15, "reserveOut")
		amountIn := drawInt(t, 1, 1e15, "amountIn")

		out, err := routertypes.GetAmountOut(amountIn, reserveIn, reserveOut)
		require.NoError(t, err)
		require.True(t, out.LT(reserveOut))
		require.True(t, out.Mul(reserveIn).LTE(amountIn.Mul(reserveOut)))
	})
}

// Quote is proportional in both directions, up to floor rounding.
func TestPropertyQuoteRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveA := drawInt(t, 1, 1e12, "reserveA")
		reserveB := drawInt(t, 1, 1e12, "reserveB")
		amountA := drawInt(t, 1, 1e12, "amountA")

		amountB, err := routertypes.Quote(amountA, reserveA, reserveB)
		require.NoError(t, err)
		if amountB.IsZero() {
			return
		}
		back, err := routertypes.Quote(amountB, reserveB, reserveA)
		require.NoError(t, err)
		require.True(t, back.LTE(amountA))
	})
}

// Swaps through the pair engine never decrease the reserve product.
func TestPropertySwapKeepsConstantProduct(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		env := keepertest.NewAMMEnv(t)
		tokenA := env.CreateToken(t, "AAA")
		tokenB := env.CreateToken(t, "BBB")
		pairAddr := env.CreatePair(t, tokenA, tokenB)
		owner := keepertest.TestAddr("owner")
		trader := keepertest.TestAddr("trader")

		seedA := rapid.Int64Range(10_000, 1e12).Draw(rt, "seedA")
		seedB := rapid.Int64Range(10_000, 1e12).Draw(rt, "seedB")
		env.Seed(t, pairAddr, tokenA, tokenB, owner, seedA, seedB)

		p, err := env.Pair.GetPair(env.Ctx, pairAddr)
		require.NoError(rt, err)

		steps := rapid.IntRange(1, 8).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			reserve0, reserve1, _, err := env.Pair.GetReserves(env.Ctx, pairAddr)
			require.NoError(rt, err)
			k := reserve0.Mul(reserve1)

			zeroForOne := rapid.Bool().Draw(rt, "zeroForOne")
			input, reserveIn, reserveOut := p.Token0, reserve0, reserve1
			if !zeroForOne {
				input, reserveIn, reserveOut = p.Token1, reserve1, reserve0
			}
			amountIn := drawInt(rt, 1, reserveIn.Int64(), "amountIn")
			out, err := routertypes.GetAmountOut(amountIn, reserveIn, reserveOut)
			require.NoError(rt, err)
			if out.IsZero() {
				continue
			}

			env.Fund(t, input, pairAddr, amountIn.Int64())
			amount0Out, amount1Out := math.ZeroInt(), out
			if !zeroForOne {
				amount0Out, amount1Out = out, math.ZeroInt()
			}
			require.NoError(rt, env.Pair.Swap(env.Ctx, trader, pairAddr, amount0Out, amount1Out, trader))

			after0, after1, _, err := env.Pair.GetReserves(env.Ctx, pairAddr)
			require.NoError(rt, err)
			require.True(rt, after0.Mul(after1).GTE(k), "product fell at step %d", i)
		}
	})
}

// Redeeming freshly minted LP tokens never returns more than was deposited.
func TestPropertyMintBurnNeverProfits(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		env := keepertest.NewAMMEnv(t)
		tokenA := env.CreateToken(t, "AAA")
		tokenB := env.CreateToken(t, "BBB")
		pairAddr := env.CreatePair(t, tokenA, tokenB)
		owner := keepertest.TestAddr("owner")
		lp := keepertest.TestAddr("lp")

		seedA := rapid.Int64Range(10_000, 1e12).Draw(rt, "seedA")
		seedB := rapid.Int64Range(10_000, 1e12).Draw(rt, "seedB")
		env.Seed(t, pairAddr, tokenA, tokenB, owner, seedA, seedB)

		depositA := rapid.Int64Range(1, 1e12).Draw(rt, "depositA")
		depositB := rapid.Int64Range(1, 1e12).Draw(rt, "depositB")
		env.Fund(t, tokenA, pairAddr, depositA)
		env.Fund(t, tokenB, pairAddr, depositB)
		liquidity, err := env.Pair.Mint(env.Ctx, lp, pairAddr, lp)
		if err != nil {
			require.ErrorIs(rt, err, pairtypes.ErrInsufficientLiquidityMinted)
			return
		}

		require.NoError(rt, env.Pair.Transfer(env.Ctx, pairAddr, lp, pairAddr, liquidity))
		_, _, err = env.Pair.Burn(env.Ctx, lp, pairAddr, lp)
		if err != nil {
			// a dust position can round one side down to zero
			require.ErrorIs(rt, err, pairtypes.ErrInsufficientLiquidityBurned)
			return
		}

		require.True(rt, env.Balance(t, tokenA, lp).LTE(math.NewInt(depositA)))
		require.True(rt, env.Balance(t, tokenB, lp).LTE(math.NewInt(depositB)))
	})
}

// Executed multi-hop swaps deliver exactly the quoted amounts.
func TestPropertyMultiHopMatchesQuote(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		env := keepertest.NewAMMEnv(t)
		path := []sdk.AccAddress{
			env.CreateToken(t, "AAA"),
			env.CreateToken(t, "BBB"),
			env.CreateToken(t, "CCC"),
		}
		owner := keepertest.TestAddr("owner")
		trader := keepertest.TestAddr("trader")
		for i := 0; i+1 < len(path); i++ {
			pairAddr := env.CreatePair(t, path[i], path[i+1])
			env.Seed(t, pairAddr, path[i], path[i+1], owner,
				rapid.Int64Range(100_000, 1e12).Draw(rt, "seedIn"),
				rapid.Int64Range(100_000, 1e12).Draw(rt, "seedOut"))
		}

		amountIn := rapid.Int64Range(1, 1e9).Draw(rt, "amountIn")
		quoted, err := env.Router.GetAmountsOut(env.Ctx, math.NewInt(amountIn), path)
		if err != nil {
			// the first hop rounded down to nothing
			require.ErrorIs(rt, err, routertypes.ErrInsufficientInputAmount)
			return
		}
		if quoted[len(quoted)-1].IsZero() {
			return
		}

		env.Fund(t, path[0], trader, amountIn)
		env.ApproveRouter(t, path[0], trader, amountIn)
		amounts, err := env.Router.SwapExactTokensForTokens(env.Ctx, trader, routertypes.SwapExactInRequest{
			AmountIn:     math.NewInt(amountIn),
			AmountOutMin: quoted[len(quoted)-1],
			Path:         path,
			To:           trader,
			Deadline:     env.Ctx.BlockTime(),
		})
		require.NoError(rt, err)
		for i := range quoted {
			require.True(rt, quoted[i].Equal(amounts[i]))
		}
		require.True(rt, env.Balance(t, path[2], trader).Equal(quoted[2]))
	})
}
