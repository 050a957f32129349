package types_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/x/router/types"
	sharedtypes "github.com/paw-chain/amm/x/shared/types"
	"github.com/paw-chain/amm/x/shared/u256"
)

func addr(b byte) sdk.AccAddress {
	a := make([]byte, sharedtypes.AddressLength)
	a[sharedtypes.AddressLength-1] = b
	return a
}

func TestSortTokens(t *testing.T) {
	token0, token1, err := types.SortTokens(addr(1), addr(2))
	require.NoError(t, err)
	require.Equal(t, addr(2), token0)
	require.Equal(t, addr(1), token1)

	_, _, err = types.SortTokens(addr(1), addr(1))
	require.ErrorIs(t, err, types.ErrIdenticalAddresses)

	// the zero address sorts last, so only an all-zero pair trips the check
	_, _, err = types.SortTokens(addr(1), sharedtypes.ZeroAddress())
	require.NoError(t, err)
}

func TestQuote(t *testing.T) {
	out, err := types.Quote(math.NewInt(100), math.NewInt(1000), math.NewInt(4000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(400), out)

	_, err = types.Quote(math.ZeroInt(), math.NewInt(1000), math.NewInt(4000))
	require.ErrorIs(t, err, types.ErrInsufficientAAmount)

	_, err = types.Quote(math.NewInt(1), math.ZeroInt(), math.NewInt(4000))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestGetAmountOut(t *testing.T) {
	tests := []struct {
		name       string
		amountIn   int64
		reserveIn  int64
		reserveOut int64
		want       int64
		err        error
	}{
		{"balanced pool", 1000, 1_000_000, 1_000_000, 996, nil},
		{"skewed pool", 100_000, 1_000_000, 1_000_000, 90_661, nil},
		{"zero input", 0, 1_000_000, 1_000_000, 0, types.ErrInsufficientInputAmount},
		{"empty reserve", 1000, 0, 1_000_000, 0, types.ErrInsufficientLiquidity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := types.GetAmountOut(math.NewInt(tc.amountIn), math.NewInt(tc.reserveIn), math.NewInt(tc.reserveOut))
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, math.NewInt(tc.want), out)
		})
	}
}

func TestGetAmountIn(t *testing.T) {
	in, err := types.GetAmountIn(math.NewInt(996), math.NewInt(1_000_000), math.NewInt(1_000_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1000), in)

	_, err = types.GetAmountIn(math.ZeroInt(), math.NewInt(1_000_000), math.NewInt(1_000_000))
	require.ErrorIs(t, err, types.ErrInsufficientOutputAmount)

	_, err = types.GetAmountIn(math.NewInt(1_000_000), math.NewInt(1_000_000), math.NewInt(1_000_000))
	require.ErrorIs(t, err, types.ErrDivisionError)

	_, err = types.GetAmountIn(math.NewInt(1_000_001), math.NewInt(1_000_000), math.NewInt(1_000_000))
	require.ErrorIs(t, err, types.ErrOverflow)
}

func TestGetAmountOutOverflow(t *testing.T) {
	_, err := types.GetAmountOut(u256.Max(), u256.Max(), u256.Max())
	require.ErrorIs(t, err, types.ErrOverflow)
}

func TestGetAmountsAlongPath(t *testing.T) {
	reserves := map[string][2]int64{
		string(addr(1)) + string(addr(2)): {1_000_000, 1_000_000},
		string(addr(2)) + string(addr(3)): {500_000, 2_000_000},
	}
	lookup := func(a, b sdk.AccAddress) (math.Int, math.Int, error) {
		if r, ok := reserves[string(a)+string(b)]; ok {
			return math.NewInt(r[0]), math.NewInt(r[1]), nil
		}
		r := reserves[string(b)+string(a)]
		return math.NewInt(r[1]), math.NewInt(r[0]), nil
	}
	path := []sdk.AccAddress{addr(1), addr(2), addr(3)}

	out, err := types.GetAmountsOut(math.NewInt(1000), path, lookup)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, math.NewInt(996), out[1])
	hop2, err := types.GetAmountOut(out[1], math.NewInt(500_000), math.NewInt(2_000_000))
	require.NoError(t, err)
	require.Equal(t, hop2, out[2])

	in, err := types.GetAmountsIn(out[2], path, lookup)
	require.NoError(t, err)
	require.Equal(t, out[2], in[2])
	again, err := types.GetAmountsOut(in[0], path, lookup)
	require.NoError(t, err)
	require.True(t, again[2].GTE(out[2]))

	_, err = types.GetAmountsOut(math.NewInt(1000), path[:1], lookup)
	require.ErrorIs(t, err, types.ErrInvalidPath)
	_, err = types.GetAmountsIn(math.NewInt(1000), nil, lookup)
	require.ErrorIs(t, err, types.ErrInvalidPath)
}

func TestToNative(t *testing.T) {
	v, err := types.ToNative(u256.MaxUint128())
	require.NoError(t, err)
	require.Equal(t, u256.MaxUint128(), v)

	_, err = types.ToNative(u256.MaxUint128().AddRaw(1))
	require.ErrorIs(t, err, types.ErrOverflow)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, types.Config{SwapFeeBps: types.MaxSwapFeeBps}.Validate())
	require.ErrorIs(t, types.Config{SwapFeeBps: types.MaxSwapFeeBps + 1}.Validate(), types.ErrInvalidConfig)
}
