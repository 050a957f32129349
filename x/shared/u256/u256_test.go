package u256_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/paw-chain/amm/x/shared/u256"
)

func TestAddOverflow(t *testing.T) {
	_, err := u256.Add(u256.Max(), math.OneInt())
	require.ErrorIs(t, err, u256.ErrOverflow)

	sum, err := u256.Add(u256.Max().SubRaw(1), math.OneInt())
	require.NoError(t, err)
	require.True(t, sum.Equal(u256.Max()))
}

func TestSubUnderflow(t *testing.T) {
	_, err := u256.Sub(math.NewInt(5), math.NewInt(6))
	require.ErrorIs(t, err, u256.ErrUnderflow)

	require.True(t, u256.SaturatingSub(math.NewInt(5), math.NewInt(6)).IsZero())
	require.True(t, u256.SaturatingSub(math.NewInt(9), math.NewInt(6)).Equal(math.NewInt(3)))
}

func TestMulOverflow(t *testing.T) {
	half := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 128))
	_, err := u256.Mul(half, half)
	require.ErrorIs(t, err, u256.ErrOverflow)

	p, err := u256.Mul(half, math.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, 130, p.BigInt().BitLen())
}

func TestQuoByZero(t *testing.T) {
	_, err := u256.Quo(math.NewInt(1), math.ZeroInt())
	require.ErrorIs(t, err, u256.ErrDivisionByZero)

	_, err = u256.MulDiv(math.NewInt(1), math.NewInt(1), math.ZeroInt())
	require.ErrorIs(t, err, u256.ErrDivisionByZero)
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, u256.Validate(math.Int{}), u256.ErrInvalidAmount)
	require.ErrorIs(t, u256.Validate(math.NewInt(-1)), u256.ErrUnderflow)
	require.NoError(t, u256.Validate(u256.Max()))

	require.True(t, u256.FitsUint128(u256.MaxUint128()))
	require.False(t, u256.FitsUint128(u256.MaxUint128().AddRaw(1)))
}

func TestSqrt(t *testing.T) {
	cases := map[int64]int64{0: 0, 1: 1, 3: 1, 4: 2, 15: 3, 16: 4, 1_000_000: 1000, 4_000_000_000_000: 2_000_000}
	for in, want := range cases {
		got, err := u256.Sqrt(math.NewInt(in))
		require.NoError(t, err)
		require.Equal(t, want, got.Int64(), "sqrt(%d)", in)
	}

	root, err := u256.Sqrt(u256.Max())
	require.NoError(t, err)
	require.True(t, root.Equal(u256.MaxUint128()))
}

func TestSqrtIsFloor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Uint64().Draw(t, "n")
		x := math.NewIntFromUint64(n)

		r, err := u256.Sqrt(x)
		if err != nil {
			t.Fatalf("sqrt failed: %v", err)
		}
		next := r.AddRaw(1)
		if r.Mul(r).GT(x) || next.Mul(next).LTE(x) {
			t.Fatalf("sqrt(%s) = %s is not the floor root", x, r)
		}
	})
}
