package types_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/x/shared/types"
)

func TestCanonicalOrder(t *testing.T) {
	low := sdk.AccAddress([]byte("aaaaaaaaaaaaaaaaaaaa"))
	high := sdk.AccAddress([]byte("zzzzzzzzzzzzzzzzzzzz"))

	t0, t1 := types.CanonicalOrder(low, high)
	require.Equal(t, high, t0)
	require.Equal(t, low, t1)

	t0, t1 = types.CanonicalOrder(high, low)
	require.Equal(t, high, t0)
	require.Equal(t, low, t1)
}

func TestZeroAddress(t *testing.T) {
	require.True(t, types.IsZeroAddress(nil))
	require.True(t, types.IsZeroAddress(types.ZeroAddress()))
	require.False(t, types.IsZeroAddress(sdk.AccAddress([]byte("aaaaaaaaaaaaaaaaaaaa"))))

	z := types.ZeroAddress()
	z[0] = 1
	require.True(t, types.IsZeroAddress(types.ZeroAddress()))
}
