package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	pairtypes "github.com/paw-chain/amm/x/pair/types"
	registrytypes "github.com/paw-chain/amm/x/registry/types"
	routertypes "github.com/paw-chain/amm/x/router/types"
	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// TestModuleStoreKeysAreDistinct verifies every module mounts its own store.
func TestModuleStoreKeysAreDistinct(t *testing.T) {
	seen := map[string]bool{metaStoreKey: true}
	for _, key := range []string{
		tokentypes.StoreKey,
		pairtypes.StoreKey,
		registrytypes.StoreKey,
		routertypes.StoreKey,
	} {
		require.False(t, seen[key], "store key %q mounted twice", key)
		seen[key] = true
	}
}

// TestKeyPrefixesDoNotOverlap verifies that no prefix within a module store
// is a prefix of another, so iterators never cross record types.
func TestKeyPrefixesDoNotOverlap(t *testing.T) {
	modules := map[string][][]byte{
		tokentypes.ModuleName: {
			tokentypes.TokenKeyPrefix,
			tokentypes.BalanceKeyPrefix,
			tokentypes.AllowanceKeyPrefix,
			tokentypes.TokenBySymbolKey,
		},
		pairtypes.ModuleName: {
			pairtypes.PairKeyPrefix,
			pairtypes.LPBalanceKeyPrefix,
			pairtypes.LPAllowanceKeyPrefix,
		},
		registrytypes.ModuleName: {
			registrytypes.ConfigKey,
			registrytypes.PairKeyPrefix,
			registrytypes.BridgedAssetPrefix,
		},
		routertypes.ModuleName: {
			routertypes.ConfigKey,
			routertypes.LockKey,
			routertypes.PausedKey,
			routertypes.PendingRefundKeyPrefix,
			routertypes.LiquidityJoinKeyPrefix,
		},
	}

	for name, keys := range modules {
		for i, a := range keys {
			require.NotEmpty(t, a, "%s key %d is empty", name, i)
			for j, b := range keys {
				if i == j {
					continue
				}
				require.False(t, bytes.HasPrefix(a, b), "%s key %x overlaps %x", name, a, b)
			}
		}
	}
}

// TestUserKeysAreLengthPrefixed verifies that per-user router keys of
// different users never share a prefix.
func TestUserKeysAreLengthPrefixed(t *testing.T) {
	SetConfig()
	short := testAddr("a")[:10]
	long := testAddr("a")

	require.False(t, bytes.HasPrefix(routertypes.GetPendingRefundKey(long), routertypes.GetPendingRefundKey(short)))
	require.False(t, bytes.HasPrefix(routertypes.GetLiquidityJoinKey(long), routertypes.GetLiquidityJoinKey(short)))
	require.False(t, bytes.Equal(routertypes.GetPendingRefundKey(long), routertypes.GetLiquidityJoinKey(long)))
}
