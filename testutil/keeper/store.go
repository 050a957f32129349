package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

// GenesisTime is the block time of every test context.
var GenesisTime = time.Unix(1_700_000_000, 0).UTC()

// NewTestContext mounts an IAVL store for each key on a fresh in-memory
// database and returns a context at height 1.
func NewTestContext(t testing.TB, keys ...*storetypes.KVStoreKey) sdk.Context {
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, key := range keys {
		stateStore.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	require.NoError(t, stateStore.LoadLatestVersion())

	header := cmtproto.Header{Height: 1, Time: GenesisTime, ChainID: "amm-test-1"}
	return sdk.NewContext(stateStore, header, false, log.NewNopLogger())
}

// AdvanceTime returns ctx moved forward by d and one block.
func AdvanceTime(ctx sdk.Context, d time.Duration) sdk.Context {
	return ctx.WithBlockTime(ctx.BlockTime().Add(d)).WithBlockHeight(ctx.BlockHeight() + 1)
}

// TestAddr builds a deterministic 20-byte address from a label.
func TestAddr(label string) sdk.AccAddress {
	addr := make([]byte, 20)
	copy(addr, label)
	return sdk.AccAddress(addr)
}
