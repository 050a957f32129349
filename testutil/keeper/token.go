package keeper

import (
	"testing"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/token/keeper"
	"github.com/paw-chain/amm/x/token/types"
)

// TokenKeeper creates a ledger keeper backed by a mock bank.
func TokenKeeper(t testing.TB) (*keeper.Keeper, *MockBankKeeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := NewTestContext(t, storeKey)
	bank := NewMockBankKeeper()
	return keeper.NewKeeper(storeKey, bank), bank, ctx
}
