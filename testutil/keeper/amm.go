package keeper

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	pairkeeper "github.com/paw-chain/amm/x/pair/keeper"
	pairtypes "github.com/paw-chain/amm/x/pair/types"
	registrykeeper "github.com/paw-chain/amm/x/registry/keeper"
	registrytypes "github.com/paw-chain/amm/x/registry/types"
	routerkeeper "github.com/paw-chain/amm/x/router/keeper"
	routertypes "github.com/paw-chain/amm/x/router/types"
	tokenkeeper "github.com/paw-chain/amm/x/token/keeper"
	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// NativeDenom is the bank denom wrapped by the test wrapper token.
const NativeDenom = "unat"

// HookedLedger wraps the token ledger so tests can make transfers fail or
// call back into other keepers from inside a transfer.
type HookedLedger struct {
	*tokenkeeper.Keeper

	// FailTransfer, when set, is consulted before every transfer; a non-nil
	// result aborts the transfer with that error.
	FailTransfer func(token, from, to sdk.AccAddress) error
	// OnTransfer runs before every transfer that was not failed.
	OnTransfer func(ctx context.Context, token, from, to sdk.AccAddress, amount math.Int)
}

func (h *HookedLedger) before(ctx context.Context, token, from, to sdk.AccAddress, amount math.Int) error {
	if h.FailTransfer != nil {
		if err := h.FailTransfer(token, from, to); err != nil {
			return err
		}
	}
	if h.OnTransfer != nil {
		h.OnTransfer(ctx, token, from, to, amount)
	}
	return nil
}

// Transfer implements the asset ledger.
func (h *HookedLedger) Transfer(ctx context.Context, token, from, to sdk.AccAddress, amount math.Int) error {
	if err := h.before(ctx, token, from, to, amount); err != nil {
		return err
	}
	return h.Keeper.Transfer(ctx, token, from, to, amount)
}

// TransferFrom implements the asset ledger.
func (h *HookedLedger) TransferFrom(ctx context.Context, token, spender, from, to sdk.AccAddress, amount math.Int) error {
	if err := h.before(ctx, token, from, to, amount); err != nil {
		return err
	}
	return h.Keeper.TransferFrom(ctx, token, spender, from, to, amount)
}

// Reset clears every hook.
func (h *HookedLedger) Reset() {
	h.FailTransfer = nil
	h.OnTransfer = nil
}

// AMMEnv is a fully wired set of keepers on one multistore.
type AMMEnv struct {
	Ctx      sdk.Context
	Bank     *MockBankKeeper
	Ledger   *HookedLedger
	Token    *tokenkeeper.Keeper
	Pair     *pairkeeper.Keeper
	Registry *registrykeeper.Keeper
	Router   *routerkeeper.Keeper
	Admin    sdk.AccAddress
	// Native is the wrapped native token.
	Native sdk.AccAddress
}

// NewAMMEnv wires token, pair, registry and router keepers the way the app
// does, with Admin governing the registry and the router.
func NewAMMEnv(t testing.TB) *AMMEnv {
	tokenKey := storetypes.NewKVStoreKey(tokentypes.StoreKey)
	pairKey := storetypes.NewKVStoreKey(pairtypes.StoreKey)
	registryKey := storetypes.NewKVStoreKey(registrytypes.StoreKey)
	routerKey := storetypes.NewKVStoreKey(routertypes.StoreKey)
	ctx := NewTestContext(t, tokenKey, pairKey, registryKey, routerKey)

	bank := NewMockBankKeeper()
	tk := tokenkeeper.NewKeeper(tokenKey, bank)
	ledger := &HookedLedger{Keeper: tk}
	pk := pairkeeper.NewKeeper(pairKey, ledger)
	rk := registrykeeper.NewKeeper(registryKey, tk, pk)
	pk.SetRegistryKeeper(rk)
	router := routerkeeper.NewKeeper(routerKey, ledger, tk, pk, rk, bank)

	admin := TestAddr("admin")
	require.NoError(t, rk.SetConfig(ctx, registrytypes.Config{
		Admin:       admin,
		FeeToSetter: admin,
		Router:      router.Address(),
	}))

	native, err := tk.CreateToken(ctx, admin, "Wrapped Native", "WNAT", 6, NativeDenom)
	require.NoError(t, err)
	require.NoError(t, router.SetConfig(ctx, routertypes.Config{
		Factory:       rk.Address(),
		NativeWrapper: native.Address,
		Admin:         admin,
	}))

	return &AMMEnv{
		Ctx:      ctx,
		Bank:     bank,
		Ledger:   ledger,
		Token:    tk,
		Pair:     pk,
		Registry: rk,
		Router:   router,
		Admin:    admin,
		Native:   native.Address,
	}
}

// CreateToken registers a token administered by env.Admin.
func (e *AMMEnv) CreateToken(t testing.TB, symbol string) sdk.AccAddress {
	tok, err := e.Token.CreateToken(e.Ctx, e.Admin, symbol+" Token", symbol, 6, "")
	require.NoError(t, err)
	return tok.Address
}

// Fund mints amount of token to owner.
func (e *AMMEnv) Fund(t testing.TB, token, owner sdk.AccAddress, amount int64) {
	require.NoError(t, e.Token.Mint(e.Ctx, e.Admin, token, owner, math.NewInt(amount)))
}

// FundNative credits owner with native coin.
func (e *AMMEnv) FundNative(owner sdk.AccAddress, amount int64) {
	e.Bank.Fund(owner, sdk.NewCoins(sdk.NewInt64Coin(NativeDenom, amount)))
}

// ApproveRouter lets the router spend amount of token on owner's behalf.
func (e *AMMEnv) ApproveRouter(t testing.TB, token, owner sdk.AccAddress, amount int64) {
	require.NoError(t, e.Token.Approve(e.Ctx, token, owner, e.Router.Address(), math.NewInt(amount)))
}

// Balance returns owner's ledger balance of token.
func (e *AMMEnv) Balance(t testing.TB, token, owner sdk.AccAddress) math.Int {
	bal, err := e.Token.BalanceOf(e.Ctx, token, owner)
	require.NoError(t, err)
	return bal
}

// NativeBalance returns owner's native coin balance.
func (e *AMMEnv) NativeBalance(owner sdk.AccAddress) math.Int {
	return e.Bank.GetBalance(e.Ctx, owner, NativeDenom).Amount
}

// CreatePair registers the pair of two tokens through the registry.
func (e *AMMEnv) CreatePair(t testing.TB, tokenA, tokenB sdk.AccAddress) sdk.AccAddress {
	pair, err := e.Registry.CreatePair(e.Ctx, e.Admin, tokenA, tokenB)
	require.NoError(t, err)
	return pair
}

// Seed deposits amountA and amountB straight into pair and mints the LP
// tokens to owner, bypassing the router.
func (e *AMMEnv) Seed(t testing.TB, pair, tokenA, tokenB, owner sdk.AccAddress, amountA, amountB int64) math.Int {
	e.Fund(t, tokenA, pair, amountA)
	e.Fund(t, tokenB, pair, amountB)
	liquidity, err := e.Pair.Mint(e.Ctx, owner, pair, owner)
	require.NoError(t, err)
	return liquidity
}
