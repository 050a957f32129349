package keeper

import (
	"context"
	"sync"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MockBankKeeper is an in-memory native coin ledger. It is not rolled back by
// cache contexts, so tests that inject failures after a native transfer must
// account for that.
type MockBankKeeper struct {
	mu       sync.Mutex
	balances map[string]math.Int
	// FailSend makes every SendCoins call fail when set.
	FailSend bool
	Sends    int
}

// NewMockBankKeeper returns an empty bank.
func NewMockBankKeeper() *MockBankKeeper {
	return &MockBankKeeper{balances: make(map[string]math.Int)}
}

func bankKey(addr sdk.AccAddress, denom string) string {
	return string(addr) + "/" + denom
}

// Fund credits addr with coins out of thin air.
func (m *MockBankKeeper) Fund(addr sdk.AccAddress, coins sdk.Coins) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range coins {
		m.balances[bankKey(addr, c.Denom)] = m.balanceLocked(addr, c.Denom).Add(c.Amount)
	}
}

// GetBalance returns addr's holding of denom.
func (m *MockBankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sdk.NewCoin(denom, m.balanceLocked(addr, denom))
}

func (m *MockBankKeeper) balanceLocked(addr sdk.AccAddress, denom string) math.Int {
	if b, ok := m.balances[bankKey(addr, denom)]; ok {
		return b
	}
	return math.ZeroInt()
}

// SendCoins moves coins between two accounts.
func (m *MockBankKeeper) SendCoins(_ context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSend {
		return sdkerrors.ErrUnauthorized.Wrap("sends disabled")
	}
	for _, c := range amt {
		if m.balanceLocked(from, c.Denom).LT(c.Amount) {
			return sdkerrors.ErrInsufficientFunds.Wrapf("%s has %s, needs %s", from, m.balanceLocked(from, c.Denom), c)
		}
	}
	for _, c := range amt {
		m.balances[bankKey(from, c.Denom)] = m.balanceLocked(from, c.Denom).Sub(c.Amount)
		m.balances[bankKey(to, c.Denom)] = m.balanceLocked(to, c.Denom).Add(c.Amount)
	}
	m.Sends++
	return nil
}
