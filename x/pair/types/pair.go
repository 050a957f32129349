package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedtypes "github.com/paw-chain/amm/x/shared/types"
)

const (
	// MinimumLiquidity is locked at the zero address on the first mint.
	MinimumLiquidity = 1000

	// FeeDenominator and FeeNumerator express the 0.3% swap fee as 3/1000.
	FeeDenominator = 1000
	FeeNumerator   = 3

	// ProtocolFeeDivisor makes the protocol take 1/6 of fee growth.
	ProtocolFeeDivisor = 5
)

// Pair is the full state of a constant-product pool.
type Pair struct {
	Address  sdk.AccAddress `json:"address"`
	Token0   sdk.AccAddress `json:"token0"`
	Token1   sdk.AccAddress `json:"token1"`
	Registry sdk.AccAddress `json:"registry"`
	Admin    sdk.AccAddress `json:"admin"`
	Router   sdk.AccAddress `json:"router"`

	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint32 `json:"decimals"`

	Reserve0           math.Int `json:"reserve0"`
	Reserve1           math.Int `json:"reserve1"`
	CumulativePrice0   math.Int `json:"cumulative_price0"`
	CumulativePrice1   math.Int `json:"cumulative_price1"`
	BlockTimestampLast uint32   `json:"block_timestamp_last"`
	KLast              math.Int `json:"k_last"`
	TotalSupply        math.Int `json:"total_supply"`
}

// InitPair carries everything needed to instantiate a pair.
type InitPair struct {
	Name     string
	Symbol   string
	Decimals uint32
	Registry sdk.AccAddress
	TokenA   sdk.AccAddress
	TokenB   sdk.AccAddress
	Admin    sdk.AccAddress
	Router   sdk.AccAddress
}

// NewPair builds an empty pair from init, ordering tokens canonically.
func NewPair(init InitPair) (Pair, error) {
	if init.TokenA.Equals(init.TokenB) {
		return Pair{}, ErrInvalidTokens.Wrap("identical tokens")
	}
	if sharedtypes.IsZeroAddress(init.TokenA) || sharedtypes.IsZeroAddress(init.TokenB) {
		return Pair{}, ErrInvalidTokens.Wrap("zero token address")
	}
	token0, token1 := sharedtypes.CanonicalOrder(init.TokenA, init.TokenB)
	return Pair{
		Address:          PairAddress(init.Registry, token0, token1),
		Token0:           token0,
		Token1:           token1,
		Registry:         init.Registry,
		Admin:            init.Admin,
		Router:           init.Router,
		Name:             init.Name,
		Symbol:           init.Symbol,
		Decimals:         init.Decimals,
		Reserve0:         math.ZeroInt(),
		Reserve1:         math.ZeroInt(),
		CumulativePrice0: math.ZeroInt(),
		CumulativePrice1: math.ZeroInt(),
		KLast:            math.ZeroInt(),
		TotalSupply:      math.ZeroInt(),
	}, nil
}

// Validate performs stateless checks on the pair state.
func (p Pair) Validate() error {
	if len(p.Address) == 0 {
		return ErrInvalidTokens.Wrap("pair address is empty")
	}
	if p.Token0.Equals(p.Token1) || sharedtypes.IsZeroAddress(p.Token1) {
		return ErrInvalidTokens.Wrapf("pair %s", p.Address)
	}
	t0, _ := sharedtypes.CanonicalOrder(p.Token0, p.Token1)
	if !t0.Equals(p.Token0) {
		return ErrInvalidTokens.Wrapf("pair %s tokens not canonically ordered", p.Address)
	}
	for name, v := range map[string]math.Int{
		"reserve0": p.Reserve0, "reserve1": p.Reserve1,
		"cumulative_price0": p.CumulativePrice0, "cumulative_price1": p.CumulativePrice1,
		"k_last": p.KLast, "total_supply": p.TotalSupply,
	} {
		if v.IsNil() || v.IsNegative() {
			return fmt.Errorf("pair %s: %s must be non-negative", p.Address, name)
		}
	}
	return nil
}

// HasToken reports whether addr is one of the pair's tokens.
func (p Pair) HasToken(addr sdk.AccAddress) bool {
	return addr.Equals(p.Token0) || addr.Equals(p.Token1)
}
