package types

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MaxSwapFeeBps caps the configured swap fee at 100%.
const MaxSwapFeeBps = 10_000

// Config is the admin-mutable router configuration.
type Config struct {
	Factory       sdk.AccAddress `json:"factory"`
	NativeWrapper sdk.AccAddress `json:"native_wrapper"`
	Admin         sdk.AccAddress `json:"admin"`
	FeeRecipient  sdk.AccAddress `json:"fee_recipient"`
	SwapFeeBps    uint64         `json:"swap_fee_bps"`
}

// Validate performs stateless checks on the config.
func (c Config) Validate() error {
	if c.SwapFeeBps > MaxSwapFeeBps {
		return ErrInvalidConfig.Wrapf("swap fee %d bps exceeds %d", c.SwapFeeBps, MaxSwapFeeBps)
	}
	return nil
}

// PendingRefund is an amount of Asset the router holds for a user while an
// operation is in flight. Refunded is set once the amount has reached its
// destination or been returned.
type PendingRefund struct {
	Asset    sdk.AccAddress `json:"asset"`
	Amount   math.Int       `json:"amount"`
	Refunded bool           `json:"refunded"`
}

// LiquidityJoin records a pair a user has provided liquidity to.
type LiquidityJoin struct {
	TokenA sdk.AccAddress `json:"token_a"`
	TokenB sdk.AccAddress `json:"token_b"`
	Pair   sdk.AccAddress `json:"pair"`
}

// AddLiquidityRequest adds liquidity to the pair of TokenA and TokenB.
type AddLiquidityRequest struct {
	TokenA         sdk.AccAddress
	TokenB         sdk.AccAddress
	AmountADesired math.Int
	AmountBDesired math.Int
	AmountAMin     math.Int
	AmountBMin     math.Int
	To             sdk.AccAddress
	Deadline       time.Time
}

// AddLiquidityNativeRequest adds liquidity to the pair of Token and the
// wrapped native asset. NativeValue is the native coin attached by the
// caller; whatever is not used is returned.
type AddLiquidityNativeRequest struct {
	Token              sdk.AccAddress
	AmountTokenDesired math.Int
	AmountTokenMin     math.Int
	AmountNativeMin    math.Int
	NativeValue        math.Int
	To                 sdk.AccAddress
	Deadline           time.Time
}

// AddLiquidityResult reports the amounts deposited and LP tokens minted.
type AddLiquidityResult struct {
	Pair      sdk.AccAddress `json:"pair"`
	AmountA   math.Int       `json:"amount_a"`
	AmountB   math.Int       `json:"amount_b"`
	Liquidity math.Int       `json:"liquidity"`
}

// RemoveLiquidityRequest redeems LP tokens of the pair of TokenA and TokenB.
type RemoveLiquidityRequest struct {
	TokenA     sdk.AccAddress
	TokenB     sdk.AccAddress
	Liquidity  math.Int
	AmountAMin math.Int
	AmountBMin math.Int
	To         sdk.AccAddress
	Deadline   time.Time
}

// RemoveLiquidityNativeRequest redeems LP tokens of the pair of Token and the
// wrapped native asset, paying the native side out as native coin.
type RemoveLiquidityNativeRequest struct {
	Token           sdk.AccAddress
	Liquidity       math.Int
	AmountTokenMin  math.Int
	AmountNativeMin math.Int
	To              sdk.AccAddress
	Deadline        time.Time
}

// RemoveLiquidityResult reports the amounts paid out.
type RemoveLiquidityResult struct {
	Pair    sdk.AccAddress `json:"pair"`
	AmountA math.Int       `json:"amount_a"`
	AmountB math.Int       `json:"amount_b"`
}

// SwapExactInRequest swaps exactly AmountIn along Path. For native input,
// AmountIn is the native value attached.
type SwapExactInRequest struct {
	AmountIn     math.Int
	AmountOutMin math.Int
	Path         []sdk.AccAddress
	To           sdk.AccAddress
	Deadline     time.Time
}

// SwapExactOutRequest swaps at most AmountInMax along Path for exactly
// AmountOut. For native input, AmountInMax is the native value attached.
type SwapExactOutRequest struct {
	AmountOut   math.Int
	AmountInMax math.Int
	Path        []sdk.AccAddress
	To          sdk.AccAddress
	Deadline    time.Time
}
