package api

import (
	"time"
)

// Amounts travel as base-10 strings so that 256-bit values survive JSON.

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ==================== Pair Types ====================

// TokenInfo is the cached metadata of a ledger token.
type TokenInfo struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint32 `json:"decimals"`
	Native   bool   `json:"native,omitempty"`
}

// PairView is a pair as served by the API.
type PairView struct {
	Address            string    `json:"address"`
	Token0             TokenInfo `json:"token0"`
	Token1             TokenInfo `json:"token1"`
	LPName             string    `json:"lp_name"`
	LPSymbol           string    `json:"lp_symbol"`
	LPDecimals         uint32    `json:"lp_decimals"`
	Reserve0           string    `json:"reserve0"`
	Reserve1           string    `json:"reserve1"`
	TotalSupply        string    `json:"total_supply"`
	BlockTimestampLast uint32    `json:"block_timestamp_last"`
}

// PairsResponse is a page of pairs.
type PairsResponse struct {
	Pairs  []PairView `json:"pairs"`
	Total  int        `json:"total"`
	Offset int        `json:"offset"`
	Limit  int        `json:"limit"`
}

// PairsQuery selects a page of pairs
type PairsQuery struct {
	Offset int `form:"offset" binding:"omitempty,min=0"`
	Limit  int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// ==================== Quote Types ====================

// AmountsOutQuery quotes a swap of AmountIn along Path
type AmountsOutQuery struct {
	AmountIn string `form:"amount_in" binding:"required"`
	Path     string `form:"path" binding:"required"`
}

// AmountsInQuery quotes the input needed for AmountOut along Path
type AmountsInQuery struct {
	AmountOut string `form:"amount_out" binding:"required"`
	Path      string `form:"path" binding:"required"`
}

// AmountsResponse lists the amount at every hop of a path.
type AmountsResponse struct {
	Path    []string `json:"path"`
	Amounts []string `json:"amounts"`
}

// ==================== Router Types ====================

// RouterConfigResponse is the router configuration.
type RouterConfigResponse struct {
	Factory       string `json:"factory"`
	NativeWrapper string `json:"native_wrapper"`
	Admin         string `json:"admin"`
	FeeRecipient  string `json:"fee_recipient,omitempty"`
	SwapFeeBps    uint64 `json:"swap_fee_bps"`
	Paused        bool   `json:"paused"`
}

// PendingRefundView is one pending refund entry.
type PendingRefundView struct {
	Asset    string `json:"asset"`
	Amount   string `json:"amount"`
	Refunded bool   `json:"refunded"`
}

// LiquidityJoinView is one pair a user joined.
type LiquidityJoinView struct {
	TokenA string `json:"token_a"`
	TokenB string `json:"token_b"`
	Pair   string `json:"pair"`
}

// SwapExactInRequest swaps exactly AmountIn along Path. NativeIn attaches
// AmountIn as native coin and NativeOut pays the output as native coin; the
// matching end of Path must then be the native wrapper.
type SwapExactInRequest struct {
	Sender       string     `json:"sender" binding:"required"`
	AmountIn     string     `json:"amount_in" binding:"required"`
	AmountOutMin string     `json:"amount_out_min"`
	Path         []string   `json:"path" binding:"required,min=2"`
	To           string     `json:"to"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	NativeIn     bool       `json:"native_in,omitempty"`
	NativeOut    bool       `json:"native_out,omitempty"`
}

// SwapExactOutRequest swaps at most AmountInMax along Path for exactly
// AmountOut. With NativeIn, AmountInMax is the native value attached.
type SwapExactOutRequest struct {
	Sender      string     `json:"sender" binding:"required"`
	AmountOut   string     `json:"amount_out" binding:"required"`
	AmountInMax string     `json:"amount_in_max" binding:"required"`
	Path        []string   `json:"path" binding:"required,min=2"`
	To          string     `json:"to"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	NativeIn    bool       `json:"native_in,omitempty"`
	NativeOut   bool       `json:"native_out,omitempty"`
}

// SwapResponse lists the amounts at every hop.
type SwapResponse struct {
	Amounts []string `json:"amounts"`
	Height  int64    `json:"height"`
}

// AddLiquidityRequest deposits into the pair of TokenA and TokenB. With
// Native set, TokenB is ignored and the B side is native coin: AmountBDesired
// is the value attached and AmountBMin the native minimum.
type AddLiquidityRequest struct {
	Sender         string     `json:"sender" binding:"required"`
	TokenA         string     `json:"token_a" binding:"required"`
	TokenB         string     `json:"token_b"`
	AmountADesired string     `json:"amount_a_desired" binding:"required"`
	AmountBDesired string     `json:"amount_b_desired" binding:"required"`
	AmountAMin     string     `json:"amount_a_min"`
	AmountBMin     string     `json:"amount_b_min"`
	To             string     `json:"to"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Native         bool       `json:"native,omitempty"`
}

// AddLiquidityResponse reports the deposit.
type AddLiquidityResponse struct {
	AmountA   string `json:"amount_a"`
	AmountB   string `json:"amount_b"`
	Liquidity string `json:"liquidity"`
	Height    int64  `json:"height"`
}

// RemoveLiquidityRequest redeems Liquidity LP tokens of the pair of TokenA
// and TokenB. With Native set, TokenB is ignored and the B side is paid out
// as native coin.
type RemoveLiquidityRequest struct {
	Sender     string     `json:"sender" binding:"required"`
	TokenA     string     `json:"token_a" binding:"required"`
	TokenB     string     `json:"token_b"`
	Liquidity  string     `json:"liquidity" binding:"required"`
	AmountAMin string     `json:"amount_a_min"`
	AmountBMin string     `json:"amount_b_min"`
	To         string     `json:"to"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	Native     bool       `json:"native,omitempty"`
}

// RemoveLiquidityResponse reports the payout.
type RemoveLiquidityResponse struct {
	AmountA string `json:"amount_a"`
	AmountB string `json:"amount_b"`
	Height  int64  `json:"height"`
}
