package api

import (
	"fmt"
	"strings"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	routertypes "github.com/paw-chain/amm/x/router/types"
)

// Input limits
const (
	MaxRequestSize   = 1 << 20 // 1 MB
	MaxAmountLength  = 78      // digits of 2^256-1
	MaxAddressLength = 100
	MaxPathLength    = 16
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	if !v.HasErrors() {
		return ""
	}
	var sb strings.Builder
	for i, err := range v.Errors {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return sb.String()
}

// err returns v as an error, or nil when nothing was recorded.
func (v *ValidationErrors) err() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

// =================== Field Parsing ===================

// address parses a bech32 account address. Empty input yields nil and
// records an error only when required.
func (v *ValidationErrors) address(field, s string, required bool) sdk.AccAddress {
	s = strings.TrimSpace(s)
	if s == "" {
		if required {
			v.Add(field, "address is required")
		}
		return nil
	}
	if len(s) > MaxAddressLength {
		v.Add(field, "address too long")
		return nil
	}
	addr, err := sdk.AccAddressFromBech32(s)
	if err != nil {
		v.Add(field, fmt.Sprintf("invalid address: %v", err))
		return nil
	}
	return addr
}

// amount parses a non-negative base-10 integer. Empty input is zero unless
// the field is required.
func (v *ValidationErrors) amount(field, s string, required bool) math.Int {
	s = strings.TrimSpace(s)
	if s == "" {
		if required {
			v.Add(field, "amount is required")
		}
		return math.ZeroInt()
	}
	if len(s) > MaxAmountLength {
		v.Add(field, "amount too large")
		return math.ZeroInt()
	}
	amt, ok := math.NewIntFromString(s)
	if !ok || amt.IsNegative() {
		v.Add(field, "amount must be a non-negative integer")
		return math.ZeroInt()
	}
	return amt
}

// path parses a swap path of at least two token addresses.
func (v *ValidationErrors) path(field string, hops []string) []sdk.AccAddress {
	if len(hops) < 2 {
		v.Add(field, "path needs at least two tokens")
		return nil
	}
	if len(hops) > MaxPathLength {
		v.Add(field, fmt.Sprintf("path longer than %d tokens", MaxPathLength))
		return nil
	}
	path := make([]sdk.AccAddress, 0, len(hops))
	for i, hop := range hops {
		addr := v.address(fmt.Sprintf("%s[%d]", field, i), hop, true)
		path = append(path, addr)
	}
	return path
}

// splitPath splits a comma separated query parameter.
func splitPath(s string) []string {
	var hops []string
	for _, hop := range strings.Split(s, ",") {
		if hop = strings.TrimSpace(hop); hop != "" {
			hops = append(hops, hop)
		}
	}
	return hops
}

// deadline falls back to blockTime+def when the request carries none.
func deadline(d *time.Time, blockTime time.Time, def time.Duration) time.Time {
	if d != nil {
		return *d
	}
	return blockTime.Add(def)
}

// =================== Request Conversion ===================

func (req *SwapExactInRequest) toRouter(blockTime time.Time, def time.Duration) (sdk.AccAddress, routertypes.SwapExactInRequest, error) {
	var v ValidationErrors
	sender := v.address("sender", req.Sender, true)
	out := routertypes.SwapExactInRequest{
		AmountIn:     v.amount("amount_in", req.AmountIn, true),
		AmountOutMin: v.amount("amount_out_min", req.AmountOutMin, false),
		Path:         v.path("path", req.Path),
		To:           v.address("to", req.To, false),
		Deadline:     deadline(req.Deadline, blockTime, def),
	}
	if out.To == nil {
		out.To = sender
	}
	if req.NativeIn && req.NativeOut {
		v.Add("native_out", "native_in and native_out are exclusive")
	}
	return sender, out, v.err()
}

func (req *SwapExactOutRequest) toRouter(blockTime time.Time, def time.Duration) (sdk.AccAddress, routertypes.SwapExactOutRequest, error) {
	var v ValidationErrors
	sender := v.address("sender", req.Sender, true)
	out := routertypes.SwapExactOutRequest{
		AmountOut:   v.amount("amount_out", req.AmountOut, true),
		AmountInMax: v.amount("amount_in_max", req.AmountInMax, true),
		Path:        v.path("path", req.Path),
		To:          v.address("to", req.To, false),
		Deadline:    deadline(req.Deadline, blockTime, def),
	}
	if out.To == nil {
		out.To = sender
	}
	if req.NativeIn && req.NativeOut {
		v.Add("native_out", "native_in and native_out are exclusive")
	}
	return sender, out, v.err()
}

func (req *AddLiquidityRequest) toRouter(blockTime time.Time, def time.Duration) (sdk.AccAddress, routertypes.AddLiquidityRequest, error) {
	var v ValidationErrors
	sender := v.address("sender", req.Sender, true)
	out := routertypes.AddLiquidityRequest{
		TokenA:         v.address("token_a", req.TokenA, true),
		TokenB:         v.address("token_b", req.TokenB, !req.Native),
		AmountADesired: v.amount("amount_a_desired", req.AmountADesired, true),
		AmountBDesired: v.amount("amount_b_desired", req.AmountBDesired, true),
		AmountAMin:     v.amount("amount_a_min", req.AmountAMin, false),
		AmountBMin:     v.amount("amount_b_min", req.AmountBMin, false),
		To:             v.address("to", req.To, false),
		Deadline:       deadline(req.Deadline, blockTime, def),
	}
	if out.To == nil {
		out.To = sender
	}
	return sender, out, v.err()
}

func (req *RemoveLiquidityRequest) toRouter(blockTime time.Time, def time.Duration) (sdk.AccAddress, routertypes.RemoveLiquidityRequest, error) {
	var v ValidationErrors
	sender := v.address("sender", req.Sender, true)
	out := routertypes.RemoveLiquidityRequest{
		TokenA:     v.address("token_a", req.TokenA, true),
		TokenB:     v.address("token_b", req.TokenB, !req.Native),
		Liquidity:  v.amount("liquidity", req.Liquidity, true),
		AmountAMin: v.amount("amount_a_min", req.AmountAMin, false),
		AmountBMin: v.amount("amount_b_min", req.AmountBMin, false),
		To:         v.address("to", req.To, false),
		Deadline:   deadline(req.Deadline, blockTime, def),
	}
	if out.To == nil {
		out.To = sender
	}
	return sender, out, v.err()
}

// bindJSON binds a bounded JSON body.
func bindJSON(c *gin.Context, obj any) error {
	if c.Request.ContentLength > MaxRequestSize {
		return fmt.Errorf("request body too large (max %d bytes)", MaxRequestSize)
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func amountStrings(amounts []math.Int) []string {
	out := make([]string, len(amounts))
	for i, a := range amounts {
		out[i] = a.String()
	}
	return out
}
