package types

import (
	"errors"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedtypes "github.com/paw-chain/amm/x/shared/types"
	"github.com/paw-chain/amm/x/shared/u256"
)

// Quote math constants. The 0.3% fee is applied as 997_000 / 1_000_000.
var (
	quotePrecision = math.NewInt(1_000_000)
	quoteFeeFactor = math.NewInt(997_000)
)

// ReservesFunc returns the reserves of the pair of a and b, oriented so the
// first value belongs to a.
type ReservesFunc func(a, b sdk.AccAddress) (math.Int, math.Int, error)

// SortTokens orders two tokens the way pairs store them: larger address first.
func SortTokens(tokenA, tokenB sdk.AccAddress) (sdk.AccAddress, sdk.AccAddress, error) {
	if tokenA.Equals(tokenB) {
		return nil, nil, ErrIdenticalAddresses
	}
	token0, token1 := sharedtypes.CanonicalOrder(tokenA, tokenB)
	if sharedtypes.IsZeroAddress(token0) {
		return nil, nil, ErrZeroAddress
	}
	return token0, token1, nil
}

// Quote returns the amount of B worth amountA at the given reserves.
func Quote(amountA, reserveA, reserveB math.Int) (math.Int, error) {
	if amountA.IsNil() || amountA.IsZero() {
		return math.Int{}, ErrInsufficientAAmount
	}
	if reserveA.IsNil() || reserveB.IsNil() || reserveA.IsZero() || reserveB.IsZero() {
		return math.Int{}, ErrInsufficientLiquidity
	}
	amountB, err := u256.MulDiv(amountA, reserveB, reserveA)
	if err != nil {
		return math.Int{}, arith(err)
	}
	return amountB, nil
}

// GetAmountOut returns the output of swapping amountIn against the reserves
// after the 0.3% fee: amountIn*997*rOut / (rIn*1000 + amountIn*997).
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	if amountIn.IsNil() || amountIn.IsZero() {
		return math.Int{}, ErrInsufficientInputAmount
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || reserveIn.IsZero() || reserveOut.IsZero() {
		return math.Int{}, ErrInsufficientLiquidity
	}
	inWithFee, err := u256.Mul(amountIn, quoteFeeFactor)
	if err != nil {
		return math.Int{}, arith(err)
	}
	numerator, err := u256.Mul(inWithFee, reserveOut)
	if err != nil {
		return math.Int{}, arith(err)
	}
	scaled, err := u256.Mul(reserveIn, quotePrecision)
	if err != nil {
		return math.Int{}, arith(err)
	}
	denominator, err := u256.Add(scaled, inWithFee)
	if err != nil {
		return math.Int{}, arith(err)
	}
	amountOut, err := u256.Quo(numerator, denominator)
	if err != nil {
		return math.Int{}, arith(err)
	}
	return amountOut, nil
}

// GetAmountIn returns the input needed to receive amountOut, rounded up so
// the caller never underpays.
func GetAmountIn(amountOut, reserveIn, reserveOut math.Int) (math.Int, error) {
	if amountOut.IsNil() || amountOut.IsZero() {
		return math.Int{}, ErrInsufficientOutputAmount
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || reserveIn.IsZero() || reserveOut.IsZero() {
		return math.Int{}, ErrInsufficientLiquidity
	}
	product, err := u256.Mul(reserveIn, amountOut)
	if err != nil {
		return math.Int{}, arith(err)
	}
	numerator, err := u256.Mul(product, quotePrecision)
	if err != nil {
		return math.Int{}, arith(err)
	}
	remaining, err := u256.Sub(reserveOut, amountOut)
	if err != nil {
		return math.Int{}, arith(err)
	}
	denominator, err := u256.Mul(remaining, quoteFeeFactor)
	if err != nil {
		return math.Int{}, arith(err)
	}
	amountIn, err := u256.Quo(numerator, denominator)
	if err != nil {
		return math.Int{}, arith(err)
	}
	amountIn, err = u256.Add(amountIn, math.OneInt())
	if err != nil {
		return math.Int{}, arith(err)
	}
	return amountIn, nil
}

// GetAmountsOut folds GetAmountOut forward along path.
func GetAmountsOut(amountIn math.Int, path []sdk.AccAddress, reserves ReservesFunc) ([]math.Int, error) {
	if len(path) < 2 {
		return nil, ErrInvalidPath.Wrapf("path has %d tokens", len(path))
	}
	amounts := make([]math.Int, len(path))
	amounts[0] = amountIn
	for i := 0; i < len(path)-1; i++ {
		reserveIn, reserveOut, err := reserves(path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		amounts[i+1], err = GetAmountOut(amounts[i], reserveIn, reserveOut)
		if err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

// GetAmountsIn folds GetAmountIn backward along path.
func GetAmountsIn(amountOut math.Int, path []sdk.AccAddress, reserves ReservesFunc) ([]math.Int, error) {
	if len(path) < 2 {
		return nil, ErrInvalidPath.Wrapf("path has %d tokens", len(path))
	}
	amounts := make([]math.Int, len(path))
	amounts[len(path)-1] = amountOut
	for i := len(path) - 1; i > 0; i-- {
		reserveIn, reserveOut, err := reserves(path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		amounts[i-1], err = GetAmountIn(amounts[i], reserveIn, reserveOut)
		if err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

// ToNative checks that amount fits the native coin's 128-bit width.
func ToNative(amount math.Int) (math.Int, error) {
	if err := u256.Validate(amount); err != nil {
		return math.Int{}, ErrInvalidAmount.Wrap(err.Error())
	}
	if !u256.FitsUint128(amount) {
		return math.Int{}, ErrOverflow.Wrapf("native amount %s exceeds 128 bits", amount)
	}
	return amount, nil
}

func arith(err error) error {
	if errors.Is(err, u256.ErrDivisionByZero) {
		return ErrDivisionError.Wrap(err.Error())
	}
	return ErrOverflow.Wrap(err.Error())
}
