// Package u256 provides checked unsigned 256-bit arithmetic over math.Int.
//
// Every result is bounded to [0, 2^256-1]. Operations that would leave that
// range return ErrOverflow or ErrUnderflow instead of wrapping or panicking,
// so callers can surface a typed error from any reserve or supply update.
package u256

import (
	"math/big"

	"cosmossdk.io/math"
)

var (
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// Max returns 2^256-1.
func Max() math.Int {
	return math.NewIntFromBigInt(maxUint256)
}

// MaxUint128 returns 2^128-1, the ceiling for native value amounts.
func MaxUint128() math.Int {
	return math.NewIntFromBigInt(maxUint128)
}

// Zero returns a zero amount. Unlike math.Int{}, it is safe to call methods on.
func Zero() math.Int {
	return math.ZeroInt()
}

// Validate checks that a is set, non-negative and fits in 256 bits.
func Validate(a math.Int) error {
	if a.IsNil() {
		return ErrInvalidAmount.Wrap("amount is not set")
	}
	if a.IsNegative() {
		return ErrUnderflow.Wrapf("negative amount %s", a)
	}
	if a.BigInt().Cmp(maxUint256) > 0 {
		return ErrOverflow.Wrapf("amount %s exceeds 256 bits", a)
	}
	return nil
}

// FitsUint128 reports whether a is a valid amount below 2^128.
func FitsUint128(a math.Int) bool {
	return Validate(a) == nil && a.BigInt().Cmp(maxUint128) <= 0
}

func bounded(r *big.Int) (math.Int, error) {
	if r.Sign() < 0 {
		return math.Int{}, ErrUnderflow.Wrapf("result %s is negative", r)
	}
	if r.Cmp(maxUint256) > 0 {
		return math.Int{}, ErrOverflow.Wrap("result exceeds 256 bits")
	}
	return math.NewIntFromBigInt(r), nil
}

func operands(xs ...math.Int) error {
	for _, x := range xs {
		if err := Validate(x); err != nil {
			return err
		}
	}
	return nil
}

// Add returns a+b.
func Add(a, b math.Int) (math.Int, error) {
	if err := operands(a, b); err != nil {
		return math.Int{}, err
	}
	return bounded(new(big.Int).Add(a.BigInt(), b.BigInt()))
}

// Sub returns a-b, failing with ErrUnderflow when b > a.
func Sub(a, b math.Int) (math.Int, error) {
	if err := operands(a, b); err != nil {
		return math.Int{}, err
	}
	if a.LT(b) {
		return math.Int{}, ErrUnderflow.Wrapf("cannot subtract %s from %s", b, a)
	}
	return math.NewIntFromBigInt(new(big.Int).Sub(a.BigInt(), b.BigInt())), nil
}

// SaturatingSub returns a-b, or zero when b > a.
func SaturatingSub(a, b math.Int) math.Int {
	if a.LTE(b) {
		return math.ZeroInt()
	}
	return a.Sub(b)
}

// Mul returns a*b.
func Mul(a, b math.Int) (math.Int, error) {
	if err := operands(a, b); err != nil {
		return math.Int{}, err
	}
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	return bounded(new(big.Int).Mul(a.BigInt(), b.BigInt()))
}

// Quo returns floor(a/b).
func Quo(a, b math.Int) (math.Int, error) {
	if err := operands(a, b); err != nil {
		return math.Int{}, err
	}
	if b.IsZero() {
		return math.Int{}, ErrDivisionByZero
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(a.BigInt(), b.BigInt())), nil
}

// MulDiv returns floor(a*b/c). The intermediate product must itself fit in
// 256 bits.
func MulDiv(a, b, c math.Int) (math.Int, error) {
	p, err := Mul(a, b)
	if err != nil {
		return math.Int{}, err
	}
	return Quo(p, c)
}

// Sqrt returns floor(sqrt(a)).
func Sqrt(a math.Int) (math.Int, error) {
	if err := Validate(a); err != nil {
		return math.Int{}, err
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(a.BigInt())), nil
}

// Min returns the smaller of a and b.
func Min(a, b math.Int) math.Int {
	return math.MinInt(a, b)
}

// FromUint64 converts v to a math.Int.
func FromUint64(v uint64) math.Int {
	return math.NewIntFromUint64(v)
}
