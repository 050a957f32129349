// Package types holds address helpers shared by the asset, pair, registry and
// router modules.
package types

import (
	"bytes"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AddressLength is the length of every account, token and pair address.
const AddressLength = 20

var zeroAddress = make([]byte, AddressLength)

// ZeroAddress returns the all-zero address. Permanently locked liquidity is
// minted to it and it stands for "no pair" in lookups.
func ZeroAddress() sdk.AccAddress {
	return sdk.AccAddress(bytes.Clone(zeroAddress))
}

// IsZeroAddress reports whether addr is empty or all zeros.
func IsZeroAddress(addr sdk.AccAddress) bool {
	return len(addr) == 0 || bytes.Equal(addr, zeroAddress)
}

// CanonicalOrder returns a and b with the larger address first. Pair identity
// always uses this order: token0 is the greater of the two.
func CanonicalOrder(a, b sdk.AccAddress) (token0, token1 sdk.AccAddress) {
	if bytes.Compare(a, b) > 0 {
		return a, b
	}
	return b, a
}
