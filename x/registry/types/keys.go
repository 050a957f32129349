package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "registry"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// LPDecimals is the decimals of every LP token created by the registry.
	LPDecimals = 12
)

// Store key prefixes
var (
	ConfigKey          = []byte{0x01} // registry configuration
	PairKeyPrefix      = []byte{0x02} // pair address by canonical (token0, token1)
	BridgedAssetPrefix = []byte{0x03} // bridged asset metadata by token
)

// GetPairKey returns the store key of a canonically ordered pair.
func GetPairKey(token0, token1 sdk.AccAddress) []byte {
	key := append(append([]byte{}, PairKeyPrefix...), address.MustLengthPrefix(token0)...)
	return append(key, address.MustLengthPrefix(token1)...)
}

// GetBridgedAssetKey returns the store key of a bridged asset's metadata.
func GetBridgedAssetKey(token sdk.AccAddress) []byte {
	return append(append([]byte{}, BridgedAssetPrefix...), address.MustLengthPrefix(token)...)
}

// ParsePairKey recovers the canonical tokens from a pair key.
func ParsePairKey(key []byte) (token0, token1 sdk.AccAddress, err error) {
	bz := key[len(PairKeyPrefix):]
	if len(bz) == 0 || len(bz) < 1+int(bz[0]) {
		return nil, nil, fmt.Errorf("ParsePairKey: truncated token0")
	}
	token0 = sdk.AccAddress(bz[1 : 1+int(bz[0])])
	bz = bz[1+int(bz[0]):]
	if len(bz) == 0 || len(bz) != 1+int(bz[0]) {
		return nil, nil, fmt.Errorf("ParsePairKey: malformed token1")
	}
	return token0, sdk.AccAddress(bz[1:]), nil
}
