package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/zeebo/blake3"
)

const (
	// ModuleName defines the module name
	ModuleName = "pair"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	PairKeyPrefix        = []byte{0x01} // pair state by pair address
	LPBalanceKeyPrefix   = []byte{0x02} // LP balance by pair, owner
	LPAllowanceKeyPrefix = []byte{0x03} // LP allowance by pair, owner, spender
)

// GetPairKey returns the store key of a pair's state.
func GetPairKey(pair sdk.AccAddress) []byte {
	return append(append([]byte{}, PairKeyPrefix...), address.MustLengthPrefix(pair)...)
}

// GetLPBalancePrefix returns the prefix of all LP balances of a pair.
func GetLPBalancePrefix(pair sdk.AccAddress) []byte {
	return append(append([]byte{}, LPBalanceKeyPrefix...), address.MustLengthPrefix(pair)...)
}

// GetLPBalanceKey returns the store key of owner's LP balance.
func GetLPBalanceKey(pair, owner sdk.AccAddress) []byte {
	return append(GetLPBalancePrefix(pair), address.MustLengthPrefix(owner)...)
}

// GetLPAllowancePrefix returns the prefix of all LP allowances of a pair.
func GetLPAllowancePrefix(pair sdk.AccAddress) []byte {
	return append(append([]byte{}, LPAllowanceKeyPrefix...), address.MustLengthPrefix(pair)...)
}

// GetLPAllowanceKey returns the store key of an LP allowance.
func GetLPAllowanceKey(pair, owner, spender sdk.AccAddress) []byte {
	key := append(GetLPAllowancePrefix(pair), address.MustLengthPrefix(owner)...)
	return append(key, address.MustLengthPrefix(spender)...)
}

// PairAddress derives the address of the pair a registry creates for two
// canonically ordered tokens: BLAKE3(module || registry || token0 || token1),
// truncated to 20 bytes.
func PairAddress(registry, token0, token1 sdk.AccAddress) sdk.AccAddress {
	h := blake3.New()
	h.Write([]byte(ModuleName))
	h.Write(address.MustLengthPrefix(registry))
	h.Write(address.MustLengthPrefix(token0))
	h.Write(address.MustLengthPrefix(token1))

	var addr [20]byte
	h.Digest().Read(addr[:])
	return sdk.AccAddress(addr[:])
}
