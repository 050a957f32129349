package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "token"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	TokenKeyPrefix     = []byte{0x01} // token metadata by address
	BalanceKeyPrefix   = []byte{0x02} // balance by token, owner
	AllowanceKeyPrefix = []byte{0x03} // allowance by token, owner, spender
	TokenBySymbolKey   = []byte{0x04} // token address by symbol
)

// TokenAddress derives the ledger address of the token registered under symbol.
func TokenAddress(symbol string) sdk.AccAddress {
	return address.Module(ModuleName, []byte(symbol))[:20]
}

// GetTokenKey returns the store key for token metadata.
func GetTokenKey(token sdk.AccAddress) []byte {
	return append(append([]byte{}, TokenKeyPrefix...), address.MustLengthPrefix(token)...)
}

// GetTokenBySymbolKey returns the store key for the symbol index.
func GetTokenBySymbolKey(symbol string) []byte {
	return append(append([]byte{}, TokenBySymbolKey...), []byte(symbol)...)
}

// GetBalancePrefix returns the prefix under which all balances of token live.
func GetBalancePrefix(token sdk.AccAddress) []byte {
	return append(append([]byte{}, BalanceKeyPrefix...), address.MustLengthPrefix(token)...)
}

// GetBalanceKey returns the store key for owner's balance of token.
func GetBalanceKey(token, owner sdk.AccAddress) []byte {
	return append(GetBalancePrefix(token), address.MustLengthPrefix(owner)...)
}

// GetAllowanceKey returns the store key for the amount spender may move out of owner's balance.
func GetAllowanceKey(token, owner, spender sdk.AccAddress) []byte {
	key := append(append([]byte{}, AllowanceKeyPrefix...), address.MustLengthPrefix(token)...)
	key = append(key, address.MustLengthPrefix(owner)...)
	return append(key, address.MustLengthPrefix(spender)...)
}
