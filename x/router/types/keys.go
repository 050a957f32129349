package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "router"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	ConfigKey              = []byte{0x01} // router configuration
	LockKey                = []byte{0x02} // operation guard
	PausedKey              = []byte{0x03} // admin circuit breaker
	PendingRefundKeyPrefix = []byte{0x04} // pending refunds by user
	LiquidityJoinKeyPrefix = []byte{0x05} // liquidity join history by user
)

// GetPendingRefundKey returns the store key of a user's pending refunds.
func GetPendingRefundKey(user sdk.AccAddress) []byte {
	return append(append([]byte{}, PendingRefundKeyPrefix...), address.MustLengthPrefix(user)...)
}

// GetLiquidityJoinKey returns the store key of a user's liquidity joins.
func GetLiquidityJoinKey(user sdk.AccAddress) []byte {
	return append(append([]byte{}, LiquidityJoinKeyPrefix...), address.MustLengthPrefix(user)...)
}
