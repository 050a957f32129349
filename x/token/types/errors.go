package types

import (
	"cosmossdk.io/errors"
)

// x/token module sentinel errors
var (
	ErrUnknownToken          = errors.Register(ModuleName, 2, "unknown token")
	ErrTokenExists           = errors.Register(ModuleName, 3, "token already exists")
	ErrInsufficientBalance   = errors.Register(ModuleName, 4, "insufficient balance")
	ErrInsufficientAllowance = errors.Register(ModuleName, 5, "insufficient allowance")
	ErrInvalidAmount         = errors.Register(ModuleName, 6, "invalid amount")
	ErrUnauthorized          = errors.Register(ModuleName, 7, "unauthorized")
	ErrInvalidAddress        = errors.Register(ModuleName, 8, "invalid address")
	ErrNotNativeWrapper      = errors.Register(ModuleName, 9, "token does not wrap the native coin")
	ErrInvalidMetadata       = errors.Register(ModuleName, 10, "invalid token metadata")
	ErrNativeTransfer        = errors.Register(ModuleName, 11, "native coin transfer failed")
)
