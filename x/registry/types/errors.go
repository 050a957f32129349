package types

import (
	"cosmossdk.io/errors"
)

// x/registry module sentinel errors
var (
	ErrUnauthorized          = errors.Register(ModuleName, 2, "unauthorized")
	ErrPairExists            = errors.Register(ModuleName, 3, "pair already exists")
	ErrInvalidTokens         = errors.Register(ModuleName, 4, "invalid token pair")
	ErrPairNotFound          = errors.Register(ModuleName, 5, "pair not found")
	ErrBridgedAssetExists    = errors.Register(ModuleName, 6, "bridged asset already exists")
	ErrInvalidAddress        = errors.Register(ModuleName, 7, "invalid address")
	ErrPairInstantiation     = errors.Register(ModuleName, 8, "pair instantiation failed")
	ErrPairKeeperUnavailable = errors.Register(ModuleName, 9, "pair keeper not wired")
)
