package types

import (
	"cosmossdk.io/errors"
)

// x/pair module sentinel errors
var (
	ErrUnauthorized                = errors.Register(ModuleName, 2, "unauthorized")
	ErrInvalidAdmin                = errors.Register(ModuleName, 3, "invalid admin")
	ErrInvalidRouter               = errors.Register(ModuleName, 4, "invalid router")
	ErrPairNotFound                = errors.Register(ModuleName, 5, "pair not found")
	ErrPairExists                  = errors.Register(ModuleName, 6, "pair already exists")
	ErrInsufficientLiquidityMinted = errors.Register(ModuleName, 7, "insufficient liquidity minted")
	ErrInsufficientLiquidityBurned = errors.Register(ModuleName, 8, "insufficient liquidity burned")
	ErrInsufficientOutputAmount    = errors.Register(ModuleName, 9, "insufficient output amount")
	ErrInsufficientInputAmount     = errors.Register(ModuleName, 10, "insufficient input amount")
	ErrInsufficientLiquidity       = errors.Register(ModuleName, 11, "insufficient liquidity")
	ErrInvalidTo                   = errors.Register(ModuleName, 12, "invalid recipient")
	ErrKConstant                   = errors.Register(ModuleName, 13, "constant product invariant violated")
	ErrOverflow                    = errors.Register(ModuleName, 14, "arithmetic overflow")
	ErrTransferFailed              = errors.Register(ModuleName, 15, "asset transfer failed")
	ErrLedgerUnavailable           = errors.Register(ModuleName, 16, "asset ledger unavailable")
	ErrRegistryUnavailable         = errors.Register(ModuleName, 17, "registry unavailable")
	ErrInvalidAmount               = errors.Register(ModuleName, 18, "invalid amount")
	ErrInsufficientBalance         = errors.Register(ModuleName, 19, "insufficient LP balance")
	ErrInsufficientAllowance       = errors.Register(ModuleName, 20, "insufficient LP allowance")
	ErrInvalidTokens               = errors.Register(ModuleName, 21, "invalid token pair")
	ErrInvariantBroken             = errors.Register(ModuleName, 22, "pair invariant broken")
	ErrInvalidAddress              = errors.Register(ModuleName, 23, "invalid address")
)
