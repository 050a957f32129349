package types

import (
	"cosmossdk.io/errors"
)

// Router module sentinel errors
var (
	ErrIdenticalAddresses       = errors.Register(ModuleName, 2, "identical addresses")
	ErrZeroAddress              = errors.Register(ModuleName, 3, "zero address")
	ErrInsufficientAAmount      = errors.Register(ModuleName, 4, "insufficient A amount")
	ErrInsufficientBAmount      = errors.Register(ModuleName, 5, "insufficient B amount")
	ErrInsufficientLiquidity    = errors.Register(ModuleName, 6, "insufficient liquidity")
	ErrInsufficientInputAmount  = errors.Register(ModuleName, 7, "insufficient input amount")
	ErrInsufficientOutputAmount = errors.Register(ModuleName, 8, "insufficient output amount")
	ErrExcessiveInputAmount     = errors.Register(ModuleName, 9, "excessive input amount")
	ErrInvalidPath              = errors.Register(ModuleName, 10, "invalid path")
	ErrOverflow                 = errors.Register(ModuleName, 11, "arithmetic overflow")
	ErrDivisionError            = errors.Register(ModuleName, 12, "division error")
	ErrExpired                  = errors.Register(ModuleName, 13, "deadline expired")
	ErrIncorrectState           = errors.Register(ModuleName, 14, "router is locked")
	ErrNotAdmin                 = errors.Register(ModuleName, 15, "caller is not the router admin")
	ErrPairNotFound             = errors.Register(ModuleName, 16, "pair not found")
	ErrPairAlreadyExists        = errors.Register(ModuleName, 17, "pair already exists")
	ErrCreatePairFailed         = errors.Register(ModuleName, 18, "create pair failed")
	ErrInsufficientAllowance    = errors.Register(ModuleName, 19, "insufficient allowance")
	ErrTransferFailed           = errors.Register(ModuleName, 20, "transfer failed")
	ErrTransferFromFailed       = errors.Register(ModuleName, 21, "transfer from failed")
	ErrTransferAFailed          = errors.Register(ModuleName, 22, "transfer of token A failed")
	ErrTransferBFailed          = errors.Register(ModuleName, 23, "transfer of token B failed")
	ErrTransferLiquidityFailed  = errors.Register(ModuleName, 24, "LP transfer failed")
	ErrMintLiquidityFailed      = errors.Register(ModuleName, 25, "mint liquidity failed")
	ErrBurnLiquidityFailed      = errors.Register(ModuleName, 26, "burn liquidity failed")
	ErrSwapFailed               = errors.Register(ModuleName, 27, "swap failed")
	ErrDepositNativeFailed      = errors.Register(ModuleName, 28, "native deposit failed")
	ErrWithdrawNativeFailed     = errors.Register(ModuleName, 29, "native withdrawal failed")
	ErrSkimPairLiquidityFailed  = errors.Register(ModuleName, 30, "skim pair liquidity failed")
	ErrNoPendingFunds           = errors.Register(ModuleName, 31, "no pending funds")
	ErrPendingRefundOutstanding = errors.Register(ModuleName, 32, "pending refund outstanding")
	ErrInsufficientTokenAmount  = errors.Register(ModuleName, 33, "insufficient token amount")
	ErrInsufficientNativeAmount = errors.Register(ModuleName, 34, "insufficient native amount")
	ErrInvalidAmount            = errors.Register(ModuleName, 35, "invalid amount")
	ErrInvalidConfig            = errors.Register(ModuleName, 36, "invalid router config")
	ErrInvalidAddress           = errors.Register(ModuleName, 37, "invalid address")
)
