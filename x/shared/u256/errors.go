package u256

import "cosmossdk.io/errors"

// Codespace is the error codespace for checked arithmetic.
const Codespace = "u256"

var (
	ErrOverflow       = errors.Register(Codespace, 2, "arithmetic overflow")
	ErrUnderflow      = errors.Register(Codespace, 3, "arithmetic underflow")
	ErrDivisionByZero = errors.Register(Codespace, 4, "division by zero")
	ErrInvalidAmount  = errors.Register(Codespace, 5, "invalid amount")
)
