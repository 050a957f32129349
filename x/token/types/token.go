package types

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MaxSymbolLength bounds token symbols so derived LP names stay printable.
const MaxSymbolLength = 32

// Token is the metadata of a fungible asset held by the ledger.
type Token struct {
	Address     sdk.AccAddress `json:"address"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Decimals    uint32         `json:"decimals"`
	Admin       sdk.AccAddress `json:"admin"`
	TotalSupply math.Int       `json:"total_supply"`
	// NativeDenom is set when the token is a 1:1 wrapper of a bank denom.
	NativeDenom string `json:"native_denom,omitempty"`
}

// IsNativeWrapper reports whether the token wraps the native coin.
func (t Token) IsNativeWrapper() bool {
	return t.NativeDenom != ""
}

// Validate performs stateless checks on the token metadata.
func (t Token) Validate() error {
	if len(t.Address) == 0 {
		return ErrInvalidAddress.Wrap("token address is empty")
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidMetadata.Wrap("name is empty")
	}
	if t.Symbol == "" || len(t.Symbol) > MaxSymbolLength {
		return ErrInvalidMetadata.Wrapf("symbol %q must be 1-%d characters", t.Symbol, MaxSymbolLength)
	}
	if t.Decimals > 36 {
		return ErrInvalidMetadata.Wrapf("decimals %d out of range", t.Decimals)
	}
	if t.TotalSupply.IsNil() || t.TotalSupply.IsNegative() {
		return ErrInvalidAmount.Wrap("total supply must be non-negative")
	}
	if t.NativeDenom != "" {
		if err := sdk.ValidateDenom(t.NativeDenom); err != nil {
			return ErrInvalidMetadata.Wrapf("native denom: %v", err)
		}
	}
	return nil
}

func (t Token) String() string {
	return fmt.Sprintf("%s (%s) at %s", t.Name, t.Symbol, t.Address)
}
