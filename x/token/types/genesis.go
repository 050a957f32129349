package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Balance is a single owner's holding of a token.
type Balance struct {
	Token  sdk.AccAddress `json:"token"`
	Owner  sdk.AccAddress `json:"owner"`
	Amount math.Int       `json:"amount"`
}

// Allowance is an approved spending limit.
type Allowance struct {
	Token   sdk.AccAddress `json:"token"`
	Owner   sdk.AccAddress `json:"owner"`
	Spender sdk.AccAddress `json:"spender"`
	Amount  math.Int       `json:"amount"`
}

// GenesisState is the token module's genesis state.
type GenesisState struct {
	Tokens     []Token     `json:"tokens"`
	Balances   []Balance   `json:"balances"`
	Allowances []Allowance `json:"allowances"`
}

// DefaultGenesis returns an empty ledger.
func DefaultGenesis() *GenesisState {
	return &GenesisState{}
}

// Validate checks that every balance refers to a declared token and that
// declared supplies equal the sum of balances.
func (gs GenesisState) Validate() error {
	supply := make(map[string]math.Int, len(gs.Tokens))
	symbols := make(map[string]bool, len(gs.Tokens))
	for _, t := range gs.Tokens {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := supply[t.Address.String()]; dup {
			return fmt.Errorf("duplicate token %s", t.Address)
		}
		if symbols[t.Symbol] {
			return fmt.Errorf("duplicate token symbol %s", t.Symbol)
		}
		symbols[t.Symbol] = true
		supply[t.Address.String()] = math.ZeroInt()
	}
	for _, b := range gs.Balances {
		sum, ok := supply[b.Token.String()]
		if !ok {
			return fmt.Errorf("balance for undeclared token %s", b.Token)
		}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return fmt.Errorf("invalid balance for %s", b.Owner)
		}
		supply[b.Token.String()] = sum.Add(b.Amount)
	}
	for _, t := range gs.Tokens {
		if !supply[t.Address.String()].Equal(t.TotalSupply) {
			return fmt.Errorf("token %s: total supply %s does not match balances %s", t.Symbol, t.TotalSupply, supply[t.Address.String()])
		}
	}
	for _, a := range gs.Allowances {
		if _, ok := supply[a.Token.String()]; !ok {
			return fmt.Errorf("allowance for undeclared token %s", a.Token)
		}
		if a.Amount.IsNil() || a.Amount.IsNegative() {
			return fmt.Errorf("invalid allowance for %s", a.Spender)
		}
	}
	return nil
}
