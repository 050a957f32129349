package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LPBalance is one holder's LP position.
type LPBalance struct {
	Pair   sdk.AccAddress `json:"pair"`
	Owner  sdk.AccAddress `json:"owner"`
	Amount math.Int       `json:"amount"`
}

// LPAllowance is an approved LP spending limit.
type LPAllowance struct {
	Pair    sdk.AccAddress `json:"pair"`
	Owner   sdk.AccAddress `json:"owner"`
	Spender sdk.AccAddress `json:"spender"`
	Amount  math.Int       `json:"amount"`
}

// GenesisState is the pair module's genesis state.
type GenesisState struct {
	Pairs        []Pair        `json:"pairs"`
	LPBalances   []LPBalance   `json:"lp_balances"`
	LPAllowances []LPAllowance `json:"lp_allowances"`
}

// DefaultGenesis returns a genesis with no pairs.
func DefaultGenesis() *GenesisState {
	return &GenesisState{}
}

// Validate checks each pair and that LP supplies match balances.
func (gs GenesisState) Validate() error {
	supply := make(map[string]math.Int, len(gs.Pairs))
	for _, p := range gs.Pairs {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := supply[p.Address.String()]; dup {
			return fmt.Errorf("duplicate pair %s", p.Address)
		}
		supply[p.Address.String()] = math.ZeroInt()
	}
	for _, b := range gs.LPBalances {
		sum, ok := supply[b.Pair.String()]
		if !ok {
			return fmt.Errorf("LP balance for undeclared pair %s", b.Pair)
		}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return fmt.Errorf("invalid LP balance for %s", b.Owner)
		}
		supply[b.Pair.String()] = sum.Add(b.Amount)
	}
	for _, p := range gs.Pairs {
		if !supply[p.Address.String()].Equal(p.TotalSupply) {
			return fmt.Errorf("pair %s: LP supply %s does not match balances %s", p.Address, p.TotalSupply, supply[p.Address.String()])
		}
	}
	for _, a := range gs.LPAllowances {
		if _, ok := supply[a.Pair.String()]; !ok {
			return fmt.Errorf("LP allowance for undeclared pair %s", a.Pair)
		}
	}
	return nil
}
