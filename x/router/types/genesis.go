package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// UserPendingRefunds are the outstanding refunds of one user.
type UserPendingRefunds struct {
	User    sdk.AccAddress  `json:"user"`
	Refunds []PendingRefund `json:"refunds"`
}

// UserLiquidityJoins is the join history of one user.
type UserLiquidityJoins struct {
	User  sdk.AccAddress  `json:"user"`
	Joins []LiquidityJoin `json:"joins"`
}

// GenesisState is the router module's genesis state. The operation lock is
// never exported; a chain always starts unlocked.
type GenesisState struct {
	Config         Config               `json:"config"`
	Paused         bool                 `json:"paused"`
	PendingRefunds []UserPendingRefunds `json:"pending_refunds"`
	LiquidityJoins []UserLiquidityJoins `json:"liquidity_joins"`
}

// DefaultGenesis returns an unpaused router with an empty config.
func DefaultGenesis() *GenesisState {
	return &GenesisState{}
}

// Validate checks the config and rejects duplicate or malformed user entries.
func (gs GenesisState) Validate() error {
	if err := gs.Config.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(gs.PendingRefunds))
	for _, p := range gs.PendingRefunds {
		if seen[p.User.String()] {
			return fmt.Errorf("duplicate pending refunds for %s", p.User)
		}
		seen[p.User.String()] = true
		if len(p.Refunds) == 0 {
			return fmt.Errorf("empty pending refunds for %s", p.User)
		}
		for _, r := range p.Refunds {
			if r.Amount.IsNil() || r.Amount.IsNegative() {
				return fmt.Errorf("invalid pending refund amount for %s", p.User)
			}
		}
	}
	seen = make(map[string]bool, len(gs.LiquidityJoins))
	for _, j := range gs.LiquidityJoins {
		if seen[j.User.String()] {
			return fmt.Errorf("duplicate liquidity joins for %s", j.User)
		}
		seen[j.User.String()] = true
	}
	return nil
}
