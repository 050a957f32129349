package types

import (
	"fmt"

	sharedtypes "github.com/paw-chain/amm/x/shared/types"
)

// GenesisState is the registry module's genesis state.
type GenesisState struct {
	Config        Config         `json:"config"`
	Pairs         []PairRecord   `json:"pairs"`
	BridgedAssets []BridgedAsset `json:"bridged_assets"`
}

// DefaultGenesis returns an empty registry with no governance addresses.
func DefaultGenesis() *GenesisState {
	return &GenesisState{}
}

// Validate checks the pair map for canonical ordering and duplicates.
func (gs GenesisState) Validate() error {
	seen := make(map[string]bool, len(gs.Pairs))
	for _, p := range gs.Pairs {
		t0, t1 := sharedtypes.CanonicalOrder(p.Token0, p.Token1)
		if !t0.Equals(p.Token0) || !t1.Equals(p.Token1) {
			return fmt.Errorf("pair %s is not canonically ordered", p.Pair)
		}
		if p.Token0.Equals(p.Token1) || sharedtypes.IsZeroAddress(p.Token1) {
			return fmt.Errorf("pair %s has invalid tokens", p.Pair)
		}
		k := string(GetPairKey(p.Token0, p.Token1))
		if seen[k] {
			return fmt.Errorf("duplicate pair for %s/%s", p.Token0, p.Token1)
		}
		seen[k] = true
	}
	assets := make(map[string]bool, len(gs.BridgedAssets))
	for _, a := range gs.BridgedAssets {
		if assets[a.Token.String()] {
			return fmt.Errorf("duplicate bridged asset %s", a.Token)
		}
		assets[a.Token.String()] = true
	}
	return nil
}
