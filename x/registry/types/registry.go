package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Config holds the registry's governance addresses.
type Config struct {
	Admin       sdk.AccAddress `json:"admin"`
	FeeTo       sdk.AccAddress `json:"fee_to"`
	FeeToSetter sdk.AccAddress `json:"fee_to_setter"`
	Router      sdk.AccAddress `json:"router"`
}

// PairRecord is one entry of the pair map.
type PairRecord struct {
	Token0 sdk.AccAddress `json:"token0"`
	Token1 sdk.AccAddress `json:"token1"`
	Pair   sdk.AccAddress `json:"pair"`
}

// BridgedAsset overrides the name and symbol used for LP naming of a token
// whose own metadata is not authoritative.
type BridgedAsset struct {
	Token    sdk.AccAddress `json:"token"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Decimals uint32         `json:"decimals"`
}

// LPName joins two token labels into an LP token label.
func LPName(a, b string) string {
	return fmt.Sprintf("%s_%s_LP", a, b)
}
