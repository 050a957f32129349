package types

// Event types for the registry module
const (
	EventTypePairCreated         = "pair_created"
	EventTypePairAdded           = "pair_added"
	EventTypePairRemoved         = "pair_removed"
	EventTypeFeeToSet            = "fee_to_set"
	EventTypeFeeToSetterSet      = "fee_to_setter_set"
	EventTypeAdminSet            = "registry_admin_set"
	EventTypeRouterSet           = "registry_router_set"
	EventTypeBridgedAssetAdded   = "bridged_asset_added"
	EventTypeBridgedAssetRemoved = "bridged_asset_removed"
)

// Event attribute keys
const (
	AttributeKeyToken0     = "token0"
	AttributeKeyToken1     = "token1"
	AttributeKeyPair       = "pair"
	AttributeKeyPairNumber = "pair_number"
	AttributeKeyAddress    = "address"
	AttributeKeyToken      = "token"
	AttributeKeySymbol     = "symbol"
)
