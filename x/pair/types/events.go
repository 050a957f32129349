package types

// Event types for the pair module
const (
	EventTypePairInitialized = "pair_initialized"
	EventTypeMint            = "pair_mint"
	EventTypeBurn            = "pair_burn"
	EventTypeSwap            = "pair_swap"
	EventTypeSync            = "pair_sync"
	EventTypeSkim            = "pair_skim"
	EventTypeFeeMint         = "pair_protocol_fee"
	EventTypeAdminSet        = "pair_admin_set"
	EventTypeRouterSet       = "pair_router_set"
	EventTypeLPTransfer      = "lp_transfer"
	EventTypeLPApproval      = "lp_approval"
)

// Event attribute keys
const (
	AttributeKeyPair       = "pair"
	AttributeKeySender     = "sender"
	AttributeKeyTo         = "to"
	AttributeKeyFrom       = "from"
	AttributeKeySpender    = "spender"
	AttributeKeyAmount     = "amount"
	AttributeKeyAmount0    = "amount0"
	AttributeKeyAmount1    = "amount1"
	AttributeKeyAmount0In  = "amount0_in"
	AttributeKeyAmount1In  = "amount1_in"
	AttributeKeyAmount0Out = "amount0_out"
	AttributeKeyAmount1Out = "amount1_out"
	AttributeKeyLiquidity  = "liquidity"
	AttributeKeyReserve0   = "reserve0"
	AttributeKeyReserve1   = "reserve1"
	AttributeKeyAddress    = "address"
)
