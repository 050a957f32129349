package types

// Router event types
const (
	EventTypeCreatePair            = "router_create_pair"
	EventTypeAddLiquidity          = "router_add_liquidity"
	EventTypeAddLiquidityNative    = "router_add_liquidity_native"
	EventTypeRemoveLiquidity       = "router_remove_liquidity"
	EventTypeRemoveLiquidityNative = "router_remove_liquidity_native"
	EventTypeSwap                  = "router_swap"
	EventTypePendingRefund         = "router_pending_refund"
	EventTypeRecoverPending        = "router_recover_pending"
	EventTypeRouterLocked          = "router_locked"
	EventTypeRouterUnlocked        = "router_unlocked"
	EventTypeConfigUpdated         = "router_config_updated"
	EventTypeRefund                = "router_refund"
	EventTypeSkimPair              = "router_skim_pair"
)

// Router event attribute keys
const (
	AttributeKeyOperation = "operation"
	AttributeKeySender    = "sender"
	AttributeKeyUser      = "user"
	AttributeKeyTo        = "to"
	AttributeKeyPair      = "pair"
	AttributeKeyTokenA    = "token_a"
	AttributeKeyTokenB    = "token_b"
	AttributeKeyAmountA   = "amount_a"
	AttributeKeyAmountB   = "amount_b"
	AttributeKeyLiquidity = "liquidity"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyPath      = "path"
	AttributeKeyAsset     = "asset"
	AttributeKeyAmount    = "amount"
	AttributeKeyField     = "field"
	AttributeKeyValue     = "value"
	AttributeKeyRemaining = "remaining"
)

// Operation names used in events and metrics.
const (
	OpCreatePair               = "create_pair"
	OpAddLiquidity             = "add_liquidity"
	OpAddLiquidityNative       = "add_liquidity_native"
	OpRemoveLiquidity          = "remove_liquidity"
	OpRemoveLiquidityNative    = "remove_liquidity_native"
	OpSwapExactTokensForTokens = "swap_exact_tokens_for_tokens"
	OpSwapTokensForExactTokens = "swap_tokens_for_exact_tokens"
	OpSwapExactNativeForTokens = "swap_exact_native_for_tokens"
	OpSwapTokensForExactNative = "swap_tokens_for_exact_native"
	OpSwapExactTokensForNative = "swap_exact_tokens_for_native"
	OpSwapNativeForExactTokens = "swap_native_for_exact_tokens"
	OpRecoverPending           = "recover_pending_liquidity"
	OpSkimPairLiquidity        = "skim_pair_liquidity"
	OpRefundToken              = "refund_token"
	OpRefundNative             = "refund_native"
)
