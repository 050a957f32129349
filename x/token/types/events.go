package types

// Event types for the token module
const (
	EventTypeTokenCreated = "token_created"
	EventTypeTransfer     = "token_transfer"
	EventTypeApproval     = "token_approval"
	EventTypeMint         = "token_mint"
	EventTypeBurn         = "token_burn"
	EventTypeDeposit      = "token_deposit"
	EventTypeWithdraw     = "token_withdraw"
)

// Event attribute keys
const (
	AttributeKeyToken       = "token"
	AttributeKeySymbol      = "symbol"
	AttributeKeyFrom        = "from"
	AttributeKeyTo          = "to"
	AttributeKeyOwner       = "owner"
	AttributeKeySpender     = "spender"
	AttributeKeyAmount      = "amount"
	AttributeKeyNativeDenom = "native_denom"
)
