package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedtypes "github.com/paw-chain/amm/x/shared/types"
	"github.com/paw-chain/amm/x/token/types"
)

// CreateToken registers a new token with zero supply. The token address is
// derived from its symbol, so symbols are unique across the ledger. A non-empty
// nativeDenom makes the token a 1:1 wrapper of that bank denom.
func (k Keeper) CreateToken(ctx context.Context, admin sdk.AccAddress, name, symbol string, decimals uint32, nativeDenom string) (types.Token, error) {
	if sharedtypes.IsZeroAddress(admin) {
		return types.Token{}, types.ErrInvalidAddress.Wrap("token admin cannot be the zero address")
	}
	store := k.getStore(ctx)
	if store.Has(types.GetTokenBySymbolKey(symbol)) {
		return types.Token{}, types.ErrTokenExists.Wrapf("symbol %s", symbol)
	}

	token := types.Token{
		Address:     types.TokenAddress(symbol),
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		Admin:       admin,
		TotalSupply: math.ZeroInt(),
		NativeDenom: nativeDenom,
	}
	if err := token.Validate(); err != nil {
		return types.Token{}, err
	}
	if err := k.SetToken(ctx, token); err != nil {
		return types.Token{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTokenCreated,
			sdk.NewAttribute(types.AttributeKeyToken, token.Address.String()),
			sdk.NewAttribute(types.AttributeKeySymbol, symbol),
			sdk.NewAttribute("decimals", strconv.FormatUint(uint64(decimals), 10)),
			sdk.NewAttribute(types.AttributeKeyNativeDenom, nativeDenom),
		),
	)
	k.Logger(ctx).Info("token created", "symbol", symbol, "address", token.Address.String())

	return token, nil
}

// SetToken stores token metadata and its symbol index.
func (k Keeper) SetToken(ctx context.Context, token types.Token) error {
	bz, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("SetToken: marshal: %w", err)
	}
	store := k.getStore(ctx)
	store.Set(types.GetTokenKey(token.Address), bz)
	store.Set(types.GetTokenBySymbolKey(token.Symbol), token.Address)
	return nil
}

// GetToken returns the metadata of a registered token.
func (k Keeper) GetToken(ctx context.Context, token sdk.AccAddress) (types.Token, error) {
	bz := k.getStore(ctx).Get(types.GetTokenKey(token))
	if bz == nil {
		return types.Token{}, types.ErrUnknownToken.Wrapf("token %s", token)
	}
	var t types.Token
	if err := json.Unmarshal(bz, &t); err != nil {
		return types.Token{}, fmt.Errorf("GetToken: unmarshal: %w", err)
	}
	return t, nil
}

// GetTokenBySymbol resolves a symbol to its token.
func (k Keeper) GetTokenBySymbol(ctx context.Context, symbol string) (types.Token, error) {
	addr := k.getStore(ctx).Get(types.GetTokenBySymbolKey(symbol))
	if addr == nil {
		return types.Token{}, types.ErrUnknownToken.Wrapf("symbol %s", symbol)
	}
	return k.GetToken(ctx, addr)
}

// GetAllTokens returns every registered token in address order.
func (k Keeper) GetAllTokens(ctx context.Context) ([]types.Token, error) {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.TokenKeyPrefix)
	defer iter.Close()

	var tokens []types.Token
	for ; iter.Valid(); iter.Next() {
		var t types.Token
		if err := json.Unmarshal(iter.Value(), &t); err != nil {
			return nil, fmt.Errorf("GetAllTokens: unmarshal: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// TotalSupply returns the outstanding supply of token.
func (k Keeper) TotalSupply(ctx context.Context, token sdk.AccAddress) (math.Int, error) {
	t, err := k.GetToken(ctx, token)
	if err != nil {
		return math.Int{}, err
	}
	return t.TotalSupply, nil
}
