package api

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	lru "github.com/hashicorp/golang-lru/v2"

	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// TokenSource resolves token metadata.
type TokenSource interface {
	GetToken(ctx context.Context, token sdk.AccAddress) (tokentypes.Token, error)
}

// TokenCache memoises token metadata. Name, symbol and decimals never change
// after creation, so entries are not invalidated.
type TokenCache struct {
	cache *lru.Cache[string, TokenInfo]
}

// NewTokenCache creates a cache of up to size tokens.
func NewTokenCache(size int) (*TokenCache, error) {
	if size <= 0 {
		size = 1024
	}
	cache, err := lru.New[string, TokenInfo](size)
	if err != nil {
		return nil, err
	}
	return &TokenCache{cache: cache}, nil
}

// Get returns the metadata of token, loading it from src on a miss.
func (t *TokenCache) Get(ctx context.Context, src TokenSource, token sdk.AccAddress) (TokenInfo, error) {
	key := token.String()
	if info, ok := t.cache.Get(key); ok {
		return info, nil
	}
	tok, err := src.GetToken(ctx, token)
	if err != nil {
		return TokenInfo{}, err
	}
	info := TokenInfo{
		Address:  key,
		Name:     tok.Name,
		Symbol:   tok.Symbol,
		Decimals: tok.Decimals,
		Native:   tok.NativeDenom != "",
	}
	t.cache.Add(key, info)
	return info, nil
}
