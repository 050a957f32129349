package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/shared/u256"
	"github.com/paw-chain/amm/x/token/types"
)

// Mint creates amount of token for to. Only the token admin may mint, and
// native wrappers can only grow through Deposit.
func (k Keeper) Mint(ctx context.Context, caller, token, to sdk.AccAddress, amount math.Int) error {
	t, err := k.authorizeSupplyChange(ctx, caller, token, amount)
	if err != nil {
		return err
	}
	if err := k.credit(ctx, &t, to, amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute(types.AttributeKeyToken, token.String()),
			sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Burn destroys amount of token held by from. Only the token admin may burn.
func (k Keeper) Burn(ctx context.Context, caller, token, from sdk.AccAddress, amount math.Int) error {
	t, err := k.authorizeSupplyChange(ctx, caller, token, amount)
	if err != nil {
		return err
	}
	if err := k.debit(ctx, &t, from, amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBurn,
			sdk.NewAttribute(types.AttributeKeyToken, token.String()),
			sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

func (k Keeper) authorizeSupplyChange(ctx context.Context, caller, token sdk.AccAddress, amount math.Int) (types.Token, error) {
	if err := validAmount(amount); err != nil {
		return types.Token{}, err
	}
	t, err := k.GetToken(ctx, token)
	if err != nil {
		return types.Token{}, err
	}
	if t.IsNativeWrapper() {
		return types.Token{}, types.ErrUnauthorized.Wrapf("%s supply is backed by escrowed %s", t.Symbol, t.NativeDenom)
	}
	if !caller.Equals(t.Admin) {
		return types.Token{}, types.ErrUnauthorized.Wrapf("%s is not the admin of %s", caller, t.Symbol)
	}
	return t, nil
}

// credit adds amount to owner and to the token's supply.
func (k Keeper) credit(ctx context.Context, t *types.Token, owner sdk.AccAddress, amount math.Int) error {
	supply, err := u256.Add(t.TotalSupply, amount)
	if err != nil {
		return types.ErrInvalidAmount.Wrap(err.Error())
	}
	bal, err := k.balance(ctx, t.Address, owner)
	if err != nil {
		return err
	}
	if err := k.setBalance(ctx, t.Address, owner, bal.Add(amount)); err != nil {
		return err
	}
	t.TotalSupply = supply
	return k.SetToken(ctx, *t)
}

// debit removes amount from owner and from the token's supply.
func (k Keeper) debit(ctx context.Context, t *types.Token, owner sdk.AccAddress, amount math.Int) error {
	bal, err := k.balance(ctx, t.Address, owner)
	if err != nil {
		return err
	}
	if bal.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s holds %s, need %s", owner, bal, amount)
	}
	if err := k.setBalance(ctx, t.Address, owner, bal.Sub(amount)); err != nil {
		return err
	}
	t.TotalSupply = t.TotalSupply.Sub(amount)
	return k.SetToken(ctx, *t)
}
