package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/shared/u256"
	"github.com/paw-chain/amm/x/token/types"
)

func readAmount(bz []byte) (math.Int, error) {
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		return math.Int{}, err
	}
	return v, nil
}

func validAmount(amount math.Int) error {
	if err := u256.Validate(amount); err != nil {
		return types.ErrInvalidAmount.Wrap(err.Error())
	}
	return nil
}

// BalanceOf returns owner's balance of token.
func (k Keeper) BalanceOf(ctx context.Context, token, owner sdk.AccAddress) (math.Int, error) {
	if !k.getStore(ctx).Has(types.GetTokenKey(token)) {
		return math.Int{}, types.ErrUnknownToken.Wrapf("token %s", token)
	}
	return k.balance(ctx, token, owner)
}

func (k Keeper) balance(ctx context.Context, token, owner sdk.AccAddress) (math.Int, error) {
	v, err := readAmount(k.getStore(ctx).Get(types.GetBalanceKey(token, owner)))
	if err != nil {
		return math.Int{}, fmt.Errorf("balance: unmarshal: %w", err)
	}
	return v, nil
}

func (k Keeper) setBalance(ctx context.Context, token, owner sdk.AccAddress, amount math.Int) error {
	store := k.getStore(ctx)
	key := types.GetBalanceKey(token, owner)
	if amount.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := amount.Marshal()
	if err != nil {
		return fmt.Errorf("setBalance: marshal: %w", err)
	}
	store.Set(key, bz)
	return nil
}

// Allowance returns how much spender may still move out of owner's balance.
func (k Keeper) Allowance(ctx context.Context, token, owner, spender sdk.AccAddress) (math.Int, error) {
	if !k.getStore(ctx).Has(types.GetTokenKey(token)) {
		return math.Int{}, types.ErrUnknownToken.Wrapf("token %s", token)
	}
	v, err := readAmount(k.getStore(ctx).Get(types.GetAllowanceKey(token, owner, spender)))
	if err != nil {
		return math.Int{}, fmt.Errorf("Allowance: unmarshal: %w", err)
	}
	return v, nil
}

func (k Keeper) setAllowance(ctx context.Context, token, owner, spender sdk.AccAddress, amount math.Int) error {
	store := k.getStore(ctx)
	key := types.GetAllowanceKey(token, owner, spender)
	if amount.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := amount.Marshal()
	if err != nil {
		return fmt.Errorf("setAllowance: marshal: %w", err)
	}
	store.Set(key, bz)
	return nil
}

// Approve sets the amount spender may transfer out of owner's balance,
// replacing any previous approval.
func (k Keeper) Approve(ctx context.Context, token, owner, spender sdk.AccAddress, amount math.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if !k.getStore(ctx).Has(types.GetTokenKey(token)) {
		return types.ErrUnknownToken.Wrapf("token %s", token)
	}
	if err := k.setAllowance(ctx, token, owner, spender, amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeApproval,
			sdk.NewAttribute(types.AttributeKeyToken, token.String()),
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Transfer moves amount of token from one holder to another.
func (k Keeper) Transfer(ctx context.Context, token, from, to sdk.AccAddress, amount math.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if !k.getStore(ctx).Has(types.GetTokenKey(token)) {
		return types.ErrUnknownToken.Wrapf("token %s", token)
	}
	if len(to) == 0 {
		return types.ErrInvalidAddress.Wrap("recipient is empty")
	}
	if err := k.move(ctx, token, from, to, amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyToken, token.String()),
			sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
			sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// TransferFrom moves amount out of from's balance on behalf of spender,
// consuming the approved allowance.
func (k Keeper) TransferFrom(ctx context.Context, token, spender, from, to sdk.AccAddress, amount math.Int) error {
	allowance, err := k.Allowance(ctx, token, from, spender)
	if err != nil {
		return err
	}
	if err := validAmount(amount); err != nil {
		return err
	}
	if allowance.LT(amount) {
		return types.ErrInsufficientAllowance.Wrapf("allowance %s, need %s", allowance, amount)
	}
	if err := k.Transfer(ctx, token, from, to, amount); err != nil {
		return err
	}
	return k.setAllowance(ctx, token, from, spender, allowance.Sub(amount))
}

func (k Keeper) move(ctx context.Context, token, from, to sdk.AccAddress, amount math.Int) error {
	fromBal, err := k.balance(ctx, token, from)
	if err != nil {
		return err
	}
	if fromBal.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s holds %s, need %s", from, fromBal, amount)
	}
	if err := k.setBalance(ctx, token, from, fromBal.Sub(amount)); err != nil {
		return err
	}
	toBal, err := k.balance(ctx, token, to)
	if err != nil {
		return err
	}
	newTo, err := u256.Add(toBal, amount)
	if err != nil {
		return types.ErrInvalidAmount.Wrap(err.Error())
	}
	return k.setBalance(ctx, token, to, newTo)
}
