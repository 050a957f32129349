package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/pair/types"
	"github.com/paw-chain/amm/x/shared/u256"
)

func (k Keeper) readLP(ctx context.Context, key []byte) (math.Int, error) {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		return math.Int{}, fmt.Errorf("readLP: unmarshal: %w", err)
	}
	return v, nil
}

func (k Keeper) writeLP(ctx context.Context, key []byte, v math.Int) error {
	if v.IsZero() {
		k.getStore(ctx).Delete(key)
		return nil
	}
	bz, err := v.Marshal()
	if err != nil {
		return fmt.Errorf("writeLP: marshal: %w", err)
	}
	k.getStore(ctx).Set(key, bz)
	return nil
}

func (k Keeper) lpBalance(ctx context.Context, pair, owner sdk.AccAddress) (math.Int, error) {
	return k.readLP(ctx, types.GetLPBalanceKey(pair, owner))
}

// mintLP credits `to` and grows the in-memory supply of p. The caller persists p.
func (k Keeper) mintLP(ctx context.Context, p *types.Pair, to sdk.AccAddress, amount math.Int) error {
	supply, err := u256.Add(p.TotalSupply, amount)
	if err != nil {
		return arith(err)
	}
	bal, err := k.lpBalance(ctx, p.Address, to)
	if err != nil {
		return err
	}
	newBal, err := u256.Add(bal, amount)
	if err != nil {
		return arith(err)
	}
	if err := k.writeLP(ctx, types.GetLPBalanceKey(p.Address, to), newBal); err != nil {
		return err
	}
	p.TotalSupply = supply
	return nil
}

// burnLP debits `from` and shrinks the in-memory supply of p. The caller persists p.
func (k Keeper) burnLP(ctx context.Context, p *types.Pair, from sdk.AccAddress, amount math.Int) error {
	bal, err := k.lpBalance(ctx, p.Address, from)
	if err != nil {
		return err
	}
	if bal.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s holds %s LP, need %s", from, bal, amount)
	}
	supply, err := u256.Sub(p.TotalSupply, amount)
	if err != nil {
		return arith(err)
	}
	if err := k.writeLP(ctx, types.GetLPBalanceKey(p.Address, from), bal.Sub(amount)); err != nil {
		return err
	}
	p.TotalSupply = supply
	return nil
}

// Metadata returns the LP token's name, symbol and decimals.
func (k Keeper) Metadata(ctx context.Context, pair sdk.AccAddress) (string, string, uint32, error) {
	p, err := k.GetPair(ctx, pair)
	if err != nil {
		return "", "", 0, err
	}
	return p.Name, p.Symbol, p.Decimals, nil
}

// TotalSupply returns the outstanding LP supply of pair.
func (k Keeper) TotalSupply(ctx context.Context, pair sdk.AccAddress) (math.Int, error) {
	p, err := k.GetPair(ctx, pair)
	if err != nil {
		return math.Int{}, err
	}
	return p.TotalSupply, nil
}

// BalanceOf returns owner's LP balance in pair.
func (k Keeper) BalanceOf(ctx context.Context, pair, owner sdk.AccAddress) (math.Int, error) {
	if !k.HasPair(ctx, pair) {
		return math.Int{}, types.ErrPairNotFound.Wrapf("pair %s", pair)
	}
	return k.lpBalance(ctx, pair, owner)
}

// Allowance returns how much LP spender may move on owner's behalf.
func (k Keeper) Allowance(ctx context.Context, pair, owner, spender sdk.AccAddress) (math.Int, error) {
	if !k.HasPair(ctx, pair) {
		return math.Int{}, types.ErrPairNotFound.Wrapf("pair %s", pair)
	}
	return k.readLP(ctx, types.GetLPAllowanceKey(pair, owner, spender))
}

// Approve sets spender's LP allowance over owner's balance.
func (k Keeper) Approve(ctx context.Context, pair, owner, spender sdk.AccAddress, amount math.Int) error {
	if err := u256.Validate(amount); err != nil {
		return types.ErrInvalidAmount.Wrap(err.Error())
	}
	if !k.HasPair(ctx, pair) {
		return types.ErrPairNotFound.Wrapf("pair %s", pair)
	}
	if err := k.writeLP(ctx, types.GetLPAllowanceKey(pair, owner, spender), amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLPApproval,
			sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
			sdk.NewAttribute(types.AttributeKeyFrom, owner.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Transfer moves LP tokens between holders.
func (k Keeper) Transfer(ctx context.Context, pair, from, to sdk.AccAddress, amount math.Int) error {
	if err := u256.Validate(amount); err != nil {
		return types.ErrInvalidAmount.Wrap(err.Error())
	}
	if !k.HasPair(ctx, pair) {
		return types.ErrPairNotFound.Wrapf("pair %s", pair)
	}
	fromBal, err := k.lpBalance(ctx, pair, from)
	if err != nil {
		return err
	}
	if fromBal.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s holds %s LP, need %s", from, fromBal, amount)
	}
	if err := k.writeLP(ctx, types.GetLPBalanceKey(pair, from), fromBal.Sub(amount)); err != nil {
		return err
	}
	toBal, err := k.lpBalance(ctx, pair, to)
	if err != nil {
		return err
	}
	newTo, err := u256.Add(toBal, amount)
	if err != nil {
		return arith(err)
	}
	if err := k.writeLP(ctx, types.GetLPBalanceKey(pair, to), newTo); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLPTransfer,
			sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
			sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
			sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// TransferFrom moves LP tokens on owner's behalf, consuming spender's allowance.
func (k Keeper) TransferFrom(ctx context.Context, pair, spender, from, to sdk.AccAddress, amount math.Int) error {
	allowance, err := k.Allowance(ctx, pair, from, spender)
	if err != nil {
		return err
	}
	if err := u256.Validate(amount); err != nil {
		return types.ErrInvalidAmount.Wrap(err.Error())
	}
	if allowance.LT(amount) {
		return types.ErrInsufficientAllowance.Wrapf("allowance %s, need %s", allowance, amount)
	}
	return k.atomic(ctx, func(c sdk.Context) error {
		if err := k.Transfer(c, pair, from, to, amount); err != nil {
			return err
		}
		return k.writeLP(c, types.GetLPAllowanceKey(pair, from, spender), allowance.Sub(amount))
	})
}
