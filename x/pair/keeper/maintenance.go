package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/pair/types"
	sharedkeeper "github.com/paw-chain/amm/x/shared/keeper"
	"github.com/paw-chain/amm/x/shared/u256"
)

// Skim sends whatever the pair holds above its reserves to `to` and then
// updates the price accumulators against the remaining balances. Sides with
// no excess are left alone. Admin or router only.
func (k Keeper) Skim(ctx context.Context, caller, pair, to sdk.AccAddress) error {
	if err := validateRecipient(to); err != nil {
		return err
	}
	return k.atomic(ctx, func(c sdk.Context) error {
		p, err := k.GetPair(c, pair)
		if err != nil {
			return err
		}
		if err := sharedkeeper.ValidateAuthority(types.ErrUnauthorized, caller, p.Admin, p.Router); err != nil {
			return err
		}
		bal0, bal1, err := k.balances(c, p)
		if err != nil {
			return err
		}
		excess0, err := u256.Sub(bal0, p.Reserve0)
		if err != nil {
			return arith(err)
		}
		excess1, err := u256.Sub(bal1, p.Reserve1)
		if err != nil {
			return arith(err)
		}

		for _, side := range []struct {
			token  sdk.AccAddress
			amount math.Int
		}{{p.Token0, excess0}, {p.Token1, excess1}} {
			if side.amount.IsZero() {
				continue
			}
			if err := k.safeTransfer(c, p, side.token, to, side.amount); err != nil {
				return err
			}
		}

		bal0, bal1, err = k.balances(c, p)
		if err != nil {
			return err
		}
		if err := k.update(c, &p, bal0, bal1); err != nil {
			return err
		}
		if err := k.SetPair(c, p); err != nil {
			return err
		}

		c.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSkim,
				sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
				sdk.NewAttribute(types.AttributeKeyTo, to.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0, excess0.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1, excess1.String()),
			),
		)
		return nil
	})
}

// Sync sets the reserves to the pair's current balances. Admin or router only.
func (k Keeper) Sync(ctx context.Context, caller, pair sdk.AccAddress) error {
	return k.atomic(ctx, func(c sdk.Context) error {
		p, err := k.GetPair(c, pair)
		if err != nil {
			return err
		}
		if err := sharedkeeper.ValidateAuthority(types.ErrUnauthorized, caller, p.Admin, p.Router); err != nil {
			return err
		}
		bal0, bal1, err := k.balances(c, p)
		if err != nil {
			return err
		}
		if err := k.update(c, &p, bal0, bal1); err != nil {
			return err
		}
		if err := k.SetPair(c, p); err != nil {
			return err
		}

		c.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSync,
				sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
				sdk.NewAttribute(types.AttributeKeyReserve0, p.Reserve0.String()),
				sdk.NewAttribute(types.AttributeKeyReserve1, p.Reserve1.String()),
			),
		)
		return nil
	})
}
