package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/router/types"
)

// GetPendingRefunds returns the refunds recorded for user, nil when none.
func (k Keeper) GetPendingRefunds(ctx context.Context, user sdk.AccAddress) ([]types.PendingRefund, error) {
	bz := k.getStore(ctx).Get(types.GetPendingRefundKey(user))
	if bz == nil {
		return nil, nil
	}
	var refunds []types.PendingRefund
	if err := json.Unmarshal(bz, &refunds); err != nil {
		return nil, fmt.Errorf("GetPendingRefunds: unmarshal: %w", err)
	}
	return refunds, nil
}

func (k Keeper) setPendingRefunds(ctx context.Context, user sdk.AccAddress, refunds []types.PendingRefund) error {
	bz, err := json.Marshal(refunds)
	if err != nil {
		return fmt.Errorf("setPendingRefunds: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.GetPendingRefundKey(user), bz)
	return nil
}

func (k Keeper) clearPendingRefunds(ctx context.Context, user sdk.AccAddress) {
	k.getStore(ctx).Delete(types.GetPendingRefundKey(user))
}

// requireNoPending rejects a new operation for a user whose earlier
// operation still has refunds outstanding.
func (k Keeper) requireNoPending(ctx context.Context, user sdk.AccAddress) error {
	if k.getStore(ctx).Has(types.GetPendingRefundKey(user)) {
		return types.ErrPendingRefundOutstanding.Wrapf("user %s", user)
	}
	return nil
}

// markRefunded settles the first unsettled entry of asset.
func (k Keeper) markRefunded(ctx context.Context, user, asset sdk.AccAddress) error {
	refunds, err := k.GetPendingRefunds(ctx, user)
	if err != nil {
		return err
	}
	for i := range refunds {
		if !refunds[i].Refunded && refunds[i].Asset.Equals(asset) {
			refunds[i].Refunded = true
			break
		}
	}
	return k.setPendingRefunds(ctx, user, refunds)
}

// leavePending ends a partially failed operation: the user's pending refunds
// stay recorded for RecoverPendingLiquidity and cause is returned.
func (k Keeper) leavePending(ctx sdk.Context, user sdk.AccAddress, op string, cause error) error {
	refunds, err := k.GetPendingRefunds(ctx, user)
	if err != nil {
		return err
	}
	for _, r := range refunds {
		if r.Refunded {
			continue
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePendingRefund,
				sdk.NewAttribute(types.AttributeKeyOperation, op),
				sdk.NewAttribute(types.AttributeKeyUser, user.String()),
				sdk.NewAttribute(types.AttributeKeyAsset, r.Asset.String()),
				sdk.NewAttribute(types.AttributeKeyAmount, r.Amount.String()),
			),
		)
	}
	k.metrics.PendingRefundsOutstanding.Inc()
	k.Logger(ctx).Error("operation partially failed, pending refund left behind",
		"operation", op, "user", user.String(), "error", cause)
	return cause
}

// RecoverPendingLiquidity retries every unsettled refund of user from the
// router's holdings. Entries that succeed are marked refunded; the record is
// removed once all of them are. Admin only.
func (k Keeper) RecoverPendingLiquidity(ctx context.Context, caller, user sdk.AccAddress) error {
	if err := k.requireAdmin(ctx, caller); err != nil {
		return err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return k.guarded(sdkCtx, types.OpRecoverPending, false, func() error {
		refunds, err := k.GetPendingRefunds(sdkCtx, user)
		if err != nil {
			return err
		}
		if len(refunds) == 0 {
			return types.ErrNoPendingFunds.Wrapf("user %s", user)
		}

		allRefunded := true
		for i := range refunds {
			r := refunds[i]
			if r.Refunded {
				continue
			}
			err := k.step(sdkCtx, func(c sdk.Context) error {
				if r.Amount.IsZero() {
					return nil
				}
				return k.assetLedger.Transfer(c, r.Asset, k.address, user, r.Amount)
			})
			if err != nil {
				allRefunded = false
				k.Logger(ctx).Error("pending refund retry failed",
					"user", user.String(), "asset", r.Asset.String(), "amount", r.Amount.String(), "error", err)
				continue
			}
			refunds[i].Refunded = true
			sdkCtx.EventManager().EmitEvent(
				sdk.NewEvent(
					types.EventTypeRecoverPending,
					sdk.NewAttribute(types.AttributeKeyUser, user.String()),
					sdk.NewAttribute(types.AttributeKeyAsset, r.Asset.String()),
					sdk.NewAttribute(types.AttributeKeyAmount, r.Amount.String()),
				),
			)
		}

		if allRefunded {
			k.clearPendingRefunds(sdkCtx, user)
			k.metrics.PendingRefundsOutstanding.Dec()
			k.Logger(ctx).Info("pending refunds recovered", "user", user.String())
			return nil
		}
		return k.setPendingRefunds(sdkCtx, user, refunds)
	})
}

// owedPending sums the unsettled refunds of asset across all users.
func (k Keeper) owedPending(ctx context.Context, asset sdk.AccAddress) (math.Int, error) {
	all, err := k.GetAllPendingRefunds(ctx)
	if err != nil {
		return math.Int{}, err
	}
	owed := math.ZeroInt()
	for _, u := range all {
		for _, r := range u.Refunds {
			if !r.Refunded && r.Asset.Equals(asset) {
				owed = owed.Add(r.Amount)
			}
		}
	}
	return owed, nil
}

// GetAllPendingRefunds lists every user with outstanding refunds.
func (k Keeper) GetAllPendingRefunds(ctx context.Context) ([]types.UserPendingRefunds, error) {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PendingRefundKeyPrefix)
	defer iter.Close()

	var out []types.UserPendingRefunds
	for ; iter.Valid(); iter.Next() {
		user, err := userFromKey(iter.Key(), types.PendingRefundKeyPrefix)
		if err != nil {
			return nil, err
		}
		var refunds []types.PendingRefund
		if err := json.Unmarshal(iter.Value(), &refunds); err != nil {
			return nil, fmt.Errorf("GetAllPendingRefunds: unmarshal: %w", err)
		}
		out = append(out, types.UserPendingRefunds{User: user, Refunds: refunds})
	}
	return out, nil
}

func userFromKey(key, prefix []byte) (sdk.AccAddress, error) {
	rest := key[len(prefix):]
	if len(rest) == 0 || len(rest) != 1+int(rest[0]) {
		return nil, fmt.Errorf("malformed user key %X", key)
	}
	return sdk.AccAddress(rest[1:]), nil
}
