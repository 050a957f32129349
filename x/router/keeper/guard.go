package keeper

import (
	"context"
	"strconv"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/router/types"
)

// GetLock reports whether an operation is in flight.
func (k Keeper) GetLock(ctx context.Context) bool {
	bz := k.getStore(ctx).Get(types.LockKey)
	return len(bz) == 1 && bz[0] == 1
}

func (k Keeper) setLock(ctx context.Context, locked bool) {
	if locked {
		k.getStore(ctx).Set(types.LockKey, []byte{1})
		return
	}
	k.getStore(ctx).Delete(types.LockKey)
}

// IsPaused reports whether the admin circuit breaker is engaged.
func (k Keeper) IsPaused(ctx context.Context) bool {
	bz := k.getStore(ctx).Get(types.PausedKey)
	return len(bz) == 1 && bz[0] == 1
}

func (k Keeper) setPaused(ctx context.Context, paused bool) {
	if paused {
		k.getStore(ctx).Set(types.PausedKey, []byte{1})
		return
	}
	k.getStore(ctx).Delete(types.PausedKey)
}

// withLock runs fn as one router operation: it is rejected while the router
// is paused or another operation holds the lock, and the lock is released on
// every return path.
func (k Keeper) withLock(ctx sdk.Context, op string, fn func() error) error {
	return k.guarded(ctx, op, true, fn)
}

func (k Keeper) guarded(ctx sdk.Context, op string, respectPause bool, fn func() error) (err error) {
	start := time.Now()
	defer func() { k.metrics.observe(op, start, err) }()

	if respectPause && k.IsPaused(ctx) {
		return types.ErrIncorrectState.Wrapf("%s: router is paused", op)
	}
	if k.GetLock(ctx) {
		return types.ErrIncorrectState.Wrapf("%s: another operation is in flight", op)
	}
	k.setLock(ctx, true)
	defer k.setLock(ctx, false)

	return fn()
}

func checkDeadline(ctx sdk.Context, deadline time.Time) error {
	if deadline.Before(ctx.BlockTime()) {
		return types.ErrExpired.Wrapf("deadline %s before block time %s", deadline.UTC(), ctx.BlockTime().UTC())
	}
	return nil
}

// LockRouter engages the circuit breaker. Admin only.
func (k Keeper) LockRouter(ctx context.Context, caller sdk.AccAddress) error {
	return k.setCircuitBreaker(ctx, caller, true, types.EventTypeRouterLocked)
}

// UnlockRouter releases the circuit breaker. Admin only.
func (k Keeper) UnlockRouter(ctx context.Context, caller sdk.AccAddress) error {
	return k.setCircuitBreaker(ctx, caller, false, types.EventTypeRouterUnlocked)
}

func (k Keeper) setCircuitBreaker(ctx context.Context, caller sdk.AccAddress, paused bool, eventType string) error {
	if err := k.requireAdmin(ctx, caller); err != nil {
		return err
	}
	k.setPaused(ctx, paused)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeySender, caller.String()),
			sdk.NewAttribute("height", strconv.FormatInt(sdkCtx.BlockHeight(), 10)),
		),
	)
	k.Logger(ctx).Info("router circuit breaker changed", "paused", paused, "height", sdkCtx.BlockHeight())
	return nil
}
