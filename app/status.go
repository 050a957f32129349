package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CircuitBreakerStatus is the operational state of the router as of the
// last committed block.
type CircuitBreakerStatus struct {
	Height       int64 `json:"height"`
	RouterPaused bool  `json:"router_paused"`
	RouterLocked bool  `json:"router_locked"`
	Pairs        int   `json:"pairs"`
	PendingUsers int   `json:"pending_users"`
}

// CircuitBreakerStatus reports whether the router is paused, whether its
// reentrancy lock leaked into committed state, and how many users hold
// unrecovered pending refunds.
func (app *AMMApp) CircuitBreakerStatus() (CircuitBreakerStatus, error) {
	var status CircuitBreakerStatus
	err := app.Query(func(ctx sdk.Context) error {
		status.Height = ctx.BlockHeight()
		status.RouterPaused = app.RouterKeeper.IsPaused(ctx)
		status.RouterLocked = app.RouterKeeper.GetLock(ctx)

		pairs, err := app.PairKeeper.GetAllPairs(ctx)
		if err != nil {
			return err
		}
		status.Pairs = len(pairs)

		pending, err := app.RouterKeeper.GetAllPendingRefunds(ctx)
		if err != nil {
			return err
		}
		for _, p := range pending {
			for _, r := range p.Refunds {
				if !r.Refunded {
					status.PendingUsers++
					break
				}
			}
		}
		return nil
	})
	return status, err
}
