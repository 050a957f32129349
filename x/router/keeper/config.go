package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/router/types"
	sharedkeeper "github.com/paw-chain/amm/x/shared/keeper"
)

// GetConfig returns the router configuration, zero-valued when unset.
func (k Keeper) GetConfig(ctx context.Context) (types.Config, error) {
	bz := k.getStore(ctx).Get(types.ConfigKey)
	if bz == nil {
		return types.Config{}, nil
	}
	var cfg types.Config
	if err := json.Unmarshal(bz, &cfg); err != nil {
		return types.Config{}, fmt.Errorf("GetConfig: unmarshal: %w", err)
	}
	return cfg, nil
}

// SetConfig validates and stores the router configuration.
func (k Keeper) SetConfig(ctx context.Context, cfg types.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("SetConfig: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.ConfigKey, bz)
	return nil
}

func (k Keeper) requireAdmin(ctx context.Context, caller sdk.AccAddress) error {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}
	return sharedkeeper.ValidateAuthority(types.ErrNotAdmin, caller, cfg.Admin)
}

func (k Keeper) updateConfig(ctx context.Context, caller sdk.AccAddress, field, value string, mutate func(*types.Config)) error {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}
	if err := sharedkeeper.ValidateAuthority(types.ErrNotAdmin, caller, cfg.Admin); err != nil {
		return err
	}
	mutate(&cfg)
	if err := k.SetConfig(ctx, cfg); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeConfigUpdated,
			sdk.NewAttribute(types.AttributeKeyField, field),
			sdk.NewAttribute(types.AttributeKeyValue, value),
		),
	)
	k.Logger(ctx).Info("router config updated", "field", field, "value", value)
	return nil
}

// UpdateAdmin hands the router over to a new admin.
func (k Keeper) UpdateAdmin(ctx context.Context, caller, admin sdk.AccAddress) error {
	return k.updateConfig(ctx, caller, "admin", admin.String(), func(c *types.Config) { c.Admin = admin })
}

// UpdateFactory records a new registry account.
func (k Keeper) UpdateFactory(ctx context.Context, caller, factory sdk.AccAddress) error {
	return k.updateConfig(ctx, caller, "factory", factory.String(), func(c *types.Config) { c.Factory = factory })
}

// UpdateNativeWrapper points the native variants at a new wrapper token.
func (k Keeper) UpdateNativeWrapper(ctx context.Context, caller, wrapper sdk.AccAddress) error {
	return k.updateConfig(ctx, caller, "native_wrapper", wrapper.String(), func(c *types.Config) { c.NativeWrapper = wrapper })
}

// UpdateFeeRecipient sets the fee recipient.
func (k Keeper) UpdateFeeRecipient(ctx context.Context, caller, recipient sdk.AccAddress) error {
	return k.updateConfig(ctx, caller, "fee_recipient", recipient.String(), func(c *types.Config) { c.FeeRecipient = recipient })
}

// UpdateSwapFeeBps sets the configured swap fee in basis points.
func (k Keeper) UpdateSwapFeeBps(ctx context.Context, caller sdk.AccAddress, bps uint64) error {
	return k.updateConfig(ctx, caller, "swap_fee_bps", strconv.FormatUint(bps, 10), func(c *types.Config) { c.SwapFeeBps = bps })
}

// wrapper returns the configured native wrapper and the denom it wraps.
func (k Keeper) wrapper(ctx context.Context) (sdk.AccAddress, string, error) {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(cfg.NativeWrapper) == 0 {
		return nil, "", types.ErrInvalidConfig.Wrap("native wrapper is not configured")
	}
	if k.nativeWrapper == nil {
		return nil, "", types.ErrInvalidConfig.Wrap("native wrapper keeper is not wired")
	}
	denom, err := k.nativeWrapper.NativeDenom(ctx, cfg.NativeWrapper)
	if err != nil {
		return nil, "", types.ErrInvalidConfig.Wrapf("native wrapper %s: %v", cfg.NativeWrapper, err)
	}
	return cfg.NativeWrapper, denom, nil
}
