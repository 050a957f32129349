package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/registry/types"
	sharedkeeper "github.com/paw-chain/amm/x/shared/keeper"
)

// GetConfig returns the registry configuration, zero-valued when unset.
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

// SetConfig stores the registry configuration.
func (k Keeper) SetConfig(ctx context.Context, cfg types.Config) error {
	bz, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("SetConfig: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.ConfigKey, bz)
	return nil
}

// GetFeeTo returns the protocol fee recipient. Nil means the fee is off.
func (k Keeper) GetFeeTo(ctx context.Context) sdk.AccAddress {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		k.Logger(ctx).Error("failed to read registry config", "error", err)
		return nil
	}
	return cfg.FeeTo
}

// GetFeeToSetter returns the address allowed to change the fee settings.
func (k Keeper) GetFeeToSetter(ctx context.Context) (sdk.AccAddress, error) {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.FeeToSetter, nil
}

func (k Keeper) updateConfig(
	ctx context.Context,
	caller sdk.AccAddress,
	authority func(types.Config) sdk.AccAddress,
	mutate func(*types.Config),
	eventType string,
	value sdk.AccAddress,
) error {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}
	if err := sharedkeeper.ValidateAuthority(types.ErrUnauthorized, caller, authority(cfg)); err != nil {
		return err
	}
	mutate(&cfg)
	if err := k.SetConfig(ctx, cfg); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(eventType, sdk.NewAttribute(types.AttributeKeyAddress, value.String())),
	)
	k.Logger(ctx).Info("registry config updated", "event", eventType, "value", value.String())
	return nil
}

func feeToSetter(cfg types.Config) sdk.AccAddress { return cfg.FeeToSetter }
func admin(cfg types.Config) sdk.AccAddress       { return cfg.Admin }

// SetFeeTo changes the protocol fee recipient. A zero address turns the fee off.
func (k Keeper) SetFeeTo(ctx context.Context, caller, feeTo sdk.AccAddress) error {
	return k.updateConfig(ctx, caller, feeToSetter, func(c *types.Config) { c.FeeTo = feeTo }, types.EventTypeFeeToSet, feeTo)
}

// SetFeeToSetter hands the fee settings over to a new address.
func (k Keeper) SetFeeToSetter(ctx context.Context, caller, setter sdk.AccAddress) error {
	return k.updateConfig(ctx, caller, feeToSetter, func(c *types.Config) { c.FeeToSetter = setter }, types.EventTypeFeeToSetterSet, setter)
}

// SetAdmin replaces the registry admin.
func (k Keeper) SetAdmin(ctx context.Context, caller, newAdmin sdk.AccAddress) error {
	return k.updateConfig(ctx, caller, admin, func(c *types.Config) { c.Admin = newAdmin }, types.EventTypeAdminSet, newAdmin)
}

// SetRouter sets the router inherited by pairs created from now on.
func (k Keeper) SetRouter(ctx context.Context, caller, router sdk.AccAddress) error {
	return k.updateConfig(ctx, caller, admin, func(c *types.Config) { c.Router = router }, types.EventTypeRouterSet, router)
}
