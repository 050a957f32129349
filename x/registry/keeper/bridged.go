package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/registry/types"
	sharedkeeper "github.com/paw-chain/amm/x/shared/keeper"
)

// GetBridgedAsset returns the metadata override for token, if any.
func (k Keeper) GetBridgedAsset(ctx context.Context, token sdk.AccAddress) (types.BridgedAsset, bool, error) {
	bz := k.getStore(ctx).Get(types.GetBridgedAssetKey(token))
	if bz == nil {
		return types.BridgedAsset{}, false, nil
	}
	var asset types.BridgedAsset
	if err := json.Unmarshal(bz, &asset); err != nil {
		return types.BridgedAsset{}, false, fmt.Errorf("GetBridgedAsset: unmarshal: %w", err)
	}
	return asset, true, nil
}

func (k Keeper) setBridgedAsset(ctx context.Context, asset types.BridgedAsset) error {
	bz, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("setBridgedAsset: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.GetBridgedAssetKey(asset.Token), bz)
	return nil
}

// AddBridgedAsset registers a metadata override. Admin only.
func (k Keeper) AddBridgedAsset(ctx context.Context, caller sdk.AccAddress, asset types.BridgedAsset) error {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}
	if err := sharedkeeper.ValidateAuthority(types.ErrUnauthorized, caller, cfg.Admin); err != nil {
		return err
	}
	if k.getStore(ctx).Has(types.GetBridgedAssetKey(asset.Token)) {
		return types.ErrBridgedAssetExists.Wrapf("token %s", asset.Token)
	}
	if err := k.setBridgedAsset(ctx, asset); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBridgedAssetAdded,
			sdk.NewAttribute(types.AttributeKeyToken, asset.Token.String()),
			sdk.NewAttribute(types.AttributeKeySymbol, asset.Symbol),
		),
	)
	return nil
}

// RemoveBridgedAsset drops a metadata override. Admin only.
func (k Keeper) RemoveBridgedAsset(ctx context.Context, caller, token sdk.AccAddress) error {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}
	if err := sharedkeeper.ValidateAuthority(types.ErrUnauthorized, caller, cfg.Admin); err != nil {
		return err
	}
	k.getStore(ctx).Delete(types.GetBridgedAssetKey(token))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(types.EventTypeBridgedAssetRemoved, sdk.NewAttribute(types.AttributeKeyToken, token.String())),
	)
	return nil
}

// GetAllBridgedAssets lists every override.
func (k Keeper) GetAllBridgedAssets(ctx context.Context) ([]types.BridgedAsset, error) {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.BridgedAssetPrefix)
	defer iter.Close()

	var assets []types.BridgedAsset
	for ; iter.Valid(); iter.Next() {
		var a types.BridgedAsset
		if err := json.Unmarshal(iter.Value(), &a); err != nil {
			return nil, fmt.Errorf("GetAllBridgedAssets: unmarshal: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, nil
}
