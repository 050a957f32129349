// Package keeper provides shared keeper interfaces and utilities for cross-module communication.
package keeper

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedtypes "github.com/paw-chain/amm/x/shared/types"
)

// IsAuthority reports whether caller equals one of the allowed addresses.
// Zero addresses never authorize anything.
func IsAuthority(caller sdk.AccAddress, allowed ...sdk.AccAddress) bool {
	if sharedtypes.IsZeroAddress(caller) {
		return false
	}
	for _, a := range allowed {
		if !sharedtypes.IsZeroAddress(a) && caller.Equals(a) {
			return true
		}
	}
	return false
}

// ValidateAuthority checks that caller is one of the allowed addresses and
// returns notAuthorized otherwise. Each module passes its own error so the
// failure keeps the module's codespace.
//
// Usage example:
//
//	if err := sharedkeeper.ValidateAuthority(types.ErrUnauthorized, caller, cfg.Admin, cfg.Router); err != nil {
//	    return err
//	}
func ValidateAuthority(notAuthorized *errorsmod.Error, caller sdk.AccAddress, allowed ...sdk.AccAddress) error {
	if IsAuthority(caller, allowed...) {
		return nil
	}
	return notAuthorized.Wrapf("caller %s is not authorized", caller)
}
