package app

import (
	"encoding/json"
	"fmt"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	pairtypes "github.com/paw-chain/amm/x/pair/types"
	registrytypes "github.com/paw-chain/amm/x/registry/types"
	routertypes "github.com/paw-chain/amm/x/router/types"
	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// GenesisState is the application genesis, keyed by module name. The bank
// section uses the SDK's proto JSON; the AMM modules use plain JSON.
type GenesisState map[string]json.RawMessage

// RouterAddress is the account the router keeper operates from.
func RouterAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(routertypes.ModuleName)
}

// RegistryAddress is the account the registry keeper operates from.
func RegistryAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(registrytypes.ModuleName)
}

// WrappedNativeAddress is the address of the default native wrapper token.
func WrappedNativeAddress() sdk.AccAddress {
	return tokentypes.TokenAddress(WrappedNativeSymbol)
}

// NewDefaultGenesisState builds a genesis governed by admin: a wrapped native
// token, a registry whose router is the router module account, and a router
// pointed at the registry and the wrapper.
func NewDefaultGenesisState(cdc codec.JSONCodec, admin sdk.AccAddress) GenesisState {
	SetConfig()
	genesis := make(GenesisState)

	bankGenesis := banktypes.DefaultGenesisState()
	bankGenesis.Params.DefaultSendEnabled = true
	genesis[banktypes.ModuleName] = cdc.MustMarshalJSON(bankGenesis)

	tokenGenesis := tokentypes.DefaultGenesis()
	tokenGenesis.Tokens = []tokentypes.Token{{
		Address:     WrappedNativeAddress(),
		Name:        "Wrapped Native",
		Symbol:      WrappedNativeSymbol,
		Decimals:    6,
		Admin:       admin,
		TotalSupply: math.ZeroInt(),
		NativeDenom: NativeDenom,
	}}
	genesis[tokentypes.ModuleName] = mustMarshalJSON(tokenGenesis)

	genesis[pairtypes.ModuleName] = mustMarshalJSON(pairtypes.DefaultGenesis())

	registryGenesis := registrytypes.DefaultGenesis()
	registryGenesis.Config = registrytypes.Config{
		Admin:       admin,
		FeeToSetter: admin,
		Router:      RouterAddress(),
	}
	genesis[registrytypes.ModuleName] = mustMarshalJSON(registryGenesis)

	routerGenesis := routertypes.DefaultGenesis()
	routerGenesis.Config = routertypes.Config{
		Factory:       RegistryAddress(),
		NativeWrapper: WrappedNativeAddress(),
		Admin:         admin,
	}
	genesis[routertypes.ModuleName] = mustMarshalJSON(routerGenesis)

	return genesis
}

// decoded is the typed form of a GenesisState.
type decoded struct {
	bank     banktypes.GenesisState
	token    tokentypes.GenesisState
	pair     pairtypes.GenesisState
	registry registrytypes.GenesisState
	router   routertypes.GenesisState
}

func (gs GenesisState) decode(cdc codec.JSONCodec) (*decoded, error) {
	d := &decoded{
		bank:     *banktypes.DefaultGenesisState(),
		token:    *tokentypes.DefaultGenesis(),
		pair:     *pairtypes.DefaultGenesis(),
		registry: *registrytypes.DefaultGenesis(),
		router:   *routertypes.DefaultGenesis(),
	}
	if raw, ok := gs[banktypes.ModuleName]; ok {
		if err := cdc.UnmarshalJSON(raw, &d.bank); err != nil {
			return nil, fmt.Errorf("genesis: %s: %w", banktypes.ModuleName, err)
		}
	}
	for name, target := range map[string]any{
		tokentypes.ModuleName:    &d.token,
		pairtypes.ModuleName:     &d.pair,
		registrytypes.ModuleName: &d.registry,
		routertypes.ModuleName:   &d.router,
	} {
		raw, ok := gs[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, fmt.Errorf("genesis: %s: %w", name, err)
		}
	}
	return d, nil
}

// Validate decodes and validates every module section.
func (gs GenesisState) Validate(cdc codec.JSONCodec) error {
	SetConfig()
	d, err := gs.decode(cdc)
	if err != nil {
		return err
	}
	return d.validate()
}

func (d *decoded) validate() error {
	for name, validate := range map[string]func() error{
		banktypes.ModuleName:     d.bank.Validate,
		tokentypes.ModuleName:    d.token.Validate,
		pairtypes.ModuleName:     d.pair.Validate,
		registrytypes.ModuleName: d.registry.Validate,
		routertypes.ModuleName:   d.router.Validate,
	} {
		if err := validate(); err != nil {
			return fmt.Errorf("genesis: %s: %w", name, err)
		}
	}
	return nil
}

// InitChain loads genesis into an empty database as height 1.
func (app *AMMApp) InitChain(genesis GenesisState, genesisTime time.Time) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.cms.LastCommitID().Version != 0 {
		return ErrAlreadyInitialized
	}
	d, err := genesis.decode(app.appCodec)
	if err != nil {
		return err
	}
	if err := d.validate(); err != nil {
		return err
	}

	_, err = app.commitBlock(1, genesisTime, false, func(ctx sdk.Context) error {
		if err := app.initBank(ctx, &d.bank); err != nil {
			return err
		}
		if err := app.TokenKeeper.InitGenesis(ctx, d.token); err != nil {
			return fmt.Errorf("genesis: %s: %w", tokentypes.ModuleName, err)
		}
		if err := app.PairKeeper.InitGenesis(ctx, d.pair); err != nil {
			return fmt.Errorf("genesis: %s: %w", pairtypes.ModuleName, err)
		}
		if err := app.RegistryKeeper.InitGenesis(ctx, d.registry); err != nil {
			return fmt.Errorf("genesis: %s: %w", registrytypes.ModuleName, err)
		}
		if err := app.RouterKeeper.InitGenesis(ctx, d.router); err != nil {
			return fmt.Errorf("genesis: %s: %w", routertypes.ModuleName, err)
		}
		app.logger.Info("genesis loaded", "time", genesisTime.UTC())
		return nil
	})
	return err
}

// initBank turns the bank keeper's genesis panics into errors.
func (app *AMMApp) initBank(ctx sdk.Context, gs *banktypes.GenesisState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("genesis: %s: %v", banktypes.ModuleName, r)
		}
	}()
	app.BankKeeper.InitGenesis(ctx, gs)
	return nil
}

// ExportGenesis dumps the committed state of every module.
func (app *AMMApp) ExportGenesis() (GenesisState, error) {
	genesis := make(GenesisState)
	err := app.Query(func(ctx sdk.Context) error {
		bz, err := app.appCodec.MarshalJSON(app.BankKeeper.ExportGenesis(ctx))
		if err != nil {
			return fmt.Errorf("ExportGenesis: %s: %w", banktypes.ModuleName, err)
		}
		genesis[banktypes.ModuleName] = bz

		tokenGenesis, err := app.TokenKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		pairGenesis, err := app.PairKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		registryGenesis, err := app.RegistryKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		routerGenesis, err := app.RouterKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		for name, v := range map[string]any{
			tokentypes.ModuleName:    tokenGenesis,
			pairtypes.ModuleName:     pairGenesis,
			registrytypes.ModuleName: registryGenesis,
			routertypes.ModuleName:   routerGenesis,
		} {
			bz, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("ExportGenesis: %s: %w", name, err)
			}
			genesis[name] = bz
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return genesis, nil
}

func mustMarshalJSON(v any) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}
