package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/app"
)

const (
	flagOverwrite   = "overwrite"
	flagAdmin       = "admin"
	flagFund        = "fund"
	flagGenesisTime = "genesis-time"
)

// InitCmd writes the default app.toml and genesis.json.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the node configuration and genesis files",
		Long: `Initialize app.toml and genesis.json under the node home.

Example:
  ammd init --admin amm1... --fund amm1...=1000000 --home ~/.amm
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}

			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			if _, err := os.Stat(genesisPath(nc.home)); err == nil && !overwrite {
				return fmt.Errorf("genesis.json file already exists: %v", genesisPath(nc.home))
			}

			adminStr, _ := cmd.Flags().GetString(flagAdmin)
			admin, err := sdk.AccAddressFromBech32(adminStr)
			if err != nil {
				return fmt.Errorf("--%s: %w", flagAdmin, err)
			}

			genesisTime := time.Now().UTC()
			if raw, _ := cmd.Flags().GetString(flagGenesisTime); raw != "" {
				if genesisTime, err = time.Parse(time.RFC3339, raw); err != nil {
					return fmt.Errorf("--%s: %w", flagGenesisTime, err)
				}
			}

			funds, _ := cmd.Flags().GetStringSlice(flagFund)
			appState, err := defaultAppState(admin, funds)
			if err != nil {
				return err
			}

			if err := writeDefaultConfig(nc.home); err != nil {
				return fmt.Errorf("write app.toml: %w", err)
			}
			doc := &GenesisDoc{GenesisTime: genesisTime, ChainID: app.ChainID, AppState: appState}
			if err := writeGenesis(nc.home, doc); err != nil {
				return fmt.Errorf("write genesis: %w", err)
			}

			nc.logger.Info("initialized node", "home", nc.home, "admin", admin.String())
			return printJSON(cmd, map[string]any{
				"chain_id":       app.ChainID,
				"home":           nc.home,
				"admin":          admin.String(),
				"router":         app.RouterAddress().String(),
				"registry":       app.RegistryAddress().String(),
				"native_wrapper": app.WrappedNativeAddress().String(),
			})
		},
	}

	cmd.Flags().Bool(flagOverwrite, false, "overwrite the genesis.json file")
	cmd.Flags().String(flagAdmin, "", "admin of the registry, router and wrapped native token")
	cmd.Flags().StringSlice(flagFund, nil, "genesis native balance as address=amount (repeatable)")
	cmd.Flags().String(flagGenesisTime, "", "genesis time in RFC3339 (default now)")
	_ = cmd.MarkFlagRequired(flagAdmin)
	return cmd
}

// defaultAppState is the default genesis plus native balances parsed from
// address=amount entries.
func defaultAppState(admin sdk.AccAddress, funds []string) (app.GenesisState, error) {
	cdc := app.MakeEncodingConfig().Codec
	genesis := app.NewDefaultGenesisState(cdc, admin)

	var bankGenesis banktypes.GenesisState
	if err := cdc.UnmarshalJSON(genesis[banktypes.ModuleName], &bankGenesis); err != nil {
		return nil, err
	}
	for _, entry := range funds {
		addrStr, amountStr, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("--%s %q: expected address=amount", flagFund, entry)
		}
		addr, err := sdk.AccAddressFromBech32(addrStr)
		if err != nil {
			return nil, fmt.Errorf("--%s %q: %w", flagFund, entry, err)
		}
		amount, ok := math.NewIntFromString(amountStr)
		if !ok || !amount.IsPositive() {
			return nil, fmt.Errorf("--%s %q: invalid amount", flagFund, entry)
		}
		bankGenesis.Balances = append(bankGenesis.Balances, banktypes.Balance{
			Address: addr.String(),
			Coins:   sdk.NewCoins(sdk.NewCoin(app.NativeDenom, amount)),
		})
	}
	bankGenesis.Balances = banktypes.SanitizeGenesisBalances(bankGenesis.Balances)

	bz, err := cdc.MarshalJSON(&bankGenesis)
	if err != nil {
		return nil, err
	}
	genesis[banktypes.ModuleName] = bz
	if err := genesis.Validate(cdc); err != nil {
		return nil, err
	}
	return genesis, nil
}

// ExportCmd dumps the committed state as a genesis document.
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the committed state as genesis JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amm, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer amm.Close()

			state, err := amm.ExportGenesis()
			if err != nil {
				return err
			}
			return printJSON(cmd, GenesisDoc{
				GenesisTime: amm.LastBlockTime(),
				ChainID:     app.ChainID,
				AppState:    state,
			})
		},
	}
}
