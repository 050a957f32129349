package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/amm/app"
)

const (
	flagHome      = "home"
	flagLogLevel  = "log-level"
	flagDBBackend = "db-backend"
)

type nodeContextKey struct{}

// nodeContext is resolved once per invocation by the root command.
type nodeContext struct {
	home   string
	viper  *viper.Viper
	config Config
	logger log.Logger
}

func getNodeContext(cmd *cobra.Command) (*nodeContext, error) {
	nc, ok := cmd.Context().Value(nodeContextKey{}).(*nodeContext)
	if !ok {
		return nil, errors.New("node context not initialized")
	}
	return nc, nil
}

// NewRootCmd creates the root command for ammd.
func NewRootCmd() *cobra.Command {
	app.SetConfig()

	rootCmd := &cobra.Command{
		Use:           "ammd",
		Short:         "Constant-product AMM node",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			home, _ := cmd.Flags().GetString(flagHome)
			if env := os.Getenv(envPrefix + "_HOME"); env != "" && !cmd.Flags().Changed(flagHome) {
				home = env
			}

			v, err := newViper(home)
			if err != nil {
				return err
			}
			if err := v.BindPFlag(keyLogLevel, cmd.Flags().Lookup(flagLogLevel)); err != nil {
				return err
			}
			if err := v.BindPFlag(keyDBBackend, cmd.Flags().Lookup(flagDBBackend)); err != nil {
				return err
			}

			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, nodeContextKey{}, &nodeContext{
				home:   home,
				viper:  v,
				config: cfg,
				logger: logger,
			}))
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flagHome, DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(flagDBBackend, "goleveldb", "database backend (goleveldb|pebbledb|memdb)")

	rootCmd.AddCommand(
		InitCmd(),
		ExportCmd(),
		QuoteCmd(),
		TxCmd(),
		QueryCmd(),
		ServeCmd(),
	)
	return rootCmd
}

func newLogger(level string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewLogger(os.Stderr, log.LevelOption(lvl)), nil
}
