package cmd

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/app"
	routertypes "github.com/paw-chain/amm/x/router/types"
)

// runQuery runs fn against the committed state and prints its result.
func runQuery(cmd *cobra.Command, fn func(ctx sdk.Context, amm *app.AMMApp) (any, error)) error {
	amm, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer amm.Close()

	var out any
	if err := amm.Query(func(ctx sdk.Context) error {
		var err error
		out, err = fn(ctx, amm)
		return err
	}); err != nil {
		return err
	}
	return printJSON(cmd, out)
}

// QueryCmd groups the read-only commands.
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Read the committed state",
	}
	cmd.AddCommand(
		queryPairsCmd(),
		queryPairCmd(),
		queryReservesCmd(),
		queryBalanceCmd(),
		queryLPBalanceCmd(),
		queryPendingCmd(),
		queryJoinsCmd(),
		queryConfigCmd(),
		queryStatusCmd(),
	)
	return cmd
}

func queryPairsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pairs",
		Short: "List every registered pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(ctx sdk.Context, amm *app.AMMApp) (any, error) {
				return amm.PairKeeper.GetAllPairs(ctx)
			})
		},
	}
}

func queryPairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pair [token-a] [token-b]",
		Short: "Show the pair of two tokens",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(args)
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx sdk.Context, amm *app.AMMApp) (any, error) {
				addr := amm.RouterKeeper.PairFor(ctx, path[0], path[1])
				if addr.Empty() {
					return nil, routertypes.ErrPairNotFound
				}
				return amm.PairKeeper.GetPair(ctx, addr)
			})
		},
	}
}

func queryReservesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reserves [token-a] [token-b]",
		Short: "Reserves of a pair in the order of the arguments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(args)
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx sdk.Context, amm *app.AMMApp) (any, error) {
				reserveA, reserveB, pair, err := amm.RouterKeeper.GetReserves(ctx, path[0], path[1])
				if err != nil {
					return nil, err
				}
				return map[string]string{
					"pair":      pair.String(),
					"reserve_a": reserveA.String(),
					"reserve_b": reserveB.String(),
				}, nil
			})
		},
	}
}

func queryBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [token] [owner]",
		Short: "Ledger token balance of an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := parseAddress("token", args[0])
			if err != nil {
				return err
			}
			owner, err := parseAddress("owner", args[1])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx sdk.Context, amm *app.AMMApp) (any, error) {
				balance, err := amm.TokenKeeper.BalanceOf(ctx, token, owner)
				if err != nil {
					return nil, err
				}
				native := amm.BankKeeper.GetBalance(ctx, owner, app.NativeDenom)
				return map[string]string{
					"balance": balance.String(),
					"native":  native.Amount.String(),
				}, nil
			})
		},
	}
}

func queryLPBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lp-balance [pair] [owner]",
		Short: "LP token balance of an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := parseAddress("pair", args[0])
			if err != nil {
				return err
			}
			owner, err := parseAddress("owner", args[1])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx sdk.Context, amm *app.AMMApp) (any, error) {
				balance, err := amm.PairKeeper.BalanceOf(ctx, pair, owner)
				if err != nil {
					return nil, err
				}
				supply, err := amm.PairKeeper.TotalSupply(ctx, pair)
				if err != nil {
					return nil, err
				}
				return map[string]string{"balance": balance.String(), "total_supply": supply.String()}, nil
			})
		},
	}
}

func queryPendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending [user]",
		Short: "Refunds the router holds for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := parseAddress("user", args[0])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx sdk.Context, amm *app.AMMApp) (any, error) {
				return amm.RouterKeeper.GetPendingRefunds(ctx, user)
			})
		},
	}
}

func queryJoinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "joins [user]",
		Short: "Pairs a user has provided liquidity to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := parseAddress("user", args[0])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx sdk.Context, amm *app.AMMApp) (any, error) {
				return amm.RouterKeeper.GetLiquidityJoins(ctx, user)
			})
		},
	}
}

func queryConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Router configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(ctx sdk.Context, amm *app.AMMApp) (any, error) {
				return amm.RouterKeeper.GetConfig(ctx)
			})
		},
	}
}

func queryStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Height, circuit breaker and pending refund counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amm, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer amm.Close()

			status, err := amm.CircuitBreakerStatus()
			if err != nil {
				return err
			}
			return printJSON(cmd, status)
		},
	}
}
