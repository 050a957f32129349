package cmd

import (
	"strconv"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/app"
	routertypes "github.com/paw-chain/amm/x/router/types"
)

const (
	flagFrom      = "from"
	flagTo        = "to"
	flagDeadline  = "deadline"
	flagMinA      = "min-a"
	flagMinB      = "min-b"
	flagMinOut    = "min-out"
	flagNative    = "native"
	flagNativeIn  = "native-in"
	flagNativeOut = "native-out"
)

// txEnv is what a transaction body sees.
type txEnv struct {
	amm      *app.AMMApp
	from     sdk.AccAddress
	to       sdk.AccAddress
	deadline time.Time
}

type txResult struct {
	Height int64      `json:"height"`
	Result any        `json:"result,omitempty"`
	Events sdk.Events `json:"events,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// runTx executes fn as the next block. The block is committed even when fn
// fails, so the events of a failed operation are printed as well.
func runTx(cmd *cobra.Command, fn func(ctx sdk.Context, env txEnv) (any, error)) error {
	nc, err := getNodeContext(cmd)
	if err != nil {
		return err
	}
	from, err := parseAddress("--"+flagFrom, mustString(cmd, flagFrom))
	if err != nil {
		return err
	}
	to := from
	if raw := mustString(cmd, flagTo); raw != "" {
		if to, err = parseAddress("--"+flagTo, raw); err != nil {
			return err
		}
	}
	window := nc.config.DefaultDeadline
	if cmd.Flags().Changed(flagDeadline) {
		window, _ = cmd.Flags().GetDuration(flagDeadline)
	}

	amm, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer amm.Close()

	blockTime := nextBlockTime(amm)
	env := txEnv{amm: amm, from: from, to: to, deadline: blockTime.Add(window)}

	var res txResult
	events, execErr := amm.Exec(blockTime, func(ctx sdk.Context) error {
		res.Height = ctx.BlockHeight()
		out, err := fn(ctx, env)
		res.Result = out
		return err
	})
	res.Events = events
	if execErr != nil {
		res.Error = execErr.Error()
	}
	if err := printJSON(cmd, res); err != nil {
		return err
	}
	return execErr
}

func mustString(cmd *cobra.Command, name string) string {
	s, _ := cmd.Flags().GetString(name)
	return s
}

func amountFlag(cmd *cobra.Command, name string) (math.Int, error) {
	raw := mustString(cmd, name)
	if raw == "" {
		return math.ZeroInt(), nil
	}
	return parseAmount("--"+name, raw)
}

// TxCmd groups the state-changing commands.
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Execute operations against the local state",
	}
	cmd.PersistentFlags().String(flagFrom, "", "address the operation is executed as")
	cmd.PersistentFlags().String(flagTo, "", "recipient (default --from)")
	cmd.PersistentFlags().Duration(flagDeadline, 0, "deadline relative to the block time (default router.default_deadline)")
	_ = cmd.MarkPersistentFlagRequired(flagFrom)

	cmd.AddCommand(
		createTokenCmd(),
		mintCmd(),
		approveCmd(),
		createPairCmd(),
		addLiquidityCmd(),
		removeLiquidityCmd(),
		swapExactInCmd(),
		swapExactOutCmd(),
		recoverCmd(),
		circuitBreakerCmd("lock", "Pause the router", true),
		circuitBreakerCmd("unlock", "Resume the router", false),
	)
	return cmd
}

func createTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-token [name] [symbol] [decimals]",
		Short: "Create a ledger token administered by --from",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			decimals, err := strconv.ParseUint(args[2], 10, 32)
			if err != nil {
				return err
			}
			denom := mustString(cmd, "native-denom")
			return runTx(cmd, func(ctx sdk.Context, env txEnv) (any, error) {
				return env.amm.TokenKeeper.CreateToken(ctx, env.from, args[0], args[1], uint32(decimals), denom)
			})
		},
	}
	cmd.Flags().String("native-denom", "", "make the token a wrapper of this native denom")
	return cmd
}

func mintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mint [token] [amount]",
		Short: "Mint a token to --to; --from must be the token admin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := parseAddress("token", args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount("amount", args[1])
			if err != nil {
				return err
			}
			return runTx(cmd, func(ctx sdk.Context, env txEnv) (any, error) {
				return nil, env.amm.TokenKeeper.Mint(ctx, env.from, token, env.to, amount)
			})
		},
	}
}

func approveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve [token] [amount]",
		Short: "Approve the router to spend --from's tokens",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := parseAddress("token", args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount("amount", args[1])
			if err != nil {
				return err
			}
			return runTx(cmd, func(ctx sdk.Context, env txEnv) (any, error) {
				return nil, env.amm.TokenKeeper.Approve(ctx, token, env.from, app.RouterAddress(), amount)
			})
		},
	}
}

func createPairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-pair [token-a] [token-b]",
		Short: "Create the pair of two tokens through the router",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(args)
			if err != nil {
				return err
			}
			return runTx(cmd, func(ctx sdk.Context, env txEnv) (any, error) {
				pair, err := env.amm.RouterKeeper.CreatePair(ctx, env.from, path[0], path[1])
				return map[string]string{"pair": pair.String()}, err
			})
		},
	}
}

func addLiquidityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-liquidity [token-a] [token-b] [amount-a] [amount-b]",
		Short: "Deposit into a pair; with --native token-b is ignored and amount-b is native value",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			native, _ := cmd.Flags().GetBool(flagNative)
			tokenA, err := parseAddress("token-a", args[0])
			if err != nil {
				return err
			}
			var tokenB sdk.AccAddress
			if !native {
				if tokenB, err = parseAddress("token-b", args[1]); err != nil {
					return err
				}
			}
			amountA, err := parseAmount("amount-a", args[2])
			if err != nil {
				return err
			}
			amountB, err := parseAmount("amount-b", args[3])
			if err != nil {
				return err
			}
			minA, err := amountFlag(cmd, flagMinA)
			if err != nil {
				return err
			}
			minB, err := amountFlag(cmd, flagMinB)
			if err != nil {
				return err
			}

			return runTx(cmd, func(ctx sdk.Context, env txEnv) (any, error) {
				if native {
					return env.amm.RouterKeeper.AddLiquidityNative(ctx, env.from, routertypes.AddLiquidityNativeRequest{
						Token:              tokenA,
						AmountTokenDesired: amountA,
						AmountTokenMin:     minA,
						AmountNativeMin:    minB,
						NativeValue:        amountB,
						To:                 env.to,
						Deadline:           env.deadline,
					})
				}
				return env.amm.RouterKeeper.AddLiquidity(ctx, env.from, routertypes.AddLiquidityRequest{
					TokenA:         tokenA,
					TokenB:         tokenB,
					AmountADesired: amountA,
					AmountBDesired: amountB,
					AmountAMin:     minA,
					AmountBMin:     minB,
					To:             env.to,
					Deadline:       env.deadline,
				})
			})
		},
	}
	cmd.Flags().String(flagMinA, "", "minimum amount of token-a")
	cmd.Flags().String(flagMinB, "", "minimum amount of token-b")
	cmd.Flags().Bool(flagNative, false, "pair token-a with the wrapped native token")
	return cmd
}

func removeLiquidityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-liquidity [token-a] [token-b] [liquidity]",
		Short: "Redeem LP tokens; with --native token-b is ignored and paid out as native coin",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			native, _ := cmd.Flags().GetBool(flagNative)
			tokenA, err := parseAddress("token-a", args[0])
			if err != nil {
				return err
			}
			var tokenB sdk.AccAddress
			if !native {
				if tokenB, err = parseAddress("token-b", args[1]); err != nil {
					return err
				}
			}
			liquidity, err := parseAmount("liquidity", args[2])
			if err != nil {
				return err
			}
			minA, err := amountFlag(cmd, flagMinA)
			if err != nil {
				return err
			}
			minB, err := amountFlag(cmd, flagMinB)
			if err != nil {
				return err
			}

			return runTx(cmd, func(ctx sdk.Context, env txEnv) (any, error) {
				if native {
					return env.amm.RouterKeeper.RemoveLiquidityNative(ctx, env.from, routertypes.RemoveLiquidityNativeRequest{
						Token:           tokenA,
						Liquidity:       liquidity,
						AmountTokenMin:  minA,
						AmountNativeMin: minB,
						To:              env.to,
						Deadline:        env.deadline,
					})
				}
				return env.amm.RouterKeeper.RemoveLiquidity(ctx, env.from, routertypes.RemoveLiquidityRequest{
					TokenA:     tokenA,
					TokenB:     tokenB,
					Liquidity:  liquidity,
					AmountAMin: minA,
					AmountBMin: minB,
					To:         env.to,
					Deadline:   env.deadline,
				})
			})
		},
	}
	cmd.Flags().String(flagMinA, "", "minimum amount of token-a")
	cmd.Flags().String(flagMinB, "", "minimum amount of token-b")
	cmd.Flags().Bool(flagNative, false, "token-b side is native coin")
	return cmd
}

func swapExactInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-in [amount-in] [token] [token]...",
		Short: "Swap an exact input along a path of tokens",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountIn, err := parseAmount("amount-in", args[0])
			if err != nil {
				return err
			}
			path, err := parsePath(args[1:])
			if err != nil {
				return err
			}
			minOut, err := amountFlag(cmd, flagMinOut)
			if err != nil {
				return err
			}
			nativeIn, _ := cmd.Flags().GetBool(flagNativeIn)
			nativeOut, _ := cmd.Flags().GetBool(flagNativeOut)

			return runTx(cmd, func(ctx sdk.Context, env txEnv) (any, error) {
				req := routertypes.SwapExactInRequest{
					AmountIn:     amountIn,
					AmountOutMin: minOut,
					Path:         path,
					To:           env.to,
					Deadline:     env.deadline,
				}
				switch {
				case nativeIn:
					return env.amm.RouterKeeper.SwapExactNativeForTokens(ctx, env.from, req)
				case nativeOut:
					return env.amm.RouterKeeper.SwapExactTokensForNative(ctx, env.from, req)
				default:
					return env.amm.RouterKeeper.SwapExactTokensForTokens(ctx, env.from, req)
				}
			})
		},
	}
	cmd.Flags().String(flagMinOut, "", "minimum output amount")
	cmd.Flags().Bool(flagNativeIn, false, "attach amount-in as native coin; path must start with the wrapper")
	cmd.Flags().Bool(flagNativeOut, false, "pay the output as native coin; path must end with the wrapper")
	cmd.MarkFlagsMutuallyExclusive(flagNativeIn, flagNativeOut)
	return cmd
}

func swapExactOutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-out [amount-out] [amount-in-max] [token] [token]...",
		Short: "Swap for an exact output along a path of tokens",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountOut, err := parseAmount("amount-out", args[0])
			if err != nil {
				return err
			}
			amountInMax, err := parseAmount("amount-in-max", args[1])
			if err != nil {
				return err
			}
			path, err := parsePath(args[2:])
			if err != nil {
				return err
			}
			nativeIn, _ := cmd.Flags().GetBool(flagNativeIn)
			nativeOut, _ := cmd.Flags().GetBool(flagNativeOut)

			return runTx(cmd, func(ctx sdk.Context, env txEnv) (any, error) {
				req := routertypes.SwapExactOutRequest{
					AmountOut:   amountOut,
					AmountInMax: amountInMax,
					Path:        path,
					To:          env.to,
					Deadline:    env.deadline,
				}
				switch {
				case nativeIn:
					return env.amm.RouterKeeper.SwapNativeForExactTokens(ctx, env.from, req)
				case nativeOut:
					return env.amm.RouterKeeper.SwapTokensForExactNative(ctx, env.from, req)
				default:
					return env.amm.RouterKeeper.SwapTokensForExactTokens(ctx, env.from, req)
				}
			})
		},
	}
	cmd.Flags().Bool(flagNativeIn, false, "attach amount-in-max as native coin; path must start with the wrapper")
	cmd.Flags().Bool(flagNativeOut, false, "pay the output as native coin; path must end with the wrapper")
	cmd.MarkFlagsMutuallyExclusive(flagNativeIn, flagNativeOut)
	return cmd
}

func recoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recover [user]",
		Short: "Return a user's pending refunds; --from must be the router admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := parseAddress("user", args[0])
			if err != nil {
				return err
			}
			return runTx(cmd, func(ctx sdk.Context, env txEnv) (any, error) {
				return nil, env.amm.RouterKeeper.RecoverPendingLiquidity(ctx, env.from, user)
			})
		},
	}
}

func circuitBreakerCmd(use, short string, lock bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTx(cmd, func(ctx sdk.Context, env txEnv) (any, error) {
				if lock {
					return nil, env.amm.RouterKeeper.LockRouter(ctx, env.from)
				}
				return nil, env.amm.RouterKeeper.UnlockRouter(ctx, env.from)
			})
		},
	}
}
