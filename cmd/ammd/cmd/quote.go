package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	routertypes "github.com/paw-chain/amm/x/router/types"
)

func parseAmount(name, s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok || amount.IsNegative() {
		return math.Int{}, fmt.Errorf("%s: %q is not a non-negative integer", name, s)
	}
	return amount, nil
}

func parseAddress(name, s string) (sdk.AccAddress, error) {
	addr, err := sdk.AccAddressFromBech32(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return addr, nil
}

func parsePath(args []string) ([]sdk.AccAddress, error) {
	path := make([]sdk.AccAddress, 0, len(args))
	for i, arg := range args {
		addr, err := parseAddress(fmt.Sprintf("path[%d]", i), arg)
		if err != nil {
			return nil, err
		}
		path = append(path, addr)
	}
	return path, nil
}

// QuoteCmd groups the pricing helpers.
func QuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Constant-product pricing",
	}
	cmd.AddCommand(
		quoteAmountCmd("amount-out", "Output for an exact input against the given reserves", routertypes.GetAmountOut),
		quoteAmountCmd("amount-in", "Input needed for an exact output against the given reserves", routertypes.GetAmountIn),
		quoteAmountsCmd("amounts-out", "Per-hop outputs for an exact input along a path of tokens", false),
		quoteAmountsCmd("amounts-in", "Per-hop inputs for an exact output along a path of tokens", true),
	)
	return cmd
}

func quoteAmountCmd(use, short string, fn func(amount, reserveIn, reserveOut math.Int) (math.Int, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [amount] [reserve-in] [reserve-out]",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in [3]math.Int
			for i, name := range []string{"amount", "reserve-in", "reserve-out"} {
				v, err := parseAmount(name, args[i])
				if err != nil {
					return err
				}
				in[i] = v
			}
			out, err := fn(in[0], in[1], in[2])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"amount": out.String()})
		},
	}
}

func quoteAmountsCmd(use, short string, exactOut bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [amount] [token] [token]...",
		Short: short,
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}
			path, err := parsePath(args[1:])
			if err != nil {
				return err
			}

			amm, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer amm.Close()

			var amounts []math.Int
			err = amm.Query(func(ctx sdk.Context) error {
				var err error
				if exactOut {
					amounts, err = amm.RouterKeeper.GetAmountsIn(ctx, amount, path)
				} else {
					amounts, err = amm.RouterKeeper.GetAmountsOut(ctx, amount, path)
				}
				return err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"path": args[1:], "amounts": amounts})
		},
	}
}
