package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/unitary/internal/dimension"
)

var dimCmd = &cobra.Command{
	Use:   "dim",
	Short: "Parse and combine SI dimension strings",
	Long: `Dimension strings name the nine SI base quantities with their exponents,
for example "kgm2/s2", "kg.m/s2" or "kgm2s-2". Each subcommand prints the
result in every notation together with the catalog families that share it.`,
}

var dimParseCmd = &cobra.Command{
	Use:   "parse <dimension>",
	Short: "Parse a dimension string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := dimension.Parse(args[0])
		if err != nil {
			return err
		}
		return showDimension(cmd, v)
	},
}

var dimMulCmd = &cobra.Command{
	Use:   "mul <dimension> <dimension>",
	Short: "Multiply two dimensions (add exponents)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := parseDimensionPair(args)
		if err != nil {
			return err
		}
		return showDimension(cmd, a.Plus(b))
	},
}

var dimDivCmd = &cobra.Command{
	Use:   "div <dimension> <dimension>",
	Short: "Divide two dimensions (subtract exponents)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := parseDimensionPair(args)
		if err != nil {
			return err
		}
		return showDimension(cmd, a.Minus(b))
	},
}

var dimInvCmd = &cobra.Command{
	Use:   "inv <dimension>",
	Short: "Invert a dimension (negate exponents)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := dimension.Parse(args[0])
		if err != nil {
			return err
		}
		return showDimension(cmd, v.Invert())
	},
}

func init() {
	dimCmd.AddCommand(dimParseCmd, dimMulCmd, dimDivCmd, dimInvCmd)
	rootCmd.AddCommand(dimCmd)
}

func parseDimensionPair(args []string) (dimension.Vector, dimension.Vector, error) {
	a, err := dimension.Parse(args[0])
	if err != nil {
		return dimension.Vector{}, dimension.Vector{}, err
	}
	b, err := dimension.Parse(args[1])
	if err != nil {
		return dimension.Vector{}, dimension.Vector{}, err
	}
	return a, b, nil
}

func showDimension(cmd *cobra.Command, v dimension.Vector) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	idx, _, err := e.loadIndex(cmd.Context())
	if err != nil {
		return err
	}
	e.printer.Dimension(v, idx.FamiliesFor(v))
	return nil
}
