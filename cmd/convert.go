package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/unitary/internal/index"
	"github.com/papapumpkin/unitary/internal/quantity"
)

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to> | convert <quantity> <to>",
	Short: "Convert a value between units of the same family",
	Long: `Convert a value between two units of one family, for example

  unitary convert 12 km mi
  unitary convert "100 degC" degF

Units are resolved across all families; qualify an ambiguous abbreviation
with its family name ("Mass:g").`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		idx, _, err := e.loadIndex(cmd.Context())
		if err != nil {
			return err
		}

		to := args[len(args)-1]
		if len(args) == 3 {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", quantity.ErrBadQuantity, args[0])
			}
			src, err := idx.Resolve(args[1])
			if err != nil {
				return err
			}
			got, err := quantity.Convert(idx, v, args[1], to)
			if err != nil {
				return err
			}
			e.printer.Conversion(quantity.New(v, src), got)
			return nil
		}

		from, err := quantity.Parse(idx, args[0])
		if err != nil {
			return err
		}
		dst := from.Unit.Family().Lookup(to)
		if dst == nil {
			if dst, err = idx.Resolve(to); err != nil {
				return err
			}
		}
		got, err := from.In(dst)
		if err != nil {
			return err
		}
		e.printer.Conversion(from, got)
		return nil
	},
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Multiply, divide or invert quantities",
	Long: `Combine quantities and report the resulting dimension together with every
family that can express it. When several families share the dimension
(Energy and Torque) pick one with --as.`,
}

var calcMulCmd = &cobra.Command{
	Use:   "mul <quantity> <quantity>",
	Short: "Multiply two quantities",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd, args, quantity.Multiply)
	},
}

var calcDivCmd = &cobra.Command{
	Use:   "div <quantity> <quantity>",
	Short: "Divide two quantities",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd, args, quantity.Divide)
	},
}

var calcInvCmd = &cobra.Command{
	Use:   "inv <quantity>",
	Short: "Take the reciprocal of a quantity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd, args, func(idx *index.Index, a, _ quantity.Quantity) quantity.Derived {
			return quantity.Reciprocal(idx, a)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{calcMulCmd, calcDivCmd, calcInvCmd} {
		c.Flags().String("as", "", "express the result in this family's standard unit")
		c.Flags().String("in", "", "express the result in this unit (implies its family)")
	}
	calcCmd.AddCommand(calcMulCmd, calcDivCmd, calcInvCmd)
	rootCmd.AddCommand(convertCmd, calcCmd)
}

func runCalc(cmd *cobra.Command, args []string, op func(*index.Index, quantity.Quantity, quantity.Quantity) quantity.Derived) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	idx, _, err := e.loadIndex(cmd.Context())
	if err != nil {
		return err
	}

	operands := make([]quantity.Quantity, 2)
	for i, text := range args {
		if operands[i], err = quantity.Parse(idx, text); err != nil {
			return err
		}
	}
	d := op(idx, operands[0], operands[1])

	asFamily, _ := cmd.Flags().GetString("as")
	inUnit, _ := cmd.Flags().GetString("in")
	if asFamily == "" && inUnit == "" {
		e.printer.Derived(d)
		return nil
	}

	var result quantity.Quantity
	switch {
	case inUnit != "":
		target, err := idx.Resolve(inUnit)
		if err != nil {
			return err
		}
		if asFamily != "" && target.Family().Name() != asFamily {
			return fmt.Errorf("%w: unit %s belongs to %s, not %s", quantity.ErrIncompatible, inUnit, target.Family().Name(), asFamily)
		}
		typed, err := d.As(target.Family().Name())
		if err != nil {
			return err
		}
		if result, err = typed.In(target); err != nil {
			return err
		}
	default:
		if result, err = d.As(asFamily); err != nil {
			if errors.Is(err, quantity.ErrNoFamily) {
				e.printer.Derived(d)
			}
			return err
		}
	}
	e.printer.Conversion(quantity.New(d.SI, result.Unit.StandardUnit()), result)
	return nil
}
