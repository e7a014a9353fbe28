package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/unitary/internal/dimension"
	"github.com/papapumpkin/unitary/internal/unit"
)

var familiesCmd = &cobra.Command{
	Use:   "families [dimension]",
	Short: "List unit families, optionally only those of one dimension",
	Args:  cobra.MaximumNArgs(1),
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

		var families []*unit.Family
		if len(args) == 1 {
			v, err := dimension.Parse(args[0])
			if err != nil {
				return err
			}
			families = idx.FamiliesFor(v)
		} else {
			families = idx.Families()
		}
		e.printer.Families(families)
		return nil
	},
}

var unitsCmd = &cobra.Command{
	Use:   "units <family>",
	Short: "List the units of a family in registration order",
	Args:  cobra.ExactArgs(1),
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
		f, ok := idx.Family(args[0])
		if !ok {
			return fmt.Errorf("unknown family %q", args[0])
		}
		e.printer.Units(f, e.cfg.ShowGenerated)
		return nil
	},
}

func init() {
	unitsCmd.Flags().BoolP("generated", "g", false, "include units generated from SI prefixes")
	_ = viper.BindPFlag("show_generated", unitsCmd.Flags().Lookup("generated"))

	rootCmd.AddCommand(familiesCmd, unitsCmd)
}
