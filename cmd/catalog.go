package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/unitary/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and print unit catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a catalog file for structural and reference errors",
	Long: `Validates a TOML or YAML catalog without installing it. Without a path the
configured catalog (or the embedded SI catalog) is checked. The catalog is
then test-installed into an empty index so that abbreviation conflicts are
reported too.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogValidate,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print a catalog in TOML or YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogShow,
}

func init() {
	catalogShowCmd.Flags().StringP("format", "f", "toml", "output format: toml or yaml")
	catalogCmd.AddCommand(catalogValidateCmd, catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

func catalogArg(e *env, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return e.cfg.CatalogPath
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	f, err := catalog.Load(catalogArg(e, args))
	if err != nil {
		e.printer.Error(err.Error())
		return err
	}

	errs := catalog.Validate(f)
	e.printer.ValidateResult(f, errs)
	if len(errs) > 0 {
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}

	// Registration conflicts only surface when the units are registered.
	e.cfg.CatalogPath = catalogArg(e, args)
	if _, _, err := e.loadIndex(cmd.Context()); err != nil {
		e.printer.Error(err.Error())
		return err
	}
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	name, _ := cmd.Flags().GetString("format")
	format, err := catalog.ParseFormat(name)
	if err != nil {
		return err
	}
	f, err := catalog.Load(catalogArg(e, args))
	if err != nil {
		return err
	}
	return catalog.Encode(cmd.OutOrStdout(), f, format)
}
