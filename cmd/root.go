package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/unitary/internal/catalog"
	"github.com/papapumpkin/unitary/internal/config"
	"github.com/papapumpkin/unitary/internal/index"
	"github.com/papapumpkin/unitary/internal/telemetry"
	"github.com/papapumpkin/unitary/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "unitary",
	Short: "SI dimension algebra and unit registry",
	Long: `Unitary parses and combines SI dimension strings, loads unit families
from TOML or YAML catalogs and converts quantities between their units.

Without --catalog the embedded SI catalog is used.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .unitary.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("catalog", "", "unit catalog file, TOML or YAML (default embedded SI catalog)")
	rootCmd.PersistentFlags().Bool("separator", false, `print dimensions as "kg.m/s2" instead of "kgm/s2"`)

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("catalog_path", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("separator", rootCmd.PersistentFlags().Lookup("separator"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".unitary")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("UNITARY")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// env bundles what most subcommands need: the loaded configuration, a
// printer bound to the command's writers and an optional telemetry emitter.
type env struct {
	cfg     config.Config
	printer *ui.Printer
	emitter *telemetry.Emitter
}

func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	printer := ui.New()
	printer.Out = cmd.OutOrStdout()
	printer.Err = cmd.ErrOrStderr()
	printer.Separator = cfg.Separator

	e := &env{cfg: cfg, printer: printer}
	if cfg.TelemetryPath != "" {
		em, err := telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			return nil, err
		}
		e.emitter = em
	}
	return e, nil
}

func (e *env) Close() error {
	return e.emitter.Close()
}

// loadIndex installs the configured catalog into a fresh index.
func (e *env) loadIndex(ctx context.Context) (*index.Index, catalog.Report, error) {
	f, err := catalog.Load(e.cfg.CatalogPath)
	if err != nil {
		return nil, catalog.Report{}, err
	}
	idx := index.New()
	report, err := catalog.Install(ctx, idx, f, catalog.WithEmitter(e.emitter))
	if err != nil {
		return nil, report, err
	}
	if e.cfg.Verbose {
		e.printer.InstallReport(report)
	}
	return idx, report, nil
}
