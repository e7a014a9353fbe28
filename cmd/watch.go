package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/unitary/internal/catalog"
	"github.com/papapumpkin/unitary/internal/store"
	"github.com/papapumpkin/unitary/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Reinstall a catalog file whenever it changes",
	Long: `Watches a catalog file and reinstalls it into a fresh index after every
burst of writes, reporting the result. A failed reload keeps the previous
index. With --snapshot every successful reload is saved to db_path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("snapshot", false, "save a snapshot after every successful reload")
	watchCmd.Flags().Int("debounce-ms", 100, "quiet period after the last write before reloading")
	_ = viper.BindPFlag("watch.debounce_ms", watchCmd.Flags().Lookup("debounce-ms"))
	rootCmd.AddCommand(watchCmd)
}

// setupSignalContext returns a context that is canceled on SIGINT or SIGTERM.
func setupSignalContext(parent context.Context, printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			printer.Info("\nshutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func runWatch(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	path := catalogArg(e, args)
	if path == "" {
		return errors.New("watch needs a catalog file: pass a path or set catalog_path")
	}
	e.cfg.CatalogPath = path

	var db *store.SQLiteStore
	if snap, _ := cmd.Flags().GetBool("snapshot"); snap {
		if db, err = store.Open(cmd.Context(), e.cfg.DBPath); err != nil {
			return err
		}
		defer db.Close()
	}

	ctx, cancel := setupSignalContext(cmd.Context(), e.printer)
	defer cancel()

	// The initial install must succeed; later failures only keep the
	// previous index.
	_, report, err := e.loadIndex(ctx)
	if err != nil {
		return err
	}
	if !e.cfg.Verbose {
		e.printer.InstallReport(report)
	}

	w, err := catalog.NewWatcher(path,
		catalog.WithEmitter(e.emitter),
		catalog.WithDebounce(time.Duration(e.cfg.Watch.DebounceMS)*time.Millisecond))
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()
	e.printer.Info("watching " + w.Path + " (ctrl-c to stop)")

	for {
		select {
		case <-ctx.Done():
			return nil
		case r, ok := <-w.Changes:
			if !ok {
				return nil
			}
			e.printer.Reload(r)
			if r.Err != nil || db == nil {
				continue
			}
			snap, err := db.SaveSnapshot(ctx, r.Index, r.Report.Source)
			if err != nil {
				e.printer.Error(err.Error())
				continue
			}
			e.printer.Snapshot(snap)
		}
	}
}
