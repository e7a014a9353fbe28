package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/unitary/internal/store"
	"github.com/papapumpkin/unitary/internal/telemetry"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save and inspect SQLite snapshots of the loaded index",
	Long: `Snapshots record every family and unit (including generated ones) that a
catalog produced, in the SQLite database at db_path (default .unitary.db).`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Load the configured catalog and store it as a new snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, s, err := openSnapshotStore(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		defer s.Close()

		idx, report, err := e.loadIndex(cmd.Context())
		if err != nil {
			return err
		}
		snap, err := s.SaveSnapshot(cmd.Context(), idx, report.Source)
		if err != nil {
			return err
		}
		_ = e.emitter.Emit(telemetry.Event{
			Kind:   telemetry.KindSnapshotSaved,
			Source: report.Source,
			Data: map[string]any{
				"snapshot": snap.ID,
				"families": snap.Families,
				"units":    snap.Units,
			},
		})
		e.printer.Success("saved snapshot " + snap.ID)
		e.printer.Snapshot(snap)
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, s, err := openSnapshotStore(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		defer s.Close()

		snaps, err := s.ListSnapshots(cmd.Context())
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			e.printer.Info("no snapshots in " + e.cfg.DBPath)
			return nil
		}
		for _, snap := range snaps {
			e.printer.Snapshot(snap)
		}
		return nil
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show the families of a snapshot (default: the latest)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, s, err := openSnapshotStore(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		defer s.Close()

		ctx := cmd.Context()
		var snap store.Snapshot
		if len(args) == 1 {
			snap, err = s.Snapshot(ctx, args[0])
		} else {
			snap, err = s.LatestSnapshot(ctx)
		}
		if err != nil {
			return err
		}

		family, _ := cmd.Flags().GetString("family")
		e.printer.Snapshot(snap)
		if family == "" {
			rows, err := s.ListFamilies(ctx, snap.ID)
			if err != nil {
				return err
			}
			e.printer.SnapshotFamilies(rows)
			return nil
		}

		units, err := s.ListUnits(ctx, snap.ID, family)
		if err != nil {
			return err
		}
		if len(units) == 0 {
			return fmt.Errorf("snapshot %s has no family %q", snap.ID, family)
		}
		for _, u := range units {
			if u.Generated && !e.cfg.ShowGenerated {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-28s factor=%g offset=%g %s\n", u.ID, u.Name, u.Factor, u.Offset, u.System)
		}
		return nil
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, s, err := openSnapshotStore(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		defer s.Close()

		if err := s.DeleteSnapshot(cmd.Context(), args[0]); err != nil {
			return err
		}
		e.printer.Success("deleted snapshot " + args[0])
		return nil
	},
}

func init() {
	snapshotShowCmd.Flags().String("family", "", "list the units of this family instead of the families")
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotShowCmd, snapshotDeleteCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func openSnapshotStore(cmd *cobra.Command) (*env, *store.SQLiteStore, error) {
	e, err := newEnv(cmd)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(cmd.Context(), e.cfg.DBPath)
	if err != nil {
		e.Close()
		return nil, nil, err
	}
	return e, s, nil
}
