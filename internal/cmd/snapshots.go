package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/nagcfg/internal/config"
	"github.com/cameronsjo/nagcfg/internal/lock"
	"github.com/cameronsjo/nagcfg/internal/snapshot"
	"github.com/cameronsjo/nagcfg/internal/ui"
)

// ErrNoOutputDir indicates a command that needs an output directory got none.
var ErrNoOutputDir = errors.New("no output directory configured (set output.dir or pass --output-dir)")

var rollbackOutputDir string

// snapshotsCmd lists snapshots.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List snapshots of the output directory",
	Long:  "List the snapshots taken before generate overwrote files in the output directory, newest first.",
	Args:  cobra.NoArgs,
	RunE:  runSnapshots,
}

// rollbackCmd restores a snapshot.
var rollbackCmd = &cobra.Command{
	Use:   "rollback [snapshot]",
	Short: "Restore a snapshot into the output directory",
	Long: `Restore the files of a snapshot into the output directory.

The current output is snapshotted first, so a rollback can itself be undone.
Files that are not part of the snapshot are left in place.

Examples:
  nagcfg rollback                                     # Restore the newest snapshot
  nagcfg rollback snapshot-20240101-120000.000000000`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeSnapshotNames,
	RunE:              runRollback,
}

func init() {
	rollbackCmd.Flags().StringVarP(&rollbackOutputDir, "output-dir", "o", "", "Output directory to restore into")

	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(rollbackCmd)
}

// snapshotStore returns the snapshot store configured in cfg.
func snapshotStore(cfg *config.Config) *snapshot.Store {
	return snapshot.New(cfg.SnapshotDir(), cfg.Snapshots.Keep)
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snapshots, err := snapshotStore(cfg).List()
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		ui.Info("No snapshots in %s", cfg.SnapshotDir())
		return nil
	}

	ui.Header("Snapshots in %s", cfg.SnapshotDir())
	out := cmd.OutOrStdout()
	for _, s := range snapshots {
		fmt.Fprintf(out, "%-36s %s  %d file(s)\n", s.Name, s.Created.Format("2006-01-02 15:04:05"), len(s.Files))
	}
	return nil
}

func runRollback(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.OutputDir()
	if rollbackOutputDir != "" {
		dir = rollbackOutputDir
	}
	if dir == "" {
		return ErrNoOutputDir
	}

	store := snapshotStore(cfg)

	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		latest, err := store.Latest()
		if err != nil {
			return err
		}
		name = latest.Name
	}

	var backup string
	var files []string
	err = lock.WithLock(dir, "generate", func() error {
		var err error
		backup, files, err = store.Restore(dir, name)
		return err
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		fmt.Fprintln(out, f)
	}
	ui.Success("Restored %d file(s) from %s", len(files), name)
	if backup != "" {
		ui.Info("Previous output saved as %s", backup)
	}
	return nil
}

// completeSnapshotNames completes snapshot names for rollback.
func completeSnapshotNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Don't complete if we already have an argument
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	snapshots, err := snapshotStore(cfg).List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, s := range snapshots {
		if strings.HasPrefix(s.Name, toComplete) {
			names = append(names, s.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
