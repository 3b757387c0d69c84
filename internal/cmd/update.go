package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/nagcfg/internal/ui"
	"github.com/cameronsjo/nagcfg/internal/update"
)

// updateTimeout bounds release detection and download.
const updateTimeout = 2 * time.Minute

var updateCheckOnly bool

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"selfupdate"},
	Short:   "Update nagcfg to the latest version",
	Long: `Update nagcfg to the latest version from GitHub releases.

Examples:
  nagcfg update           # Update to latest version
  nagcfg update --check   # Check for updates without installing`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Only check for updates, don't install")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
	defer cancel()

	ui.Info("Current version: %s (%s)", version, update.GetPlatformInfo())
	ui.Info("Checking for updates...")

	var release *update.Release
	var err error
	if updateCheckOnly {
		release, _, err = update.CheckForUpdate(ctx, version)
	} else {
		release, err = update.Update(ctx, version)
	}
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	if release == nil {
		ui.Success("You're running the latest version!")
		return nil
	}

	if updateCheckOnly {
		ui.Success("New version available: %s (released %s)", release.Version, release.PublishedAt)
		ui.Info("To update, run: nagcfg update")
	} else {
		ui.Success("Successfully updated to version %s!", release.Version)
	}

	if lines := update.ChangelogExcerpt(release.Changelog, 10); len(lines) > 0 {
		ui.Yellow.Fprintln(ui.Out, "What's new:")
		for _, line := range lines {
			fmt.Fprintf(ui.Out, "  %s\n", line)
		}
	}
	return nil
}
