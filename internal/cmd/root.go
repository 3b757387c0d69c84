// Package cmd provides the CLI commands for nagcfg.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/nagcfg/internal/logging"
)

const version = "0.3.0"

var (
	configFile string
	verbosity  int
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nagcfg",
	Short: "Generate Nagios host and service definitions from templates",
	Long: `nagcfg - Nagios configuration generator

Renders Nagios host and service definitions from a directory of service
templates. Each template declares its service type with a '#type: <name>'
line; everything after that line is the body of the service definition.

GENERATE
  generate, gen         Render definitions for one host or an inventory
    --createhost        Include a host definition
    --service <type>    Add a service (repeatable)
    --regexchange p:r   Replace the value of directives matching p with r
    --inventory, -f     Render every host in a YAML inventory
    --output-dir, -o    Write one file per host instead of stdout
    --dry-run, -n       Show what would be written
    --no-snapshot       Skip the snapshot taken before overwriting files

CATALOG
  types                 List service types found in the template directory
  hostgroups            List hostgroups from the hostgroup file

SNAPSHOTS
  snapshots             List snapshots of the output directory
  rollback [name]       Restore a snapshot (default: the newest)

DIAGNOSTICS
  doctor                Check templates, hostgroups and output directory`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbosity)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to nagcfg.yml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")

	rootCmd.AddCommand(completionCmd)

	rootCmd.SetVersionTemplate("nagcfg version {{.Version}}\n")
}
