package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/nagcfg/internal/catalog"
	"github.com/cameronsjo/nagcfg/internal/ui"
)

// typesCmd lists the service types in the template catalog.
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List available service types",
	Long:  "List every service type declared by a template in the service template directory, followed by the host templates found.",
	Args:  cobra.NoArgs,
	RunE:  runTypes,
}

// hostgroupsCmd lists hostgroups from the hostgroup file.
var hostgroupsCmd = &cobra.Command{
	Use:   "hostgroups",
	Short: "List known hostgroups",
	Long:  "List the hostgroup_name entries from the configured hostgroup file.",
	Args:  cobra.NoArgs,
	RunE:  runHostGroups,
}

func init() {
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(hostgroupsCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	ui.Header("Service types in %s", cfg.ServiceTemplatesDir())
	if cat.Len() == 0 {
		ui.Warning("No templates with a #type: line")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, name := range cat.Types() {
		tmpl, err := cat.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-20s %s\n", name, filepath.Base(tmpl.Path))
	}

	hosts, err := catalog.HostTemplates(cfg.HostTemplatesDir(), cfg.Templates.Extension)
	if err != nil {
		return err
	}
	if len(hosts) > 0 {
		ui.Header("Host templates in %s", cfg.HostTemplatesDir())
		for _, path := range hosts {
			fmt.Fprintf(out, "%-20s %s\n", "(host)", filepath.Base(path))
		}
	}
	return nil
}

func runHostGroups(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	groups, err := catalog.LoadHostGroups(cfg.HostGroupFile())
	if err != nil {
		return err
	}

	ui.Header("Hostgroups in %s", cfg.HostGroupFile())
	out := cmd.OutOrStdout()
	for _, g := range groups {
		fmt.Fprintln(out, g)
	}
	return nil
}
