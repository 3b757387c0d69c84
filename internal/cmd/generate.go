package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/nagcfg/internal/config"
	"github.com/cameronsjo/nagcfg/internal/generate"
	"github.com/cameronsjo/nagcfg/internal/inventory"
	"github.com/cameronsjo/nagcfg/internal/output"
	"github.com/cameronsjo/nagcfg/internal/render"
	"github.com/cameronsjo/nagcfg/internal/snapshot"
	"github.com/cameronsjo/nagcfg/internal/ui"
)

// ErrServicesSkipped indicates at least one requested service had no template.
var ErrServicesSkipped = errors.New("some services were skipped")

var (
	generateHostname   string
	generateAddress    string
	generateCreateHost bool
	generateServices   []string
	generateParents    []string
	generateHostGroups []string
	generateDevice     string
	generateRules      []string
	generateInventory  string
	generateOutputDir  string
	generateDryRun     bool
	generateNoSnapshot bool
)

// generateCmd renders host and service definitions.
var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Render host and service definitions",
	Long: `Render Nagios definitions for one host, or for every host in an inventory.

Service definitions come from templates whose '#type:' matches --service.
In each template body:
  %%service_description%%  becomes <TYPE>-<hostname>
  %%host_name%%            becomes <hostname>

Override rules (--regexchange pattern:replacement) replace the value of any
directive whose name matches pattern. Rules are tried in order and the
first match wins.

Examples:
  nagcfg generate --hostname web01.example.com --ipaddr 10.0.0.5 \
      --createhost --devicetype server --service ping --service ssh
  nagcfg gen --hostname web01.example.com --service http \
      --regexchange contact_groups:web-team
  nagcfg gen -f hosts.yml -o /etc/nagios4/conf.d`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateHostname, "hostname", "", "Host name to generate definitions for")
	generateCmd.Flags().StringVar(&generateAddress, "ipaddr", "", "Host address (required with --createhost)")
	generateCmd.Flags().BoolVar(&generateCreateHost, "createhost", false, "Include a host definition")
	generateCmd.Flags().StringArrayVar(&generateServices, "service", nil, "Service type to render (repeatable)")
	generateCmd.Flags().StringArrayVar(&generateParents, "parents", nil, "Parent host (repeatable)")
	generateCmd.Flags().StringArrayVar(&generateHostGroups, "hostgroups", nil, "Hostgroup membership (repeatable)")
	generateCmd.Flags().StringVar(&generateDevice, "devicetype", config.DefaultDevice, "Device type for the host icon")
	generateCmd.Flags().StringArrayVar(&generateRules, "regexchange", nil, "Override rule pattern:replacement (repeatable)")
	generateCmd.Flags().StringVarP(&generateInventory, "inventory", "f", "", "YAML inventory of hosts to render")
	generateCmd.Flags().StringVarP(&generateOutputDir, "output-dir", "o", "", "Write one file per host into this directory")
	generateCmd.Flags().BoolVarP(&generateDryRun, "dry-run", "n", false, "Show what would be written without writing")
	generateCmd.Flags().BoolVar(&generateNoSnapshot, "no-snapshot", false, "Do not snapshot the output directory before overwriting files")

	generateCmd.MarkFlagsMutuallyExclusive("hostname", "inventory")
	registerCompletions()

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Reject bad rules before touching the filesystem.
	if _, err := render.ParseRules(generateRules); err != nil {
		return err
	}

	reqs, err := generateRequests()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	g := &generate.Generator{
		Config:     cfg,
		Catalog:    cat,
		HostGroups: loadHostGroups(cfg),
	}

	hosts, problems, err := g.Run(reqs)
	if err != nil {
		return err
	}
	for _, p := range problems {
		if generate.IsTemplateMissing(p.Err) {
			ui.Warning("%s: no template for service type %q (available: %v)", p.Hostname, p.Service, cat.Types())
			continue
		}
		ui.Warning("%v", p)
	}

	dir := cfg.OutputDir()
	if generateOutputDir != "" {
		dir = generateOutputDir
	}

	w, err := output.NewWriter(dir, cfg.Output.Filename, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	w.DryRun = generateDryRun
	if !generateNoSnapshot {
		w.Snapshots = snapshot.New(cfg.SnapshotDir(), cfg.Snapshots.Keep)
	}

	results, err := w.Write(hosts)
	if err != nil {
		return err
	}
	if w.Snapshot != "" {
		ui.Info("Previous output saved as %s (undo with 'nagcfg rollback')", w.Snapshot)
	}

	if dir != "" {
		reportResults(results, generateDryRun)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %d problem(s)", ErrServicesSkipped, len(problems))
	}
	return nil
}

// generateRequests builds requests from either the inventory or the host flags.
// Rules given on the command line apply to every host after its own rules.
func generateRequests() ([]generate.Request, error) {
	if generateInventory != "" {
		inv, err := inventory.Load(generateInventory)
		if err != nil {
			return nil, err
		}
		reqs := inv.Requests()
		for i := range reqs {
			reqs[i].Rules = append(reqs[i].Rules, generateRules...)
		}
		return reqs, nil
	}

	if generateHostname == "" {
		return nil, errors.New("--hostname or --inventory is required")
	}

	return []generate.Request{{
		Hostname:   generateHostname,
		Address:    generateAddress,
		DeviceType: generateDevice,
		CreateHost: generateCreateHost,
		Services:   generateServices,
		Parents:    generateParents,
		HostGroups: generateHostGroups,
		Rules:      generateRules,
	}}, nil
}

func reportResults(results []output.Result, dryRun bool) {
	var written, unchanged int
	for _, r := range results {
		if r.Changed {
			written++
		} else {
			unchanged++
		}
	}

	switch {
	case dryRun:
		ui.Info("Dry run: %d file(s) would change, %d unchanged", written, unchanged)
	case written == 0:
		ui.Success("All %d file(s) up to date", unchanged)
	default:
		ui.Success("Wrote %d file(s), %d unchanged", written, unchanged)
	}

	for _, r := range results {
		if r.Changed {
			ui.Item(r.Hostname, r.Path)
		}
	}
}
