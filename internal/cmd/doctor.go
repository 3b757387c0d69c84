package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/nagcfg/internal/catalog"
	"github.com/cameronsjo/nagcfg/internal/config"
	"github.com/cameronsjo/nagcfg/internal/generate"
	"github.com/cameronsjo/nagcfg/internal/inventory"
	"github.com/cameronsjo/nagcfg/internal/preflight"
	"github.com/cameronsjo/nagcfg/internal/ui"
)

// ErrChecksFailed indicates at least one required preflight check failed.
var ErrChecksFailed = errors.New("preflight checks failed")

// doctorCmd runs pre-flight checks.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the project can generate configuration",
	Long: `Check the service template directory, the hostgroup file, the output
directory, and whether a nagios binary is available to verify output.

With --inventory the inventory is also validated without rendering anything.

Examples:
  nagcfg doctor
  nagcfg doctor -f hosts.yml`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorInventory string

func init() {
	doctorCmd.Flags().StringVarP(&doctorInventory, "inventory", "f", "", "Also validate this YAML inventory")
	doctorCmd.MarkFlagFilename("inventory", "yml", "yaml")

	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ui.Blue.Fprintln(out, "Running pre-flight checks...")
	fmt.Fprintln(out)

	cfg, err := loadConfig()
	if err != nil {
		ui.Red.Fprintf(out, "  x Configuration: %v\n", err)
		return fmt.Errorf("%w: %v", ErrChecksFailed, err)
	}
	ui.Green.Fprintf(out, "  * Project root: %s\n", cfg.Root)

	results := preflight.CheckProject(cfg)
	if doctorInventory != "" {
		results = append(results, checkInventory(cfg, doctorInventory)...)
	}

	passed, failed, warned := 1, 0, 0
	for _, r := range results {
		switch {
		case r.OK:
			ui.Green.Fprintf(out, "  * %s: %s\n", r.Name, r.Detail)
			passed++
		case r.Required:
			ui.Red.Fprintf(out, "  x %s: %s\n", r.Name, r.Detail)
			failed++
		default:
			ui.Yellow.Fprintf(out, "  ! %s: %s\n", r.Name, r.Detail)
			warned++
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Summary: ")
	ui.Green.Fprintf(out, "%d passed", passed)
	fmt.Fprintf(out, ", ")
	ui.Yellow.Fprintf(out, "%d warnings", warned)
	fmt.Fprintf(out, ", ")
	ui.Red.Fprintf(out, "%d failed\n", failed)

	if failed > 0 {
		return fmt.Errorf("%w: %d", ErrChecksFailed, failed)
	}
	if warned > 0 {
		fmt.Fprintln(out)
		ui.Yellow.Fprintln(out, "Ready to generate, but check warnings.")
	}
	return nil
}

// checkInventory validates an inventory the way generate would, and warns
// about requested service types that have no template.
func checkInventory(cfg *config.Config, path string) []preflight.Result {
	name := "inventory " + path

	inv, err := inventory.Load(path)
	if err != nil {
		return []preflight.Result{{Name: name, Required: true, Detail: err.Error()}}
	}
	reqs := inv.Requests()

	cat, err := catalog.Discover(cfg.ServiceTemplatesDir(), cfg.Templates.Extension)
	if err != nil {
		return []preflight.Result{{Name: name, Required: true, Detail: err.Error()}}
	}

	g := &generate.Generator{
		Config:     cfg,
		Catalog:    cat,
		HostGroups: loadHostGroups(cfg),
	}
	if err := g.Validate(reqs); err != nil {
		return []preflight.Result{{Name: name, Required: true, Detail: err.Error()}}
	}

	results := []preflight.Result{{Name: name, OK: true, Detail: fmt.Sprintf("%d host(s)", len(reqs))}}
	for _, req := range reqs {
		for _, svc := range req.Services {
			if !cat.Has(svc) {
				results = append(results, preflight.Result{
					Name:   name,
					Detail: fmt.Sprintf("%s: no template for service type %q", req.Hostname, svc),
				})
			}
		}
	}
	return results
}
