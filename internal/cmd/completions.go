package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/nagcfg/internal/catalog"
)

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a shell completion script for nagcfg.

Examples:
  source <(nagcfg completion bash)
  nagcfg completion zsh > "${fpath[1]}/_nagcfg"
  nagcfg completion fish > ~/.config/fish/completions/nagcfg.fish`,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		default:
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		}
	},
}

// filterPrefix returns the candidates starting with prefix.
func filterPrefix(candidates []string, prefix string) []string {
	var names []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			names = append(names, c)
		}
	}
	return names
}

// completeServiceTypes completes --service with the types in the template catalog.
func completeServiceTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	cat, err := catalog.Discover(cfg.ServiceTemplatesDir(), cfg.Templates.Extension)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return filterPrefix(cat.Types(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDeviceTypes completes --devicetype with the configured devices.
func completeDeviceTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return filterPrefix(cfg.DeviceTypes(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeHostGroups completes --hostgroups from the hostgroup file.
func completeHostGroups(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	groups, err := catalog.LoadHostGroups(cfg.HostGroupFile())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return filterPrefix(groups, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// registerCompletions registers all dynamic flag completions.
// It must run after the generate flags are defined.
func registerCompletions() {
	completions := map[string]func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective){
		"service":    completeServiceTypes,
		"devicetype": completeDeviceTypes,
		"hostgroups": completeHostGroups,
	}
	for flag, fn := range completions {
		if err := generateCmd.RegisterFlagCompletionFunc(flag, fn); err != nil {
			// Silently ignore - completions are optional
			_ = err
		}
	}

	generateCmd.MarkFlagFilename("inventory", "yml", "yaml")
	generateCmd.MarkFlagDirname("output-dir")
}
