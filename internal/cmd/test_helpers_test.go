package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/nagcfg/internal/ui"
)

// resetFlags restores every flag on cmd and its children to its default.
// Cobra commands are package globals, so values parsed by one test would
// otherwise leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCmd executes the root command with the given args and returns the
// command output. ui messages are captured separately and discarded.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	prevOut, prevNoColor := ui.Out, color.NoColor
	ui.Out = new(bytes.Buffer)
	color.NoColor = true
	t.Cleanup(func() {
		ui.Out = prevOut
		color.NoColor = prevNoColor
	})

	buf := new(bytes.Buffer)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	err := rootCmd.Execute()
	return buf.String(), err
}

// setupProject creates a project directory with service templates and a
// hostgroup file, and makes it the working directory for the test.
func setupProject(t *testing.T) string {
	t.Helper()
	resetFlags(rootCmd)
	dir := t.TempDir()

	svcDir := filepath.Join(dir, "templates", "service")
	require.NoError(t, os.MkdirAll(svcDir, 0755))

	templates := map[string]string{
		"ping.t": "#type: ping\nuse generic-service\nhost_name %%host_name%%\nservice_description %%service_description%%\ncheck_command check_ping!100.0,20%!500.0,60%\ncontact_groups admins\n",
		"ssh.t":  "#type: ssh\nuse generic-service\nhost_name %%host_name%%\nservice_description %%service_description%%\ncheck_command check_ssh\n",
	}
	for name, content := range templates {
		require.NoError(t, os.WriteFile(filepath.Join(svcDir, name), []byte(content), 0644))
	}

	hostgroups := "define hostgroup {\n  hostgroup_name server\n  alias Servers\n}\n\ndefine hostgroup {\n  hostgroup_name dns\n  alias DNS\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hostgroups.cfg"), []byte(hostgroups), 0644))

	prevWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prevWd) })
	return dir
}
