package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	inv, err := Load(filepath.Join("testdata", "hosts.yml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"contact_groups:noc@example.com"}, inv.Rules)
	require.Len(t, inv.Hosts, 3)
	assert.Equal(t, "test1.example.com", inv.Hosts[0].Hostname)
	assert.Equal(t, []string{"server", "dns"}, inv.Hosts[0].HostGroups)
	assert.Equal(t, "switch", inv.Hosts[1].Device)
}

func TestRequests(t *testing.T) {
	inv, err := Load(filepath.Join("testdata", "hosts.yml"))
	require.NoError(t, err)

	reqs := inv.Requests()
	require.Len(t, reqs, 3)

	first := reqs[0]
	assert.True(t, first.CreateHost)
	assert.Equal(t, "1.2.3.4", first.Address)
	assert.Equal(t, "server", first.DeviceType)
	assert.Equal(t, []string{"switch1.example.com", "switch2.example.com"}, first.Parents)
	assert.Equal(t, []string{"ping", "ssh"}, first.Services)
	// Host rules come first so they win over inventory-wide rules.
	assert.Equal(t, []string{"contact_groups:user@example.com", "contact_groups:noc@example.com"}, first.Rules)

	assert.True(t, reqs[1].CreateHost)
	assert.Empty(t, reqs[1].Services)
	assert.Equal(t, []string{"contact_groups:noc@example.com"}, reqs[1].Rules)

	assert.False(t, reqs[2].CreateHost)
}

func TestLoad_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts.yml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [a:b]\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts.yml")
	require.NoError(t, os.WriteFile(path, []byte("hosts: {hostname: [\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse inventory")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "hosts.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read inventory")
}
