package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	parents := []string{"switch1"}
	ctx, err := NewContext(Options{
		Hostname:    " h1.example.com ",
		Address:     "1.2.3.4",
		ServiceType: "ping",
		Rules:       []string{"contact_groups:ops"},
		Parents:     parents,
	})
	require.NoError(t, err)

	assert.Equal(t, "h1.example.com", ctx.Hostname)
	assert.Equal(t, "1.2.3.4", ctx.Address)
	assert.Equal(t, "ping", ctx.ServiceType)
	require.Len(t, ctx.Rules, 1)
	assert.Nil(t, ctx.HostGroups)

	parents[0] = "mutated"
	assert.Equal(t, []string{"switch1"}, ctx.Parents)
}

func TestNewContext_MissingHostname(t *testing.T) {
	_, err := NewContext(Options{Hostname: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingHostname))
}

func TestNewContext_MalformedRule(t *testing.T) {
	ctx, err := NewContext(Options{Hostname: "h1", Rules: []string{"ok:1", "no-colon"}})
	require.Error(t, err)
	assert.Nil(t, ctx)
	assert.True(t, errors.Is(err, ErrMalformedOverrideRule))
}

func TestContext_ForService(t *testing.T) {
	base, err := NewContext(Options{Hostname: "h1"})
	require.NoError(t, err)

	ping := base.ForService("ping")
	ssh := base.ForService("ssh")

	assert.Equal(t, "", base.ServiceType)
	assert.Equal(t, "ping", ping.ServiceType)
	assert.Equal(t, "ssh", ssh.ServiceType)
	assert.Equal(t, "h1", ssh.Hostname)
}
