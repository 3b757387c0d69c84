package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost_NoParentsNoHostgroups(t *testing.T) {
	ctx := newContext(t, Options{Hostname: "test1.example.com", Address: "1.2.3.4"})

	block := Host(ctx)

	assert.Equal(t, KindHost, block.Kind)
	require.Len(t, block.Lines, 20)
	assert.Equal(t, "#parents                           NONE", block.Lines[3])
	assert.Equal(t, "#hostgroups                        NONE", block.Lines[4])
}

func TestHost_Parents(t *testing.T) {
	ctx := newContext(t, Options{
		Hostname: "test1.example.com",
		Address:  "1.2.3.4",
		Parents:  []string{"switch1.example.com", "switch2.example.com"},
	})

	block := Host(ctx)

	assert.Equal(t, "parents                            switch1.example.com, switch2.example.com", block.Lines[3])
}

func TestHost_HostGroups(t *testing.T) {
	ctx := newContext(t, Options{
		Hostname:   "test1.example.com",
		Address:    "1.2.3.4",
		HostGroups: []string{"server", "dns"},
	})

	block := Host(ctx)

	assert.Equal(t, "hostgroups                         server, dns", block.Lines[4])
}

func TestHost_FieldOrder(t *testing.T) {
	ctx := newContext(t, Options{Hostname: "h1", Address: "10.0.0.1", DeviceLabel: "Switch"})

	block := Host(ctx)

	keys := make([]string, 0, len(block.Lines))
	for _, line := range block.Lines {
		keys = append(keys, strings.Fields(line)[0])
	}
	assert.Equal(t, []string{
		"host_name", "alias", "address", "#parents", "#hostgroups",
		"notifications_enabled", "event_handler_enabled", "flap_detection_enabled",
		"failure_prediction_enabled", "process_perf_data", "retain_status_information",
		"retain_nonstatus_information", "check_command", "max_check_attempts",
		"notification_interval", "notification_period", "notification_options",
		"contact_groups", "icon_image", "icon_image_alt",
	}, keys)
}

func TestHost_Defaults(t *testing.T) {
	ctx := newContext(t, Options{Hostname: "h1", Address: "10.0.0.1"})

	values := map[string]string{}
	for _, line := range Host(ctx).Lines {
		fields := strings.Fields(line)
		values[fields[0]] = strings.Join(fields[1:], " ")
	}

	assert.Equal(t, "h1", values["host_name"])
	assert.Equal(t, "h1", values["alias"])
	assert.Equal(t, "10.0.0.1", values["address"])
	assert.Equal(t, "check-host-alive", values["check_command"])
	assert.Equal(t, "10", values["max_check_attempts"])
	assert.Equal(t, "24x7", values["notification_period"])
	assert.Equal(t, "d,u,r", values["notification_options"])
	assert.Equal(t, "admins", values["contact_groups"])
	assert.Equal(t, "base/linux40.png", values["icon_image"])
	assert.Equal(t, DefaultDeviceLabel, values["icon_image_alt"])
}

func TestHost_DeviceLabel(t *testing.T) {
	ctx := newContext(t, Options{Hostname: "h1", Address: "10.0.0.1", DeviceLabel: "Debian GNU/Linux"})

	block := Host(ctx)

	assert.Equal(t, "icon_image_alt                     Debian GNU/Linux", block.Lines[len(block.Lines)-1])
}

func TestHost_IgnoresOverrideRules(t *testing.T) {
	ctx := newContext(t, Options{Hostname: "h1", Address: "10.0.0.1", Rules: []string{"contact_groups:ops"}})

	block := Host(ctx)

	assert.Contains(t, block.String(), "contact_groups                     admins")
}
