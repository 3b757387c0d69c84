package render

import (
	"fmt"
	"strings"
)

// hostKeyWidth is the key column width in host blocks.
const hostKeyWidth = 35

// Fixed host attributes, in output order.
var hostDefaults = []struct{ key, value string }{
	{"notifications_enabled", "1"},
	{"event_handler_enabled", "1"},
	{"flap_detection_enabled", "1"},
	{"failure_prediction_enabled", "1"},
	{"process_perf_data", "1"},
	{"retain_status_information", "1"},
	{"retain_nonstatus_information", "1"},
	{"check_command", "check-host-alive"},
	{"max_check_attempts", "10"},
	{"notification_interval", "0"},
	{"notification_period", "24x7"},
	{"notification_options", "d,u,r"},
	{"contact_groups", "admins"},
	{"icon_image", "base/linux40.png"},
}

// DefaultDeviceLabel is used for icon_image_alt when the context has none.
const DefaultDeviceLabel = "Unknown"

// Host renders the host definition for ctx.
func Host(ctx *Context) *Block {
	lines := []string{
		hostLine("host_name", ctx.Hostname),
		hostLine("alias", ctx.Hostname),
		hostLine("address", ctx.Address),
		listLine("parents", ctx.Parents),
		listLine("hostgroups", ctx.HostGroups),
	}

	for _, attr := range hostDefaults {
		lines = append(lines, hostLine(attr.key, attr.value))
	}

	label := ctx.DeviceLabel
	if label == "" {
		label = DefaultDeviceLabel
	}
	lines = append(lines, hostLine("icon_image_alt", label))

	return &Block{Kind: KindHost, Lines: lines}
}

func hostLine(key, value string) string {
	return fmt.Sprintf("%-*s%s", hostKeyWidth, key, value)
}

// listLine joins values, or emits a commented placeholder when there are none.
func listLine(key string, values []string) string {
	if len(values) == 0 {
		return hostLine("#"+key, "NONE")
	}
	return hostLine(key, strings.Join(values, ", "))
}
