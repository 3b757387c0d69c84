package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingHostname indicates a context was built without a hostname.
var ErrMissingHostname = errors.New("hostname is required")

// Options are the raw inputs for a render context, typically straight from
// command-line flags or an inventory file.
type Options struct {
	Hostname    string
	Address     string
	ServiceType string
	Rules       []string
	Parents     []string
	HostGroups  []string
	DeviceLabel string
}

// Context is the validated input for rendering one host or service block.
// It is never modified after construction.
type Context struct {
	Hostname    string
	Address     string
	ServiceType string
	Rules       []Rule
	Parents     []string
	HostGroups  []string
	DeviceLabel string
}

// NewContext validates opts and parses its override rules. A malformed rule
// fails the whole context, so nothing is rendered with a partial rule set.
func NewContext(opts Options) (*Context, error) {
	hostname := strings.TrimSpace(opts.Hostname)
	if hostname == "" {
		return nil, ErrMissingHostname
	}

	rules, err := ParseRules(opts.Rules)
	if err != nil {
		return nil, fmt.Errorf("host %s: %w", hostname, err)
	}

	return &Context{
		Hostname:    hostname,
		Address:     strings.TrimSpace(opts.Address),
		ServiceType: opts.ServiceType,
		Rules:       rules,
		Parents:     clone(opts.Parents),
		HostGroups:  clone(opts.HostGroups),
		DeviceLabel: opts.DeviceLabel,
	}, nil
}

// ForService returns a copy of the context targeting serviceType.
func (c *Context) ForService(serviceType string) *Context {
	out := *c
	out.ServiceType = serviceType
	return &out
}

func clone(ss []string) []string {
	if len(ss) == 0 {
		return nil
	}
	return append([]string(nil), ss...)
}
