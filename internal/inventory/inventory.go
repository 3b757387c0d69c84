// Package inventory loads a YAML list of hosts for batch generation.
//
//	rules:
//	  - contact_groups:ops@example.com
//	hosts:
//	  - hostname: test1.example.com
//	    address: 1.2.3.4
//	    device: server
//	    parents: [switch1.example.com]
//	    hostgroups: [server, dns]
//	    services: [ping, ssh]
//	    rules:
//	      - notification_period:workhours
//
// Host rules are tried before the inventory-wide rules, so a host can
// override a rule that applies to everyone.
package inventory

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/nagcfg/internal/generate"
)

// ErrEmpty indicates an inventory without hosts.
var ErrEmpty = errors.New("inventory has no hosts")

// Host is one inventory entry.
type Host struct {
	Hostname   string   `yaml:"hostname"`
	Address    string   `yaml:"address,omitempty"`
	Device     string   `yaml:"device,omitempty"`
	CreateHost *bool    `yaml:"createhost,omitempty"`
	Parents    []string `yaml:"parents,omitempty"`
	HostGroups []string `yaml:"hostgroups,omitempty"`
	Services   []string `yaml:"services,omitempty"`
	Rules      []string `yaml:"rules,omitempty"`
}

// Inventory is a set of hosts plus rules shared by all of them.
type Inventory struct {
	Rules []string `yaml:"rules,omitempty"`
	Hosts []Host   `yaml:"hosts"`
}

// Load reads an inventory file.
func Load(path string) (*Inventory, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}

	var inv Inventory
	if err := yaml.Unmarshal(content, &inv); err != nil {
		return nil, fmt.Errorf("parse inventory %s: %w", path, err)
	}

	if len(inv.Hosts) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return &inv, nil
}

// Requests converts the inventory into generation requests. A host block is
// created unless the entry sets createhost: false.
func (inv *Inventory) Requests() []generate.Request {
	reqs := make([]generate.Request, 0, len(inv.Hosts))
	for _, h := range inv.Hosts {
		createHost := true
		if h.CreateHost != nil {
			createHost = *h.CreateHost
		}

		rules := make([]string, 0, len(h.Rules)+len(inv.Rules))
		rules = append(rules, h.Rules...)
		rules = append(rules, inv.Rules...)

		reqs = append(reqs, generate.Request{
			Hostname:   h.Hostname,
			Address:    h.Address,
			DeviceType: h.Device,
			CreateHost: createHost,
			Services:   h.Services,
			Parents:    h.Parents,
			HostGroups: h.HostGroups,
			Rules:      rules,
		})
	}
	return reqs
}
