// Package config handles project discovery and configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// FileName is the optional project configuration file.
const FileName = "nagcfg.yml"

// DefaultDevice is the device type used when none is requested.
const DefaultDevice = "unknown"

var (
	// ErrUnknownDevice indicates a device type that is not configured.
	ErrUnknownDevice = errors.New("unknown device type")

	// ErrNoRoot indicates no project root was found above the start directory.
	ErrNoRoot = errors.New("project root not found")
)

// Device describes how hosts of one device type are presented.
type Device struct {
	// Label is written to icon_image_alt.
	Label string `yaml:"label"`
}

// Templates locates template files.
type Templates struct {
	Service   string `yaml:"service,omitempty"`
	Host      string `yaml:"host,omitempty"`
	Extension string `yaml:"extension,omitempty"`
}

// Output controls where generated configuration goes.
type Output struct {
	// Dir receives one file per host. Empty means stdout.
	Dir string `yaml:"dir,omitempty"`

	// Filename is a text/template for the per-host file name.
	Filename string `yaml:"filename,omitempty"`
}

// Snapshots controls the backups taken before output files are overwritten.
type Snapshots struct {
	// Dir holds one subdirectory per snapshot.
	Dir string `yaml:"dir,omitempty"`

	// Keep is how many snapshots are retained.
	Keep int `yaml:"keep,omitempty"`
}

// Config holds the nagcfg project configuration.
type Config struct {
	// Root is the project root directory (contains nagcfg.yml or templates/).
	Root string `yaml:"-"`

	Templates  Templates         `yaml:"templates"`
	HostGroups string            `yaml:"hostgroups,omitempty"`
	Output     Output            `yaml:"output"`
	Devices    map[string]Device `yaml:"devices,omitempty"`
	Snapshots  Snapshots         `yaml:"snapshots"`
}

// Default returns the configuration used when no nagcfg.yml exists.
func Default() *Config {
	return &Config{
		Templates: Templates{
			Service:   filepath.Join("templates", "service"),
			Host:      filepath.Join("templates", "host"),
			Extension: ".t",
		},
		HostGroups: "hostgroups.cfg",
		Output: Output{
			Filename: "{{ .Hostname | lower }}.cfg",
		},
		Devices: map[string]Device{
			"server":  {Label: "Debian GNU/Linux"},
			"router":  {Label: "Router"},
			"switch":  {Label: "Switch"},
			"unknown": {Label: "Unknown"},
		},
		Snapshots: Snapshots{
			Dir:  filepath.Join(".nagcfg", "snapshots"),
			Keep: 20,
		},
	}
}

// FindRoot searches upward from dir to find the project root.
// The project root is identified by a nagcfg.yml file or a templates/ directory.
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, FileName)); err == nil && !info.IsDir() {
			return dir, nil
		}

		if info, err := os.Stat(filepath.Join(dir, "templates")); err == nil && info.IsDir() {
			return dir, nil
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w (no %s or templates/ directory)", ErrNoRoot, FileName)
}

// Load finds the project root from the working directory and returns its Config.
func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return LoadFrom(wd)
}

// LoadFrom finds the project root starting at dir and returns its Config.
func LoadFrom(dir string) (*Config, error) {
	root, err := FindRoot(dir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.Root = root
		return cfg, nil
	}

	return LoadFile(path)
}

// LoadFile reads a configuration file. Relative paths inside it are
// resolved against the file's directory, and unset fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	var file Config
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.merge(&file)

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve config directory: %w", err)
	}
	cfg.Root = root

	return cfg, nil
}

// merge overlays the non-empty fields of other onto c.
func (c *Config) merge(other *Config) {
	if other.Templates.Service != "" {
		c.Templates.Service = other.Templates.Service
	}
	if other.Templates.Host != "" {
		c.Templates.Host = other.Templates.Host
	}
	if other.Templates.Extension != "" {
		c.Templates.Extension = other.Templates.Extension
	}
	if other.HostGroups != "" {
		c.HostGroups = other.HostGroups
	}
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Output.Filename != "" {
		c.Output.Filename = other.Output.Filename
	}
	if len(other.Devices) > 0 {
		c.Devices = other.Devices
	}
	if other.Snapshots.Dir != "" {
		c.Snapshots.Dir = other.Snapshots.Dir
	}
	if other.Snapshots.Keep != 0 {
		c.Snapshots.Keep = other.Snapshots.Keep
	}
}

// resolve makes p absolute relative to the project root.
func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// ServiceTemplatesDir returns the path to the service templates directory.
func (c *Config) ServiceTemplatesDir() string {
	return c.resolve(c.Templates.Service)
}

// HostTemplatesDir returns the path to the host templates directory.
func (c *Config) HostTemplatesDir() string {
	return c.resolve(c.Templates.Host)
}

// HostGroupFile returns the path to the Nagios hostgroup definition file.
func (c *Config) HostGroupFile() string {
	return c.resolve(c.HostGroups)
}

// OutputDir returns the path to the output directory, or "" for stdout.
func (c *Config) OutputDir() string {
	return c.resolve(c.Output.Dir)
}

// SnapshotDir returns the path to the snapshot directory.
func (c *Config) SnapshotDir() string {
	return c.resolve(c.Snapshots.Dir)
}

// DeviceLabel returns the icon label for a device type.
func (c *Config) DeviceLabel(device string) (string, error) {
	d, ok := c.Devices[device]
	if !ok {
		return "", fmt.Errorf("%w: %q (available: %v)", ErrUnknownDevice, device, c.DeviceTypes())
	}
	return d.Label, nil
}

// DeviceTypes returns the configured device type names in sorted order.
func (c *Config) DeviceTypes() []string {
	names := make([]string, 0, len(c.Devices))
	for name := range c.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
