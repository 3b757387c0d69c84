package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/cameronsjo/nagcfg/internal/catalog"
	"github.com/cameronsjo/nagcfg/internal/config"
	"github.com/cameronsjo/nagcfg/internal/logging"
	"github.com/cameronsjo/nagcfg/internal/ui"
)

// loadConfig reads --config when given, otherwise searches upward from the
// working directory. Without a project root the defaults apply relative to
// the working directory.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}

	cfg, err := config.Load()
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, config.ErrNoRoot) {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	logger := logging.Get("cmd")
	logger.Debug().Str("dir", wd).Msg("No project root found, using defaults")

	cfg = config.Default()
	cfg.Root = wd
	return cfg, nil
}

// loadCatalog discovers the service templates configured in cfg.
// Unreadable templates are reported but do not fail discovery.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Discover(cfg.ServiceTemplatesDir(), cfg.Templates.Extension)
	if err != nil {
		return nil, err
	}
	for _, skipped := range cat.Skipped {
		ui.Warning("%v", skipped)
	}
	return cat, nil
}

// loadHostGroups returns the known hostgroups, or nil when the hostgroup
// file cannot be read. Nil disables hostgroup validation.
func loadHostGroups(cfg *config.Config) []string {
	groups, err := catalog.LoadHostGroups(cfg.HostGroupFile())
	if err != nil {
		logger := logging.Get("cmd")
		logger.Warn().Err(err).Msg("Hostgroups will not be validated")
		return nil
	}
	return groups
}
