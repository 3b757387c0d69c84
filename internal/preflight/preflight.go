// Package preflight checks that a project is ready to generate configuration:
// template directories, the hostgroup file, and useful binaries.
package preflight

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/cameronsjo/nagcfg/internal/catalog"
	"github.com/cameronsjo/nagcfg/internal/config"
)

// BinaryCheck represents a binary and its purpose.
type BinaryCheck struct {
	Name        string
	Required    bool   // false = warning only
	InstallHint string // e.g., "apt install nagios4"
}

// optionalBinaries can verify generated output but are not needed to produce it.
var optionalBinaries = []BinaryCheck{
	{
		Name:        "nagios",
		Required:    false,
		InstallHint: "Install Nagios Core to verify output with 'nagios -v'",
	},
	{
		Name:        "nagios4",
		Required:    false,
		InstallHint: "Debian/Ubuntu: apt install nagios4",
	},
}

// Result is the outcome of a single check.
type Result struct {
	Name     string
	OK       bool
	Required bool
	Detail   string
}

// CheckBinaries returns the optional binaries missing from PATH.
func CheckBinaries() []BinaryCheck {
	var missing []BinaryCheck
	for _, bin := range optionalBinaries {
		if !IsBinaryAvailable(bin.Name) {
			missing = append(missing, bin)
		}
	}
	return missing
}

// IsBinaryAvailable checks if a specific binary is available in PATH.
func IsBinaryAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// CheckProject runs every project check against cfg.
func CheckProject(cfg *config.Config) []Result {
	results := []Result{checkServiceTemplates(cfg), checkHostTemplates(cfg)}
	results = append(results, checkHostGroups(cfg))
	if dir := cfg.OutputDir(); dir != "" {
		results = append(results, checkOutputDir(dir))
	}
	results = append(results, checkVerifier())
	return results
}

// CheckAll runs CheckProject and splits failures into errors and warnings.
func CheckAll(cfg *config.Config) (warnings []string, errors []string) {
	for _, r := range CheckProject(cfg) {
		if r.OK {
			continue
		}
		msg := r.Name + ": " + r.Detail
		if r.Required {
			errors = append(errors, msg)
		} else {
			warnings = append(warnings, msg)
		}
	}
	return warnings, errors
}

func checkServiceTemplates(cfg *config.Config) Result {
	r := Result{Name: "service templates", Required: true}

	cat, err := catalog.Discover(cfg.ServiceTemplatesDir(), cfg.Templates.Extension)
	if err != nil {
		r.Detail = err.Error()
		return r
	}
	if cat.Len() == 0 {
		r.Detail = fmt.Sprintf("no *%s files with a #type: marker in %s", cfg.Templates.Extension, cfg.ServiceTemplatesDir())
		return r
	}
	if len(cat.Skipped) > 0 {
		r.Detail = fmt.Sprintf("%d unreadable template(s), first: %v", len(cat.Skipped), cat.Skipped[0])
		return r
	}

	r.OK = true
	r.Detail = fmt.Sprintf("%d type(s) in %s", cat.Len(), cfg.ServiceTemplatesDir())
	return r
}

func checkHostTemplates(cfg *config.Config) Result {
	r := Result{Name: "host templates"}

	paths, err := catalog.HostTemplates(cfg.HostTemplatesDir(), cfg.Templates.Extension)
	if err != nil {
		r.Detail = err.Error()
		return r
	}

	r.OK = true
	if len(paths) == 0 {
		r.Detail = "none (built-in host definition is used)"
		return r
	}
	r.Detail = fmt.Sprintf("%d file(s) in %s", len(paths), cfg.HostTemplatesDir())
	return r
}

func checkHostGroups(cfg *config.Config) Result {
	r := Result{Name: "hostgroups"}

	groups, err := catalog.LoadHostGroups(cfg.HostGroupFile())
	if err != nil {
		r.Detail = fmt.Sprintf("%v (hostgroups will not be validated)", err)
		return r
	}

	r.OK = true
	r.Detail = fmt.Sprintf("%d hostgroup(s) in %s", len(groups), cfg.HostGroupFile())
	return r
}

func checkOutputDir(dir string) Result {
	r := Result{Name: "output directory", Required: true}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		r.OK = true
		r.Detail = dir + " will be created"
	case err != nil:
		r.Detail = err.Error()
	case !info.IsDir():
		r.Detail = dir + " is not a directory"
	default:
		r.OK = true
		r.Detail = dir
	}
	return r
}

func checkVerifier() Result {
	r := Result{Name: "nagios binary"}

	for _, bin := range optionalBinaries {
		if IsBinaryAvailable(bin.Name) {
			r.OK = true
			r.Detail = bin.Name + " found in PATH"
			return r
		}
	}

	r.Detail = optionalBinaries[0].InstallHint
	return r
}
