// Package catalog discovers host and service templates and indexes service
// templates by the type identifier each one declares.
//
// A service template is a plain text file whose first marker line names the
// check it describes:
//
//	#type: ping
//	check_command        check_ping!100.0,20%!500.0,60%
//	service_description  %%service_description%%
//	host_name            %%host_name%%
//
// Files that never declare a type are ignored, which lets work-in-progress
// templates live next to finished ones.
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/cameronsjo/nagcfg/internal/logging"
)

// DefaultExtension is the suffix that selects template files.
const DefaultExtension = ".t"

// maxLineSize bounds a single template or hostgroup line.
const maxLineSize = 16 * 1024 * 1024

// newScanner returns a line scanner that accepts lines up to maxLineSize.
func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

var (
	// ErrTemplateMissing indicates a requested service type has no template.
	ErrTemplateMissing = errors.New("template missing")

	// ErrTemplateUnreadable indicates a template file could not be read.
	ErrTemplateUnreadable = errors.New("template unreadable")
)

// typePattern matches the "#type: <identifier>" declaration line.
var typePattern = regexp.MustCompile(`^#type:\s*(\w+)$`)

// Template is one service template file.
type Template struct {
	// Type is the identifier declared by the #type: marker.
	Type string

	// Path is the file the template was read from.
	Path string

	// Lines holds every line after the marker, blank lines included.
	Lines []string
}

// Catalog maps service type identifiers to templates.
type Catalog struct {
	templates map[string]*Template

	// Skipped lists files that matched the extension but could not be read.
	Skipped []error
}

// Discover reads every file in dir ending in ext and registers the ones that
// declare a type. Files are visited in lexicographic order, so when two files
// declare the same type the later one wins.
func Discover(dir, ext string) (*Catalog, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	logger := logging.Get("catalog")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template directory: %w", err)
	}

	cat := &Catalog{templates: make(map[string]*Template)}

	// os.ReadDir returns entries sorted by filename.
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		tmpl, err := Load(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Skipping template")
			cat.Skipped = append(cat.Skipped, err)
			continue
		}
		if tmpl == nil {
			logger.Debug().Str("path", path).Msg("No #type: marker, ignoring file")
			continue
		}

		if prev, ok := cat.templates[tmpl.Type]; ok {
			logger.Warn().
				Str("type", tmpl.Type).
				Str("replaced", prev.Path).
				Str("by", tmpl.Path).
				Msg("Duplicate template type")
		}
		cat.templates[tmpl.Type] = tmpl
		logger.Debug().Str("type", tmpl.Type).Str("path", path).Msg("Registered template")
	}

	return cat, nil
}

// Load reads a single template file. It returns a nil Template and a nil
// error when the file has no #type: marker.
func Load(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateUnreadable, path, err)
	}
	defer f.Close()

	var tmpl *Template
	scanner := newScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if tmpl != nil {
			tmpl.Lines = append(tmpl.Lines, line)
			continue
		}

		if m := typePattern.FindStringSubmatch(strings.TrimRightFunc(line, isSpace)); m != nil {
			tmpl = &Template{Type: m[1], Path: path}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateUnreadable, path, err)
	}

	return tmpl, nil
}

// IsTypeMarker reports whether line is a #type: declaration.
func IsTypeMarker(line string) bool {
	return strings.HasPrefix(line, "#type:")
}

// Lookup returns the template registered for serviceType.
func (c *Catalog) Lookup(serviceType string) (*Template, error) {
	tmpl, ok := c.templates[serviceType]
	if !ok {
		return nil, fmt.Errorf("%w: no template declares type %q", ErrTemplateMissing, serviceType)
	}
	return tmpl, nil
}

// Has reports whether serviceType is registered.
func (c *Catalog) Has(serviceType string) bool {
	_, ok := c.templates[serviceType]
	return ok
}

// Types returns the registered type identifiers in sorted order.
func (c *Catalog) Types() []string {
	types := make([]string, 0, len(c.templates))
	for t := range c.templates {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Len returns the number of registered templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
