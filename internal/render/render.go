// Package render turns service templates and host details into Nagios object
// definitions.
//
// Service blocks are produced line by line from a catalog template. Each line
// is handled by the first step that applies:
//
//  1. blank lines are dropped
//  2. "<key> %%service_description%%" becomes "<key> <TYPE>-<hostname>"
//  3. "<key> %%host_name%%" becomes "<key> <hostname>"
//  4. the first override rule whose pattern matches rewrites the line
//  5. anything else is copied verbatim
//
// Host blocks have a fixed shape and are not template driven.
//
// Rendering is a pure function of its inputs, so blocks for different hosts
// or services can be rendered concurrently against one shared catalog.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cameronsjo/nagcfg/internal/catalog"
)

// Placeholder patterns. The prefix capture keeps the key and its padding.
var (
	serviceDescriptionPattern = regexp.MustCompile(`^(.*)\s+%%service_description%%`)
	hostNamePattern           = regexp.MustCompile(`^(.*)\s+%%host_name%%`)
)

// Lookup resolves a service type to its template.
type Lookup interface {
	Lookup(serviceType string) (*catalog.Template, error)
}

// Service renders the service block for ctx.ServiceType. It fails with
// catalog.ErrTemplateMissing when no template declares that type.
func Service(templates Lookup, ctx *Context) (*Block, error) {
	tmpl, err := templates.Lookup(ctx.ServiceType)
	if err != nil {
		return nil, fmt.Errorf("render %s for %s: %w", ctx.ServiceType, ctx.Hostname, err)
	}
	return ServiceFromTemplate(tmpl, ctx), nil
}

// ServiceFromTemplate renders tmpl for ctx without a catalog lookup.
func ServiceFromTemplate(tmpl *catalog.Template, ctx *Context) *Block {
	lines := make([]string, 0, len(tmpl.Lines))
	for _, line := range tmpl.Lines {
		if out, keep := renderLine(line, ctx); keep {
			lines = append(lines, out)
		}
	}
	return &Block{Kind: KindService, Lines: lines}
}

// renderLine applies the substitution steps to one template line. It returns
// false when the line is dropped.
func renderLine(line string, ctx *Context) (string, bool) {
	if strings.TrimSpace(line) == "" || catalog.IsTypeMarker(line) {
		return "", false
	}

	if m := serviceDescriptionPattern.FindStringSubmatch(line); m != nil {
		return fmt.Sprintf("%s %s-%s", m[1], strings.ToUpper(ctx.ServiceType), ctx.Hostname), true
	}

	if m := hostNamePattern.FindStringSubmatch(line); m != nil {
		return fmt.Sprintf("%s %s", m[1], ctx.Hostname), true
	}

	for _, rule := range ctx.Rules {
		if out, ok := rule.Apply(line); ok {
			return out, true
		}
	}

	return line, true
}
