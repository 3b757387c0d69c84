// Package generate turns host requests into rendered output.
//
// Every request is validated before anything is rendered: a malformed
// override rule, an unknown device type or hostgroup, or a missing address
// aborts the whole run. A service type without a template only skips that
// service; the problem is reported and the rest of the batch still renders.
package generate

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/cameronsjo/nagcfg/internal/catalog"
	"github.com/cameronsjo/nagcfg/internal/config"
	"github.com/cameronsjo/nagcfg/internal/logging"
	"github.com/cameronsjo/nagcfg/internal/output"
	"github.com/cameronsjo/nagcfg/internal/render"
)

var (
	// ErrMissingAddress indicates a host block was requested without an address.
	ErrMissingAddress = errors.New("ipaddr is required to create a host definition")

	// ErrUnknownHostGroup indicates a hostgroup that the hostgroup file does not define.
	ErrUnknownHostGroup = errors.New("unknown hostgroup")

	// ErrNothingToDo indicates a request with neither a host block nor services.
	ErrNothingToDo = errors.New("nothing to generate")
)

// Request asks for the configuration of one host.
type Request struct {
	Hostname   string
	Address    string
	DeviceType string
	CreateHost bool
	Services   []string
	Parents    []string
	HostGroups []string
	Rules      []string
}

// Problem is a service that could not be rendered.
type Problem struct {
	Hostname string
	Service  string
	Err      error
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s/%s: %v", p.Hostname, p.Service, p.Err)
}

func (p Problem) Unwrap() error {
	return p.Err
}

// Generator renders requests against a catalog.
type Generator struct {
	Config  *config.Config
	Catalog render.Lookup

	// HostGroups restricts requested hostgroups. Nil disables the check.
	HostGroups []string
}

type job struct {
	req Request
	ctx *render.Context
}

// Validate checks every request without rendering anything.
func (g *Generator) Validate(reqs []Request) error {
	_, err := g.prepare(reqs)
	return err
}

// Run validates all requests, then renders them. Hosts are rendered
// concurrently and returned in request order.
func (g *Generator) Run(reqs []Request) ([]*output.Host, []Problem, error) {
	jobs, err := g.prepare(reqs)
	if err != nil {
		return nil, nil, err
	}

	hosts := make([]*output.Host, len(jobs))
	problems := make([][]Problem, len(jobs))

	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j *job) {
			defer wg.Done()
			hosts[i], problems[i] = g.renderHost(j)
		}(i, j)
	}
	wg.Wait()

	var all []Problem
	for _, p := range problems {
		all = append(all, p...)
	}
	return hosts, all, nil
}

func (g *Generator) prepare(reqs []Request) ([]*job, error) {
	jobs := make([]*job, 0, len(reqs))
	for _, req := range reqs {
		j, err := g.prepareOne(req)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (g *Generator) prepareOne(req Request) (*job, error) {
	device := req.DeviceType
	if device == "" {
		device = config.DefaultDevice
	}
	label, err := g.Config.DeviceLabel(device)
	if err != nil {
		return nil, fmt.Errorf("host %s: %w", req.Hostname, err)
	}

	if g.HostGroups != nil {
		for _, hg := range req.HostGroups {
			if !slices.Contains(g.HostGroups, hg) {
				return nil, fmt.Errorf("host %s: %w: %q (available: %v)", req.Hostname, ErrUnknownHostGroup, hg, g.HostGroups)
			}
		}
	}

	ctx, err := render.NewContext(render.Options{
		Hostname:    req.Hostname,
		Address:     req.Address,
		Rules:       req.Rules,
		Parents:     req.Parents,
		HostGroups:  req.HostGroups,
		DeviceLabel: label,
	})
	if err != nil {
		return nil, err
	}

	if req.CreateHost && ctx.Address == "" {
		return nil, fmt.Errorf("host %s: %w", ctx.Hostname, ErrMissingAddress)
	}
	if !req.CreateHost && len(req.Services) == 0 {
		return nil, fmt.Errorf("host %s: %w (use --createhost or --service)", ctx.Hostname, ErrNothingToDo)
	}

	req.DeviceType = device
	return &job{req: req, ctx: ctx}, nil
}

func (g *Generator) renderHost(j *job) (*output.Host, []Problem) {
	logger := logging.Get("generate")

	host := &output.Host{
		Hostname:   j.ctx.Hostname,
		Address:    j.ctx.Address,
		DeviceType: j.req.DeviceType,
	}

	if j.req.CreateHost {
		host.Blocks = append(host.Blocks, render.Host(j.ctx))
	}

	var problems []Problem
	for _, svc := range j.req.Services {
		block, err := render.Service(g.Catalog, j.ctx.ForService(svc))
		if err != nil {
			logger.Warn().Err(err).Str("host", j.ctx.Hostname).Str("service", svc).Msg("Skipping service")
			problems = append(problems, Problem{Hostname: j.ctx.Hostname, Service: svc, Err: err})
			continue
		}
		host.Blocks = append(host.Blocks, block)
	}

	logger.Debug().
		Str("host", host.Hostname).
		Int("blocks", len(host.Blocks)).
		Int("problems", len(problems)).
		Msg("Rendered host")

	return host, problems
}

// IsTemplateMissing reports whether err came from an unknown service type.
func IsTemplateMissing(err error) bool {
	return errors.Is(err, catalog.ErrTemplateMissing)
}
