// Package output writes rendered blocks either to stdout or to one file per
// host in an output directory.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/cameronsjo/nagcfg/internal/fileutil"
	"github.com/cameronsjo/nagcfg/internal/lock"
	"github.com/cameronsjo/nagcfg/internal/logging"
	"github.com/cameronsjo/nagcfg/internal/render"
	"github.com/cameronsjo/nagcfg/internal/snapshot"
)

// DefaultFilename names output files after the lowercased hostname.
const DefaultFilename = "{{ .Hostname | lower }}.cfg"

// ErrInvalidFilename indicates the filename template produced an unusable name.
var ErrInvalidFilename = errors.New("invalid output filename")

// Host is everything generated for one host.
type Host struct {
	Hostname   string
	Address    string
	DeviceType string
	Blocks     []*render.Block
}

// Content returns the file content for h.
func (h *Host) Content() string {
	return render.Join(h.Blocks)
}

// Result describes what happened to one host's output.
type Result struct {
	Hostname string
	Path     string
	Changed  bool
}

// Writer places host output.
type Writer struct {
	// Dir receives one file per host. Empty writes everything to Stdout.
	Dir string

	// Stdout receives output when Dir is empty or DryRun is set.
	Stdout io.Writer

	// DryRun prints what would be written instead of writing.
	DryRun bool

	// Snapshots, when set, saves the output directory before the first
	// file in a batch is overwritten.
	Snapshots *snapshot.Store

	// Snapshot is the name of the snapshot taken by the last Write, if any.
	Snapshot string

	name *template.Template
}

// NewWriter creates a writer. filename is a text/template evaluated with the
// Host as data and sprig functions available.
func NewWriter(dir, filename string, stdout io.Writer) (*Writer, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	tmpl, err := template.New("filename").Funcs(sprig.TxtFuncMap()).Parse(filename)
	if err != nil {
		return nil, fmt.Errorf("parse filename template: %w", err)
	}
	return &Writer{Dir: dir, Stdout: stdout, name: tmpl}, nil
}

// FileName returns the file name for h.
func (w *Writer) FileName(h *Host) (string, error) {
	var buf bytes.Buffer
	if err := w.name.Execute(&buf, h); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFilename, err)
	}

	name := strings.TrimSpace(buf.String())
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q for host %s", ErrInvalidFilename, name, h.Hostname)
	}
	return name, nil
}

// Write emits every host that has at least one block. With a directory the
// whole batch is written while holding the output lock.
func (w *Writer) Write(hosts []*Host) ([]Result, error) {
	hosts = nonEmpty(hosts)

	if w.Dir == "" {
		return w.writeStdout(hosts)
	}

	if w.DryRun {
		return w.writeFiles(hosts)
	}

	var results []Result
	err := lock.WithLock(w.Dir, "generate", func() error {
		var err error
		results, err = w.writeFiles(hosts)
		return err
	})
	return results, err
}

func (w *Writer) writeStdout(hosts []*Host) ([]Result, error) {
	results := make([]Result, 0, len(hosts))
	for i, h := range hosts {
		if i > 0 {
			fmt.Fprintln(w.Stdout)
		}
		if _, err := io.WriteString(w.Stdout, h.Content()); err != nil {
			return results, fmt.Errorf("write %s: %w", h.Hostname, err)
		}
		results = append(results, Result{Hostname: h.Hostname, Changed: true})
	}
	return results, nil
}

func (w *Writer) writeFiles(hosts []*Host) ([]Result, error) {
	logger := logging.Get("output")
	results := make([]Result, 0, len(hosts))
	w.Snapshot = ""
	snapshotted := false

	names, err := w.fileNames(hosts)
	if err != nil {
		return results, err
	}

	for i, h := range hosts {
		path := filepath.Join(w.Dir, names[i])
		data := []byte(h.Content())

		same, err := fileutil.SameContent(path, data)
		if err != nil {
			return results, fmt.Errorf("compare %s: %w", path, err)
		}
		result := Result{Hostname: h.Hostname, Path: path, Changed: !same}

		switch {
		case w.DryRun:
			fmt.Fprintf(w.Stdout, "# ==> %s <==\n%s\n", path, data)
		case same:
			logger.Debug().Str("path", path).Msg("Unchanged")
		default:
			if w.Snapshots != nil && !snapshotted {
				name, err := w.Snapshots.Create(w.Dir)
				if err != nil {
					return results, fmt.Errorf("snapshot %s: %w", w.Dir, err)
				}
				w.Snapshot = name
				snapshotted = true
			}
			if err := fileutil.WriteFileAtomic(path, data, 0644); err != nil {
				return results, fmt.Errorf("write %s: %w", path, err)
			}
			logger.Info().Str("host", h.Hostname).Str("path", path).Msg("Wrote host configuration")
		}

		results = append(results, result)
	}

	return results, nil
}

// fileNames resolves the file name of every host before anything is written.
// Names are compared case-insensitively so a batch behaves the same on
// case-insensitive filesystems.
func (w *Writer) fileNames(hosts []*Host) ([]string, error) {
	names := make([]string, len(hosts))
	seen := make(map[string]string, len(hosts))
	for i, h := range hosts {
		name, err := w.FileName(h)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: duplicate output file %q for hosts %s and %s", ErrInvalidFilename, name, prev, h.Hostname)
		}
		seen[key] = h.Hostname
		names[i] = name
	}
	return names, nil
}

func nonEmpty(hosts []*Host) []*Host {
	out := make([]*Host, 0, len(hosts))
	for _, h := range hosts {
		if h != nil && len(h.Blocks) > 0 {
			out = append(out, h)
		}
	}
	return out
}
