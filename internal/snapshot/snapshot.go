// Package snapshot keeps copies of generated configuration so a bad run can
// be rolled back.
//
// A snapshot holds the regular files found at the top level of an output
// directory at the moment it was taken. Hidden files (lock files, editor
// swap files) are not included.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cameronsjo/nagcfg/internal/fileutil"
	"github.com/cameronsjo/nagcfg/internal/logging"
)

const (
	// Prefix is the prefix for snapshot directory names.
	Prefix = "snapshot-"
	// DateFormat includes nanoseconds to prevent same-second collisions.
	DateFormat = "20060102-150405.000000000"
	// DefaultKeep is the number of snapshots retained when none is configured.
	DefaultKeep = 20
	// MinFreeDiskBytes is the free space left over after a snapshot (10MB).
	MinFreeDiskBytes = 10 * 1024 * 1024
)

// ErrNotFound indicates the requested snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Info holds metadata about a snapshot.
type Info struct {
	Name    string
	Path    string
	Created time.Time
	Files   []string
}

// Store manages the snapshots in one directory.
type Store struct {
	// Dir holds one subdirectory per snapshot.
	Dir string

	// Keep is how many snapshots Cleanup retains.
	Keep int
}

// New creates a store. A non-positive keep uses DefaultKeep.
func New(dir string, keep int) *Store {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Store{Dir: dir, Keep: keep}
}

// Create snapshots the files in outDir.
// Returns the snapshot name, or an empty string if there was nothing to snapshot.
func (s *Store) Create(outDir string) (string, error) {
	files, size, err := snapshotFiles(outDir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshots directory: %w", err)
	}
	if err := checkDiskSpace(s.Dir, size+MinFreeDiskBytes); err != nil {
		return "", fmt.Errorf("insufficient disk space for snapshot: %w", err)
	}

	// Copy into a staging directory first so a half-written snapshot is never listed.
	staging := filepath.Join(s.Dir, ".staging-"+uuid.NewString()[:8])
	if err := os.MkdirAll(staging, 0755); err != nil {
		return "", fmt.Errorf("create staging directory: %w", err)
	}

	for _, name := range files {
		if err := fileutil.CopyFile(filepath.Join(outDir, name), filepath.Join(staging, name)); err != nil {
			if cleanupErr := os.RemoveAll(staging); cleanupErr != nil {
				return "", fmt.Errorf("copy %s to snapshot: %w (cleanup also failed: %v)", name, err, cleanupErr)
			}
			return "", fmt.Errorf("copy %s to snapshot: %w", name, err)
		}
	}

	name := Prefix + time.Now().Format(DateFormat)
	if err := os.Rename(staging, filepath.Join(s.Dir, name)); err != nil {
		os.RemoveAll(staging)
		return "", fmt.Errorf("finalize snapshot: %w", err)
	}

	logger := logging.Get("snapshot")
	logger.Info().Str("snapshot", name).Int("files", len(files)).Msg("Created snapshot")

	if err := s.Cleanup(); err != nil {
		// Log but don't fail on cleanup errors
		logger.Warn().Err(err).Msg("Failed to clean up old snapshots")
	}

	return name, nil
}

// List returns available snapshots sorted by date (newest first).
func (s *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil // No snapshots directory means no snapshots
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshots directory: %w", err)
	}

	logger := logging.Get("snapshot")
	var snapshots []Info
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), Prefix) {
			continue
		}

		path := filepath.Join(s.Dir, entry.Name())
		files, _, err := snapshotFiles(path)
		if err != nil {
			logger.Warn().Err(err).Str("snapshot", entry.Name()).Msg("Cannot read snapshot")
			continue
		}

		created, err := time.Parse(DateFormat, strings.TrimPrefix(entry.Name(), Prefix))
		if err != nil {
			// Use modification time as fallback
			if info, infoErr := entry.Info(); infoErr == nil {
				created = info.ModTime()
			}
		}

		snapshots = append(snapshots, Info{
			Name:    entry.Name(),
			Path:    path,
			Created: created,
			Files:   files,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Created.After(snapshots[j].Created)
	})

	return snapshots, nil
}

// Latest returns the newest snapshot.
func (s *Store) Latest() (*Info, error) {
	snapshots, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("%w: no snapshots in %s", ErrNotFound, s.Dir)
	}
	return &snapshots[0], nil
}

// Restore copies the files of a snapshot back into outDir, taking a snapshot
// of the current state first. Files in outDir that the snapshot does not
// contain are left alone. It returns the name of the pre-restore snapshot
// (empty when outDir had nothing to save) and the restored file names.
func (s *Store) Restore(outDir, name string) (string, []string, error) {
	if name == "" || name != filepath.Base(name) || !strings.HasPrefix(name, Prefix) {
		return "", nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	path := filepath.Join(s.Dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	files, _, err := snapshotFiles(path)
	if err != nil {
		return "", nil, err
	}

	backup, err := s.Create(outDir)
	if err != nil {
		return "", nil, fmt.Errorf("create pre-restore snapshot: %w", err)
	}

	for _, f := range files {
		if err := fileutil.CopyFile(filepath.Join(path, f), filepath.Join(outDir, f)); err != nil {
			return backup, nil, fmt.Errorf("restore %s: %w", f, err)
		}
	}

	logger := logging.Get("snapshot")
	logger.Info().Str("snapshot", name).Str("backup", backup).Msg("Restored snapshot")
	return backup, files, nil
}

// Cleanup removes snapshots beyond the retention limit.
// Continues deleting even if individual removals fail, returning a summary of all errors.
func (s *Store) Cleanup() error {
	snapshots, err := s.List()
	if err != nil {
		return err
	}

	keep := s.Keep
	if keep <= 0 {
		keep = DefaultKeep
	}
	if len(snapshots) <= keep {
		return nil
	}

	var errs []string
	for _, snap := range snapshots[keep:] {
		if err := removeWithRetry(snap.Path, 3); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", snap.Name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to remove %d snapshot(s): %s", len(errs), strings.Join(errs, "; "))
	}

	return nil
}

// snapshotFiles returns the names of the visible regular files at the top of
// dir and their total size. A missing directory has no files.
func snapshotFiles(dir string) ([]string, int64, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", dir, err)
	}

	var names []string
	var size int64
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, 0, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		names = append(names, entry.Name())
		size += info.Size()
	}
	return names, size, nil
}

// removeWithRetry attempts to remove a directory with retries for transient failures.
func removeWithRetry(path string, maxRetries int) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if err := os.RemoveAll(path); err != nil {
			lastErr = err
			// Short delay before retry (10ms, 20ms, 40ms)
			time.Sleep(time.Duration(10*(1<<i)) * time.Millisecond)
			continue
		}
		return nil
	}
	return lastErr
}
