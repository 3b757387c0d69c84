// Package update provides self-update functionality for nagcfg.
package update

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
)

const (
	// Repository owner and name for GitHub releases.
	repoOwner = "cameronsjo"
	repoName  = "nagcfg"
)

// Release contains information about an available update.
type Release struct {
	Version     string
	ReleaseURL  string
	PublishedAt string
	Changelog   string
}

// detectLatest finds the newest release. It returns a nil release when the
// current version is already the newest.
func detectLatest(ctx context.Context, currentVersion string) (*selfupdate.Updater, *selfupdate.Release, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, nil, fmt.Errorf("creating update source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source: source,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating updater: %w", err)
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, nil, fmt.Errorf("detecting latest version: %w", err)
	}
	if !found {
		return nil, nil, fmt.Errorf("no releases found for %s/%s", repoOwner, repoName)
	}

	if latest.LessOrEqual(currentVersion) {
		return updater, nil, nil
	}
	return updater, latest, nil
}

func toRelease(r *selfupdate.Release) *Release {
	return &Release{
		Version:     r.Version(),
		ReleaseURL:  r.URL,
		PublishedAt: r.PublishedAt.Format("2006-01-02"),
		Changelog:   r.ReleaseNotes,
	}
}

// CheckForUpdate checks if a newer version is available.
func CheckForUpdate(ctx context.Context, currentVersion string) (*Release, bool, error) {
	_, latest, err := detectLatest(ctx, currentVersion)
	if err != nil || latest == nil {
		return nil, false, err
	}
	return toRelease(latest), true, nil
}

// Update downloads and installs the latest version. It returns a nil
// release when already up to date.
func Update(ctx context.Context, currentVersion string) (*Release, error) {
	updater, latest, err := detectLatest(ctx, currentVersion)
	if err != nil || latest == nil {
		return nil, err
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return nil, fmt.Errorf("getting executable path: %w", err)
	}

	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return nil, fmt.Errorf("updating binary: %w", err)
	}

	return toRelease(latest), nil
}

// GetPlatformInfo returns the current platform information.
func GetPlatformInfo() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}

// ChangelogExcerpt returns up to max lines of a changelog, plus a trailing
// note counting the lines left out.
func ChangelogExcerpt(changelog string, max int) []string {
	changelog = strings.TrimSpace(changelog)
	if changelog == "" {
		return nil
	}

	lines := strings.Split(changelog, "\n")
	if len(lines) <= max {
		return lines
	}
	excerpt := append([]string{}, lines[:max]...)
	return append(excerpt, fmt.Sprintf("... (%d more lines)", len(lines)-max))
}
