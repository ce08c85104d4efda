// Package update checks GitHub releases for newer stickerbox builds and
// replaces the running binary.
package update

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	selfupdate "github.com/creativeprojects/go-selfupdate"
)

const (
	checkTimeout = 10 * time.Second
	applyTimeout = 2 * time.Minute
)

// ErrDevBuild is returned when asked to replace a build with no version.
var ErrDevBuild = errors.New("cannot update a development build, install from a release first")

// Release holds information about an available update.
type Release struct {
	Version      string
	URL          string
	ReleaseNotes string
}

// Checker talks to a release source for one repository ("owner/name").
type Checker struct {
	Repo   string
	source selfupdate.Source
}

// NewChecker uses GitHub releases of repo.
func NewChecker(repo string) (*Checker, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("create github source: %w", err)
	}
	return &Checker{Repo: repo, source: source}, nil
}

func (c *Checker) updater() (*selfupdate.Updater, error) {
	u, err := selfupdate.NewUpdater(selfupdate.Config{Source: c.source})
	if err != nil {
		return nil, fmt.Errorf("create updater: %w", err)
	}
	return u, nil
}

// Check returns the latest release when it is newer than currentVersion,
// or nil when up to date. Dev and unparseable versions are never checked.
func (c *Checker) Check(ctx context.Context, currentVersion string) (*Release, error) {
	if isDev(currentVersion) {
		return nil, nil
	}
	current, err := parseSemver(currentVersion)
	if err != nil {
		return nil, nil // dirty build
	}

	u, err := c.updater()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	latest, found, err := u.DetectLatest(ctx, selfupdate.ParseSlug(c.Repo))
	if err != nil {
		return nil, fmt.Errorf("detect latest release: %w", err)
	}
	if !found {
		return nil, nil
	}
	latestVer, err := semver.NewVersion(latest.Version())
	if err != nil || !latestVer.GreaterThan(current) {
		return nil, nil
	}
	return &Release{
		Version:      latest.Version(),
		URL:          latest.URL,
		ReleaseNotes: latest.ReleaseNotes,
	}, nil
}

// Apply downloads the latest release and replaces the current executable.
func (c *Checker) Apply(ctx context.Context, currentVersion string) (*Release, error) {
	if isDev(currentVersion) {
		return nil, ErrDevBuild
	}
	u, err := c.updater()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	rel, err := u.UpdateSelf(ctx, strings.TrimPrefix(currentVersion, "v"), selfupdate.ParseSlug(c.Repo))
	if err != nil {
		return nil, fmt.Errorf("update failed: %w", err)
	}
	return &Release{
		Version:      rel.Version(),
		URL:          rel.URL,
		ReleaseNotes: rel.ReleaseNotes,
	}, nil
}

func isDev(v string) bool {
	return v == "" || v == "dev"
}

// CompareVersions compares two semver strings.
// Returns -1 if current < latest, 0 if equal, 1 if current > latest.
// Unparseable versions are treated as less than any valid version.
func CompareVersions(current, latest string) int {
	cv, errC := parseSemver(current)
	lv, errL := parseSemver(latest)

	switch {
	case errC != nil && errL != nil:
		return 0
	case errC != nil:
		return -1
	case errL != nil:
		return 1
	}
	return cv.Compare(lv)
}

// parseSemver strips a leading "v". Git-describe suffixes like
// "0.1.0-3-gabcdef" parse as prereleases of the base version.
func parseSemver(s string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(s, "v"))
}
