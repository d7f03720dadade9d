// Package version reports build information and checks GitHub for newer releases.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	goversion "github.com/hashicorp/go-version"
)

const (
	defaultAPIURL = "https://api.github.com/repos/Elpulgo/azdo-buildstats/releases/latest"
	httpTimeout   = 5 * time.Second
)

// Build information, set at link time with -ldflags "-X ...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("azdo-buildstats %s (commit %s, built %s)", Version, Commit, Date)
}

// UpdateInfo contains the result of a version check.
type UpdateInfo struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

// Checker checks GitHub for newer releases.
type Checker struct {
	currentVersion string
	apiURL         string
	httpClient     *http.Client
}

// githubRelease is the subset of the GitHub release API response we need.
type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithAPIURL points the checker at another latest-release endpoint.
func WithAPIURL(url string) CheckerOption {
	return func(c *Checker) {
		c.apiURL = url
	}
}

// NewChecker creates a version checker for the given current version.
func NewChecker(currentVersion string, opts ...CheckerOption) *Checker {
	c := &Checker{
		currentVersion: currentVersion,
		apiURL:         defaultAPIURL,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckForUpdate checks if a newer version is available on GitHub.
// Returns an error on network/API failures.
func (c *Checker) CheckForUpdate(ctx context.Context) (*UpdateInfo, error) {
	info := &UpdateInfo{
		CurrentVersion: c.currentVersion,
	}

	// Don't check for dev builds
	if c.currentVersion == "" || c.currentVersion == "dev" {
		return info, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to parse release response: %w", err)
	}

	info.LatestVersion = release.TagName
	info.ReleaseURL = release.HTMLURL
	info.UpdateAvailable = isNewer(c.currentVersion, release.TagName)

	return info, nil
}

// isNewer returns true if latest is a newer semantic version than current.
// Unparseable versions never count as newer.
func isNewer(current, latest string) bool {
	cur, err := goversion.NewSemver(current)
	if err != nil {
		return false
	}
	lat, err := goversion.NewSemver(latest)
	if err != nil {
		return false
	}
	return lat.GreaterThan(cur)
}
