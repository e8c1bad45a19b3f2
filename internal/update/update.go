package update

import (
	"context"
	"strings"

	"github.com/blang/semver"
	"github.com/dmytropaduchak/chrono/internal/util"
)

// Check looks for a newer stable release and returns its tag.
// Returns "" if the running build is current, or if no release exists.
func Check(ctx context.Context) (string, error) {
	release, err := FetchLatestRelease(ctx)
	if err != nil {
		return "", err
	}

	// No releases available
	if release == nil {
		return "", nil
	}

	isNewer, err := IsNewerVersion(util.Version, release.TagName)
	if err != nil {
		return "", err
	}

	if !isNewer {
		return "", nil
	}

	return release.TagName, nil
}

// IsNewerVersion compares two version strings and returns true if latest is newer
func IsNewerVersion(current, latest string) (bool, error) {
	// Clean up version strings
	current = cleanVersion(current)
	latest = cleanVersion(latest)

	// Handle "unknown" or empty versions
	if current == "" || current == "unknown" || current == "0.0.0-unknown" {
		// If we're on an unknown version, don't suggest updates
		// (likely a dev build)
		return false, nil
	}

	// Don't update to nightly or dev tags
	if strings.Contains(latest, "nightly") || strings.Contains(latest, "dev") {
		return false, nil
	}

	currentVer, err := semver.ParseTolerant(current)
	if err != nil {
		return false, err
	}

	latestVer, err := semver.ParseTolerant(latest)
	if err != nil {
		return false, err
	}

	return latestVer.GT(currentVer), nil
}

// cleanVersion removes common prefixes and cleans up version strings
func cleanVersion(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "v")
	v = strings.TrimPrefix(v, "V")
	return v
}
