package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	repoOwner   = "dmytropaduchak"
	repoName    = "chrono"
	releasesURL = "https://api.github.com/repos/%s/%s/releases"
)

// Release represents a GitHub release
type Release struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Prerelease bool   `json:"prerelease"`
}

// FetchLatestRelease fetches the latest stable release from GitHub.
// It returns the first non-prerelease release, or nil if none found.
func FetchLatestRelease(ctx context.Context) (*Release, error) {
	// The /latest endpoint only returns non-prereleases
	url := fmt.Sprintf(releasesURL+"/latest", repoOwner, repoName)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "chrono-update-checker")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// If /latest returns 404, there may be only prereleases.
	// Fall back to fetching all releases.
	if resp.StatusCode == http.StatusNotFound {
		return fetchFirstStableRelease(ctx)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GitHub API error: %s - %s", resp.Status, string(body))
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}

	return &release, nil
}

// fetchFirstStableRelease fetches all releases and returns the first non-prerelease
func fetchFirstStableRelease(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf(releasesURL, repoOwner, repoName)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "chrono-update-checker")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GitHub API error: %s - %s", resp.Status, string(body))
	}

	var releases []Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, err
	}

	for i := range releases {
		if !releases[i].Prerelease {
			return &releases[i], nil
		}
	}

	// No stable releases found
	return nil, nil
}
