package github

import "strings"

// IssueKey is a tracker reference like PROJ-123 found in a pull
// request title. Start and End are byte offsets into the scanned line.
type IssueKey struct {
	Start int
	End   int
	Key   string
}

// FindIssueKey scans line for the first issue-tracker key: a run of at
// least two uppercase ASCII letters, a dash, then digits. Tokens are
// cut on anything that is not alphanumeric or a dash, so "fix
// GSP-1024: retry" finds GSP-1024 but "v2-1" and "my-branch-2" do not
// match.
func FindIssueKey(line string) (IssueKey, bool) {
	token := ""
	tokenStart := 0

	for idx, ch := range line {
		if isTokenRune(ch) {
			if token == "" {
				tokenStart = idx
			}
			token += string(ch)
			continue
		}
		if token != "" {
			if isIssueKey(token) {
				return IssueKey{Start: tokenStart, End: idx, Key: token}, true
			}
			token = ""
		}
	}
	if token != "" && isIssueKey(token) {
		return IssueKey{Start: tokenStart, End: len(line), Key: token}, true
	}
	return IssueKey{}, false
}

// BrowseURL joins a tracker base URL and an issue key into the page
// address, e.g. https://example.atlassian.net/browse/PROJ-123.
func BrowseURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/browse/" + key
}

func isTokenRune(ch rune) bool {
	return ch == '-' ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}

func isIssueKey(value string) bool {
	left, right, found := strings.Cut(value, "-")
	if !found || len(left) < 2 || len(right) < 1 {
		return false
	}
	for _, ch := range left {
		if ch < 'A' || ch > 'Z' {
			return false
		}
	}
	for _, ch := range right {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
