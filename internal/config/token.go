package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenFileName is the name of the GitHub token file inside the config
// directory.
const TokenFileName = "token"

// ErrNoToken means no GitHub credential is configured anywhere. The
// overlay treats this as "feature off", not as a failure.
var ErrNoToken = errors.New("no GitHub token configured")

// TokenPath returns the path of the token file.
func TokenPath() string {
	return filepath.Join(ConfigDir, TokenFileName)
}

// LoadToken discovers the GitHub credential: GITHUB_TOKEN, then
// CHRONO_GITHUB_TOKEN, then the token file. Values are trimmed; blank
// sources are skipped.
func LoadToken() (string, error) {
	for _, env := range []string{"GITHUB_TOKEN", "CHRONO_GITHUB_TOKEN"} {
		if token := strings.TrimSpace(os.Getenv(env)); token != "" {
			return token, nil
		}
	}

	data, err := os.ReadFile(TokenPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
