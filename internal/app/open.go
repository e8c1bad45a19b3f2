package app

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/dmytropaduchak/chrono/internal/config"
	"github.com/kballard/go-shellquote"
	"github.com/zyedidia/clipper"
)

// openWithCommand launches the configured opener with the URL appended
// and lets it run detached.
func (a *App) openWithCommand(url string) error {
	args, err := openCommand(a.Settings.GitHub.OpenCommand)
	if err != nil {
		return err
	}
	args = append(args, url)

	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the opener in the background; its exit status doesn't matter
	go cmd.Wait()
	return nil
}

// openCommand splits the configured opener with shell quoting rules,
// falling back to the platform default when none is set.
func openCommand(configured string) ([]string, error) {
	if configured != "" {
		args, err := shellquote.Split(configured)
		if err != nil {
			return nil, fmt.Errorf("bad open_command %q: %v", configured, err)
		}
		if len(args) > 0 {
			return args, nil
		}
	}

	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}, nil
	case "windows":
		return []string{"cmd", "/c", "start", ""}, nil
	default:
		for _, opener := range []string{"xdg-open", "sensible-browser", "x-www-browser"} {
			if _, err := exec.LookPath(opener); err == nil {
				return []string{opener}, nil
			}
		}
		return nil, fmt.Errorf("no opener found, set github.open_command in %s", config.SettingsFileName)
	}
}

// clipboard is resolved once on first use
var clipboard clipper.Clipboard

// copyToClipboard writes text to the system clipboard
func copyToClipboard(text string) error {
	if clipboard == nil {
		clip, err := clipper.GetClipboard(clipper.Clipboards...)
		if err != nil {
			return err
		}
		clipboard = clip
	}
	return clipboard.WriteAll(clipper.RegClipboard, []byte(text))
}
