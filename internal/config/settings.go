package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/micro-editor/json5"
)

const (
	// SettingsFileName is the name of the settings file
	SettingsFileName = "settings.json"

	// Default values
	DefaultNoiseDensity        = 0.04
	DefaultPollIntervalMinutes = 5

	// Board size limits. The lower bounds keep both glyph bands and the
	// hh:mm line on the grid; the upper bounds just keep the board
	// plausible on a terminal.
	MinBoardWidth  = 34
	MaxBoardWidth  = 120
	MinBoardHeight = 15
	MaxBoardHeight = 60
)

// ClockSettings selects the startup state of the clock face.
type ClockSettings struct {
	HourFormat string `json:"hour_format"`
	TimeFormat string `json:"time_format"`
	ShowAMPM   bool   `json:"show_ampm"`
}

// AppearanceSettings controls the board's look. NoiseDensity is a
// pointer so an explicit zero (noise off) survives loading; nil means
// "use the default".
type AppearanceSettings struct {
	Accent          string   `json:"accent"`
	BackgroundColor string   `json:"background_color"`
	NoiseDensity    *float64 `json:"noise_density"`
	BoardWidth      int      `json:"board_width"`
	BoardHeight     int      `json:"board_height"`
}

// GitHubSettings controls the pull request overlay.
type GitHubSettings struct {
	PollIntervalMinutes int      `json:"poll_interval_minutes"`
	OpenCommand         string   `json:"open_command"`
	RepoFilter          []string `json:"repo_filter"`
	JiraBaseURL         string   `json:"jira_base_url"`
}

// UpdateSettings controls the release check.
type UpdateSettings struct {
	CheckEnabled bool `json:"check_enabled"`
}

// Settings holds all chrono configuration.
type Settings struct {
	Clock      ClockSettings      `json:"clock"`
	Appearance AppearanceSettings `json:"appearance"`
	GitHub     GitHubSettings     `json:"github"`
	Update     UpdateSettings     `json:"update"`
}

// DefaultSettings returns the default chrono settings.
func DefaultSettings() *Settings {
	return &Settings{
		Clock: ClockSettings{
			HourFormat: "24h",
			TimeFormat: "hh:mm:ss",
			ShowAMPM:   true,
		},
		Appearance: AppearanceSettings{
			BoardWidth:  40,
			BoardHeight: 17,
		},
		GitHub: GitHubSettings{
			PollIntervalMinutes: DefaultPollIntervalMinutes,
		},
		Update: UpdateSettings{
			CheckEnabled: true,
		},
	}
}

// SettingsPath returns the path to the settings file.
func SettingsPath() string {
	return filepath.Join(ConfigDir, SettingsFileName)
}

// EnsureSettingsFile creates the settings file with defaults if it
// doesn't exist, so users have something to edit.
func EnsureSettingsFile() error {
	if _, err := os.Stat(SettingsPath()); os.IsNotExist(err) {
		return SaveSettings(DefaultSettings())
	}
	return nil
}

// LoadSettings loads settings from disk. The file is parsed as JSON5
// so hand-edited files may carry comments and trailing commas. A
// missing or broken file falls back to defaults; invalid values are
// clamped. Loading never fails.
func LoadSettings() *Settings {
	settings := DefaultSettings()

	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("chrono settings: failed to read %s: %v", SettingsFileName, err)
		}
		return settings
	}

	if err := json5.Unmarshal(data, settings); err != nil {
		log.Printf("chrono settings: failed to parse %s: %v", SettingsFileName, err)
		return DefaultSettings()
	}

	normalizeSettings(settings)
	return settings
}

// SaveSettings persists settings to disk.
func SaveSettings(settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		log.Printf("chrono settings: failed to marshal %s: %v", SettingsFileName, err)
		return err
	}

	if err := os.WriteFile(SettingsPath(), data, 0644); err != nil {
		log.Printf("chrono settings: failed to write %s: %v", SettingsFileName, err)
		return err
	}
	return nil
}

// NoiseDensity resolves the appearance noise density: the configured
// value clamped to [0, 0.2], or the default when unset.
func (s *Settings) NoiseDensity() float64 {
	if s.Appearance.NoiseDensity == nil {
		return DefaultNoiseDensity
	}
	d := *s.Appearance.NoiseDensity
	if d < 0 {
		return 0
	}
	if d > 0.2 {
		return 0.2
	}
	return d
}

func normalizeSettings(s *Settings) {
	defaults := DefaultSettings()

	if s.Clock.HourFormat != "24h" && s.Clock.HourFormat != "12h" {
		if s.Clock.HourFormat != "" {
			log.Printf("chrono settings: unknown clock.hour_format %q, using %q", s.Clock.HourFormat, defaults.Clock.HourFormat)
		}
		s.Clock.HourFormat = defaults.Clock.HourFormat
	}
	switch s.Clock.TimeFormat {
	case "hh:mm:ss", "hh:mm", "mm:ss":
	default:
		if s.Clock.TimeFormat != "" {
			log.Printf("chrono settings: unknown clock.time_format %q, using %q", s.Clock.TimeFormat, defaults.Clock.TimeFormat)
		}
		s.Clock.TimeFormat = defaults.Clock.TimeFormat
	}

	if s.Appearance.BackgroundColor != "" && !isValidHexColor(s.Appearance.BackgroundColor) {
		log.Printf("chrono settings: appearance.background_color %q is not a #rrggbb color, ignoring", s.Appearance.BackgroundColor)
		s.Appearance.BackgroundColor = ""
	}
	s.Appearance.BoardWidth = clampInt(s.Appearance.BoardWidth, MinBoardWidth, MaxBoardWidth, defaults.Appearance.BoardWidth)
	s.Appearance.BoardHeight = clampInt(s.Appearance.BoardHeight, MinBoardHeight, MaxBoardHeight, defaults.Appearance.BoardHeight)

	if s.GitHub.PollIntervalMinutes <= 0 {
		s.GitHub.PollIntervalMinutes = defaults.GitHub.PollIntervalMinutes
	}
}

// clampInt clamps v into [min, max]; zero means "unset" and resolves
// to fallback.
func clampInt(v, min, max, fallback int) int {
	if v == 0 {
		return fallback
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// isValidHexColor checks if a string is a valid hex color
func isValidHexColor(color string) bool {
	if !strings.HasPrefix(color, "#") {
		return false
	}
	matched, _ := regexp.MatchString(`^#[0-9a-fA-F]{6}$`, color)
	return matched
}
