// Package config owns chrono's on-disk surface: the config directory,
// the settings file and the GitHub token file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// ConfigDir is the resolved configuration directory.
var ConfigDir string

// InitConfigDir finds the configuration directory for chrono according
// to the XDG spec. If no directory is found, it creates one.
func InitConfigDir(flagConfigDir string) error {
	var e error

	configHome := os.Getenv("CHRONO_CONFIG_HOME")
	if configHome == "" {
		// No config home set, use XDG_CONFIG_HOME or default to ~/.config
		xdgHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgHome == "" {
			home, err := homedir.Dir()
			if err != nil {
				return errors.New("Error finding your home directory\nCan't load config files: " + err.Error())
			}
			xdgHome = filepath.Join(home, ".config")
		}

		configHome = filepath.Join(xdgHome, "chrono")
	}
	ConfigDir = configHome

	if len(flagConfigDir) > 0 {
		if _, err := os.Stat(flagConfigDir); os.IsNotExist(err) {
			e = errors.New("Error: " + flagConfigDir + " does not exist. Defaulting to " + ConfigDir + ".")
		} else {
			ConfigDir = flagConfigDir
			return nil
		}
	}

	// This creates parent directories and does nothing if it already exists
	err := os.MkdirAll(ConfigDir, os.ModePerm)
	if err != nil {
		return errors.New("Error creating configuration directory: " + err.Error())
	}

	return e
}
