// Package paths resolves the boxctl configuration and data directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name used under platform config and data roots.
const appName = "boxctl"

// ConfigFileName is the name of the configuration file inside the config
// directory.
const ConfigFileName = "config.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "BOXCTL_CONFIG_DIR"
	EnvDataDir   = "BOXCTL_DATA_DIR"
)

// platformDir holds platform lookups that tests override.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/boxctl (fallback ~/.config/boxctl)
// macOS:   ~/Library/Application Support/boxctl
// Windows: %APPDATA%/boxctl
func DefaultConfigDir() (string, error) {
	if platformDir.goos == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// DefaultDataDir returns the platform default data directory, where the
// sandbox keeps its database.
//
// Linux:   $XDG_DATA_HOME/boxctl (fallback ~/.local/share/boxctl)
// Others:  same as DefaultConfigDir
func DefaultDataDir() (string, error) {
	if platformDir.goos == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	return DefaultConfigDir()
}

func xdgDir(env, homeRel string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appName), nil
}

// ResolveConfigDir returns the configuration directory following
// flag > BOXCTL_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following
// flag > config.yaml data_dir > BOXCTL_DATA_DIR > DefaultDataDir().
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, v := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if v != "" {
			return filepath.Abs(v)
		}
	}
	return DefaultDataDir()
}
