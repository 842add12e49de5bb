// Package paths decides where the phone book keeps config.yaml and its
// stored contacts. The data directory defaults to .phonebook-db in the
// working directory so each project folder can carry its own book.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName names the phone book's folder under the platform config root.
const appDirName = "phonebook"

// DefaultDataDirName holds phonebook.jsonl, phonebook.db or phonebook.bolt
// when no data directory is configured.
const DefaultDataDirName = ".phonebook-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PHONEBOOK_CONFIG_DIR"
	EnvDataDir   = "PHONEBOOK_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns where config.yaml lives when neither --config-dir
// nor PHONEBOOK_CONFIG_DIR is set.
//
// Linux:   $XDG_CONFIG_HOME/phonebook (fallback ~/.config/phonebook)
// macOS:   ~/Library/Application Support/phonebook
// Windows: %APPDATA%/phonebook
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > PHONEBOOK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the directory the storage backend opens, following:
// flag > configYAMLValue > PHONEBOOK_DATA_DIR env > $(CWD)/.phonebook-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
