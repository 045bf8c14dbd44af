// Package commands implements the CLI surface. Each command is a
// struct with a Register method appending itself to the root cli app.
package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/foreman/internal/core/config"
	"github.com/colonyops/foreman/internal/foreman"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// App is the service aggregate, built in the Before hook
	App *foreman.App
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "foreman", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "foreman")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/foreman/foreman.log
// On Linux: $XDG_STATE_HOME/foreman/foreman.log (defaults to ~/.local/state/foreman/foreman.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "foreman", "foreman.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "foreman", "foreman.log")
	}

	return filepath.Join(home, ".local", "state", "foreman", "foreman.log")
}
